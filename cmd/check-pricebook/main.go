package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/faisal-netizen/configurator-api/internal/config"
	"github.com/faisal-netizen/configurator-api/internal/pricebook"
	"github.com/faisal-netizen/configurator-api/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/check-pricebook/main.go <product-handle>")
		fmt.Println("Example: go run cmd/check-pricebook/main.go custom-canvas-print")
		os.Exit(1)
	}
	handle := os.Args[1]

	// Load .env if present (optional)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if !cfg.HasShopifyCredentials() {
		fmt.Fprintln(os.Stderr, "SHOPIFY_SHOP_DOMAIN and SHOPIFY_ACCESS_TOKEN are required")
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	svc := service.NewConfiguratorService(cfg.Shopify, logger)

	fmt.Printf("🔍 Fetching pricebook for product %q...\n", handle)
	raw, title, err := svc.FetchPricebook(context.Background(), handle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch pricebook: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Product title: %s\n", title)

	pb, err := pricebook.Parse([]byte(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Pricebook is invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Pricebook is valid")
	fmt.Println("\nBase prices:")
	orientations := make([]string, 0, len(pb.Base))
	for o := range pb.Base {
		orientations = append(orientations, o)
	}
	sort.Strings(orientations)
	for _, o := range orientations {
		sizes := make([]string, 0, len(pb.Base[o]))
		for s := range pb.Base[o] {
			sizes = append(sizes, s)
		}
		sort.Strings(sizes)
		for _, s := range sizes {
			fmt.Printf("  %-12s %-10s %s\n", o, s, pricebook.FormatPrice(pb.Base[o][s]))
		}
	}

	fmt.Println("\nAdds:")
	for _, add := range pb.Adds {
		if add.IsFlat() {
			fmt.Printf("  %-12s flat %s\n", add.Key, pricebook.FormatPrice(*add.Flat))
			continue
		}
		labels := make([]string, 0, len(add.Choices))
		for l := range add.Choices {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		for _, l := range labels {
			fmt.Printf("  %-12s %-10s %s\n", add.Key, l, pricebook.FormatPrice(add.Choices[l]))
		}
	}

	fmt.Printf("\nSKU format: %s (prefix %s)\n", pb.SKU.Format, pb.SKU.Prefix)
	if len(pb.SKUMap) > 0 {
		fmt.Printf("SKU overrides: %d\n", len(pb.SKUMap))
	}
}
