package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/faisal-netizen/configurator-api/internal/pricebook"
)

// quote prices a selection against a local pricebook file, for checking a
// merchant's document before attaching it to the product metafield.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/quote/main.go <pricebook.json> <selection.json>")
		fmt.Println(`Example selection: {"orientation":"Portrait","size":"Small","Frame":true}`)
		os.Exit(1)
	}

	pbData, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read pricebook: %v\n", err)
		os.Exit(1)
	}
	pb, err := pricebook.Parse(pbData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Pricebook is invalid: %v\n", err)
		os.Exit(1)
	}

	selData, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read selection: %v\n", err)
		os.Exit(1)
	}
	var sel pricebook.Selection
	if err := json.Unmarshal(selData, &sel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse selection: %v\n", err)
		os.Exit(1)
	}
	if sel.Orientation == "" || sel.Size == "" {
		fmt.Fprintln(os.Stderr, "Selection must include orientation and size")
		os.Exit(1)
	}

	price := pricebook.ComputePrice(pb, sel)
	sku := pricebook.BuildSKU(pb, sel)

	fmt.Printf("Price: %s\n", pricebook.FormatPrice(price))
	fmt.Printf("SKU:   %s\n", sku)
	if price <= 0 {
		fmt.Println("⚠️  Price is not positive; the API would reject this selection (invalid_price_computation)")
		os.Exit(2)
	}
}
