package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/faisal-netizen/configurator-api/internal/config"
	"github.com/faisal-netizen/configurator-api/internal/pricebook"
	"github.com/faisal-netizen/configurator-api/internal/shopify"
	"github.com/faisal-netizen/configurator-api/pkg/errors"
)

// DraftOrderTag marks every draft order created by the configurator so
// they can be found in Shopify admin search.
const DraftOrderTag = "configurator"

type ConfiguratorService struct {
	client *shopify.Client
	logger *zap.Logger
}

// NewConfiguratorService creates a new configurator service
func NewConfiguratorService(cfg config.ShopifyConfig, logger *zap.Logger) *ConfiguratorService {
	return &ConfiguratorService{
		client: shopify.NewClient(cfg, logger),
		logger: logger,
	}
}

// DraftOrderParams carries everything the draft-order mutation needs for
// the single configured line item.
type DraftOrderParams struct {
	ProductHandle string
	Title         string
	Selection     pricebook.Selection
	Pricebook     *pricebook.Pricebook
	UnitPrice     float64
	SKU           string
}

// FetchPricebook fetches a product's pricebook metafield and stored title
// by handle. A missing product or empty metafield yields *errors.ErrNotFound.
func (s *ConfiguratorService) FetchPricebook(ctx context.Context, handle string) (string, string, error) {
	variables := map[string]interface{}{
		"handle": handle,
	}

	resp, err := s.client.Execute(ctx, shopify.ProductPricebookQuery, variables)
	if err != nil {
		return "", "", fmt.Errorf("fetch product pricebook: %w", err)
	}

	var result struct {
		ProductByHandle *struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
		} `json:"productByHandle"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", "", fmt.Errorf("parse product pricebook response: %w", err)
	}

	product := result.ProductByHandle
	if product == nil {
		return "", "", &errors.ErrNotFound{Resource: "pricebook", ID: handle}
	}
	if product.Metafield == nil || strings.TrimSpace(product.Metafield.Value) == "" {
		return "", "", &errors.ErrNotFound{Resource: "pricebook", ID: handle}
	}

	return product.Metafield.Value, product.Title, nil
}

// CreateDraftOrder creates a Shopify draft order for a configured item
// and returns its invoice URL. Field-level userErrors from Shopify are
// surfaced as *errors.ErrUserError.
func (s *ConfiguratorService) CreateDraftOrder(ctx context.Context, params DraftOrderParams) (string, error) {
	lineTitle := fmt.Sprintf("%s — %s %s", params.Title, params.Selection.Orientation, params.Selection.Size)
	priceStr := pricebook.FormatPrice(params.UnitPrice)
	requiresShipping := true

	customAttrs := []shopify.DraftOrderAttributeInput{
		{Key: "Orientation", Value: params.Selection.Orientation},
		{Key: "Size", Value: params.Selection.Size},
	}
	for _, add := range params.Pricebook.Adds {
		customAttrs = append(customAttrs, shopify.DraftOrderAttributeInput{
			Key:   add.Key,
			Value: params.Selection.OptionString(add.Key),
		})
	}

	sku := params.SKU
	input := shopify.DraftOrderInput{
		LineItems: []shopify.DraftOrderLineItemInput{
			{
				Title:             &lineTitle,
				OriginalUnitPrice: &priceStr,
				Quantity:          1,
				SKU:               &sku,
				RequiresShipping:  &requiresShipping,
				CustomAttributes:  customAttrs,
			},
		},
		Tags: []string{DraftOrderTag, "product:" + params.ProductHandle},
		Note: stringPtr(fmt.Sprintf("Configurator order for product %s", params.ProductHandle)),
	}

	variables := map[string]interface{}{
		"input": input,
	}

	resp, err := s.client.Execute(ctx, shopify.DraftOrderCreateMutation, variables)
	if err != nil {
		return "", fmt.Errorf("failed to create draft order: %w", err)
	}

	// NOTE: shopify.Client.Execute returns GraphQLResponse where resp.Data is already the "data" object.
	// So resp.Data looks like: { "draftOrderCreate": { ... } } (no outer {"data": ...} wrapper).
	var result struct {
		DraftOrderCreate struct {
			DraftOrder struct {
				ID         string `json:"id"`
				InvoiceURL string `json:"invoiceUrl"`
			} `json:"draftOrder"`
			UserErrors []errors.UserErrorDetail `json:"userErrors"`
		} `json:"draftOrderCreate"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("failed to parse draft order response: %w", err)
	}

	if len(result.DraftOrderCreate.UserErrors) > 0 {
		return "", &errors.ErrUserError{Details: result.DraftOrderCreate.UserErrors}
	}

	invoiceURL := result.DraftOrderCreate.DraftOrder.InvoiceURL
	if invoiceURL == "" {
		return "", fmt.Errorf("draft order created without invoice URL (id %s)", result.DraftOrderCreate.DraftOrder.ID)
	}

	s.logger.Info("Created draft order",
		zap.String("draft_order_id", result.DraftOrderCreate.DraftOrder.ID),
		zap.String("product_handle", params.ProductHandle),
		zap.String("sku", params.SKU),
	)
	return invoiceURL, nil
}

func stringPtr(s string) *string {
	return &s
}
