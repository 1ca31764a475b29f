package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faisal-netizen/configurator-api/internal/config"
	"github.com/faisal-netizen/configurator-api/internal/pricebook"
	"github.com/faisal-netizen/configurator-api/internal/service"
	"github.com/faisal-netizen/configurator-api/pkg/errors"
)

// DraftOrderCreator is the slice of ConfiguratorService the handler
// depends on; tests stub it.
type DraftOrderCreator interface {
	FetchPricebook(ctx context.Context, handle string) (raw string, productTitle string, err error)
	CreateDraftOrder(ctx context.Context, params service.DraftOrderParams) (invoiceURL string, err error)
}

// DefaultLineItemTitle is used when neither the request nor the product
// carries a title.
const DefaultLineItemTitle = "Configured Item"

// CreateDraftOrderRequest represents the draft order payload
type CreateDraftOrderRequest struct {
	ProductHandle string               `json:"productHandle"`
	ProductTitle  string               `json:"productTitle"`
	Selection     *pricebook.Selection `json:"selection"`
}

// HandleCreateDraftOrder handles POST /v1/orders/draft: it prices a
// configuration selection against the product's pricebook metafield and
// creates a Shopify draft order for it, returning the invoice URL.
func HandleCreateDraftOrder(cfg *config.Config, svc DraftOrderCreator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.HasShopifyCredentials() {
			logger.Error("Shopify credentials not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing_env"})
			return
		}

		var req CreateDraftOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_payload"})
			return
		}
		if req.ProductHandle == "" || req.Selection == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_payload"})
			return
		}
		sel := *req.Selection

		// External read: product title + pricebook metafield
		rawPricebook, storedTitle, err := svc.FetchPricebook(c.Request.Context(), req.ProductHandle)
		if err != nil {
			var notFound *errors.ErrNotFound
			if stderrors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no_pricebook_for_" + req.ProductHandle})
				return
			}
			logger.Error("Failed to fetch pricebook",
				zap.String("product_handle", req.ProductHandle),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "draft_order_failed"})
			return
		}

		// A malformed pricebook is a merchant-side defect: logged with full
		// detail, surfaced to the caller only as the generic failure tag.
		pb, err := pricebook.Parse([]byte(rawPricebook))
		if err != nil {
			logger.Error("Malformed pricebook document",
				zap.String("product_handle", req.ProductHandle),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "draft_order_failed"})
			return
		}

		unitPrice, sku, err := resolveQuote(pb, sel)
		if err != nil {
			var validation *errors.ErrValidation
			if stderrors.As(err, &validation) {
				logger.Warn("Selection failed validation",
					zap.String("product_handle", req.ProductHandle),
					zap.String("reason", validation.Message),
					zap.Any("fields", validation.Fields),
				)
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Message})
				return
			}
			logger.Error("Failed to resolve quote",
				zap.String("product_handle", req.ProductHandle),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "draft_order_failed"})
			return
		}

		title := req.ProductTitle
		if title == "" {
			title = storedTitle
		}
		if title == "" {
			title = DefaultLineItemTitle
		}

		// External write: create the draft order
		invoiceURL, err := svc.CreateDraftOrder(c.Request.Context(), service.DraftOrderParams{
			ProductHandle: req.ProductHandle,
			Title:         title,
			Selection:     sel,
			Pricebook:     pb,
			UnitPrice:     unitPrice,
			SKU:           sku,
		})
		if err != nil {
			var userErr *errors.ErrUserError
			if stderrors.As(err, &userErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user_error", "details": userErr.Details})
				return
			}
			logger.Error("Failed to create draft order",
				zap.String("product_handle", req.ProductHandle),
				zap.String("sku", sku),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "draft_order_failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"invoice_url": invoiceURL})
	}
}

// resolveQuote prices the selection against the parsed pricebook and derives
// its SKU. Unpriceable selections come back as *errors.ErrValidation whose
// Message is the response error tag.
func resolveQuote(pb *pricebook.Pricebook, sel pricebook.Selection) (float64, string, error) {
	if sel.Orientation == "" || sel.Size == "" {
		return 0, "", &errors.ErrValidation{
			Message: "missing_orientation_or_size",
			Fields: map[string]string{
				"orientation": sel.Orientation,
				"size":        sel.Size,
			},
		}
	}

	unitPrice := pricebook.ComputePrice(pb, sel)
	if unitPrice <= 0 {
		return 0, "", &errors.ErrValidation{
			Message: "invalid_price_computation",
			Fields: map[string]string{
				"orientation": sel.Orientation,
				"size":        sel.Size,
			},
		}
	}

	return unitPrice, pricebook.BuildSKU(pb, sel), nil
}
