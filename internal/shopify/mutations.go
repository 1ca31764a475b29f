package shopify

// DraftOrderCreateMutation creates a draft order and returns its invoice URL
const DraftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder {
      id
      invoiceUrl
    }
    userErrors {
      field
      message
    }
  }
}
`

// DraftOrderInput represents the input for creating a draft order
type DraftOrderInput struct {
	LineItems []DraftOrderLineItemInput `json:"lineItems"`
	Tags      []string                  `json:"tags,omitempty"`
	Note      *string                   `json:"note,omitempty"`
}

type DraftOrderLineItemInput struct {
	Title *string `json:"title,omitempty"`
	// For custom line items (no variantId), Shopify expects originalUnitPrice, not price.
	OriginalUnitPrice *string                    `json:"originalUnitPrice,omitempty"`
	Quantity          int                        `json:"quantity"`
	SKU               *string                    `json:"sku,omitempty"`
	RequiresShipping  *bool                      `json:"requiresShipping,omitempty"`
	CustomAttributes  []DraftOrderAttributeInput `json:"customAttributes,omitempty"`
}

type DraftOrderAttributeInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
