package shopify

// ProductPricebookQuery fetches a product's title and its pricebook
// metafield (custom.pricebook) by handle.
const ProductPricebookQuery = `
query getProductPricebook($handle: String!) {
  productByHandle(handle: $handle) {
    id
    title
    metafield(namespace: "custom", key: "pricebook") {
      value
    }
  }
}
`
