package domain

// CatalogProduct is the storefront platform's view of one product,
// normalized to bare ids at the repository boundary.
type CatalogProduct struct {
	ID          string  `json:"id"`
	VariantID   string  `json:"variant_id"`
	Title       string  `json:"title"`
	Vendor      string  `json:"vendor"`
	ProductType string  `json:"product_type"`
	Price       float64 `json:"price"`
}
