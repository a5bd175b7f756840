package bundles

import (
	"context"

	"cartBoost/domain"
)

// CatalogRepository is the storefront platform's product catalog. All ids
// crossing this interface are bare (prefix-stripped) ids. Every call is
// read-only and best-effort, single attempt.
type CatalogRepository interface {
	GetProduct(ctx context.Context, shop, productID string) (domain.CatalogProduct, error)
	GetProductsByIDs(ctx context.Context, shop string, productIDs []string) ([]domain.CatalogProduct, error)
	GetRecommendations(ctx context.Context, shop, productID string) ([]domain.CatalogProduct, error)
	ListBestSelling(ctx context.Context, shop string, first int) ([]domain.CatalogProduct, error)
}

// ManualBundleRepository reads merchant-curated bundle definitions.
type ManualBundleRepository interface {
	FindActiveByProduct(ctx context.Context, shop, productID string, limit int) ([]domain.ManualBundle, error)
}

// ResolveParams carries one generation request through the resolver chain.
type ResolveParams struct {
	Shop             string
	AnchorProductID  string
	Limit            int
	DiscountPercent  float64
	BundleTitle      string
	ExcludeProductID string
}

// Resolver is one bundle source in the fallback chain. Implementations fail
// soft: any collaborator error degrades to an empty result, never an error,
// so the orchestrator can fall through to the next source.
type Resolver interface {
	Resolve(ctx context.Context, p ResolveParams) []domain.GeneratedBundle
}

// pairLimit is how many pairwise bundles the platform and similarity
// resolvers produce: at least 3 even when the caller asked for fewer.
func pairLimit(limit int) int {
	if limit < 3 {
		return 3
	}
	return limit
}

func productRef(p domain.CatalogProduct) domain.BundleProductRef {
	return domain.BundleProductRef{
		ProductID: p.ID,
		VariantID: p.VariantID,
		Title:     p.Title,
		Price:     p.Price,
	}
}
