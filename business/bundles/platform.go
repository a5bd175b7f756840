package bundles

import (
	"context"

	"cartBoost/domain"
	"cartBoost/pkg/logger"
)

// PlatformResolver pairs the anchor with entries from the platform's
// native "customers also bought" recommendation list.
type PlatformResolver struct {
	catalogRepo CatalogRepository
}

func NewPlatformResolver(catalogRepo CatalogRepository) *PlatformResolver {
	return &PlatformResolver{catalogRepo: catalogRepo}
}

func (r *PlatformResolver) Resolve(ctx context.Context, p ResolveParams) []domain.GeneratedBundle {
	anchor, err := r.catalogRepo.GetProduct(ctx, p.Shop, p.AnchorProductID)
	if err != nil {
		logger.Warn("platform resolver could not load anchor product, falling through", "shop", p.Shop, "product_id", p.AnchorProductID, "error", err)
		return nil
	}

	recs, err := r.catalogRepo.GetRecommendations(ctx, p.Shop, p.AnchorProductID)
	if err != nil {
		logger.Warn("platform recommendations request failed, falling through", "shop", p.Shop, "product_id", p.AnchorProductID, "error", err)
		return nil
	}

	anchorRef := productRef(anchor)
	max := pairLimit(p.Limit)

	out := make([]domain.GeneratedBundle, 0, max)
	for _, rec := range recs {
		if len(out) >= max {
			break
		}
		if rec.ID == anchor.ID || (p.ExcludeProductID != "" && rec.ID == p.ExcludeProductID) {
			continue
		}

		bundle, ok := buildBundle(domain.BundleSourceRules, p.BundleTitle, p.DiscountPercent, []domain.BundleProductRef{anchorRef, productRef(rec)})
		if !ok {
			continue
		}
		out = append(out, bundle)
	}

	return out
}
