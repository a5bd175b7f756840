package bundles

import (
	"context"

	"cartBoost/domain"
	"cartBoost/pkg/logger"
)

// ManualResolver serves merchant-curated bundle definitions that include
// the anchor product, hydrated with live prices from the catalog.
type ManualResolver struct {
	bundleRepo  ManualBundleRepository
	catalogRepo CatalogRepository
}

func NewManualResolver(bundleRepo ManualBundleRepository, catalogRepo CatalogRepository) *ManualResolver {
	return &ManualResolver{
		bundleRepo:  bundleRepo,
		catalogRepo: catalogRepo,
	}
}

func (r *ManualResolver) Resolve(ctx context.Context, p ResolveParams) []domain.GeneratedBundle {
	defs, err := r.bundleRepo.FindActiveByProduct(ctx, p.Shop, p.AnchorProductID, p.Limit)
	if err != nil {
		// a broken manual-bundle table degrades to the next resolver
		logger.Warn("manual bundle lookup failed, falling through", "shop", p.Shop, "product_id", p.AnchorProductID, "error", err)
		return nil
	}
	if len(defs) == 0 {
		return nil
	}

	// one batched catalog lookup for every product any definition references
	idSet := make(map[string]struct{})
	ids := make([]string, 0)
	for _, def := range defs {
		for _, id := range def.ProductIDList() {
			if _, ok := idSet[id]; ok {
				continue
			}
			idSet[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	catalogProducts, err := r.catalogRepo.GetProductsByIDs(ctx, p.Shop, ids)
	if err != nil {
		logger.Warn("manual bundle catalog hydration failed, falling through", "shop", p.Shop, "error", err)
		return nil
	}

	byID := make(map[string]domain.CatalogProduct, len(catalogProducts))
	for _, cp := range catalogProducts {
		byID[cp.ID] = cp
	}

	out := make([]domain.GeneratedBundle, 0, len(defs))
	for _, def := range defs {
		refs := make([]domain.BundleProductRef, 0, len(def.ProductIDList()))
		for _, id := range def.ProductIDList() {
			cp, ok := byID[id]
			if !ok {
				// deleted or unpublished product, skip it
				continue
			}
			refs = append(refs, productRef(cp))
		}

		discount := p.DiscountPercent
		if def.DiscountPercent != nil {
			discount = *def.DiscountPercent
		}

		bundle, ok := buildBundle(domain.BundleSourceManual, def.Name, discount, refs)
		if !ok {
			continue
		}
		out = append(out, bundle)
	}

	return out
}
