package bundles

import (
	"context"
	"errors"
	"testing"

	"cartBoost/domain"
)

func TestManualResolver(t *testing.T) {
	ctx := context.Background()

	scarf := domain.CatalogProduct{ID: "100", VariantID: "1001", Title: "Blue Wool Scarf", Price: 40}
	hat := domain.CatalogProduct{ID: "200", VariantID: "2001", Title: "Blue Wool Hat", Price: 38}
	gloves := domain.CatalogProduct{ID: "300", VariantID: "3001", Title: "Wool Gloves", Price: 22}

	params := ResolveParams{
		Shop:            "demo.myshopify.com",
		AnchorProductID: "100",
		Limit:           5,
		DiscountPercent: 10,
	}

	t.Run("HydratesDefinitionWithLivePrices", func(t *testing.T) {
		repo := &fakeManualRepo{defs: []domain.ManualBundle{{
			ID:         "def-1",
			Shop:       params.Shop,
			Name:       "Winter Set",
			ProductIDs: productIDsJSON(t, "100", "200"),
			IsActive:   true,
		}}}
		catalog := &fakeCatalog{byID: map[string]domain.CatalogProduct{"100": scarf, "200": hat}}

		out := NewManualResolver(repo, catalog).Resolve(ctx, params)
		if len(out) != 1 {
			t.Fatalf("got %d bundles, want 1", len(out))
		}

		b := out[0]
		if b.Name != "Winter Set" {
			t.Errorf("name: got %q, want %q", b.Name, "Winter Set")
		}
		if b.Source != domain.BundleSourceManual {
			t.Errorf("source: got %q, want %q", b.Source, domain.BundleSourceManual)
		}
		if b.RegularTotal != 78 {
			t.Errorf("regular total: got %v, want 78", b.RegularTotal)
		}
		// no definition discount, falls back to the default
		if b.DiscountPercent != 10 {
			t.Errorf("discount: got %v, want 10", b.DiscountPercent)
		}
	})

	t.Run("DefinitionDiscountWins", func(t *testing.T) {
		repo := &fakeManualRepo{defs: []domain.ManualBundle{{
			ID:              "def-1",
			Shop:            params.Shop,
			Name:            "Winter Set",
			DiscountPercent: floatPtr(25),
			ProductIDs:      productIDsJSON(t, "100", "200"),
			IsActive:        true,
		}}}
		catalog := &fakeCatalog{byID: map[string]domain.CatalogProduct{"100": scarf, "200": hat}}

		out := NewManualResolver(repo, catalog).Resolve(ctx, params)
		if len(out) != 1 {
			t.Fatalf("got %d bundles, want 1", len(out))
		}
		if out[0].DiscountPercent != 25 {
			t.Errorf("discount: got %v, want the definition's 25", out[0].DiscountPercent)
		}
	})

	t.Run("DiscardsDefinitionWithDeletedProducts", func(t *testing.T) {
		// both referenced products are gone from the catalog
		repo := &fakeManualRepo{defs: []domain.ManualBundle{{
			ID:         "def-1",
			Shop:       params.Shop,
			Name:       "Ghost Set",
			ProductIDs: productIDsJSON(t, "998", "999"),
			IsActive:   true,
		}}}
		catalog := &fakeCatalog{byID: map[string]domain.CatalogProduct{}}

		out := NewManualResolver(repo, catalog).Resolve(ctx, params)
		if len(out) != 0 {
			t.Errorf("got %d bundles, want 0", len(out))
		}
	})

	t.Run("DiscardsDefinitionReducedToOneProduct", func(t *testing.T) {
		repo := &fakeManualRepo{defs: []domain.ManualBundle{{
			ID:         "def-1",
			Shop:       params.Shop,
			Name:       "Half Gone",
			ProductIDs: productIDsJSON(t, "100", "999"),
			IsActive:   true,
		}}}
		catalog := &fakeCatalog{byID: map[string]domain.CatalogProduct{"100": scarf}}

		out := NewManualResolver(repo, catalog).Resolve(ctx, params)
		if len(out) != 0 {
			t.Errorf("got %d bundles, want 0", len(out))
		}
	})

	t.Run("OneBatchedLookupForAllDefinitions", func(t *testing.T) {
		repo := &fakeManualRepo{defs: []domain.ManualBundle{
			{ID: "def-1", Shop: params.Shop, Name: "A", ProductIDs: productIDsJSON(t, "100", "200"), IsActive: true},
			{ID: "def-2", Shop: params.Shop, Name: "B", ProductIDs: productIDsJSON(t, "100", "300"), IsActive: true},
		}}
		catalog := &fakeCatalog{byID: map[string]domain.CatalogProduct{"100": scarf, "200": hat, "300": gloves}}

		out := NewManualResolver(repo, catalog).Resolve(ctx, params)
		if len(out) != 2 {
			t.Fatalf("got %d bundles, want 2", len(out))
		}
		if catalog.batchCalls != 1 {
			t.Errorf("catalog batch calls: got %d, want 1", catalog.batchCalls)
		}
	})

	t.Run("RepositoryFailureIsSoft", func(t *testing.T) {
		repo := &fakeManualRepo{err: errors.New("db down")}
		catalog := &fakeCatalog{}

		out := NewManualResolver(repo, catalog).Resolve(ctx, params)
		if len(out) != 0 {
			t.Errorf("got %d bundles, want 0", len(out))
		}
	})

	t.Run("CatalogFailureIsSoft", func(t *testing.T) {
		repo := &fakeManualRepo{defs: []domain.ManualBundle{{
			ID:         "def-1",
			Shop:       params.Shop,
			Name:       "Winter Set",
			ProductIDs: productIDsJSON(t, "100", "200"),
			IsActive:   true,
		}}}
		catalog := &fakeCatalog{err: errors.New("catalog down")}

		out := NewManualResolver(repo, catalog).Resolve(ctx, params)
		if len(out) != 0 {
			t.Errorf("got %d bundles, want 0", len(out))
		}
	})
}
