package bundles

import (
	"context"
	"errors"
	"testing"

	"cartBoost/domain"
)

func TestPlatformResolver(t *testing.T) {
	ctx := context.Background()

	anchor := domain.CatalogProduct{ID: "100", VariantID: "1001", Title: "Blue Wool Scarf", Price: 40}
	recs := []domain.CatalogProduct{
		{ID: "201", VariantID: "2011", Title: "Hat", Price: 38},
		{ID: "202", VariantID: "2021", Title: "Gloves", Price: 22},
		{ID: "203", VariantID: "2031", Title: "Socks", Price: 12},
		{ID: "204", VariantID: "2041", Title: "Coat", Price: 120},
		{ID: "205", VariantID: "2051", Title: "Boots", Price: 90},
	}

	params := ResolveParams{
		Shop:            "demo.myshopify.com",
		AnchorProductID: "100",
		Limit:           1,
		DiscountPercent: 15,
		BundleTitle:     "Complete your setup",
	}

	t.Run("PairsEachRecommendationWithAnchor", func(t *testing.T) {
		catalog := &fakeCatalog{anchor: anchor, recs: recs}
		out := NewPlatformResolver(catalog).Resolve(ctx, params)

		// at least 3 pairs even when limit is 1
		if len(out) != 3 {
			t.Fatalf("got %d bundles, want 3", len(out))
		}

		for _, b := range out {
			if len(b.Products) != 2 {
				t.Fatalf("bundle size: got %d, want 2", len(b.Products))
			}
			if b.Products[0].ProductID != anchor.ID {
				t.Errorf("first product: got %s, want the anchor", b.Products[0].ProductID)
			}
			if b.Name != params.BundleTitle {
				t.Errorf("name: got %q, want %q", b.Name, params.BundleTitle)
			}
			if b.Source != domain.BundleSourceRules {
				t.Errorf("source: got %q, want %q", b.Source, domain.BundleSourceRules)
			}
		}
	})

	t.Run("LargerLimitIsHonored", func(t *testing.T) {
		catalog := &fakeCatalog{anchor: anchor, recs: recs}
		p := params
		p.Limit = 4

		out := NewPlatformResolver(catalog).Resolve(ctx, p)
		if len(out) != 4 {
			t.Errorf("got %d bundles, want 4", len(out))
		}
	})

	t.Run("FiltersAnchorAndExcluded", func(t *testing.T) {
		withAnchor := append([]domain.CatalogProduct{anchor}, recs...)
		catalog := &fakeCatalog{anchor: anchor, recs: withAnchor}
		p := params
		p.Limit = 10
		p.ExcludeProductID = "202"

		out := NewPlatformResolver(catalog).Resolve(ctx, p)
		for _, b := range out {
			partner := b.Products[1].ProductID
			if partner == anchor.ID {
				t.Error("anchor paired with itself")
			}
			if partner == "202" {
				t.Error("excluded product proposed as partner")
			}
		}
	})

	t.Run("UnresolvableAnchorIsSoft", func(t *testing.T) {
		catalog := &fakeCatalog{recs: recs} // no anchor registered
		out := NewPlatformResolver(catalog).Resolve(ctx, params)
		if len(out) != 0 {
			t.Errorf("got %d bundles, want 0", len(out))
		}
	})

	t.Run("RecommendationFailureIsSoft", func(t *testing.T) {
		catalog := &fakeCatalog{err: errors.New("network down")}
		out := NewPlatformResolver(catalog).Resolve(ctx, params)
		if len(out) != 0 {
			t.Errorf("got %d bundles, want 0", len(out))
		}
	})

	t.Run("NoRecommendationsGivesEmpty", func(t *testing.T) {
		catalog := &fakeCatalog{anchor: anchor}
		out := NewPlatformResolver(catalog).Resolve(ctx, params)
		if len(out) != 0 {
			t.Errorf("got %d bundles, want 0", len(out))
		}
	})
}
