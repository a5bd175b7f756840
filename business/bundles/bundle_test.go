package bundles

import (
	"testing"

	"cartBoost/domain"
)

func pair(priceA, priceB float64) []domain.BundleProductRef {
	return []domain.BundleProductRef{
		{ProductID: "1", VariantID: "11", Title: "A", Price: priceA},
		{ProductID: "2", VariantID: "22", Title: "B", Price: priceB},
	}
}

func TestBuildBundleEconomics(t *testing.T) {
	t.Run("TwentyPercentOfHundred", func(t *testing.T) {
		b, ok := buildBundle(domain.BundleSourceRules, "Combo", 20, pair(60, 40))
		if !ok {
			t.Fatal("expected a valid bundle")
		}
		if b.RegularTotal != 100 {
			t.Errorf("regular total: got %v, want 100", b.RegularTotal)
		}
		if b.BundlePrice != 80 {
			t.Errorf("bundle price: got %v, want 80", b.BundlePrice)
		}
		if b.SavingsAmount != 20 {
			t.Errorf("savings: got %v, want 20", b.SavingsAmount)
		}
	})

	t.Run("ZeroDiscount", func(t *testing.T) {
		b, _ := buildBundle(domain.BundleSourceRules, "Combo", 0, pair(19.99, 5.01))
		if b.BundlePrice != b.RegularTotal {
			t.Errorf("bundle price %v should equal regular total %v", b.BundlePrice, b.RegularTotal)
		}
		if b.SavingsAmount != 0 {
			t.Errorf("savings: got %v, want 0", b.SavingsAmount)
		}
	})

	t.Run("FullDiscount", func(t *testing.T) {
		b, _ := buildBundle(domain.BundleSourceRules, "Combo", 100, pair(60, 40))
		if b.BundlePrice != 0 {
			t.Errorf("bundle price: got %v, want 0", b.BundlePrice)
		}
		if b.SavingsAmount != b.RegularTotal {
			t.Errorf("savings %v should equal regular total %v", b.SavingsAmount, b.RegularTotal)
		}
	})

	t.Run("DiscountClampedToRange", func(t *testing.T) {
		b, _ := buildBundle(domain.BundleSourceRules, "Combo", 150, pair(60, 40))
		if b.DiscountPercent != 100 {
			t.Errorf("discount: got %v, want 100", b.DiscountPercent)
		}
		if b.BundlePrice != 0 {
			t.Errorf("bundle price: got %v, want 0", b.BundlePrice)
		}

		b, _ = buildBundle(domain.BundleSourceRules, "Combo", -5, pair(60, 40))
		if b.DiscountPercent != 0 {
			t.Errorf("discount: got %v, want 0", b.DiscountPercent)
		}
	})

	t.Run("EconomicsInvariantAcrossDiscounts", func(t *testing.T) {
		for pct := 0.0; pct <= 100; pct += 12.5 {
			b, _ := buildBundle(domain.BundleSourceML, "Combo", pct, pair(33.33, 66.67))
			wantPrice := roundCents(b.RegularTotal * (1 - b.DiscountPercent/100))
			if b.BundlePrice != wantPrice {
				t.Errorf("pct=%v: bundle price %v, want %v", pct, b.BundlePrice, wantPrice)
			}
			wantSavings := roundCents(b.RegularTotal - b.BundlePrice)
			if b.SavingsAmount != wantSavings {
				t.Errorf("pct=%v: savings %v, want %v", pct, b.SavingsAmount, wantSavings)
			}
		}
	})

	t.Run("RejectsFewerThanTwoProducts", func(t *testing.T) {
		_, ok := buildBundle(domain.BundleSourceManual, "Solo", 10, []domain.BundleProductRef{
			{ProductID: "1", Price: 10},
		})
		if ok {
			t.Error("a single-product bundle must be rejected")
		}

		_, ok = buildBundle(domain.BundleSourceManual, "None", 10, nil)
		if ok {
			t.Error("an empty bundle must be rejected")
		}
	})

	t.Run("StatusAndSource", func(t *testing.T) {
		b, _ := buildBundle(domain.BundleSourceManual, "Combo", 10, pair(1, 2))
		if b.Status != domain.BundleStatusActive {
			t.Errorf("status: got %q, want %q", b.Status, domain.BundleStatusActive)
		}
		if b.Source != domain.BundleSourceManual {
			t.Errorf("source: got %q, want %q", b.Source, domain.BundleSourceManual)
		}
	})
}

func TestBundleIDDeterministic(t *testing.T) {
	products := pair(10, 20)
	reversed := []domain.BundleProductRef{products[1], products[0]}

	a := bundleID(domain.BundleSourceRules, products)
	b := bundleID(domain.BundleSourceRules, reversed)
	if a != b {
		t.Errorf("id must not depend on product order: %q vs %q", a, b)
	}

	c := bundleID(domain.BundleSourceML, products)
	if a == c {
		t.Error("different sources must produce different ids")
	}

	if a != bundleID(domain.BundleSourceRules, products) {
		t.Error("id must be stable across calls")
	}
}
