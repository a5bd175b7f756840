package bundles

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"sort"
	"strings"

	"cartBoost/domain"
)

// buildBundle assembles a GeneratedBundle and computes its economics.
// Bundles with fewer than 2 products are invalid and reported via ok=false.
func buildBundle(source, name string, discountPercent float64, products []domain.BundleProductRef) (domain.GeneratedBundle, bool) {
	if len(products) < 2 {
		return domain.GeneratedBundle{}, false
	}

	discountPercent = clampDiscount(discountPercent)

	var regularTotal float64
	for _, p := range products {
		regularTotal += p.Price
	}
	regularTotal = roundCents(regularTotal)

	bundlePrice := roundCents(regularTotal * (1 - discountPercent/100))
	if bundlePrice < 0 {
		bundlePrice = 0
	}

	savings := roundCents(regularTotal - bundlePrice)
	if savings < 0 {
		savings = 0
	}

	return domain.GeneratedBundle{
		ID:              bundleID(source, products),
		Name:            name,
		Products:        products,
		RegularTotal:    regularTotal,
		BundlePrice:     bundlePrice,
		SavingsAmount:   savings,
		DiscountPercent: discountPercent,
		Status:          domain.BundleStatusActive,
		Source:          source,
	}, true
}

// bundleID derives a stable id from the source and the constituent product
// ids. Ids are sorted first so the result does not depend on catalog
// response ordering.
func bundleID(source string, products []domain.BundleProductRef) string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(source + "|" + strings.Join(ids, "|")))

	return source + "-" + hex.EncodeToString(sum[:])[:12]
}

func clampDiscount(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
