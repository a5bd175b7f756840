package bundles

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"cartBoost/domain"
	"cartBoost/pkg/logger"
)

const (
	candidatePoolSize = 75

	scoreFloor    = 0.15
	vendorBoost   = 0.3
	typeBoost     = 0.2
	priceBoostMax = 0.3
)

// SimilarityResolver is the terminal fallback: it scores a best-selling
// candidate pool against the anchor by title token overlap plus
// vendor/type/price-proximity boosts and pairs the top scorers with the
// anchor.
type SimilarityResolver struct {
	catalogRepo CatalogRepository
}

func NewSimilarityResolver(catalogRepo CatalogRepository) *SimilarityResolver {
	return &SimilarityResolver{catalogRepo: catalogRepo}
}

type scoredCandidate struct {
	product domain.CatalogProduct
	score   float64
}

func (r *SimilarityResolver) Resolve(ctx context.Context, p ResolveParams) []domain.GeneratedBundle {
	anchor, err := r.catalogRepo.GetProduct(ctx, p.Shop, p.AnchorProductID)
	if err != nil {
		logger.Warn("similarity resolver could not load anchor product", "shop", p.Shop, "product_id", p.AnchorProductID, "error", err)
		return nil
	}

	pool, err := r.catalogRepo.ListBestSelling(ctx, p.Shop, candidatePoolSize)
	if err != nil {
		logger.Warn("similarity resolver could not load candidate pool", "shop", p.Shop, "error", err)
		return nil
	}

	anchorTokens := tokenize(anchor.Title)

	candidates := make([]scoredCandidate, 0, len(pool))
	for _, c := range pool {
		if c.ID == anchor.ID || (p.ExcludeProductID != "" && c.ID == p.ExcludeProductID) {
			continue
		}
		candidates = append(candidates, scoredCandidate{
			product: c,
			score:   similarityScore(anchor, anchorTokens, c),
		})
	}

	// stable sort keeps the platform's best-selling order on equal scores
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	max := pairLimit(p.Limit)
	if len(candidates) < max {
		max = len(candidates)
	}

	anchorRef := productRef(anchor)

	out := make([]domain.GeneratedBundle, 0, max)
	for _, c := range candidates[:max] {
		bundle, ok := buildBundle(domain.BundleSourceML, p.BundleTitle, p.DiscountPercent, []domain.BundleProductRef{anchorRef, productRef(c.product)})
		if !ok {
			continue
		}
		out = append(out, bundle)
	}

	return out
}

// similarityScore = jaccard(title tokens) + vendor/type boosts + price
// proximity, floored at scoreFloor so every candidate stays selectable.
// There is deliberately no upper cap.
func similarityScore(anchor domain.CatalogProduct, anchorTokens map[string]struct{}, candidate domain.CatalogProduct) float64 {
	score := jaccard(anchorTokens, tokenize(candidate.Title))

	if anchor.Vendor != "" && candidate.Vendor == anchor.Vendor {
		score += vendorBoost
	}
	if anchor.ProductType != "" && candidate.ProductType == anchor.ProductType {
		score += typeBoost
	}

	score += priceProximityBoost(anchor.Price, candidate.Price)

	if score < scoreFloor {
		score = scoreFloor
	}

	return score
}

// priceProximityBoost rewards candidates priced near the anchor, decaying
// linearly to zero at delta == max(20, anchorPrice*0.5). The denominator
// floor keeps cheap anchors from collapsing the window.
func priceProximityBoost(anchorPrice, candidatePrice float64) float64 {
	if anchorPrice <= 0 {
		return 0
	}

	delta := math.Abs(candidatePrice - anchorPrice)
	denom := math.Max(20, anchorPrice*0.5)

	boost := priceBoostMax - math.Min(priceBoostMax, delta/denom*priceBoostMax)
	if boost < 0 {
		return 0
	}

	return boost
}

// tokenize lower-cases the title, strips everything that is not a letter,
// digit, or space, and splits on whitespace.
func tokenize(title string) map[string]struct{} {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, title)

	tokens := make(map[string]struct{})
	for _, t := range strings.Fields(cleaned) {
		tokens[t] = struct{}{}
	}

	return tokens
}

// jaccard is intersection over union of two token sets, with the union
// treated as at least 1 to avoid dividing by zero.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union < 1 {
		union = 1
	}

	return float64(intersection) / float64(union)
}
