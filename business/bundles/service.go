package bundles

import (
	"context"
	"fmt"

	"cartBoost/domain"
	"cartBoost/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBundleTitle labels pairwise bundles when the caller supplies none.
const DefaultBundleTitle = "Complete your setup"

const defaultLimit = 3

// BundleService runs the resolver chain in priority order: manual
// definitions, then platform recommendations, then content similarity.
// The first resolver to produce anything wins; later resolvers are never
// invoked. An empty result from every resolver is a valid outcome, not an
// error.
type BundleService struct {
	resolvers []Resolver
}

func NewBundleService(manual, platform, similarity Resolver) *BundleService {
	return &BundleService{
		resolvers: []Resolver{manual, platform, similarity},
	}
}

func (s *BundleService) GenerateBundles(ctx context.Context, p ResolveParams) ([]domain.GeneratedBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	p.DiscountPercent = clampDiscount(p.DiscountPercent)
	if p.BundleTitle == "" {
		p.BundleTitle = DefaultBundleTitle
	}

	timer := prometheus.NewTimer(metrics.BundleGenerateLatency)
	defer timer.ObserveDuration()

	for _, r := range s.resolvers {
		out := r.Resolve(ctx, p)
		if len(out) > 0 {
			metrics.BundlesGenerated.WithLabelValues(out[0].Source).Add(float64(len(out)))
			return out, nil
		}
	}

	metrics.BundleGenerateEmpty.Inc()

	return []domain.GeneratedBundle{}, nil
}
