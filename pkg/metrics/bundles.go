package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full bundle generation (all resolvers tried)
	BundleGenerateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bundle_generate_latency_seconds",
		Help:    "Latency of the bundle generation pipeline",
		Buckets: prometheus.DefBuckets,
	})

	// Bundles served, labeled by the resolver that produced them
	BundlesGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bundles_generated_total",
		Help: "Total number of generated bundles by source",
	}, []string{"source"})

	// Generations where every resolver came back empty
	BundleGenerateEmpty = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundle_generate_empty_total",
		Help: "Total number of generations that produced no bundles",
	})

	// Redis cache hits on the generate endpoint
	BundleCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundle_cache_hits_total",
		Help: "Total number of bundle cache hits",
	})
)

func Init() {
	prometheus.MustRegister(
		BundleGenerateLatency,
		BundlesGenerated,
		BundleGenerateEmpty,
		BundleCacheHits,
	)
}
