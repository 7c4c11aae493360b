package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Ranking Prometheus metrics.
var (
	RankTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tierank",
			Name:      "rank_tier_total",
			Help:      "Scored documents by kind and match tier",
		},
		[]string{"kind", "tier"},
	)

	RankDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tierank",
			Name:      "rank_duration_seconds",
			Help:      "Time spent scoring and sorting one domain",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"kind"},
	)

	RankCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tierank",
			Name:      "rank_candidates",
			Help:      "Candidates received per domain",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		},
		[]string{"kind"},
	)

	HeroTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tierank",
			Name:      "hero_total",
			Help:      "Hero promotion outcomes by kind (none when nothing was promoted)",
		},
		[]string{"kind"},
	)

	AliasLookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tierank",
			Name:      "alias_lookup_total",
			Help:      "Alias lookups by result",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)

	SeedLoadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tierank",
			Name:      "alias_seed_load_total",
			Help:      "Alias seed loads by result",
		},
		[]string{"result"}, // "applied" / "skipped"
	)
)

// Alias lookup results.
const (
	AliasHit   = "hit"
	AliasMiss  = "miss"
	AliasError = "error"
)

// Seed load results.
const (
	SeedApplied = "applied"
	SeedSkipped = "skipped"
)

// HeroNone labels requests without a promoted hero.
const HeroNone = "none"

var rankMetricsRegistered bool

// RegisterRankingMetrics registers Prometheus ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankTierTotal)
	prometheus.MustRegister(RankDuration)
	prometheus.MustRegister(RankCandidates)
	prometheus.MustRegister(HeroTotal)
	prometheus.MustRegister(AliasLookupTotal)
	prometheus.MustRegister(SeedLoadTotal)
	rankMetricsRegistered = true
}

// ObserveTier counts one scored document.
func ObserveTier(kind string, tier int) {
	RankTierTotal.WithLabelValues(kind, strconv.Itoa(tier)).Inc()
}
