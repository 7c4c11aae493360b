package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTier(t *testing.T) {
	before := testutil.ToFloat64(RankTierTotal.WithLabelValues("book", "3"))
	ObserveTier("book", 3)
	ObserveTier("book", 3)

	after := testutil.ToFloat64(RankTierTotal.WithLabelValues("book", "3"))
	if after-before != 2 {
		t.Errorf("expected +2, got %f", after-before)
	}
}

func TestRegisterRankingMetrics_Idempotent(t *testing.T) {
	RegisterRankingMetrics()
	RegisterRankingMetrics() // must not panic on duplicate registration
}
