package rank

import "github.com/kailas-cloud/tierank/internal/domain/rank"

// rule assigns tier to a candidate when match holds. Rule tables are
// evaluated top to bottom and the first match wins, so table order is the
// precedence order.
type rule[V any] struct {
	tier  rank.Tier
	name  string
	match func(q *Query, v *V) bool
}

// evaluate returns the tier and rule name of the first matching rule, or the
// fallback tier. A query with no normalized form can only match on raw text.
func evaluate[V any](rules []rule[V], q *Query, v *V, fallback rank.Tier) (rank.Tier, string) {
	if q.IsBlank() {
		return fallback, ruleFallback
	}
	for i := range rules {
		r := &rules[i]
		if q.norm == "" && r.tier != 0 {
			break
		}
		if r.match(q, v) {
			return r.tier, r.name
		}
	}
	return fallback, ruleFallback
}

const ruleFallback = "fallback"
