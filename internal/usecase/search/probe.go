package search

import (
	"errors"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	rankuc "github.com/kailas-cloud/tierank/internal/usecase/rank"
)

var errProbe = errors.New("engine probe: canary did not rank as exact match")

// Probe ranks a fixed canary and checks that it comes back as a tier 0
// exact match. It touches no store.
func (s *Service) Probe() error {
	q := rankuc.NewQuery("The Dark Knight", nil)
	docs := []document.Fields{
		{document.FieldTitle: "Batman Begins", document.FieldYear: 2005},
		{document.FieldTitle: "The Dark Knight", document.FieldYear: 2008},
	}
	ranked := rankuc.Rank(&q, source.Movie, docs)
	if len(ranked) != 2 || ranked[0].Key.TierValue() != 0 {
		return errProbe
	}
	if !rankuc.IsExactMatch(&q, ranked[0].Fields, source.Movie) {
		return errProbe
	}
	return nil
}
