package rank

import (
	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

// Exact-match tier ceilings. Podcasts are looser because show titles routinely
// carry author or network branding around the name people search for.
const (
	exactMediaMaxTier   rank.Tier = 1
	exactPersonMaxTier  rank.Tier = 1
	exactBookMaxTier    rank.Tier = 1
	exactPodcastMaxTier rank.Tier = 3
)

// IsExactMatch reports whether doc is confidently the single best answer to
// raw within its domain. Blank queries and unknown kinds never match.
func (e *Engine) IsExactMatch(raw string, f document.Fields, kind source.Kind) bool {
	q := e.Prepare(raw)
	return IsExactMatch(&q, f, kind)
}

// IsExactMatch is the prepared-query form of Engine.IsExactMatch.
func IsExactMatch(q *Query, f document.Fields, kind source.Kind) bool {
	if q.IsBlank() {
		return false
	}
	switch {
	case kind.IsMedia():
		d := document.MediaFrom(f)
		return ScoreMedia(q, &d).Tier <= exactMediaMaxTier
	case kind == source.Person:
		d := document.PersonFrom(f)
		return ScorePerson(q, &d).Tier <= exactPersonMaxTier
	case kind == source.Book:
		d := document.BookFrom(f)
		return ScoreBook(q, &d).Tier <= exactBookMaxTier
	case kind == source.Podcast:
		d := document.PodcastFrom(f)
		return ScorePodcast(q, &d).Tier <= exactPodcastMaxTier
	case kind == source.Author:
		return q.norm != "" && q.norm == textnorm.Normalize(document.AuthorName(f))
	default:
		return false
	}
}
