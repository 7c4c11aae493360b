// Package rank scores candidate documents of every content domain with
// ordered tier tables and detects exact matches worth promoting.
package rank

import (
	"slices"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

// Engine scores candidate documents of every domain. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	aliases AliasSource
}

// NewEngine creates an engine. A nil alias source disables alias expansion.
func NewEngine(aliases AliasSource) *Engine {
	if aliases == nil {
		aliases = NoAliases{}
	}
	return &Engine{aliases: aliases}
}

// Prepare normalizes raw and expands it through the engine's alias source.
func (e *Engine) Prepare(raw string) Query {
	norm := textnorm.Normalize(raw)
	if norm == "" {
		return NewQuery(raw, nil)
	}
	return NewQuery(raw, e.aliases.SearchAliases(norm))
}

// Scored is a candidate together with its sort key and the rule that
// produced its tier.
type Scored struct {
	Fields document.Fields
	Key    rank.Key
	Rule   string
}

// Score ranks one document of the given kind. Author documents are ordered
// with the person rules. Unknown kinds get a nil key.
func Score(q *Query, kind source.Kind, f document.Fields) Scored {
	s := Scored{Fields: f}
	switch {
	case kind.IsMedia():
		d := document.MediaFrom(f)
		s.Key, s.Rule = scoreMedia(q, &d)
	case kind == source.Podcast:
		d := document.PodcastFrom(f)
		s.Key, s.Rule = scorePodcast(q, &d)
	case kind == source.Person || kind == source.Author:
		d := document.PersonFrom(f)
		s.Key, s.Rule = scorePerson(q, &d)
	case kind == source.Book:
		d := document.BookFrom(f)
		s.Key, s.Rule = scoreBook(q, &d)
	}
	return s
}

// Rank scores docs and returns them ordered best first. The sort is stable,
// so fully tied documents keep their retrieval order.
func Rank(q *Query, kind source.Kind, docs []document.Fields) []Scored {
	out := make([]Scored, len(docs))
	for i, f := range docs {
		out[i] = Score(q, kind, f)
	}
	slices.SortStableFunc(out, func(a, b Scored) int {
		return rank.Compare(a.Key, b.Key)
	})
	return out
}
