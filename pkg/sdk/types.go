package tierank

import (
	"github.com/kailas-cloud/tierank/internal/domain/document"
	domrank "github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
	"github.com/kailas-cloud/tierank/internal/usecase/search"
)

// Kind is the content domain of a candidate.
type Kind string

// Kind constants.
const (
	KindMovie   Kind = Kind(source.Movie)
	KindTV      Kind = Kind(source.TV)
	KindPodcast Kind = Kind(source.Podcast)
	KindPerson  Kind = Kind(source.Person)
	KindBook    Kind = Kind(source.Book)
	KindAuthor  Kind = Kind(source.Author)
)

// Document is a candidate as decoded from the index: field name to value.
// Numbers may be float64, json.Number, ints or numeric strings.
type Document map[string]any

// SortKey orders hits within a domain; lower sorts first.
type SortKey = domrank.Key

// Per-domain sort keys.
type (
	MediaKey   = domrank.MediaKey
	PodcastKey = domrank.PodcastKey
	PersonKey  = domrank.PersonKey
	BookKey    = domrank.BookKey
)

// Hit is one ranked candidate.
type Hit struct {
	Document Document
	Tier     int
	Rule     string
	Key      SortKey
}

// DomainResult is the ranked, truncated list of one domain.
type DomainResult struct {
	Kind  Kind
	Total int
	Hits  []Hit
}

// Hero is the promoted top hit.
type Hero struct {
	Kind Kind
	Hit  Hit
}

// RankRequest is the input of Client.Rank.
type RankRequest struct {
	Query      string
	Candidates map[Kind][]Document
	// Limit caps every domain; zero means the client default.
	Limit int
}

// RankResult is the output of Client.Rank.
type RankResult struct {
	Query      string
	Normalized string
	Aliases    []string
	Domains    []DomainResult
	Hero       *Hero
}

// Normalize returns the canonical form used for every comparison: lower
// case letters and digits, other runs collapsed into "_".
func Normalize(text string) string {
	return textnorm.Normalize(text)
}

func toFields(docs []Document) []document.Fields {
	out := make([]document.Fields, len(docs))
	for i, d := range docs {
		out[i] = document.Fields(d)
	}
	return out
}

func toSourceKinds(kinds []Kind) []source.Kind {
	if len(kinds) == 0 {
		return nil
	}
	out := make([]source.Kind, len(kinds))
	for i, k := range kinds {
		out[i] = source.Kind(k)
	}
	return out
}

func toSearchRequest(req RankRequest) *search.Request {
	cands := make(map[source.Kind][]document.Fields, len(req.Candidates))
	for k, docs := range req.Candidates {
		cands[source.Kind(k)] = toFields(docs)
	}
	return &search.Request{Query: req.Query, Candidates: cands, Limit: req.Limit}
}

func toHit(h search.Hit) Hit {
	return Hit{
		Document: Document(h.Document),
		Tier:     int(h.Tier()),
		Rule:     h.Rule,
		Key:      h.Key,
	}
}

func toDomainResult(r search.DomainResult) DomainResult {
	hits := make([]Hit, len(r.Hits))
	for i, h := range r.Hits {
		hits[i] = toHit(h)
	}
	return DomainResult{Kind: Kind(r.Kind), Total: r.Total, Hits: hits}
}

func toRankResult(r search.Response) RankResult {
	out := RankResult{
		Query:      r.Query,
		Normalized: r.Normalized,
		Aliases:    r.Aliases,
		Domains:    make([]DomainResult, len(r.Domains)),
	}
	for i, d := range r.Domains {
		out.Domains[i] = toDomainResult(d)
	}
	if r.Hero != nil {
		out.Hero = &Hero{Kind: Kind(r.Hero.Kind), Hit: toHit(r.Hero.Hit)}
	}
	return out
}
