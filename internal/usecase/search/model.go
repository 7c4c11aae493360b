package search

import (
	"github.com/kailas-cloud/tierank/internal/domain/document"
	domrank "github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/source"
)

// Request is one aggregated ranking call.
type Request struct {
	Query      string
	Candidates map[source.Kind][]document.Fields
	// Limit caps every domain; zero means the configured default.
	Limit int
}

// Hit is one ranked candidate.
type Hit struct {
	Document document.Fields
	Key      domrank.Key
	Rule     string
}

// Tier returns the match tier of the hit.
func (h Hit) Tier() domrank.Tier {
	if h.Key == nil {
		return -1
	}
	return h.Key.TierValue()
}

// DomainResult is the ranked list of one domain.
type DomainResult struct {
	Kind  source.Kind
	Total int // candidates received before the limit
	Hits  []Hit
}

// Hero is the promoted top hit of a domain.
type Hero struct {
	Kind source.Kind
	Hit  Hit
}

// Response is the result of Rank. Domains follow source.All order.
type Response struct {
	Query      string
	Normalized string
	Aliases    []string
	Domains    []DomainResult
	Hero       *Hero
}
