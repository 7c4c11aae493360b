package rank

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/source"
)

func TestScoreBook_TierTable(t *testing.T) {
	d := document.BookFrom(document.Fields{
		"title":               "Dune Messiah",
		"author_normalized":   "frank_herbert",
		"subjects_normalized": []any{"science_fiction", "desert planets"},
		"description":         "The sequel continues Paul Atreides' story on Arrakis.",
		"popularity_score":    10.0,
		"openlibrary_key":     "/works/OL893415W",
	})
	tests := []struct {
		query string
		want  rank.Tier
	}{
		{"Dune Messiah", 0},
		{"dune-messiah", 1},
		{"dune", 2},
		{"frank herbert", 3},
		{"science fiction", 4},
		{"messiah", 5},
		{"herbert", 6},
		{"planets", 7},
		{"mess", 8},
		{"herb", 9},
		{"arrakis", 11},
		{"atreid", 12},
		{"zzz", 13},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			q := NewQuery(tc.query, nil)
			if got := ScoreBook(&q, &d).Tier; got != tc.want {
				t.Errorf("ScoreBook(%q) tier = %d, want %d", tc.query, got, tc.want)
			}
		})
	}
}

func TestScoreBook_WorkIDBreaksTies(t *testing.T) {
	q := NewQuery("dune", nil)
	docs := []document.Fields{
		{"title": "Dune", "openlibrary_key": "OL123W", "popularity_score": 5.0},
		{"title": "Dune", "openlibrary_key": "OL99W", "popularity_score": 5.0},
	}
	ranked := Rank(&q, source.Book, docs)
	if got := ranked[0].Fields["openlibrary_key"]; got != "OL99W" {
		t.Errorf("first = %v, want OL99W", got)
	}
}

func TestScoreBook_SentinelSortsLast(t *testing.T) {
	q := NewQuery("dune", nil)
	docs := []document.Fields{
		{"title": "Dune", "key": "isbn:9780441013593"},
		{"title": "Dune", "key": "/works/OL893415W"},
		{"title": "Dune"},
	}
	ranked := Rank(&q, source.Book, docs)
	var ids []int64
	for _, s := range ranked {
		ids = append(ids, s.Key.(rank.BookKey).WorkID)
	}
	want := []int64{893415, document.SentinelWorkID, document.SentinelWorkID}
	if !slices.Equal(ids, want) {
		t.Errorf("work ids = %v, want %v", ids, want)
	}
	// Stable sort keeps retrieval order among sentinel ties.
	if ranked[1].Fields["key"] != "isbn:9780441013593" {
		t.Errorf("expected stable order for tied documents, got %v", ranked[1].Fields)
	}
}
