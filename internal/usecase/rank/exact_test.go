package rank

import (
	"testing"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/source"
)

func TestIsExactMatch(t *testing.T) {
	e := NewEngine(nil)
	tests := []struct {
		name  string
		query string
		doc   document.Fields
		kind  source.Kind
		want  bool
	}{
		{"movie raw title", "Fight Club", document.Fields{"title": "Fight Club"}, source.Movie, true},
		{"movie normalized title", "fight club!", document.Fields{"title": "Fight Club"}, source.Movie, true},
		{"movie title token only", "fight", document.Fields{"title": "Fight Club"}, source.Movie, false},
		{"tv normalized title", "the office", document.Fields{"title": "The Office (US)", "search_title": "The Office"}, source.TV, true},
		{"movie director is not exact", "david fincher", document.Fields{"title": "Fight Club", "director_name": "David Fincher"}, source.Movie, false},
		{"podcast leading token", "ai", document.Fields{"title": "AI in Action"}, source.Podcast, true},
		{"podcast author", "dan carlin", document.Fields{"title": "Hardcore History", "author": "Dan Carlin"}, source.Podcast, true},
		{"podcast category too loose", "history", document.Fields{"title": "Hardcore", "categories": []any{"History"}}, source.Podcast, false},
		{"person exact", "Tom Hanks", document.Fields{"name": "Tom Hanks"}, source.Person, true},
		{"person token", "hanks", document.Fields{"name": "Tom Hanks"}, source.Person, false},
		{"book normalized title", "dune!", document.Fields{"title": "Dune"}, source.Book, true},
		{"book first token", "dune", document.Fields{"title": "Dune Messiah"}, source.Book, false},
		{"author case-insensitive", "Stephen King", document.Fields{"name": "stephen king"}, source.Author, true},
		{"author differs", "Stephen King", document.Fields{"name": "Stephen King Jr."}, source.Author, false},
		{"author ignores author_normalized", "stephen king", document.Fields{"author_normalized": "stephen_king"}, source.Author, false},
		{"author punctuation only", "!!!", document.Fields{"name": "!!!"}, source.Author, false},
		{"author punctuation query without name", "?!", document.Fields{"popularity": 3}, source.Author, false},
		{"blank query", "   ", document.Fields{"title": "   "}, source.Movie, false},
		{"empty query", "", document.Fields{"title": ""}, source.Book, false},
		{"unknown kind", "Fight Club", document.Fields{"title": "Fight Club"}, source.Kind("music"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.IsExactMatch(tc.query, tc.doc, tc.kind); got != tc.want {
				t.Errorf("IsExactMatch(%q, %v, %q) = %v, want %v", tc.query, tc.doc, tc.kind, got, tc.want)
			}
		})
	}
}
