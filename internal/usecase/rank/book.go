package rank

import (
	"strings"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

type bookView struct {
	rawTitle string
	title    string
	author   string
	subjects []string

	rawDescription string
	descNorm       string
	descDone       bool
}

// description normalizes the description on first use; most candidates are
// decided before the description rules are reached.
func (v *bookView) description() string {
	if !v.descDone {
		v.descNorm = textnorm.Normalize(v.rawDescription)
		v.descDone = true
	}
	return v.descNorm
}

var bookRules = []rule[bookView]{
	{0, "raw_title", func(q *Query, v *bookView) bool { return q.rawEquals(v.rawTitle) }},
	{1, "title", func(q *Query, v *bookView) bool { return q.norm == v.title }},
	{2, "title_first_token", func(q *Query, v *bookView) bool { return textnorm.FirstToken(v.title) == q.norm }},
	{3, "author", func(q *Query, v *bookView) bool { return q.norm == v.author }},
	{4, "subject", func(q *Query, v *bookView) bool { return anyEqual(v.subjects, q.norm) }},
	{5, "title_token", func(q *Query, v *bookView) bool { return textnorm.HasToken(v.title, q.norm) }},
	{6, "author_token", func(q *Query, v *bookView) bool { return textnorm.HasToken(v.author, q.norm) }},
	{7, "subject_token", func(q *Query, v *bookView) bool { return anyToken(v.subjects, q.norm) }},
	{8, "title_substring", func(q *Query, v *bookView) bool { return strings.Contains(v.title, q.norm) }},
	{9, "field_substring", func(q *Query, v *bookView) bool {
		return (v.author != "" && strings.Contains(v.author, q.norm)) || anyContains(v.subjects, q.norm)
	}},
	{10, "field_prefix", func(q *Query, v *bookView) bool {
		return strings.HasPrefix(v.author, q.norm) || anyPrefix(v.subjects, q.norm)
	}},
	{11, "description_word", func(q *Query, v *bookView) bool { return textnorm.HasToken(v.description(), q.norm) }},
	{12, "description_substring", func(q *Query, v *bookView) bool {
		d := v.description()
		return d != "" && strings.Contains(d, q.norm)
	}},
}

// ScoreBook ranks a book document against q. Ties fall back to popularity and
// then to the lowest work identifier.
func ScoreBook(q *Query, d *document.Book) rank.BookKey {
	key, _ := scoreBook(q, d)
	return key
}

func scoreBook(q *Query, d *document.Book) (rank.BookKey, string) {
	v := bookView{
		rawTitle:       d.Title,
		title:          textnorm.Normalize(d.Title),
		author:         textnorm.Normalize(d.Author),
		subjects:       normalizeAll(d.Subjects),
		rawDescription: d.Description,
	}
	tier, name := evaluate(bookRules, q, &v, rank.BookFallback)
	return rank.BookKey{Tier: tier, Popularity: d.Popularity, WorkID: d.WorkID()}, name
}
