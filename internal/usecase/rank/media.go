package rank

import (
	"strings"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

type mediaView struct {
	rawTitle string
	title    string
	director string
	cast     []string
	keywords []string
	genres   []string
	// others holds director, cast, keywords and genres for the
	// "any other field" rules.
	others []string
}

func newMediaView(d *document.Media) mediaView {
	v := mediaView{
		rawTitle: d.Title,
		title:    textnorm.Normalize(d.Title),
		director: textnorm.Normalize(d.Director),
		cast:     normalizeAll(d.Cast),
		keywords: normalizeAll(d.Keywords),
		genres:   normalizeAll(d.Genres),
	}
	v.others = make([]string, 0, 1+len(v.cast)+len(v.keywords)+len(v.genres))
	v.others = append(v.others, v.director)
	v.others = append(v.others, v.cast...)
	v.others = append(v.others, v.keywords...)
	v.others = append(v.others, v.genres...)
	return v
}

var mediaRules = []rule[mediaView]{
	{0, "raw_title", func(q *Query, v *mediaView) bool { return q.rawEquals(v.rawTitle) }},
	{1, "title", func(q *Query, v *mediaView) bool { return q.norm == v.title }},
	{2, "director", func(q *Query, v *mediaView) bool { return q.norm == v.director }},
	{3, "cast", func(q *Query, v *mediaView) bool { return anyEqual(v.cast, q.norm) }},
	{4, "keyword", func(q *Query, v *mediaView) bool { return anyEqual(v.keywords, q.norm) }},
	{4, "title_alias", func(q *Query, v *mediaView) bool {
		for _, a := range q.longAliases {
			if strings.Contains(v.title, a) {
				return true
			}
		}
		return false
	}},
	{5, "keyword_alias_prefix", func(q *Query, v *mediaView) bool {
		for _, a := range q.longAliases {
			if anyPrefix(v.keywords, a) {
				return true
			}
		}
		return false
	}},
	{5, "genre", func(q *Query, v *mediaView) bool { return anyEqual(v.genres, q.norm) }},
	{6, "title_token", func(q *Query, v *mediaView) bool { return textnorm.HasToken(v.title, q.norm) }},
	{7, "director_token", func(q *Query, v *mediaView) bool { return textnorm.HasToken(v.director, q.norm) }},
	{8, "cast_token", func(q *Query, v *mediaView) bool { return anyToken(v.cast, q.norm) }},
	{9, "keyword_token", func(q *Query, v *mediaView) bool { return anyToken(v.keywords, q.norm) }},
	{10, "genre_token", func(q *Query, v *mediaView) bool { return anyToken(v.genres, q.norm) }},
	{11, "title_substring", func(q *Query, v *mediaView) bool { return q.containedIn(v.title) }},
	{12, "field_substring", func(q *Query, v *mediaView) bool {
		for _, f := range v.others {
			if q.containedIn(f) {
				return true
			}
		}
		return false
	}},
	{13, "title_prefix", func(q *Query, v *mediaView) bool { return strings.HasPrefix(v.title, q.norm) }},
	{14, "field_prefix", func(q *Query, v *mediaView) bool { return anyPrefix(v.others, q.norm) }},
}

// ScoreMedia ranks a movie or TV document against q.
func ScoreMedia(q *Query, d *document.Media) rank.MediaKey {
	key, _ := scoreMedia(q, d)
	return key
}

func scoreMedia(q *Query, d *document.Media) (rank.MediaKey, string) {
	v := newMediaView(d)
	tier, name := evaluate(mediaRules, q, &v, rank.MediaFallback)
	return rank.MediaKey{Tier: tier, Year: d.Year, Popularity: d.Popularity}, name
}
