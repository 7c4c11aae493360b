package rank

import (
	"strings"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

type podcastView struct {
	rawTitle   string
	title      string
	author     string
	categories []string
}

var podcastRules = []rule[podcastView]{
	{0, "raw_title", func(q *Query, v *podcastView) bool { return q.rawEquals(v.rawTitle) }},
	{1, "title", func(q *Query, v *podcastView) bool { return q.norm == v.title }},
	// Titles that lead with the query beat titles that mention it later.
	{2, "title_first_token", func(q *Query, v *podcastView) bool { return textnorm.FirstToken(v.title) == q.norm }},
	{3, "author", func(q *Query, v *podcastView) bool { return q.norm == v.author }},
	{4, "category", func(q *Query, v *podcastView) bool { return anyEqual(v.categories, q.norm) }},
	{5, "title_token", func(q *Query, v *podcastView) bool { return textnorm.HasToken(v.title, q.norm) }},
	{6, "author_token", func(q *Query, v *podcastView) bool { return textnorm.HasToken(v.author, q.norm) }},
	{7, "category_token", func(q *Query, v *podcastView) bool { return anyToken(v.categories, q.norm) }},
	{8, "title_substring", func(q *Query, v *podcastView) bool { return strings.Contains(v.title, q.norm) }},
	{9, "field_substring", func(q *Query, v *podcastView) bool {
		return (v.author != "" && strings.Contains(v.author, q.norm)) || anyContains(v.categories, q.norm)
	}},
	{10, "field_prefix", func(q *Query, v *podcastView) bool {
		return strings.HasPrefix(v.author, q.norm) || anyPrefix(v.categories, q.norm)
	}},
}

// ScorePodcast ranks a podcast document against q.
func ScorePodcast(q *Query, d *document.Podcast) rank.PodcastKey {
	key, _ := scorePodcast(q, d)
	return key
}

func scorePodcast(q *Query, d *document.Podcast) (rank.PodcastKey, string) {
	v := podcastView{
		rawTitle:   d.Title,
		title:      textnorm.Normalize(d.Title),
		author:     textnorm.Normalize(d.Author),
		categories: normalizeAll(d.Categories),
	}
	tier, name := evaluate(podcastRules, q, &v, rank.PodcastFallback)
	return rank.PodcastKey{Tier: tier, Popularity: d.Popularity, EpisodeCount: d.EpisodeCount}, name
}
