package rank

import (
	"testing"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
)

func TestScorePodcast_TierTable(t *testing.T) {
	d := document.PodcastFrom(document.Fields{
		"title":         "Hardcore History Weekly",
		"author":        "Dan Carlin",
		"categories":    []any{"History", "Society & Culture"},
		"popularity":    80.0,
		"episode_count": 70,
	})
	tests := []struct {
		query string
		want  rank.Tier
	}{
		{"Hardcore History Weekly", 0},
		{"hardcore-history-weekly", 1},
		{"hardcore", 2},
		{"dan carlin", 3},
		{"society & culture", 4},
		{"history", 4},
		{"weekly", 5},
		{"carlin", 6},
		{"culture", 7},
		{"core", 8},
		{"carl", 9},
		{"zzz", 11},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			q := NewQuery(tc.query, nil)
			if got := ScorePodcast(&q, &d).Tier; got != tc.want {
				t.Errorf("ScorePodcast(%q) tier = %d, want %d", tc.query, got, tc.want)
			}
		})
	}
}

func TestScorePodcast_LeadingQueryBeatsTrailingMention(t *testing.T) {
	q := NewQuery("ai", nil)
	lead := document.PodcastFrom(document.Fields{"title": "AI in Action"})
	trail := document.PodcastFrom(document.Fields{"title": "The Agile Brand... AI"})

	leadKey := ScorePodcast(&q, &lead)
	trailKey := ScorePodcast(&q, &trail)
	if leadKey.Tier != 2 {
		t.Errorf("lead tier = %d, want 2", leadKey.Tier)
	}
	if trailKey.Tier <= leadKey.Tier {
		t.Errorf("trailing mention tier %d must be worse than %d", trailKey.Tier, leadKey.Tier)
	}
}

func TestScorePodcast_SecondaryKeys(t *testing.T) {
	q := NewQuery("zzz", nil)
	d := document.PodcastFrom(document.Fields{"title": "x", "popularity": 3.5, "episode_count": 12})
	key := ScorePodcast(&q, &d)
	if key.Popularity != 3.5 || key.EpisodeCount != 12 {
		t.Errorf("unexpected key %+v", key)
	}
}
