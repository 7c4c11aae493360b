// Package rank defines the composite sort keys produced by the scorers.
//
// Every key orders by tier ascending first. Secondary fields are compared
// explicitly in their "better first" direction instead of being negated.
package rank

import "cmp"

// Tier is a match quality bucket. Lower is better; 0 is reserved for raw-text
// equality.
type Tier int

// Fallback tiers per domain.
const (
	MediaFallback   Tier = 15
	PodcastFallback Tier = 11
	PersonFallback  Tier = 5
	BookFallback    Tier = 13
)

// Key is implemented by every domain key.
type Key interface {
	TierValue() Tier
}

// MediaKey orders movies and TV: tier, newer year, higher popularity.
type MediaKey struct {
	Tier       Tier    `json:"tier"`
	Year       int64   `json:"year"`
	Popularity float64 `json:"popularity"`
}

// TierValue returns the key's tier.
func (k MediaKey) TierValue() Tier { return k.Tier }

// Compare returns -1 if k sorts before o, +1 if after, 0 if equal.
func (k MediaKey) Compare(o MediaKey) int {
	if c := cmp.Compare(k.Tier, o.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(o.Year, k.Year); c != 0 {
		return c
	}
	return cmp.Compare(o.Popularity, k.Popularity)
}

// PodcastKey orders podcasts: tier, higher popularity, more episodes.
type PodcastKey struct {
	Tier         Tier    `json:"tier"`
	Popularity   float64 `json:"popularity"`
	EpisodeCount int64   `json:"episode_count"`
}

// TierValue returns the key's tier.
func (k PodcastKey) TierValue() Tier { return k.Tier }

// Compare returns -1 if k sorts before o, +1 if after, 0 if equal.
func (k PodcastKey) Compare(o PodcastKey) int {
	if c := cmp.Compare(k.Tier, o.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(o.Popularity, k.Popularity); c != 0 {
		return c
	}
	return cmp.Compare(o.EpisodeCount, k.EpisodeCount)
}

// PersonKey orders people: tier, shorter name, higher popularity.
type PersonKey struct {
	Tier       Tier    `json:"tier"`
	NameLength int     `json:"name_length"`
	Popularity float64 `json:"popularity"`
}

// TierValue returns the key's tier.
func (k PersonKey) TierValue() Tier { return k.Tier }

// Compare returns -1 if k sorts before o, +1 if after, 0 if equal.
func (k PersonKey) Compare(o PersonKey) int {
	if c := cmp.Compare(k.Tier, o.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(k.NameLength, o.NameLength); c != 0 {
		return c
	}
	return cmp.Compare(o.Popularity, k.Popularity)
}

// BookKey orders books: tier, higher popularity, lower work id.
type BookKey struct {
	Tier       Tier    `json:"tier"`
	Popularity float64 `json:"popularity_score"`
	WorkID     int64   `json:"work_id"`
}

// TierValue returns the key's tier.
func (k BookKey) TierValue() Tier { return k.Tier }

// Compare returns -1 if k sorts before o, +1 if after, 0 if equal.
func (k BookKey) Compare(o BookKey) int {
	if c := cmp.Compare(k.Tier, o.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(o.Popularity, k.Popularity); c != 0 {
		return c
	}
	return cmp.Compare(k.WorkID, o.WorkID)
}
