package rank

import (
	"testing"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/rank"
)

func TestScorePerson_TierTable(t *testing.T) {
	tests := []struct {
		query, name string
		want        rank.Tier
	}{
		{"Tom Hanks", "Tom Hanks", 0},
		{"tom-hanks", "Tom Hanks", 1},
		{"hanks", "Tom Hanks", 2},
		{"han", "Tom Hanks", 3},
		{"Tom Hanks", "Thomas Hanks", 5},
		{"Tom Hanks", "", 5},
	}
	for _, tc := range tests {
		t.Run(tc.query+"/"+tc.name, func(t *testing.T) {
			q := NewQuery(tc.query, nil)
			d := document.Person{Name: tc.name}
			if got := ScorePerson(&q, &d).Tier; got != tc.want {
				t.Errorf("tier = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScorePerson_NameLengthInRunes(t *testing.T) {
	q := NewQuery("zoe", nil)
	d := document.Person{Name: "Zoë Saldaña", Popularity: 7}
	key := ScorePerson(&q, &d)
	if key.NameLength != 11 {
		t.Errorf("NameLength = %d, want 11", key.NameLength)
	}
	if key.Popularity != 7 {
		t.Errorf("Popularity = %v, want 7", key.Popularity)
	}
}

func TestScorePerson_ShorterNameWinsTie(t *testing.T) {
	q := NewQuery("hanks", nil)
	short := document.Person{Name: "Tom Hanks", Popularity: 1}
	long := document.Person{Name: "Colin Hanks Jr", Popularity: 99}
	if ScorePerson(&q, &short).Compare(ScorePerson(&q, &long)) >= 0 {
		t.Error("shorter name must sort first within the same tier")
	}
}
