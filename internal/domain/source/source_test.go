package source

import "testing"

func TestIsValid(t *testing.T) {
	for _, k := range All() {
		if !k.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", k)
		}
	}

	invalid := []Kind{"", "movies", "MOVIE", "music"}
	for _, k := range invalid {
		if k.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", k)
		}
	}
}

func TestIsMedia(t *testing.T) {
	if !Movie.IsMedia() || !TV.IsMedia() {
		t.Error("movie and tv must be media kinds")
	}
	if Podcast.IsMedia() || Book.IsMedia() || Person.IsMedia() {
		t.Error("only movie and tv are media kinds")
	}
}

func TestAll_Unique(t *testing.T) {
	seen := make(map[Kind]bool)
	for _, k := range All() {
		if seen[k] {
			t.Errorf("duplicate kind %q", k)
		}
		seen[k] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 kinds, got %d", len(seen))
	}
}
