package source

// Kind is the content domain a candidate document comes from.
type Kind string

// Source kind constants.
const (
	Movie   Kind = "movie"
	TV      Kind = "tv"
	Podcast Kind = "podcast"
	Person  Kind = "person"
	Book    Kind = "book"
	// Author is a person known for written work; matched by name identity only.
	Author Kind = "author"
)

// All lists every supported kind in default hero-promotion order.
func All() []Kind {
	return []Kind{Movie, TV, Person, Book, Podcast, Author}
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case Movie, TV, Podcast, Person, Book, Author:
		return true
	default:
		return false
	}
}

// IsMedia reports whether documents of this kind use the media field layout.
func (k Kind) IsMedia() bool {
	return k == Movie || k == TV
}
