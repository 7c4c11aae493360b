package document

// Field names understood by the scorers.
const (
	FieldSearchTitle        = "search_title"
	FieldTitle              = "title"
	FieldName               = "name"
	FieldDirectorName       = "director_name"
	FieldCastNames          = "cast_names"
	FieldKeywords           = "keywords"
	FieldGenres             = "genres"
	FieldYear               = "year"
	FieldPopularity         = "popularity"
	FieldAuthorNormalized   = "author_normalized"
	FieldAuthor             = "author"
	FieldCategories         = "categories"
	FieldEpisodeCount       = "episode_count"
	FieldSubjectsNormalized = "subjects_normalized"
	FieldDescription        = "description"
	FieldPopularityScore    = "popularity_score"
	FieldOpenLibraryKey     = "openlibrary_key"
	FieldKey                = "key"
	FieldID                 = "id"
)

// Media is a movie or TV document.
type Media struct {
	Title      string
	Director   string
	Cast       []string
	Keywords   []string
	Genres     []string
	Year       int64
	Popularity float64
}

// MediaFrom reads a media document from raw fields.
func MediaFrom(f Fields) Media {
	return Media{
		Title:      f.String(FieldSearchTitle, FieldTitle),
		Director:   f.String(FieldDirectorName),
		Cast:       f.Strings(FieldCastNames),
		Keywords:   f.Strings(FieldKeywords),
		Genres:     f.Strings(FieldGenres),
		Year:       f.Int(FieldYear),
		Popularity: f.Float(FieldPopularity),
	}
}

// Podcast is a podcast show document.
type Podcast struct {
	Title        string
	Author       string
	Categories   []string
	Popularity   float64
	EpisodeCount int64
}

// PodcastFrom reads a podcast document from raw fields. The pre-normalized
// author wins over the raw one.
func PodcastFrom(f Fields) Podcast {
	return Podcast{
		Title:        f.String(FieldSearchTitle, FieldTitle),
		Author:       f.String(FieldAuthorNormalized, FieldAuthor),
		Categories:   f.Strings(FieldCategories),
		Popularity:   f.Float(FieldPopularity),
		EpisodeCount: f.Int(FieldEpisodeCount),
	}
}

// Person is a cast, crew or author document.
type Person struct {
	Name       string
	Popularity float64
}

// PersonFrom reads a person document from raw fields.
func PersonFrom(f Fields) Person {
	return Person{
		Name:       f.String(FieldSearchTitle, FieldName),
		Popularity: f.Float(FieldPopularity),
	}
}

// AuthorName returns the name used for author identity checks.
func AuthorName(f Fields) string {
	return f.String(FieldName, FieldSearchTitle)
}

// Book is a book work document.
type Book struct {
	Title       string
	Author      string
	Subjects    []string
	Description string
	Popularity  float64
	Key         string
}

// BookFrom reads a book document from raw fields.
func BookFrom(f Fields) Book {
	return Book{
		Title:       f.String(FieldSearchTitle, FieldTitle),
		Author:      f.String(FieldAuthorNormalized),
		Subjects:    f.Strings(FieldSubjectsNormalized),
		Description: f.String(FieldDescription),
		Popularity:  f.Float(FieldPopularityScore),
		Key:         f.String(FieldOpenLibraryKey, FieldKey, FieldID),
	}
}

// WorkID is the numeric work identifier parsed from the provider key.
func (b Book) WorkID() int64 {
	return ExtractWorkID(b.Key)
}
