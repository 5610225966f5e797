package source

import "context"

// Headline is one news item as supplied by a source.
type Headline struct {
	Text      string // headline text
	Source    string // feed/publication name
	Link      string // link to the original article, may be empty
	Published string // human-readable publication date, may be empty
}

// Source supplies an ordered sequence of headlines. Every Fetch is
// independent; sources carry no state between runs.
type Source interface {
	// Name returns the source identifier (e.g. "rss", "demo").
	Name() string

	// Fetch returns the current headlines.
	Fetch(ctx context.Context) ([]Headline, error)
}
