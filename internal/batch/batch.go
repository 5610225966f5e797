// Package batch drives the composer over a headline sequence and
// collects the results of one run.
package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroshin/newsforge/internal/compose"
	"github.com/dtroshin/newsforge/internal/source"
)

// ErrInvalidCount reports a non-positive requested post count.
var ErrInvalidCount = errors.New("requested post count must be positive")

// Batch is the complete output of one run.
type Batch struct {
	ID          string
	GeneratedAt time.Time
	Posts       []compose.Post
}

// Count returns the number of posts in the batch.
func (b Batch) Count() int {
	return len(b.Posts)
}

// Bodies returns the post bodies in order. Never nil.
func (b Batch) Bodies() []string {
	bodies := make([]string, 0, len(b.Posts))
	for _, p := range b.Posts {
		bodies = append(bodies, p.Body)
	}
	return bodies
}

// Generator produces batches from headline sequences.
type Generator struct {
	composer *compose.Composer
	selector *compose.Selector

	// Swappable in tests.
	now   func() time.Time
	newID func() string
}

// NewGenerator creates a generator. Both collaborators are required.
func NewGenerator(composer *compose.Composer, selector *compose.Selector) (*Generator, error) {
	if composer == nil {
		return nil, errors.New("batch: composer is required")
	}
	if selector == nil {
		return nil, errors.New("batch: selector is required")
	}
	return &Generator{
		composer: composer,
		selector: selector,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}, nil
}

// Generate composes up to requested posts from headlines, one post per
// headline, in order. A headline the composer rejects is skipped with a
// warning; the batch keeps going with the next one. An empty headline
// sequence yields an empty batch, not an error.
func (g *Generator) Generate(headlines []source.Headline, requested int) (Batch, error) {
	if requested <= 0 {
		return Batch{}, fmt.Errorf("%w, got %d", ErrInvalidCount, requested)
	}

	b := Batch{
		ID:          g.newID(),
		GeneratedAt: g.now(),
	}

	for i, h := range headlines {
		if len(b.Posts) == requested {
			break
		}
		post, err := g.composer.Compose(h, g.selector.Pick(i))
		if err != nil {
			fmt.Printf("  skipping headline %d: %v\n", i+1, err)
			continue
		}
		b.Posts = append(b.Posts, post)
	}

	return b, nil
}
