// Package compose turns headlines into posts that fit the platform
// character limit.
package compose

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dtroshin/newsforge/internal/source"
)

// DefaultLimit is the platform hard limit on post length.
const DefaultLimit = 280

// ellipsis marks truncated headline text.
const ellipsis = "…"

var (
	// ErrInvalidTemplate reports a template without a headline placeholder.
	ErrInvalidTemplate = errors.New("template has no headline placeholder")

	// ErrEmptyHeadline reports a headline with empty or whitespace-only text.
	ErrEmptyHeadline = errors.New("headline text is empty")
)

// Post is a finalized, length-bounded social post.
type Post struct {
	Body         string
	Length       int  // measured by the composer's counter, never above the limit
	LinkIncluded bool // true when the source link fit and was appended
	Headline     string
	Source       string
}

// Composer renders headlines into posts. It is stateless: identical
// inputs always produce identical posts.
type Composer struct {
	limit   int
	counter Counter
}

// NewComposer creates a composer with the given character limit and
// counting strategy. A nil counter counts grapheme clusters.
func NewComposer(limit int, counter Counter) (*Composer, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("compose: limit must be positive, got %d", limit)
	}
	if counter == nil {
		counter = GraphemeCounter{}
	}
	return &Composer{limit: limit, counter: counter}, nil
}

// Limit returns the composer's character limit.
func (c *Composer) Limit() int {
	return c.limit
}

// Compose renders one headline through a template into a post whose
// length never exceeds the limit. The source link is appended on its own
// line when it fits; otherwise only the headline portion is truncated at
// a word boundary, never the template decoration.
func (c *Composer) Compose(h source.Headline, tpl Template) (Post, error) {
	text := strings.TrimSpace(h.Text)
	if text == "" {
		return Post{}, ErrEmptyHeadline
	}
	if !tpl.valid() {
		return Post{}, fmt.Errorf("template %q: %w", tpl.Name, ErrInvalidTemplate)
	}

	body := tpl.Render(text)
	linkIncluded := false

	link := strings.TrimSpace(h.Link)
	switch {
	case c.counter.Count(body) > c.limit:
		truncated, err := c.truncateHeadline(text, tpl)
		if err != nil {
			return Post{}, err
		}
		body = tpl.Render(truncated)
	case link != "" && c.counter.Count(body)+1+c.counter.Count(link) <= c.limit:
		body = body + "\n" + link
		linkIncluded = true
	}

	length := c.counter.Count(body)
	if length > c.limit {
		return Post{}, fmt.Errorf("compose: body is %d units, limit is %d", length, c.limit)
	}

	return Post{
		Body:         body,
		Length:       length,
		LinkIncluded: linkIncluded,
		Headline:     h.Text,
		Source:       h.Source,
	}, nil
}

// truncateHeadline returns the longest prefix of text that, once marked
// with an ellipsis and rendered through tpl, fits the limit. The cut
// lands on a whitespace boundary unless the first word alone overflows
// the budget, in which case it falls inside that word at a grapheme
// boundary.
func (c *Composer) truncateHeadline(text string, tpl Template) (string, error) {
	decoration := c.counter.Count(tpl.Render(""))
	budget := c.limit - decoration - c.counter.Count(ellipsis)
	if budget <= 0 {
		return "", fmt.Errorf("compose: limit %d leaves no room for headline text", c.limit)
	}

	var (
		used    int
		hardCut int // byte offset of the last grapheme that fit
		wordCut int // byte offset of the last whitespace boundary that fit
	)
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		cluster := graphemes.Str()
		weight := c.counter.Count(cluster)
		if used+weight > budget {
			break
		}
		if isSpaceCluster(cluster) {
			wordCut = hardCut
		}
		_, to := graphemes.Positions()
		hardCut = to
		used += weight
	}

	cut := wordCut
	if cut == 0 {
		cut = hardCut
	}

	prefix := strings.TrimRightFunc(text[:cut], unicode.IsSpace)
	return prefix + ellipsis, nil
}

func isSpaceCluster(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsSpace(r)
}
