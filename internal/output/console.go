// Package output writes finished batches to their destinations: the
// console and the JSON batch file.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dtroshin/newsforge/internal/batch"
)

const dividerWidth = 60

// Console prints a batch to a terminal, one post per block with its
// character count.
type Console struct {
	color bool
	limit int
}

// NewConsole creates a console printer. Set color=true for ANSI colors.
func NewConsole(color bool, limit int) *Console {
	return &Console{color: color, limit: limit}
}

// Print writes the batch to w.
func (c *Console) Print(w io.Writer, b batch.Batch) {
	divider := strings.Repeat("=", dividerWidth)
	rule := strings.Repeat("-", dividerWidth)

	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, c.bold(fmt.Sprintf("Generated %d posts", b.Count())))
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w)

	if b.Count() == 0 {
		fmt.Fprintln(w, "No posts generated.")
		return
	}

	for i, post := range b.Posts {
		header := fmt.Sprintf("Post #%d", i+1)
		if post.Source != "" {
			header += " — " + post.Source
		}
		fmt.Fprintln(w, c.bold(header))
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, post.Body)
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, c.dim(fmt.Sprintf("Characters: %d/%d", post.Length, c.limit)))
		fmt.Fprintln(w)
	}
}

// ANSI helpers — no-op when color=false.

func (c *Console) bold(s string) string {
	if !c.color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}

func (c *Console) dim(s string) string {
	if !c.color {
		return s
	}
	return "\033[2m" + s + "\033[0m"
}
