package compose

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Placeholder marks where the headline text is substituted into a pattern.
const Placeholder = "{headline}"

// Template is a fixed post pattern with exactly one headline slot.
type Template struct {
	Name    string
	Pattern string
}

// Render substitutes headline text into the pattern.
func (t Template) Render(headline string) string {
	return strings.Replace(t.Pattern, Placeholder, headline, 1)
}

func (t Template) valid() bool {
	return strings.Contains(t.Pattern, Placeholder)
}

// builtin is the closed template set. Decorations stay outside the
// placeholder so the composer can truncate headline text independently.
var builtin = []Template{
	{Name: "breaking", Pattern: "🔥 Breaking: " + Placeholder},
	{Name: "just-in", Pattern: "📰 Just in: " + Placeholder},
	{Name: "flash", Pattern: "⚡️ " + Placeholder},
	{Name: "world", Pattern: "🌍 News: " + Placeholder},
	{Name: "eyes", Pattern: Placeholder + " 👀"},
	{Name: "megaphone", Pattern: "📢 " + Placeholder},
	{Name: "idea", Pattern: "💡 " + Placeholder},
	{Name: "alert", Pattern: "🚨 " + Placeholder},
}

// Builtin returns a copy of the built-in template set.
func Builtin() []Template {
	out := make([]Template, len(builtin))
	copy(out, builtin)
	return out
}

// Selection policies.
const (
	SelectCycle  = "cycle"
	SelectRandom = "random"
)

// Selector picks one template per headline so repeated runs vary their
// output. Both policies reach every template in the set.
type Selector struct {
	templates []Template
	mode      string

	// intn is swappable in tests for deterministic random selection.
	intn func(n int) int
}

// NewSelector creates a selector over templates with the given policy.
// A nil template list uses the built-in set.
func NewSelector(templates []Template, mode string) (*Selector, error) {
	if templates == nil {
		templates = Builtin()
	}
	if len(templates) == 0 {
		return nil, errors.New("selector: at least one template is required")
	}
	for _, t := range templates {
		if !t.valid() {
			return nil, fmt.Errorf("selector: template %q: %w", t.Name, ErrInvalidTemplate)
		}
	}

	switch mode {
	case SelectCycle, SelectRandom:
		// valid
	default:
		return nil, fmt.Errorf("selector: unknown mode %q (want %s or %s)", mode, SelectCycle, SelectRandom)
	}

	return &Selector{templates: templates, mode: mode, intn: rand.Intn}, nil
}

// Pick returns the template for the headline at index.
func (s *Selector) Pick(index int) Template {
	if s.mode == SelectRandom {
		return s.templates[s.intn(len(s.templates))]
	}
	if index < 0 {
		index = -index
	}
	return s.templates[index%len(s.templates)]
}

// Templates returns the selector's template set.
func (s *Selector) Templates() []Template {
	out := make([]Template, len(s.templates))
	copy(out, s.templates)
	return out
}
