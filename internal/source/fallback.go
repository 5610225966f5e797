package source

import (
	"context"
	"fmt"
)

// Fallback wraps a primary source and falls back to a secondary one when
// the primary fails or yields nothing. Downstream consumers never observe
// a fetch failure.
type Fallback struct {
	primary   Source
	secondary Source
}

// NewFallback creates a fallback source. Both sources are required.
func NewFallback(primary, secondary Source) (*Fallback, error) {
	if primary == nil || secondary == nil {
		return nil, fmt.Errorf("fallback: both sources are required")
	}
	return &Fallback{primary: primary, secondary: secondary}, nil
}

func (f *Fallback) Name() string {
	return f.primary.Name()
}

func (f *Fallback) Fetch(ctx context.Context) ([]Headline, error) {
	headlines, err := f.primary.Fetch(ctx)
	if err == nil && len(headlines) > 0 {
		return headlines, nil
	}
	if err != nil {
		fmt.Printf("  %s unavailable, falling back to %s headlines\n", f.primary.Name(), f.secondary.Name())
	}
	return f.secondary.Fetch(ctx)
}
