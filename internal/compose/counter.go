package compose

import "github.com/rivo/uniseg"

// Counting strategy names as used in config.
const (
	CountGraphemes = "graphemes"
	CountWeighted  = "weighted"
)

// Counter measures text length in the unit the target platform bills
// against its character limit.
type Counter interface {
	Count(s string) int
}

// GraphemeCounter counts user-perceived characters: one multi-byte emoji
// is one unit. This is the default because the templates embed emoji.
type GraphemeCounter struct{}

func (GraphemeCounter) Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// WeightedCounter approximates the platform's weighted rule: code points
// in a handful of Latin and punctuation ranges count as one unit, every
// other code point counts as two.
type WeightedCounter struct{}

func (WeightedCounter) Count(s string) int {
	total := 0
	for _, r := range s {
		total += runeWeight(r)
	}
	return total
}

func runeWeight(r rune) int {
	switch {
	case r <= 0x10FF:
		return 1
	case r >= 0x2000 && r <= 0x200D:
		return 1
	case r >= 0x2010 && r <= 0x201F:
		return 1
	case r >= 0x2032 && r <= 0x2037:
		return 1
	}
	return 2
}

// NewCounter returns the counter for a strategy name, or false if the
// name is unknown.
func NewCounter(strategy string) (Counter, bool) {
	switch strategy {
	case CountGraphemes, "":
		return GraphemeCounter{}, true
	case CountWeighted:
		return WeightedCounter{}, true
	}
	return nil, false
}
