package compose

import "testing"

func TestGraphemeCounter(t *testing.T) {
	c := GraphemeCounter{}

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"emoji", "🔥", 1},
		{"emoji with text", "go 🚀 go", 7},
		{"zwj family", "👨‍👩‍👧", 1},
		{"cyrillic", "наука", 5},
	}

	for _, tt := range tests {
		if got := c.Count(tt.in); got != tt.want {
			t.Errorf("%s: count(%q) = %d, want %d", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestWeightedCounter(t *testing.T) {
	c := WeightedCounter{}

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "abc", 3},
		{"cyrillic weighs one", "да", 2},
		{"cjk weighs two", "日本", 4},
		{"en dash weighs one", "–", 1},
		{"mixed", "a日", 3},
	}

	for _, tt := range tests {
		if got := c.Count(tt.in); got != tt.want {
			t.Errorf("%s: count(%q) = %d, want %d", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestNewCounter(t *testing.T) {
	if _, ok := NewCounter(CountGraphemes); !ok {
		t.Error("graphemes strategy not recognized")
	}
	if _, ok := NewCounter(CountWeighted); !ok {
		t.Error("weighted strategy not recognized")
	}
	if _, ok := NewCounter(""); !ok {
		t.Error("empty strategy should default to graphemes")
	}
	if _, ok := NewCounter("bytes"); ok {
		t.Error("unknown strategy should not be recognized")
	}
}
