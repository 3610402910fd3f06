package classify

import "testing"

func TestMatchesHeadingPattern(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Chapter 1", true},
		{"chapter 12 overview", true},
		{"1. Introduction", true},
		{"2.3 Design Goals", true},
		{"IV. Results", true},
		{"Appendix B: Tables", true},
		{"INTRODUCTION AND SCOPE", true},
		{"Getting Started:", true},
		{"Related Work", true},
		{"the quick brown fox jumped over", false},
		{"see section 4.2 for details", false},
		{"The 3 bears went home", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := MatchesHeadingPattern(tt.text); got != tt.want {
			t.Errorf("MatchesHeadingPattern(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
