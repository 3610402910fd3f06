package extract

import (
	"testing"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

func TestDecodable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain", "Ordinary heading text", true},
		{"empty", "", true},
		{"accents", "café résumé", true},
		{"private use dominates", "ab", false},
		{"replacement chars dominate", "���ok", false},
		{"one bad rune among many", "mostly fine � text", true},
	}
	for _, tt := range tests {
		if got := Decodable(tt.text); got != tt.want {
			t.Errorf("%s: Decodable(%q) = %v, want %v", tt.name, tt.text, got, tt.want)
		}
	}
}

func TestPrintableRatio(t *testing.T) {
	if r := PrintableRatio(""); r != 1.0 {
		t.Errorf("empty string ratio = %v, want 1.0", r)
	}
	if r := PrintableRatio("ab"); r != 0.5 {
		t.Errorf("half-garbage ratio = %v, want 0.5", r)
	}
	if r := PrintableRatio("tabs\tand\nnewlines"); r != 1.0 {
		t.Errorf("whitespace should count printable, got %v", r)
	}
}

func TestMeasure(t *testing.T) {
	lines := []outline.TextLine{
		{Text: "Hello", Page: 1},
		{Text: "World", Page: 2},
	}
	q := Measure(lines)
	if q.Pages != 2 || q.Lines != 2 {
		t.Errorf("expected 2 pages / 2 lines, got %d / %d", q.Pages, q.Lines)
	}
	if q.CharsPerPage != 6 {
		t.Errorf("expected 6 chars per page, got %v", q.CharsPerPage)
	}
	if q.PrintableRatio != 1.0 {
		t.Errorf("expected ratio 1.0, got %v", q.PrintableRatio)
	}

	empty := Measure(nil)
	if empty.PrintableRatio != 1.0 || empty.Pages != 0 || empty.Lines != 0 {
		t.Errorf("unexpected empty measure: %+v", empty)
	}
}
