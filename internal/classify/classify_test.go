package classify

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

func bodyLines(page, count int, startY float64) []outline.TextLine {
	lines := make([]outline.TextLine, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, outline.TextLine{
			Text:     fmt.Sprintf("Plain body sentence number %d on this page.", i+1),
			Page:     page,
			FontSize: 10,
			Y:        startY + float64(i)*12,
		})
	}
	return lines
}

func TestBuildOutlineEmptyDocument(t *testing.T) {
	out := BuildOutline(nil, DefaultConfig())
	if out.Title != "" {
		t.Errorf("expected empty title, got %q", out.Title)
	}
	if out.Entries == nil || len(out.Entries) != 0 {
		t.Errorf("expected empty non-nil entries, got %v", out.Entries)
	}
}

func TestBuildOutlineSingleHeadingBecomesTitle(t *testing.T) {
	// One 24pt bold chapter line above 10pt body: the line lands in the top
	// band and, being the largest on page 1, becomes the title. It is not
	// repeated as an H1 entry.
	lines := append([]outline.TextLine{
		{Text: "Chapter 1: Introduction", Page: 1, FontSize: 24, Bold: true, Y: 72},
	}, bodyLines(1, 10, 100)...)

	cfg := DefaultConfig()
	out := BuildOutline(lines, cfg)

	if out.Title != "Chapter 1: Introduction" {
		t.Errorf("expected chapter line as title, got %q", out.Title)
	}
	if len(out.Entries) != 0 {
		t.Errorf("title line must not repeat as a heading entry, got %v", out.Entries)
	}

	// The same line classifies as H1 on its own merits.
	profile := BuildProfile(lines, cfg)
	cands := Classify(lines, profile, cfg)
	if cands[0].Level != outline.LevelH1 {
		t.Errorf("expected H1 classification, got %v", cands[0].Level)
	}
	if cands[0].Page != 1 {
		t.Errorf("expected page 1, got %d", cands[0].Page)
	}
	if cands[0].Confidence <= 0 || cands[0].Confidence > 1 {
		t.Errorf("confidence out of range: %f", cands[0].Confidence)
	}
}

func TestBuildOutlineTitleAndHeadingDistinct(t *testing.T) {
	var lines []outline.TextLine
	lines = append(lines, outline.TextLine{Text: "Annual Report 2025", Page: 1, FontSize: 24, Bold: true, Y: 72})
	lines = append(lines, bodyLines(1, 10, 100)...)
	lines = append(lines, outline.TextLine{Text: "Chapter 2: Methods", Page: 2, FontSize: 24, Bold: true, Y: 72})
	lines = append(lines, bodyLines(2, 10, 100)...)

	out := BuildOutline(lines, DefaultConfig())

	if out.Title != "Annual Report 2025" {
		t.Errorf("expected first-page line as title, got %q", out.Title)
	}
	if len(out.Entries) != 1 {
		t.Fatalf("expected exactly 1 entry, got %d: %v", len(out.Entries), out.Entries)
	}
	e := out.Entries[0]
	if e.Level != outline.LevelH1 || e.Text != "Chapter 2: Methods" || e.Page != 2 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestBuildOutlineRunningHeaderRepeatsPerPage(t *testing.T) {
	// A running header at identical size on every page is classified
	// independently per page: one entry per occurrence, no deduplication.
	var lines []outline.TextLine
	lines = append(lines, outline.TextLine{Text: "Quarterly Performance Review", Page: 1, FontSize: 20, Bold: true, Y: 40})
	for page := 1; page <= 3; page++ {
		lines = append(lines, outline.TextLine{Text: "ACME CORP CONFIDENTIAL", Page: page, FontSize: 14, Y: 20})
		lines = append(lines, bodyLines(page, 10, 100)...)
	}

	out := BuildOutline(lines, DefaultConfig())

	if out.Title != "Quarterly Performance Review" {
		t.Errorf("unexpected title: %q", out.Title)
	}
	if len(out.Entries) != 3 {
		t.Fatalf("expected 3 header entries (one per page), got %d: %v", len(out.Entries), out.Entries)
	}
	for i, e := range out.Entries {
		if e.Text != "ACME CORP CONFIDENTIAL" {
			t.Errorf("entry %d: unexpected text %q", i, e.Text)
		}
		if e.Page != i+1 {
			t.Errorf("entry %d: expected page %d, got %d", i, i+1, e.Page)
		}
	}
}

func TestBodyTextNeverPromoted(t *testing.T) {
	// A bold body-sized line matching a heading pattern stays body text:
	// pattern and boldness corroborate, they never create a heading.
	lines := append([]outline.TextLine{
		{Text: "Chapter 5: Results", Page: 1, FontSize: 10, Bold: true, Y: 72},
	}, bodyLines(1, 20, 100)...)

	cfg := DefaultConfig()
	out := BuildOutline(lines, cfg)

	if out.Title != "" {
		t.Errorf("expected no title in a uniform-size document, got %q", out.Title)
	}
	if len(out.Entries) != 0 {
		t.Errorf("expected no entries, got %v", out.Entries)
	}

	profile := BuildProfile(lines, cfg)
	for _, c := range Classify(lines, profile, cfg) {
		if c.Level != outline.LevelNone {
			t.Errorf("line %q classified %v, want None", c.Text, c.Level)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	var lines []outline.TextLine
	lines = append(lines, outline.TextLine{Text: "Operations Handbook", Page: 1, FontSize: 20, Bold: true, Y: 40})
	for page := 1; page <= 3; page++ {
		lines = append(lines, outline.TextLine{Text: "SECTION OVERVIEW AND NOTES", Page: page, FontSize: 14, Y: 20})
		lines = append(lines, bodyLines(page, 10, 100)...)
	}

	first := BuildOutline(lines, DefaultConfig())
	for i := 0; i < 10; i++ {
		again := BuildOutline(lines, DefaultConfig())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("classification is not deterministic:\n  first: %+v\n  again: %+v", first, again)
		}
	}
}

func TestPromoteShiftsOneBandWithinHeadings(t *testing.T) {
	tests := []struct {
		in   outline.Level
		by   int
		want outline.Level
	}{
		{outline.LevelH3, 1, outline.LevelH2},
		{outline.LevelH2, 1, outline.LevelH1},
		{outline.LevelH1, 1, outline.LevelH1},
		{outline.LevelH3, 2, outline.LevelH1},
		{outline.LevelNone, 1, outline.LevelNone},
	}
	for _, tt := range tests {
		if got := promote(tt.in, tt.by); got != tt.want {
			t.Errorf("promote(%v, %d) = %v, want %v", tt.in, tt.by, got, tt.want)
		}
	}
}

func TestBoldPatternPromotesExactlyOneBand(t *testing.T) {
	profile := FontProfile{H1Cut: 20, H2Cut: 16, H3Cut: 12, BodySize: 10}
	cfg := DefaultConfig()

	// Bold + pattern in the H3 band lifts to H2, never to H1.
	line := outline.TextLine{Text: "3.1 Error Handling", Page: 2, FontSize: 13, Bold: true, Y: 300}
	cands := Classify([]outline.TextLine{line}, profile, cfg)
	if cands[0].Level != outline.LevelH2 {
		t.Errorf("expected promotion H3 -> H2, got %v", cands[0].Level)
	}

	// Pattern without boldness stays in its band.
	line.Bold = false
	cands = Classify([]outline.TextLine{line}, profile, cfg)
	if cands[0].Level != outline.LevelH3 {
		t.Errorf("expected H3 without bold, got %v", cands[0].Level)
	}
}
