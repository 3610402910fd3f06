package classify

import (
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// Classify assigns a heading level to every line, in document order.
//
// The decision per line: font-size percentile band first, then boldness
// plus a heading-pattern match may shift the line up by at most
// MaxPromotionBands, never across the body boundary. A line at or below
// the guarded body size is always None. The function is pure: identical
// input yields identical output.
func Classify(lines []outline.TextLine, profile FontProfile, cfg Config) []outline.Candidate {
	cfg = cfg.normalized()

	cands := make([]outline.Candidate, len(lines))
	for i, line := range lines {
		cands[i] = classifyLine(line, profile, cfg)
	}
	return cands
}

func classifyLine(line outline.TextLine, profile FontProfile, cfg Config) outline.Candidate {
	cand := outline.Candidate{TextLine: line, Level: outline.LevelNone}

	n := utf8.RuneCountInString(line.Text)
	if n < cfg.MinHeadingLen || n > cfg.MaxHeadingLen {
		return cand
	}
	if profile.IsBody(line.FontSize, cfg) {
		return cand
	}

	band := profile.Band(line.FontSize)
	if band == outline.LevelNone {
		return cand
	}

	pattern := MatchesHeadingPattern(line.Text)
	level := band
	if pattern && line.Bold {
		level = promote(band, cfg.MaxPromotionBands)
	}

	cand.Level = level
	cand.Confidence = confidence(level, line.Bold, pattern)
	return cand
}

// promote shifts a heading band up by at most n levels (H3 toward H1).
// It only ever operates within the heading bands.
func promote(level outline.Level, n int) outline.Level {
	for ; n > 0; n-- {
		switch level {
		case outline.LevelH3:
			level = outline.LevelH2
		case outline.LevelH2:
			level = outline.LevelH1
		default:
			return level
		}
	}
	return level
}

func confidence(level outline.Level, bold, pattern bool) float64 {
	if level == outline.LevelNone {
		return 0
	}
	c := 0.5
	if pattern {
		c += 0.25
	}
	if bold {
		c += 0.15
	}
	if level == outline.LevelH1 {
		c += 0.1
	}
	if c > 1 {
		c = 1
	}
	return c
}

// BuildOutline runs the full classification over a reconciled line set and
// assembles the outline: font profile, per-line level assignment, title
// selection, then entries in document order. A line chosen as the title is
// not repeated as a heading entry. Repeated headings (running headers) are
// classified independently per page and deliberately not deduplicated.
func BuildOutline(lines []outline.TextLine, cfg Config) *outline.Outline {
	out := outline.New()
	if len(lines) == 0 {
		return out
	}

	cfg = cfg.normalized()
	profile := BuildProfile(lines, cfg)
	cands := Classify(lines, profile, cfg)
	title, titleIdx := SelectTitle(lines, profile, cfg)

	out.Title = title
	for i, c := range cands {
		if i == titleIdx {
			continue
		}
		switch c.Level {
		case outline.LevelH1, outline.LevelH2, outline.LevelH3:
			out.Entries = append(out.Entries, outline.Entry{
				Level: c.Level,
				Text:  c.Text,
				Page:  c.Page,
			})
		}
	}
	return out
}
