package classify

import (
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// SelectTitle picks the most title-like line from the first page: the line
// with the largest font size above the body band, ties broken by the
// topmost position. It returns the chosen text and the line's index in the
// input, or ("", -1) when the first page has no qualifying line. The title
// is never fabricated and never taken from a later page.
func SelectTitle(lines []outline.TextLine, profile FontProfile, cfg Config) (string, int) {
	cfg = cfg.normalized()

	best := -1
	for i, line := range lines {
		if line.Page != 1 {
			continue
		}
		n := utf8.RuneCountInString(line.Text)
		if n < cfg.MinHeadingLen || n > cfg.MaxHeadingLen {
			continue
		}
		if profile.IsBody(line.FontSize, cfg) || profile.Band(line.FontSize) == outline.LevelNone {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if line.FontSize > lines[best].FontSize {
			best = i
		} else if line.FontSize == lines[best].FontSize && line.Y < lines[best].Y {
			best = i
		}
	}
	if best == -1 {
		return "", -1
	}
	return lines[best].Text, best
}
