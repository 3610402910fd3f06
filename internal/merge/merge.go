// Package merge reconciles the line sets reported by the two extraction
// backends for one document. Cross-validating the backends suppresses
// heading false positives caused by a single extractor misreading font
// metadata.
package merge

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// DefaultYTolerance is the vertical distance, in points, within which two
// reported lines are considered the same physical line.
const DefaultYTolerance = 6.0

// Reconcile merges the char-backend lines (primary) and the stream-backend
// lines (secondary) into one sequence with one entry per physical line.
//
// Lines match on (page, normalized text, vertical proximity). When both
// backends report a line, the primary backend's font size and boldness win:
// its per-character data is the more precise. A secondary line that sits on
// top of a primary line but disagrees on text is discarded rather than
// guessed at. Lines seen by only one backend are kept as-is.
func Reconcile(primary, secondary []outline.TextLine, yTolerance float64) []outline.TextLine {
	if yTolerance <= 0 {
		yTolerance = DefaultYTolerance
	}

	merged := make([]outline.TextLine, 0, len(primary)+len(secondary))
	merged = append(merged, primary...)

	// Per-page index of the primary lines, in document order.
	byPage := make(map[int][]outline.TextLine)
	for _, l := range primary {
		byPage[l.Page] = append(byPage[l.Page], l)
	}

	for _, s := range secondary {
		sNorm := Normalize(s.Text)
		matched := false
		conflict := false
		for _, p := range byPage[s.Page] {
			if absf(p.Y-s.Y) > yTolerance {
				continue
			}
			if Normalize(p.Text) == sNorm {
				// Same physical line; the primary entry already carries the
				// preferred metadata.
				matched = true
				break
			}
			conflict = true
		}
		if matched || conflict {
			// Conflicting text at the same position is an extractor
			// mismatch: keep the higher-confidence source, drop this line.
			continue
		}
		merged = append(merged, s)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Page != merged[j].Page {
			return merged[i].Page < merged[j].Page
		}
		return merged[i].Y < merged[j].Y
	})
	return merged
}

// Normalize canonicalizes line text for cross-backend comparison: Unicode
// compatibility normalization, case folding, and whitespace collapse.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(text)
	return strings.Join(strings.Fields(text), " ")
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
