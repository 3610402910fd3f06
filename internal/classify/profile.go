package classify

import (
	"sort"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// FontProfile is the document-local font size distribution, computed once
// per document and read-only afterward. Headings are relative to a
// document's own typography, so every cut point is derived from the
// document, never from an absolute point size.
type FontProfile struct {
	// H1Cut, H2Cut, H3Cut are the font sizes at the configured percentiles.
	H1Cut float64
	H2Cut float64
	H3Cut float64

	// BodySize is the occurrence-weighted dominant font size.
	BodySize float64
}

// BuildProfile computes the font profile over a reconciled line set.
// Sizes are weighted by line occurrence.
func BuildProfile(lines []outline.TextLine, cfg Config) FontProfile {
	cfg = cfg.normalized()

	sizes := make([]float64, 0, len(lines))
	counts := make(map[float64]int)
	for _, l := range lines {
		if l.FontSize <= 0 {
			continue
		}
		sizes = append(sizes, l.FontSize)
		counts[l.FontSize]++
	}
	if len(sizes) == 0 {
		return FontProfile{}
	}
	sort.Float64s(sizes)

	var body float64
	bestCount := 0
	for _, s := range sizes {
		// Iterating the sorted slice keeps mode selection deterministic:
		// ties resolve to the smaller size.
		if c := counts[s]; c > bestCount {
			bestCount = c
			body = s
		}
	}

	return FontProfile{
		H1Cut:    percentile(sizes, cfg.H1Percentile),
		H2Cut:    percentile(sizes, cfg.H2Percentile),
		H3Cut:    percentile(sizes, cfg.H3Percentile),
		BodySize: body,
	}
}

// Band maps a font size onto its percentile band.
func (p FontProfile) Band(size float64) outline.Level {
	switch {
	case size <= 0:
		return outline.LevelNone
	case size >= p.H1Cut:
		return outline.LevelH1
	case size >= p.H2Cut:
		return outline.LevelH2
	case size >= p.H3Cut:
		return outline.LevelH3
	default:
		return outline.LevelNone
	}
}

// IsBody reports whether a size sits at or below the guarded body size.
// Body lines are never headings, whatever other signals say.
func (p FontProfile) IsBody(size float64, cfg Config) bool {
	cfg = cfg.normalized()
	return size <= p.BodySize*cfg.BodyGuardRatio
}

// percentile returns the linearly interpolated pct-th percentile of
// sorted values.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}
	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}
