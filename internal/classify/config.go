// Package classify turns reconciled text lines into an outline: it builds a
// document-local font profile, scores lines against heading patterns, and
// assigns heading levels.
package classify

// Config holds the heuristic tunables. Thresholds are document-relative
// percentiles, never absolute point sizes.
type Config struct {
	// H1Percentile is the font-size percentile at or above which a line
	// falls into the H1 band.
	H1Percentile float64 `yaml:"h1_percentile"`
	// H2Percentile bounds the H2 band: [H2Percentile, H1Percentile).
	H2Percentile float64 `yaml:"h2_percentile"`
	// H3Percentile bounds the H3 band: [H3Percentile, H2Percentile).
	// Sizes below it are body text.
	H3Percentile float64 `yaml:"h3_percentile"`

	// MaxPromotionBands is how many bands a bold line matching a heading
	// pattern may be shifted up. Promotion never lifts body text into a
	// heading band.
	MaxPromotionBands int `yaml:"max_promotion_bands"`

	// BodyGuardRatio scales the dominant body font size: a line at or below
	// BodySize*BodyGuardRatio is never classified above None, whatever its
	// band, pattern, or weight.
	BodyGuardRatio float64 `yaml:"body_guard_ratio"`

	// MinHeadingLen and MaxHeadingLen bound heading text length in runes.
	MinHeadingLen int `yaml:"min_heading_len"`
	MaxHeadingLen int `yaml:"max_heading_len"`

	// MergeYTolerance is the vertical tolerance, in points, used when
	// reconciling the two backends' line sets.
	MergeYTolerance float64 `yaml:"merge_y_tolerance"`
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		H1Percentile:      99,
		H2Percentile:      95,
		H3Percentile:      90,
		MaxPromotionBands: 1,
		BodyGuardRatio:    1.02,
		MinHeadingLen:     3,
		MaxHeadingLen:     200,
		MergeYTolerance:   6.0,
	}
}

// normalized fills zero values with defaults so a partial YAML override
// stays usable.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.H1Percentile <= 0 {
		c.H1Percentile = def.H1Percentile
	}
	if c.H2Percentile <= 0 {
		c.H2Percentile = def.H2Percentile
	}
	if c.H3Percentile <= 0 {
		c.H3Percentile = def.H3Percentile
	}
	if c.MaxPromotionBands <= 0 {
		c.MaxPromotionBands = def.MaxPromotionBands
	}
	if c.BodyGuardRatio <= 0 {
		c.BodyGuardRatio = def.BodyGuardRatio
	}
	if c.MinHeadingLen <= 0 {
		c.MinHeadingLen = def.MinHeadingLen
	}
	if c.MaxHeadingLen <= 0 {
		c.MaxHeadingLen = def.MaxHeadingLen
	}
	if c.MergeYTolerance <= 0 {
		c.MergeYTolerance = def.MergeYTolerance
	}
	return c
}
