package classify

import "regexp"

// headingPatterns recognizes common textual shapes of headings. Order
// matters only for reporting; any match counts as a positive signal.
// A pattern match corroborates font evidence, it never creates a heading
// out of body-sized text on its own.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?i:chapter)\s+\d+`),
	regexp.MustCompile(`^\d+\.\s+\S`),
	regexp.MustCompile(`^\d+(\.\d+)+\s+[A-Z]`),
	regexp.MustCompile(`^(?i:appendix)\s+[A-Z]:?`),
	regexp.MustCompile(`^[IVXLCDM]+\.\s+[A-Z]`),
	regexp.MustCompile(`^[A-Z][A-Z\s]{8,}$`),
	regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*:?\s*$`),
}

// MatchesHeadingPattern reports whether text looks like a heading.
func MatchesHeadingPattern(text string) bool {
	for _, p := range headingPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
