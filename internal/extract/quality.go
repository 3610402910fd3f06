package extract

import (
	"strings"
	"unicode"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// minPrintableRatio is the share of printable runes a line must carry to be
// considered decodable. Lines below it are dropped rather than failing the
// document.
const minPrintableRatio = 0.8

// Decodable reports whether a line of extracted text decoded cleanly enough
// to classify. Glyphs the extractor could not map show up as private-use
// runes, control characters, or U+FFFD.
func Decodable(text string) bool {
	return PrintableRatio(text) >= minPrintableRatio
}

// PrintableRatio returns the ratio of printable runes in text.
func PrintableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	// Private Use Area
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	// Replacement character
	if r == 0xFFFD {
		return true
	}
	// Control chars except whitespace
	if r < 0x0020 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}

// Quality captures per-document extraction metrics, reported in logs and
// the run history.
type Quality struct {
	Pages          int     `json:"pages"`
	Lines          int     `json:"lines"`
	CharsPerPage   float64 `json:"chars_per_page"`
	PrintableRatio float64 `json:"printable_ratio"`
}

// Measure summarizes extraction quality over a reconciled line set.
func Measure(lines []outline.TextLine) Quality {
	q := Quality{Lines: len(lines)}
	if len(lines) == 0 {
		q.PrintableRatio = 1.0
		return q
	}
	var sb strings.Builder
	maxPage := 0
	for _, l := range lines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
		if l.Page > maxPage {
			maxPage = l.Page
		}
	}
	text := sb.String()
	q.Pages = maxPage
	q.PrintableRatio = PrintableRatio(text)
	if maxPage > 0 {
		q.CharsPerPage = float64(len([]rune(text))) / float64(maxPage)
	}
	return q
}
