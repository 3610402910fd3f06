package extract

import (
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

const (
	// Characters whose baselines differ by no more than this many points
	// belong to the same physical line.
	rowTolerance = 3.0

	// Horizontal gap, as a fraction of font size, that separates words.
	wordGapRatio = 0.3

	// Fallback page height (US Letter) when a page has no usable MediaBox.
	defaultPageHeight = 792.0
)

// CharBackend extracts lines from per-character styled text using
// ledongthuc/pdf. It groups characters into physical lines by baseline
// proximity and carries the dominant font metadata of each line.
type CharBackend struct{}

func (b *CharBackend) Name() string { return "chars" }

func (b *CharBackend) Extract(path string) ([]outline.TextLine, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", ErrCorrupt, err)
	}
	defer f.Close()

	var lines []outline.TextLine
	numPages := reader.NumPage()
	for pageNr := 1; pageNr <= numPages; pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}
		height := pageHeight(page)
		for _, row := range groupRows(texts) {
			line := rowToLine(row, pageNr, height)
			if line.Text == "" {
				continue
			}
			if !Decodable(line.Text) {
				continue
			}
			lines = append(lines, line)
		}
	}

	sortLines(lines)
	return lines, nil
}

// pageHeight reads the page MediaBox height, falling back to US Letter.
func pageHeight(page pdflib.Page) float64 {
	mb := page.V.Key("MediaBox")
	if mb.Kind() == pdflib.Array && mb.Len() >= 4 {
		if h := mb.Index(3).Float64(); h > 0 {
			return h
		}
	}
	return defaultPageHeight
}

// groupRows buckets characters into physical lines by baseline proximity.
func groupRows(texts []pdflib.Text) [][]pdflib.Text {
	sorted := make([]pdflib.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // higher Y = higher on page
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdflib.Text
	var current []pdflib.Text
	var rowY float64
	for _, c := range sorted {
		if len(current) == 0 {
			current = append(current, c)
			rowY = c.Y
			continue
		}
		if rowY-c.Y <= rowTolerance {
			current = append(current, c)
			continue
		}
		rows = append(rows, current)
		current = []pdflib.Text{c}
		rowY = c.Y
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// rowToLine joins one row of characters into a TextLine, inserting spaces
// at word gaps. Font size is the largest size on the line; boldness follows
// the majority of characters.
func rowToLine(row []pdflib.Text, pageNr int, height float64) outline.TextLine {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var sb strings.Builder
	var maxSize, prevEnd float64
	boldCount := 0
	for i, c := range row {
		if i > 0 {
			gap := c.X - prevEnd
			size := c.FontSize
			if size <= 0 {
				size = 10
			}
			if gap > size*wordGapRatio && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(c.S)
		prevEnd = c.X + c.W
		if c.FontSize > maxSize {
			maxSize = c.FontSize
		}
		if isBoldFont(c.Font) {
			boldCount++
		}
	}

	return outline.TextLine{
		Text:     strings.Join(strings.Fields(sb.String()), " "),
		Page:     pageNr,
		FontSize: maxSize,
		Bold:     boldCount*2 >= len(row),
		Y:        height - row[0].Y,
		Source:   outline.SourceChars,
	}
}

func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy")
}
