package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// StreamBackend extracts lines by parsing page content streams with pdfcpu.
// It tracks the text state operators (Tf, Tm, Td, TD, TL, T*) to recover
// font size and vertical position per line, and resolves page font
// resources to detect bold faces.
type StreamBackend struct{}

func (b *StreamBackend) Name() string { return "stream" }

func (b *StreamBackend) Extract(path string) ([]outline.TextLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: pdfcpu read: %v", ErrCorrupt, err)
	}

	boldFonts, height := scanPageResources(ctx)
	if height <= 0 {
		height = defaultPageHeight
	}

	var lines []outline.TextLine
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		for _, sl := range parseContentStream(data, boldFonts) {
			text := strings.Join(strings.Fields(sl.text), " ")
			if text == "" || !Decodable(text) {
				continue
			}
			lines = append(lines, outline.TextLine{
				Text:     text,
				Page:     pageNr,
				FontSize: sl.size,
				Bold:     sl.bold,
				Y:        height - sl.y,
				Source:   outline.SourceStream,
			})
		}
	}

	sortLines(lines)
	return lines, nil
}

// scanPageResources walks the xref table collecting bold font resource
// names and the page height. Resource names are OR-accumulated across
// pages so the result does not depend on traversal order.
func scanPageResources(ctx *model.Context) (map[string]bool, float64) {
	bold := map[string]bool{}
	var height float64

	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		d, ok := entry.Object.(types.Dict)
		if !ok {
			continue
		}
		t, found := d.Find("Type")
		if !found {
			continue
		}
		if name, isName := t.(types.Name); !isName || name != "Page" {
			continue
		}

		if mb, found := d.Find("MediaBox"); found {
			if arr, err := ctx.DereferenceArray(mb); err == nil && len(arr) >= 4 {
				h := toFloat(arr[3]) - toFloat(arr[1])
				if h > height {
					height = h
				}
			}
		}

		res, found := d.Find("Resources")
		if !found {
			continue
		}
		resDict, err := ctx.DereferenceDict(res)
		if err != nil {
			continue
		}
		fontObj, found := resDict.Find("Font")
		if !found {
			continue
		}
		fontDict, err := ctx.DereferenceDict(fontObj)
		if err != nil {
			continue
		}
		for resName, ref := range fontDict {
			fd, err := ctx.DereferenceDict(ref)
			if err != nil {
				continue
			}
			bf, found := fd.Find("BaseFont")
			if !found {
				continue
			}
			if baseFont, isName := bf.(types.Name); isName && isBoldFont(string(baseFont)) {
				bold[resName] = true
			}
		}
	}
	return bold, height
}

func toFloat(o types.Object) float64 {
	switch v := o.(type) {
	case types.Float:
		return float64(v)
	case types.Integer:
		return float64(v)
	default:
		return 0
	}
}

// streamLine is a line recovered from a content stream, in PDF coordinates
// (y grows upward).
type streamLine struct {
	text string
	y    float64
	size float64
	bold bool
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// parseContentStream walks content stream operators, tracking the text
// state so each shown string lands on a line with its font size and
// vertical position.
func parseContentStream(data []byte, boldFonts map[string]bool) []streamLine {
	var out []streamLine

	var (
		tfSize   = 12.0 // size operand of the last Tf
		scale    = 1.0  // vertical scale from the last Tm
		leading  = 14.0
		curY     float64
		haveLine bool
		cur      streamLine
	)

	flush := func() {
		if haveLine && strings.TrimSpace(cur.text) != "" {
			out = append(out, cur)
		}
		haveLine = false
		cur = streamLine{}
	}
	moveTo := func(y float64) {
		size := tfSize * abs(scale)
		if size <= 0 {
			size = 10
		}
		if haveLine && abs(y-cur.y) > size/2 {
			flush()
		}
		curY = y
	}
	show := func(text string, bold bool, size float64) {
		if text == "" {
			return
		}
		if !haveLine {
			cur = streamLine{y: curY, size: size, bold: bold}
			haveLine = true
		}
		if cur.text != "" && !strings.HasSuffix(cur.text, " ") {
			cur.text += " "
		}
		cur.text += text
		if size > cur.size {
			cur.size = size
		}
	}

	curBold := false
	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}
		fields := strings.Fields(string(line))
		op := fields[len(fields)-1]

		switch op {
		case "Tf":
			if len(fields) >= 3 {
				resName := strings.TrimPrefix(fields[len(fields)-3], "/")
				curBold = boldFonts[resName] || isBoldFont(resName)
				if v, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil && v > 0 {
					tfSize = v
				}
			}
		case "Tm":
			if len(fields) >= 7 {
				if d, err := strconv.ParseFloat(fields[len(fields)-4], 64); err == nil && d != 0 {
					scale = d
				}
				if y, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil {
					moveTo(y)
				}
			}
		case "Td", "TD":
			if len(fields) >= 3 {
				if ty, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil {
					if op == "TD" && ty != 0 {
						leading = -ty
					}
					moveTo(curY + ty)
				}
			}
		case "TL":
			if len(fields) >= 2 {
				if tl, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil && tl > 0 {
					leading = tl
				}
			}
		case "T*":
			moveTo(curY - leading)
		case "ET":
			flush()
		}

		// Text-showing operators may share a line with positioning ops.
		// TJ array segments are kerning splits, so they join without a
		// separator.
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			show(joinSegments(line), curBold, tfSize*abs(scale))
		}
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			moveTo(curY - leading)
			show(joinSegments(line), curBold, tfSize*abs(scale))
		}
	}
	flush()

	return out
}

func joinSegments(line []byte) string {
	var sb strings.Builder
	for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
		sb.WriteString(decodePDFString(m[1]))
	}
	return sb.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '(':
				sb.WriteByte('(')
			case ')':
				sb.WriteByte(')')
			default:
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
