// Package extract provides the two PDF text extraction backends. Each
// backend reports, for every visible line, the line text, rendered font
// size, boldness, 1-based page number, and vertical reading order. The
// classification pipeline treats backends as interchangeable black boxes.
package extract

import (
	"errors"
	"sort"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// ErrCorrupt marks a document the backend could not open or parse.
// Callers check with errors.Is; the failure is scoped to that document.
var ErrCorrupt = errors.New("corrupt document")

// Backend extracts positioned text lines from a PDF file.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// Extract returns all text lines of the document in reading order.
	// A document with no extractable text returns an empty slice, not an
	// error.
	Extract(path string) ([]outline.TextLine, error)
}

// Backends returns the default backend pair: the char-level backend first
// (more precise positional data), the content-stream backend second.
func Backends() []Backend {
	return []Backend{&CharBackend{}, &StreamBackend{}}
}

// sortLines orders lines by page, then top-down position, then text for a
// stable tie-break.
func sortLines(lines []outline.TextLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Page != lines[j].Page {
			return lines[i].Page < lines[j].Page
		}
		if lines[i].Y != lines[j].Y {
			return lines[i].Y < lines[j].Y
		}
		return lines[i].Text < lines[j].Text
	})
}
