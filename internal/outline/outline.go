package outline

import "fmt"

// Source identifies which extraction backend produced a line.
type Source int

const (
	SourceChars  Source = iota // char-level backend (ledongthuc/pdf)
	SourceStream               // content-stream backend (pdfcpu)
)

func (s Source) String() string {
	switch s {
	case SourceChars:
		return "chars"
	case SourceStream:
		return "stream"
	default:
		return "unknown"
	}
}

// TextLine is one physical line of text with its font metadata, as reported
// by an extraction backend. Immutable after creation.
type TextLine struct {
	Text     string  // line text, whitespace-trimmed
	Page     int     // 1-based page number
	FontSize float64 // rendered size in points
	Bold     bool
	Y        float64 // top-down vertical position within the page
	Source   Source
}

// Level is a heading classification for a line.
type Level int

const (
	LevelNone Level = iota
	LevelTitle
	LevelH1
	LevelH2
	LevelH3
)

func (l Level) String() string {
	switch l {
	case LevelTitle:
		return "Title"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return "None"
	}
}

// MarshalText encodes the level as its schema name ("H1", "H2", "H3").
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a schema level name.
func (l *Level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Title":
		*l = LevelTitle
	case "H1":
		*l = LevelH1
	case "H2":
		*l = LevelH2
	case "H3":
		*l = LevelH3
	case "None":
		*l = LevelNone
	default:
		return fmt.Errorf("unknown heading level: %q", b)
	}
	return nil
}

// Candidate is a TextLine with its classification attached.
type Candidate struct {
	TextLine
	Level      Level
	Confidence float64 // [0,1]
}

// Entry is one heading in the final outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the extracted title plus ordered heading entries for one
// document. Entries keep document order (page, then vertical position);
// they are never re-sorted by level.
type Outline struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"outline"`
}

// New returns an empty outline with a non-nil entry list, so an empty
// document serializes as {"title":"","outline":[]}.
func New() *Outline {
	return &Outline{Entries: []Entry{}}
}
