package extract

import "testing"

func TestParseContentStreamTracksFontAndPosition(t *testing.T) {
	stream := []byte(`BT
/F1 24 Tf
1 0 0 1 72 700 Tm
(Chapter 1) Tj
/F2 10 Tf
1 0 0 1 72 650 Tm
(Body text here) Tj
ET
`)
	lines := parseContentStream(stream, map[string]bool{"F1": true})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}

	if lines[0].text != "Chapter 1" || lines[0].size != 24 || !lines[0].bold || lines[0].y != 700 {
		t.Errorf("unexpected heading line: %+v", lines[0])
	}
	if lines[1].text != "Body text here" || lines[1].size != 10 || lines[1].bold || lines[1].y != 650 {
		t.Errorf("unexpected body line: %+v", lines[1])
	}
}

func TestParseContentStreamJoinsKerningSegments(t *testing.T) {
	// TJ array segments are kerning splits within a word and join with no
	// separator.
	stream := []byte(`BT
/F2 12 Tf
1 0 0 1 72 700 Tm
[(Hel) -20 (lo)] TJ
ET
`)
	lines := parseContentStream(stream, nil)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %+v", len(lines), lines)
	}
	if lines[0].text != "Hello" {
		t.Errorf("expected kerned segments joined to %q, got %q", "Hello", lines[0].text)
	}
}

func TestParseContentStreamNextLineOperator(t *testing.T) {
	stream := []byte(`BT
/F2 12 Tf
14 TL
1 0 0 1 72 700 Tm
(First line) Tj
T*
(Second line) Tj
ET
`)
	lines := parseContentStream(stream, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].y != 700 || lines[1].y != 686 {
		t.Errorf("expected Y 700 and 686, got %v and %v", lines[0].y, lines[1].y)
	}
}

func TestParseContentStreamJoinsShowsOnSameBaseline(t *testing.T) {
	stream := []byte(`BT
/F2 12 Tf
1 0 0 1 72 700 Tm
(Hello) Tj
(World) Tj
ET
`)
	lines := parseContentStream(stream, nil)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %+v", len(lines), lines)
	}
	if lines[0].text != "Hello World" {
		t.Errorf("expected %q, got %q", "Hello World", lines[0].text)
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain text`, "plain text"},
		{`paren \( inside \)`, "paren ( inside )"},
		{`back\\slash`, `back\slash`},
		{`tab\there`, "tab\there"},
		{`octal \101\102`, "octal AB"},
	}
	for _, tt := range tests {
		if got := decodePDFString([]byte(tt.in)); got != tt.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
