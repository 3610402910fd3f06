package outline

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOutlineJSONRoundTrip(t *testing.T) {
	orig := &Outline{
		Title: "Understanding Go",
		Entries: []Entry{
			{Level: LevelH1, Text: "Chapter 1: Basics", Page: 1},
			{Level: LevelH2, Text: "1.1 Syntax", Page: 2},
			{Level: LevelH3, Text: "1.1.1 Keywords", Page: 2},
		},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed Outline
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(orig, &parsed) {
		t.Errorf("round trip mismatch:\n  orig:   %+v\n  parsed: %+v", orig, parsed)
	}
}

func TestEmptyOutlineSerializesWithEmptyArray(t *testing.T) {
	data, err := json.Marshal(New())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"title":"","outline":[]}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestEntryUsesSchemaKeyNames(t *testing.T) {
	data, err := json.Marshal(Entry{Level: LevelH2, Text: "2.1 Design", Page: 7})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"level":"H2","text":"2.1 Design","page":7}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestLevelTextCodec(t *testing.T) {
	for _, level := range []Level{LevelNone, LevelTitle, LevelH1, LevelH2, LevelH3} {
		b, err := level.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", level, err)
		}
		var back Level
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal %q: %v", b, err)
		}
		if back != level {
			t.Errorf("level %v round-tripped to %v", level, back)
		}
	}

	var l Level
	if err := l.UnmarshalText([]byte("H7")); err == nil {
		t.Error("expected error for unknown level name")
	}
}
