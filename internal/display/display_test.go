package display

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTextFormatterNoColorPlainPath(t *testing.T) {
	f := NewTextFormatter(NoStyles(), false)
	buf := f.Format(nil, Entry{Path: "a/b.txt"})
	if string(buf) != "a/b.txt\n" {
		t.Fatalf("got %q", buf)
	}
}

func TestTextFormatterAnnotatesWithFileTypes(t *testing.T) {
	f := NewTextFormatter(NoStyles(), false)
	buf := f.Format(nil, Entry{Path: "sub", IsDir: true, WithFileTypes: true})
	if !strings.Contains(string(buf), "[dir]") {
		t.Fatalf("expected [dir] annotation, got %q", buf)
	}
}

func TestTextFormatterColorsDirectoriesDifferently(t *testing.T) {
	f := NewTextFormatter(NewStyles(), true)
	dirBuf := f.Format(nil, Entry{Path: "sub", IsDir: true})
	fileBuf := f.Format(nil, Entry{Path: "f.txt"})
	if string(dirBuf) == string(fileBuf) {
		t.Fatal("expected directory and file rendering to differ under color")
	}
}

func TestJSONFormatterEmitsOneObjectPerLine(t *testing.T) {
	f := NewJSONFormatter()
	buf := f.Format(nil, Entry{Path: "a.txt"})
	buf = f.Format(buf, Entry{Path: "sub", IsDir: true})

	lines := strings.Split(strings.TrimRight(string(buf), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d: %q", len(lines), buf)
	}
	var je jsonEntry
	if err := json.Unmarshal([]byte(lines[1]), &je); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if je.Path != "sub" || !je.Dir {
		t.Fatalf("got %+v", je)
	}
}
