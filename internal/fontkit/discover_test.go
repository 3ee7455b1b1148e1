package fontkit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscover_EmptyDirectory(t *testing.T) {
	_, err := Discover(t.TempDir())
	if err == nil {
		t.Fatal("Discover should fail when no font files are present")
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("Discover should fail for a missing directory")
	}
}

func TestInferStyle(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Rudaw-Regular.ttf", "regular"},
		{"NotoSans-Bold.ttf", "bold"},
		{"NotoSans-Italic.otf", "italic"},
		{"NotoSans-BoldItalic.ttf", "bold_italic"},
		{"SomeFont-Oblique.ttf", "italic"},
		{"plain.ttf", "regular"},
	}
	for _, tt := range tests {
		if got := inferStyle(tt.filename); got != tt.want {
			t.Errorf("inferStyle(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	fonts := []*Font{
		{Path: "/fonts/Alpha-Regular.ttf", Index: 1},
		{Path: "/fonts/Beta-Bold.ttf", Index: 2},
	}

	if err := WriteIndex(dir, fonts); err != nil {
		t.Fatalf("WriteIndex failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "font_index.json"))
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}

	var mapping map[string]IndexEntry
	if err := json.Unmarshal(data, &mapping); err != nil {
		t.Fatalf("index is not valid JSON: %v", err)
	}

	if len(mapping) != 2 {
		t.Fatalf("got %d entries, want 2", len(mapping))
	}
	if e := mapping["f01"]; e.FontFile != "Alpha-Regular.ttf" || e.Index != 1 || e.Style != "regular" {
		t.Errorf("f01 entry wrong: %+v", e)
	}
	if e := mapping["f02"]; e.FontFile != "Beta-Bold.ttf" || e.Style != "bold" {
		t.Errorf("f02 entry wrong: %+v", e)
	}
}
