package fontkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover loads every .ttf/.otf file in dir and assigns stable
// 1-based indices in path-sorted order. The indices end up in sample
// file names, so their assignment must not depend on directory
// iteration order.
func Discover(dir string) ([]*Font, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read font directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".ttf", ".otf":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no .ttf or .otf font files found in %s", dir)
	}

	fonts := make([]*Font, 0, len(paths))
	for i, path := range paths {
		f, err := Load(path, i+1)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}

// IndexEntry is one record in font_index.json, keyed by the f%02d tag
// that appears in sample file names.
type IndexEntry struct {
	FontFile string `json:"font_file"`
	Index    int    `json:"index"`
	Style    string `json:"style"`
}

// WriteIndex writes font_index.json into dir so downstream tooling can
// map the f%02d tag in a sample name back to the font file.
func WriteIndex(dir string, fonts []*Font) error {
	mapping := make(map[string]IndexEntry, len(fonts))
	for _, f := range fonts {
		mapping[fmt.Sprintf("f%02d", f.Index)] = IndexEntry{
			FontFile: f.Name(),
			Index:    f.Index,
			Style:    inferStyle(f.Name()),
		}
	}

	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal font index: %w", err)
	}
	path := filepath.Join(dir, "font_index.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// inferStyle guesses regular/bold/italic/bold_italic from the file
// name. Good enough for the index metadata; the style never affects
// generation itself.
func inferStyle(filename string) string {
	name := strings.ToLower(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	bold := strings.Contains(name, "bold")
	italic := strings.Contains(name, "italic") || strings.Contains(name, "oblique") ||
		strings.HasSuffix(name, "i")

	switch {
	case bold && italic:
		return "bold_italic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	default:
		return "regular"
	}
}
