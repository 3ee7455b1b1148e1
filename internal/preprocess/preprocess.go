// Package preprocess batch-chunks raw corpus files ahead of
// generation, so the expensive splitting runs once and every chunk
// carries metadata about its origin (source file, line, position).
// The generator can then encode real chunk positions into sample file
// names instead of the default c01.
package preprocess

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ChunkMeta describes where one chunk came from.
type ChunkMeta struct {
	ChunkID         int    `json:"chunk_id"`
	OriginalFile    string `json:"original_file"`
	OriginalLineNum int    `json:"original_line_num"`
	ChunkNum        int    `json:"chunk_num"`
	TotalChunks     int    `json:"total_chunks"`
	CharCount       int    `json:"char_count"`
	// OriginalText is recorded only when the line was actually split.
	OriginalText string `json:"original_text,omitempty"`
}

// Stats summarizes one preprocessing pass.
type Stats struct {
	TotalFiles        int         `json:"total_files"`
	TotalRawLines     int         `json:"total_raw_lines"`
	TotalChunks       int         `json:"total_chunks"`
	ChunkDistribution map[int]int `json:"chunk_distribution"`
}

// Splitter is the chunking function applied to each raw line.
type Splitter func(text string, maxLength int) []string

// Run chunks every *.txt file in rawDir and writes text.txt,
// metadata.json and preprocessing_stats.json into processedDir.
// Existing output is kept unless overwrite is set.
func Run(rawDir, processedDir string, maxLength int, overwrite bool, split Splitter) (*Stats, error) {
	textPath := filepath.Join(processedDir, "text.txt")
	if !overwrite {
		if _, err := os.Stat(textPath); err == nil {
			log.Printf("preprocessed files already exist in %s, skipping", processedDir)
			return nil, nil
		}
	}

	files, err := filepath.Glob(filepath.Join(rawDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", rawDir, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no .txt files found in %s", rawDir)
	}

	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", processedDir, err)
	}

	stats := &Stats{TotalFiles: len(files), ChunkDistribution: make(map[int]int)}
	var chunks []string
	var metadata []ChunkMeta

	for _, file := range files {
		lines, err := ReadLines(file)
		if err != nil {
			return nil, err
		}
		stats.TotalRawLines += len(lines)

		for lineIdx, line := range lines {
			lineChunks := split(line, maxLength)
			stats.ChunkDistribution[len(lineChunks)]++

			for chunkNum, chunk := range lineChunks {
				meta := ChunkMeta{
					ChunkID:         len(chunks),
					OriginalFile:    filepath.Base(file),
					OriginalLineNum: lineIdx + 1,
					ChunkNum:        chunkNum + 1,
					TotalChunks:     len(lineChunks),
					CharCount:       len([]rune(chunk)),
				}
				if len(lineChunks) > 1 {
					meta.OriginalText = line
				}
				chunks = append(chunks, chunk)
				metadata = append(metadata, meta)
			}
		}
		log.Printf("%s: %d lines, %d chunks so far", filepath.Base(file), len(lines), len(chunks))
	}
	stats.TotalChunks = len(chunks)

	if err := os.WriteFile(textPath, []byte(strings.Join(chunks, "\n")+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", textPath, err)
	}
	if err := writeJSON(filepath.Join(processedDir, "metadata.json"), metadata); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(processedDir, "preprocessing_stats.json"), stats); err != nil {
		return nil, err
	}

	log.Printf("preprocessing complete: %d files, %d lines, %d chunks",
		stats.TotalFiles, stats.TotalRawLines, stats.TotalChunks)
	return stats, nil
}

// Load reads back preprocessed chunks and their metadata. The metadata
// slice is indexed by chunk ID and may be nil when metadata.json is
// absent.
func Load(processedDir string) ([]string, []ChunkMeta, error) {
	chunks, err := ReadLines(filepath.Join(processedDir, "text.txt"))
	if err != nil {
		return nil, nil, err
	}

	metaPath := filepath.Join(processedDir, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("no metadata at %s, using default chunk numbering", metaPath)
			return chunks, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read %s: %w", metaPath, err)
	}

	var metadata []ChunkMeta
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", metaPath, err)
	}
	return chunks, metadata, nil
}

// ReadLines returns the non-empty, whitespace-trimmed lines of a file.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
