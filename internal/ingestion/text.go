package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings and spacing while keeping line structure.
// Lines are trimmed, runs of spaces collapse to one and at most one blank line
// separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerSpace.ReplaceAllString(line, " "))
	}
	content = strings.Join(lines, "\n")
	content = blankLines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// IngestFromFile reads a plain-text job posting from disk.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := CleanText(decodeText(content))
	if text == "" {
		return "", nil, fmt.Errorf("%s: %w", path, ErrEmptyDocument)
	}
	meta := NewMetadata(text, SourceFile)
	meta.Path = path
	return text, meta, nil
}

// IngestText wraps job text pasted directly by the user.
func IngestText(raw string) (string, *Metadata, error) {
	text := CleanText(raw)
	if text == "" {
		return "", nil, ErrEmptyDocument
	}
	return text, NewMetadata(text, SourceText), nil
}

// WriteOutput writes the cleaned posting and its metadata into outDir.
func WriteOutput(outDir, text string, meta *Metadata) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "job_posting.cleaned.txt"), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "job_posting.meta.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
