// Package loader turns uploaded files into clean plain text for ingestion.
// PDF extraction shells out to pdftotext; plain-text files are decoded
// directly.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedType is returned for file types the pipeline cannot
// ingest.
var ErrUnsupportedType = errors.New("unsupported file type, expected .txt, .md or .pdf")

// ErrNoText is returned when a file decodes to nothing but whitespace.
var ErrNoText = errors.New("file contains no text")

// ExtractText converts an uploaded file into cleaned plain text, keyed on
// the filename extension.
func ExtractText(ctx context.Context, filename string, content []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var raw string
	switch ext {
	case "pdf":
		text, err := parsePDF(ctx, content)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from pdf: %w", err)
		}
		raw = text
	case "txt", "md":
		raw = decodePlainText(content)
	default:
		return "", ErrUnsupportedType
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", ErrNoText
	}
	return cleaned, nil
}

// decodePlainText interprets bytes as UTF-8, replacing invalid sequences
// instead of failing.
func decodePlainText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), "�")
}
