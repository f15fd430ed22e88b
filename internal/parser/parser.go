// Package parser turns uploaded documents into a doctree.DocTree whose
// nodes carry the prose to be scored.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/zix/internal/doctree"
)

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

var ErrUnsupported = errors.New("unsupported file extension")

// Options tune individual parsers.
type Options struct {
	// PDFFallbackPdftotext retries failed PDF extraction with the
	// pdftotext binary when it is installed.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// titleFromFilename strips directory and extension.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
