package parser

import (
	"errors"
	"fmt"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.txt", "*parser.TextParser"},
		{"a.MD", "*parser.MarkdownParser"},
		{"a.markdown", "*parser.MarkdownParser"},
		{"a.csv", "*parser.CSVParser"},
		{"a.htm", "*parser.HTMLParser"},
		{"a.pdf", "*parser.PDFParser"},
		{"a.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		if got := fmt.Sprintf("%T", p); got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
		if !IsSupportedExtension(tt.filename) {
			t.Errorf("IsSupportedExtension(%q) = false", tt.filename)
		}
	}

	if _, err := ForFile("a.exe", Options{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if IsSupportedExtension("noext") {
		t.Error("expected file without extension to be unsupported")
	}

	p, _ := ForFile("a.pdf", Options{PDFFallbackPdftotext: true})
	if !p.(*PDFParser).FallbackPdftotext {
		t.Error("expected pdftotext fallback to be passed through")
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	tests := map[string]int{
		"Heading1":    1,
		"heading 3":   3,
		"berschrift2": 2,
		"Heading7":    0,
		"Normal":      0,
		"":            0,
	}
	for style, want := range tests {
		if got := docxHeadingLevel(style); got != want {
			t.Errorf("docxHeadingLevel(%q) = %d, want %d", style, got, want)
		}
	}
}
