package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/zix/internal/doctree"
)

// PDFParser handles PDF files, one node per non-empty page. It reads pages
// with ledongthuc/pdf and can fall back to pdftotext.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// ledongthuc/pdf needs a ReaderAt with a size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "zix-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := readPDFPages(tmpPath)
	if err != nil && p.FallbackPdftotext {
		pages, err = readPdftotextPages(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	tree := &doctree.DocTree{Title: titleFromFilename(filename)}
	for i, page := range pages {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: fmt.Sprintf("Page %d", i+1),
			Text:  page,
			Page:  i + 1,
		})
	}
	return tree, nil
}

func readPDFPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := make([]string, reader.NumPage())
	for i := range pages {
		page := reader.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages[i] = text
	}
	return pages, nil
}

// readPdftotextPages runs pdftotext, which separates pages with form feeds.
func readPdftotextPages(path string) ([]string, error) {
	out, err := exec.Command("pdftotext", "-enc", "UTF-8", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return strings.Split(string(out), "\f"), nil
}
