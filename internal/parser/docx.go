package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/zix/internal/doctree"
)

// DOCXParser handles .docx files. Heading styles nest sections and list
// paragraphs become bulleted lines.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// go-docx needs a ReaderAt with a size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "zix-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	tree := &doctree.DocTree{Title: titleFromFilename(filename)}
	b := newTreeBuilder()

	var list []string
	endList := func() {
		if len(list) > 0 {
			b.paragraph(strings.Join(list, "\n"))
			list = nil
		}
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		style := docxStyle(para)
		if level := docxHeadingLevel(style); level > 0 {
			endList()
			b.heading(level, text)
			continue
		}
		if strings.Contains(strings.ToLower(style), "list") {
			list = append(list, "- "+text)
			continue
		}
		endList()
		b.paragraph(text)
	}
	endList()
	b.finish(tree)

	return tree, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxHeadingLevel parses styles like "Heading2", "heading 2" or
// "berschrift2", the style id German Word writes for "Überschrift 2".
func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	for _, prefix := range []string{"heading", "berschrift", "überschrift"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 6 {
				return n
			}
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
