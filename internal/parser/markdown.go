package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/zix/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark. Headings nest
// sections; code blocks and raw HTML are skipped since they are not prose.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	tree := &doctree.DocTree{Title: titleFromFilename(filename)}
	b := newTreeBuilder()

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			b.heading(h.Level, inlineText(h, src))
			continue
		}
		b.paragraph(blockText(n, src))
	}
	b.finish(tree)

	return tree, nil
}

// blockText renders a block node as plain text. List items become one
// bulleted line each.
func blockText(n ast.Node, src []byte) string {
	switch n.Kind() {
	case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
		return ""
	case ast.KindList:
		var items []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t := blockText(c, src); t != "" {
				items = append(items, "- "+t)
			}
		}
		return strings.Join(items, "\n")
	}

	if first := n.FirstChild(); first != nil && first.Type() == ast.TypeBlock {
		var parts []string
		for c := first; c != nil; c = c.NextSibling() {
			if t := blockText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, "\n")
	}
	return inlineText(n, src)
}

// inlineText concatenates the text of n's inline descendants.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
