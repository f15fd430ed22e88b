package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/zix/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate paragraphs and
// each paragraph becomes a node.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	tree := &doctree.DocTree{Title: titleFromFilename(filename)}

	var lines []string
	line := 0
	start := 0
	flush := func() {
		if len(lines) > 0 {
			tree.Children = append(tree.Children, &doctree.DocNode{
				Text: strings.Join(lines, "\n"),
				Page: start,
			})
			lines = nil
		}
	}

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}
		if len(lines) == 0 {
			start = line
		}
		lines = append(lines, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return tree, nil
}
