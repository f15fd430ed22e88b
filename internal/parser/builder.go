package parser

import (
	"strings"

	"github.com/dgallion1/zix/internal/doctree"
)

// treeBuilder nests sections by heading level. Text between headings is
// attached to the innermost open section.
type treeBuilder struct {
	root  *doctree.DocNode
	stack []openSection
	text  []string
}

type openSection struct {
	node  *doctree.DocNode
	level int
}

func newTreeBuilder() *treeBuilder {
	root := &doctree.DocNode{}
	return &treeBuilder{
		root:  root,
		stack: []openSection{{node: root, level: 0}},
	}
}

// heading opens a section at level (1 for a top-level heading).
func (b *treeBuilder) heading(level int, title string) {
	b.flush()
	node := &doctree.DocNode{Title: title}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, openSection{node: node, level: level})
}

// paragraph adds a block of text to the current section.
func (b *treeBuilder) paragraph(text string) {
	if text = strings.TrimSpace(text); text != "" {
		b.text = append(b.text, text)
	}
}

func (b *treeBuilder) flush() {
	if len(b.text) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1].node
	t := strings.Join(b.text, "\n\n")
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
	b.text = b.text[:0]
}

// finish moves the built sections into tree. Text before the first heading
// becomes a leading untitled node.
func (b *treeBuilder) finish(tree *doctree.DocTree) {
	b.flush()
	if b.root.Text != "" {
		tree.Children = append(tree.Children, &doctree.DocNode{Text: b.root.Text})
	}
	tree.Children = append(tree.Children, b.root.Children...)
}
