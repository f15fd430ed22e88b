// Package segment cuts a parsed document into sections small enough to be
// scored on their own.
package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/zix/internal/doctree"
)

// Config controls sectioning. Sizes are in characters.
type Config struct {
	MaxChars int // Longest section emitted.
	MinChars int // Shorter sections are dropped.
}

func DefaultConfig() Config {
	return Config{
		MaxChars: 20000,
		MinChars: 40,
	}
}

// Section is a scorable piece of a document with its structural context.
type Section struct {
	Text       string   `json:"-"`
	Index      int      `json:"index"`
	Breadcrumb []string `json:"breadcrumb,omitempty"` // Heading hierarchy, e.g. ["Kapitel 2", "Das Wetter"]
	PageStart  int      `json:"page_start,omitempty"`
	PageEnd    int      `json:"page_end,omitempty"`
}

// Split walks the tree depth-first and emits sections in document order.
func Split(tree *doctree.DocTree, cfg Config) []Section {
	def := DefaultConfig()
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = def.MaxChars
	}
	if cfg.MinChars < 0 {
		cfg.MinChars = 0
	}

	var sections []Section
	for _, child := range tree.Children {
		walkNode(child, nil, cfg, &sections)
	}
	return sections
}

func walkNode(node *doctree.DocNode, breadcrumb []string, cfg Config, sections *[]Section) {
	bc := breadcrumb
	if node.Title != "" {
		bc = append(append([]string(nil), breadcrumb...), node.Title)
	}

	if node.Text != "" {
		for _, part := range splitText(node.Text, cfg.MaxChars) {
			if part == "" || length(part) < cfg.MinChars {
				continue
			}
			*sections = append(*sections, Section{
				Text:       part,
				Index:      len(*sections),
				Breadcrumb: copyBreadcrumb(bc),
				PageStart:  node.Page,
				PageEnd:    node.Page,
			})
		}
	}

	for _, child := range node.Children {
		walkNode(child, bc, cfg, sections)
	}
}

// Flatten joins the text of every node in document order, one node per
// line block, for scoring the document as a whole.
func Flatten(tree *doctree.DocTree) string {
	var sb strings.Builder
	var walk func(nodes []*doctree.DocNode)
	walk = func(nodes []*doctree.DocNode) {
		for _, n := range nodes {
			if n.Text != "" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(n.Text)
			}
			walk(n.Children)
		}
	}
	walk(tree.Children)
	return sb.String()
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// splitText packs paragraphs into parts of at most maxChars. Paragraphs
// that are too long are split on sentences, sentences on words.
func splitText(text string, maxChars int) []string {
	if length(text) <= maxChars {
		return []string{strings.TrimSpace(text)}
	}

	var parts []string
	for _, para := range splitByParagraphs(text) {
		if length(para) > maxChars {
			parts = append(parts, pack(splitSentences(para), " ", maxChars)...)
			continue
		}
		parts = append(parts, para)
	}
	return pack(parts, "\n\n", maxChars)
}

// pack greedily joins pieces with sep while the result stays within
// maxChars. Pieces that are too long on their own are cut on words.
func pack(pieces []string, sep string, maxChars int) []string {
	var result []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			result = append(result, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, p := range pieces {
		n := length(p)
		if n > maxChars {
			flush()
			result = append(result, splitWords(p, maxChars)...)
			continue
		}
		if currentLen > 0 && currentLen+len(sep)+n > maxChars {
			flush()
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += len(sep)
		}
		current.WriteString(p)
		currentLen += n
	}
	flush()
	return result
}

// splitWords cuts text on whitespace into parts of at most maxChars. A
// single word longer than maxChars becomes its own part.
func splitWords(text string, maxChars int) []string {
	var result []string
	var current []string
	currentLen := 0
	for _, w := range strings.Fields(text) {
		n := length(w)
		if len(current) > 0 && currentLen+1+n > maxChars {
			result = append(result, strings.Join(current, " "))
			current, currentLen = nil, 0
		}
		if len(current) > 0 {
			currentLen++
		}
		current = append(current, w)
		currentLen += n
	}
	if len(current) > 0 {
		result = append(result, strings.Join(current, " "))
	}
	return result
}

// splitByParagraphs splits on blank lines.
func splitByParagraphs(text string) []string {
	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitSentences splits after sentence punctuation followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
