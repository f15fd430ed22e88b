package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/zix/internal/doctree"
)

// HTMLParser handles HTML files. h1-h6 nest sections; navigation, scripts
// and page chrome are skipped.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{Title: titleFromFilename(filename)}
	if title := findElement(doc, "title"); title != nil {
		if t := textContent(title); t != "" {
			tree.Title = t
		}
	}

	b := newTreeBuilder()
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				b.heading(level, textContent(n))
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "pre", "code", "noscript":
				return
			case "p", "td", "blockquote", "dd", "figcaption":
				b.paragraph(textContent(n))
				return
			case "ul", "ol":
				b.paragraph(listText(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findElement(doc, "body"); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	b.finish(tree)

	return tree, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// listText renders the direct <li> children of a list as bulleted lines.
func listText(list *html.Node) string {
	var items []string
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			if t := textContent(c); t != "" {
				items = append(items, "- "+t)
			}
		}
	}
	return strings.Join(items, "\n")
}

// textContent returns the whitespace-collapsed text below n.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
