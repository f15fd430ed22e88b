package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Titel

Einleitung.

## Abschnitt A

Inhalt von A.

### Unterabschnitt A1

Inhalt von A1.

## Abschnitt B

Inhalt von B.
`
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "dok.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "dok" {
		t.Errorf("expected title %q, got %q", "dok", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(tree.Children))
	}

	h1 := tree.Children[0]
	if h1.Title != "Titel" {
		t.Errorf("expected h1 title %q, got %q", "Titel", h1.Title)
	}
	if h1.Text != "Einleitung." {
		t.Errorf("expected h1 text %q, got %q", "Einleitung.", h1.Text)
	}
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	secA := h1.Children[0]
	if secA.Title != "Abschnitt A" || secA.Text != "Inhalt von A." {
		t.Errorf("unexpected section A: %q / %q", secA.Title, secA.Text)
	}
	if len(secA.Children) != 1 || secA.Children[0].Title != "Unterabschnitt A1" {
		t.Fatalf("expected subsection A1 under section A, got %+v", secA.Children)
	}
	if h1.Children[1].Title != "Abschnitt B" {
		t.Errorf("expected %q, got %q", "Abschnitt B", h1.Children[1].Title)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := "Nur etwas Text.\n\nNoch ein Absatz."

	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "einfach.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child for headingless markdown, got %d", len(tree.Children))
	}
	want := "Nur etwas Text.\n\nNoch ein Absatz."
	if tree.Children[0].Text != want {
		t.Errorf("expected %q, got %q", want, tree.Children[0].Text)
	}
}

func TestMarkdownParser_TextBeforeFirstHeading(t *testing.T) {
	input := "Vorwort.\n\n# Kapitel\n\nText."

	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "buch.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "" || tree.Children[0].Text != "Vorwort." {
		t.Errorf("expected untitled preface, got %q / %q", tree.Children[0].Title, tree.Children[0].Text)
	}
}

func TestMarkdownParser_SkipsCodeAndStripsMarkup(t *testing.T) {
	input := "# Anleitung\n\nDas ist **wichtig** und *klar*.\n\n```\nGET /api/zix\n```\n\n- Ich gehe spazieren\n- Die Sonne scheint\n\nMehr Text nach dem Code.\n"

	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "anleitung.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child, got %d", len(tree.Children))
	}

	text := tree.Children[0].Text
	if strings.Contains(text, "GET /api/zix") {
		t.Errorf("code block should be skipped, got %q", text)
	}
	if strings.Contains(text, "**") {
		t.Errorf("emphasis markers should be stripped, got %q", text)
	}
	for _, want := range []string{
		"Das ist wichtig und klar.",
		"- Ich gehe spazieren\n- Die Sonne scheint",
		"Mehr Text nach dem Code.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text to contain %q, got %q", want, text)
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(""), "leer.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notizen.markdown", "notizen"},
		{"dir/sub/plan.md", "plan"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		tree, err := p.Parse(strings.NewReader("Text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if tree.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, tree.Title)
		}
	}
}
