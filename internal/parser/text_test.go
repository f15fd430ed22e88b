package parser

import (
	"strings"
	"testing"
)

func TestTextParser_ParagraphSplitting(t *testing.T) {
	input := "Erster Absatz, Zeile eins.\nErster Absatz, Zeile zwei.\n\nZweiter Absatz.\n\nDritter Absatz."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "notizen.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "notizen" {
		t.Errorf("expected title %q, got %q", "notizen", tree.Title)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(tree.Children))
	}

	want := []struct {
		text string
		line int
	}{
		{"Erster Absatz, Zeile eins.\nErster Absatz, Zeile zwei.", 1},
		{"Zweiter Absatz.", 4},
		{"Dritter Absatz.", 6},
	}
	for i, w := range want {
		if tree.Children[i].Text != w.text {
			t.Errorf("child[%d]: expected %q, got %q", i, w.text, tree.Children[i].Text)
		}
		if tree.Children[i].Page != w.line {
			t.Errorf("child[%d]: expected start line %d, got %d", i, w.line, tree.Children[i].Page)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(""), "leer.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "leer" {
		t.Errorf("expected title %q, got %q", "leer", tree.Title)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
	if !tree.Empty() {
		t.Error("expected empty tree")
	}
}

func TestTextParser_SingleLine(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader("Hallo Welt"), "einzeln.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(tree.Children))
	}
	if tree.Children[0].Text != "Hallo Welt" {
		t.Errorf("expected %q, got %q", "Hallo Welt", tree.Children[0].Text)
	}
}

func TestTextParser_BlankAndWhitespaceLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"multiple blank lines", "Absatz eins.\n\n\n\nAbsatz zwei."},
		{"whitespace only line", "Absatz eins.\n   \nAbsatz zwei."},
		{"crlf", "Absatz eins.\r\n\r\nAbsatz zwei.\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := (&TextParser{}).Parse(strings.NewReader(tt.input), "x.txt")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tree.Children) != 2 {
				t.Fatalf("expected 2 children, got %d", len(tree.Children))
			}
		})
	}
}
