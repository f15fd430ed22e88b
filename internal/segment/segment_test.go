package segment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dgallion1/zix/internal/doctree"
)

func TestSplit_SmallTreeFitsOneSection(t *testing.T) {
	tree := &doctree.DocTree{
		Title: "Klein",
		Children: []*doctree.DocNode{
			{
				Title: "Abschnitt",
				Text:  strings.Repeat("Wort ", 200),
			},
		},
	}

	sections := Split(tree, Config{MaxChars: 5000, MinChars: 10})

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Index != 0 {
		t.Errorf("expected index 0, got %d", sections[0].Index)
	}
	if !strings.HasPrefix(sections[0].Text, "Wort Wort") {
		t.Errorf("unexpected section text %q", sections[0].Text[:20])
	}
}

func TestSplit_LargeTextIsSplit(t *testing.T) {
	largeText := strings.Repeat("Der schnelle braune Fuchs springt über den faulen Hund. ", 300)

	tree := &doctree.DocTree{
		Title: "Groß",
		Children: []*doctree.DocNode{
			{Title: "Großer Abschnitt", Text: largeText},
		},
	}

	cfg := Config{MaxChars: 1000, MinChars: 10}
	sections := Split(tree, cfg)

	if len(sections) < 2 {
		t.Fatalf("expected at least 2 sections for large text, got %d", len(sections))
	}
	for i, s := range sections {
		if s.Index != i {
			t.Errorf("section %d: expected index %d, got %d", i, i, s.Index)
		}
		if n := utf8.RuneCountInString(s.Text); n > cfg.MaxChars {
			t.Errorf("section %d: %d characters exceeds max %d", i, n, cfg.MaxChars)
		}
		if !strings.HasSuffix(s.Text, ".") {
			t.Errorf("section %d should end on a sentence boundary: %q", i, s.Text[len(s.Text)-20:])
		}
	}
}

func TestSplit_PacksParagraphs(t *testing.T) {
	para := strings.Repeat("a", 30)
	text := strings.Join([]string{para, para, para, para}, "\n\n")

	sections := Split(&doctree.DocTree{Children: []*doctree.DocNode{{Text: text}}}, Config{MaxChars: 70})

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	want := para + "\n\n" + para
	for i, s := range sections {
		if s.Text != want {
			t.Errorf("section %d: expected %q, got %q", i, want, s.Text)
		}
	}
}

func TestSplit_SentenceWithoutBreaksIsCutOnWords(t *testing.T) {
	text := strings.Repeat("Wort ", 100)
	sections := Split(&doctree.DocTree{Children: []*doctree.DocNode{{Text: text}}}, Config{MaxChars: 50})

	if len(sections) < 10 {
		t.Fatalf("expected at least 10 sections, got %d", len(sections))
	}
	for i, s := range sections {
		if n := utf8.RuneCountInString(s.Text); n > 50 {
			t.Errorf("section %d: %d characters exceeds max 50", i, n)
		}
	}
}

func TestSplit_BreadcrumbPropagation(t *testing.T) {
	tree := &doctree.DocTree{
		Title: "Dokument",
		Children: []*doctree.DocNode{
			{
				Title: "Kapitel 1",
				Children: []*doctree.DocNode{
					{Title: "Abschnitt 1.1", Text: strings.Repeat("Inhalt ", 20), Page: 3},
				},
			},
		},
	}

	sections := Split(tree, Config{MinChars: 10})

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	want := []string{"Kapitel 1", "Abschnitt 1.1"}
	bc := sections[0].Breadcrumb
	if len(bc) != len(want) {
		t.Fatalf("expected breadcrumb %v, got %v", want, bc)
	}
	for i := range want {
		if bc[i] != want[i] {
			t.Errorf("breadcrumb[%d]: expected %q, got %q", i, want[i], bc[i])
		}
	}
	if sections[0].PageStart != 3 || sections[0].PageEnd != 3 {
		t.Errorf("expected page span 3-3, got %d-%d", sections[0].PageStart, sections[0].PageEnd)
	}
}

func TestSplit_BreadcrumbIsolation(t *testing.T) {
	tree := &doctree.DocTree{
		Title: "Dokument",
		Children: []*doctree.DocNode{
			{Title: "A", Text: strings.Repeat("alpha ", 20)},
			{Title: "B", Text: strings.Repeat("beta ", 20)},
		},
	}

	sections := Split(tree, Config{MinChars: 10})

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if len(sections[0].Breadcrumb) != 1 || sections[0].Breadcrumb[0] != "A" {
		t.Errorf("section 0 breadcrumb: expected [A], got %v", sections[0].Breadcrumb)
	}
	if len(sections[1].Breadcrumb) != 1 || sections[1].Breadcrumb[0] != "B" {
		t.Errorf("section 1 breadcrumb: expected [B], got %v", sections[1].Breadcrumb)
	}
}

func TestSplit_MinCharsFiltering(t *testing.T) {
	tree := &doctree.DocTree{
		Children: []*doctree.DocNode{{Title: "Kurz", Text: "Hallo"}},
	}

	if sections := Split(tree, Config{MinChars: 40}); len(sections) != 0 {
		t.Errorf("expected 0 sections (below MinChars), got %d", len(sections))
	}
}

func TestSplit_EmptyTree(t *testing.T) {
	if sections := Split(&doctree.DocTree{Title: "Leer"}, DefaultConfig()); len(sections) != 0 {
		t.Errorf("expected 0 sections, got %d", len(sections))
	}
}

func TestSplit_DefaultConfigFallback(t *testing.T) {
	tree := &doctree.DocTree{
		Children: []*doctree.DocNode{{Text: strings.Repeat("Wort ", 200)}},
	}
	if sections := Split(tree, Config{}); len(sections) != 1 {
		t.Errorf("expected 1 section with zero config, got %d", len(sections))
	}
}

func TestSplit_NodeWithNoText(t *testing.T) {
	tree := &doctree.DocTree{
		Children: []*doctree.DocNode{
			{
				Title: "Container",
				Children: []*doctree.DocNode{
					{Title: "Blatt", Text: strings.Repeat("Blattinhalt ", 10)},
				},
			},
		},
	}

	sections := Split(tree, Config{MinChars: 10})
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	want := []string{"Container", "Blatt"}
	for i := range want {
		if sections[0].Breadcrumb[i] != want[i] {
			t.Errorf("breadcrumb[%d]: expected %q, got %q", i, want[i], sections[0].Breadcrumb[i])
		}
	}
}

func TestFlatten(t *testing.T) {
	tree := &doctree.DocTree{
		Children: []*doctree.DocNode{
			{Title: "Eins", Text: "Erster Absatz."},
			{
				Title: "Zwei",
				Children: []*doctree.DocNode{
					{Text: "Zweiter Absatz."},
					{Text: ""},
					{Text: "Dritter Absatz."},
				},
			},
		},
	}

	want := "Erster Absatz.\nZweiter Absatz.\nDritter Absatz."
	if got := Flatten(tree); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := Flatten(&doctree.DocTree{}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Es regnet. Ist das so?\nJa! Gut")
	want := []string{"Es regnet.", "Ist das so?", "Ja!", "Gut"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
