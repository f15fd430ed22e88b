// Package normalize turns raw multi-line input into single-line prose
// that the annotation service can segment into sentences.
package normalize

import (
	"strings"
	"unicode/utf8"
)

// PunctuateLines adds a period to lines that do not end with sentence
// punctuation, removes bullet markers, collapses whitespace runs and joins
// all non-empty lines with single spaces.
func PunctuateLines(text string) string {
	var out []string
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !endsSentence(line) {
			line += "."
		}

		if r, size := utf8.DecodeRuneInString(line); isBullet(r) {
			line = strings.TrimSpace(line[size:])
		}

		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(out, " ")
}

func endsSentence(line string) bool {
	switch line[len(line)-1] {
	case '.', '?', '!':
		return true
	}
	return false
}

func isBullet(r rune) bool {
	return r == '-' || r == '•'
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
