package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/zix/internal/doctree"
)

// CSVParser reads sample sheets: one text sample per row. The first row is
// the header. Text comes from the "text" column, or the first column if
// there is none; "id" or "title" columns name the sample.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	tree := &doctree.DocTree{Title: titleFromFilename(filename)}

	header, err := reader.Read()
	if err == io.EOF {
		return tree, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	textCol := headerIndex(header, "text", "sample", "satz")
	if textCol < 0 {
		textCol = 0
	}
	titleCol := headerIndex(header, "id", "title")

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		row++

		if textCol >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[textCol])
		if text == "" {
			continue
		}

		title := fmt.Sprintf("Row %d", row)
		if titleCol >= 0 && titleCol < len(record) && strings.TrimSpace(record[titleCol]) != "" {
			title = strings.TrimSpace(record[titleCol])
		}
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: title,
			Text:  text,
			Page:  row,
		})
	}

	return tree, nil
}

func headerIndex(header []string, names ...string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}
