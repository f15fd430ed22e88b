package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/zix/internal/cefr"
)

var ErrBadRecord = errors.New("bad vocabulary record")

// LoadCSV reads the level list and the word score list and builds Tables.
func LoadCSV(levelsPath, scoresPath string) (*Tables, error) {
	lf, err := os.Open(levelsPath)
	if err != nil {
		return nil, fmt.Errorf("open levels file: %w", err)
	}
	defer lf.Close()

	entries, err := ParseLevels(lf)
	if err != nil {
		return nil, fmt.Errorf("parse levels %s: %w", levelsPath, err)
	}

	sf, err := os.Open(scoresPath)
	if err != nil {
		return nil, fmt.Errorf("open scores file: %w", err)
	}
	defer sf.Close()

	scores, err := ParseScores(sf)
	if err != nil {
		return nil, fmt.Errorf("parse scores %s: %w", scoresPath, err)
	}

	return NewTables(entries, scores), nil
}

// ParseLevels reads lemma,level rows. A header row naming the columns
// (lemma or lemma_ch, level) is optional.
func ParseLevels(r io.Reader) ([]Entry, error) {
	var entries []Entry
	err := readPairs(r, []string{"lemma", "lemma_ch"}, []string{"level", "cefr"}, func(line int, lemma, value string) error {
		level, err := cefr.ParseLevel(value)
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrBadRecord, line, err)
		}
		entries = append(entries, Entry{Lemma: lemma, Level: level})
		return nil
	})
	return entries, err
}

// ParseScores reads lemma,score rows. A header row is optional. Later rows
// override earlier ones for the same lemma.
func ParseScores(r io.Reader) (map[string]float64, error) {
	scores := make(map[string]float64)
	err := readPairs(r, []string{"lemma", "lemma_ch"}, []string{"score"}, func(line int, lemma, value string) error {
		s, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: score %q", ErrBadRecord, line, value)
		}
		scores[lemma] = s
		return nil
	})
	return scores, err
}

// readPairs calls fn with the lemma and value column of every data row.
// Column positions come from the header when it names them, otherwise the
// first two columns are used and the first row is data.
func readPairs(r io.Reader, keyNames, valueNames []string, fn func(line int, key, value string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	keyCol, valCol := 0, 1
	line := 0
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		line++

		if first {
			first = false
			k, v := column(record, keyNames), column(record, valueNames)
			if k >= 0 && v >= 0 {
				keyCol, valCol = k, v
				continue
			}
		}

		if len(record) <= max(keyCol, valCol) {
			if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
				continue
			}
			return fmt.Errorf("%w: line %d: expected at least %d columns", ErrBadRecord, line, max(keyCol, valCol)+1)
		}

		key := strings.TrimSpace(record[keyCol])
		if key == "" {
			continue
		}
		if err := fn(line, key, strings.TrimSpace(record[valCol])); err != nil {
			return err
		}
	}
}

func column(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}
