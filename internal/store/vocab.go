package store

import (
	"context"
	"fmt"

	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/vocab"
)

// ImportVocabulary replaces the stored vocabulary with t and returns the
// table sizes written.
func (s *Store) ImportVocabulary(ctx context.Context, t *vocab.Tables) (vocab.Counts, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return vocab.Counts{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM vocab_levels", "DELETE FROM word_scores"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return vocab.Counts{}, fmt.Errorf("clear vocabulary: %w", err)
		}
	}

	levels, err := tx.PrepareContext(ctx, "INSERT INTO vocab_levels (lemma, level) VALUES (?, ?)")
	if err != nil {
		return vocab.Counts{}, fmt.Errorf("prepare levels: %w", err)
	}
	defer levels.Close()
	for _, e := range t.Entries() {
		if _, err := levels.ExecContext(ctx, e.Lemma, string(e.Level)); err != nil {
			return vocab.Counts{}, fmt.Errorf("insert level %q: %w", e.Lemma, err)
		}
	}

	scores, err := tx.PrepareContext(ctx, "INSERT INTO word_scores (lemma, score) VALUES (?, ?)")
	if err != nil {
		return vocab.Counts{}, fmt.Errorf("prepare scores: %w", err)
	}
	defer scores.Close()
	for lemma, score := range t.Scores() {
		if _, err := scores.ExecContext(ctx, lemma, score); err != nil {
			return vocab.Counts{}, fmt.Errorf("insert score %q: %w", lemma, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return vocab.Counts{}, fmt.Errorf("commit: %w", err)
	}
	return t.Counts(), nil
}

// LoadTables reads the stored vocabulary. It fails with ErrNoVocabulary if
// nothing was imported.
func (s *Store) LoadTables(ctx context.Context) (*vocab.Tables, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT lemma, level FROM vocab_levels")
	if err != nil {
		return nil, fmt.Errorf("query levels: %w", err)
	}
	var entries []vocab.Entry
	for rows.Next() {
		var lemma, level string
		if err := rows.Scan(&lemma, &level); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan level: %w", err)
		}
		entries = append(entries, vocab.Entry{Lemma: lemma, Level: cefr.Level(level)})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate levels: %w", err)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, "SELECT lemma, score FROM word_scores")
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()
	scores := make(map[string]float64)
	for rows.Next() {
		var lemma string
		var score float64
		if err := rows.Scan(&lemma, &score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores[lemma] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}

	if len(entries) == 0 && len(scores) == 0 {
		return nil, ErrNoVocabulary
	}
	return vocab.NewTables(entries, scores), nil
}
