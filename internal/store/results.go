package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/features"
)

// Result is a cached score for one normalized text under one model.
type Result struct {
	ContentHash  string          `json:"content_hash"`
	ModelVersion string          `json:"model_version"`
	ZIX          float64         `json:"zix"`
	Level        cefr.Level      `json:"cefr"`
	Features     features.Vector `json:"features"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SaveResult stores r, replacing any earlier result for the same hash and
// model version. A zero CreatedAt is set to now.
func (s *Store) SaveResult(ctx context.Context, r Result) error {
	if r.ContentHash == "" || r.ModelVersion == "" {
		return fmt.Errorf("save result: content hash and model version are required")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	feats, err := json.Marshal(r.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO score_results (content_hash, model_version, zix, level, features_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (content_hash, model_version) DO UPDATE SET
			zix = excluded.zix,
			level = excluded.level,
			features_json = excluded.features_json,
			created_at = excluded.created_at`,
		r.ContentHash, r.ModelVersion, r.ZIX, string(r.Level), string(feats), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// GetResult returns the cached result or ErrNotFound.
func (s *Store) GetResult(ctx context.Context, contentHash, modelVersion string) (*Result, error) {
	var (
		r     Result
		level string
		feats string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT content_hash, model_version, zix, level, features_json, created_at
		FROM score_results WHERE content_hash = ? AND model_version = ?`,
		contentHash, modelVersion,
	).Scan(&r.ContentHash, &r.ModelVersion, &r.ZIX, &level, &feats, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	r.Level = cefr.Level(level)
	if err := json.Unmarshal([]byte(feats), &r.Features); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	return &r, nil
}

func (s *Store) CountResults(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM score_results").Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}
