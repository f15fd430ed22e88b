package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dgallion1/zix/internal/score"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0 (got %d)", c.Server.MaxUploadBytes)
	}

	u, err := url.Parse(c.Annotator.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("annotator.url must be an absolute URL (got %q)", c.Annotator.URL)
	}

	if !c.Vocab.FromStore && (c.Vocab.LevelsPath == "" || c.Vocab.ScoresPath == "") {
		return fmt.Errorf("vocab.levels_path and vocab.scores_path are required unless vocab.from_store is set")
	}
	if c.Vocab.FromStore && c.Store.Disabled {
		return fmt.Errorf("vocab.from_store requires the store (store.disabled is set)")
	}

	if err := c.Scoring.validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if c.Store.Enabled() && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when the store is enabled")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (s *ScoringConfig) validate() error {
	if s.MaxLength <= 0 {
		return fmt.Errorf("max_length must be > 0 (got %d)", s.MaxLength)
	}
	if _, err := score.Lookup(s.ModelVersion); err != nil {
		return fmt.Errorf("model_version: %w", err)
	}
	if s.SectionMaxChars <= 0 || s.SectionMaxChars > s.MaxLength {
		return fmt.Errorf("section_max_chars must be in (0, max_length] (got %d)", s.SectionMaxChars)
	}
	if s.SectionMinChars < 0 || s.SectionMinChars >= s.SectionMaxChars {
		return fmt.Errorf("section_min_chars must be in [0, section_max_chars) (got %d)", s.SectionMinChars)
	}
	return nil
}

func (p *PipelineConfig) validate() error {
	if p.WorkerCount <= 0 {
		return fmt.Errorf("worker_count must be > 0 (got %d)", p.WorkerCount)
	}
	if p.MaxQueueSize <= 0 {
		return fmt.Errorf("max_queue_size must be > 0 (got %d)", p.MaxQueueSize)
	}
	if p.MaxConcurrentScore <= 0 {
		return fmt.Errorf("max_concurrent_score must be > 0 (got %d)", p.MaxConcurrentScore)
	}
	if p.JobTTL <= 0 {
		return fmt.Errorf("job_ttl must be > 0 (got %s)", p.JobTTL)
	}
	return nil
}
