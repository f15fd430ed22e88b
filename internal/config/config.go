package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Annotator AnnotatorConfig `yaml:"annotator"`
	Vocab     VocabConfig     `yaml:"vocab"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `yaml:"port"             env:"PORT"                    env-default:"8090"`
	APIKey          string        `yaml:"api_key"          env:"ZIX_API_KEY"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"        env-default:"52428800"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// AnnotatorConfig points at the annotation sidecar.
type AnnotatorConfig struct {
	URL         string        `yaml:"url"          env:"ANNOTATOR_URL"          env-default:"http://localhost:8000"`
	APIKey      string        `yaml:"api_key"      env:"ANNOTATOR_API_KEY"`
	Model       string        `yaml:"model"        env:"ANNOTATOR_MODEL"        env-default:"de_core_news_sm"`
	Timeout     time.Duration `yaml:"timeout"      env:"ANNOTATOR_TIMEOUT"      env-default:"60s"`
	StatsWindow time.Duration `yaml:"stats_window" env:"ANNOTATOR_STATS_WINDOW" env-default:"1h"`
}

// VocabConfig locates the CEFR word lists and word frequency scores.
// With FromStore set the tables are read from the SQLite store instead.
type VocabConfig struct {
	LevelsPath string `yaml:"levels_path" env:"VOCAB_LEVELS_PATH" env-default:"data/vocab_levels.csv"`
	ScoresPath string `yaml:"scores_path" env:"VOCAB_SCORES_PATH" env-default:"data/word_scores.csv"`
	FromStore  bool   `yaml:"from_store"  env:"VOCAB_FROM_STORE"  env-default:"false"`
}

// ScoringConfig holds scorer and sectioning settings.
type ScoringConfig struct {
	MaxLength       int    `yaml:"max_length"        env:"SCORING_MAX_LENGTH"        env-default:"1000000"`
	ModelVersion    string `yaml:"model_version"     env:"SCORING_MODEL_VERSION"     env-default:"v1"`
	SectionMaxChars int    `yaml:"section_max_chars" env:"SCORING_SECTION_MAX_CHARS" env-default:"20000"`
	SectionMinChars int    `yaml:"section_min_chars" env:"SCORING_SECTION_MIN_CHARS" env-default:"40"`
}

// PipelineConfig holds batch worker pool settings.
type PipelineConfig struct {
	WorkerCount          int           `yaml:"worker_count"           env:"WORKER_COUNT"           env-default:"4"`
	MaxQueueSize         int           `yaml:"max_queue_size"         env:"MAX_QUEUE_SIZE"         env-default:"100"`
	MaxConcurrentScore   int           `yaml:"max_concurrent_score"   env:"MAX_CONCURRENT_SCORE"   env-default:"5"`
	JobTTL               time.Duration `yaml:"job_ttl"                env:"JOB_TTL"                env-default:"1h"`
	NoPdftotextFallback  bool          `yaml:"no_pdftotext_fallback"  env:"NO_PDFTOTEXT_FALLBACK"`
}

// StoreConfig holds SQLite settings. The store is on unless disabled.
type StoreConfig struct {
	Disabled bool   `yaml:"disabled" env:"STORE_DISABLED"`
	Path     string `yaml:"path"     env:"STORE_PATH"     env-default:"zix.db"`
}

func (c StoreConfig) Enabled() bool { return !c.Disabled }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
