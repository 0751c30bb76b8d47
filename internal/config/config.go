package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/doclayout/internal/chunker"
	"github.com/dgallion1/doclayout/internal/layout"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int
	PageWorkers  int

	// Upload limits
	MaxUploadBytes int64

	// Layout thresholds
	ColumnGapThreshold float64
	MinColumnWidth     float64
	HeadingSizeRatio   float64
	MinHeadingSize     float64
	BoldSizeRatio      float64

	// Chunking defaults
	DefaultChunkSize    int
	DefaultChunkOverlap int

	// Rendering
	CleanNoise bool

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCLAYOUT_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		PageWorkers:  envInt("PAGE_WORKERS", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ColumnGapThreshold: envFloat("COLUMN_GAP_THRESHOLD", 30),
		MinColumnWidth:     envFloat("MIN_COLUMN_WIDTH", 100),
		HeadingSizeRatio:   envFloat("HEADING_SIZE_RATIO", 1.2),
		MinHeadingSize:     envFloat("MIN_HEADING_SIZE", 12),
		BoldSizeRatio:      envFloat("BOLD_SIZE_RATIO", 1.1),

		DefaultChunkSize:    envInt("DEFAULT_CHUNK_SIZE", 1500),
		DefaultChunkOverlap: envInt("DEFAULT_CHUNK_OVERLAP", 200),

		CleanNoise: envBool("CLEAN_NOISE", true),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ColumnGapThreshold <= 0 {
		cfg.ColumnGapThreshold = 30
	}
	if cfg.MinColumnWidth <= 0 {
		cfg.MinColumnWidth = 100
	}
	if cfg.DefaultChunkSize <= 0 {
		cfg.DefaultChunkSize = 1500
	}
	if cfg.DefaultChunkOverlap <= 0 {
		cfg.DefaultChunkOverlap = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCLAYOUT_API_KEY is required")
	}
	return nil
}

// LayoutConfig maps the env thresholds onto the analyzer configuration.
func (c Config) LayoutConfig() layout.Config {
	return layout.Config{
		Column: layout.ColumnConfig{
			GapThreshold:   c.ColumnGapThreshold,
			MinColumnWidth: c.MinColumnWidth,
		},
		Heading: layout.HeadingConfig{
			SizeRatio: c.HeadingSizeRatio,
			MinSize:   c.MinHeadingSize,
			BoldRatio: c.BoldSizeRatio,
		},
		PageWorkers: c.PageWorkers,
	}
}

// ChunkConfig returns the default chunker configuration.
func (c Config) ChunkConfig() chunker.Config {
	return chunker.Config{
		ChunkSize:    c.DefaultChunkSize,
		ChunkOverlap: c.DefaultChunkOverlap,
		MinChunk:     100,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
