package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Upstream report locations. These are third-party pages with no API
	// contract; overriding them mostly matters for tests and mirrors.
	LakeReportURL   string        `env:"LAKE_REPORT_URL" envDefault:"https://www.lrl-wc.usace.army.mil/reports/lkreport.html"`
	BasinProjectURL string        `env:"BASIN_PROJECT_URL" envDefault:"https://www.lrn-wc.usace.army.mil/basin_project.shtml?p=wol"`
	ScrapeTimeout   time.Duration `env:"SCRAPE_TIMEOUT" envDefault:"15s"`

	// CacheTTL is the freshness window: a persisted snapshot older than this
	// triggers a re-scrape on the next read.
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"2h"`
	StoragePath string        `env:"STORAGE_PATH" envDefault:"data/storage.json"`

	VisitsDBPath string `env:"VISITS_DB_PATH" envDefault:"data/visits.db"`
	VisitsStart  int64  `env:"VISITS_START" envDefault:"1000"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`

	// FlowKcfsThreshold tunes the kcfs-vs-cfs unit heuristic applied to basin
	// project flows.
	FlowKcfsThreshold float64 `env:"FLOW_KCFS_THRESHOLD" envDefault:"200"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.LakeReportURL == "" {
		return nil, errors.New("LAKE_REPORT_URL is required")
	}
	if cfg.BasinProjectURL == "" {
		return nil, errors.New("BASIN_PROJECT_URL is required")
	}
	if cfg.ScrapeTimeout <= 0 {
		return nil, errors.New("SCRAPE_TIMEOUT must be positive")
	}
	if cfg.CacheTTL <= 0 {
		return nil, errors.New("CACHE_TTL must be positive")
	}
	if cfg.FlowKcfsThreshold <= 0 {
		return nil, errors.New("FLOW_KCFS_THRESHOLD must be positive")
	}
	if cfg.VisitsStart < 0 {
		return nil, errors.New("VISITS_START must not be negative")
	}

	return cfg, nil
}
