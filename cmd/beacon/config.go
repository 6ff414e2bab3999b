package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/codecanvas/beacon/internal/linkscan"
	"github.com/codecanvas/beacon/internal/storage/factory"
	"github.com/codecanvas/beacon/pkg/config/env"
	"gopkg.in/yaml.v3"
)

const jobsConfigPathEnv = "JOBS_CONFIG"

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

// JobsConfig tunes the three background jobs. Defaults reproduce the
// production cadences; an optional YAML file pointed at by JOBS_CONFIG
// overrides them (mainly for local runs and load tests).
type JobsConfig struct {
	PublishSweepInterval time.Duration `yaml:"publishSweepInterval"`
	ScoreInterval        time.Duration `yaml:"scoreInterval"`
	ScanInterval         time.Duration `yaml:"scanInterval"`
	ScanAtHour           *int          `yaml:"scanAtHour"`
	ScanWorkers          int           `yaml:"scanWorkers"`
}

type BeaconConfig struct {
	StorageConfig factory.StorageConfig
	Jobs          JobsConfig
}

func defaultJobsConfig() JobsConfig {
	scanHour := 3
	return JobsConfig{
		PublishSweepInterval: time.Minute,
		ScoreInterval:        time.Hour,
		ScanInterval:         24 * time.Hour,
		ScanAtHour:           &scanHour,
		ScanWorkers:          linkscan.DefaultWorkers,
	}
}

func (ac *AppConfig) Load() (*BeaconConfig, error) {
	err := env.LoadDotEnv(ac.ENV, "cmd/beacon/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	jobs := defaultJobsConfig()
	if path := os.Getenv(jobsConfigPathEnv); path != "" {
		if err := loadJobsConfig(path, &jobs); err != nil {
			return nil, fmt.Errorf("load jobs config %s: %w", path, err)
		}
	}
	if err := jobs.validate(); err != nil {
		return nil, err
	}

	return &BeaconConfig{
		StorageConfig: *storageCfg,
		Jobs:          jobs,
	}, nil
}

func loadJobsConfig(path string, cfg *JobsConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return yaml.NewDecoder(f).Decode(cfg)
}

func (c *JobsConfig) validate() error {
	if c.PublishSweepInterval <= 0 {
		return fmt.Errorf("publishSweepInterval must be positive, got %s", c.PublishSweepInterval)
	}
	if c.ScoreInterval <= 0 {
		return fmt.Errorf("scoreInterval must be positive, got %s", c.ScoreInterval)
	}
	if c.ScanInterval <= 0 {
		return fmt.Errorf("scanInterval must be positive, got %s", c.ScanInterval)
	}
	if c.ScanAtHour != nil && (*c.ScanAtHour < 0 || *c.ScanAtHour > 23) {
		return fmt.Errorf("scanAtHour must be between 0 and 23, got %d", *c.ScanAtHour)
	}
	if c.ScanWorkers <= 0 {
		return fmt.Errorf("scanWorkers must be positive, got %d", c.ScanWorkers)
	}
	return nil
}
