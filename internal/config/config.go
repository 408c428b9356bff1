// Package config provides configuration loading and validation for the
// asset lifecycle subsystem. Supports YAML files with environment variable
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the asset garbage collector.
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	MediaStore    MediaStoreConfig    `yaml:"mediaStore"`
	Sweep         SweepConfig         `yaml:"sweep"`
	Deletion      DeletionConfig      `yaml:"deletion"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DatabaseConfig configures the application database connection.
type DatabaseConfig struct {
	// Path is the sqlite database file path.
	Path string `yaml:"path" env:"ASSETGC_DB_PATH"`
}

// MediaStoreConfig configures the S3-backed media store.
type MediaStoreConfig struct {
	Endpoint     string `yaml:"endpoint" env:"ASSETGC_S3_ENDPOINT"`
	Bucket       string `yaml:"bucket" env:"ASSETGC_S3_BUCKET"`
	Region       string `yaml:"region" env:"ASSETGC_S3_REGION"`
	AccessKey    string `yaml:"accessKey" env:"ASSETGC_S3_ACCESS_KEY"`
	SecretKey    string `yaml:"secretKey" env:"ASSETGC_S3_SECRET_KEY"`
	UsePathStyle bool   `yaml:"usePathStyle" env:"ASSETGC_S3_PATH_STYLE"`
}

// SweepConfig configures the offline orphan sweep.
type SweepConfig struct {
	// BatchSize is the number of documents loaded per database page
	// during the mark phase.
	BatchSize int `yaml:"batchSize" env:"ASSETGC_SWEEP_BATCH_SIZE"`

	// PageSize is the number of assets requested per media store listing page.
	PageSize int `yaml:"pageSize" env:"ASSETGC_SWEEP_PAGE_SIZE"`

	// SampleLimit bounds the number of candidates printed in a dry run.
	SampleLimit int `yaml:"sampleLimit" env:"ASSETGC_SWEEP_SAMPLE_LIMIT"`

	// ExcludedFolders are folder prefixes whose lifecycle is managed
	// elsewhere; assets under them are never flagged as orphans.
	ExcludedFolders []string `yaml:"excludedFolders"`
}

// DeletionConfig configures the asynchronous deletion queue.
type DeletionConfig struct {
	// QueueDepth is the bounded number of pending deletion batches.
	QueueDepth int `yaml:"queueDepth" env:"ASSETGC_DELETION_QUEUE_DEPTH"`

	// Workers is the number of deletion worker goroutines.
	Workers int `yaml:"workers" env:"ASSETGC_DELETION_WORKERS"`
}

// ObservabilityConfig configures logging and metrics.
type ObservabilityConfig struct {
	MetricsAddr string `yaml:"metricsAddr" env:"ASSETGC_METRICS_ADDR"`
	LogLevel    string `yaml:"logLevel" env:"ASSETGC_LOG_LEVEL"`
	LogFormat   string `yaml:"logFormat" env:"ASSETGC_LOG_FORMAT"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		MediaStore: MediaStoreConfig{
			Region: "us-east-1",
		},
		Sweep: SweepConfig{
			BatchSize:   500,
			PageSize:    500,
			SampleLimit: 50,
			ExcludedFolders: []string{
				"generated/invoices",
				"chat/attachments",
			},
		},
		Deletion: DeletionConfig{
			QueueDepth: 64,
			Workers:    2,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Load returns the default configuration with environment overrides applied.
func Load() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads a YAML config file, then applies environment overrides.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required connection settings are present.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("config: database.path is required")
	}
	if c.MediaStore.Bucket == "" {
		return fmt.Errorf("config: mediaStore.bucket is required")
	}
	if c.Sweep.BatchSize <= 0 {
		return fmt.Errorf("config: sweep.batchSize must be positive")
	}
	if c.Sweep.PageSize <= 0 {
		return fmt.Errorf("config: sweep.pageSize must be positive")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Database.Path, "ASSETGC_DB_PATH")
	setString(&cfg.MediaStore.Endpoint, "ASSETGC_S3_ENDPOINT")
	setString(&cfg.MediaStore.Bucket, "ASSETGC_S3_BUCKET")
	setString(&cfg.MediaStore.Region, "ASSETGC_S3_REGION")
	setString(&cfg.MediaStore.AccessKey, "ASSETGC_S3_ACCESS_KEY")
	setString(&cfg.MediaStore.SecretKey, "ASSETGC_S3_SECRET_KEY")
	setBool(&cfg.MediaStore.UsePathStyle, "ASSETGC_S3_PATH_STYLE")
	setInt(&cfg.Sweep.BatchSize, "ASSETGC_SWEEP_BATCH_SIZE")
	setInt(&cfg.Sweep.PageSize, "ASSETGC_SWEEP_PAGE_SIZE")
	setInt(&cfg.Sweep.SampleLimit, "ASSETGC_SWEEP_SAMPLE_LIMIT")
	setInt(&cfg.Deletion.QueueDepth, "ASSETGC_DELETION_QUEUE_DEPTH")
	setInt(&cfg.Deletion.Workers, "ASSETGC_DELETION_WORKERS")
	setString(&cfg.Observability.MetricsAddr, "ASSETGC_METRICS_ADDR")
	setString(&cfg.Observability.LogLevel, "ASSETGC_LOG_LEVEL")
	setString(&cfg.Observability.LogFormat, "ASSETGC_LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
