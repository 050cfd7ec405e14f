package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
// It covers presentation and plumbing only. The classification thresholds
// are not configurable: adjustable shame is no shame at all.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
	Batch   BatchConfig   `yaml:"batch"`
}

type OutputConfig struct {
	// Default render format: "human", "json", or "yaml"
	Format string `yaml:"format"`
	// Color mode: "auto", "always", or "never"
	Color string `yaml:"color"`
}

type MetricsConfig struct {
	// Listen address for /metrics, e.g. ":9090". If empty, read from env
	// METRICS_ADDR; still empty means no metrics server.
	Addr string `yaml:"addr"`
}

type BatchConfig struct {
	// How many top offenders a batch summary lists
	Top int `yaml:"top"`
	// Default path for the optional SQLite results sink
	DBPath string `yaml:"dbPath"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Output:  OutputConfig{Format: "human", Color: "auto"},
		Metrics: MetricsConfig{Addr: ""},
		Batch:   BatchConfig{Top: 10, DBPath: ""},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
}

// Load reads YAML config from path. A missing file is not an error: the
// tool works unconfigured, so defaults come back instead.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.ResolveEnv()
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
