// Package config loads seedbrowser settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yangyang3917/minecraft-seed-site/pkg/paging"
)

const envPrefix = "SEEDBROWSER_"

// Config is the on-disk configuration. Empty fields take defaults.
type Config struct {
	DataSource    string   `yaml:"data_source"`
	NoticeSource  string   `yaml:"notice_source"`
	ImageBase     string   `yaml:"image_base"`
	CacheDir      string   `yaml:"cache_dir"`
	StateDB       string   `yaml:"state_db"`
	BatchSize     int      `yaml:"batch_size"`
	KnownVersions []string `yaml:"known_versions"`
	MetricsAddr   string   `yaml:"metrics_addr"`
	GitHubToken   string   `yaml:"github_token"`
}

// Load reads the config at path, applies SEEDBROWSER_* environment overrides,
// then fills defaults. GITHUB_TOKEN is used only when the file sets no token.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.setDefaults(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DATA_SOURCE":   &c.DataSource,
		"NOTICE_SOURCE": &c.NoticeSource,
		"IMAGE_BASE":    &c.ImageBase,
		"CACHE_DIR":     &c.CacheDir,
		"STATE_DB":      &c.StateDB,
		"METRICS_ADDR":  &c.MetricsAddr,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "BATCH_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBATCH_SIZE: %w", envPrefix, err)
		}
		c.BatchSize = n
	}
	if v, ok := lookup(envPrefix + "KNOWN_VERSIONS"); ok {
		c.KnownVersions = splitList(v)
	}
	if v, ok := lookup("GITHUB_TOKEN"); ok && c.GitHubToken == "" {
		c.GitHubToken = v
	}
	return nil
}

func (c *Config) setDefaults() error {
	if c.DataSource == "" {
		c.DataSource = "seeds.json"
	}
	if c.NoticeSource == "" {
		c.NoticeSource = "notice.json"
	}
	if c.ImageBase == "" {
		c.ImageBase = "."
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative, got %d", c.BatchSize)
	}
	if c.BatchSize == 0 {
		c.BatchSize = paging.DefaultBatchSize
	}

	if c.CacheDir == "" || c.StateDB == "" {
		base := defaultCacheBase()
		if c.CacheDir == "" {
			c.CacheDir = filepath.Join(base, "images")
		}
		if c.StateDB == "" {
			c.StateDB = filepath.Join(base, "state.db")
		}
	}
	return nil
}

// defaultCacheBase falls back to the temp dir when no home is set.
func defaultCacheBase() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "seedbrowser")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
