// Package config loads marketplace settings from a YAML file.
//
// The file is optional. Missing values keep their defaults, and the GitHub
// token is always taken from the environment (GITHUB_TOKEN), never from disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

const (
	DirName  = ".spicetify-marketplace"
	FileName = "marketplace.yaml"

	EnvConfig = "MARKETPLACE_CONFIG"
	EnvToken  = "GITHUB_TOKEN"
)

type Config struct {
	// SearchBaseURL is the GitHub REST API root. Empty means api.github.com.
	SearchBaseURL string `yaml:"search_base_url"`

	// RawBaseURL serves manifests, the blacklist and the snippet list.
	RawBaseURL string `yaml:"raw_base_url"`

	BlacklistURL string `yaml:"blacklist_url"`
	SnippetsURL  string `yaml:"snippets_url"`

	Topics TopicsConfig `yaml:"topics"`

	// PageSize is capped at 100, the search API maximum.
	PageSize int `yaml:"page_size"`

	// LoadQuantity is how many entries one load step tries to add.
	LoadQuantity int `yaml:"load_quantity"`

	// Concurrency bounds parallel manifest fetches per page.
	Concurrency int `yaml:"concurrency"`

	Timeout time.Duration `yaml:"timeout"`

	LogPath string `yaml:"log_path"`

	// Blacklist holds extra repository URLs hidden in addition to the remote list.
	Blacklist []string `yaml:"blacklist"`

	Token string `yaml:"-"`
}

type TopicsConfig struct {
	Extensions string `yaml:"extensions"`
	Themes     string `yaml:"themes"`
}

func Default() *Config {
	return &Config{
		RawBaseURL:   "https://raw.githubusercontent.com",
		BlacklistURL: "https://raw.githubusercontent.com/CharlieS1103/spicetify-marketplace/main/blacklist.json",
		SnippetsURL:  "https://raw.githubusercontent.com/CharlieS1103/spicetify-marketplace/main/snippets.json",
		Topics: TopicsConfig{
			Extensions: "spicetify-extensions",
			Themes:     "spicetify-themes",
		},
		PageSize:     domain.PageSize,
		LoadQuantity: 100,
		Concurrency:  8,
		Timeout:      30 * time.Second,
		LogPath:      filepath.Join("${HOME}", DirName, "marketplace.log"),
	}
}

// DefaultPath is ~/.spicetify-marketplace/marketplace.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, DirName, FileName)
}

// Load reads path, or MARKETPLACE_CONFIG, or the default location. Only an
// explicitly named file has to exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath()
		}
	}

	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.Token = os.Getenv(EnvToken)
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) expandVariables() {
	home, _ := os.UserHomeDir()
	expand := func(s string) string {
		if strings.HasPrefix(s, "~/") {
			s = filepath.Join(home, s[2:])
		}
		return os.Expand(s, func(name string) string {
			if name == "HOME" {
				return home
			}
			return os.Getenv(name)
		})
	}
	c.LogPath = expand(c.LogPath)
}

func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return errors.New("page_size must be positive")
	}
	if c.PageSize > domain.PageSize {
		c.PageSize = domain.PageSize
	}
	if c.LoadQuantity <= 0 {
		return errors.New("load_quantity must be positive")
	}
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.RawBaseURL == "" {
		return errors.New("raw_base_url is required")
	}
	if c.Topics.Extensions == "" || c.Topics.Themes == "" {
		return errors.New("both topics are required")
	}
	return nil
}
