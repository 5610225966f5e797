// Package config loads the newsforge configuration: config.yaml plus
// the NUM_POSTS and DEMO_MODE environment overrides, read once at
// process start and passed down explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dtroshin/newsforge/internal/compose"
)

const (
	DefaultConfigFile  = "config.yaml"
	DefaultOutputPath  = "posts.json"
	DefaultArchivePath = ".newsforge/newsforge.db"
	DefaultRetainDays  = 90
	DefaultPostCount   = 5
)

// Recognized environment overrides. Anything else in the environment is
// ignored.
const (
	EnvNumPosts = "NUM_POSTS"
	EnvDemoMode = "DEMO_MODE"
)

// defaultFeeds are queried when the config lists no feeds of its own.
var defaultFeeds = []string{
	"https://rss.sciencedaily.com/top.xml",
	"https://www.reddit.com/r/worldnews/.rss",
	"https://www.reddit.com/r/technology/.rss",
	"https://hnrss.org/frontpage",
	"https://www.engadget.com/rss.xml",
}

type Config struct {
	Feeds   []string      `yaml:"feeds"`
	Compose ComposeConfig `yaml:"compose"`
	Posts   PostsConfig   `yaml:"posts"`
	Output  OutputConfig  `yaml:"output"`
	Archive ArchiveConfig `yaml:"archive"`
}

type ComposeConfig struct {
	Limit     int    `yaml:"limit"`
	Counting  string `yaml:"counting"`  // graphemes or weighted
	Selection string `yaml:"selection"` // cycle or random
}

type PostsConfig struct {
	Count int  `yaml:"count"`
	Demo  bool `yaml:"demo"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type ArchiveConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	RetainDays int    `yaml:"retain_days"`
	SkipSeen   bool   `yaml:"skip_seen"`
}

// Load reads config.yaml from dir, applies defaults, resolves env
// overrides, and validates. A missing config file is fine: the tool
// runs on defaults plus environment alone.
func Load(dir string) (*Config, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("config dir is required")
	}

	var cfg Config
	path := filepath.Join(dir, DefaultConfigFile)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyDefaults(&cfg)
	if err := resolveEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = append([]string(nil), defaultFeeds...)
	}
	if cfg.Compose.Limit == 0 {
		cfg.Compose.Limit = compose.DefaultLimit
	}
	if cfg.Compose.Counting == "" {
		cfg.Compose.Counting = compose.CountGraphemes
	}
	if cfg.Compose.Selection == "" {
		cfg.Compose.Selection = compose.SelectRandom
	}
	if cfg.Posts.Count == 0 {
		cfg.Posts.Count = DefaultPostCount
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = DefaultOutputPath
	}
	if cfg.Archive.Path == "" {
		cfg.Archive.Path = DefaultArchivePath
	}
	if cfg.Archive.RetainDays == 0 {
		cfg.Archive.RetainDays = DefaultRetainDays
	}
}

func resolveEnv(cfg *Config) error {
	if v := os.Getenv(EnvNumPosts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: parse %q: %w", EnvNumPosts, v, err)
		}
		cfg.Posts.Count = n
	}
	if v := os.Getenv(EnvDemoMode); v != "" {
		demo, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return fmt.Errorf("%s: parse %q: %w", EnvDemoMode, v, err)
		}
		cfg.Posts.Demo = demo
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Posts.Count <= 0 {
		return fmt.Errorf("posts.count: must be positive, got %d", cfg.Posts.Count)
	}
	if cfg.Compose.Limit <= 0 {
		return fmt.Errorf("compose.limit: must be positive, got %d", cfg.Compose.Limit)
	}
	if _, ok := compose.NewCounter(cfg.Compose.Counting); !ok {
		return fmt.Errorf("compose.counting: unknown strategy %q (want %s or %s)",
			cfg.Compose.Counting, compose.CountGraphemes, compose.CountWeighted)
	}
	switch cfg.Compose.Selection {
	case compose.SelectCycle, compose.SelectRandom:
		// valid
	default:
		return fmt.Errorf("compose.selection: unknown mode %q (want %s or %s)",
			cfg.Compose.Selection, compose.SelectCycle, compose.SelectRandom)
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		return errors.New("output.path: must not be empty")
	}
	if cfg.Archive.RetainDays < 0 {
		return fmt.Errorf("archive.retain_days: must not be negative, got %d", cfg.Archive.RetainDays)
	}
	return nil
}
