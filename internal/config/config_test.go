package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtroshin/newsforge/internal/compose"
)

func writeTestYAML(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test yaml: %v", err)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeTestYAML(t, dir, `
feeds:
  - "https://example.com/feed.xml"
  - "https://example.org/rss"
compose:
  limit: 500
  counting: weighted
  selection: cycle
posts:
  count: 3
  demo: true
output:
  path: out/posts.json
archive:
  enabled: true
  path: custom/archive.db
  retain_days: 14
  skip_seen: true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.Feeds) != 2 {
		t.Errorf("feeds = %v", cfg.Feeds)
	}
	if cfg.Compose.Limit != 500 {
		t.Errorf("limit = %d, want 500", cfg.Compose.Limit)
	}
	if cfg.Compose.Counting != compose.CountWeighted {
		t.Errorf("counting = %q", cfg.Compose.Counting)
	}
	if cfg.Compose.Selection != compose.SelectCycle {
		t.Errorf("selection = %q", cfg.Compose.Selection)
	}
	if cfg.Posts.Count != 3 || !cfg.Posts.Demo {
		t.Errorf("posts = %+v", cfg.Posts)
	}
	if cfg.Output.Path != "out/posts.json" {
		t.Errorf("output path = %q", cfg.Output.Path)
	}
	if !cfg.Archive.SkipSeen || cfg.Archive.RetainDays != 14 {
		t.Errorf("archive = %+v", cfg.Archive)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.Feeds) == 0 {
		t.Error("default feeds should not be empty")
	}
	if cfg.Compose.Limit != compose.DefaultLimit {
		t.Errorf("limit = %d, want %d", cfg.Compose.Limit, compose.DefaultLimit)
	}
	if cfg.Compose.Counting != compose.CountGraphemes {
		t.Errorf("counting = %q", cfg.Compose.Counting)
	}
	if cfg.Posts.Count != DefaultPostCount {
		t.Errorf("count = %d, want %d", cfg.Posts.Count, DefaultPostCount)
	}
	if cfg.Posts.Demo {
		t.Error("demo should default to false")
	}
	if cfg.Output.Path != DefaultOutputPath {
		t.Errorf("output path = %q", cfg.Output.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvNumPosts, "12")
	t.Setenv(EnvDemoMode, "TRUE")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Posts.Count != 12 {
		t.Errorf("count = %d, want 12 from NUM_POSTS", cfg.Posts.Count)
	}
	if !cfg.Posts.Demo {
		t.Error("demo = false, want true from DEMO_MODE")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Run("num posts not a number", func(t *testing.T) {
		t.Setenv(EnvNumPosts, "many")
		if _, err := Load(t.TempDir()); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("num posts not positive", func(t *testing.T) {
		t.Setenv(EnvNumPosts, "0")
		if _, err := Load(t.TempDir()); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("demo mode garbage", func(t *testing.T) {
		t.Setenv(EnvDemoMode, "maybe")
		if _, err := Load(t.TempDir()); err == nil {
			t.Error("expected error")
		}
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "negative count",
			yaml: "posts:\n  count: -2\n",
			want: "posts.count",
		},
		{
			name: "negative limit",
			yaml: "compose:\n  limit: -1\n",
			want: "compose.limit",
		},
		{
			name: "unknown counting",
			yaml: "compose:\n  counting: bytes\n",
			want: "compose.counting",
		},
		{
			name: "unknown selection",
			yaml: "compose:\n  selection: sorted\n",
			want: "compose.selection",
		},
		{
			name: "negative retain days",
			yaml: "archive:\n  retain_days: -5\n",
			want: "archive.retain_days",
		},
	}

	for _, tt := range tests {
		dir := t.TempDir()
		writeTestYAML(t, dir, tt.yaml)
		_, err := Load(dir)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want mention of %s", tt.name, err, tt.want)
		}
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeTestYAML(t, dir, "feeds: [unclosed\n")
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	if _, err := Load("  "); err == nil {
		t.Error("expected error for empty config dir")
	}
}
