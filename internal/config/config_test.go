package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir_XDGSet(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	got := configDir()
	want := filepath.Join("/custom/config", "clrdoc")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConfigDir_HomeDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	got := configDir()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	want := filepath.Join(home, ".config", "clrdoc")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, kv := range os.Environ() {
		if k, _, _ := strings.Cut(kv, "="); strings.HasPrefix(k, "CLRDOC_") {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != slog.LevelWarn {
		t.Errorf("log level = %v, want WARN", cfg.Log.Level)
	}
	if cfg.Output.Path != "./clrdoc" || cfg.Output.Format != "json" || !cfg.Output.Compress {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Docs.Suffix != ".xml" {
		t.Errorf("docs suffix = %q", cfg.Docs.Suffix)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "clrdoc.yaml")
	content := "log:\n  level: debug\noutput:\n  path: /tmp/out\n  format: YAML\n  compress: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != slog.LevelDebug {
		t.Errorf("log level = %v, want DEBUG", cfg.Log.Level)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("format = %q, want normalised %q", cfg.Output.Format, "yaml")
	}
	if cfg.Output.Path != "/tmp/out" || cfg.Output.Compress {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CLRDOC_LOG_LEVEL", "error")
	t.Setenv("CLRDOC_OUTPUT_COMPRESS", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != slog.LevelError {
		t.Errorf("log level = %v, want ERROR", cfg.Log.Level)
	}
	if cfg.Output.Compress {
		t.Error("compress should be overridden to false")
	}
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Run("format", func(t *testing.T) {
		t.Setenv("CLRDOC_OUTPUT_FORMAT", "toml")
		if _, err := Load(""); err == nil {
			t.Error("expected validation error for unknown format")
		}
	})

	t.Run("level", func(t *testing.T) {
		t.Setenv("CLRDOC_LOG_LEVEL", "loud")
		if _, err := Load(""); err == nil {
			t.Error("expected error for unknown log level")
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for explicit missing config file")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Output: OutputConfig{Path: "out", Format: "json"},
		Docs:   DocsConfig{Suffix: "xml"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("suffix without leading dot should be rejected")
	}
	cfg.Docs.Suffix = ".xml"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
