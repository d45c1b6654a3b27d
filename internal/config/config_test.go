package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	for _, k := range []string{
		"CODEMENTOR_LATENCY", "CODEMENTOR_SUBMIT_TIMEOUT", "CODEMENTOR_START",
		"CODEMENTOR_LANG", "CODEMENTOR_LOG_LEVEL", "CODEMENTOR_REJECT", "INSTANCE_NAME",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "codementor"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "codementor", "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Latency != time.Second {
		t.Errorf("latency = %v, want 1s", cfg.Latency)
	}
	if cfg.SubmitTimeout != 10*time.Second {
		t.Errorf("submit timeout = %v", cfg.SubmitTimeout)
	}
	if cfg.Start != "/" {
		t.Errorf("start = %q", cfg.Start)
	}
	if cfg.Reject {
		t.Error("reject should default to false")
	}
	if !strings.HasPrefix(cfg.LogFile(), dir) {
		t.Errorf("log file %q not under %q", cfg.LogFile(), dir)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
latency = "250ms"
submit_timeout = "3s"
start = "/login"
reject = true
log_level = "debug"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Latency != 250*time.Millisecond {
		t.Errorf("latency = %v", cfg.Latency)
	}
	if cfg.SubmitTimeout != 3*time.Second {
		t.Errorf("submit timeout = %v", cfg.SubmitTimeout)
	}
	if cfg.Start != "/login" {
		t.Errorf("start = %q", cfg.Start)
	}
	if !cfg.Reject {
		t.Error("reject should be true")
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `start = "/login"`)
	t.Setenv("CODEMENTOR_START", "/register")
	t.Setenv("CODEMENTOR_LATENCY", "5ms")
	t.Setenv("CODEMENTOR_REJECT", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Start != "/register" {
		t.Errorf("start = %q, want env value", cfg.Start)
	}
	if cfg.Latency != 5*time.Millisecond {
		t.Errorf("latency = %v", cfg.Latency)
	}
	if !cfg.Reject {
		t.Error("reject should come from env")
	}
}

func TestBadEnvKeepsPrevious(t *testing.T) {
	isolate(t)
	t.Setenv("CODEMENTOR_LATENCY", "soon")
	t.Setenv("CODEMENTOR_REJECT", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Latency != time.Second {
		t.Errorf("latency = %v, want default", cfg.Latency)
	}
	if cfg.Reject {
		t.Error("unparsable bool should keep default")
	}
}

func TestBadFileDuration(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `latency = "fast"`)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := (Config{LogLevel: tt.in}).Level(); got != tt.want {
				t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
