package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BashPath != "" {
		t.Errorf("BashPath = %q, want empty", cfg.BashPath)
	}
	if cfg.CaptureMode != "declare" {
		t.Errorf("CaptureMode = %q, want %q", cfg.CaptureMode, "declare")
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false")
	}
}

func TestLoad_FromConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(configHome, "envgate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}

	content := `bash_path = "/opt/bash"
capture_mode = "env"
verbose = true
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BashPath != "/opt/bash" {
		t.Errorf("BashPath = %q, want %q", cfg.BashPath, "/opt/bash")
	}
	if cfg.CaptureMode != "env" {
		t.Errorf("CaptureMode = %q, want %q", cfg.CaptureMode, "env")
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(configHome, "envgate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`capture_mode = "declare"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ENVGATE_CAPTURE_MODE", "env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.CaptureMode != "env" {
		t.Errorf("CaptureMode = %q, want %q (env var wins)", cfg.CaptureMode, "env")
	}
}

func TestLoad_MissingConfigFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "nonexistent"))
	t.Setenv("HOME", t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("Load with no config file: %v", err)
	}
}
