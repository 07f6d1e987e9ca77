// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultRuntime != RuntimeNative {
		t.Errorf("DefaultRuntime = %q, want %q", cfg.DefaultRuntime, RuntimeNative)
	}
	if cfg.VenvName != DefaultVenvName {
		t.Errorf("VenvName = %q, want %q", cfg.VenvName, DefaultVenvName)
	}
	if cfg.Watch.DebounceMs != DefaultWatchDebounceMs {
		t.Errorf("Watch.DebounceMs = %d, want %d", cfg.Watch.DebounceMs, DefaultWatchDebounceMs)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}

	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig should be valid, got: %v", errs)
	}
}

func TestLoadNoConfigFileUsesDefaults(t *testing.T) {
	cfg, path, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty (defaults)", path)
	}
	if cfg.DefaultRuntime != RuntimeNative {
		t.Errorf("DefaultRuntime = %q, want %q", cfg.DefaultRuntime, RuntimeNative)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	content := `
default_runtime: "virtual"
venv_name: "env"

ui: {
	verbose: true
}
`
	cfgPath := filepath.Join(dir, "config.cue")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, path, err := LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != cfgPath {
		t.Errorf("resolved path = %q, want %q", path, cfgPath)
	}
	if cfg.DefaultRuntime != RuntimeVirtual {
		t.Errorf("DefaultRuntime = %q, want virtual", cfg.DefaultRuntime)
	}
	if cfg.VenvName != "env" {
		t.Errorf("VenvName = %q, want 'env'", cfg.VenvName)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
	// Fields absent from the file keep their defaults
	if cfg.Watch.DebounceMs != DefaultWatchDebounceMs {
		t.Errorf("Watch.DebounceMs = %d, want default %d", cfg.Watch.DebounceMs, DefaultWatchDebounceMs)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(cfgPath, []byte(`venv_name: ".virtualenv"`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: cfgPath})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.VenvName != ".virtualenv" {
		t.Errorf("VenvName = %q, want '.virtualenv'", cfg.VenvName)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "load configuration") {
		t.Errorf("error should mention the operation: %v", err)
	}
}

func TestLoadInvalidSyntax(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(`default_runtime: {{{`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected error for invalid CUE syntax")
	}
}

func TestLoadSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(`default_runtime: "container"`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected error for schema violation")
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.DefaultRuntime = RuntimeVirtual
	cfg.VenvName = "venv"
	cfg.BasePython = "/usr/bin/python3.12"
	cfg.Watch.ClearScreen = true
	cfg.UI.Verbose = true

	generated := GenerateCUE(cfg)
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(generated), 0o644); err != nil {
		t.Fatalf("failed to write generated config: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("failed to load generated config: %v", err)
	}

	if loaded.DefaultRuntime != cfg.DefaultRuntime {
		t.Errorf("DefaultRuntime = %q, want %q", loaded.DefaultRuntime, cfg.DefaultRuntime)
	}
	if loaded.VenvName != cfg.VenvName {
		t.Errorf("VenvName = %q, want %q", loaded.VenvName, cfg.VenvName)
	}
	if loaded.BasePython != cfg.BasePython {
		t.Errorf("BasePython = %q, want %q", loaded.BasePython, cfg.BasePython)
	}
	if !loaded.Watch.ClearScreen {
		t.Error("Watch.ClearScreen should round-trip as true")
	}
	if !loaded.UI.Verbose {
		t.Error("UI.Verbose should round-trip as true")
	}
}

func TestConfigDirOverride(t *testing.T) {
	t.Cleanup(Reset)

	dir := t.TempDir()
	SetConfigDirOverride(dir)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir = %q, want override %q", got, dir)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigDirOverride(t.TempDir())

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig failed: %v", err)
	}

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Second call is a no-op
	if err := CreateDefaultConfig(); err != nil {
		t.Errorf("CreateDefaultConfig should be idempotent: %v", err)
	}
}
