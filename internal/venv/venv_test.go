// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_EmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t"} {
		if _, err := New(name, t.TempDir()); !errors.Is(err, ErrEmptyName) {
			t.Errorf("New(%q) error = %v, want ErrEmptyName", name, err)
		}
	}
}

func TestEnv_UnixPaths(t *testing.T) {
	e, err := newForPlatform(".venv", "/home/dev/storycard", false)
	if err != nil {
		t.Fatalf("newForPlatform failed: %v", err)
	}

	if sep := e.Separator(); sep != "/" {
		t.Errorf("Separator = %q, want /", sep)
	}
	if !strings.HasSuffix(e.BinDir(), filepath.Join(".venv", "bin")) {
		t.Errorf("BinDir = %q, want .../.venv/bin", e.BinDir())
	}
	if !strings.HasSuffix(e.Python(), filepath.Join("bin", "python")) {
		t.Errorf("Python = %q, want .../bin/python", e.Python())
	}
}

func TestEnv_WindowsPaths(t *testing.T) {
	e, err := newForPlatform(".venv", "/home/dev/storycard", true)
	if err != nil {
		t.Fatalf("newForPlatform failed: %v", err)
	}

	if sep := e.Separator(); sep != `\` {
		t.Errorf(`Separator = %q, want \`, sep)
	}
	if !strings.HasSuffix(e.BinDir(), filepath.Join(".venv", "Scripts")) {
		t.Errorf(`BinDir = %q, want ...\.venv\Scripts`, e.BinDir())
	}
	if !strings.HasSuffix(e.Python(), filepath.Join("Scripts", "python.exe")) {
		t.Errorf(`Python = %q, want ...\Scripts\python.exe`, e.Python())
	}
}

func TestEnv_Exists(t *testing.T) {
	dir := t.TempDir()
	e, err := New(".venv", dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if e.Exists() {
		t.Error("Exists = true before creation")
	}
	if err := os.Mkdir(e.Dir(), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if !e.Exists() {
		t.Error("Exists = false after creation")
	}
}

func TestEnv_IsActive(t *testing.T) {
	dir := t.TempDir()
	e, err := New(".venv", dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Setenv(EnvVirtualEnv, "")
	if e.IsActive() {
		t.Error("IsActive = true with no VIRTUAL_ENV set")
	}

	t.Setenv(EnvVirtualEnv, e.Dir())
	if !e.IsActive() {
		t.Error("IsActive = false with VIRTUAL_ENV pointing at the env")
	}

	t.Setenv(EnvVirtualEnv, filepath.Join(dir, "other"))
	if e.IsActive() {
		t.Error("IsActive = true with VIRTUAL_ENV pointing elsewhere")
	}
}

func TestEnv_Remove_RefusesWhileActive(t *testing.T) {
	dir := t.TempDir()
	e, err := New(".venv", dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := os.Mkdir(e.Dir(), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	t.Setenv(EnvVirtualEnv, e.Dir())

	err = e.Remove()
	if !errors.Is(err, ErrActive) {
		t.Fatalf("Remove while active = %v, want ErrActive", err)
	}
	if !e.Exists() {
		t.Error("Remove while active must not delete the environment")
	}
}

func TestEnv_Remove(t *testing.T) {
	dir := t.TempDir()
	e, err := New(".venv", dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := os.Mkdir(e.Dir(), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	t.Setenv(EnvVirtualEnv, "")

	if err := e.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if e.Exists() {
		t.Error("environment still exists after Remove")
	}

	// Removing a missing environment is a no-op.
	if err := e.Remove(); err != nil {
		t.Errorf("Remove of missing env = %v, want nil", err)
	}
}

func TestEnv_Environ(t *testing.T) {
	e, err := newForPlatform(".venv", t.TempDir(), false)
	if err != nil {
		t.Fatalf("newForPlatform failed: %v", err)
	}

	env := e.Environ()
	if env[EnvVenvName] != ".venv" {
		t.Errorf("VENV_NAME = %q, want .venv", env[EnvVenvName])
	}
	if env[EnvVirtualEnv] != e.Dir() {
		t.Errorf("VIRTUAL_ENV = %q, want %q", env[EnvVirtualEnv], e.Dir())
	}
	if env["PYTHON"] != e.Python() {
		t.Errorf("PYTHON = %q, want %q", env["PYTHON"], e.Python())
	}
	if env["SEP"] != "/" {
		t.Errorf("SEP = %q, want /", env["SEP"])
	}
	if env["PROJECT_DIR"] != e.ProjectDir() {
		t.Errorf("PROJECT_DIR = %q, want %q", env["PROJECT_DIR"], e.ProjectDir())
	}
}

func TestEnv_PathPrepend(t *testing.T) {
	e, err := New(".venv", t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := e.PathPrepend("/usr/bin")
	want := e.BinDir() + string(os.PathListSeparator) + "/usr/bin"
	if got != want {
		t.Errorf("PathPrepend = %q, want %q", got, want)
	}

	if got := e.PathPrepend(""); got != e.BinDir() {
		t.Errorf("PathPrepend(\"\") = %q, want bin dir only", got)
	}
}
