// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
)

var (
	// ErrEmptyName is returned when an operation is attempted with an
	// empty virtual environment name.
	ErrEmptyName = errors.New("virtual environment name is empty")

	// ErrActive is returned when removal of a currently activated
	// environment is refused.
	ErrActive = errors.New("virtual environment is active")
)

// EnvVenvName is the environment variable that overrides the venv name.
const EnvVenvName = "VENV_NAME"

// EnvVirtualEnv is the variable set by venv activation scripts; it points
// at the root of the active environment.
const EnvVirtualEnv = "VIRTUAL_ENV"

// Env is a virtual environment rooted inside a project directory.
// The zero value is not usable; construct with New.
type Env struct {
	// name is the environment directory name (e.g., ".venv").
	name string
	// projectDir is the directory the environment lives in.
	projectDir string
	// windows selects Windows path conventions; defaults to the host OS.
	windows bool
}

// New creates an Env for the given name inside projectDir.
// Returns ErrEmptyName when name is blank — every downstream operation
// would otherwise act on the project directory itself.
func New(name, projectDir string) (*Env, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory %s: %w", projectDir, err)
	}
	return &Env{
		name:       name,
		projectDir: abs,
		windows:    goruntime.GOOS == "windows",
	}, nil
}

// newForPlatform is the test seam for exercising both path layouts
// regardless of the host OS.
func newForPlatform(name, projectDir string, windows bool) (*Env, error) {
	e, err := New(name, projectDir)
	if err != nil {
		return nil, err
	}
	e.windows = windows
	return e, nil
}

// Name returns the environment directory name.
func (e *Env) Name() string { return e.name }

// ProjectDir returns the directory the environment lives in.
func (e *Env) ProjectDir() string { return e.projectDir }

// Dir returns the environment's root directory.
func (e *Env) Dir() string {
	return filepath.Join(e.projectDir, e.name)
}

// Separator returns the path separator for the target platform:
// backslash on Windows, forward slash elsewhere.
func (e *Env) Separator() string {
	if e.windows {
		return `\`
	}
	return "/"
}

// BinDir returns the directory holding the environment's executables:
// "Scripts" on Windows, "bin" elsewhere.
func (e *Env) BinDir() string {
	if e.windows {
		return filepath.Join(e.Dir(), "Scripts")
	}
	return filepath.Join(e.Dir(), "bin")
}

// Python returns the path to the environment's interpreter:
// Scripts\python.exe on Windows, bin/python elsewhere.
func (e *Env) Python() string {
	if e.windows {
		return filepath.Join(e.BinDir(), "python.exe")
	}
	return filepath.Join(e.BinDir(), "python")
}

// Exists reports whether the environment directory is present.
func (e *Env) Exists() bool {
	info, err := os.Stat(e.Dir())
	return err == nil && info.IsDir()
}

// IsActive reports whether this environment is the currently activated
// one, by comparing VIRTUAL_ENV against the environment root.
func (e *Env) IsActive() bool {
	active := os.Getenv(EnvVirtualEnv)
	if active == "" {
		return false
	}
	return pathsEqual(active, e.Dir())
}

// Create creates the environment by running `python -m venv` with the
// base interpreter. Creating an environment that already exists is a
// no-op. The base interpreter is located via basePython (e.g., "python3")
// or, when empty, the first of python3/python found on PATH.
func (e *Env) Create(ctx context.Context, basePython string) error {
	if e.Exists() {
		return nil
	}

	python, err := resolveBasePython(basePython)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, python, "-m", "venv", e.Dir())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to create virtual environment at %s: %w", e.Dir(), err)
	}
	return nil
}

// Remove deletes the environment directory. It refuses with ErrActive
// when the environment is currently activated: deleting the interpreter
// out from under a live shell session leaves it broken. Removing an
// environment that does not exist is a no-op.
func (e *Env) Remove() error {
	if e.IsActive() {
		return fmt.Errorf("refusing to remove %s: %w (deactivate first)", e.Dir(), ErrActive)
	}
	if !e.Exists() {
		return nil
	}
	if err := os.RemoveAll(e.Dir()); err != nil {
		return fmt.Errorf("failed to remove virtual environment at %s: %w", e.Dir(), err)
	}
	return nil
}

// Environ returns the variables a venv-aware target sees: the values the
// original Makefile derived by hand from VENV_NAME and the host OS.
func (e *Env) Environ() map[string]string {
	return map[string]string{
		EnvVenvName:   e.name,
		EnvVirtualEnv: e.Dir(),
		"PYTHON":      e.Python(),
		"SEP":         e.Separator(),
		"PROJECT_DIR": e.projectDir,
	}
}

// PathPrepend returns the PATH value with the environment's bin directory
// prepended, approximating venv activation for child processes.
func (e *Env) PathPrepend(currentPath string) string {
	if currentPath == "" {
		return e.BinDir()
	}
	return e.BinDir() + string(os.PathListSeparator) + currentPath
}

// resolveBasePython locates the interpreter used to create environments.
func resolveBasePython(basePython string) (string, error) {
	if basePython != "" {
		path, err := exec.LookPath(basePython)
		if err != nil {
			return "", fmt.Errorf("base interpreter '%s' not found in PATH: %w", basePython, err)
		}
		return path, nil
	}
	for _, candidate := range []string{"python3", "python"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no python interpreter found in PATH")
}

// pathsEqual compares filesystem paths after cleaning, case-insensitively
// on Windows.
func pathsEqual(a, b string) bool {
	a = filepath.Clean(a)
	b = filepath.Clean(b)
	if goruntime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
