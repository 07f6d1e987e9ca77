// SPDX-License-Identifier: MPL-2.0

package workfile

import (
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"
)

// RuntimeMode defines how target scripts are executed.
type RuntimeMode string

const (
	// RuntimeNative executes scripts using the system's default shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual executes scripts using the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"
)

// PlatformType represents a target operating system.
type PlatformType string

const (
	// PlatformLinux represents Linux.
	PlatformLinux PlatformType = "linux"
	// PlatformMac represents macOS.
	PlatformMac PlatformType = "macos"
	// PlatformWindows represents Windows.
	PlatformWindows PlatformType = "windows"
)

// CurrentPlatform returns the platform of the running host.
func CurrentPlatform() PlatformType {
	switch goruntime.GOOS {
	case "darwin":
		return PlatformMac
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// PlatformConfig constrains a target to an operating system and optionally
// contributes platform-specific environment variables.
type PlatformConfig struct {
	// Name specifies the platform (required).
	Name PlatformType `json:"name"`
	// Env contains environment variables applied only on this platform.
	Env map[string]string `json:"env,omitempty"`
}

// Tool declares an external binary a target needs before it can run.
type Tool struct {
	// Name is the binary name that must be resolvable in PATH.
	Name string `json:"name"`
	// CheckScript is a custom script executed to validate the tool.
	// When set, it replaces the plain PATH lookup.
	CheckScript string `json:"check_script,omitempty"`
	// ExpectedCode is the exit code CheckScript must return (default 0).
	ExpectedCode *int `json:"expected_code,omitempty"`
}

// Target represents a single named unit of build automation: an optional
// shell action plus prerequisite targets.
type Target struct {
	// Name is the target identifier (e.g., "lint", "venv-init").
	Name string `json:"name"`
	// Description provides help text shown by the list command.
	Description string `json:"description,omitempty"`
	// Script contains the shell action OR a path to a script file.
	// Aggregate targets (deps only) may leave it empty.
	Script string `json:"script,omitempty"`
	// Deps lists prerequisite targets, run in declared order before this one.
	Deps []string `json:"deps,omitempty"`
	// Env contains environment variables set for this target.
	Env map[string]string `json:"env,omitempty"`
	// WorkDir overrides the working directory, relative to the workfile.
	WorkDir string `json:"workdir,omitempty"`
	// Runtime selects the execution engine; empty means the default.
	Runtime RuntimeMode `json:"runtime,omitempty"`
	// Platforms constrains the target to specific operating systems.
	// Empty means all platforms.
	Platforms []PlatformConfig `json:"platforms,omitempty"`
	// Tools lists binaries that must be available before the target runs.
	Tools []Tool `json:"tools,omitempty"`
	// NeedsVenv injects the virtual environment variables and prepends the
	// venv bin directory to PATH for this target.
	NeedsVenv bool `json:"needs_venv,omitempty"`

	// resolvedScript caches the resolved script content.
	resolvedScript string
	// scriptResolved indicates if the script has been resolved.
	scriptResolved bool
}

// MatchesPlatform returns true if the target can run on the given platform.
func (t *Target) MatchesPlatform(platform PlatformType) bool {
	if len(t.Platforms) == 0 {
		return true
	}
	for _, p := range t.Platforms {
		if p.Name == platform {
			return true
		}
	}
	return false
}

// PlatformEnv returns the environment variables contributed by the matching
// platform entry, or nil when none match.
func (t *Target) PlatformEnv(platform PlatformType) map[string]string {
	for _, p := range t.Platforms {
		if p.Name == platform {
			return p.Env
		}
	}
	return nil
}

// PlatformsString returns a comma-separated list of supported platforms,
// or "" when the target runs everywhere.
func (t *Target) PlatformsString() string {
	if len(t.Platforms) == 0 {
		return ""
	}
	names := make([]string, len(t.Platforms))
	for i, p := range t.Platforms {
		names[i] = string(p.Name)
	}
	return strings.Join(names, ", ")
}

// IsAggregate reports whether the target only chains prerequisites.
func (t *Target) IsAggregate() bool {
	return strings.TrimSpace(t.Script) == "" && len(t.Deps) > 0
}

// scriptFileExtensions contains extensions that indicate a script file.
var scriptFileExtensions = []string{".sh", ".bash", ".ps1", ".bat", ".cmd", ".py", ".zsh", ".fish"}

// IsScriptFile returns true if the Script field appears to be a file path.
func (t *Target) IsScriptFile() bool {
	script := strings.TrimSpace(t.Script)
	if script == "" {
		return false
	}

	if strings.HasPrefix(script, "./") || strings.HasPrefix(script, "../") || strings.HasPrefix(script, "/") {
		return true
	}

	// Windows drive letter paths
	if len(script) >= 2 && script[1] == ':' {
		return true
	}

	lower := strings.ToLower(script)
	for _, ext := range scriptFileExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}

// ScriptFilePath returns the absolute path to the script file, if Script is
// a file reference; "" for inline content. Relative paths resolve against
// the workfile directory.
func (t *Target) ScriptFilePath(workfilePath string) string {
	if !t.IsScriptFile() {
		return ""
	}

	script := strings.TrimSpace(t.Script)
	if filepath.IsAbs(script) {
		return script
	}
	return filepath.Join(filepath.Dir(workfilePath), script)
}

// ResolveScript returns the actual script content to execute. File
// references are read from disk; inline content is returned directly.
// The result is cached across calls.
func (t *Target) ResolveScript(workfilePath string) (string, error) {
	if t.scriptResolved {
		return t.resolvedScript, nil
	}

	if t.Script == "" {
		return "", fmt.Errorf("target '%s' has no script content", t.Name)
	}

	if t.IsScriptFile() {
		scriptPath := t.ScriptFilePath(workfilePath)
		content, err := os.ReadFile(scriptPath)
		if err != nil {
			return "", fmt.Errorf("failed to read script file '%s': %w", scriptPath, err)
		}
		t.resolvedScript = string(content)
	} else {
		t.resolvedScript = t.Script
	}

	t.scriptResolved = true
	return t.resolvedScript, nil
}
