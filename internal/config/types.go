// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RuntimeNative runs targets in the host system shell.
	// Defined locally to avoid coupling config to pkg/workfile.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs targets in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultVenvName is the virtual environment directory name used when
	// neither the config file nor the workfile sets one.
	DefaultVenvName = ".venv"

	// DefaultWatchDebounceMs is the watch debounce window in milliseconds.
	DefaultWatchDebounceMs = 500
)

var (
	// ErrInvalidConfigRuntimeMode is returned when a config RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidVenvName is returned when a VenvName value is empty or whitespace-only.
	ErrInvalidVenvName = errors.New("invalid venv name")
	// ErrInvalidPythonPath is returned when a PythonPath value is whitespace-only.
	ErrInvalidPythonPath = errors.New("invalid python path")
	// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
	ErrInvalidWatchConfig = errors.New("invalid watch config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RuntimeMode specifies the execution runtime for targets.
	// Defined locally to avoid coupling config to pkg/workfile;
	// the orchestrator casts to workfile.RuntimeMode at the boundary.
	RuntimeMode string

	// InvalidConfigRuntimeModeError is returned when a config RuntimeMode value is
	// not recognized. It wraps ErrInvalidConfigRuntimeMode for errors.Is() compatibility.
	InvalidConfigRuntimeModeError struct {
		Value RuntimeMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// VenvName is the directory name of a Python virtual environment.
	// A valid name must be non-empty and not whitespace-only.
	VenvName string

	// InvalidVenvNameError is returned when a VenvName is empty or
	// whitespace-only. It wraps ErrInvalidVenvName for errors.Is().
	InvalidVenvNameError struct {
		Value VenvName
	}

	// PythonPath is a filesystem path to a Python interpreter.
	// The zero value ("") is valid and means "auto-detect".
	// Non-zero values must not be whitespace-only.
	PythonPath string

	// InvalidPythonPathError is returned when a PythonPath value is
	// non-empty but whitespace-only.
	InvalidPythonPathError struct {
		Value PythonPath
	}

	// InvalidWatchConfigError is returned when a WatchConfig has invalid fields.
	// It wraps ErrInvalidWatchConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultRuntime sets the global default runtime mode.
		DefaultRuntime RuntimeMode `json:"default_runtime" mapstructure:"default_runtime"`
		// VenvName sets the virtual environment directory name used when the
		// workfile does not configure one.
		VenvName VenvName `json:"venv_name" mapstructure:"venv_name"`
		// BasePython overrides the interpreter used to create environments.
		BasePython PythonPath `json:"base_python" mapstructure:"base_python"`
		// Watch configures watch-mode behavior.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// WatchConfig configures watch-mode behavior.
	WatchConfig struct {
		// DebounceMs is the quiet period in milliseconds before a re-run.
		DebounceMs int `json:"debounce_ms" mapstructure:"debounce_ms"`
		// ClearScreen clears the terminal before each re-run.
		ClearScreen bool `json:"clear_screen" mapstructure:"clear_screen"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the config RuntimeMode.
func (m RuntimeMode) String() string { return string(m) }

// IsValid returns whether the config RuntimeMode is one of the defined runtime modes,
// and a list of validation errors if it is not.
func (m RuntimeMode) IsValid() (bool, []error) {
	switch m {
	case RuntimeNative, RuntimeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidConfigRuntimeModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidConfigRuntimeModeError.
func (e *InvalidConfigRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConfigRuntimeModeError) Unwrap() error {
	return ErrInvalidConfigRuntimeMode
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the VenvName.
func (n VenvName) String() string { return string(n) }

// IsValid returns whether the VenvName is valid.
// A valid name must be non-empty and not whitespace-only.
func (n VenvName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidVenvNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVenvNameError.
func (e *InvalidVenvNameError) Error() string {
	return fmt.Sprintf("invalid venv name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidVenvName for errors.Is() compatibility.
func (e *InvalidVenvNameError) Unwrap() error { return ErrInvalidVenvName }

// String returns the string representation of the PythonPath.
func (p PythonPath) String() string { return string(p) }

// IsValid returns whether the PythonPath is valid.
// The zero value ("") is valid (means "auto-detect").
// Non-zero values must not be whitespace-only.
func (p PythonPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidPythonPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPythonPathError.
func (e *InvalidPythonPathError) Error() string {
	return fmt.Sprintf("invalid python path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidPythonPath for errors.Is() compatibility.
func (e *InvalidPythonPathError) Unwrap() error { return ErrInvalidPythonPath }

// IsValid returns whether the WatchConfig has valid fields.
// DebounceMs must be non-negative; ClearScreen needs no validation.
func (c WatchConfig) IsValid() (bool, []error) {
	var errs []error
	if c.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("watch debounce_ms must be non-negative, got %d", c.DebounceMs))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidWatchConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWatchConfigError.
func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to DefaultRuntime.IsValid(), VenvName.IsValid(),
// BasePython.IsValid(), Watch.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.DefaultRuntime.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.VenvName.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.BasePython.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Watch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultRuntime: RuntimeNative,
		VenvName:       DefaultVenvName,
		BasePython:     "", // auto-detect
		Watch: WatchConfig{
			DebounceMs:  DefaultWatchDebounceMs,
			ClearScreen: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
