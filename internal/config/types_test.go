// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestRuntimeModeIsValid(t *testing.T) {
	tests := []struct {
		mode  RuntimeMode
		valid bool
	}{
		{RuntimeNative, true},
		{RuntimeVirtual, true},
		{"container", false},
		{"", false},
	}

	for _, tt := range tests {
		valid, errs := tt.mode.IsValid()
		if valid != tt.valid {
			t.Errorf("RuntimeMode(%q).IsValid() = %v, want %v", tt.mode, valid, tt.valid)
		}
		if !tt.valid && !errors.Is(errs[0], ErrInvalidConfigRuntimeMode) {
			t.Errorf("error for %q should wrap ErrInvalidConfigRuntimeMode", tt.mode)
		}
	}
}

func TestColorSchemeIsValid(t *testing.T) {
	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if valid, _ := cs.IsValid(); !valid {
			t.Errorf("ColorScheme(%q) should be valid", cs)
		}
	}
	if valid, errs := ColorScheme("neon").IsValid(); valid {
		t.Error("ColorScheme('neon') should be invalid")
	} else if !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Error("error should wrap ErrInvalidColorScheme")
	}
}

func TestVenvNameIsValid(t *testing.T) {
	if valid, _ := VenvName(".venv").IsValid(); !valid {
		t.Error("'.venv' should be valid")
	}
	for _, name := range []VenvName{"", "   "} {
		valid, errs := name.IsValid()
		if valid {
			t.Errorf("VenvName(%q) should be invalid", name)
		}
		if !errors.Is(errs[0], ErrInvalidVenvName) {
			t.Errorf("error for %q should wrap ErrInvalidVenvName", name)
		}
	}
}

func TestPythonPathIsValid(t *testing.T) {
	if valid, _ := PythonPath("").IsValid(); !valid {
		t.Error("zero value should be valid (auto-detect)")
	}
	if valid, _ := PythonPath("/usr/bin/python3").IsValid(); !valid {
		t.Error("real path should be valid")
	}
	if valid, errs := PythonPath("  ").IsValid(); valid {
		t.Error("whitespace-only path should be invalid")
	} else if !errors.Is(errs[0], ErrInvalidPythonPath) {
		t.Error("error should wrap ErrInvalidPythonPath")
	}
}

func TestConfigIsValidCollectsErrors(t *testing.T) {
	cfg := Config{
		DefaultRuntime: "bogus",
		VenvName:       "",
		Watch:          WatchConfig{DebounceMs: -1},
		UI:             UIConfig{ColorScheme: "neon"},
	}

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("config should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}

	var invErr *InvalidConfigError
	if !errors.As(errs[0], &invErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if len(invErr.FieldErrors) != 4 {
		t.Errorf("FieldErrors = %d, want 4", len(invErr.FieldErrors))
	}
}
