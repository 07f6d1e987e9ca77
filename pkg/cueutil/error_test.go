// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError_NilError(t *testing.T) {
	if err := FormatError(nil, "workfile.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}
}

func TestFormatError_NonCUEError(t *testing.T) {
	base := errors.New("boom")
	err := FormatError(base, "workfile.cue")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "workfile.cue") {
		t.Errorf("error %q should contain the file path", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("non-CUE errors should remain unwrappable")
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want string
	}{
		{"empty", nil, ""},
		{"simple", []string{"targets"}, "targets"},
		{"nested", []string{"targets", "0", "script"}, "targets[0].script"},
		{"deep index", []string{"targets", "2", "platforms", "1", "name"}, "targets[2].platforms[1].name"},
		{"no index", []string{"project", "path"}, "project.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	data := make([]byte, 100)

	if err := CheckFileSize(data, 100, "f.cue"); err != nil {
		t.Errorf("size at limit should pass: %v", err)
	}
	if err := CheckFileSize(data, 99, "f.cue"); err == nil {
		t.Error("size above limit should fail")
	}
}
