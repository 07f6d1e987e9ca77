// SPDX-License-Identifier: MPL-2.0

package workfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalWorkfile = `
version: "1"
venv: ".venv"
targets: [
	{name: "lint", script: "flake8 src", needs_venv: true},
	{name: "test", script: "pytest", deps: ["lint"]},
]
`

func TestParseBytes_Minimal(t *testing.T) {
	wf, err := ParseBytes([]byte(minimalWorkfile), "workfile.cue")
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	if wf.Version != "1" {
		t.Errorf("Version = %q, want %q", wf.Version, "1")
	}
	if wf.Venv != ".venv" {
		t.Errorf("Venv = %q, want %q", wf.Venv, ".venv")
	}
	if len(wf.Targets) != 2 {
		t.Fatalf("len(Targets) = %d, want 2", len(wf.Targets))
	}

	lint := wf.GetTarget("lint")
	if lint == nil {
		t.Fatal("GetTarget(lint) = nil")
	}
	if !lint.NeedsVenv {
		t.Error("lint.NeedsVenv = false, want true")
	}

	test := wf.GetTarget("test")
	if test == nil {
		t.Fatal("GetTarget(test) = nil")
	}
	if len(test.Deps) != 1 || test.Deps[0] != "lint" {
		t.Errorf("test.Deps = %v, want [lint]", test.Deps)
	}
}

func TestParseBytes_SchemaRejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no targets", `version: "1"`},
		{"empty targets", `targets: []`},
		{"empty name", `targets: [{name: "", script: "x"}]`},
		{"uppercase name", `targets: [{name: "Lint", script: "x"}]`},
		{"bad runtime", `targets: [{name: "a", script: "x", runtime: "container"}]`},
		{"bad platform", `targets: [{name: "a", script: "x", platforms: [{name: "beos"}]}]`},
		{"exit code range", `targets: [{name: "a", script: "x", tools: [{name: "t", expected_code: 300}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBytes([]byte(tt.input), "workfile.cue"); err == nil {
				t.Errorf("expected parse error for %q", tt.input)
			}
		})
	}
}

func TestValidate_SemanticRejections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			"duplicate names",
			`targets: [{name: "a", script: "x"}, {name: "a", script: "y"}]`,
			"duplicate target name",
		},
		{
			"unknown dep",
			`targets: [{name: "a", script: "x", deps: ["ghost"]}]`,
			"unknown target",
		},
		{
			"self dep",
			`targets: [{name: "a", script: "x", deps: ["a"]}]`,
			"depends on itself",
		},
		{
			"no script no deps",
			`targets: [{name: "a"}]`,
			"must have a script or at least one dep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input), "workfile.cue")
			if err == nil {
				t.Fatalf("expected validation error for %q", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseBytes_AggregateTargetWithoutScript(t *testing.T) {
	input := `
targets: [
	{name: "lint", script: "flake8"},
	{name: "test", script: "pytest"},
	{name: "quality", deps: ["lint", "test"]},
]
`
	wf, err := ParseBytes([]byte(input), "workfile.cue")
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	quality := wf.GetTarget("quality")
	if quality == nil {
		t.Fatal("GetTarget(quality) = nil")
	}
	if !quality.IsAggregate() {
		t.Error("quality.IsAggregate() = false, want true")
	}
}

func TestTarget_MatchesPlatform(t *testing.T) {
	unconstrained := &Target{Name: "a"}
	if !unconstrained.MatchesPlatform(PlatformWindows) {
		t.Error("unconstrained target should match all platforms")
	}

	linuxOnly := &Target{Name: "b", Platforms: []PlatformConfig{{Name: PlatformLinux}}}
	if !linuxOnly.MatchesPlatform(PlatformLinux) {
		t.Error("linux target should match linux")
	}
	if linuxOnly.MatchesPlatform(PlatformWindows) {
		t.Error("linux target should not match windows")
	}
}

func TestTarget_ResolveScript_Inline(t *testing.T) {
	target := &Target{Name: "lint", Script: "flake8 src"}
	script, err := target.ResolveScript("/tmp/workfile.cue")
	if err != nil {
		t.Fatalf("ResolveScript failed: %v", err)
	}
	if script != "flake8 src" {
		t.Errorf("script = %q, want inline content", script)
	}
}

func TestTarget_ResolveScript_File(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "check.sh")
	if err := os.WriteFile(scriptPath, []byte("echo checked\n"), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	target := &Target{Name: "check", Script: "check.sh"}
	script, err := target.ResolveScript(filepath.Join(dir, "workfile.cue"))
	if err != nil {
		t.Fatalf("ResolveScript failed: %v", err)
	}
	if script != "echo checked\n" {
		t.Errorf("script = %q, want file content", script)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}
	wfPath := filepath.Join(root, DefaultFileName)
	if err := os.WriteFile(wfPath, []byte(minimalWorkfile), 0o644); err != nil {
		t.Fatalf("failed to write workfile: %v", err)
	}

	found, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if found != wfPath {
		t.Errorf("Discover = %q, want %q", found, wfPath)
	}
}

func TestDiscover_NotFound(t *testing.T) {
	if _, err := Discover(t.TempDir()); err == nil {
		t.Error("expected error when no workfile exists")
	}
}
