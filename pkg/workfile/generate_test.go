// SPDX-License-Identifier: MPL-2.0

package workfile

import (
	"strings"
	"testing"
)

// The starter must round-trip: generated CUE parses back into an
// equivalent workfile that passes schema and semantic validation.
func TestNewPythonStarter_RoundTrip(t *testing.T) {
	starter := NewPythonStarter("storycard", ".venv")
	cue := GenerateCUE(starter)

	wf, err := ParseBytes([]byte(cue), "workfile.cue")
	if err != nil {
		t.Fatalf("generated starter does not parse: %v\n%s", err, cue)
	}

	if wf.Venv != ".venv" {
		t.Errorf("Venv = %q, want %q", wf.Venv, ".venv")
	}
	if len(wf.Targets) != len(starter.Targets) {
		t.Errorf("round-trip lost targets: %d != %d", len(wf.Targets), len(starter.Targets))
	}
}

func TestNewPythonStarter_TargetSurface(t *testing.T) {
	wf := NewPythonStarter("storycard", ".venv")

	// The canonical target set mirrors a Python package Makefile.
	want := []string{
		"venv-init", "install", "deps-update", "build", "publish", "clean",
		"format", "lint", "security", "test", "coverage", "quality", "pre-commit",
	}
	for _, name := range want {
		if wf.GetTarget(name) == nil {
			t.Errorf("starter is missing target %q", name)
		}
	}
}

func TestNewPythonStarter_AggregateChains(t *testing.T) {
	wf := NewPythonStarter("storycard", ".venv")

	quality := wf.GetTarget("quality")
	wantQuality := []string{"format", "lint", "security"}
	for i, dep := range wantQuality {
		if quality.Deps[i] != dep {
			t.Fatalf("quality.Deps = %v, want %v", quality.Deps, wantQuality)
		}
	}

	preCommit := wf.GetTarget("pre-commit")
	wantPre := []string{"quality", "test"}
	for i, dep := range wantPre {
		if preCommit.Deps[i] != dep {
			t.Fatalf("pre-commit.Deps = %v, want %v", preCommit.Deps, wantPre)
		}
	}
}

func TestNewPythonStarter_CoverageUsesProjectName(t *testing.T) {
	wf := NewPythonStarter("storycard", ".venv")
	coverage := wf.GetTarget("coverage")
	if !strings.Contains(coverage.Script, "--cov=storycard") {
		t.Errorf("coverage script %q should target the project package", coverage.Script)
	}
}

func TestGenerateCUE_MultilineScript(t *testing.T) {
	wf := &Workfile{
		Targets: []Target{
			{Name: "lint", Script: "flake8 src\npylint src"},
		},
	}

	cue := GenerateCUE(wf)
	if !strings.Contains(cue, `"""`) {
		t.Errorf("multi-line script should use CUE multi-line syntax:\n%s", cue)
	}

	parsed, err := ParseBytes([]byte(cue), "workfile.cue")
	if err != nil {
		t.Fatalf("generated CUE does not parse: %v\n%s", err, cue)
	}
	if got := parsed.Targets[0].Script; !strings.Contains(got, "pylint src") {
		t.Errorf("round-trip script = %q", got)
	}
}
