// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		WorkfileNotFoundId,
		WorkfileParseErrorId,
		TargetNotFoundId,
		RuntimeNotAvailableId,
		ScriptExecutionFailedId,
		ConfigLoadFailedId,
		DependencyCycleId,
		ShellNotFoundId,
		VenvNameEmptyId,
		VenvActiveId,
		PythonNotFoundId,
		PyprojectNotFoundId,
		ToolsNotSatisfiedId,
		PlatformNotSupportedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if WorkfileNotFoundId != 1 {
		t.Errorf("WorkfileNotFoundId = %d, want 1", WorkfileNotFoundId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{WorkfileNotFoundId, false, "No workfile found"},
		{WorkfileParseErrorId, false, "Failed to parse"},
		{TargetNotFoundId, false, "Target not found"},
		{RuntimeNotAvailableId, false, "Runtime not available"},
		{ScriptExecutionFailedId, false, "Script execution failed"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{DependencyCycleId, false, "Dependency cycle"},
		{ShellNotFoundId, false, "Shell not found"},
		{VenvNameEmptyId, false, "name is empty"},
		{VenvActiveId, false, "active"},
		{PythonNotFoundId, false, "Python interpreter not found"},
		{PyprojectNotFoundId, false, "No pyproject.toml found"},
		{ToolsNotSatisfiedId, false, "Tool requirements not satisfied"},
		{PlatformNotSupportedId, false, "Platform not supported"},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			found := Get(tt.id)

			if tt.wantNil {
				if found != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if found == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}

			if tt.contains != "" && !strings.Contains(string(found.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	all := Values()

	expectedCount := 14
	if len(all) != expectedCount {
		t.Errorf("Values() returned %d issues, want %d", len(all), expectedCount)
	}

	for _, i := range all {
		if i.Id() == 0 {
			t.Error("found issue with ID 0")
		}
		if i.MarkdownMsg() == "" {
			t.Errorf("issue %d has empty MarkdownMsg", i.Id())
		}
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	if !strings.Contains(rendered, "See also") {
		t.Error("Render() with links should contain 'See also'")
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{
		id:    Id(9998),
		mdMsg: "# Test\n\nNo links here.",
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	for _, i := range Values() {
		rendered, err := i.Render("")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", i.Id(), err)
		}
		if rendered == "" {
			t.Errorf("issue %d rendered to empty string", i.Id())
		}
	}
}

func TestIssue_LinkClones(t *testing.T) {
	testIssue := &Issue{
		id:       Id(9997),
		mdMsg:    "# Test",
		docLinks: []HttpLink{"https://docs.example.com"},
	}

	links := testIssue.DocLinks()
	links[0] = "modified"
	if testIssue.DocLinks()[0] != "https://docs.example.com" {
		t.Error("DocLinks() should return a clone")
	}
}
