// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"testing"
)

func indexOf(t *testing.T, order []string, name string) int {
	t.Helper()
	for i, n := range order {
		if n == name {
			return i
		}
	}
	t.Fatalf("node %q not in order %v", name, order)
	return -1
}

func TestTopologicalSort_Empty(t *testing.T) {
	order, err := New().TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func TestTopologicalSort_Chain(t *testing.T) {
	g := New()
	g.AddEdge("venv-init", "install")
	g.AddEdge("install", "test")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"venv-init", "install", "test"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestTopologicalSort_DeterministicLevels(t *testing.T) {
	// format, lint, and security are all roots; insertion order must be preserved.
	g := New()
	g.AddNode("format")
	g.AddNode("lint")
	g.AddNode("security")
	g.AddEdge("format", "quality")
	g.AddEdge("lint", "quality")
	g.AddEdge("security", "quality")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"format", "lint", "security", "quality"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")

	_, err := g.TopologicalSort()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if len(cycleErr.Cycle) == 0 {
		t.Error("CycleError should name at least one node in the cycle")
	}
}

func TestOrderFor_Closure(t *testing.T) {
	g := New()
	g.AddEdge("venv-init", "install")
	g.AddEdge("install", "test")
	g.AddEdge("test", "coverage")
	g.AddNode("unrelated")

	order, err := g.OrderFor("coverage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"venv-init", "install", "test", "coverage"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	for _, n := range order {
		if n == "unrelated" {
			t.Error("OrderFor must not include nodes outside the closure")
		}
	}
}

func TestOrderFor_DiamondRunsSharedDepOnce(t *testing.T) {
	g := New()
	g.AddEdge("venv-init", "lint")
	g.AddEdge("venv-init", "test")
	g.AddEdge("lint", "pre-commit")
	g.AddEdge("test", "pre-commit")

	order, err := g.OrderFor("pre-commit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]int)
	for _, n := range order {
		seen[n]++
	}
	if seen["venv-init"] != 1 {
		t.Errorf("shared prerequisite must appear exactly once, got %d", seen["venv-init"])
	}
	if indexOf(t, order, "venv-init") > indexOf(t, order, "lint") {
		t.Errorf("prerequisite out of order: %v", order)
	}
	if indexOf(t, order, "pre-commit") != len(order)-1 {
		t.Errorf("requested target must come last: %v", order)
	}
}

func TestOrderFor_UnknownRoot(t *testing.T) {
	g := New()
	g.AddNode("lint")

	_, err := g.OrderFor("deploy")
	var unknownErr *UnknownNodeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownNodeError, got %v", err)
	}
	if unknownErr.Name != "deploy" {
		t.Errorf("Name = %q, want %q", unknownErr.Name, "deploy")
	}
}

func TestOrderFor_MultipleRoots(t *testing.T) {
	g := New()
	g.AddEdge("venv-init", "lint")
	g.AddEdge("venv-init", "format")

	order, err := g.OrderFor("lint", "format")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("order = %v, want 3 nodes", order)
	}
	if order[0] != "venv-init" {
		t.Errorf("order = %v, want venv-init first", order)
	}
}
