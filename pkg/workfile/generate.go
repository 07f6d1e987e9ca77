// SPDX-License-Identifier: MPL-2.0

package workfile

import (
	"fmt"
	"strings"
)

// GenerateCUE renders a Workfile back to CUE source text.
func GenerateCUE(wf *Workfile) string {
	var sb strings.Builder

	sb.WriteString("// Workfile - target definitions for pywork\n\n")

	if wf.Version != "" {
		sb.WriteString(fmt.Sprintf("version: %q\n", wf.Version))
	}
	if wf.Description != "" {
		sb.WriteString(fmt.Sprintf("description: %q\n", wf.Description))
	}
	if wf.DefaultShell != "" {
		sb.WriteString(fmt.Sprintf("default_shell: %q\n", wf.DefaultShell))
	}
	if wf.Project != "" {
		sb.WriteString(fmt.Sprintf("project: %q\n", wf.Project))
	}
	if wf.Venv != "" {
		sb.WriteString(fmt.Sprintf("venv: %q\n", wf.Venv))
	}

	sb.WriteString("\ntargets: [\n")
	for i := range wf.Targets {
		writeTarget(&sb, &wf.Targets[i])
	}
	sb.WriteString("]\n")

	return sb.String()
}

func writeTarget(sb *strings.Builder, t *Target) {
	sb.WriteString("\t{\n")
	sb.WriteString(fmt.Sprintf("\t\tname: %q\n", t.Name))
	if t.Description != "" {
		sb.WriteString(fmt.Sprintf("\t\tdescription: %q\n", t.Description))
	}

	if t.Script != "" {
		// Multi-line scripts use CUE's multi-line string syntax.
		if strings.Contains(t.Script, "\n") {
			sb.WriteString("\t\tscript: \"\"\"\n")
			for _, line := range strings.Split(strings.TrimRight(t.Script, "\n"), "\n") {
				sb.WriteString(fmt.Sprintf("\t\t\t%s\n", line))
			}
			sb.WriteString("\t\t\t\"\"\"\n")
		} else {
			sb.WriteString(fmt.Sprintf("\t\tscript: %q\n", t.Script))
		}
	}

	if len(t.Deps) > 0 {
		sb.WriteString("\t\tdeps: [")
		for i, dep := range t.Deps {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%q", dep))
		}
		sb.WriteString("]\n")
	}

	if len(t.Env) > 0 {
		sb.WriteString("\t\tenv: {\n")
		for k, v := range t.Env {
			sb.WriteString(fmt.Sprintf("\t\t\t%s: %q\n", k, v))
		}
		sb.WriteString("\t\t}\n")
	}

	if t.WorkDir != "" {
		sb.WriteString(fmt.Sprintf("\t\tworkdir: %q\n", t.WorkDir))
	}
	if t.Runtime != "" {
		sb.WriteString(fmt.Sprintf("\t\truntime: %q\n", t.Runtime))
	}

	if len(t.Platforms) > 0 {
		sb.WriteString("\t\tplatforms: [\n")
		for _, p := range t.Platforms {
			if len(p.Env) > 0 {
				sb.WriteString(fmt.Sprintf("\t\t\t{name: %q, env: {", p.Name))
				first := true
				for k, v := range p.Env {
					if !first {
						sb.WriteString(", ")
					}
					sb.WriteString(fmt.Sprintf("%s: %q", k, v))
					first = false
				}
				sb.WriteString("}},\n")
			} else {
				sb.WriteString(fmt.Sprintf("\t\t\t{name: %q},\n", p.Name))
			}
		}
		sb.WriteString("\t\t]\n")
	}

	if len(t.Tools) > 0 {
		sb.WriteString("\t\ttools: [")
		for i, tool := range t.Tools {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("{name: %q", tool.Name))
			if tool.CheckScript != "" {
				sb.WriteString(fmt.Sprintf(", check_script: %q", tool.CheckScript))
			}
			if tool.ExpectedCode != nil {
				sb.WriteString(fmt.Sprintf(", expected_code: %d", *tool.ExpectedCode))
			}
			sb.WriteString("}")
		}
		sb.WriteString("]\n")
	}

	if t.NeedsVenv {
		sb.WriteString("\t\tneeds_venv: true\n")
	}

	sb.WriteString("\t},\n")
}

// NewPythonStarter builds the canonical workfile for a Python package
// managed with poetry: virtualenv lifecycle, dependency management,
// linting, formatting, security scanning, testing, coverage, build and
// publish, with aggregate quality and pre-commit targets chaining them.
func NewPythonStarter(projectName, venvName string) *Workfile {
	if projectName == "" {
		projectName = "app"
	}
	if venvName == "" {
		venvName = ".venv"
	}

	return &Workfile{
		Version:     "1",
		Description: fmt.Sprintf("Developer workflow for the %s Python package", projectName),
		Venv:        venvName,
		Targets: []Target{
			{
				Name:        "venv-init",
				Description: "Create the virtual environment if it does not exist",
				Script:      `"$PYWORK" venv init`,
				Runtime:     RuntimeVirtual,
			},
			{
				Name:        "install",
				Description: "Install the package and its dependencies",
				Script:      "poetry install",
				Deps:        []string{"venv-init"},
				Tools:       []Tool{{Name: "poetry"}},
				NeedsVenv:   true,
			},
			{
				Name:        "deps-update",
				Description: "Update dependencies to their latest allowed versions",
				Script:      "poetry update",
				Tools:       []Tool{{Name: "poetry"}},
				NeedsVenv:   true,
			},
			{
				Name:        "build",
				Description: "Build sdist and wheel distributions",
				Script:      "poetry build",
				Tools:       []Tool{{Name: "poetry"}},
				NeedsVenv:   true,
			},
			{
				Name:        "publish",
				Description: "Publish distributions to the package index",
				Script:      "poetry publish",
				Deps:        []string{"build"},
				Tools:       []Tool{{Name: "poetry"}},
				NeedsVenv:   true,
			},
			{
				Name:        "clean",
				Description: "Remove build artifacts and caches",
				Script:      "rm -rf dist build .pytest_cache .mypy_cache htmlcov .coverage",
				Runtime:     RuntimeVirtual,
			},
			{
				Name:        "format",
				Description: "Format sources with black and isort",
				Script:      "black src tests\nisort src tests",
				NeedsVenv:   true,
			},
			{
				Name:        "lint",
				Description: "Run flake8, pylint, and mypy",
				Script:      "flake8 src tests\npylint src\nmypy src",
				NeedsVenv:   true,
			},
			{
				Name:        "security",
				Description: "Scan sources for known security issues",
				Script:      "bandit -r src",
				NeedsVenv:   true,
			},
			{
				Name:        "test",
				Description: "Run the test suite",
				Script:      "pytest",
				Deps:        []string{"install"},
				NeedsVenv:   true,
			},
			{
				Name:        "coverage",
				Description: "Run tests with coverage reporting",
				Script:      fmt.Sprintf("pytest --cov=%s --cov-report=term-missing --cov-report=html", projectName),
				Deps:        []string{"install"},
				NeedsVenv:   true,
			},
			{
				Name:        "quality",
				Description: "Run all static quality checks",
				Deps:        []string{"format", "lint", "security"},
			},
			{
				Name:        "pre-commit",
				Description: "Everything that must pass before committing",
				Deps:        []string{"quality", "test"},
			},
		},
	}
}
