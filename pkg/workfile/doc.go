// SPDX-License-Identifier: MPL-2.0

// Package workfile defines the schema and parsing for workfile CUE files.
//
// A workfile declares the build-automation targets of a Python project:
// each target wraps an external tool invocation (pytest, poetry, black,
// flake8, ...) with optional prerequisite targets, environment variables,
// platform constraints, and tool availability checks. Targets that set
// needs_venv receive the project's virtual environment variables and have
// the venv's bin directory prepended to PATH.
package workfile
