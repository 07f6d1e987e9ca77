// SPDX-License-Identifier: MPL-2.0

// Package pyproject reads project metadata from pyproject.toml.
//
// Both PEP 621 metadata ([project]) and legacy poetry metadata
// ([tool.poetry]) are supported; PEP 621 wins when both are present.
package pyproject

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrNoMetadata is returned when pyproject.toml carries neither a
// [project] nor a [tool.poetry] table.
var ErrNoMetadata = errors.New("pyproject.toml has no project metadata")

// Metadata is the subset of pyproject.toml the task runner cares about.
type Metadata struct {
	// Name is the distribution name.
	Name string
	// Version is the declared package version.
	Version string
	// UsesPoetry reports whether the project is managed with poetry.
	UsesPoetry bool
}

// document mirrors the pyproject.toml tables we decode.
type document struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry *struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
	BuildSystem struct {
		Requires []string `toml:"requires"`
	} `toml:"build-system"`
}

// Load reads and parses pyproject.toml at the given path.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes pyproject.toml content. The path parameter is used only
// for error messages.
func Parse(data []byte, path string) (*Metadata, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s", path, row, col, decodeErr.Error())
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	meta := &Metadata{
		Name:       doc.Project.Name,
		Version:    doc.Project.Version,
		UsesPoetry: doc.Tool.Poetry != nil,
	}

	// Fall back to poetry metadata when PEP 621 fields are absent.
	if doc.Tool.Poetry != nil {
		if meta.Name == "" {
			meta.Name = doc.Tool.Poetry.Name
		}
		if meta.Version == "" {
			meta.Version = doc.Tool.Poetry.Version
		}
	}

	if meta.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMetadata)
	}

	return meta, nil
}

// Environ returns the metadata as environment variables for target scripts.
func (m *Metadata) Environ() map[string]string {
	env := map[string]string{
		"PROJECT_NAME": m.Name,
	}
	if m.Version != "" {
		env["PROJECT_VERSION"] = m.Version
	}
	return env
}
