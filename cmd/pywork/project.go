// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"pywork/internal/config"
	"pywork/internal/issue"
	"pywork/internal/pyproject"
	"pywork/internal/venv"
	"pywork/pkg/workfile"
)

// project bundles everything a command needs to operate on the current
// Python project: the parsed workfile, the application config, project
// metadata from pyproject.toml, and the virtual environment handle.
type project struct {
	Workfile *workfile.Workfile
	Config   *config.Config
	Metadata *pyproject.Metadata
	Venv     *venv.Env
}

// loadProject discovers and parses the workfile starting from the current
// directory, then assembles the surrounding project state. pyproject.toml
// is optional: targets still run without it, they just lose PROJECT_NAME
// and PROJECT_VERSION.
func loadProject() (*project, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	path, err := workfile.Discover(wd)
	if err != nil {
		rendered, _ := issue.Get(issue.WorkfileNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return nil, err
	}

	wf, err := workfile.Parse(path)
	if err != nil {
		rendered, _ := issue.Get(issue.WorkfileParseErrorId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return nil, err
	}

	if errs := wf.Validate(); len(errs) > 0 {
		return nil, errs
	}

	cfg, err := config.Load()
	if err != nil {
		logger().Debug("configuration not loaded, using defaults", "err", err)
	}

	p := &project{Workfile: wf, Config: cfg}

	if meta, metaErr := pyproject.Load(wf.ProjectFilePath()); metaErr == nil {
		p.Metadata = meta
	} else {
		logger().Debug("no project metadata", "path", wf.ProjectFilePath(), "err", metaErr)
	}

	env, err := venv.New(p.venvName(), wf.Dir())
	if err != nil {
		if errors.Is(err, venv.ErrEmptyName) {
			rendered, _ := issue.Get(issue.VenvNameEmptyId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
		}
		return nil, err
	}
	p.Venv = env

	return p, nil
}

// venvName resolves the virtual environment name: the VENV_NAME variable
// wins when set, even when set to an empty string, so a blank value fails
// loudly instead of silently falling back to a default. Then the
// workfile's venv field, then the config, then the default.
func (p *project) venvName() string {
	if name, ok := os.LookupEnv(venv.EnvVenvName); ok {
		return name
	}
	if p.Workfile.Venv != "" {
		return p.Workfile.Venv
	}
	if p.Config != nil && p.Config.VenvName != "" {
		return string(p.Config.VenvName)
	}
	return config.DefaultVenvName
}

// projectEnv returns the pyproject-derived environment variables, or nil
// when no metadata is available.
func (p *project) projectEnv() map[string]string {
	if p.Metadata == nil {
		return nil
	}
	return p.Metadata.Environ()
}

// defaultRuntime returns the configured default runtime mode.
func (p *project) defaultRuntime() workfile.RuntimeMode {
	if p.Config != nil && p.Config.DefaultRuntime != "" {
		return workfile.RuntimeMode(p.Config.DefaultRuntime)
	}
	return workfile.RuntimeNative
}
