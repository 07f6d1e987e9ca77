// SPDX-License-Identifier: MPL-2.0

package workfile

import (
	"path/filepath"
)

// WorkfileName is the standard base name for workfiles.
const WorkfileName = "workfile"

// DefaultFileName is the canonical workfile name including extension.
const DefaultFileName = WorkfileName + ".cue"

// Workfile represents the complete parsed workfile.
type Workfile struct {
	// Version specifies the workfile schema version.
	Version string `json:"version,omitempty"`
	// Description provides a summary of this workfile's purpose.
	Description string `json:"description,omitempty"`
	// DefaultShell overrides the default shell for the native runtime.
	DefaultShell string `json:"default_shell,omitempty"`
	// Project is the path to pyproject.toml, relative to the workfile.
	Project string `json:"project,omitempty"`
	// Venv is the virtual environment directory name (VENV_NAME).
	Venv string `json:"venv,omitempty"`
	// Targets defines the available targets.
	Targets []Target `json:"targets"`

	// FilePath stores the path this workfile was loaded from (not in CUE).
	FilePath string `json:"-"`
}

// Dir returns the directory containing the workfile, which doubles as the
// project directory (PROJECT_DIR) for target execution.
func (wf *Workfile) Dir() string {
	return filepath.Dir(wf.FilePath)
}

// ProjectFilePath returns the absolute path to pyproject.toml, defaulting
// to "pyproject.toml" next to the workfile when the project field is unset.
func (wf *Workfile) ProjectFilePath() string {
	project := wf.Project
	if project == "" {
		project = "pyproject.toml"
	}
	if filepath.IsAbs(project) {
		return project
	}
	return filepath.Join(wf.Dir(), project)
}

// GetTarget finds a target by name, or nil if it does not exist.
func (wf *Workfile) GetTarget(name string) *Target {
	if name == "" {
		return nil
	}
	for i := range wf.Targets {
		if wf.Targets[i].Name == name {
			return &wf.Targets[i]
		}
	}
	return nil
}

// TargetNames returns all target names in declaration order.
func (wf *Workfile) TargetNames() []string {
	names := make([]string, len(wf.Targets))
	for i, t := range wf.Targets {
		names[i] = t.Name
	}
	return names
}
