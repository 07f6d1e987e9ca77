// SPDX-License-Identifier: MPL-2.0

package workfile

import (
	"fmt"
	"strings"
)

// ValidationErrors collects all validation failures for a workfile so the
// user sees every problem in one pass instead of fixing them one by one.
type ValidationErrors []error

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 1 {
		return ve[0].Error()
	}
	msgs := make([]string, len(ve))
	for i, err := range ve {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d validation errors:\n  %s", len(ve), strings.Join(msgs, "\n  "))
}

// Validate checks the workfile for semantic errors the CUE schema cannot
// express: duplicate target names, dangling or self-referential deps, and
// targets with neither a script nor prerequisites.
func (wf *Workfile) Validate() ValidationErrors {
	var errs ValidationErrors

	if len(wf.Targets) == 0 {
		errs = append(errs, fmt.Errorf("workfile at %s has no targets defined", wf.FilePath))
		return errs
	}

	seen := make(map[string]bool, len(wf.Targets))
	for i := range wf.Targets {
		t := &wf.Targets[i]

		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("duplicate target name '%s'", t.Name))
		}
		seen[t.Name] = true

		if strings.TrimSpace(t.Script) == "" && len(t.Deps) == 0 {
			errs = append(errs, fmt.Errorf("target '%s' must have a script or at least one dep", t.Name))
		}

		if err := t.validateDeps(wf); err != nil {
			errs = append(errs, err)
		}

		for _, tool := range t.Tools {
			if strings.TrimSpace(tool.Name) == "" {
				errs = append(errs, fmt.Errorf("target '%s' declares a tool with an empty name", t.Name))
			}
		}
	}

	return errs
}

// validateDeps checks that every dep references an existing target and
// that the target does not depend on itself. Cycles spanning multiple
// targets are caught later by the execution DAG.
func (t *Target) validateDeps(wf *Workfile) error {
	for _, dep := range t.Deps {
		if dep == t.Name {
			return fmt.Errorf("target '%s' depends on itself", t.Name)
		}
		if wf.GetTarget(dep) == nil {
			return fmt.Errorf("target '%s' depends on unknown target '%s'", t.Name, dep)
		}
	}
	return nil
}
