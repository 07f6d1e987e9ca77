// SPDX-License-Identifier: MPL-2.0

package runtime

// Result contains the result of a target execution.
type Result struct {
	// ExitCode is the exit code of the wrapped command.
	ExitCode int
	// Error contains any error that occurred.
	Error error
	// Output contains captured stdout (if captured).
	Output string
	// ErrOutput contains captured stderr (if captured).
	ErrOutput string
}

// Success returns true if the target executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Error == nil
}
