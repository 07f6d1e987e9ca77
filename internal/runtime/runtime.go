// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"pywork/internal/venv"
	"pywork/pkg/workfile"
)

type (
	// ExecutionContext contains all information needed to execute a target.
	ExecutionContext struct {
		// Target is the target to execute.
		Target *workfile.Target
		// Workfile is the parent workfile.
		Workfile *workfile.Workfile
		// Context is the Go context for cancellation.
		Context context.Context
		// Stdout is where to write standard output.
		Stdout io.Writer
		// Stderr is where to write standard error.
		Stderr io.Writer
		// Stdin is where to read standard input.
		Stdin io.Reader
		// Venv is the project's virtual environment; nil when the target
		// does not set needs_venv.
		Venv *venv.Env
		// ProjectEnv contains variables derived from pyproject.toml
		// (PROJECT_NAME, PROJECT_VERSION).
		ProjectEnv map[string]string
		// ExtraEnv contains additional environment variables (--env-var,
		// highest precedence).
		ExtraEnv map[string]string
		// EnvFiles contains dotenv file paths (--env-file), resolved
		// relative to the invocation directory.
		EnvFiles []string
		// WorkDir overrides the working directory.
		WorkDir string
		// PositionalArgs are passed to the script as $1, $2, etc.
		PositionalArgs []string
		// Verbose enables verbose output.
		Verbose bool
	}

	// Runtime defines the interface for target execution.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Execute runs a target in this runtime.
		Execute(ctx *ExecutionContext) *Result
		// Available returns whether this runtime is usable on the current system.
		Available() bool
		// Validate checks if a target can be executed with this runtime.
		Validate(ctx *ExecutionContext) error
	}

	// CapturingRuntime is implemented by runtimes that support capturing output.
	CapturingRuntime interface {
		// ExecuteCapture runs a target and captures stdout/stderr.
		ExecuteCapture(ctx *ExecutionContext) *Result
	}

	// Registry holds all available runtimes keyed by mode.
	Registry struct {
		runtimes map[workfile.RuntimeMode]Runtime
		// defaultMode is used for targets that don't declare a runtime.
		defaultMode workfile.RuntimeMode
	}
)

// NewExecutionContext creates a new execution context with defaults.
func NewExecutionContext(target *workfile.Target, wf *workfile.Workfile) *ExecutionContext {
	return &ExecutionContext{
		Target:   target,
		Workfile: wf,
		Context:  context.Background(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		ExtraEnv: make(map[string]string),
	}
}

// NewRegistry creates a registry with the given default mode. An empty
// mode defaults to native execution.
func NewRegistry(defaultMode workfile.RuntimeMode) *Registry {
	if defaultMode == "" {
		defaultMode = workfile.RuntimeNative
	}
	return &Registry{
		runtimes:    make(map[workfile.RuntimeMode]Runtime),
		defaultMode: defaultMode,
	}
}

// Register adds a runtime to the registry.
func (r *Registry) Register(mode workfile.RuntimeMode, rt Runtime) {
	r.runtimes[mode] = rt
}

// Get returns a runtime by mode.
func (r *Registry) Get(mode workfile.RuntimeMode) (Runtime, error) {
	rt, ok := r.runtimes[mode]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", mode)
	}
	return rt, nil
}

// GetForContext returns the runtime for the context's target, falling
// back to the registry default when the target declares none.
func (r *Registry) GetForContext(ctx *ExecutionContext) (Runtime, error) {
	mode := ctx.Target.Runtime
	if mode == "" {
		mode = r.defaultMode
	}
	return r.Get(mode)
}

// Execute runs a target using the appropriate runtime from the execution context.
func (r *Registry) Execute(ctx *ExecutionContext) *Result {
	rt, err := r.GetForContext(ctx)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	if !rt.Available() {
		return &Result{
			ExitCode: 1,
			Error:    fmt.Errorf("runtime '%s' is not available on this system", rt.Name()),
		}
	}

	if err := rt.Validate(ctx); err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	return rt.Execute(ctx)
}

// EnvToSlice converts a map of environment variables to a KEY=value slice.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}
