// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes targets using the embedded mvdan/sh interpreter.
// It needs no shell on the host, which makes portable targets (cleanup,
// venv bootstrap) behave identically on Windows and Unix.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return "virtual"
}

// Available returns whether this runtime is available.
// The virtual runtime is always available as it's built-in.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Validate checks if a target can be executed, including a syntax parse
// of the script.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	if ctx.Target == nil {
		return fmt.Errorf("no target selected for execution")
	}
	if strings.TrimSpace(ctx.Target.Script) == "" {
		return fmt.Errorf("target '%s' has no script to execute", ctx.Target.Name)
	}

	script, err := ctx.Target.ResolveScript(ctx.Workfile.FilePath)
	if err != nil {
		return err
	}

	if _, err := syntax.NewParser().Parse(strings.NewReader(script), ctx.Target.Name); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}

	return nil
}

// Execute runs a target in the embedded shell.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	return r.run(ctx, ctx.Stdout, ctx.Stderr, false)
}

// ExecuteCapture runs a target and captures its output.
func (r *VirtualRuntime) ExecuteCapture(ctx *ExecutionContext) *Result {
	var stdout, stderr bytes.Buffer
	result := r.run(ctx, &stdout, &stderr, true)
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *VirtualRuntime) run(ctx *ExecutionContext, stdout, stderr io.Writer, capture bool) *Result {
	script, err := ctx.Target.ResolveScript(ctx.Workfile.FilePath)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), ctx.Target.Name)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to parse script: %w", err)}
	}

	env, err := BuildEnv(ctx)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to build environment: %w", err)}
	}

	stdin := ctx.Stdin
	if capture {
		stdin = nil
	}

	opts := []interp.RunnerOption{
		interp.Dir(workDirFor(ctx)),
		interp.Env(expand.ListEnviron(mergedEnviron(env)...)),
		interp.StdIO(stdin, stdout, stderr),
	}

	// Prepend "--" to signal end of options; without this, args like "-v"
	// are interpreted as shell options by interp.Params()
	if len(ctx.PositionalArgs) > 0 {
		params := append([]string{"--"}, ctx.PositionalArgs...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	execCtx := ctx.Context
	if execCtx == nil {
		execCtx = context.Background()
	}

	if err := runner.Run(execCtx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &Result{ExitCode: int(exitStatus)}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("script execution failed: %w", err)}
	}

	return &Result{ExitCode: 0}
}
