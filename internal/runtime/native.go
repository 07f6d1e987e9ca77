// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
)

// NativeRuntime executes targets using the system's default shell.
type NativeRuntime struct {
	// Shell overrides the default shell.
	Shell string
	// ShellArgs are arguments passed to the shell before the script.
	ShellArgs []string
}

// NewNativeRuntime creates a new native runtime. The shell parameter
// overrides auto-detection; pass the workfile's default_shell or "".
func NewNativeRuntime(shell string) *NativeRuntime {
	return &NativeRuntime{Shell: shell}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return "native"
}

// Available returns whether a usable shell exists on this system.
func (r *NativeRuntime) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Validate checks if a target can be executed.
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	if ctx.Target == nil {
		return fmt.Errorf("no target selected for execution")
	}
	if strings.TrimSpace(ctx.Target.Script) == "" {
		return fmt.Errorf("target '%s' has no script to execute", ctx.Target.Name)
	}
	return nil
}

// Execute runs a target using the system shell.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	cmd, err := r.prepare(ctx)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	cmd.Stdin = ctx.Stdin

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to execute target: %w", err)}
	}

	return &Result{ExitCode: 0}
}

// ExecuteCapture runs a target and captures its output.
func (r *NativeRuntime) ExecuteCapture(ctx *ExecutionContext) *Result {
	cmd, err := r.prepare(ctx)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = err
		}
	}

	return result
}

// prepare builds the exec.Cmd for a target: shell resolution, script
// resolution, argument shape, environment, and working directory.
func (r *NativeRuntime) prepare(ctx *ExecutionContext) (*exec.Cmd, error) {
	shell, err := r.getShell()
	if err != nil {
		return nil, err
	}

	script, err := ctx.Target.ResolveScript(ctx.Workfile.FilePath)
	if err != nil {
		return nil, err
	}

	args := r.getShellArgs(shell)
	args = append(args, script)
	args = appendPositionalArgs(shell, args, ctx.PositionalArgs)

	cmd := exec.CommandContext(ctx.Context, shell, args...)
	cmd.Dir = workDirFor(ctx)

	env, err := BuildEnv(ctx)
	if err != nil {
		return nil, err
	}
	cmd.Env = mergedEnviron(env)

	return cmd, nil
}

// getShell determines which shell to use.
func (r *NativeRuntime) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	switch goruntime.GOOS {
	case "windows":
		// Try PowerShell first, then cmd
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		// Unix-like: use SHELL env var, or fall back to common shells
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

// getShellArgs returns the arguments to pass to the shell.
func (r *NativeRuntime) getShellArgs(shell string) []string {
	if len(r.ShellArgs) > 0 {
		return r.ShellArgs
	}

	switch shellBase(shell) {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}

// appendPositionalArgs appends positional arguments after the script for
// shell access. For POSIX shells args become $1, $2, ... (with "pywork"
// as $0); for PowerShell they arrive via $args; cmd.exe does not support
// inline positional args.
func appendPositionalArgs(shell string, args, positional []string) []string {
	if len(positional) == 0 {
		return args
	}

	switch shellBase(shell) {
	case "cmd":
		return args
	case "powershell", "pwsh":
		return append(args, positional...)
	default:
		args = append(args, "pywork") // $0 placeholder
		return append(args, positional...)
	}
}

// shellBase extracts the shell's base name, handling Windows paths and
// the .exe suffix.
func shellBase(shell string) string {
	base := filepath.Base(shell)
	if lastSlash := strings.LastIndex(base, `\`); lastSlash >= 0 {
		base = base[lastSlash+1:]
	}
	return strings.TrimSuffix(base, ".exe")
}
