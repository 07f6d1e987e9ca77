// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"pywork/pkg/workfile"
)

// EnvPywork is injected into every target and holds the path of the
// running pywork binary, so target scripts can re-enter the tool
// (e.g., `"$PYWORK" venv init`).
const EnvPywork = "PYWORK"

// BuildEnv assembles the overlay environment for a target. Precedence,
// lowest to highest (later sources override earlier ones):
//
//	pyproject metadata < venv variables < platform env < target env
//	< dotenv files (--env-file) < CLI vars (--env-var)
//
// The overlay is applied on top of the host environment by the runtimes.
// Venv injection also rewrites PATH so the environment's executables
// shadow system ones, approximating activation.
func BuildEnv(ctx *ExecutionContext) (map[string]string, error) {
	env := make(map[string]string)

	if exe, err := os.Executable(); err == nil {
		env[EnvPywork] = exe
	}

	for k, v := range ctx.ProjectEnv {
		env[k] = v
	}

	if ctx.Venv != nil {
		for k, v := range ctx.Venv.Environ() {
			env[k] = v
		}
		env["PATH"] = ctx.Venv.PathPrepend(os.Getenv("PATH"))
	}

	platform := workfile.CurrentPlatform()
	for k, v := range ctx.Target.PlatformEnv(platform) {
		env[k] = v
	}

	for k, v := range ctx.Target.Env {
		env[k] = v
	}

	for _, file := range ctx.EnvFiles {
		if err := LoadEnvFile(env, file, ""); err != nil {
			return nil, err
		}
	}

	for k, v := range ctx.ExtraEnv {
		env[k] = v
	}

	return env, nil
}

// mergedEnviron returns the full process environment for a target: the
// host environment with the overlay applied on top.
func mergedEnviron(overlay map[string]string) []string {
	return append(os.Environ(), EnvToSlice(overlay)...)
}

// workDirFor determines the working directory for a target using the
// override model: CLI override > target workdir > workfile directory.
func workDirFor(ctx *ExecutionContext) string {
	if ctx.WorkDir != "" {
		return ctx.WorkDir
	}
	if ctx.Target.WorkDir != "" {
		return resolveWorkDir(ctx.Workfile.Dir(), ctx.Target.WorkDir)
	}
	return ctx.Workfile.Dir()
}

func resolveWorkDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// validateEnvName rejects variable names that would corrupt the
// environment when joined as KEY=value.
func validateEnvName(name string) error {
	if name == "" {
		return fmt.Errorf("environment variable name is empty")
	}
	for _, c := range name {
		if c == '=' || c == 0 {
			return fmt.Errorf("invalid environment variable name %q", name)
		}
	}
	return nil
}
