// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"pywork/internal/dag"
	"pywork/internal/issue"
	"pywork/internal/runtime"
	"pywork/pkg/workfile"

	"github.com/spf13/cobra"
)

var (
	// runtimeOverride forces a specific runtime (--runtime flag).
	runtimeOverride string
	// workdirOverride forces a working directory (--workdir flag).
	workdirOverride string
	// envVarFlags holds KEY=VALUE pairs from --env-var (highest precedence).
	envVarFlags []string
	// envFileFlags holds dotenv paths from --env-file.
	envFileFlags []string
	// watchFlag re-runs the target when project files change.
	watchFlag bool
	// dryRunFlag resolves the execution plan without running anything.
	dryRunFlag bool
	// skipDepsFlag runs only the named target, ignoring prerequisites.
	skipDepsFlag bool

	runCmd = &cobra.Command{
		Use:   "run <target> [args...]",
		Short: "Run a target and its prerequisites",
		Long: `Run a target defined in the workfile.

Prerequisites listed in the target's 'deps' field run first, in
dependency order, each exactly once. Extra arguments are passed to the
target's script as positional parameters ($1, $2, ...).`,
		Example: `  pywork run test
  pywork run lint --watch
  pywork run pre-commit --dry-run
  pywork run test -- -k test_parser`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTarget(cmd, args)
		},
	}
)

func init() {
	runCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-run the target when project files change")
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "show what would run without executing")
	runCmd.Flags().BoolVar(&skipDepsFlag, "skip-deps", false, "run only the named target, skipping prerequisites")
	runCmd.Flags().StringVar(&runtimeOverride, "runtime", "", "override the runtime (native, virtual)")
	runCmd.Flags().StringVar(&workdirOverride, "workdir", "", "override the working directory")
	runCmd.Flags().StringArrayVar(&envVarFlags, "env-var", nil, "set an environment variable (KEY=VALUE, repeatable)")
	runCmd.Flags().StringArrayVar(&envFileFlags, "env-file", nil, "load environment variables from a dotenv file (repeatable; suffix with '?' for optional)")
}

func runTarget(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	name := args[0]
	positional := args[1:]

	target := p.Workfile.GetTarget(name)
	if target == nil {
		rendered, _ := issue.Get(issue.TargetNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return fmt.Errorf("target '%s' not found", name)
	}

	if runtimeOverride != "" {
		mode := workfile.RuntimeMode(runtimeOverride)
		if mode != workfile.RuntimeNative && mode != workfile.RuntimeVirtual {
			return fmt.Errorf("invalid runtime '%s' (valid: native, virtual)", runtimeOverride)
		}
	}

	extraEnv, err := parseEnvVarFlags(envVarFlags)
	if err != nil {
		return err
	}

	if watchFlag {
		if dryRunFlag {
			return fmt.Errorf("--watch and --dry-run cannot be used together")
		}
		return runWatchMode(cmd, p, name, positional, extraEnv)
	}

	return executePlan(cmd, p, name, positional, extraEnv)
}

// executePlan resolves the execution order for a target and runs each
// step through the runtime registry.
func executePlan(cmd *cobra.Command, p *project, name string, positional []string, extraEnv map[string]string) error {
	order, err := resolveOrder(p.Workfile, name)
	if err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			rendered, _ := issue.Get(issue.DependencyCycleId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
		}
		return err
	}

	platform := workfile.CurrentPlatform()
	if !p.Workfile.GetTarget(name).MatchesPlatform(platform) {
		rendered, _ := issue.Get(issue.PlatformNotSupportedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return fmt.Errorf("target '%s' does not support platform '%s' (supported: %s)",
			name, platform, p.Workfile.GetTarget(name).PlatformsString())
	}

	registry := newRuntimeRegistry(p)

	for _, step := range order {
		target := p.Workfile.GetTarget(step)

		if target.IsAggregate() {
			continue
		}

		if !target.MatchesPlatform(platform) {
			if verbose {
				fmt.Fprintf(os.Stdout, "%s Skipping '%s' (not supported on %s)\n",
					VerboseStyle.Render("·"), step, platform)
			}
			continue
		}

		// Positional args go to the requested target only, not its deps.
		stepArgs := positional
		if step != name {
			stepArgs = nil
		}

		ctx := newExecutionContext(cmd, p, target, stepArgs, extraEnv)

		if err := runtime.ValidateTools(ctx); err != nil {
			var toolErr *runtime.ToolError
			if errors.As(err, &toolErr) {
				rendered, _ := issue.Get(issue.ToolsNotSatisfiedId).Render("dark")
				fmt.Fprint(os.Stderr, rendered)
			}
			return err
		}

		if dryRunFlag {
			renderDryRun(os.Stdout, p, ctx)
			continue
		}

		if verbose {
			fmt.Fprintf(os.Stdout, "%s Running '%s'...\n", SuccessStyle.Render("→"), step)
		}

		result := registry.Execute(ctx)

		if result.Error != nil {
			rendered, _ := issue.Get(issue.ScriptExecutionFailedId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			fmt.Fprintf(os.Stderr, "\n%s %v\n", ErrorStyle.Render("Error:"), result.Error)
			return result.Error
		}

		if result.ExitCode != 0 {
			if verbose {
				fmt.Fprintf(os.Stdout, "%s Target '%s' exited with code %d\n",
					WarningStyle.Render("!"), step, result.ExitCode)
			}
			return &ExitError{Code: runtime.ExitCode(result.ExitCode)}
		}
	}

	return nil
}

// resolveOrder returns the execution order for the named target: the
// target's transitive prerequisites followed by the target itself, each
// exactly once, prerequisites first.
func resolveOrder(wf *workfile.Workfile, name string) ([]string, error) {
	if skipDepsFlag {
		return []string{name}, nil
	}
	return buildGraph(wf).OrderFor(name)
}

// buildGraph constructs the dependency graph of all workfile targets.
// Nodes follow declaration order so same-level prerequisites run in the
// order the workfile lists them.
func buildGraph(wf *workfile.Workfile) *dag.Graph {
	g := dag.New()
	for i := range wf.Targets {
		g.AddNode(wf.Targets[i].Name)
	}
	for i := range wf.Targets {
		for _, dep := range wf.Targets[i].Deps {
			g.AddEdge(dep, wf.Targets[i].Name)
		}
	}
	return g
}

// newRuntimeRegistry builds the registry with both runtimes registered.
func newRuntimeRegistry(p *project) *runtime.Registry {
	registry := runtime.NewRegistry(p.defaultRuntime())
	registry.Register(workfile.RuntimeNative, runtime.NewNativeRuntime(p.Workfile.DefaultShell))
	registry.Register(workfile.RuntimeVirtual, runtime.NewVirtualRuntime())
	return registry
}

// newExecutionContext assembles the runtime execution context for one step.
func newExecutionContext(cmd *cobra.Command, p *project, target *workfile.Target, positional []string, extraEnv map[string]string) *runtime.ExecutionContext {
	// Apply the --runtime override through a copy so the parsed workfile
	// stays untouched for subsequent steps.
	if runtimeOverride != "" {
		overridden := *target
		overridden.Runtime = workfile.RuntimeMode(runtimeOverride)
		target = &overridden
	}

	ctx := runtime.NewExecutionContext(target, p.Workfile)
	ctx.Context = cmd.Context()
	ctx.Verbose = verbose
	ctx.PositionalArgs = positional
	ctx.WorkDir = workdirOverride
	ctx.EnvFiles = envFileFlags
	ctx.ProjectEnv = p.projectEnv()
	for k, v := range extraEnv {
		ctx.ExtraEnv[k] = v
	}

	if target.NeedsVenv {
		ctx.Venv = p.Venv
		if verbose && !p.Venv.Exists() {
			fmt.Fprintf(os.Stderr, "%s virtual environment '%s' does not exist yet (run 'pywork venv init')\n",
				WarningStyle.Render("!"), p.Venv.Name())
		}
	}

	return ctx
}

// parseEnvVarFlags converts --env-var KEY=VALUE pairs into a map.
func parseEnvVarFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --env-var %q: expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}
