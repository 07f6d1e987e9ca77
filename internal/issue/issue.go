// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	WorkfileNotFoundId Id = iota + 1
	WorkfileParseErrorId
	TargetNotFoundId
	RuntimeNotAvailableId
	ScriptExecutionFailedId
	ConfigLoadFailedId
	DependencyCycleId
	ShellNotFoundId
	VenvNameEmptyId
	VenvActiveId
	PythonNotFoundId
	PyprojectNotFoundId
	ToolsNotSatisfiedId
	PlatformNotSupportedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links for this issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	workfileNotFoundIssue = &Issue{
		id: WorkfileNotFoundId,
		mdMsg: `
# No workfile found!

We searched for a workfile but couldn't find one in this directory or any
of its parents.

## Things you can try:
- Create a workfile in your project directory:
~~~
$ pywork init
~~~

- Or change into the project directory first:
~~~
$ cd /path/to/your/project
$ pywork list
~~~

## Example workfile structure:
~~~cue
version: "1.0"
description: "My Python project tasks"

targets: [
  {
    name: "test"
    description: "Run the test suite"
    script: "pytest tests/"
    needs_venv: true
  },
  {
    name: "lint"
    script: "flake8 src/"
    needs_venv: true
  },
]
~~~`,
	}

	workfileParseErrorIssue = &Issue{
		id: WorkfileParseErrorId,
		mdMsg: `
# Failed to parse workfile!

Your workfile contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- Invalid values for known fields
- Target names that don't match the required pattern (lowercase, digits, '.', '_', '-')

## Things you can try:
- Check the error message above for the specific line/column
- Validate the workfile directly:
~~~
$ pywork validate
~~~

- Run with verbose mode for more details:
~~~
$ pywork --verbose list
~~~`,
	}

	targetNotFoundIssue = &Issue{
		id: TargetNotFoundId,
		mdMsg: `
# Target not found!

The target you specified is not defined in the workfile.

## Things you can try:
- List all available targets:
~~~
$ pywork list
~~~

- Check for typos in the target name
- Verify the workfile defines your target`,
	}

	runtimeNotAvailableIssue = &Issue{
		id: RuntimeNotAvailableId,
		mdMsg: `
# Runtime not available!

The specified runtime mode is not available on your system.

## Available runtimes:
- **native**: Uses your system's default shell (bash, sh, powershell, etc.)
- **virtual**: Uses the built-in mvdan/sh interpreter (always available)

## Things you can try:
- Change the runtime for a target in your workfile:
~~~cue
targets: [
  {
    name: "clean"
    script: "rm -rf dist build"
    runtime: "virtual"
  },
]
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script execution failed!

The target's script failed to execute properly.

## Common causes:
- Command not found in PATH
- The virtual environment is missing (run the venv target first)
- Syntax error in the script
- Missing dependencies

## Things you can try:
- Run with verbose mode for more details:
~~~
$ pywork --verbose run <target>
~~~

- Test the script manually in your shell
- For venv targets, make sure the environment exists:
~~~
$ pywork venv init
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the pywork configuration file.

## Configuration file locations:
- Linux: ~/.config/pywork/config.cue
- macOS: ~/Library/Application Support/pywork/config.cue
- Windows: %APPDATA%\pywork\config.cue

## Things you can try:
- Check the configuration syntax
- Show the resolved configuration:
~~~
$ pywork config show
~~~

- Remove the config file to use defaults:
~~~
$ rm ~/.config/pywork/config.cue
~~~

## Example configuration:
~~~cue
default_runtime: "native"
venv_name: ".venv"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

Your target dependencies form a cycle, which would cause infinite execution.

## Example of a cycle:
~~~cue
targets: [
  {
    name: "a"
    deps: ["b"]
  },
  {
    name: "b"
    deps: ["a"]  // Cycle: a -> b -> a
  },
]
~~~

## Things you can try:
- Review the deps fields in your workfile
- Remove the circular dependency
- Use a linear dependency chain instead`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find a suitable shell for the 'native' runtime.

## Shells we look for:
- Linux/macOS: $SHELL, bash, sh
- Windows: pwsh, powershell, cmd

## Things you can try:
- Install bash or another POSIX shell
- Set the SHELL environment variable
- Use the 'virtual' runtime instead (built-in shell):
~~~cue
targets: [
  {
    name: "clean"
    script: "rm -rf dist"
    runtime: "virtual"
  },
]
~~~`,
	}

	venvNameEmptyIssue = &Issue{
		id: VenvNameEmptyId,
		mdMsg: `
# Virtual environment name is empty!

The virtual environment name resolved to an empty string, so pywork
refuses to create or remove anything.

## Things you can try:
- Set the name in your workfile:
~~~cue
venv: {
  name: ".venv"
}
~~~

- Or set the VENV_NAME environment variable:
~~~
$ VENV_NAME=.venv pywork venv init
~~~`,
	}

	venvActiveIssue = &Issue{
		id: VenvActiveId,
		mdMsg: `
# Virtual environment is active!

You tried to remove the virtual environment you are currently working in.
Deleting an active environment would leave your shell session broken, so
pywork refuses.

## Things you can try:
- Deactivate the environment first:
~~~
$ deactivate
$ pywork venv remove
~~~

- Or run the removal from a fresh shell session`,
	}

	pythonNotFoundIssue = &Issue{
		id: PythonNotFoundId,
		mdMsg: `
# Python interpreter not found!

Could not find a Python interpreter to create the virtual environment.

## Interpreters we look for:
- python3
- python

## Things you can try:
- Install Python 3: https://www.python.org/downloads/
- Make sure the interpreter is in your PATH
- Point pywork at a specific interpreter:
~~~
$ pywork venv init --python /usr/local/bin/python3.12
~~~`,
	}

	pyprojectNotFoundIssue = &Issue{
		id: PyprojectNotFoundId,
		mdMsg: `
# No pyproject.toml found!

The project metadata file could not be read. Targets still run, but
PROJECT_NAME and PROJECT_VERSION will not be available to scripts.

## Things you can try:
- Create a pyproject.toml in the project directory:
~~~toml
[project]
name = "myproject"
version = "0.1.0"
~~~

- Or with poetry:
~~~
$ poetry init
~~~`,
	}

	toolsNotSatisfiedIssue = &Issue{
		id: ToolsNotSatisfiedId,
		mdMsg: `
# Tool requirements not satisfied!

The target cannot run because some required tools are not available.

## Things you can try:
- Install the missing tools listed above
- For Python tools, install them into the project environment:
~~~
$ pywork run install
~~~

- Check that the tools are in your PATH
- Update your workfile to remove unnecessary tool requirements`,
	}

	platformNotSupportedIssue = &Issue{
		id: PlatformNotSupportedId,
		mdMsg: `
# Platform not supported!

This target cannot run on your current operating system.

## Things you can try:
- Check the target's 'platforms' setting in your workfile
- Run this target on a supported operating system
- Add a platform entry with OS-specific environment overrides:
~~~cue
targets: [
  {
    name: "open-docs"
    script: "$OPENER htmlcov/index.html"
    platforms: [
      {name: "linux", env: {OPENER: "xdg-open"}},
      {name: "macos", env: {OPENER: "open"}},
    ]
  },
]
~~~`,
	}

	issues = map[Id]*Issue{
		workfileNotFoundIssue.Id():      workfileNotFoundIssue,
		workfileParseErrorIssue.Id():    workfileParseErrorIssue,
		targetNotFoundIssue.Id():        targetNotFoundIssue,
		runtimeNotAvailableIssue.Id():   runtimeNotAvailableIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		dependencyCycleIssue.Id():       dependencyCycleIssue,
		shellNotFoundIssue.Id():         shellNotFoundIssue,
		venvNameEmptyIssue.Id():         venvNameEmptyIssue,
		venvActiveIssue.Id():            venvActiveIssue,
		pythonNotFoundIssue.Id():        pythonNotFoundIssue,
		pyprojectNotFoundIssue.Id():     pyprojectNotFoundIssue,
		toolsNotSatisfiedIssue.Id():     toolsNotSatisfiedIssue,
		platformNotSupportedIssue.Id():  platformNotSupportedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
