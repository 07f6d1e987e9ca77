// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os/exec"

	"pywork/pkg/workfile"
)

// ToolError reports a tool dependency that failed validation.
type ToolError struct {
	// Tool is the name of the missing or failing tool.
	Tool string
	// Target is the target that declared the requirement.
	Target string
	// Reason describes why validation failed.
	Reason string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("target '%s' requires tool '%s': %s", e.Target, e.Tool, e.Reason)
}

// ValidateTools checks every tool dependency declared by the context's
// target. Plain declarations are resolved with a PATH lookup; tools with
// a check script run it in the virtual runtime and compare exit codes.
func ValidateTools(ctx *ExecutionContext) error {
	if ctx.Target == nil {
		return nil
	}

	for _, tool := range ctx.Target.Tools {
		if err := validateTool(ctx, tool); err != nil {
			return err
		}
	}
	return nil
}

func validateTool(ctx *ExecutionContext, tool workfile.Tool) error {
	if tool.CheckScript == "" {
		if _, err := exec.LookPath(tool.Name); err != nil {
			return &ToolError{
				Tool:   tool.Name,
				Target: ctx.Target.Name,
				Reason: "not found in PATH",
			}
		}
		return nil
	}

	expected := 0
	if tool.ExpectedCode != nil {
		expected = *tool.ExpectedCode
	}

	checkTarget := &workfile.Target{
		Name:      ctx.Target.Name + ":check:" + tool.Name,
		Script:    tool.CheckScript,
		NeedsVenv: ctx.Target.NeedsVenv,
	}

	checkCtx := *ctx
	checkCtx.Target = checkTarget
	checkCtx.PositionalArgs = nil

	result := NewVirtualRuntime().ExecuteCapture(&checkCtx)
	if result.Error != nil {
		return &ToolError{
			Tool:   tool.Name,
			Target: ctx.Target.Name,
			Reason: fmt.Sprintf("check script failed: %v", result.Error),
		}
	}
	if result.ExitCode != expected {
		return &ToolError{
			Tool:   tool.Name,
			Target: ctx.Target.Name,
			Reason: fmt.Sprintf("check script exited with code %d, expected %d", result.ExitCode, expected),
		}
	}
	return nil
}
