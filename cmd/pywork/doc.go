// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pywork.
//
// This package implements the Cobra command hierarchy for the pywork CLI,
// including the root command and subcommands for target execution, virtual
// environment management, workfile scaffolding, and configuration.
package cmd
