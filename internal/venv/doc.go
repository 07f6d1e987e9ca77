// SPDX-License-Identifier: MPL-2.0

// Package venv models Python virtual environments: platform-correct
// interpreter paths, creation through the base interpreter, and guarded
// removal that refuses to delete an environment that is currently active.
package venv
