// SPDX-License-Identifier: MPL-2.0

// Package runtime provides the target execution runtime interface and
// implementations.
//
// Two engines are available: the native runtime dispatches scripts to the
// system shell, while the virtual runtime interprets them in-process with
// mvdan/sh so targets run identically on hosts without a POSIX shell.
// Exit codes of wrapped tools propagate untouched; the runner performs no
// result interpretation.
package runtime
