// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	loggerOnce sync.Once
	cmdLogger  *log.Logger
)

// logger returns the shared diagnostics logger. It logs to stderr so it
// never mixes with target output, and its level follows the --verbose
// flag: warnings always, debug details only when verbose.
func logger() *log.Logger {
	loggerOnce.Do(func() {
		cmdLogger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "pywork",
		})
		if verbose {
			cmdLogger.SetLevel(log.DebugLevel)
		} else {
			cmdLogger.SetLevel(log.WarnLevel)
		}
	})
	return cmdLogger
}
