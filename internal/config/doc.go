// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pywork/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/pywork/config.cue on macOS, %APPDATA%\pywork\config.cue
// on Windows). The package provides type-safe configuration access and supports default
// runtime selection, virtual environment naming, watch-mode tuning, and UI settings.
// Values can also be overridden through PYWORK_* environment variables.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to
// ensure type safety and provide clear error messages for invalid configurations.
package config
