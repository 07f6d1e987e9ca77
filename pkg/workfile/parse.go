// SPDX-License-Identifier: MPL-2.0

package workfile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"pywork/pkg/cueutil"
)

//go:embed workfile_schema.cue
var workfileSchema string

// Parse reads and parses a workfile from the given path.
func Parse(path string) (*Workfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workfile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses workfile content from bytes.
// Uses cueutil.ParseAndDecodeString for the 3-step CUE parsing flow:
// compile schema → compile user data → validate and decode.
func ParseBytes(data []byte, path string) (*Workfile, error) {
	result, err := cueutil.ParseAndDecodeString[Workfile](
		workfileSchema,
		data,
		"#Workfile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	wf := result.Value
	wf.FilePath = path

	if errs := wf.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return wf, nil
}

// Discover walks from dir upward looking for a workfile, returning the
// path of the first match. It checks "workfile.cue" and bare "workfile"
// in each directory up to the filesystem root.
func Discover(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	candidates := []string{DefaultFileName, WorkfileName}
	for {
		for _, name := range candidates {
			path := filepath.Join(abs, name)
			if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no workfile found in %s or any parent directory", dir)
		}
		abs = parent
	}
}
