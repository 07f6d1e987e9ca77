// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
		wantErr bool
	}{
		{
			name:    "simple assignment",
			content: "KEY=value",
			want:    map[string]string{"KEY": "value"},
		},
		{
			name:    "comments and blank lines",
			content: "# comment\n\nKEY=value\n",
			want:    map[string]string{"KEY": "value"},
		},
		{
			name:    "export prefix",
			content: "export KEY=value",
			want:    map[string]string{"KEY": "value"},
		},
		{
			name:    "double quoted with escapes",
			content: `KEY="line1\nline2\t\"quoted\""`,
			want:    map[string]string{"KEY": "line1\nline2\t\"quoted\""},
		},
		{
			name:    "single quoted literal",
			content: `KEY='no\nescapes'`,
			want:    map[string]string{"KEY": `no\nescapes`},
		},
		{
			name:    "empty value",
			content: "KEY=",
			want:    map[string]string{"KEY": ""},
		},
		{
			name:    "value with equals sign",
			content: "KEY=a=b",
			want:    map[string]string{"KEY": "a=b"},
		},
		{
			name:    "missing equals",
			content: "JUSTAKEY",
			wantErr: true,
		},
		{
			name:    "empty key",
			content: "=value",
			wantErr: true,
		},
		{
			name:    "unsupported escape",
			content: `KEY="\x41"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := make(map[string]string)
			err := ParseEnvFile(env, []byte(tt.content), ".env")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEnvFile error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			for k, v := range tt.want {
				if env[k] != v {
					t.Errorf("env[%q] = %q, want %q", k, env[k], v)
				}
			}
		})
	}
}

func TestLoadEnvFileOptional(t *testing.T) {
	env := make(map[string]string)

	if err := LoadEnvFile(env, filepath.Join(t.TempDir(), "missing.env")+"?", ""); err != nil {
		t.Errorf("optional missing file should not error, got: %v", err)
	}

	if err := LoadEnvFile(env, filepath.Join(t.TempDir(), "missing.env"), ""); err == nil {
		t.Error("required missing file should error")
	}
}

func TestLoadEnvFileRelative(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.env"), []byte("ROLE=worker\n"), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	env := make(map[string]string)
	if err := LoadEnvFile(env, "app.env", dir); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if env["ROLE"] != "worker" {
		t.Errorf("ROLE = %q, want 'worker'", env["ROLE"])
	}
}
