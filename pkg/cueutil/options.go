// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps the size of user-provided CUE files. Workfiles
// and config files are small by nature; anything above this limit is
// almost certainly a mistake (or an attempt to exhaust memory).
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

// Option configures a ParseAndDecode call.
type Option func(*options)

type options struct {
	// filename is used in error messages.
	filename string
	// maxFileSize is the upper bound on input size in bytes.
	maxFileSize int64
	// concrete requires all values to be concrete during validation.
	concrete bool
}

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// WithFilename sets the filename reported in parse and validation errors.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithMaxFileSize overrides the input size limit.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// WithConcrete controls whether validation requires concrete values.
// Concrete validation is the default; disable it when decoding partial
// documents that intentionally leave fields open.
func WithConcrete(concrete bool) Option {
	return func(o *options) {
		o.concrete = concrete
	}
}
