// Package msvcdef parses Microsoft module-definition (.def) files.
//
// A .def file tells the linker which symbols a module exports, under what
// name, ordinal, and attributes, along with a handful of scalar settings
// (HEAPSIZE, STACKSIZE, VERSION, STUB, ...). This package reads the
// canonical grammar in a single forward pass and offers the result in two
// isomorphic shapes:
//
//   - [ParseRef] returns a [FileRef] whose text fields alias the input
//     buffer. Export and section entries are decoded lazily, one line per
//     step, through the producers returned by [FileRef.Exports] and
//     [FileRef.Sections].
//   - [Parse] returns an owned [*File] with all text copied and all
//     entries materialized eagerly; the first malformed entry fails the
//     whole parse.
//
// Statement keywords are matched case-insensitively. Lines whose first
// non-blank byte is ';' are comments; an unquoted ';' elsewhere starts a
// trailing comment. Names containing spaces or semicolons, and names that
// would read as keywords, must be double-quoted.
package msvcdef

import "log/slog"

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (statements, export entries).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Option configures Parse and ParseRef.
type Option func(*parseConfig)

type parseConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *parseConfig) { c.logger = logger }
}

// ParseRef parses .def source into a FileRef borrowing from data.
// The caller must keep data alive and unmodified while the FileRef or any
// producer derived from it is in use.
//
// Header statements are validated immediately; a malformed EXPORTS or
// SECTIONS entry is reported later, by the producer that reaches it.
func ParseRef(data []byte, opts ...Option) (FileRef, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return parseRef(data, cfg.logger)
}

// Parse parses .def source into an owned File with no ties to data.
// Unlike ParseRef it fails on the first error anywhere in the file,
// including malformed section and export entries.
func Parse(data []byte, opts ...Option) (*File, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	ref, err := parseRef(data, cfg.logger)
	if err != nil {
		return nil, err
	}
	return ref.materialize()
}
