package msvcdef

import (
	"fmt"

	"github.com/gtker/msvc-def/internal/types"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// MalformedStatement is a keyword line whose arguments do not match
	// the statement grammar, or a stray line outside any section.
	MalformedStatement ErrorKind = iota
	// MalformedExportEntry is an EXPORTS entry that omits the exported
	// name or breaks the fixed modifier order.
	MalformedExportEntry
	// MalformedSectionEntry is a SECTIONS entry with an unknown attribute.
	MalformedSectionEntry
	// InvalidOrdinal is an export ordinal outside 1-65535, a non-decimal
	// ordinal, or NONAME without an ordinal.
	InvalidOrdinal
	// DuplicateStatement is a second occurrence of a once-only statement.
	DuplicateStatement
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case MalformedStatement:
		return "malformed statement"
	case MalformedExportEntry:
		return "malformed export entry"
	case MalformedSectionEntry:
		return "malformed section entry"
	case InvalidOrdinal:
		return "invalid ordinal"
	case DuplicateStatement:
		return "duplicate statement"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError describes why parsing failed.
type ParseError struct {
	Kind   ErrorKind
	Offset int // byte offset of the offending token
	Line   int // 1-based line number
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d (offset %d)", e.Kind, e.Line, e.Offset)
}

// errAt builds a ParseError pointing at a source position.
func errAt(kind ErrorKind, offset types.ByteOffset, line int) *ParseError {
	return &ParseError{Kind: kind, Offset: int(offset), Line: line}
}
