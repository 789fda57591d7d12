package msvcdef

import (
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/gtker/msvc-def/internal/scanner"
	"github.com/gtker/msvc-def/internal/types"
)

// ModuleKind records which header statement opened the file.
type ModuleKind int

const (
	// ModuleKindNone means neither LIBRARY nor NAME appeared.
	ModuleKindNone ModuleKind = iota
	// ModuleKindProgram means the file declared NAME.
	ModuleKindProgram
	// ModuleKindLibrary means the file declared LIBRARY.
	ModuleKindLibrary
)

// IsLibrary reports whether the file declared LIBRARY.
func (k ModuleKind) IsLibrary() bool {
	return k == ModuleKindLibrary
}

// String returns the kind name.
func (k ModuleKind) String() string {
	switch k {
	case ModuleKindNone:
		return "none"
	case ModuleKindProgram:
		return "program"
	case ModuleKindLibrary:
		return "library"
	default:
		return fmt.Sprintf("ModuleKind(%d)", int(k))
	}
}

// FileRef is the zero-copy result of ParseRef. Every []byte field is a
// subslice of the input buffer; nil marks an absent statement. The input
// must stay alive and unmodified while the FileRef or any producer
// derived from it is in use.
type FileRef struct {
	// Kind tells whether the file opened with LIBRARY or NAME.
	Kind ModuleKind
	// Name is the LIBRARY or NAME argument with quotes stripped.
	Name []byte
	// BaseAddress is the BASE=addr clause of the header line.
	BaseAddress *uint64
	// HeapReserve and HeapCommit are the HEAPSIZE arguments; commit is
	// nil when the statement gave only a reserve size.
	HeapReserve *uint64
	HeapCommit  *uint64
	// StackReserve and StackCommit mirror STACKSIZE the same way.
	StackReserve *uint64
	StackCommit  *uint64
	// MajorVersion and MinorVersion are the VERSION arguments.
	MajorVersion *uint16
	MinorVersion *uint16
	// Description is the DESCRIPTION argument with quotes stripped.
	Description []byte
	// Stub is the STUB filename.
	Stub []byte

	source []byte
	logger *slog.Logger
}

// Exports returns a producer over the file's export entries in
// declaration order. Every call returns an independent producer starting
// at the first entry.
func (f FileRef) Exports() *Exports {
	return &Exports{entries: newEntryScanner(f.source, f.logger, scanner.KwExports)}
}

// Sections returns a producer over the file's section entries in
// declaration order. Every call returns an independent producer starting
// at the first entry.
func (f FileRef) Sections() *Sections {
	return &Sections{entries: newEntryScanner(f.source, f.logger, scanner.KwSections)}
}

// ExportRef is one export declaration. Name and InternalName alias the
// input buffer.
type ExportRef struct {
	// Name is the symbol name visible to importers.
	Name []byte
	// InternalName is the in-module symbol when the entry uses
	// name=internal syntax, nil otherwise.
	InternalName []byte
	// Ordinal is the explicit @ordinal, nil when the linker assigns one.
	Ordinal *uint16
	// NoName suppresses the name from the export table, so importers
	// must look the symbol up by ordinal.
	NoName bool
	// Private keeps the entry out of the generated import library.
	Private bool
	// Data marks the export as a data symbol rather than code.
	Data bool
}

// SectionRef is one section access entry. Name aliases the input buffer.
type SectionRef struct {
	Name    []byte
	Read    bool
	Write   bool
	Execute bool
	Shared  bool
}

// Exports yields ExportRef values one entry line at a time.
// Obtain one from FileRef.Exports; the zero value is an empty sequence.
type Exports struct {
	entries entryScanner
	fields  []scanner.Field
}

// Next decodes the next export entry. It returns io.EOF once input is
// exhausted. A *ParseError reports a malformed entry; calling Next again
// continues with the line after it.
func (e *Exports) Next() (ExportRef, error) {
	st, ok := e.entries.next()
	if !ok {
		return ExportRef{}, io.EOF
	}
	e.fields = scanner.SplitFields(e.entries.source, st.Args, "=", e.fields[:0])
	ref, err := exportFromFields(e.entries.source, e.fields, st.Line)
	if err != nil {
		return ExportRef{}, err
	}
	if e.entries.TraceEnabled() {
		e.entries.Trace("export entry",
			slog.String("name", string(ref.Name)),
			slog.Int("line", st.Line))
	}
	return ref, nil
}

// All returns a single-use iterator over the remaining entries. Malformed
// entries are yielded with a non-nil error and iteration continues past
// them; it stops at end of input or when the caller breaks.
func (e *Exports) All() iter.Seq2[ExportRef, error] {
	return func(yield func(ExportRef, error) bool) {
		for {
			ref, err := e.Next()
			if err == io.EOF {
				return
			}
			if !yield(ref, err) {
				return
			}
		}
	}
}

// Sections yields SectionRef values one entry line at a time.
// Obtain one from FileRef.Sections; the zero value is an empty sequence.
type Sections struct {
	entries entryScanner
	fields  []scanner.Field
}

// Next decodes the next section entry. It returns io.EOF once input is
// exhausted. A *ParseError reports a malformed entry; calling Next again
// continues with the line after it.
func (s *Sections) Next() (SectionRef, error) {
	st, ok := s.entries.next()
	if !ok {
		return SectionRef{}, io.EOF
	}
	s.fields = scanner.SplitFields(s.entries.source, st.Args, "", s.fields[:0])
	ref, err := sectionFromFields(s.entries.source, s.fields, st.Line)
	if err != nil {
		return SectionRef{}, err
	}
	if s.entries.TraceEnabled() {
		s.entries.Trace("section entry",
			slog.String("name", string(ref.Name)),
			slog.Int("line", st.Line))
	}
	return ref, nil
}

// All returns a single-use iterator over the remaining entries, with the
// same error behavior as Exports.All.
func (s *Sections) All() iter.Seq2[SectionRef, error] {
	return func(yield func(SectionRef, error) bool) {
		for {
			ref, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(ref, err) {
				return
			}
		}
	}
}

// entryScanner walks the source yielding entry lines that belong to
// blocks opened by one section keyword. The keyword line itself may carry
// the block's first entry; any other keyword line closes the block.
type entryScanner struct {
	sc      *scanner.Scanner
	source  []byte
	keyword scanner.Keyword
	inBlock bool
	types.Logger
}

func newEntryScanner(source []byte, logger *slog.Logger, kw scanner.Keyword) entryScanner {
	return entryScanner{
		sc:      scanner.New(source, logger),
		source:  source,
		keyword: kw,
		Logger:  types.Logger{L: logger},
	}
}

func (e *entryScanner) next() (scanner.Statement, bool) {
	if e.sc == nil {
		return scanner.Statement{}, false
	}
	for {
		st, ok := e.sc.Next()
		if !ok {
			return scanner.Statement{}, false
		}
		switch {
		case st.Keyword == e.keyword:
			e.inBlock = true
			if !st.Args.IsEmpty() {
				return st, true
			}
		case st.Keyword == scanner.KwNone:
			if e.inBlock {
				return st, true
			}
		default:
			e.inBlock = false
		}
	}
}
