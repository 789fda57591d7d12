package msvcdef

import (
	"log/slog"
	"math"

	"github.com/gtker/msvc-def/internal/scanner"
	"github.com/gtker/msvc-def/internal/types"
)

// parseRef drives the scanner over every statement, validating and
// filling header fields eagerly. Section entry lines are only located
// here; their grammar runs when a producer reaches them.
func parseRef(data []byte, logger *slog.Logger) (FileRef, error) {
	b := builder{
		file:   FileRef{source: data, logger: logger},
		src:    data,
		fields: make([]scanner.Field, 0, 8),
		Logger: types.Logger{L: logger},
	}
	sc := scanner.New(data, logger)
	statements := 0
	for {
		st, ok := sc.Next()
		if !ok {
			break
		}
		if err := b.statement(st); err != nil {
			return FileRef{}, err
		}
		statements++
	}
	b.Log(slog.LevelDebug, "header parsed",
		slog.Int("statements", statements),
		slog.String("kind", b.file.Kind.String()))
	return b.file, nil
}

// builder populates FileRef header fields statement by statement.
// Duplicate detection rides on field presence: a once-only statement has
// already occurred exactly when its field is set.
type builder struct {
	file    FileRef
	src     []byte
	fields  []scanner.Field
	section scanner.Keyword // open section block, KwNone outside
	types.Logger
}

func (b *builder) statement(st scanner.Statement) error {
	switch st.Keyword {
	case scanner.KwExports, scanner.KwSections:
		b.section = st.Keyword
		return nil
	case scanner.KwNone:
		if b.section == scanner.KwNone {
			return errAt(MalformedStatement, st.Start(), st.Line)
		}
		return nil
	}

	// Every other keyword closes an open section block.
	b.section = scanner.KwNone
	switch st.Keyword {
	case scanner.KwLibrary, scanner.KwName:
		return b.moduleHeader(st)
	case scanner.KwDescription:
		return b.description(st)
	case scanner.KwStub:
		return b.stub(st)
	case scanner.KwVersion:
		return b.version(st)
	case scanner.KwHeapsize:
		return b.sizePair(st, &b.file.HeapReserve, &b.file.HeapCommit)
	case scanner.KwStacksize:
		return b.sizePair(st, &b.file.StackReserve, &b.file.StackCommit)
	default: // scanner.KwReserved: recognized, no modeled field
		return nil
	}
}

// moduleHeader parses LIBRARY and NAME lines:
//
//	LIBRARY [name] [BASE=address]
//
// The name may be bare or double-quoted; BASE accepts decimal or
// 0x-prefixed hex. LIBRARY and NAME are mutually exclusive and once-only.
func (b *builder) moduleHeader(st scanner.Statement) error {
	if b.file.Kind != ModuleKindNone {
		return errAt(DuplicateStatement, st.Start(), st.Line)
	}
	if st.Keyword == scanner.KwLibrary {
		b.file.Kind = ModuleKindLibrary
	} else {
		b.file.Kind = ModuleKindProgram
	}

	b.fields = scanner.SplitFields(b.src, st.Args, "=", b.fields[:0])
	fields := b.fields
	i := 0
	if len(fields) > 0 && !startsBaseClause(b.src, fields, 0) {
		name, err := nameField(b.src, fields[0], MalformedStatement, st.Line)
		if err != nil {
			return err
		}
		b.file.Name = name
		i = 1
	}
	if i < len(fields) {
		if !startsBaseClause(b.src, fields, i) {
			return errAt(MalformedStatement, fields[i].Span.Start, st.Line)
		}
		i += 2 // BASE =
		if i >= len(fields) {
			return errAt(MalformedStatement, st.Args.End, st.Line)
		}
		base, ok := baseAddressField(b.src, fields[i])
		if !ok {
			return errAt(MalformedStatement, fields[i].Span.Start, st.Line)
		}
		b.file.BaseAddress = &base
		i++
	}
	if i != len(fields) {
		return errAt(MalformedStatement, fields[i].Span.Start, st.Line)
	}
	return nil
}

// startsBaseClause reports whether fields[at:] begins with "BASE =".
func startsBaseClause(src []byte, fields []scanner.Field, at int) bool {
	return at+1 < len(fields) &&
		wordField(src, fields[at], "BASE") &&
		punctField(src, fields[at+1], '=')
}

func (b *builder) description(st scanner.Statement) error {
	if b.file.Description != nil {
		return errAt(DuplicateStatement, st.Start(), st.Line)
	}
	text := stripQuotes(st.Args.Bytes(b.src))
	if len(text) == 0 {
		return errAt(MalformedStatement, st.Args.Start, st.Line)
	}
	b.file.Description = text
	return nil
}

// stub parses STUB:filename; the colon designator is required.
func (b *builder) stub(st scanner.Statement) error {
	if b.file.Stub != nil {
		return errAt(DuplicateStatement, st.Start(), st.Line)
	}
	b.fields = scanner.SplitFields(b.src, st.Args, ":", b.fields[:0])
	fields := b.fields
	if len(fields) != 2 || !punctField(b.src, fields[0], ':') {
		return errAt(MalformedStatement, st.Args.Start, st.Line)
	}
	name := fields[1].Bytes(b.src)
	if len(name) == 0 {
		return errAt(MalformedStatement, fields[1].Span.Start, st.Line)
	}
	b.file.Stub = name
	return nil
}

// version parses VERSION major[.minor], each 0-65535 decimal.
func (b *builder) version(st scanner.Statement) error {
	if b.file.MajorVersion != nil {
		return errAt(DuplicateStatement, st.Start(), st.Line)
	}
	b.fields = scanner.SplitFields(b.src, st.Args, ".", b.fields[:0])
	fields := b.fields
	if len(fields) != 1 && len(fields) != 3 {
		return errAt(MalformedStatement, st.Args.Start, st.Line)
	}
	major, ok := u16Field(b.src, fields[0])
	if !ok {
		return errAt(MalformedStatement, fields[0].Span.Start, st.Line)
	}
	if len(fields) == 3 {
		if !punctField(b.src, fields[1], '.') {
			return errAt(MalformedStatement, fields[1].Span.Start, st.Line)
		}
		minor, ok := u16Field(b.src, fields[2])
		if !ok {
			return errAt(MalformedStatement, fields[2].Span.Start, st.Line)
		}
		b.file.MinorVersion = &minor
	}
	b.file.MajorVersion = &major
	return nil
}

// sizePair parses HEAPSIZE and STACKSIZE arguments: reserve[,commit],
// unsigned decimal.
func (b *builder) sizePair(st scanner.Statement, reserve, commit **uint64) error {
	if *reserve != nil {
		return errAt(DuplicateStatement, st.Start(), st.Line)
	}
	b.fields = scanner.SplitFields(b.src, st.Args, ",", b.fields[:0])
	fields := b.fields
	if len(fields) != 1 && len(fields) != 3 {
		return errAt(MalformedStatement, st.Args.Start, st.Line)
	}
	r, ok := numericField(b.src, fields[0])
	if !ok {
		return errAt(MalformedStatement, fields[0].Span.Start, st.Line)
	}
	if len(fields) == 3 {
		if !punctField(b.src, fields[1], ',') {
			return errAt(MalformedStatement, fields[1].Span.Start, st.Line)
		}
		c, ok := numericField(b.src, fields[2])
		if !ok {
			return errAt(MalformedStatement, fields[2].Span.Start, st.Line)
		}
		*commit = &c
	}
	*reserve = &r
	return nil
}

// exportFromFields applies the fixed-order export entry grammar:
//
//	name [= internal] [@ordinal [NONAME]] [PRIVATE] [DATA]
//
// Modifiers out of that order are rejected.
func exportFromFields(src []byte, fields []scanner.Field, line int) (ExportRef, error) {
	if len(fields) == 0 {
		return ExportRef{}, &ParseError{Kind: MalformedExportEntry, Line: line}
	}
	name, err := nameField(src, fields[0], MalformedExportEntry, line)
	if err != nil {
		return ExportRef{}, err
	}
	ex := ExportRef{Name: name}
	i := 1
	if i < len(fields) && punctField(src, fields[i], '=') {
		i++
		if i >= len(fields) {
			return ExportRef{}, errAt(MalformedExportEntry, fields[i-1].Span.End, line)
		}
		internal, err := nameField(src, fields[i], MalformedExportEntry, line)
		if err != nil {
			return ExportRef{}, err
		}
		ex.InternalName = internal
		i++
	}
	if i < len(fields) && !fields[i].Quoted && src[fields[i].Span.Start] == '@' {
		ord, ok := parseOrdinal(fields[i].Bytes(src))
		if !ok {
			return ExportRef{}, errAt(InvalidOrdinal, fields[i].Span.Start, line)
		}
		ex.Ordinal = &ord
		i++
		if i < len(fields) && wordField(src, fields[i], "NONAME") {
			ex.NoName = true
			i++
		}
	}
	if i < len(fields) && wordField(src, fields[i], "PRIVATE") {
		ex.Private = true
		i++
	}
	if i < len(fields) && wordField(src, fields[i], "DATA") {
		ex.Data = true
		i++
	}
	if i != len(fields) {
		f := fields[i]
		if wordField(src, f, "NONAME") && ex.Ordinal == nil {
			return ExportRef{}, errAt(InvalidOrdinal, f.Span.Start, line)
		}
		return ExportRef{}, errAt(MalformedExportEntry, f.Span.Start, line)
	}
	return ex, nil
}

// sectionFromFields applies the section entry grammar:
//
//	name [CLASS classname] [READ] [WRITE] [EXECUTE] [SHARED]
//
// Access flags may repeat or reorder; the deprecated CLASS attribute is
// parsed and discarded.
func sectionFromFields(src []byte, fields []scanner.Field, line int) (SectionRef, error) {
	if len(fields) == 0 {
		return SectionRef{}, &ParseError{Kind: MalformedSectionEntry, Line: line}
	}
	name, err := nameField(src, fields[0], MalformedSectionEntry, line)
	if err != nil {
		return SectionRef{}, err
	}
	sec := SectionRef{Name: name}
	i := 1
	if i < len(fields) && wordField(src, fields[i], "CLASS") {
		if i+1 >= len(fields) {
			return SectionRef{}, errAt(MalformedSectionEntry, fields[i].Span.End, line)
		}
		i += 2 // CLASS classname
	}
	for ; i < len(fields); i++ {
		switch {
		case wordField(src, fields[i], "READ"):
			sec.Read = true
		case wordField(src, fields[i], "WRITE"):
			sec.Write = true
		case wordField(src, fields[i], "EXECUTE"):
			sec.Execute = true
		case wordField(src, fields[i], "SHARED"):
			sec.Shared = true
		default:
			return SectionRef{}, errAt(MalformedSectionEntry, fields[i].Span.Start, line)
		}
	}
	return sec, nil
}

// nameField validates a symbol or module name token. Unquoted names must
// not read as keywords, punctuation, or an ordinal; such text must be
// double-quoted to serve as a name.
func nameField(src []byte, f scanner.Field, kind ErrorKind, line int) ([]byte, error) {
	text := f.Bytes(src)
	if f.Quoted {
		if len(text) == 0 {
			return nil, errAt(kind, f.Span.Start, line)
		}
		return text, nil
	}
	if text[0] == '@' || text[0] == '=' || text[0] == ':' || text[0] == ',' {
		return nil, errAt(kind, f.Span.Start, line)
	}
	if _, isKeyword := scanner.LookupKeyword(text); isKeyword {
		return nil, errAt(kind, f.Span.Start, line)
	}
	return text, nil
}

// wordField reports ASCII case-insensitive equality between an unquoted
// field and word, which must be given uppercase.
func wordField(src []byte, f scanner.Field, word string) bool {
	if f.Quoted {
		return false
	}
	text := f.Bytes(src)
	if len(text) != len(word) {
		return false
	}
	for i := 0; i < len(text); i++ {
		b := text[i]
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		if b != word[i] {
			return false
		}
	}
	return true
}

// punctField reports whether f is the single punctuation byte p.
func punctField(src []byte, f scanner.Field, p byte) bool {
	return !f.Quoted && f.Span.Len() == 1 && src[f.Span.Start] == p
}

// numericField parses an unquoted unsigned decimal field.
func numericField(src []byte, f scanner.Field) (uint64, bool) {
	if f.Quoted {
		return 0, false
	}
	return parseUint(f.Bytes(src))
}

// u16Field parses an unquoted unsigned decimal field capped at 65535.
func u16Field(src []byte, f scanner.Field) (uint16, bool) {
	v, ok := numericField(src, f)
	if !ok || v > math.MaxUint16 {
		return 0, false
	}
	return uint16(v), true
}

// baseAddressField parses a BASE argument: decimal or 0x-prefixed hex.
func baseAddressField(src []byte, f scanner.Field) (uint64, bool) {
	if f.Quoted {
		return 0, false
	}
	text := f.Bytes(src)
	if len(text) > 2 && text[0] == '0' && text[1] == 'x' {
		return parseHex(text[2:])
	}
	return parseUint(text)
}

// parseOrdinal parses "@N" with N decimal in 1-65535.
func parseOrdinal(text []byte) (uint16, bool) {
	v, ok := parseUint(text[1:])
	if !ok || v == 0 || v > math.MaxUint16 {
		return 0, false
	}
	return uint16(v), true
}

// parseUint accumulates an unsigned decimal value without allocating.
func parseUint(text []byte) (uint64, bool) {
	if len(text) == 0 {
		return 0, false
	}
	var v uint64
	for _, b := range text {
		if b < '0' || b > '9' {
			return 0, false
		}
		d := uint64(b - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// parseHex accumulates an unsigned hexadecimal value without allocating.
func parseHex(text []byte) (uint64, bool) {
	if len(text) == 0 {
		return 0, false
	}
	var v uint64
	for _, b := range text {
		var d uint64
		switch {
		case '0' <= b && b <= '9':
			d = uint64(b - '0')
		case 'a' <= b && b <= 'f':
			d = uint64(b-'a') + 10
		case 'A' <= b && b <= 'F':
			d = uint64(b-'A') + 10
		default:
			return 0, false
		}
		if v > math.MaxUint64>>4 {
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}

// stripQuotes removes one matched pair of surrounding quotes, double or
// single. Unmatched quotes are left in place.
func stripQuotes(text []byte) []byte {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first == last && (first == '"' || first == '\'') {
			return text[1 : len(text)-1]
		}
	}
	return text
}
