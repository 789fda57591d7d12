// Package scanner reads module-definition source text line by line and
// classifies each significant line as a keyword statement or a section
// entry. Blank lines and comment lines are skipped; inline comments are
// stripped outside quotes. Statements carry spans into the source buffer,
// never copies.
package scanner

import (
	"bytes"
	"log/slog"

	"github.com/gtker/msvc-def/internal/types"
)

// utf8BOM is skipped when it prefixes the input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Statement is one significant line of a .def file.
type Statement struct {
	Keyword Keyword
	KwSpan  types.Span // the keyword token; empty when Keyword == KwNone
	Args    types.Span // argument text after the keyword, comment-stripped and trimmed
	Line    int        // 1-based line number
}

// Start returns the byte offset of the statement's first significant byte.
func (st Statement) Start() types.ByteOffset {
	if st.Keyword == KwNone {
		return st.Args.Start
	}
	return st.KwSpan.Start
}

// Scanner walks .def source text line by line.
type Scanner struct {
	source []byte
	pos    int
	line   int
	types.Logger
}

// New returns a Scanner over the given source bytes.
func New(source []byte, logger *slog.Logger) *Scanner {
	s := &Scanner{
		source: source,
		Logger: types.Logger{L: logger},
	}
	if bytes.HasPrefix(source, utf8BOM) {
		s.pos = len(utf8BOM)
	}
	s.Log(slog.LevelDebug, "scanner initialized", slog.Int("bytes", len(source)))
	return s
}

// Source returns the buffer that statement spans index into.
func (s *Scanner) Source() []byte {
	return s.source
}

// Next returns the next significant statement.
// ok is false once all input is consumed.
func (s *Scanner) Next() (st Statement, ok bool) {
	for s.pos < len(s.source) {
		s.line++
		start, end := s.consumeLine()
		st, significant := s.classify(start, end)
		if !significant {
			continue
		}
		st.Line = s.line
		s.traceStatement(st)
		return st, true
	}
	return Statement{}, false
}

// consumeLine advances past the current line and returns the content
// range, excluding the line terminator.
func (s *Scanner) consumeLine() (start, end int) {
	start = s.pos
	idx := bytes.IndexByte(s.source[s.pos:], '\n')
	if idx < 0 {
		end = len(s.source)
		s.pos = end
	} else {
		end = s.pos + idx
		s.pos = end + 1
	}
	if end > start && s.source[end-1] == '\r' {
		end--
	}
	return start, end
}

// classify trims the line, strips comments, and recognizes the leading
// keyword. significant is false for blank and comment-only lines.
func (s *Scanner) classify(start, end int) (st Statement, significant bool) {
	i := start
	for i < end && isSpace(s.source[i]) {
		i++
	}
	if i == end || s.source[i] == ';' {
		return Statement{}, false
	}

	// An unquoted ; starts a trailing comment.
	var quote byte
comment:
	for j := i; j < end; j++ {
		b := s.source[j]
		switch {
		case quote != 0:
			if b == quote {
				quote = 0
			}
		case b == '"' || b == '\'':
			quote = b
		case b == ';':
			end = j
			break comment
		}
	}
	for end > i && isSpace(s.source[end-1]) {
		end--
	}
	if i == end {
		return Statement{}, false
	}

	if s.source[i] == '"' {
		return Statement{
			Keyword: KwNone,
			Args:    types.NewSpan(types.ByteOffset(i), types.ByteOffset(end)),
		}, true
	}

	kwEnd := i
	for kwEnd < end && !isSpace(s.source[kwEnd]) && s.source[kwEnd] != ':' && s.source[kwEnd] != '=' {
		kwEnd++
	}
	kw, found := LookupKeyword(s.source[i:kwEnd])
	if !found {
		return Statement{
			Keyword: KwNone,
			Args:    types.NewSpan(types.ByteOffset(i), types.ByteOffset(end)),
		}, true
	}

	argsStart := kwEnd
	for argsStart < end && isSpace(s.source[argsStart]) {
		argsStart++
	}
	return Statement{
		Keyword: kw,
		KwSpan:  types.NewSpan(types.ByteOffset(i), types.ByteOffset(kwEnd)),
		Args:    types.NewSpan(types.ByteOffset(argsStart), types.ByteOffset(end)),
	}, true
}

func (s *Scanner) traceStatement(st Statement) {
	if s.TraceEnabled() {
		s.Trace("statement",
			slog.Int("line", st.Line),
			slog.String("keyword", st.Keyword.String()),
			slog.Int("start", int(st.Start())),
			slog.Int("end", int(st.Args.End)))
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
