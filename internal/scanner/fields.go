package scanner

import (
	"strings"

	"github.com/gtker/msvc-def/internal/types"
)

// Field is one argument token of a statement.
type Field struct {
	Span   types.Span
	Quoted bool // enclosed in double quotes; Span excludes the quotes
}

// Bytes returns the field text within source.
func (f Field) Bytes(source []byte) []byte {
	return f.Span.Bytes(source)
}

// SplitFields tokenizes a statement's argument text, appending the tokens
// to fields and returning the extended slice. Tokens are separated by
// whitespace, and each byte of punct forms a standalone single-byte
// token. A double-quoted region is one token with whitespace and
// punctuation preserved; an unterminated quote runs to the end of the
// arguments. Statement grammars choose punct per keyword: "=" for module
// headers and export entries, "," for size pairs, "." for VERSION, ":"
// for STUB. Passing a reused scratch slice keeps repeated calls free of
// allocation.
func SplitFields(source []byte, args types.Span, punct string, fields []Field) []Field {
	i, end := int(args.Start), int(args.End)
	for i < end {
		b := source[i]
		switch {
		case isSpace(b):
			i++
		case b == '"':
			j := i + 1
			for j < end && source[j] != '"' {
				j++
			}
			fields = append(fields, Field{
				Span:   types.NewSpan(types.ByteOffset(i+1), types.ByteOffset(j)),
				Quoted: true,
			})
			if j < end {
				j++ // closing quote
			}
			i = j
		case strings.IndexByte(punct, b) >= 0:
			fields = append(fields, Field{
				Span: types.NewSpan(types.ByteOffset(i), types.ByteOffset(i+1)),
			})
			i++
		default:
			j := i + 1
			for j < end && !isSpace(source[j]) && source[j] != '"' &&
				strings.IndexByte(punct, source[j]) < 0 {
				j++
			}
			fields = append(fields, Field{
				Span: types.NewSpan(types.ByteOffset(i), types.ByteOffset(j)),
			})
			i = j
		}
	}
	return fields
}
