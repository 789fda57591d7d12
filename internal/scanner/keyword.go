package scanner

import (
	"fmt"
	"sort"
)

// Keyword classifies the statement keyword opening a line.
type Keyword int

const (
	// KwNone marks a line that does not begin with a keyword; it is an
	// entry line belonging to the open EXPORTS or SECTIONS block, if any.
	KwNone Keyword = iota
	KwName
	KwLibrary
	KwDescription
	KwStub
	KwVersion
	KwHeapsize
	KwStacksize
	KwExports
	KwSections
	// KwReserved covers the legacy statement keywords of the canonical
	// grammar (EXETYPE, SEGMENTS, PROTMODE, ...). A reserved line closes
	// any open section and carries no modeled field.
	KwReserved
)

// String returns the keyword name for diagnostics.
func (k Keyword) String() string {
	switch k {
	case KwNone:
		return "entry"
	case KwName:
		return "NAME"
	case KwLibrary:
		return "LIBRARY"
	case KwDescription:
		return "DESCRIPTION"
	case KwStub:
		return "STUB"
	case KwVersion:
		return "VERSION"
	case KwHeapsize:
		return "HEAPSIZE"
	case KwStacksize:
		return "STACKSIZE"
	case KwExports:
		return "EXPORTS"
	case KwSections:
		return "SECTIONS"
	case KwReserved:
		return "reserved"
	default:
		return fmt.Sprintf("Keyword(%d)", int(k))
	}
}

// maxKeywordLen is the length of the longest keyword (NOTWINDOWCOMPAT).
const maxKeywordLen = 15

// keywords is the sorted keyword table for binary search, covering every
// reserved word of the canonical grammar. Words without a dedicated
// Keyword map to KwReserved.
// IMPORTANT: This slice MUST remain sorted alphabetically by text.
var keywords = []struct {
	text string
	kw   Keyword
}{
	{"APPLOADER", KwReserved},
	{"BASE", KwReserved},
	{"CODE", KwReserved},
	{"CONFORMING", KwReserved},
	{"DATA", KwReserved},
	{"DESCRIPTION", KwDescription},
	{"DEV386", KwReserved},
	{"DISCARDABLE", KwReserved},
	{"DYNAMIC", KwReserved},
	{"EXECUTE-ONLY", KwReserved},
	{"EXECUTEONLY", KwReserved},
	{"EXECUTEREAD", KwReserved},
	{"EXETYPE", KwReserved},
	{"EXPORTS", KwExports},
	{"FIXED", KwReserved},
	{"FUNCTIONS", KwReserved},
	{"HEAPSIZE", KwHeapsize},
	{"IMPORTS", KwReserved},
	{"IMPURE", KwReserved},
	{"INCLUDE", KwReserved},
	{"INITINSTANCE", KwReserved},
	{"IOPL", KwReserved},
	{"LIBRARY", KwLibrary},
	{"LOADONCALL", KwReserved},
	{"LONGNAMES", KwReserved},
	{"MOVABLE", KwReserved},
	{"MOVEABLE", KwReserved},
	{"MULTIPLE", KwReserved},
	{"NAME", KwName},
	{"NEWFILES", KwReserved},
	{"NODATA", KwReserved},
	{"NOIOPL", KwReserved},
	{"NONAME", KwReserved},
	{"NONCONFORMING", KwReserved},
	{"NONDISCARDABLE", KwReserved},
	{"NONE", KwReserved},
	{"NONSHARED", KwReserved},
	{"NOTWINDOWCOMPAT", KwReserved},
	{"OBJECTS", KwReserved},
	{"OLD", KwReserved},
	{"PRELOAD", KwReserved},
	{"PRIVATE", KwReserved},
	{"PROTMODE", KwReserved},
	{"PURE", KwReserved},
	{"READONLY", KwReserved},
	{"READWRITE", KwReserved},
	{"REALMODE", KwReserved},
	{"RESIDENT", KwReserved},
	{"RESIDENTNAME", KwReserved},
	{"SECTIONS", KwSections},
	{"SEGMENTS", KwReserved},
	{"SHARED", KwReserved},
	{"SINGLE", KwReserved},
	{"STACKSIZE", KwStacksize},
	{"STUB", KwStub},
	{"VERSION", KwVersion},
	{"WINDOWAPI", KwReserved},
	{"WINDOWCOMPAT", KwReserved},
	{"WINDOWS", KwReserved},
}

// LookupKeyword returns the Keyword for a line-opening token, or
// (KwNone, false) if the token is not a keyword. Modeled keywords match
// case-insensitively; legacy reserved words match exactly, in their
// canonical uppercase form, so that lowercase symbol names like "data"
// or "none" stay usable as entry names.
func LookupKeyword(text []byte) (Keyword, bool) {
	if len(text) == 0 || len(text) > maxKeywordLen {
		return KwNone, false
	}
	var buf [maxKeywordLen]byte
	changed := false
	for i, b := range text {
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
			changed = true
		}
		buf[i] = b
	}
	upper := string(buf[:len(text)])
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= upper
	})
	if idx >= len(keywords) || keywords[idx].text != upper {
		return KwNone, false
	}
	kw := keywords[idx].kw
	if kw == KwReserved && changed {
		return KwNone, false
	}
	return kw, true
}
