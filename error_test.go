package msvcdef

import (
	"testing"

	"github.com/gtker/msvc-def/internal/testutil"
)

func TestErrorKindString(t *testing.T) {
	testutil.Equal(t, "malformed statement", MalformedStatement.String())
	testutil.Equal(t, "malformed export entry", MalformedExportEntry.String())
	testutil.Equal(t, "malformed section entry", MalformedSectionEntry.String())
	testutil.Equal(t, "invalid ordinal", InvalidOrdinal.String())
	testutil.Equal(t, "duplicate statement", DuplicateStatement.String())
	testutil.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Kind: InvalidOrdinal, Offset: 17, Line: 3}
	testutil.Equal(t, "invalid ordinal at line 3 (offset 17)", err.Error())
}

func TestParseErrorFields(t *testing.T) {
	perr := parseErr(t, "EXPORTS\n    f @0\n")
	testutil.Equal(t, InvalidOrdinal, perr.Kind)
	testutil.Equal(t, 2, perr.Line)
	testutil.Equal(t, len("EXPORTS\n    f "), perr.Offset)
}
