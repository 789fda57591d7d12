package integration

import (
	"io"
	"testing"

	msvcdef "github.com/gtker/msvc-def"
	"github.com/stretchr/testify/require"
)

// ExportTestCase verifies one well-known export entry of a corpus file.
type ExportTestCase struct {
	File       string // corpus base name
	Name       string
	Internal   string
	Ordinal    uint16 // checked only when HasOrdinal
	HasOrdinal bool
	NoName     bool
	Private    bool
	Data       bool
}

var exportTests = []ExportTestCase{
	{File: "kernel32", Name: "CloseHandle"},
	{File: "kernel32", Name: "GetProcAddress"},
	{File: "ws2_32", Name: "accept", Ordinal: 1, HasOrdinal: true},
	{File: "ws2_32", Name: "socket", Ordinal: 23, HasOrdinal: true},
	{File: "ws2_32", Name: "WSAStartup", Ordinal: 115, HasOrdinal: true},
	{File: "legacy", Name: "WndProc", Ordinal: 1, HasOrdinal: true},
	{File: "dualmode", Name: "Startup", Internal: "InitMain", Ordinal: 1, HasOrdinal: true},
	{File: "dualmode", Name: "Shutdown", Internal: "ExitMain", Ordinal: 2, HasOrdinal: true, NoName: true},
	{File: "dualmode", Name: "DebugHook", Ordinal: 100, HasOrdinal: true, Private: true},
	{File: "dualmode", Name: "GlobalTable", Data: true},
	{File: "dualmode", Name: "Spaced Name", Ordinal: 7, HasOrdinal: true},
}

func findExport(t *testing.T, file *msvcdef.File, name string) msvcdef.Export {
	t.Helper()
	for _, ex := range file.Exports {
		if ex.Name == name {
			return ex
		}
	}
	require.Fail(t, "export not found", "export %q should exist", name)
	return msvcdef.Export{}
}

func TestCorpusExports(t *testing.T) {
	for _, tc := range exportTests {
		t.Run(tc.File+"/"+tc.Name, func(t *testing.T) {
			file := corpusFile(t, tc.File)
			ex := findExport(t, file, tc.Name)

			require.Equal(t, tc.Internal, ex.InternalName, "internal name mismatch")
			if tc.HasOrdinal {
				require.NotNil(t, ex.Ordinal)
				require.Equal(t, tc.Ordinal, *ex.Ordinal, "ordinal mismatch")
			} else {
				require.Nil(t, ex.Ordinal)
			}
			require.Equal(t, tc.NoName, ex.NoName, "NONAME mismatch")
			require.Equal(t, tc.Private, ex.Private, "PRIVATE mismatch")
			require.Equal(t, tc.Data, ex.Data, "DATA mismatch")
		})
	}
}

func TestCorpusExportCounts(t *testing.T) {
	counts := map[string]int{
		"kernel32": 14,
		"ws2_32":   25,
		"legacy":   2,
		"dualmode": 5,
	}
	for name, want := range counts {
		t.Run(name, func(t *testing.T) {
			file := corpusFile(t, name)
			require.Len(t, file.Exports, want)
		})
	}
}

func TestDualmodeSections(t *testing.T) {
	file := corpusFile(t, "dualmode")
	require.Len(t, file.Sections, 2)

	require.Equal(t, ".shared", file.Sections[0].Name)
	require.True(t, file.Sections[0].Read)
	require.True(t, file.Sections[0].Write)
	require.True(t, file.Sections[0].Shared)
	require.False(t, file.Sections[0].Execute)

	require.Equal(t, ".init", file.Sections[1].Name)
	require.True(t, file.Sections[1].Execute)
	require.True(t, file.Sections[1].Read)
}

// TestLazyMatchesEager re-reads each corpus file through the borrowing
// parser and checks the lazily produced entries against the owned model.
func TestLazyMatchesEager(t *testing.T) {
	files := loadCorpus(t)

	for name, file := range files {
		t.Run(name, func(t *testing.T) {
			ref, err := msvcdef.ParseRef(corpusBytes(t, name))
			require.NoError(t, err)

			require.Equal(t, file.Kind, ref.Kind)
			require.Equal(t, file.Name, string(ref.Name))

			i := 0
			for ex, err := range ref.Exports().All() {
				require.NoError(t, err)
				require.Less(t, i, len(file.Exports), "more lazy exports than eager ones")
				want := file.Exports[i]
				require.Equal(t, want.Name, string(ex.Name), "export %d name", i)
				require.Equal(t, want.InternalName, string(ex.InternalName), "export %d internal", i)
				require.Equal(t, want.Ordinal, ex.Ordinal, "export %d ordinal", i)
				require.Equal(t, want.NoName, ex.NoName, "export %d NONAME", i)
				require.Equal(t, want.Private, ex.Private, "export %d PRIVATE", i)
				require.Equal(t, want.Data, ex.Data, "export %d DATA", i)
				i++
			}
			require.Equal(t, len(file.Exports), i, "lazy export count")

			sections := ref.Sections()
			j := 0
			for {
				sec, err := sections.Next()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				require.Less(t, j, len(file.Sections), "more lazy sections than eager ones")
				want := file.Sections[j]
				require.Equal(t, want.Name, string(sec.Name), "section %d name", j)
				require.Equal(t, want.Read, sec.Read, "section %d READ", j)
				require.Equal(t, want.Write, sec.Write, "section %d WRITE", j)
				require.Equal(t, want.Execute, sec.Execute, "section %d EXECUTE", j)
				require.Equal(t, want.Shared, sec.Shared, "section %d SHARED", j)
				j++
			}
			require.Equal(t, len(file.Sections), j, "lazy section count")
		})
	}
}
