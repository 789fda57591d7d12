package msvcdef

import (
	"fmt"
	"io"
	"strings"

	"github.com/gtker/msvc-def/internal/scanner"
)

// WriteTo writes the file back out in module-definition syntax: header
// statements first, then SECTIONS and EXPORTS blocks with four-space
// indented entries. Names that would not survive a reparse are quoted.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	d := &defWriter{w: w}
	d.header(headerFields{
		kind:         f.Kind,
		name:         f.Name,
		base:         f.BaseAddress,
		heapReserve:  f.HeapReserve,
		heapCommit:   f.HeapCommit,
		stackReserve: f.StackReserve,
		stackCommit:  f.StackCommit,
		major:        f.MajorVersion,
		minor:        f.MinorVersion,
		description:  f.Description,
		stub:         f.Stub,
	})
	if len(f.Sections) > 0 {
		d.printf("SECTIONS\n")
		for _, s := range f.Sections {
			d.section(s.Name, s.Read, s.Write, s.Execute, s.Shared)
		}
	}
	if len(f.Exports) > 0 {
		d.printf("EXPORTS\n")
		for _, e := range f.Exports {
			d.export(e.Name, e.InternalName, e.Ordinal, e.NoName, e.Private, e.Data)
		}
	}
	return d.n, d.err
}

// String renders the file in module-definition syntax.
func (f *File) String() string {
	var sb strings.Builder
	f.WriteTo(&sb) // strings.Builder does not fail
	return sb.String()
}

// WriteTo writes the parsed input back out in module-definition syntax
// without materializing it. Malformed section and export entries are
// dropped from the output.
func (f FileRef) WriteTo(w io.Writer) (int64, error) {
	d := &defWriter{w: w}
	d.header(headerFields{
		kind:         f.Kind,
		name:         string(f.Name),
		base:         f.BaseAddress,
		heapReserve:  f.HeapReserve,
		heapCommit:   f.HeapCommit,
		stackReserve: f.StackReserve,
		stackCommit:  f.StackCommit,
		major:        f.MajorVersion,
		minor:        f.MinorVersion,
		description:  string(f.Description),
		stub:         string(f.Stub),
	})
	wroteKeyword := false
	sections := f.Sections()
	for {
		sec, err := sections.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if !wroteKeyword {
			d.printf("SECTIONS\n")
			wroteKeyword = true
		}
		d.section(string(sec.Name), sec.Read, sec.Write, sec.Execute, sec.Shared)
	}
	wroteKeyword = false
	exports := f.Exports()
	for {
		ex, err := exports.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if !wroteKeyword {
			d.printf("EXPORTS\n")
			wroteKeyword = true
		}
		d.export(string(ex.Name), string(ex.InternalName), ex.Ordinal, ex.NoName, ex.Private, ex.Data)
	}
	return d.n, d.err
}

// String renders the parsed input in module-definition syntax.
func (f FileRef) String() string {
	var sb strings.Builder
	f.WriteTo(&sb) // strings.Builder does not fail
	return sb.String()
}

// defWriter accumulates output with a sticky error so statement helpers
// can chain without per-call checks.
type defWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (d *defWriter) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	n, err := fmt.Fprintf(d.w, format, args...)
	d.n += int64(n)
	d.err = err
}

type headerFields struct {
	kind         ModuleKind
	name         string
	base         *uint64
	heapReserve  *uint64
	heapCommit   *uint64
	stackReserve *uint64
	stackCommit  *uint64
	major        *uint16
	minor        *uint16
	description  string
	stub         string
}

func (d *defWriter) header(h headerFields) {
	if h.kind != ModuleKindNone {
		if h.kind == ModuleKindLibrary {
			d.printf("LIBRARY")
		} else {
			d.printf("NAME")
		}
		if h.name != "" {
			d.printf(" %s", quoted(h.name))
		}
		if h.base != nil {
			d.printf(" BASE=0x%X", *h.base)
		}
		d.printf("\n")
	}
	if h.description != "" {
		d.printf("DESCRIPTION \"%s\"\n", h.description)
	}
	d.sizePair("HEAPSIZE", h.heapReserve, h.heapCommit)
	d.sizePair("STACKSIZE", h.stackReserve, h.stackCommit)
	if h.stub != "" {
		d.printf("STUB:%s\n", quoted(h.stub))
	}
	if h.major != nil {
		d.printf("VERSION %d", *h.major)
		if h.minor != nil {
			d.printf(".%d", *h.minor)
		}
		d.printf("\n")
	}
}

func (d *defWriter) sizePair(keyword string, reserve, commit *uint64) {
	if reserve == nil {
		return
	}
	d.printf("%s %d", keyword, *reserve)
	if commit != nil {
		d.printf(",%d", *commit)
	}
	d.printf("\n")
}

func (d *defWriter) section(name string, read, write, execute, shared bool) {
	d.printf("    %s", quoted(name))
	if read {
		d.printf(" READ")
	}
	if write {
		d.printf(" WRITE")
	}
	if execute {
		d.printf(" EXECUTE")
	}
	if shared {
		d.printf(" SHARED")
	}
	d.printf("\n")
}

func (d *defWriter) export(name, internal string, ordinal *uint16, noName, private, data bool) {
	d.printf("    %s", quoted(name))
	if internal != "" {
		d.printf("=%s", quoted(internal))
	}
	if ordinal != nil {
		d.printf(" @%d", *ordinal)
		if noName {
			d.printf(" NONAME")
		}
	}
	if private {
		d.printf(" PRIVATE")
	}
	if data {
		d.printf(" DATA")
	}
	d.printf("\n")
}

// quoted wraps a name in double quotes when the bare form would not
// survive a reparse: embedded separators or comment markers, a leading
// ordinal marker, or text that reads as a keyword.
func quoted(name string) string {
	if !needsQuotes(name) {
		return name
	}
	return "\"" + name + "\""
}

func needsQuotes(name string) bool {
	if name == "" || name[0] == '@' {
		return true
	}
	if strings.ContainsAny(name, " \t;=:,\"") {
		return true
	}
	_, isKeyword := scanner.LookupKeyword([]byte(name))
	return isKeyword
}
