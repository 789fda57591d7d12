package msvcdef

import "io"

// File is the owned counterpart of [FileRef]: every name is copied into
// a string and both entry sequences are fully collected, so the parsed
// input may be discarded or reused.
type File struct {
	// Kind records whether a LIBRARY or NAME statement occurred.
	Kind ModuleKind
	// Name is the module name, or "" when none was given.
	Name string
	// BaseAddress is the BASE argument of LIBRARY or NAME, if present.
	BaseAddress *uint64

	HeapReserve  *uint64
	HeapCommit   *uint64
	StackReserve *uint64
	StackCommit  *uint64

	MajorVersion *uint16
	MinorVersion *uint16

	Description string
	Stub        string

	// Exports and Sections hold the entries of every EXPORTS and
	// SECTIONS block in declaration order.
	Exports  []Export
	Sections []Section
}

// Export is an owned EXPORTS entry.
type Export struct {
	Name         string
	InternalName string
	Ordinal      *uint16
	NoName       bool
	Private      bool
	Data         bool
}

// Section is an owned SECTIONS entry.
type Section struct {
	Name    string
	Read    bool
	Write   bool
	Execute bool
	Shared  bool
}

// materialize collects the lazy view into an owned File, failing on the
// first malformed entry.
func (f FileRef) materialize() (*File, error) {
	file := &File{
		Kind:         f.Kind,
		Name:         string(f.Name),
		BaseAddress:  f.BaseAddress,
		HeapReserve:  f.HeapReserve,
		HeapCommit:   f.HeapCommit,
		StackReserve: f.StackReserve,
		StackCommit:  f.StackCommit,
		MajorVersion: f.MajorVersion,
		MinorVersion: f.MinorVersion,
		Description:  string(f.Description),
		Stub:         string(f.Stub),
	}
	exports := f.Exports()
	for {
		ex, err := exports.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		file.Exports = append(file.Exports, Export{
			Name:         string(ex.Name),
			InternalName: string(ex.InternalName),
			Ordinal:      ex.Ordinal,
			NoName:       ex.NoName,
			Private:      ex.Private,
			Data:         ex.Data,
		})
	}
	sections := f.Sections()
	for {
		sec, err := sections.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		file.Sections = append(file.Sections, Section{
			Name:    string(sec.Name),
			Read:    sec.Read,
			Write:   sec.Write,
			Execute: sec.Execute,
			Shared:  sec.Shared,
		})
	}
	return file, nil
}
