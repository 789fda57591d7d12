package testutil

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// FixtureFile mirrors the YAML expectation schema used by the corpus
// fixtures: one document per .def file describing the fully parsed model.
type FixtureFile struct {
	Kind         string           `yaml:"kind"`
	Name         string           `yaml:"name"`
	BaseAddress  *uint64          `yaml:"base_address"`
	HeapReserve  *uint64          `yaml:"heap_reserve"`
	HeapCommit   *uint64          `yaml:"heap_commit"`
	StackReserve *uint64          `yaml:"stack_reserve"`
	StackCommit  *uint64          `yaml:"stack_commit"`
	MajorVersion *uint16          `yaml:"major_version"`
	MinorVersion *uint16          `yaml:"minor_version"`
	Description  string           `yaml:"description"`
	Stub         string           `yaml:"stub"`
	Exports      []FixtureExport  `yaml:"exports"`
	Sections     []FixtureSection `yaml:"sections"`
}

// FixtureExport describes one expected export entry.
type FixtureExport struct {
	Name     string  `yaml:"name"`
	Internal string  `yaml:"internal"`
	Ordinal  *uint16 `yaml:"ordinal"`
	NoName   bool    `yaml:"noname"`
	Private  bool    `yaml:"private"`
	Data     bool    `yaml:"data"`
}

// FixtureSection describes one expected section entry.
type FixtureSection struct {
	Name    string `yaml:"name"`
	Read    bool   `yaml:"read"`
	Write   bool   `yaml:"write"`
	Execute bool   `yaml:"execute"`
	Shared  bool   `yaml:"shared"`
}

// LoadFixture loads a YAML expectation file.
func LoadFixture(t testing.TB, path string) *FixtureFile {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", path, err)
	}
	var f FixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("failed to parse fixture %s: %v", path, err)
	}
	return &f
}
