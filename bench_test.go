package msvcdef

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

// benchInput builds a module definition with n export entries.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString("LIBRARY bench BASE=0x10000000\n")
	sb.WriteString("DESCRIPTION \"benchmark corpus\"\n")
	sb.WriteString("HEAPSIZE 1048576,4096\n")
	sb.WriteString("SECTIONS\n    .data READ WRITE\n    .shared SHARED\n")
	sb.WriteString("EXPORTS\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "    exported_symbol_%04d = internal_symbol_%04d @%d\n", i, i, i+1)
	}
	return []byte(sb.String())
}

func BenchmarkParse(b *testing.B) {
	input := benchInput(1000)

	b.ResetTimer()
	for b.Loop() {
		file, err := Parse(input)
		if err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
		_ = file
	}
}

func BenchmarkParseRef(b *testing.B) {
	input := benchInput(1000)

	b.ResetTimer()
	for b.Loop() {
		ref, err := ParseRef(input)
		if err != nil {
			b.Fatalf("ParseRef failed: %v", err)
		}
		_ = ref
	}
}

func BenchmarkIterateExports(b *testing.B) {
	input := benchInput(1000)
	ref, err := ParseRef(input)
	if err != nil {
		b.Fatalf("ParseRef failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		exports := ref.Exports()
		for {
			ex, err := exports.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatalf("Next failed: %v", err)
			}
			_ = ex
		}
	}
}
