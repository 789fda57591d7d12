package testutil

import (
	"os"
	"testing"
)

// mockTB captures whether a test failure occurred.
type mockTB struct {
	testing.TB // embedded for unimplemented methods
	failed     bool
}

func (m *mockTB) Helper()                           {}
func (m *mockTB) Fatal(args ...any)                 { m.failed = true }
func (m *mockTB) Fatalf(format string, args ...any) { m.failed = true }

func TestEqual(t *testing.T) {
	m := &mockTB{}

	Equal(m, 1, 1)
	if m.failed {
		t.Error("Equal(1, 1) should pass")
	}

	m.failed = false
	Equal(m, "foo", "foo")
	if m.failed {
		t.Error("Equal(foo, foo) should pass")
	}

	m.failed = false
	Equal(m, 1, 2)
	if !m.failed {
		t.Error("Equal(1, 2) should fail")
	}
}

func TestSliceEqual(t *testing.T) {
	m := &mockTB{}

	SliceEqual(m, []int{1, 2, 3}, []int{1, 2, 3})
	if m.failed {
		t.Error("equal slices should pass")
	}

	m.failed = false
	SliceEqual(m, []int{}, []int{})
	if m.failed {
		t.Error("empty slices should pass")
	}

	m.failed = false
	SliceEqual(m, nil, []string{})
	if m.failed {
		t.Error("nil and empty should compare equal")
	}

	m.failed = false
	SliceEqual(m, []int{1, 2}, []int{1, 2, 3})
	if !m.failed {
		t.Error("different length slices should fail")
	}

	m.failed = false
	SliceEqual(m, []int{1, 2, 3}, []int{1, 9, 3})
	if !m.failed {
		t.Error("different content should fail")
	}
}

func TestEqualBytes(t *testing.T) {
	m := &mockTB{}

	EqualBytes(m, "LIBRARY demo", []byte("LIBRARY demo"))
	if m.failed {
		t.Error("matching bytes should pass")
	}

	m.failed = false
	EqualBytes(m, "", nil)
	if m.failed {
		t.Error("nil bytes should equal the empty string")
	}

	m.failed = false
	EqualBytes(m, "LIBRARY demo", []byte("LIBRARY Demo"))
	if !m.failed {
		t.Error("differing bytes should fail")
	}
}

func TestNoError(t *testing.T) {
	m := &mockTB{}

	NoError(m, nil)
	if m.failed {
		t.Error("NoError(nil) should pass")
	}

	m.failed = false
	NoError(m, os.ErrNotExist)
	if !m.failed {
		t.Error("NoError(err) should fail")
	}
}

func TestError(t *testing.T) {
	m := &mockTB{}

	Error(m, os.ErrNotExist)
	if m.failed {
		t.Error("Error(err) should pass")
	}

	m.failed = false
	Error(m, nil)
	if !m.failed {
		t.Error("Error(nil) should fail")
	}
}

func TestNil(t *testing.T) {
	m := &mockTB{}

	var nilPtr *int
	Nil(m, nilPtr)
	if m.failed {
		t.Error("Nil(nil ptr) should pass")
	}

	m.failed = false
	v := 42
	Nil(m, &v)
	if !m.failed {
		t.Error("Nil(&v) should fail")
	}
}

func TestNotNil(t *testing.T) {
	m := &mockTB{}

	v := 42
	NotNil(m, &v)
	if m.failed {
		t.Error("NotNil(&v) should pass")
	}

	m.failed = false
	zero := 0
	NotNil(m, &zero)
	if m.failed {
		t.Error("NotNil should only care about the pointer, not the value")
	}

	m.failed = false
	var nilPtr *int
	NotNil(m, nilPtr)
	if !m.failed {
		t.Error("NotNil(nil ptr) should fail")
	}
}

func TestLen(t *testing.T) {
	m := &mockTB{}

	Len(m, []int{1, 2, 3}, 3)
	if m.failed {
		t.Error("Len([1,2,3], 3) should pass")
	}

	m.failed = false
	Len(m, []int{1, 2, 3}, 5)
	if !m.failed {
		t.Error("Len([1,2,3], 5) should fail")
	}
}

func TestTrueFalse(t *testing.T) {
	m := &mockTB{}

	True(m, true)
	if m.failed {
		t.Error("True(true) should pass")
	}

	m.failed = false
	True(m, false)
	if !m.failed {
		t.Error("True(false) should fail")
	}

	m.failed = false
	False(m, false)
	if m.failed {
		t.Error("False(false) should pass")
	}

	m.failed = false
	False(m, true)
	if !m.failed {
		t.Error("False(true) should fail")
	}
}

func TestFormatMsg(t *testing.T) {
	if got := formatMsg(nil); got != "assertion failed" {
		t.Errorf("formatMsg(nil) = %q, want %q", got, "assertion failed")
	}

	if got := formatMsg([]any{"custom"}); got != "custom" {
		t.Errorf("formatMsg([custom]) = %q, want %q", got, "custom")
	}

	if got := formatMsg([]any{"value is %d", 42}); got != "value is 42" {
		t.Errorf("formatMsg with args = %q, want %q", got, "value is 42")
	}

	if got := formatMsg([]any{123}); got != "assertion failed" {
		t.Errorf("formatMsg(non-string) = %q, want %q", got, "assertion failed")
	}
}
