package schedule

import (
	"errors"
	"testing"
)

func TestLoadWorkbook_UnknownExtension(t *testing.T) {
	if _, err := LoadWorkbook("timetable.docx"); !errors.Is(err, ErrNoLoader) {
		t.Fatalf("expected ErrNoLoader, got %v", err)
	}
}

func TestRegisterLoader_Validation(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	mustPanic("bad extension", func() {
		RegisterLoader("xlsx", func(string) (*Workbook, error) { return nil, nil })
	})
	mustPanic("nil loader", func() {
		RegisterLoader(".csv", nil)
	})
	mustPanic("duplicate", func() {
		RegisterLoader(".xlsx", func(string) (*Workbook, error) { return nil, nil })
	})
}
