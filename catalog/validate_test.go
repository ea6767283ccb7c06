package catalog

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/signadot/partcat/debug"
)

func badTable(t *testing.T) *Table {
	t.Helper()
	reg := NewRegistry()
	tbl := NewTable(reg, "Chip", "", 0, "")
	if err := tbl.ParameterInsert(NewParameter(reg, "R", 5, StringType)); err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestValidateParameterIndex(t *testing.T) {
	err := ValidateRecursively(badTable(t))
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("got %v, want ErrInvariant", err)
	}
	if !strings.Contains(err.Error(), "index 5 at position 0") {
		t.Errorf("got %v", err)
	}
}

func TestCheckInvariantsLogs(t *testing.T) {
	defer debug.SetValidate(debug.SetValidate(false))
	var buf bytes.Buffer
	CheckInvariants(badTable(t), slog.New(slog.NewTextHandler(&buf, nil)))
	if !strings.Contains(buf.String(), "catalog invariants violated") {
		t.Errorf("nothing logged: %q", buf.String())
	}
}

func TestCheckInvariantsPanics(t *testing.T) {
	defer debug.SetValidate(debug.SetValidate(true))
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	CheckInvariants(badTable(t), nil)
}
