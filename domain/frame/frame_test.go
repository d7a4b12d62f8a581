package frame

import (
	"testing"

	"simlm/domain/core"
)

func TestAddColumn_RowCountEnforced(t *testing.T) {
	f := New(3)

	if err := f.AddNumeric("length", []float64{1, 2}); err == nil {
		t.Error("expected rejection of short numeric column")
	}
	if err := f.AddLabels("diet", []string{"a", "b", "c", "d"}); err == nil {
		t.Error("expected rejection of long label column")
	}
	if err := f.AddNumeric("length", []float64{1, 2, 3}); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestAddColumn_DuplicateKeyRejected(t *testing.T) {
	f := New(2)
	if err := f.AddNumeric("length", []float64{1, 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.AddNumeric("length", []float64{3, 4}); err == nil {
		t.Error("expected rejection of duplicate numeric key")
	}
	if err := f.AddLabels("length", []string{"a", "b"}); err == nil {
		t.Error("expected rejection of duplicate key across kinds")
	}
}

func TestLookup_KindMismatch(t *testing.T) {
	f := New(2)
	_ = f.AddNumeric("length", []float64{1, 2})
	_ = f.AddLabels("diet", []string{"a", "b"})

	if _, ok := f.Numeric("diet"); ok {
		t.Error("label column should not resolve as numeric")
	}
	if _, ok := f.Labels("length"); ok {
		t.Error("numeric column should not resolve as labels")
	}
	if _, ok := f.Column("ghost"); ok {
		t.Error("unknown key should not resolve")
	}

	keys := f.Keys()
	if len(keys) != 2 || keys[0] != core.VariableKey("length") || keys[1] != core.VariableKey("diet") {
		t.Errorf("unexpected key order %v", keys)
	}
}

func TestValidate(t *testing.T) {
	f := New(2)
	_ = f.AddNumeric("x", []float64{1, 2})
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if f.RunID == "" {
		t.Error("expected run id to be assigned on construction")
	}

	// Mutating a column out from under the frame is caught
	f.Columns[0].Numeric = f.Columns[0].Numeric[:1]
	if err := f.Validate(); err == nil {
		t.Error("expected validation failure for short column")
	}

	if err := New(0).Validate(); err == nil {
		t.Error("expected rejection of empty frame")
	}
}
