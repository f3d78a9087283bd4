package simplestruct_test

import (
	"strings"
	"testing"

	"github.com/brandjon/simplestruct"
	"github.com/brandjon/simplestruct/errors"
	"github.com/brandjon/simplestruct/internal/valuehash"
)

func seqIntField(unique bool) *simplestruct.Field {
	return &simplestruct.Field{
		Kind:   simplestruct.KindFor[int](),
		Seq:    true,
		Unique: unique,
	}
}

func TestSequenceFieldNormalizes(t *testing.T) {
	s := simplestruct.MustDefine("Vector", []simplestruct.Slot{
		simplestruct.F("vals", seqIntField(false)),
	})

	in := []int{1, 2, 3}
	r, err := s.New(in)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, ok := r.MustGet("vals").([]any)
	if !ok {
		t.Fatalf("vals stored as %T, want []any", r.MustGet("vals"))
	}
	if !valuehash.DeepEqual(got, []any{1, 2, 3}) {
		t.Errorf("vals = %v, want [1 2 3]", got)
	}

	// The stored tuple is a fresh copy: mutating the input does not reach it.
	in[0] = 99
	if got[0] != 1 {
		t.Errorf("vals[0] = %v after caller mutation, want 1", got[0])
	}
}

func TestSequenceFieldRejections(t *testing.T) {
	s := simplestruct.MustDefine("Vector", []simplestruct.Slot{
		simplestruct.F("vals", seqIntField(false)),
	})

	_, err := s.New(5)
	if err == nil || !strings.Contains(err.Error(), "got int instead of sequence") {
		t.Errorf("New(5) error = %v, want not-a-sequence", err)
	}

	_, err = s.New("12345")
	if err == nil || !strings.Contains(err.Error(), "strings do not count as character sequences") {
		t.Errorf("New(string) error = %v, want string-as-sequence", err)
	}

	ch := make(chan int)
	_, err = s.New(ch)
	if err == nil || !strings.Contains(err.Error(), "instead of sequence") {
		t.Errorf("New(chan) error = %v, want not-a-sequence", err)
	}
}

func TestUniqueSequenceField(t *testing.T) {
	ids := simplestruct.MustDefine("Ids", []simplestruct.Slot{
		simplestruct.F("vals", seqIntField(true)),
	})

	if _, err := ids.New([]int{1, 2, 3, 4}); err != nil {
		t.Fatalf("New([1 2 3 4]) error = %v", err)
	}

	_, err := ids.New([]int{1, 2, 3, 2})
	if err == nil {
		t.Fatal("New([1 2 3 2]) = nil error, want duplicate element")
	}
	tm, ok := errors.AsTypeMismatch(err)
	if !ok {
		t.Fatalf("error = %v, want wrapped *errors.TypeMismatch", err)
	}
	if got := tm.Error(); got != "Duplicate element 2 at position 3" {
		t.Errorf("cause = %q, want %q", got, "Duplicate element 2 at position 3")
	}
}

func TestRecordKindCoercion(t *testing.T) {
	point := simplestruct.MustDefine("Point", []simplestruct.Slot{
		simplestruct.F("x", intField()),
		simplestruct.F("y", intField()),
	})
	pointField := simplestruct.NewField(simplestruct.KindOf(point))
	line := simplestruct.MustDefine("Line", []simplestruct.Slot{
		simplestruct.F("a", pointField),
		simplestruct.F("b", pointField),
	})

	l1, err := line.New(point.MustNew(1, 2), point.MustNew(3, 4))
	if err != nil {
		t.Fatalf("New(points) error = %v", err)
	}
	// A raw tuple of Point's constructor arguments coerces transparently.
	l2, err := line.New([]any{1, 2}, []any{3, 4})
	if err != nil {
		t.Fatalf("New(tuples) error = %v", err)
	}
	if !l1.Equal(l2) {
		t.Errorf("coerced line %v != constructed line %v", l2, l1)
	}
}

func TestRecordKindCoercionWrongArity(t *testing.T) {
	point := simplestruct.MustDefine("Point", []simplestruct.Slot{
		simplestruct.F("x", intField()),
		simplestruct.F("y", intField()),
	})
	line := simplestruct.MustDefine("Line", []simplestruct.Slot{
		simplestruct.F("a", simplestruct.NewField(simplestruct.KindOf(point))),
		simplestruct.F("b", simplestruct.NewField(simplestruct.KindOf(point))),
	})

	// A wrong-arity tuple surfaces Point's own construction error.
	_, err := line.New([]any{1}, []any{3, 4})
	if err == nil {
		t.Fatal("New() = nil error, want construction error")
	}
	if !strings.Contains(err.Error(), "error constructing Point") {
		t.Errorf("error = %q, want it to surface Point's construction failure", err)
	}
	if !strings.Contains(err.Error(), `missing required argument "y"`) {
		t.Errorf("error = %q, want the missing argument named", err)
	}
}

func TestCoercionRequiresSingleRecordKind(t *testing.T) {
	point := simplestruct.MustDefine("Point", []simplestruct.Slot{
		simplestruct.F("x", intField()),
	})
	other := simplestruct.MustDefine("Other", []simplestruct.Slot{
		simplestruct.F("x", intField()),
	})
	// Two record members: no coercion target, so a raw tuple is a mismatch.
	s := simplestruct.MustDefine("Either", []simplestruct.Slot{
		simplestruct.F("p", simplestruct.NewField(simplestruct.KindOf(point, other))),
	})
	_, err := s.New([]any{1})
	if err == nil || !strings.Contains(err.Error(), "Expected Point or Other; got []interface {}") {
		t.Errorf("New(tuple) error = %v, want kind mismatch", err)
	}
}
