package simplestruct

import (
	"github.com/brandjon/simplestruct/errors"
	"github.com/brandjon/simplestruct/internal/valuehash"
)

// EqualFunc compares two values of one field. Nil means structural equality.
type EqualFunc func(a, b any) bool

// HashFunc hashes one field value. Nil means the default structural hash.
// If a custom EqualFunc declares two values equal, the paired HashFunc must
// hash them identically, or the owning record's equality/hash law breaks.
type HashFunc func(v any) (uint64, error)

// Field declares one schema slot: its kind, flags, optional default, and
// equality/hash strategy. A Field carries no name of its own; the schema
// compiler clones every use and stamps the declared name, so one Field value
// may be reused across several slots (or several schemas) without aliasing.
//
// Flags: Seq requires the value to be a sequence of elements satisfying Kind,
// normalized to an engine-owned tuple at assignment; Unique additionally
// requires distinct elements; Opt admits nil regardless of Kind.
type Field struct {
	Kind   Kind
	Seq    bool
	Unique bool
	Opt    bool
	Eq     EqualFunc
	Hash   HashFunc

	def        any
	hasDefault bool
	name       string
	index      int
}

// NewField returns a field of the given kind with no flags and no default.
func NewField(kind Kind) *Field {
	return &Field{Kind: kind}
}

// WithDefault returns a copy of f whose constructor parameter carries the
// given default value.
func (f *Field) WithDefault(v any) *Field {
	c := f.clone()
	c.def = v
	c.hasDefault = true
	return c
}

// Default returns the field's default value and whether one is declared.
func (f *Field) Default() (any, bool) {
	return f.def, f.hasDefault
}

// Name returns the declared slot name, or "" before schema compilation.
func (f *Field) Name() string {
	return f.name
}

// clone returns an unnamed independent copy with identical kind, flags,
// default, and strategies.
func (f *Field) clone() *Field {
	c := *f
	c.name = ""
	c.index = 0
	return &c
}

// get reads the stored value for this field.
func (f *Field) get(r *Record) any {
	return r.values[f.index]
}

// set is the validating setter: it enforces the freeze rule, coerces raw
// tuples into record-kind fields, kind-checks the value (sequence form for
// Seq fields), normalizes sequences, and stores. All writes, including the
// construction controller's, go through here.
func (f *Field) set(r *Record, v any) error {
	if r.schema.immutable && r.state == stateInitialized {
		return &errors.Mutation{Schema: r.schema.name, Field: f.name}
	}

	if f.Opt && v == nil {
		r.values[f.index] = nil
		return nil
	}

	if f.Seq {
		if err := CheckTypeSeq(v, f.Kind, f.Unique); err != nil {
			return err
		}
		r.values[f.index] = tupleOf(v)
		return nil
	}

	if target, ok := f.Kind.recordSchema(); ok {
		if args, isTuple := v.([]any); isTuple {
			rec, err := target.New(args...)
			if err != nil {
				return err
			}
			v = rec
		}
	}
	if err := CheckType(v, f.Kind); err != nil {
		return err
	}
	r.values[f.index] = v
	return nil
}

// equal compares two stored values under this field's strategy.
func (f *Field) equal(a, b any) bool {
	if f.Eq != nil {
		return f.Eq(a, b)
	}
	return valuehash.DeepEqual(a, b)
}

// hashValue hashes one stored value under this field's strategy.
func (f *Field) hashValue(v any) (uint64, error) {
	if f.Hash != nil {
		return f.Hash(v)
	}
	return valuehash.Hash(v)
}
