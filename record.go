package simplestruct

import "fmt"

type initState uint8

const (
	stateAllocated initState = iota
	stateInitializing
	stateInitialized
)

// Record is one instance of a compiled schema: one stored value per field
// slot, an initialization marker, and the exact schema it was built from.
//
// Records move through a fixed lifecycle: allocated, then initializing while
// the construction controller assigns fields and runs the init hook (writes
// are permitted during this window even for immutable schemas), then
// initialized. From that point an immutable record rejects writes and becomes
// hash-eligible; a mutable record stays writable and never hashes.
type Record struct {
	schema *Schema
	values []any
	attrs  map[string]any
	state  initState
}

// Schema returns the record's compiled schema.
func (r *Record) Schema() *Schema {
	if r == nil {
		return nil
	}
	return r.schema
}

// TypeName returns the declaring schema's name.
func (r *Record) TypeName() string {
	if r == nil {
		return ""
	}
	return r.schema.name
}

// Get returns the named field's current value.
func (r *Record) Get(name string) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("nil record")
	}
	i, ok := r.schema.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s has no field %q", r.schema.name, name)
	}
	return r.values[i], nil
}

// MustGet is like Get but panics on an unknown field name.
func (r *Record) MustGet(name string) any {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set assigns the named field through the validating setter. It fails with a
// Mutation error on an initialized immutable record and with a TypeMismatch
// error when the value does not satisfy the field's kind.
func (r *Record) Set(name string, v any) error {
	if r == nil {
		return fmt.Errorf("nil record")
	}
	i, ok := r.schema.byName[name]
	if !ok {
		return fmt.Errorf("%s has no field %q", r.schema.name, name)
	}
	return r.schema.fields[i].set(r, v)
}

// Attr returns an extra non-field attribute attached to the record.
func (r *Record) Attr(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.attrs[name]
	return v, ok
}

// SetAttr attaches an extra attribute to the record. Attributes are not
// schema fields: they never participate in equality, hashing, printing, or
// decomposition, and they are not subject to the freeze rule.
func (r *Record) SetAttr(name string, v any) {
	if r == nil {
		return
	}
	if r.attrs == nil {
		r.attrs = make(map[string]any)
	}
	r.attrs[name] = v
}
