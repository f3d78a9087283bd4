package simplestruct

import (
	"fmt"

	"github.com/brandjon/simplestruct/errors"
)

// New constructs a record from positional arguments.
func (s *Schema) New(pos ...any) (*Record, error) {
	return s.Make(pos, nil)
}

// MustNew is like New but panics on error.
func (s *Schema) MustNew(pos ...any) *Record {
	r, err := s.New(pos...)
	if err != nil {
		panic(err)
	}
	return r
}

// Make is the construction entry point. It binds positional and keyword
// arguments against the schema's signature, substituting declared defaults
// for omitted parameters, then allocates the record in the initializing
// state, assigns every field in schema order through the validating setter,
// runs the init hook inside the still-mutable window, and finally marks the
// record initialized. Every failure is reported as a Construction error
// naming the schema and, when attributable, the offending field, with the
// cause wrapped.
func (s *Schema) Make(pos []any, kw map[string]any) (*Record, error) {
	bound, err := s.bind(pos, kw)
	if err != nil {
		return nil, &errors.Construction{Code: errors.ErrConstructBind, Schema: s.name, Err: err}
	}

	r := &Record{
		schema: s,
		values: make([]any, len(s.fields)),
		state:  stateAllocated,
	}
	r.state = stateInitializing
	for _, f := range s.fields {
		if err := f.set(r, bound[f.index]); err != nil {
			return nil, &errors.Construction{
				Code:   errors.ErrConstructField,
				Schema: s.name,
				Field:  f.name,
				Err:    err,
			}
		}
	}

	// Defaults are already in place, so the hook may overwrite default-derived
	// values; that ordering is part of the contract.
	if s.hook != nil {
		if err := s.hook(r); err != nil {
			return nil, &errors.Construction{Code: errors.ErrConstructInit, Schema: s.name, Err: err}
		}
	}
	r.state = stateInitialized
	return r, nil
}

// bind applies the constructor signature to the supplied arguments and
// returns one value per field in schema order.
func (s *Schema) bind(pos []any, kw map[string]any) ([]any, error) {
	if len(pos) > len(s.fields) {
		return nil, fmt.Errorf("takes %d argument(s) but %d were given", len(s.fields), len(pos))
	}

	bound := make([]any, len(s.fields))
	assigned := make([]bool, len(s.fields))
	for i, v := range pos {
		bound[i] = v
		assigned[i] = true
	}
	for name, v := range kw {
		i, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("unexpected keyword argument %q", name)
		}
		if assigned[i] {
			return nil, fmt.Errorf("multiple values for argument %q", name)
		}
		bound[i] = v
		assigned[i] = true
	}
	for i, f := range s.fields {
		if assigned[i] {
			continue
		}
		if !f.hasDefault {
			return nil, fmt.Errorf("missing required argument %q", f.name)
		}
		bound[i] = f.def
	}
	return bound, nil
}
