package simplestruct

import "fmt"

// Item is one entry of the ordered name-to-value view of a record.
type Item struct {
	Name  string
	Value any
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.schema.fields)
}

// Names returns the field names in schema order.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	return r.schema.FieldNames()
}

// Values returns the current field values in schema order.
func (r *Record) Values() []any {
	if r == nil {
		return nil
	}
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

// ConstructorArgs returns the ordered values that reproduce this record when
// passed back to its schema's constructor: for every valid record x,
// x.Schema().New(x.ConstructorArgs()...) equals x. This is the reconstruction
// contract consumed by serialization and copy collaborators.
func (r *Record) ConstructorArgs() []any {
	return r.Values()
}

// At returns the value of the i'th field.
func (r *Record) At(i int) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("nil record")
	}
	if i < 0 || i >= len(r.values) {
		return nil, fmt.Errorf("%s index %d out of range [0, %d)", r.schema.name, i, len(r.values))
	}
	return r.values[i], nil
}

// Slice returns the values of fields i through j-1.
func (r *Record) Slice(i, j int) ([]any, error) {
	if r == nil {
		return nil, fmt.Errorf("nil record")
	}
	if i < 0 || j < i || j > len(r.values) {
		return nil, fmt.Errorf("%s slice [%d:%d] out of range [0, %d)", r.schema.name, i, j, len(r.values))
	}
	out := make([]any, j-i)
	copy(out, r.values[i:j])
	return out, nil
}

// SetAt assigns the i'th field through the validating setter, with the same
// freeze and kind rules as Set.
func (r *Record) SetAt(i int, v any) error {
	if r == nil {
		return fmt.Errorf("nil record")
	}
	if i < 0 || i >= len(r.values) {
		return fmt.Errorf("%s index %d out of range [0, %d)", r.schema.name, i, len(r.values))
	}
	return r.schema.fields[i].set(r, v)
}

// SetSlice assigns fields i through j-1 from vals, rejecting a mismatched
// count before any field is written.
func (r *Record) SetSlice(i, j int, vals []any) error {
	if r == nil {
		return fmt.Errorf("nil record")
	}
	if i < 0 || j < i || j > len(r.values) {
		return fmt.Errorf("%s slice [%d:%d] out of range [0, %d)", r.schema.name, i, j, len(r.values))
	}
	if len(vals) < j-i {
		return fmt.Errorf("need %d value(s) to unpack, got %d", j-i, len(vals))
	}
	if len(vals) > j-i {
		return fmt.Errorf("too many values to unpack (expected %d)", j-i)
	}
	for k, v := range vals {
		if err := r.schema.fields[i+k].set(r, v); err != nil {
			return err
		}
	}
	return nil
}

// Items returns the ordered name-to-value view of the record.
func (r *Record) Items() []Item {
	if r == nil {
		return nil
	}
	out := make([]Item, len(r.values))
	for i, f := range r.schema.fields {
		out[i] = Item{Name: f.name, Value: r.values[i]}
	}
	return out
}

// AsMap returns the fields as a map. Use Items when order matters.
func (r *Record) AsMap() map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r.values))
	for i, f := range r.schema.fields {
		out[f.name] = r.values[i]
	}
	return out
}

// Replace returns a copy of the record with the named fields overridden. The
// copy is produced by re-invoking the full constructor, defaults and init
// hook included, so overrides are validated exactly like constructor
// arguments.
func (r *Record) Replace(overrides map[string]any) (*Record, error) {
	if r == nil {
		return nil, fmt.Errorf("nil record")
	}
	kw := r.AsMap()
	for name, v := range overrides {
		kw[name] = v
	}
	return r.schema.Make(nil, kw)
}
