package simplestruct

import (
	"strings"

	"github.com/brandjon/simplestruct/errors"
)

// Slot pairs a declared field name with its descriptor. A nil Field is
// shorthand for a plain field with no kind restriction.
type Slot struct {
	Name  string
	Field *Field
}

// F is a convenience constructor for a Slot.
func F(name string, field *Field) Slot {
	return Slot{Name: name, Field: field}
}

// InitFunc is the optional post-construction hook. It runs after every field
// has been assigned (defaults included) and before the record is marked
// initialized, so it may still overwrite fields of an immutable schema and
// may attach extra non-field attributes.
type InitFunc func(r *Record) error

// Schema is the compiled, ordered description of a record type: its fields
// and derived constructor signature. A Schema is built exactly once by Define
// and is immutable afterwards; concurrent reads are safe.
type Schema struct {
	name      string
	fields    []*Field
	byName    map[string]int
	immutable bool
	inherits  bool
	hook      InitFunc
}

// DefineOption configures schema compilation.
type DefineOption interface{ apply(*defineConfig) }

type defineConfig struct {
	mutable bool
	bases   []*Schema
	hook    InitFunc
}

type defineOptionFunc func(*defineConfig)

func (f defineOptionFunc) apply(cfg *defineConfig) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// Mutable declares the record type writable after construction. Mutable
// records are permanently hash-ineligible.
func Mutable() DefineOption {
	return defineOptionFunc(func(cfg *defineConfig) {
		cfg.mutable = true
	})
}

// Inherit opts the type into field inheritance: the fields of each base, left
// to right, are prepended to the type's own declared fields.
func Inherit(bases ...*Schema) DefineOption {
	return defineOptionFunc(func(cfg *defineConfig) {
		cfg.bases = append(cfg.bases, bases...)
	})
}

// WithInit installs the post-construction hook.
func WithInit(hook InitFunc) DefineOption {
	return defineOptionFunc(func(cfg *defineConfig) {
		cfg.hook = hook
	})
}

// Define compiles a record type: it gathers inherited then own field
// descriptors, clones each one and stamps it with its declared name, enforces
// name uniqueness, and derives the constructor signature. Records are
// immutable unless the Mutable option is given. Define never partially
// succeeds: a Definition error means no record of the type can ever exist.
func Define(name string, slots []Slot, opts ...DefineOption) (*Schema, error) {
	if name == "" {
		return nil, errors.NewDefinition(errors.ErrSchemaInvalidSlot, "<anonymous>", "schema name must not be empty")
	}
	var cfg defineConfig
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}

	s := &Schema{
		name:      name,
		immutable: !cfg.mutable,
		inherits:  len(cfg.bases) > 0,
		hook:      cfg.hook,
	}

	for _, base := range cfg.bases {
		if base == nil {
			return nil, errors.NewDefinition(errors.ErrSchemaInvalidSlot, name, "inherited base schema is nil")
		}
		for _, bf := range base.fields {
			f := bf.clone()
			f.name = bf.name
			s.fields = append(s.fields, f)
		}
	}
	for _, slot := range slots {
		if slot.Name == "" {
			return nil, errors.NewDefinition(errors.ErrSchemaInvalidSlot, name, "field name must not be empty")
		}
		decl := slot.Field
		if decl == nil {
			decl = &Field{}
		}
		f := decl.clone()
		f.name = slot.Name
		s.fields = append(s.fields, f)
	}

	if collided := collidingNames(s.fields); len(collided) > 0 {
		return nil, errors.NewDefinition(errors.ErrSchemaFieldCollision, name,
			"colliding field name(s): %s", strings.Join(collided, ", "))
	}

	s.byName = make(map[string]int, len(s.fields))
	for i, f := range s.fields {
		f.index = i
		s.byName[f.name] = i

		k, err := normalizeKind(f.Kind)
		if err != nil {
			return nil, errors.NewDefinition(errors.ErrSchemaInvalidKind, name,
				"field %q: %v", f.name, err)
		}
		f.Kind = k
	}

	defaulted := ""
	for _, f := range s.fields {
		if f.hasDefault {
			defaulted = f.name
			continue
		}
		if defaulted != "" {
			return nil, errors.NewDefinition(errors.ErrSchemaDefaultOrder, name,
				"non-default field %q follows default field %q", f.name, defaulted)
		}
	}

	return s, nil
}

// MustDefine is like Define but panics on error. Intended for package-level
// schema declarations, where a Definition error is a programming mistake.
func MustDefine(name string, slots []Slot, opts ...DefineOption) *Schema {
	s, err := Define(name, slots, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// collidingNames returns every repeated field name, in first-seen order.
func collidingNames(fields []*Field) []string {
	counts := make(map[string]int, len(fields))
	for _, f := range fields {
		counts[f.name]++
	}
	var collided []string
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if counts[f.name] > 1 && !seen[f.name] {
			collided = append(collided, f.name)
			seen[f.name] = true
		}
	}
	return collided
}

// Name returns the schema's declared type name.
func (s *Schema) Name() string {
	return s.name
}

// NumFields returns the number of schema slots.
func (s *Schema) NumFields() int {
	return len(s.fields)
}

// FieldNames returns the field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Field returns the compiled descriptor for the named slot. The result is a
// named copy: writing to it never alters the compiled schema.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	f := s.fields[i].clone()
	f.name = name
	f.index = i
	return f, true
}

// IsMutable reports whether records of this schema stay writable after
// construction.
func (s *Schema) IsMutable() bool {
	return !s.immutable
}

// InheritsFields reports whether the type opted into field inheritance.
func (s *Schema) InheritsFields() bool {
	return s.inherits
}
