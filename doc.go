// Package simplestruct is a record-definition engine: declare a fixed-shape
// record type once by listing its typed fields, and get argument-bound
// construction, optional immutability, structural equality and hashing,
// per-field type validation, field inheritance, and safe pretty-printing and
// decomposition, all without hand-writing a constructor or equality methods.
//
// A type is declared with Define, which compiles an immutable Schema:
//
//	point := simplestruct.MustDefine("Point", []simplestruct.Slot{
//		simplestruct.F("x", simplestruct.NewField(simplestruct.KindFor[int]())),
//		simplestruct.F("y", simplestruct.NewField(simplestruct.KindFor[int]())),
//	})
//
// Records are built through the schema's constructor and compared, hashed,
// printed, and decomposed structurally:
//
//	p, _ := point.New(1, 2)
//	q, _ := point.Make(nil, map[string]any{"x": 1, "y": 2})
//	p.Equal(q) // true
//
// Construction is two-phase: fields are assigned through validating setters
// while the record is still initializing (an optional init hook runs inside
// this window), and the record only freezes once initialization completes.
// Immutable records reject writes from then on and become hash-eligible;
// mutable records stay writable and can never be hashed.
package simplestruct
