package simplestruct

import (
	"fmt"

	"github.com/brandjon/simplestruct/errors"
)

// Equal reports structural equality: the same record, or a record of exactly
// the same schema whose fields all compare equal under each field's
// configured strategy. Records of different schemas are never equal, even
// sibling or parent/child types with identical visible values.
func (r *Record) Equal(other *Record) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	if r.schema != other.schema {
		return false
	}
	for _, f := range r.schema.fields {
		if !f.equal(f.get(r), f.get(other)) {
			return false
		}
	}
	return true
}

// StructuralEqual lets a record nested inside another field value compare
// through the default structural equality walker.
func (r *Record) StructuralEqual(other any) bool {
	o, ok := other.(*Record)
	if !ok {
		return false
	}
	return r.Equal(o)
}

// Hash returns the record's structural hash: the XOR fold, seeded at zero, of
// each field's hash contribution. Equality requires an identical schema, so
// the fold's order-independence never conflates distinct records that compare
// equal. Hashing fails unless the record is immutable and fully initialized.
func (r *Record) Hash() (uint64, error) {
	if r == nil {
		return 0, fmt.Errorf("nil record")
	}
	if !r.schema.immutable {
		return 0, &errors.Hashability{Code: errors.ErrHashMutable, Schema: r.schema.name}
	}
	if r.state != stateInitialized {
		return 0, &errors.Hashability{Code: errors.ErrHashUninitialized, Schema: r.schema.name}
	}
	var h uint64
	for _, f := range r.schema.fields {
		fh, err := f.hashValue(f.get(r))
		if err != nil {
			return 0, err
		}
		h ^= fh
	}
	return h, nil
}

// StructuralHash lets a nested record contribute to an enclosing value's hash.
func (r *Record) StructuralHash() (uint64, error) {
	return r.Hash()
}
