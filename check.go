package simplestruct

import (
	"fmt"
	"reflect"

	"github.com/brandjon/simplestruct/errors"
	"github.com/brandjon/simplestruct/internal/valuehash"
)

// CheckType reports a TypeMismatch error if v does not satisfy kind.
// The check is pure and stateless.
func CheckType(v any, kind Kind) error {
	if kind.matches(v) {
		return nil
	}
	return errors.NewKindMismatch(kind.String(), typeName(v))
}

// CheckTypeSeq reports a TypeMismatch error if seq is not a finite, length-known
// sequence of elements satisfying kind. Only slices and arrays count as
// sequences; one-shot producers such as channels or iterator functions are
// rejected rather than drained. A string is an atomic value, never a sequence
// of characters, and fails with a distinct message. If unique is set, elements
// are compared pairwise against every previously seen element and the first
// duplicate is reported with its value and position.
func CheckTypeSeq(seq any, kind Kind, unique bool) error {
	exp := kind.String()

	if seq == nil {
		return errors.NewNotASequence(exp, typeName(seq))
	}
	rv := reflect.ValueOf(seq)
	switch rv.Kind() {
	case reflect.String:
		// Named string types are still strings.
		return errors.NewStringAsSequence(exp, "string")
	case reflect.Slice, reflect.Array:
	default:
		return errors.NewNotASequence(exp, typeName(seq))
	}

	n := rv.Len()
	for i := 0; i < n; i++ {
		elem := rv.Index(i).Interface()
		if !kind.matches(elem) {
			return errors.NewSequenceElement(exp, typeName(elem), i)
		}
	}

	if unique {
		// Pairwise scan; duplicates must be detectable without
		// hashability from the elements.
		seen := make([]any, 0, n)
		for i := 0; i < n; i++ {
			elem := rv.Index(i).Interface()
			for _, prev := range seen {
				if valuehash.DeepEqual(prev, elem) {
					return errors.NewDuplicateElement(renderElement(elem), i)
				}
			}
			seen = append(seen, elem)
		}
	}
	return nil
}

// tupleOf normalizes a checked sequence into a fresh engine-owned tuple.
// Callers must have validated seq with CheckTypeSeq first.
func tupleOf(seq any) []any {
	rv := reflect.ValueOf(seq)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// renderElement prints a duplicate element for the error contract.
func renderElement(v any) string {
	if r, ok := v.(*Record); ok {
		return r.GoString()
	}
	return fmt.Sprintf("%#v", v)
}
