// Package errors defines the structured error surface of the record engine.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies one contract violation family.
type ErrorCode string

const (
	// ErrSchemaFieldCollision indicates a field name declared more than once.
	ErrSchemaFieldCollision ErrorCode = "schema-field-collision"
	// ErrSchemaDefaultOrder indicates a non-default field after a defaulted one.
	ErrSchemaDefaultOrder ErrorCode = "schema-default-order"
	// ErrSchemaInvalidSlot indicates an unusable slot declaration.
	ErrSchemaInvalidSlot ErrorCode = "schema-invalid-slot"
	// ErrSchemaInvalidKind indicates a kind declaration naming no usable type.
	ErrSchemaInvalidKind ErrorCode = "schema-invalid-kind"

	// ErrConstructBind indicates constructor argument binding failed.
	ErrConstructBind ErrorCode = "construct-bind"
	// ErrConstructField indicates a field failed validation during construction.
	ErrConstructField ErrorCode = "construct-field"
	// ErrConstructInit indicates the post-construction hook failed.
	ErrConstructInit ErrorCode = "construct-init"

	// ErrMutateFrozen indicates a write to an initialized immutable record.
	ErrMutateFrozen ErrorCode = "mutate-frozen"

	// ErrKindMismatch indicates a value outside a field's declared kind.
	ErrKindMismatch ErrorCode = "kind-mismatch"
	// ErrNotASequence indicates a non-sequence value on a sequence field.
	ErrNotASequence ErrorCode = "not-a-sequence"
	// ErrStringAsSequence indicates a bare string on a sequence field.
	ErrStringAsSequence ErrorCode = "string-as-sequence"
	// ErrSequenceElement indicates a sequence element outside the kind.
	ErrSequenceElement ErrorCode = "sequence-element"
	// ErrDuplicateElement indicates a repeated element where uniqueness is required.
	ErrDuplicateElement ErrorCode = "duplicate-element"

	// ErrHashMutable indicates hashing of a mutable record.
	ErrHashMutable ErrorCode = "hash-mutable"
	// ErrHashUninitialized indicates hashing before initialization finished.
	ErrHashUninitialized ErrorCode = "hash-uninitialized"
	// ErrUnhashableValue indicates a field value with no defined hash.
	ErrUnhashableValue ErrorCode = "unhashable-value"
)

// Definition describes a schema-build failure. Definition errors are fatal to
// the type declaration; no record of the type can exist afterwards.
type Definition struct {
	Code    ErrorCode
	Schema  string
	Message string
}

// Error formats the definition failure with its code and schema name.
func (e *Definition) Error() string {
	if e == nil {
		return "definition <nil>"
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Schema, e.Message)
}

// NewDefinition builds a Definition error for the named schema.
func NewDefinition(code ErrorCode, schema, format string, args ...any) *Definition {
	return &Definition{Code: code, Schema: schema, Message: fmt.Sprintf(format, args...)}
}

// Construction describes a failed record construction. Field is set when the
// failure is attributable to one field's assignment.
type Construction struct {
	Code   ErrorCode
	Schema string
	Field  string
	Err    error
}

// Error identifies the declaring type, the offending field if known, and the cause.
func (e *Construction) Error() string {
	if e == nil {
		return "construction <nil>"
	}
	if e.Field != "" {
		return fmt.Sprintf("error constructing %s (field %q): %v", e.Schema, e.Field, e.Err)
	}
	return fmt.Sprintf("error constructing %s: %v", e.Schema, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Construction) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Mutation describes a rejected write to an initialized immutable record.
type Mutation struct {
	Schema string
	Field  string
}

// Error reports the frozen record and the field that was written.
func (e *Mutation) Error() string {
	if e == nil {
		return "mutation <nil>"
	}
	return fmt.Sprintf("[%s] cannot set field %q: %s is immutable", ErrMutateFrozen, e.Field, e.Schema)
}

// TypeMismatch describes a kind-check failure. Its Error text is the externally
// testable contract and carries no code prefix.
type TypeMismatch struct {
	Code     ErrorCode
	Expected string
	Actual   string
	Position int
	Value    string
	message  string
}

// Error returns the exact contract message for this mismatch.
func (e *TypeMismatch) Error() string {
	if e == nil {
		return "type mismatch <nil>"
	}
	return e.message
}

// NewKindMismatch reports a scalar value outside the expected kind.
func NewKindMismatch(expected, actual string) *TypeMismatch {
	return &TypeMismatch{
		Code:     ErrKindMismatch,
		Expected: expected,
		Actual:   actual,
		Position: -1,
		message:  fmt.Sprintf("Expected %s; got %s", expected, actual),
	}
}

// NewNotASequence reports a non-sequence value where a sequence was expected.
func NewNotASequence(expected, actual string) *TypeMismatch {
	return &TypeMismatch{
		Code:     ErrNotASequence,
		Expected: expected,
		Actual:   actual,
		Position: -1,
		message:  fmt.Sprintf("Expected sequence of %s; got %s instead of sequence", expected, actual),
	}
}

// NewStringAsSequence reports a bare string offered as a character sequence.
func NewStringAsSequence(expected, textType string) *TypeMismatch {
	return &TypeMismatch{
		Code:     ErrStringAsSequence,
		Expected: expected,
		Actual:   textType,
		Position: -1,
		message: fmt.Sprintf("Expected sequence of %s; got single %s "+
			"(strings do not count as character sequences)", expected, textType),
	}
}

// NewSequenceElement reports the first element outside the expected kind.
func NewSequenceElement(expected, actual string, pos int) *TypeMismatch {
	return &TypeMismatch{
		Code:     ErrSequenceElement,
		Expected: expected,
		Actual:   actual,
		Position: pos,
		message:  fmt.Sprintf("Expected sequence of %s; got sequence with %s at position %d", expected, actual, pos),
	}
}

// NewDuplicateElement reports the first repeated element of a unique sequence.
func NewDuplicateElement(value string, pos int) *TypeMismatch {
	return &TypeMismatch{
		Code:     ErrDuplicateElement,
		Position: pos,
		Value:    value,
		message:  fmt.Sprintf("Duplicate element %s at position %d", value, pos),
	}
}

// Hashability describes a hash request on a record that is not hash-eligible.
type Hashability struct {
	Code   ErrorCode
	Schema string
}

// Error reports why the record cannot be hashed.
func (e *Hashability) Error() string {
	if e == nil {
		return "hashability <nil>"
	}
	switch e.Code {
	case ErrHashUninitialized:
		return fmt.Sprintf("[%s] cannot hash uninitialized record %s", e.Code, e.Schema)
	default:
		return fmt.Sprintf("[%s] cannot hash mutable record %s", e.Code, e.Schema)
	}
}

// AsTypeMismatch extracts a TypeMismatch from an error chain.
func AsTypeMismatch(err error) (*TypeMismatch, bool) {
	var tm *TypeMismatch
	if errors.As(err, &tm) {
		return tm, true
	}
	return nil, false
}

// AsConstruction extracts a Construction error from an error chain.
func AsConstruction(err error) (*Construction, bool) {
	var c *Construction
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}

// AsDefinition extracts a Definition error from an error chain.
func AsDefinition(err error) (*Definition, bool) {
	var d *Definition
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// AsMutation extracts a Mutation error from an error chain.
func AsMutation(err error) (*Mutation, bool) {
	var m *Mutation
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

// AsHashability extracts a Hashability error from an error chain.
func AsHashability(err error) (*Hashability, bool) {
	var h *Hashability
	if errors.As(err, &h) {
		return h, true
	}
	return nil, false
}
