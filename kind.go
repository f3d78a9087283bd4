package simplestruct

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind is an immutable set of acceptable runtime types for a field value.
// Members are either reflect.Type values (satisfied assignability-inclusive,
// so an interface member admits every implementation) or compiled record
// schemas (satisfied by records of exactly that schema). The zero Kind
// accepts anything.
type Kind struct {
	members  []kindMember
	emptySet bool
	invalid  string
}

type kindMember struct {
	typ    reflect.Type
	schema *Schema
}

// AnyKind returns the kind that accepts any value.
func AnyKind() Kind {
	return Kind{}
}

// KindFor returns the singleton kind for the type T.
func KindFor[T any]() Kind {
	return Kind{members: []kindMember{{typ: reflect.TypeOf((*T)(nil)).Elem()}}}
}

// KindOf builds a kind from an enumeration of members. Each member must be a
// reflect.Type or a *Schema; anything else marks the kind invalid, which is
// rejected when the declaring schema is compiled. KindOf with no members is
// the empty set, which no value satisfies.
func KindOf(members ...any) Kind {
	if len(members) == 0 {
		return Kind{emptySet: true}
	}
	k := Kind{members: make([]kindMember, 0, len(members))}
	for _, m := range members {
		switch x := m.(type) {
		case reflect.Type:
			k.members = append(k.members, kindMember{typ: x})
		case *Schema:
			k.members = append(k.members, kindMember{schema: x})
		default:
			k.invalid = fmt.Sprintf("kind member must be reflect.Type or *Schema, not %T", m)
			return k
		}
	}
	return k
}

// normalizeKind validates a kind for use in a compiled schema.
func normalizeKind(k Kind) (Kind, error) {
	if k.invalid != "" {
		return k, fmt.Errorf("%s", k.invalid)
	}
	for _, m := range k.members {
		if m.typ == nil && m.schema == nil {
			return k, fmt.Errorf("kind member names no type")
		}
	}
	return k, nil
}

// isAny reports whether the kind accepts anything.
func (k Kind) isAny() bool {
	return len(k.members) == 0 && !k.emptySet && k.invalid == ""
}

// recordSchema returns the coercion target when the kind names exactly one
// record type.
func (k Kind) recordSchema() (*Schema, bool) {
	if len(k.members) == 1 && k.members[0].schema != nil {
		return k.members[0].schema, true
	}
	return nil, false
}

// matches reports whether v's runtime type belongs to the kind.
func (k Kind) matches(v any) bool {
	if k.isAny() {
		return true
	}
	if k.emptySet {
		return false
	}
	for _, m := range k.members {
		if m.schema != nil {
			if r, ok := v.(*Record); ok && r != nil && r.schema == m.schema {
				return true
			}
			continue
		}
		if v == nil {
			continue
		}
		if rt := reflect.TypeOf(v); rt.AssignableTo(m.typ) {
			return true
		}
	}
	return false
}

// String describes the kind the way kind-check errors report it:
// "any", "T", "T1 or T2", or "one of {T1, T2, T3}".
func (k Kind) String() string {
	if k.isAny() {
		return "any"
	}
	if k.emptySet {
		return "()"
	}
	names := make([]string, len(k.members))
	for i, m := range k.members {
		names[i] = m.name()
	}
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return "one of {" + strings.Join(names, ", ") + "}"
	}
}

func (m kindMember) name() string {
	if m.schema != nil {
		return m.schema.name
	}
	if m.typ == nil {
		return "<nil>"
	}
	return m.typ.String()
}

// typeName describes v's runtime type for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	if r, ok := v.(*Record); ok && r != nil {
		return r.schema.name
	}
	return reflect.TypeOf(v).String()
}
