package simplestruct

import (
	"fmt"
	"strings"
)

type renderMode uint8

const (
	modeDisplay renderMode = iota
	modeLiteral
)

// String renders the record as TypeName(f1=v1, ..., fN=vN) in schema order,
// applying display formatting to every value recursively. Re-entrant
// rendering of the same record (a self-referential structure) is replaced
// with an ellipsis.
func (r *Record) String() string {
	if r == nil {
		return "<nil>"
	}
	return r.render(modeDisplay, make(map[*Record]bool))
}

// GoString renders the record in literal form: the same shape as String but
// with values printed reconstructibly (strings quoted, and so on).
func (r *Record) GoString() string {
	if r == nil {
		return "<nil>"
	}
	return r.render(modeLiteral, make(map[*Record]bool))
}

func (r *Record) render(mode renderMode, active map[*Record]bool) string {
	if active[r] {
		return "..."
	}
	active[r] = true
	defer delete(active, r)

	var b strings.Builder
	b.WriteString(r.schema.name)
	b.WriteByte('(')
	for i, f := range r.schema.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(renderValue(f.get(r), mode, active))
	}
	b.WriteByte(')')
	return b.String()
}

func renderValue(v any, mode renderMode, active map[*Record]bool) string {
	switch x := v.(type) {
	case *Record:
		if x == nil {
			return "nil"
		}
		return x.render(mode, active)
	case []any:
		var b strings.Builder
		b.WriteByte('[')
		for i, elem := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(renderValue(elem, mode, active))
		}
		b.WriteByte(']')
		return b.String()
	}
	if mode == modeLiteral {
		return fmt.Sprintf("%#v", v)
	}
	return fmt.Sprintf("%v", v)
}
