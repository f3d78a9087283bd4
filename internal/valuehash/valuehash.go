// Package valuehash provides the default structural equality and hashing used
// for record field values. Records participate through the Equaler and Hasher
// interfaces so this package needs no knowledge of the record type itself.
package valuehash

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"math"
	"reflect"
)

// Equaler is implemented by values that define their own structural equality.
type Equaler interface {
	StructuralEqual(other any) bool
}

// Hasher is implemented by values that define their own structural hash.
type Hasher interface {
	StructuralHash() (uint64, error)
}

// DeepEqual reports whether a and b are structurally equal. Values
// implementing Equaler compare through it; engine-owned tuples ([]any)
// compare elementwise; everything else falls back to reflect.DeepEqual.
func DeepEqual(a, b any) bool {
	if e, ok := a.(Equaler); ok {
		return e.StructuralEqual(b)
	}
	if e, ok := b.(Equaler); ok {
		return e.StructuralEqual(a)
	}
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok || bok {
		if !aok || !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !DeepEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Value tags keep distinct scalar spaces from colliding in the hash stream.
const (
	tagNil byte = iota
	tagBool
	tagInt
	tagUint
	tagFloat
	tagComplex
	tagString
	tagBytes
	tagTuple
	tagHasher
	tagPointer
	tagArray
	tagStruct
)

type hashBuilder struct {
	h   hash.Hash64
	buf [8]byte
}

func newHashBuilder() *hashBuilder {
	return &hashBuilder{h: fnv.New64a()}
}

func (b *hashBuilder) write(p []byte) {
	// hash.Hash.Write never returns an error for standard library hashes.
	_, _ = b.h.Write(p)
}

func (b *hashBuilder) u8(v uint8) {
	b.buf[0] = v
	b.write(b.buf[:1])
}

func (b *hashBuilder) u64(v uint64) {
	binary.LittleEndian.PutUint64(b.buf[:8], v)
	b.write(b.buf[:8])
}

func (b *hashBuilder) bytes(data []byte) {
	b.u64(uint64(len(data)))
	if len(data) == 0 {
		return
	}
	b.write(data)
}

func (b *hashBuilder) sum64() uint64 {
	return b.h.Sum64()
}

// Hash returns a structural hash of v consistent with DeepEqual: values that
// compare equal hash identically, with pointers hashed through their pointee
// the way reflect.DeepEqual follows them. Values with no defined hash (maps,
// functions, channels, slices other than engine-owned tuples) return an error.
func Hash(v any) (uint64, error) {
	b := newHashBuilder()
	if err := hashInto(b, v); err != nil {
		return 0, err
	}
	return b.sum64(), nil
}

func hashInto(b *hashBuilder, v any) error {
	if v == nil {
		b.u8(tagNil)
		return nil
	}
	if h, ok := v.(Hasher); ok {
		sum, err := h.StructuralHash()
		if err != nil {
			return err
		}
		b.u8(tagHasher)
		b.u64(sum)
		return nil
	}

	switch x := v.(type) {
	case bool:
		b.u8(tagBool)
		if x {
			b.u8(1)
		} else {
			b.u8(0)
		}
		return nil
	case int:
		return hashInt(b, int64(x))
	case int8:
		return hashInt(b, int64(x))
	case int16:
		return hashInt(b, int64(x))
	case int32:
		return hashInt(b, int64(x))
	case int64:
		return hashInt(b, x)
	case uint:
		return hashUint(b, uint64(x))
	case uint8:
		return hashUint(b, uint64(x))
	case uint16:
		return hashUint(b, uint64(x))
	case uint32:
		return hashUint(b, uint64(x))
	case uint64:
		return hashUint(b, x)
	case float32:
		return hashFloat(b, float64(x))
	case float64:
		return hashFloat(b, x)
	case string:
		b.u8(tagString)
		b.bytes([]byte(x))
		return nil
	case []byte:
		b.u8(tagBytes)
		b.bytes(x)
		return nil
	case []any:
		b.u8(tagTuple)
		b.u64(uint64(len(x)))
		for _, elem := range x {
			if err := hashInto(b, elem); err != nil {
				return err
			}
		}
		return nil
	}

	return hashReflect(b, reflect.ValueOf(v), make(map[uintptr]bool))
}

// hashReflect hashes unrecognized values the way reflect.DeepEqual compares
// them: pointers are followed to their pointee, structs and arrays are walked
// componentwise. Kinds whose equality is identity or traversal-order dependent
// (channels, functions, maps, slices) have no defined hash. seen holds the
// pointers on the current walk path; a revisit means a cycle, which has no
// defined hash either.
func hashReflect(b *hashBuilder, rv reflect.Value, seen map[uintptr]bool) error {
	switch rv.Kind() {
	case reflect.Bool:
		b.u8(tagBool)
		if rv.Bool() {
			b.u8(1)
		} else {
			b.u8(0)
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return hashInt(b, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return hashUint(b, rv.Uint())
	case reflect.Float32, reflect.Float64:
		return hashFloat(b, rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		b.u8(tagComplex)
		b.u64(math.Float64bits(real(c)))
		b.u64(math.Float64bits(imag(c)))
		return nil
	case reflect.String:
		b.u8(tagString)
		b.bytes([]byte(rv.String()))
		return nil
	case reflect.Pointer:
		if rv.IsNil() {
			b.u8(tagNil)
			return nil
		}
		addr := rv.Pointer()
		if seen[addr] {
			return fmt.Errorf("unhashable cyclic value of type %s", rv.Type())
		}
		seen[addr] = true
		b.u8(tagPointer)
		err := hashReflect(b, rv.Elem(), seen)
		delete(seen, addr)
		return err
	case reflect.Interface:
		if rv.IsNil() {
			b.u8(tagNil)
			return nil
		}
		return hashReflect(b, rv.Elem(), seen)
	case reflect.Array:
		b.u8(tagArray)
		b.u64(uint64(rv.Len()))
		for i := 0; i < rv.Len(); i++ {
			if err := hashReflect(b, rv.Index(i), seen); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		b.u8(tagStruct)
		b.u64(uint64(rv.NumField()))
		for i := 0; i < rv.NumField(); i++ {
			if err := hashReflect(b, rv.Field(i), seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unhashable value of type %s", rv.Type())
	}
}

func hashInt(b *hashBuilder, v int64) error {
	b.u8(tagInt)
	b.u64(uint64(v))
	return nil
}

func hashUint(b *hashBuilder, v uint64) error {
	b.u8(tagUint)
	b.u64(v)
	return nil
}

func hashFloat(b *hashBuilder, v float64) error {
	b.u8(tagFloat)
	b.u64(math.Float64bits(v))
	return nil
}
