package recordyaml_test

import (
	"strings"
	"testing"

	"github.com/brandjon/simplestruct"
	"github.com/brandjon/simplestruct/pkg/recordyaml"
)

func testRegistry(t *testing.T) (*simplestruct.Registry, *simplestruct.Schema, *simplestruct.Schema) {
	t.Helper()
	point := simplestruct.MustDefine("Point", []simplestruct.Slot{
		simplestruct.F("x", simplestruct.NewField(simplestruct.KindFor[int]())),
		simplestruct.F("y", simplestruct.NewField(simplestruct.KindFor[int]())),
	})
	line := simplestruct.MustDefine("Line", []simplestruct.Slot{
		simplestruct.F("a", simplestruct.NewField(simplestruct.KindOf(point))),
		simplestruct.F("b", simplestruct.NewField(simplestruct.KindOf(point))),
	})
	reg := simplestruct.NewRegistry()
	for _, s := range []*simplestruct.Schema{point, line} {
		if err := reg.Add(s); err != nil {
			t.Fatalf("Add(%s) error = %v", s.Name(), err)
		}
	}
	return reg, point, line
}

func TestRoundTrip(t *testing.T) {
	reg, point, line := testRegistry(t)
	codec := recordyaml.NewCodec(reg)

	l := line.MustNew(point.MustNew(1, 2), point.MustNew(3, 4))

	data, err := codec.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := codec.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Equal(l) {
		t.Errorf("round-trip = %v, want %v", got, l)
	}
}

func TestRoundTripSequenceField(t *testing.T) {
	vector := simplestruct.MustDefine("Vector", []simplestruct.Slot{
		simplestruct.F("vals", &simplestruct.Field{
			Kind: simplestruct.KindFor[int](),
			Seq:  true,
		}),
	})
	reg := simplestruct.NewRegistry()
	if err := reg.Add(vector); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	codec := recordyaml.NewCodec(reg)

	v := vector.MustNew([]int{3, 1, 2})
	data, err := codec.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := codec.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Equal(v) {
		t.Errorf("round-trip = %v, want %v", got, v)
	}
}

func TestUnmarshalValidates(t *testing.T) {
	reg, _, _ := testRegistry(t)
	codec := recordyaml.NewCodec(reg)

	// Decoding re-runs construction, so a bad argument is rejected.
	_, err := codec.Unmarshal([]byte("type: Point\nargs: [1, oops]\n"))
	if err == nil || !strings.Contains(err.Error(), "error constructing Point") {
		t.Errorf("Unmarshal() error = %v, want construction error", err)
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	reg, _, _ := testRegistry(t)
	codec := recordyaml.NewCodec(reg)

	_, err := codec.Unmarshal([]byte("type: Ghost\nargs: []\n"))
	if err == nil || !strings.Contains(err.Error(), `record type "Ghost" not registered`) {
		t.Errorf("Unmarshal() error = %v, want unknown type error", err)
	}
}

func TestMarshalUnregisteredRecord(t *testing.T) {
	reg, _, _ := testRegistry(t)
	codec := recordyaml.NewCodec(reg)

	other := simplestruct.MustDefine("Other", []simplestruct.Slot{
		simplestruct.F("v", simplestruct.NewField(simplestruct.KindFor[int]())),
	})
	_, err := codec.Marshal(other.MustNew(1))
	if err == nil || !strings.Contains(err.Error(), `record type "Other" not registered`) {
		t.Errorf("Marshal() error = %v, want unregistered type error", err)
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	reg, point, _ := testRegistry(t)

	// Re-adding the same schema is a no-op.
	if err := reg.Add(point); err != nil {
		t.Errorf("Add(same schema) error = %v, want nil", err)
	}

	clash := simplestruct.MustDefine("Point", []simplestruct.Slot{
		simplestruct.F("x", simplestruct.NewField(simplestruct.KindFor[int]())),
	})
	if err := reg.Add(clash); err == nil {
		t.Error("Add(clashing schema) = nil error, want duplicate name error")
	}
}
