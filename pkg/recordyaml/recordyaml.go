// Package recordyaml round-trips records through YAML using only the engine's
// reconstruction contract: a record is captured as its type name plus its
// ordered constructor arguments, and decoding re-runs the full constructor.
package recordyaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/brandjon/simplestruct"
)

// Codec encodes and decodes records of schemas known to its registry.
type Codec struct {
	reg *simplestruct.Registry
}

// NewCodec returns a codec over the given registry.
func NewCodec(reg *simplestruct.Registry) *Codec {
	return &Codec{reg: reg}
}

// document is the wire shape of one record.
type document struct {
	Type string `yaml:"type"`
	Args []any  `yaml:"args"`
}

// Marshal encodes a record, including nested records, to YAML.
func (c *Codec) Marshal(r *simplestruct.Record) ([]byte, error) {
	if c == nil || c.reg == nil {
		return nil, fmt.Errorf("recordyaml: nil codec")
	}
	if r == nil {
		return nil, fmt.Errorf("recordyaml: nil record")
	}
	doc, err := c.encodeRecord(r)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// Unmarshal decodes YAML produced by Marshal back into a record, re-invoking
// each schema's constructor so every field is validated again.
func (c *Codec) Unmarshal(data []byte) (*simplestruct.Record, error) {
	if c == nil || c.reg == nil {
		return nil, fmt.Errorf("recordyaml: nil codec")
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("recordyaml: %w", err)
	}
	return c.decodeDocument(doc)
}

func (c *Codec) encodeRecord(r *simplestruct.Record) (*document, error) {
	name := r.TypeName()
	if _, ok := c.reg.Lookup(name); !ok {
		return nil, fmt.Errorf("recordyaml: record type %q not registered", name)
	}
	args := r.ConstructorArgs()
	encoded := make([]any, len(args))
	for i, arg := range args {
		v, err := c.encodeValue(arg)
		if err != nil {
			return nil, err
		}
		encoded[i] = v
	}
	return &document{Type: name, Args: encoded}, nil
}

func (c *Codec) encodeValue(v any) (any, error) {
	switch x := v.(type) {
	case *simplestruct.Record:
		return c.encodeRecord(x)
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			enc, err := c.encodeValue(elem)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	default:
		return v, nil
	}
}

func (c *Codec) decodeDocument(doc document) (*simplestruct.Record, error) {
	schema, ok := c.reg.Lookup(doc.Type)
	if !ok {
		return nil, fmt.Errorf("recordyaml: record type %q not registered", doc.Type)
	}
	args := make([]any, len(doc.Args))
	for i, arg := range doc.Args {
		dec, err := c.decodeValue(arg)
		if err != nil {
			return nil, err
		}
		args[i] = dec
	}
	return schema.New(args...)
}

func (c *Codec) decodeValue(v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		doc, ok := asDocument(x)
		if !ok {
			return nil, fmt.Errorf("recordyaml: mapping is not a record document: %v", x)
		}
		return c.decodeDocument(doc)
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			dec, err := c.decodeValue(elem)
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil
	default:
		return v, nil
	}
}

func asDocument(m map[string]any) (document, bool) {
	if len(m) != 2 {
		return document{}, false
	}
	name, ok := m["type"].(string)
	if !ok {
		return document{}, false
	}
	rawArgs, ok := m["args"]
	if !ok {
		return document{}, false
	}
	args, ok := rawArgs.([]any)
	if !ok && rawArgs != nil {
		return document{}, false
	}
	return document{Type: name, Args: args}, true
}
