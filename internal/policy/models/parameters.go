package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	dErrors "esbresolver/pkg/domain-errors"
)

// Parameters is an insertion-ordered mapping. Setting an existing key
// replaces its value in place, so the last write wins and keeps the
// original position.
type Parameters struct {
	keys   []string
	values map[string]any
}

// NewParameters returns an empty mapping.
func NewParameters() *Parameters {
	return &Parameters{values: make(map[string]any)}
}

// Set stores value under key.
func (p *Parameters) Set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value under key.
func (p *Parameters) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Value returns the value under key or nil. Rule expressions use it.
func (p *Parameters) Value(key string) any {
	v, _ := p.Get(key)
	return v
}

// Has reports whether key is present.
func (p *Parameters) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (p *Parameters) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of entries.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone returns a copy that shares no state with p.
func (p *Parameters) Clone() *Parameters {
	out := NewParameters()
	if p == nil {
		return out
	}
	for _, k := range p.keys {
		out.Set(k, p.values[k])
	}
	return out
}

// MarshalJSON writes an object whose members follow insertion order.
func (p *Parameters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal parameter %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping member order. Duplicate members
// follow the Set rule.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	*p = Parameters{values: make(map[string]any)}
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return dErrors.New(dErrors.CodeInvalidInput, "parameters must be a json object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode parameter %q: %w", key, err)
		}
		p.Set(key, value)
	}
	_, err = dec.Token()
	return err
}
