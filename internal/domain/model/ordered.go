package model

import (
	"bytes"
	"encoding/json"
)

// Ordered is a string-keyed map that remembers insertion order.
// The zero value is ready to use.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrdered returns an empty Ordered with room for n keys.
func NewOrdered[V any](n int) *Ordered[V] {
	return &Ordered[V]{
		keys:   make([]string, 0, n),
		values: make(map[string]V, n),
	}
}

// Set stores v under key. Re-setting an existing key keeps its position.
func (o *Ordered[V]) Set(key string, v V) {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (V, bool) {
	if o == nil {
		var zero V
		return zero, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of keys.
func (o *Ordered[V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	if o == nil {
		return []string{}
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Each calls fn for every entry in insertion order until fn returns false.
func (o *Ordered[V]) Each(fn func(key string, v V) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// MarshalJSON renders the map as a JSON object in insertion order.
func (o *Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	o.Each(func(k string, v V) bool {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		var kb, vb []byte
		if kb, err = json.Marshal(k); err != nil {
			return false
		}
		if vb, err = json.Marshal(v); err != nil {
			return false
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the document's key order.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}
	o.keys = o.keys[:0]
	o.values = make(map[string]V)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		o.Set(key, v)
	}
	_, err = dec.Token()
	return err
}
