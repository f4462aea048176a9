package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its keys in source order.
//
// Nested values are decoded as Object (objects), List (arrays), json.Number,
// string, bool or nil. Order matters for the presentation layer: benchmark
// tables and preset charts are rendered in the order the scraper exported them.
type Object []Field

// Get returns the value of the first field named key.
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, f := range o {
		keys[i] = f.Key
	}
	return keys
}

// Values returns the field values in order.
func (o Object) Values() []any {
	values := make([]any, len(o))
	for i, f := range o {
		values[i] = f.Value
	}
	return values
}

// MarshalJSON writes the fields in their stored order.
func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. JSON null yields a nil Object.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := decodeOrdered(data)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*o = nil
	case Object:
		*o = t
	default:
		return fmt.Errorf("domain: expected JSON object, got %s", jsonKind(v))
	}
	return nil
}

// List is a JSON array whose nested objects keep their key order.
type List []any

// UnmarshalJSON decodes a JSON array. JSON null yields a nil List.
func (l *List) UnmarshalJSON(data []byte) error {
	v, err := decodeOrdered(data)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*l = nil
	case List:
		*l = t
	default:
		return fmt.Errorf("domain: expected JSON array, got %s", jsonKind(v))
	}
	return nil
}

func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := Object{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("domain: unexpected object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, Field{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		list := List{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("domain: unexpected delimiter %q", delim)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case Object:
		return "object"
	case List:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// UnmarshalSequence decodes a JSON array into dst. Null or empty input yields an
// empty, non-nil sequence so stored records never carry nil nested fields.
func UnmarshalSequence[S ~[]E, E any](data []byte, dst *S) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*dst = S{}
		return nil
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = S{}
	}
	return nil
}

// MarshalSequence encodes s as a JSON array; nil encodes as [].
func MarshalSequence[S ~[]E, E any](s S) ([]byte, error) {
	if s == nil {
		s = S{}
	}
	return json.Marshal(s)
}
