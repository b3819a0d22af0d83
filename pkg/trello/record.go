package trello

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Record is the field set of one API entity, keyed by field name.
//
// Values are whatever the API returned: string, float64, bool, nil, a nested
// *Record for JSON objects, or []any for JSON arrays. Keys keep the order in
// which they were first set; records decoded from JSON keep the document order.
//
// The zero value is an empty record ready to use. A nil *Record reads as empty.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{}
}

// RecordOf builds a record from alternating key, value arguments.
// It panics if a key is not a string or a value is missing.
func RecordOf(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("trello: RecordOf needs an even number of arguments")
	}
	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("trello: RecordOf key %v is not a string", kv[i]))
		}
		r.Set(key, kv[i+1])
	}
	return r
}

// Get returns the value for key, or nil if the key is not set.
func (r *Record) Get(key string) any {
	v, _ := r.Lookup(key)
	return v
}

// Lookup returns the value for key and whether the key is present.
func (r *Record) Lookup(key string) (any, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the value for key formatted as a string, or "" if unset.
func (r *Record) GetString(key string) string {
	switch v := r.Get(key).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return formatScalar(v)
	}
}

// Set stores value under key. A new key is appended to the key order.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Has reports whether key is set to a non-nil value.
func (r *Record) Has(key string) bool {
	v, ok := r.Lookup(key)
	return ok && v != nil
}

// Remove deletes key. Removing an absent key does nothing.
func (r *Record) Remove(key string) {
	if _, ok := r.Lookup(key); !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Range calls fn for each key in insertion order until fn returns false.
func (r *Record) Range(fn func(key string, value any) bool) {
	for _, k := range r.Keys() {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := NewRecord()
	r.Range(func(k string, v any) bool {
		out.Set(k, cloneValue(v))
		return true
	})
	return out
}

// ToMap converts the record, and any nested records, to plain maps.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, r.Len())
	r.Range(func(k string, v any) bool {
		out[k] = plainValue(v)
		return true
	})
	return out
}

// Decode copies the record into out, a pointer to a struct or map, matching
// fields by their json tag.
func (r *Record) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(r.ToMap()); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the record's content with a JSON object, keeping its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	v, err := decodeJSON(data)
	if err != nil {
		return err
	}
	rec, ok := v.(*Record)
	if !ok {
		return errors.New("trello: JSON value is not an object")
	}
	*r = *rec
	return nil
}

// decodeJSON decodes a single JSON document. Objects become *Record, arrays []any.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		rec := NewRecord()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			rec.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return rec, nil
	case '[':
		list := []any{}
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
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func plainValue(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

// sortedKeys returns the keys of a plain map in lexical order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
