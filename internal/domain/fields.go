package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one key/value pair of a JSON object.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Fields is a JSON object that keeps its keys in insertion order.
type Fields []Field

func (f Fields) Get(key string) (json.RawMessage, bool) {
	for _, fld := range f {
		if fld.Key == key {
			return fld.Value, true
		}
	}
	return nil, false
}

// GetString returns the value of key when it holds a JSON string.
func (f Fields) GetString(key string) (string, bool) {
	raw, ok := f.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Set replaces the value of an existing key in place or appends a new key.
func (f *Fields) Set(key string, value json.RawMessage) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// SetValue marshals v and stores it under key.
func (f *Fields) SetValue(key string, v any) error {
	raw, err := marshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	f.Set(key, raw)
	return nil
}

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for i, fld := range f {
		out[i] = Field{Key: fld.Key, Value: append(json.RawMessage(nil), fld.Value...)}
	}
	return out
}

func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fld := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(fld.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(fld.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if err := json.Compact(&buf, fld.Value); err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", fld.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	out := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode %q: %w", key, err)
		}
		out.Set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// marshalNoEscape is json.Marshal without HTML escaping, so "&" stays "&".
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
