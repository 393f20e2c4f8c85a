package entities

import (
	"bytes"
	"encoding/json"
)

// Document is a client-supplied JSON object. The original bytes are kept
// so the document is returned exactly as it was stored.
type Document struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

// ParseDocument parses data as a JSON object.
// Anything other than an object (including an empty body) is rejected.
func ParseDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, invalid("body", "is required")
	}
	if trimmed[0] != '{' {
		return nil, invalid("body", "must be a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, invalid("body", "is not valid JSON")
	}

	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)

	return &Document{raw: raw, fields: fields}, nil
}

// Has reports whether the document carries the named top-level field.
func (d *Document) Has(field string) bool {
	_, ok := d.fields[field]
	return ok
}

// String returns the named field when it holds a JSON string.
func (d *Document) String(field string) (string, bool) {
	v, ok := d.fields[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// NonEmpty reports whether the named field is present and is not null,
// "", [] or {}.
func (d *Document) NonEmpty(field string) bool {
	v, ok := d.fields[field]
	if !ok {
		return false
	}
	return !isEmptyValue(v)
}

// Raw returns a copy of the stored JSON bytes.
func (d *Document) Raw() json.RawMessage {
	out := make(json.RawMessage, len(d.raw))
	copy(out, d.raw)
	return out
}

// MarshalJSON returns the document as it was received.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return d.raw, nil
}

func isEmptyValue(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return true
	}

	switch v[0] {
	case 'n':
		return true
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return true
		}
		return s == ""
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return true
		}
		return len(items) == 0
	case '{':
		var members map[string]json.RawMessage
		if err := json.Unmarshal(v, &members); err != nil {
			return true
		}
		return len(members) == 0
	}
	return false
}
