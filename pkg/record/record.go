package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	// IDField holds the identifier that keys a record's destination document
	IDField = "id"
	// NameField holds the display name used in progress lines
	NameField = "name"
)

// ErrMissingID is returned when a record has no usable identifier
var ErrMissingID = errors.New("record has no string id")

// Record is an opaque JSON object copied verbatim into the store
type Record map[string]interface{}

// ID returns the record identifier
func (r Record) ID() (string, error) {
	id, ok := r[IDField].(string)
	if !ok || id == "" {
		return "", ErrMissingID
	}

	return id, nil
}

// Name returns the display name, falling back to the identifier
func (r Record) Name() string {
	if n, ok := r[NameField].(string); ok && n != "" {
		return n
	}
	id, _ := r.ID()

	return id
}

// Clone returns a deep copy of the record
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	return cloneValue(map[string]interface{}(r)).(map[string]interface{})
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Record:
		return Record(cloneValue(map[string]interface{}(t)).(map[string]interface{}))
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(t))
		for i, e := range t {
			a[i] = cloneValue(e)
		}
		return a
	default:
		return v
	}
}

// Load decodes the array held under field of a JSON object read from r
func Load(r io.Reader, field string) ([]Record, error) {
	dec := json.NewDecoder(r)
	envelope := map[string]json.RawMessage{}
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("Error during decoding %q envelope: %w", field, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("Error during decoding %q envelope: trailing data after object", field)
	}

	raw, ok := envelope[field]
	if !ok {
		return nil, fmt.Errorf("Error during loading: field %q not found", field)
	}

	elems := []json.RawMessage{}
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("Error during loading: field %q is not an array: %w", field, err)
	}
	if elems == nil {
		return nil, fmt.Errorf("Error during loading: field %q is not an array", field)
	}

	rs := make([]Record, 0, len(elems))
	for i, e := range elems {
		d := json.NewDecoder(bytes.NewReader(e))
		d.UseNumber()

		var m map[string]interface{}
		if err := d.Decode(&m); err != nil || m == nil {
			return nil, fmt.Errorf("Error during loading %s[%d]: element is not an object", field, i)
		}

		rs = append(rs, Record(normalize(m).(map[string]interface{})))
	}

	return rs, nil
}

// normalize turns json.Number into int64 when integral, float64 otherwise
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []interface{}:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}
