package subsonic

import (
	"fmt"
	"time"
)

// Record is a parsed wire object: the generic string-keyed tree that
// unmarshalling a reply's JSON produces (strings, numbers, booleans, nil,
// nested Records, slices).
type Record = map[string]any

// dec walks one entity's Record through its field map, remembering the
// first hard failure. Accessors return zero values once an error is set,
// so decoders can read every field and check err once at the end.
type dec struct {
	fm  fieldMap
	rec Record
	err error
}

func newDec(fm fieldMap, rec Record) *dec {
	return &dec{fm: fm, rec: rec}
}

func (d *dec) fail(attr string, err error) {
	if d.err == nil {
		d.err = &DecodeError{Entity: d.fm.entity, Field: d.fm.wireKey(attr), Err: err}
	}
}

// raw returns the wire value for attr. JSON null counts as absent.
func (d *dec) raw(attr string) (any, bool) {
	v, ok := d.rec[d.fm.wireKey(attr)]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// str reads an optional string field; absent decodes to "".
func (d *dec) str(attr string) string {
	v, ok := d.raw(attr)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(attr, fmt.Errorf("%w: expected string, got %T", ErrTypeMismatch, v))
		return ""
	}
	return s
}

// reqStr reads a required string field; absent or empty is a hard failure.
func (d *dec) reqStr(attr string) string {
	if _, ok := d.raw(attr); !ok {
		d.fail(attr, ErrMissingField)
		return ""
	}
	s := d.str(attr)
	if s == "" && d.err == nil {
		d.fail(attr, ErrMissingField)
	}
	return s
}

// number reads an optional numeric field. JSON numbers arrive as float64;
// ints are accepted too so hand-built records decode the same way.
func (d *dec) number(attr string) (float64, bool) {
	v, ok := d.raw(attr)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		d.fail(attr, fmt.Errorf("%w: expected number, got %T", ErrTypeMismatch, v))
		return 0, false
	}
}

// integer reads an optional integral field; absent decodes to 0.
func (d *dec) integer(attr string) int {
	n, ok := d.number(attr)
	if !ok {
		return 0
	}
	return int(n)
}

// boolean reads an optional boolean field; absent decodes to false.
func (d *dec) boolean(attr string) bool {
	v, ok := d.raw(attr)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.fail(attr, fmt.Errorf("%w: expected boolean, got %T", ErrTypeMismatch, v))
		return false
	}
	return b
}

// instant reads an optional wire timestamp; absent decodes to nil.
func (d *dec) instant(attr string) *time.Time {
	raw := d.str(attr)
	if raw == "" {
		return nil
	}
	t, err := decodeInstant(raw)
	if err != nil {
		d.fail(attr, err)
		return nil
	}
	return t
}

// seconds reads an optional duration field given in wire seconds.
func (d *dec) seconds(attr string) time.Duration {
	n, ok := d.number(attr)
	if !ok {
		return 0
	}
	return decodeSeconds(n)
}

// millis reads an optional duration field given in wire milliseconds.
func (d *dec) millis(attr string) time.Duration {
	n, ok := d.number(attr)
	if !ok {
		return 0
	}
	return decodeMillis(n)
}

// records reads an optional list-of-objects field; absent decodes to nil.
func (d *dec) records(attr string) []Record {
	v, ok := d.raw(attr)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		d.fail(attr, fmt.Errorf("%w: expected list, got %T", ErrTypeMismatch, v))
		return nil
	}
	recs := make([]Record, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			d.fail(attr, fmt.Errorf("%w: expected object in list, got %T", ErrTypeMismatch, item))
			return nil
		}
		recs = append(recs, rec)
	}
	return recs
}

// truthy interprets the boolean-ish isDir discriminator, which some servers
// send as a bool and others as a string.
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true" || val == "1"
	default:
		return false
	}
}
