package onnxmeta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ValueKind is the type tag of a metadata value.
type ValueKind int

const (
	// KindString is a plain string value.
	KindString ValueKind = iota

	// KindInteger is a whole-number value. Booleans and fractional
	// numbers are deliberately not integers.
	KindInteger

	// KindStringList is a list of string values.
	KindStringList

	// KindOther covers everything a schema key can never declare:
	// booleans, fractional numbers, objects, and mixed lists. Values
	// of this kind always fail the type check.
	KindOther
)

// String returns the schema-facing name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindStringList:
		return "list of strings"
	default:
		return "unsupported"
	}
}

// Value is a metadata value as parsed from a configuration record: a
// closed tagged union of string, integer, and list-of-string, with a
// catch-all kind for everything else. The zero Value is an empty string.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	list []string

	// raw keeps the original JSON for KindOther values so error
	// messages and re-encoding stay faithful to the input.
	raw string
}

// StringValue returns a string-kinded Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntegerValue returns an integer-kinded Value.
func IntegerValue(n int64) Value { return Value{kind: KindInteger, num: n} }

// StringListValue returns a list-kinded Value.
func StringListValue(items ...string) Value {
	return Value{kind: KindStringList, list: items}
}

// Kind returns the value's type tag.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string content. Meaningful only for KindString.
func (v Value) Str() string { return v.str }

// Int returns the integer content. Meaningful only for KindInteger.
func (v Value) Int() int64 { return v.num }

// List returns the list content. Meaningful only for KindStringList.
func (v Value) List() []string { return v.list }

// IsEmpty reports whether the value is absent in the validation sense:
// a JSON null or an empty string. Empty lists and zero integers are
// not empty; they are legitimate (if unusual) values.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.str == ""
	case KindOther:
		return v.raw == "null"
	}
	return false
}

// String renders the value for error messages.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return fmt.Sprintf("%d", v.num)
	case KindStringList:
		return "[" + strings.Join(v.list, ", ") + "]"
	default:
		return v.raw
	}
}

// MarshalJSON encodes the value as its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInteger:
		return json.Marshal(v.num)
	case KindStringList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		if v.raw == "" {
			return []byte("null"), nil
		}
		return []byte(v.raw), nil
	}
}

// UnmarshalJSON classifies arbitrary JSON into the closed kind set.
// Numbers only become integers when they are whole; booleans, floats,
// objects, nulls, and non-string lists land in KindOther so the type
// check can reject them by tag.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var any interface{}
	if err := dec.Decode(&any); err != nil {
		return err
	}

	switch t := any.(type) {
	case string:
		*v = StringValue(t)
		return nil
	case json.Number:
		if n, err := t.Int64(); err == nil && !strings.ContainsAny(t.String(), ".eE") {
			*v = IntegerValue(n)
			return nil
		}
	case []interface{}:
		items := make([]string, 0, len(t))
		allStrings := true
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				allStrings = false
				break
			}
			items = append(items, s)
		}
		if allStrings {
			*v = Value{kind: KindStringList, list: items}
			return nil
		}
	}

	*v = Value{kind: KindOther, raw: string(bytes.TrimSpace(data))}
	return nil
}

// Record is a flat metadata record: key to typed value. Keys beyond the
// schema's required set are carried through unchanged.
type Record map[string]Value
