package onnxmeta

import (
	"encoding/json"
	"testing"
)

func TestValueUnmarshalClassification(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ValueKind
	}{
		{name: "string", json: `"Object Detection"`, want: KindString},
		{name: "integer", json: `3`, want: KindInteger},
		{name: "negative integer", json: `-1`, want: KindInteger},
		{name: "string list", json: `["person","car"]`, want: KindStringList},
		{name: "empty list", json: `[]`, want: KindStringList},
		{name: "float is not an integer", json: `3.5`, want: KindOther},
		{name: "exponent is not an integer", json: `1e3`, want: KindOther},
		{name: "bool is not an integer", json: `true`, want: KindOther},
		{name: "null", json: `null`, want: KindOther},
		{name: "object", json: `{"a":1}`, want: KindOther},
		{name: "mixed list", json: `["a",1]`, want: KindOther},
		{name: "list of ints", json: `[1,2]`, want: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.json), &v); err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error = %v", tt.json, err)
			}
			if v.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.want)
			}
		})
	}
}

func TestValueIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{name: "empty string", json: `""`, want: true},
		{name: "null", json: `null`, want: true},
		{name: "non-empty string", json: `"x"`, want: false},
		{name: "zero integer", json: `0`, want: false},
		{name: "empty list", json: `[]`, want: false},
		{name: "false", json: `false`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.json), &v); err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error = %v", tt.json, err)
			}
			if got := v.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "string", json: `"Apache 2.0"`},
		{name: "integer", json: `42`},
		{name: "list", json: `["a","b","c"]`},
		{name: "empty list", json: `[]`},
		{name: "bool passthrough", json: `true`},
		{name: "float passthrough", json: `3.5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.json), &v); err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error = %v", tt.json, err)
			}
			out, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("Marshal() unexpected error = %v", err)
			}
			if string(out) != tt.json {
				t.Errorf("round trip = %s, want %s", out, tt.json)
			}
		})
	}
}

func TestValueAccessors(t *testing.T) {
	if got := StringValue("hi").Str(); got != "hi" {
		t.Errorf("Str() = %q, want %q", got, "hi")
	}
	if got := IntegerValue(7).Int(); got != 7 {
		t.Errorf("Int() = %d, want 7", got)
	}
	list := StringListValue("a", "b").List()
	if len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("List() = %v, want [a b]", list)
	}
}
