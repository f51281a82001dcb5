package onnxmeta

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultSchemaFields(t *testing.T) {
	schema := DefaultSchema()

	wantKinds := map[string]ValueKind{
		"model_type":         KindString,
		"model_architecture": KindString,
		"number_of_classes":  KindInteger,
		"number_of_bands":    KindInteger,
		"number_of_epochs":   KindInteger,
		"class_names":        KindStringList,
		"vendor_name":        KindString,
		"model_author":       KindString,
		"model_license":      KindString,
		"model_version":      KindInteger,
		"model_date":         KindString,
	}

	if len(schema.Fields) != len(wantKinds) {
		t.Fatalf("len(Fields) = %d, want %d", len(schema.Fields), len(wantKinds))
	}
	for _, f := range schema.Fields {
		kind, ok := wantKinds[f.Key]
		if !ok {
			t.Errorf("unexpected schema key %q", f.Key)
			continue
		}
		if f.Kind != kind {
			t.Errorf("key %q kind = %v, want %v", f.Key, f.Kind, kind)
		}
		if f.Template == "" {
			t.Errorf("key %q has no template text", f.Key)
		}
	}
}

func TestSchemaMissingKeys(t *testing.T) {
	schema := DefaultSchema()

	rec := validRecord()
	if missing := schema.MissingKeys(rec); len(missing) != 0 {
		t.Errorf("MissingKeys(complete) = %v, want empty", missing)
	}

	delete(rec, "model_date")
	delete(rec, "class_names")
	want := []string{"class_names", "model_date"}
	if diff := cmp.Diff(want, schema.MissingKeys(rec)); diff != "" {
		t.Errorf("MissingKeys() mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaTemplateConfig(t *testing.T) {
	doc, err := DefaultSchema().TemplateConfig()
	if err != nil {
		t.Fatalf("TemplateConfig() unexpected error = %v", err)
	}

	var parsed struct {
		ModelURI string            `json:"model_uri"`
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		t.Fatalf("template is not valid JSON: %v", err)
	}
	if parsed.ModelURI != "/path/to/model.onnx" {
		t.Errorf("model_uri = %q, want /path/to/model.onnx", parsed.ModelURI)
	}
	for _, f := range DefaultSchema().Fields {
		if parsed.Metadata[f.Key] != f.Template {
			t.Errorf("template metadata[%q] = %q, want %q", f.Key, parsed.Metadata[f.Key], f.Template)
		}
	}

	// A freshly generated template must fail validation wholesale:
	// every value is still placeholder text.
	var cfgRec Record
	raw, _ := json.Marshal(parsed.Metadata)
	if err := json.Unmarshal(raw, &cfgRec); err != nil {
		t.Fatalf("re-parsing template metadata: %v", err)
	}
	if verr := DefaultSchema().Validate(cfgRec); verr == nil {
		t.Error("Validate(template record) = nil, want violation")
	}
}

func TestTemplatePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "extension kept", in: "config.json", want: "config.json"},
		{name: "extension appended", in: "config", want: "config.json"},
		{name: "wrong extension appended", in: "config.txt", want: "config.txt.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TemplatePath(tt.in); got != tt.want {
				t.Errorf("TemplatePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
