package onnxmeta

import (
	"encoding/json"
	"path/filepath"
	"sort"
)

// FieldSpec declares one required metadata key: its expected value
// kind and the placeholder text pre-filled for it in generated
// configuration templates. The placeholder doubles as the
// unedited-template detector during validation.
type FieldSpec struct {
	// Key is the metadata key.
	Key string

	// Kind is the expected value kind.
	Kind ValueKind

	// Template is the human-guidance placeholder text.
	Template string
}

// Schema is the declarative specification the metadata validator
// enforces: the required field set and the restricted license tokens.
type Schema struct {
	// Fields are the required keys, in declaration order. Validation
	// iterates them in this order, so the first reported violation is
	// deterministic.
	Fields []FieldSpec

	// RestrictedLicenses are license-name substrings that flag a
	// model_license value for manual review. Matched case-insensitively.
	RestrictedLicenses []string
}

// DefaultSchema returns the metadata schema for distributed models.
func DefaultSchema() Schema {
	return Schema{
		Fields: []FieldSpec{
			{Key: "model_type", Kind: KindString,
				Template: "String: Object Detection, Pixel Segmentation, etc."},
			{Key: "model_architecture", Kind: KindString,
				Template: "String: Detectron 2, SAM, Custom, etc."},
			{Key: "number_of_classes", Kind: KindInteger,
				Template: "Integer: Number of trained classes, e.g., 1, 2, 3, etc."},
			{Key: "number_of_bands", Kind: KindInteger,
				Template: "Integer: Number of bands the model trained with, e.g., 3"},
			{Key: "number_of_epochs", Kind: KindInteger,
				Template: "Integer: How many epochs did the model train, e.g., 100"},
			{Key: "class_names", Kind: KindStringList,
				Template: "List[str]: Class ID ordered class names, e.g., [person, car, ...]"},
			{Key: "vendor_name", Kind: KindString,
				Template: "String: Company distributing the model, e.g. NV5"},
			{Key: "model_author", Kind: KindString,
				Template: "String: Original author of the model architecture, e.g., clees"},
			{Key: "model_license", Kind: KindString,
				Template: "String: License for the model, e.g., Apache 2.0"},
			{Key: "model_version", Kind: KindInteger,
				Template: "Integer: Nth version of the model distributed to NV5, e.g., 1, 2, etc."},
			{Key: "model_date", Kind: KindString,
				Template: "String: Date for which the model is ready, e.g., 2025-01-01"},
		},
		// All licensing must be verified; these tokens flag vendors
		// shipping models under unsupported licensing.
		RestrictedLicenses: []string{
			"GPL", "AGPL", "LGPL",
			"CC BY-NC", "CC BY-NC-SA",
			"CC BY-ND", "CC BY-NC-ND",
			"GNU", "APSL", "EPL", "MPL",
		},
	}
}

// Field returns the spec for a key, if the schema declares it.
func (s Schema) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Keys returns the required keys in declaration order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// MissingKeys returns the required keys absent from a record, sorted.
func (s Schema) MissingKeys(rec Record) []string {
	var missing []string
	for _, f := range s.Fields {
		if _, ok := rec[f.Key]; !ok {
			missing = append(missing, f.Key)
		}
	}
	sort.Strings(missing)
	return missing
}

// TemplateConfig renders the schema as a placeholder configuration
// document: a model_uri stub plus every required key mapped to its
// guidance text. Keys are sorted and the document is indented four
// spaces, matching the layout vendors receive today.
func (s Schema) TemplateConfig() ([]byte, error) {
	metadata := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		metadata[f.Key] = f.Template
	}
	doc := map[string]interface{}{
		"model_uri": "/path/to/model" + ModelExt,
		"metadata":  metadata,
	}
	return json.MarshalIndent(doc, "", "    ")
}

// TemplatePath normalizes a template output path, appending the .json
// extension when missing.
func TemplatePath(path string) string {
	if filepath.Ext(path) != ".json" {
		return path + ".json"
	}
	return path
}
