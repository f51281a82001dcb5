package onnxmeta

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks a metadata record against the schema. It is
// fail-fast: the first violated check is returned as a
// *ValidationError and no further checks run. A nil return means the
// record may be committed.
//
// Checks run in a fixed order:
//
//  1. every required key is present
//  2. no value is null or an empty string
//  3. every value matches its declared kind
//  4. no string value still contains its template placeholder
//  5. len(class_names) equals number_of_classes
//  6. model_license contains no restricted license token
//
// Checks 2-4 visit keys in schema declaration order; keys outside the
// schema are visited afterwards in sorted order and only checked for
// emptiness, since the schema declares neither a kind nor a template
// for them.
func (s Schema) Validate(rec Record) *ValidationError {
	if missing := s.MissingKeys(rec); len(missing) > 0 {
		return &ValidationError{
			Check:   CheckRequiredKeys,
			Key:     missing[0],
			Message: fmt.Sprintf("missing configuration key(s): %s", strings.Join(missing, ", ")),
		}
	}

	for _, f := range s.Fields {
		if err := s.checkValue(f, rec[f.Key]); err != nil {
			return err
		}
	}

	var extra []string
	for key := range rec {
		if _, ok := s.Field(key); !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		if rec[key].IsEmpty() {
			return &ValidationError{
				Check:   CheckEmptyValue,
				Key:     key,
				Message: fmt.Sprintf("invalid empty value for key: %s", key),
			}
		}
	}

	if err := s.checkClassCount(rec); err != nil {
		return err
	}

	return s.checkLicense(rec)
}

// checkValue runs the per-key checks (2-4) for one schema field.
func (s Schema) checkValue(f FieldSpec, v Value) *ValidationError {
	if v.IsEmpty() {
		return &ValidationError{
			Check:   CheckEmptyValue,
			Key:     f.Key,
			Message: fmt.Sprintf("invalid empty value for key: %s", f.Key),
		}
	}

	if v.Kind() != f.Kind {
		return &ValidationError{
			Check:   CheckValueType,
			Key:     f.Key,
			Message: fmt.Sprintf("metadata %s should be %s", f.Key, f.Kind),
		}
	}

	if v.Kind() == KindString && strings.Contains(v.Str(), f.Template) {
		return &ValidationError{
			Check:   CheckTemplateValue,
			Key:     f.Key,
			Message: fmt.Sprintf("configuration key %s value matches the template, please update", f.Key),
		}
	}

	return nil
}

// checkClassCount enforces len(class_names) == number_of_classes.
func (s Schema) checkClassCount(rec Record) *ValidationError {
	names := rec["class_names"].List()
	classes := rec["number_of_classes"].Int()
	if int64(len(names)) != classes {
		return &ValidationError{
			Check: CheckClassCount,
			Key:   "class_names",
			Message: fmt.Sprintf("number of class_names %d does not match number_of_classes %d",
				len(names), classes),
		}
	}
	return nil
}

// checkLicense scans the uppercased license string for restricted
// tokens. Note the > 0: a restricted token at the very start of the
// string is not flagged. The boundary is kept as-is so existing vendor
// configurations keep validating identically; see DESIGN.md.
func (s Schema) checkLicense(rec Record) *ValidationError {
	lic := strings.ToUpper(rec["model_license"].Str())
	for _, token := range s.RestrictedLicenses {
		if strings.Index(lic, token) > 0 {
			return &ValidationError{
				Check:   CheckLicense,
				Key:     "model_license",
				Message: fmt.Sprintf("non commercial license %s detected", lic),
			}
		}
	}
	return nil
}
