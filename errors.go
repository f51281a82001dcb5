package onnxmeta

import (
	"errors"
	"fmt"
)

// Sentinel errors for diff and metadata operations.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrInvalidModel indicates a model file that does not exist or
	// cannot be parsed as an ONNX model.
	ErrInvalidModel = errors.New("onnxmeta: invalid model file")

	// ErrModelExtension indicates a model path without the .onnx extension.
	ErrModelExtension = errors.New("onnxmeta: invalid model extension, expecting .onnx")

	// ErrInvalidConfig indicates a configuration file that does not
	// exist, is not JSON, or lacks the expected structure.
	ErrInvalidConfig = errors.New("onnxmeta: invalid configuration")

	// ErrInvalidSelector indicates an unrecognized layer selector.
	ErrInvalidSelector = errors.New("onnxmeta: invalid layer selector")

	// ErrNoReportPath indicates an empty diff report output path.
	// An empty path is a configuration error, never a silent skip.
	ErrNoReportPath = errors.New("onnxmeta: report output path is empty")

	// ErrEmptyWrite indicates a metadata commit that would persist an
	// artifact with zero metadata entries.
	ErrEmptyWrite = errors.New("onnxmeta: refusing to write artifact with no metadata entries")

	// ErrIncompatible indicates a completed diff run in which at least
	// one requested group did not match. It is a result carrier for
	// exit-code mapping, not a tool failure: the report is still
	// written in full.
	ErrIncompatible = errors.New("onnxmeta: models are not compatible")
)

// CheckKind identifies which validation check a record failed.
// The numeric order matches the order in which checks run.
type CheckKind int

const (
	// CheckRequiredKeys fails when a required schema key is absent.
	CheckRequiredKeys CheckKind = iota

	// CheckEmptyValue fails when a key maps to a null or empty value.
	CheckEmptyValue

	// CheckValueType fails when a value does not match its declared kind.
	CheckValueType

	// CheckTemplateValue fails when a string value still contains its
	// unedited template placeholder text.
	CheckTemplateValue

	// CheckClassCount fails when len(class_names) != number_of_classes.
	CheckClassCount

	// CheckLicense fails when the model license contains a restricted
	// license token.
	CheckLicense
)

// String returns a short name for the check kind.
func (k CheckKind) String() string {
	switch k {
	case CheckRequiredKeys:
		return "required-keys"
	case CheckEmptyValue:
		return "empty-value"
	case CheckValueType:
		return "value-type"
	case CheckTemplateValue:
		return "template-value"
	case CheckClassCount:
		return "class-count"
	case CheckLicense:
		return "license"
	default:
		return "unknown"
	}
}

// ValidationError describes the first validation check a metadata
// record failed. Validation is fail-fast: at most one ValidationError
// is produced per record.
type ValidationError struct {
	// Check identifies the failed check.
	Check CheckKind

	// Key is the offending metadata key, when the check is per-key.
	Key string

	// Message is the human-readable failure description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("onnxmeta: metadata validation failed (%s): %s", e.Check, e.Message)
}
