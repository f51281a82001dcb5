package onnxmeta

import (
	"fmt"
	"os"
	"path/filepath"
)

// ModelIntrospector extracts the declared tensor interface from a model
// artifact. Implemented by the built-in ONNX introspector for
// production and by mocks in tests.
type ModelIntrospector interface {
	// Introspect loads the artifact at path and returns its input and
	// output layer descriptors. Returns an error wrapping
	// ErrInvalidModel if the file is missing or not a parseable model.
	Introspect(path string) (ModelInterface, error)
}

// onnxIntrospector reads ONNX artifacts at the protobuf wire level.
type onnxIntrospector struct{}

// Ensure onnxIntrospector implements ModelIntrospector.
var _ ModelIntrospector = onnxIntrospector{}

// NewIntrospector returns the built-in ONNX model introspector.
func NewIntrospector() ModelIntrospector {
	return onnxIntrospector{}
}

// Introspect implements ModelIntrospector.
func (onnxIntrospector) Introspect(path string) (ModelInterface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelInterface{}, fmt.Errorf("%w: %s: %v", ErrInvalidModel, path, err)
	}
	return parseModelInterface(data)
}

// CheckModelPath verifies that path names an existing regular file with
// the model extension.
func CheckModelPath(path string) error {
	if filepath.Ext(path) != ModelExt {
		return fmt.Errorf("%w: %s", ErrModelExtension, path)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidModel, path)
	}
	return nil
}
