package onnxmeta

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ModelExt is the file extension required of model artifacts.
const ModelExt = ".onnx"

// Group identifies one of the two tensor interface groups of a model.
type Group string

// The two interface groups. The values double as report section keys.
const (
	GroupInputs  Group = "Inputs"
	GroupOutputs Group = "Outputs"
)

// LayerSelector chooses which groups a diff run evaluates.
type LayerSelector string

// Valid selector values, as accepted on the command line.
const (
	SelectInputs  LayerSelector = "inputs"
	SelectOutputs LayerSelector = "outputs"
	SelectBoth    LayerSelector = "both"
)

// ParseLayerSelector parses a selector string (case-insensitive).
// Returns ErrInvalidSelector for anything other than inputs, outputs,
// or both.
func ParseLayerSelector(s string) (LayerSelector, error) {
	switch LayerSelector(strings.ToLower(s)) {
	case SelectInputs:
		return SelectInputs, nil
	case SelectOutputs:
		return SelectOutputs, nil
	case SelectBoth:
		return SelectBoth, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSelector, s)
}

// Groups returns the interface groups the selector covers, in
// Inputs-then-Outputs order.
func (s LayerSelector) Groups() []Group {
	switch s {
	case SelectInputs:
		return []Group{GroupInputs}
	case SelectOutputs:
		return []Group{GroupOutputs}
	default:
		return []Group{GroupInputs, GroupOutputs}
	}
}

// Dim is one dimension of a tensor shape. A dimension is either fixed
// (a concrete size), symbolic (a named dynamic axis such as "batch"),
// or unknown (neither declared).
//
// Dim serializes to a JSON number, string, or null respectively, which
// is the shape representation used in diff reports.
type Dim struct {
	// Value is the concrete size. Meaningful only when Fixed is true.
	Value int64

	// Param is the symbolic axis name for dynamic dimensions.
	Param string

	// Fixed reports whether Value holds a declared concrete size.
	Fixed bool
}

// FixedDim returns a dimension with a concrete size.
func FixedDim(v int64) Dim { return Dim{Value: v, Fixed: true} }

// SymbolicDim returns a dynamic dimension named by a shape parameter.
func SymbolicDim(name string) Dim { return Dim{Param: name} }

// String renders the dimension the way it appears in reports.
func (d Dim) String() string {
	switch {
	case d.Fixed:
		return fmt.Sprintf("%d", d.Value)
	case d.Param != "":
		return d.Param
	default:
		return "?"
	}
}

// MarshalJSON encodes fixed dimensions as numbers, symbolic dimensions
// as strings, and unknown dimensions as null.
func (d Dim) MarshalJSON() ([]byte, error) {
	switch {
	case d.Fixed:
		return json.Marshal(d.Value)
	case d.Param != "":
		return json.Marshal(d.Param)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the number/string/null encoding produced by
// MarshalJSON.
func (d *Dim) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*d = Dim{}
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var param string
		if err := json.Unmarshal(data, &param); err != nil {
			return err
		}
		*d = SymbolicDim(param)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = FixedDim(v)
	return nil
}

// LayerDescriptor is a named, shaped reference to one input or output
// tensor of a model. Descriptors have no identity beyond structural
// equality.
type LayerDescriptor struct {
	// Index is the position within the group, in model declaration order.
	Index int `json:"id"`

	// Name is the tensor name.
	Name string `json:"name"`

	// Shape is the declared tensor shape.
	Shape []Dim `json:"shape"`
}

// Equal reports whether two descriptors are structurally identical:
// same index, same name, and element-wise equal shapes.
func (l LayerDescriptor) Equal(other LayerDescriptor) bool {
	if l.Index != other.Index || l.Name != other.Name {
		return false
	}
	if len(l.Shape) != len(other.Shape) {
		return false
	}
	for i := range l.Shape {
		if l.Shape[i] != other.Shape[i] {
			return false
		}
	}
	return true
}

// String returns a compact human-readable form, e.g. `#0 "images" [1 3 H W]`.
func (l LayerDescriptor) String() string {
	dims := make([]string, len(l.Shape))
	for i, d := range l.Shape {
		dims[i] = d.String()
	}
	return fmt.Sprintf("#%d %q [%s]", l.Index, l.Name, strings.Join(dims, " "))
}

// ModelInterface is the declared tensor interface of a model: its input
// and output layer descriptors, in declaration order.
type ModelInterface struct {
	// Inputs are the graph's input layers.
	Inputs []LayerDescriptor

	// Outputs are the graph's output layers.
	Outputs []LayerDescriptor
}

// Layers returns the descriptors of one group.
func (m ModelInterface) Layers(g Group) []LayerDescriptor {
	if g == GroupOutputs {
		return m.Outputs
	}
	return m.Inputs
}

// MetadataEntry is one key-value pair in an artifact's embedded
// metadata store. Values are stored as strings; the pipeline writes
// every value JSON-encoded, so a reader must JSON-decode them.
type MetadataEntry struct {
	// Key is the metadata key.
	Key string

	// Value is the stored string value.
	Value string
}
