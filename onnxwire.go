package onnxmeta

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ONNX ModelProto field numbers. Only the fields this package reads or
// rewrites are named; everything else is carried through opaquely.
const (
	fieldModelGraph    = 7  // ModelProto.graph
	fieldModelMetadata = 14 // ModelProto.metadata_props

	fieldGraphInitializer = 5  // GraphProto.initializer
	fieldGraphInput       = 11 // GraphProto.input
	fieldGraphOutput      = 12 // GraphProto.output

	fieldValueInfoName = 1 // ValueInfoProto.name
	fieldValueInfoType = 2 // ValueInfoProto.type

	fieldTypeTensor = 1 // TypeProto.tensor_type
	fieldTensorType = 2 // TypeProto.Tensor.shape

	fieldShapeDim = 1 // TensorShapeProto.dim

	fieldDimValue = 1 // TensorShapeProto.Dimension.dim_value
	fieldDimParam = 2 // TensorShapeProto.Dimension.dim_param

	fieldTensorName = 8 // TensorProto.name

	fieldEntryKey   = 1 // StringStringEntryProto.key
	fieldEntryValue = 2 // StringStringEntryProto.value
)

// walkFields iterates the top-level fields of a protobuf message,
// calling fn with each field's number, wire type, raw value bytes
// (tag excluded), and the full record including the tag.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, value, record []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		m := protowire.ConsumeFieldValue(num, typ, b[n:])
		if m < 0 {
			return protowire.ParseError(m)
		}
		if err := fn(num, typ, b[n:n+m], b[:n+m]); err != nil {
			return err
		}
		b = b[n+m:]
	}
	return nil
}

// messageField extracts a length-delimited field's payload, stripping
// the length prefix. Returns nil if the field is not length-delimited.
func messageField(typ protowire.Type, value []byte) []byte {
	if typ != protowire.BytesType {
		return nil
	}
	payload, n := protowire.ConsumeBytes(value)
	if n < 0 {
		return nil
	}
	return payload
}

// parseModelInterface extracts the declared input/output layer
// descriptors from serialized ONNX model bytes.
//
// Graph inputs that are backed by initializers are weights, not
// interface tensors, and are excluded, matching what an inference
// runtime reports.
func parseModelInterface(data []byte) (ModelInterface, error) {
	// The graph field may in principle be split across records;
	// protobuf merge semantics make the concatenation equivalent.
	var graph []byte
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
		if num == fieldModelGraph {
			payload := messageField(typ, value)
			if payload == nil {
				return fmt.Errorf("malformed graph field")
			}
			graph = append(graph, payload...)
		}
		return nil
	})
	if err != nil {
		return ModelInterface{}, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if graph == nil {
		return ModelInterface{}, fmt.Errorf("%w: model has no graph", ErrInvalidModel)
	}

	iface, err := parseGraph(graph)
	if err != nil {
		return ModelInterface{}, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	return iface, nil
}

// parseGraph walks a GraphProto and collects input/output descriptors.
func parseGraph(b []byte) (ModelInterface, error) {
	var inputs, outputs [][]byte
	initializers := map[string]bool{}

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
		payload := messageField(typ, value)
		switch num {
		case fieldGraphInput:
			inputs = append(inputs, payload)
		case fieldGraphOutput:
			outputs = append(outputs, payload)
		case fieldGraphInitializer:
			if name := tensorName(payload); name != "" {
				initializers[name] = true
			}
		}
		return nil
	})
	if err != nil {
		return ModelInterface{}, err
	}

	var iface ModelInterface
	idx := 0
	for _, raw := range inputs {
		name, shape, err := parseValueInfo(raw)
		if err != nil {
			return ModelInterface{}, err
		}
		if initializers[name] {
			continue
		}
		iface.Inputs = append(iface.Inputs, LayerDescriptor{Index: idx, Name: name, Shape: shape})
		idx++
	}
	idx = 0
	for _, raw := range outputs {
		name, shape, err := parseValueInfo(raw)
		if err != nil {
			return ModelInterface{}, err
		}
		iface.Outputs = append(iface.Outputs, LayerDescriptor{Index: idx, Name: name, Shape: shape})
		idx++
	}
	return iface, nil
}

// tensorName extracts TensorProto.name, or "" if absent/malformed.
func tensorName(b []byte) string {
	var name string
	_ = walkFields(b, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
		if num == fieldTensorName && typ == protowire.BytesType {
			name = string(messageField(typ, value))
		}
		return nil
	})
	return name
}

// parseValueInfo extracts the name and tensor shape from a
// ValueInfoProto. Non-tensor types (sequences, maps) yield a nil shape.
func parseValueInfo(b []byte) (string, []Dim, error) {
	var name string
	var shape []Dim

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
		switch num {
		case fieldValueInfoName:
			name = string(messageField(typ, value))
		case fieldValueInfoType:
			typeProto := messageField(typ, value)
			return walkFields(typeProto, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
				if num != fieldTypeTensor {
					return nil
				}
				tensor := messageField(typ, value)
				return walkFields(tensor, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
					if num != fieldTensorType {
						return nil
					}
					dims, err := parseShape(messageField(typ, value))
					if err != nil {
						return err
					}
					shape = dims
					return nil
				})
			})
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		return "", nil, fmt.Errorf("value info with no name")
	}
	return name, shape, nil
}

// parseShape decodes a TensorShapeProto into dimensions.
func parseShape(b []byte) ([]Dim, error) {
	dims := []Dim{}
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
		if num != fieldShapeDim {
			return nil
		}
		d := Dim{}
		err := walkFields(messageField(typ, value), func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
			switch num {
			case fieldDimValue:
				if typ == protowire.VarintType {
					v, n := protowire.ConsumeVarint(value)
					if n < 0 {
						return protowire.ParseError(n)
					}
					d = FixedDim(int64(v))
				}
			case fieldDimParam:
				d = SymbolicDim(string(messageField(typ, value)))
			}
			return nil
		})
		if err != nil {
			return err
		}
		dims = append(dims, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dims, nil
}

// readMetadataProps returns the model's metadata entries in storage order.
func readMetadataProps(data []byte) ([]MetadataEntry, error) {
	var entries []MetadataEntry
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
		if num != fieldModelMetadata {
			return nil
		}
		entry := MetadataEntry{}
		err := walkFields(messageField(typ, value), func(num protowire.Number, typ protowire.Type, value, _ []byte) error {
			switch num {
			case fieldEntryKey:
				entry.Key = string(messageField(typ, value))
			case fieldEntryValue:
				entry.Value = string(messageField(typ, value))
			}
			return nil
		})
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	return entries, nil
}

// stripMetadataProps returns a copy of the model bytes with every
// top-level metadata_props record removed. All other fields are copied
// verbatim, in order.
func stripMetadataProps(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, _, record []byte) error {
		if num != fieldModelMetadata {
			out = append(out, record...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	return out, nil
}

// appendMetadataProps appends metadata entries as trailing
// metadata_props records.
func appendMetadataProps(data []byte, entries []MetadataEntry) []byte {
	for _, e := range entries {
		var entry []byte
		entry = protowire.AppendTag(entry, fieldEntryKey, protowire.BytesType)
		entry = protowire.AppendString(entry, e.Key)
		entry = protowire.AppendTag(entry, fieldEntryValue, protowire.BytesType)
		entry = protowire.AppendString(entry, e.Value)

		data = protowire.AppendTag(data, fieldModelMetadata, protowire.BytesType)
		data = protowire.AppendBytes(data, entry)
	}
	return data
}
