package onnxmeta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Exit statuses recorded in diff reports and returned by the CLI.
const (
	ExitStatusSuccess = 0
	ExitStatusError   = 1
)

// Report is the serializable result of one diff run. Field order here
// fixes the key order of the emitted JSON document.
//
// The "compatability" and "symantic_difference" key spellings are part
// of the established report format; downstream consumers parse them,
// so they are preserved verbatim.
type Report struct {
	// Models describes the compared artifacts and their per-group
	// compatibility.
	Models ReportModels `json:"models"`

	// Inputs is present only when the Inputs group was requested and
	// found incompatible.
	Inputs *ReportGroup `json:"Inputs,omitempty"`

	// Outputs is present only when the Outputs group was requested and
	// found incompatible.
	Outputs *ReportGroup `json:"Outputs,omitempty"`

	// ExitStatus is ExitStatusSuccess iff every requested group is
	// compatible.
	ExitStatus int `json:"exit_status"`
}

// ReportModels is the "models" section of a report.
type ReportModels struct {
	// ModelA is the absolute path of the first artifact.
	ModelA string `json:"model_a"`

	// ModelB is the absolute path of the second artifact.
	ModelB string `json:"model_b"`

	// Compatibility holds one boolean per requested group.
	Compatibility ReportCompatibility `json:"compatability"`
}

// ReportCompatibility records per-group compatibility. Groups that were
// not requested are omitted from the document.
type ReportCompatibility struct {
	Inputs  *bool `json:"Inputs,omitempty"`
	Outputs *bool `json:"Outputs,omitempty"`
}

// ReportGroup details one incompatible group.
type ReportGroup struct {
	// AVsB introduces ALayers.
	AVsB string `json:"a_vs_b"`

	// ALayers are descriptors present in model A but missing from B.
	ALayers []LayerDescriptor `json:"a_layers"`

	// BVsA introduces BLayers.
	BVsA string `json:"b_vs_a"`

	// BLayers are descriptors present in model B but missing from A.
	BLayers []LayerDescriptor `json:"b_layers"`

	// SymanticDifference is ALayers followed by BLayers.
	SymanticDifference []LayerDescriptor `json:"symantic_difference"`
}

// BuildReport assembles a comparison into the report document.
// modelA and modelB are resolved to absolute paths; resolution failures
// fall back to the path as given.
func BuildReport(modelA, modelB string, c Comparison) *Report {
	r := &Report{
		Models: ReportModels{
			ModelA: absPath(modelA),
			ModelB: absPath(modelB),
		},
	}

	for _, g := range c.Groups {
		compatible := g.Compatible
		switch g.Group {
		case GroupInputs:
			r.Models.Compatibility.Inputs = &compatible
		case GroupOutputs:
			r.Models.Compatibility.Outputs = &compatible
		}
		if g.Compatible {
			continue
		}
		section := &ReportGroup{
			AVsB:               "Model A contains one or more layers missing from Model B:",
			ALayers:            g.OnlyInA,
			BVsA:               "Model B contains one or more layers missing from Model A:",
			BLayers:            g.OnlyInB,
			SymanticDifference: g.SymmetricDiff,
		}
		switch g.Group {
		case GroupInputs:
			r.Inputs = section
		case GroupOutputs:
			r.Outputs = section
		}
	}

	if c.AllCompatible() {
		r.ExitStatus = ExitStatusSuccess
	} else {
		r.ExitStatus = ExitStatusError
	}
	return r
}

// Encode serializes the report. indent 0 produces a compact document;
// a positive indent produces that many spaces per nesting level.
func (r *Report) Encode(indent int) ([]byte, error) {
	if indent <= 0 {
		return json.Marshal(r)
	}
	return json.MarshalIndent(r, "", strings.Repeat(" ", indent))
}

// WriteFile encodes the report and writes it to path. An empty path is
// a configuration error (ErrNoReportPath), never a silent skip. A path
// without the .json extension gets it appended. The final path written
// is returned.
func (r *Report) WriteFile(path string, indent int) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrNoReportPath
	}
	if filepath.Ext(path) != ".json" {
		path += ".json"
	}

	data, err := r.Encode(indent)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// DefaultReportPath derives the report path used when the caller does
// not name one: "<stemA>_vs_<stemB>.json" in model A's directory.
func DefaultReportPath(modelA, modelB string) string {
	stem := func(p string) string {
		base := filepath.Base(p)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(filepath.Dir(modelA), stem(modelA)+"_vs_"+stem(modelB)+".json")
}

// absPath resolves a path to absolute form, falling back to the input.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
