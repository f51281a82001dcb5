package onnxmeta

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildReportCompatible(t *testing.T) {
	iface := ModelInterface{
		Inputs:  layers(desc(0, "images", 1, 3)),
		Outputs: layers(desc(0, "scores", 1, 80)),
	}
	report := BuildReport("a.onnx", "b.onnx", CompareModels(iface, iface, SelectBoth))

	if report.ExitStatus != ExitStatusSuccess {
		t.Errorf("ExitStatus = %d, want %d", report.ExitStatus, ExitStatusSuccess)
	}
	if report.Inputs != nil || report.Outputs != nil {
		t.Errorf("group sections present for compatible models: %+v", report)
	}
	if report.Models.Compatibility.Inputs == nil || !*report.Models.Compatibility.Inputs {
		t.Error("compatability.Inputs != true")
	}
	if report.Models.Compatibility.Outputs == nil || !*report.Models.Compatibility.Outputs {
		t.Error("compatability.Outputs != true")
	}
	if !filepath.IsAbs(report.Models.ModelA) || !filepath.IsAbs(report.Models.ModelB) {
		t.Errorf("model paths not absolute: %q %q", report.Models.ModelA, report.Models.ModelB)
	}
}

func TestBuildReportIncompatibleInputs(t *testing.T) {
	a := ModelInterface{
		Inputs:  layers(desc(0, "images", 1, 3), desc(1, "mask", 1, 1)),
		Outputs: layers(desc(0, "scores", 1, 80)),
	}
	b := ModelInterface{
		Inputs:  layers(desc(0, "images", 1, 3)),
		Outputs: layers(desc(0, "scores", 1, 80)),
	}
	report := BuildReport("a.onnx", "b.onnx", CompareModels(a, b, SelectBoth))

	if report.ExitStatus != ExitStatusError {
		t.Errorf("ExitStatus = %d, want %d", report.ExitStatus, ExitStatusError)
	}
	if report.Models.Compatibility.Inputs == nil || *report.Models.Compatibility.Inputs {
		t.Error("compatability.Inputs != false")
	}
	if report.Models.Compatibility.Outputs == nil || !*report.Models.Compatibility.Outputs {
		t.Error("compatability.Outputs != true")
	}
	if report.Inputs == nil {
		t.Fatal("Inputs section missing")
	}
	if report.Outputs != nil {
		t.Error("Outputs section present for compatible group")
	}
	if len(report.Inputs.ALayers) != 1 || report.Inputs.ALayers[0].Name != "mask" {
		t.Errorf("a_layers = %+v, want the mask descriptor", report.Inputs.ALayers)
	}
	if len(report.Inputs.BLayers) != 0 {
		t.Errorf("b_layers = %+v, want empty", report.Inputs.BLayers)
	}
	if len(report.Inputs.SymanticDifference) != 1 {
		t.Errorf("symantic_difference length = %d, want 1", len(report.Inputs.SymanticDifference))
	}
}

func TestBuildReportSingleGroup(t *testing.T) {
	a := ModelInterface{Inputs: layers(desc(0, "x", 1)), Outputs: layers(desc(0, "y", 1))}
	b := ModelInterface{Inputs: layers(desc(0, "x", 2)), Outputs: layers(desc(0, "y", 1))}

	report := BuildReport("a.onnx", "b.onnx", CompareModels(a, b, SelectOutputs))
	if report.ExitStatus != ExitStatusSuccess {
		t.Errorf("ExitStatus = %d, want success: unrequested inputs must not count", report.ExitStatus)
	}
	if report.Models.Compatibility.Inputs != nil {
		t.Error("compatability.Inputs present for unrequested group")
	}
	if report.Models.Compatibility.Outputs == nil {
		t.Error("compatability.Outputs missing")
	}
}

func TestReportJSONShape(t *testing.T) {
	a := ModelInterface{Inputs: layers(desc(0, "x", 1))}
	b := ModelInterface{Inputs: layers(desc(0, "x", 2))}
	report := BuildReport("a.onnx", "b.onnx", CompareModels(a, b, SelectInputs))

	data, err := report.Encode(0)
	if err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}
	text := string(data)

	if strings.Contains(text, "\n") {
		t.Error("indent 0 should produce a compact document")
	}
	for _, key := range []string{
		`"models"`, `"model_a"`, `"model_b"`, `"compatability"`,
		`"Inputs"`, `"a_vs_b"`, `"a_layers"`, `"b_vs_a"`, `"b_layers"`,
		`"symantic_difference"`, `"exit_status"`,
	} {
		if !strings.Contains(text, key) {
			t.Errorf("report JSON missing key %s", key)
		}
	}
	if strings.Contains(text, `"Outputs"`) {
		t.Error("report JSON contains Outputs key for unrequested group")
	}

	indented, err := report.Encode(4)
	if err != nil {
		t.Fatalf("Encode(4) unexpected error = %v", err)
	}
	if !strings.Contains(string(indented), "\n    ") {
		t.Error("indent 4 should produce four-space indentation")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if parsed["exit_status"] != float64(1) {
		t.Errorf("exit_status = %v, want 1", parsed["exit_status"])
	}
}

func TestReportWriteFile(t *testing.T) {
	iface := ModelInterface{Inputs: layers(desc(0, "x", 1))}
	report := BuildReport("a.onnx", "b.onnx", CompareModels(iface, iface, SelectInputs))

	t.Run("writes to path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		written, err := report.WriteFile(path, 2)
		if err != nil {
			t.Fatalf("WriteFile() unexpected error = %v", err)
		}
		if written != path {
			t.Errorf("written path = %q, want %q", written, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading report back: %v", err)
		}
		var parsed Report
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("written report is not valid JSON: %v", err)
		}
	})

	t.Run("appends json extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report")
		written, err := report.WriteFile(path, 0)
		if err != nil {
			t.Fatalf("WriteFile() unexpected error = %v", err)
		}
		if written != path+".json" {
			t.Errorf("written path = %q, want %q", written, path+".json")
		}
	})

	t.Run("empty path is a configuration error", func(t *testing.T) {
		if _, err := report.WriteFile("   ", 0); !errors.Is(err, ErrNoReportPath) {
			t.Errorf("WriteFile(blank) error = %v, want ErrNoReportPath", err)
		}
	})
}

func TestDefaultReportPath(t *testing.T) {
	got := DefaultReportPath("/models/detector_a.onnx", "/other/detector_b.onnx")
	want := filepath.Join("/models", "detector_a_vs_detector_b.json")
	if got != want {
		t.Errorf("DefaultReportPath() = %q, want %q", got, want)
	}
}
