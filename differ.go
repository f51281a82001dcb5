package onnxmeta

import "fmt"

// Differ compares the tensor interfaces of two model artifacts.
type Differ struct {
	introspector ModelIntrospector
	logger       Logger
}

// NewDiffer creates a Differ. With no options it introspects real ONNX
// files.
func NewDiffer(opts ...Option) *Differ {
	c := newConfig(opts)
	return &Differ{
		introspector: c.introspector,
		logger:       c.logger,
	}
}

// Diff introspects both models, compares the groups chosen by the
// selector, and returns the assembled report. Introspection failures
// abort the run; no partial report is produced. An incompatibility is
// not an error here: it is recorded in the report's ExitStatus.
func (d *Differ) Diff(modelA, modelB string, sel LayerSelector) (*Report, error) {
	ifaceA, err := d.introspector.Introspect(modelA)
	if err != nil {
		return nil, fmt.Errorf("introspecting model A: %w", err)
	}
	ifaceB, err := d.introspector.Introspect(modelB)
	if err != nil {
		return nil, fmt.Errorf("introspecting model B: %w", err)
	}

	comparison := CompareModels(ifaceA, ifaceB, sel)
	if d.logger != nil {
		for _, g := range comparison.Groups {
			d.logger.Debug("compared group",
				"group", string(g.Group),
				"compatible", g.Compatible,
				"only_in_a", len(g.OnlyInA),
				"only_in_b", len(g.OnlyInB))
		}
	}

	return BuildReport(modelA, modelB, comparison), nil
}
