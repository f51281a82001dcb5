package onnxmeta

// GroupResult is the comparison result for one interface group.
type GroupResult struct {
	// Group labels the compared group.
	Group Group

	// Compatible is true iff the two layer sequences are exactly
	// equal, element-wise and in order.
	Compatible bool

	// OnlyInA holds descriptors of model A with no structural match
	// anywhere in model B, in A's order.
	OnlyInA []LayerDescriptor

	// OnlyInB holds descriptors of model B with no structural match
	// anywhere in model A, in B's order.
	OnlyInB []LayerDescriptor

	// SymmetricDiff is OnlyInA followed by OnlyInB. It is a
	// concatenation, not a deduplicated union.
	SymmetricDiff []LayerDescriptor
}

// CompareGroup compares two ordered layer sequences of one group.
//
// The one-sided difference lists use set-style membership: a descriptor
// counts as shared if it occurs anywhere in the other sequence,
// regardless of position. Compatible, by contrast, is order-sensitive
// sequence equality. The two notions can disagree: reordered layers
// yield Compatible=false with both difference lists empty. That
// asymmetry is part of the report contract (see DESIGN.md).
func CompareGroup(a, b []LayerDescriptor, group Group) GroupResult {
	onlyInA := subtract(a, b)
	onlyInB := subtract(b, a)

	res := GroupResult{
		Group:      group,
		Compatible: sequenceEqual(a, b),
		OnlyInA:    onlyInA,
		OnlyInB:    onlyInB,
	}
	res.SymmetricDiff = make([]LayerDescriptor, 0, len(onlyInA)+len(onlyInB))
	res.SymmetricDiff = append(res.SymmetricDiff, onlyInA...)
	res.SymmetricDiff = append(res.SymmetricDiff, onlyInB...)
	return res
}

// subtract returns the elements of a with no structural match in b,
// preserving a's order.
func subtract(a, b []LayerDescriptor) []LayerDescriptor {
	out := make([]LayerDescriptor, 0)
	for _, la := range a {
		if !contains(b, la) {
			out = append(out, la)
		}
	}
	return out
}

// contains reports whether any element of layers equals l structurally.
func contains(layers []LayerDescriptor, l LayerDescriptor) bool {
	for _, other := range layers {
		if l.Equal(other) {
			return true
		}
	}
	return false
}

// sequenceEqual reports ordered, element-wise equality.
func sequenceEqual(a, b []LayerDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Comparison is the result of comparing two model interfaces over the
// requested groups.
type Comparison struct {
	// Groups holds one result per requested group, in evaluation order.
	Groups []GroupResult
}

// CompareModels evaluates the groups chosen by the selector. It is a
// pure function of the two interfaces; building and serializing the
// report is the caller's concern.
func CompareModels(a, b ModelInterface, sel LayerSelector) Comparison {
	var c Comparison
	for _, g := range sel.Groups() {
		c.Groups = append(c.Groups, CompareGroup(a.Layers(g), b.Layers(g), g))
	}
	return c
}

// AllCompatible reports whether every requested group matched. Any
// incompatibility in any requested group fails the comparison as a
// whole; there is no partial-success outcome.
func (c Comparison) AllCompatible() bool {
	for _, g := range c.Groups {
		if !g.Compatible {
			return false
		}
	}
	return true
}
