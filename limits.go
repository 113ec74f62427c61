// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

// Limits bounds the resources one decode call may consume. NRBF input
// is routinely adversarial (ViewState blobs, remoting captures), and
// declared lengths inside the stream must never be trusted to size
// allocations or loops. Exceeding any limit fails the decode with
// ErrResourceLimit.
//
// A zero field means "use the default for that field", so callers can
// override a single limit without restating the rest.
type Limits struct {
	// MaxRecords caps the total number of records consumed,
	// including member-position records (nulls, references, nested
	// definitions).
	MaxRecords int

	// MaxNodes caps the number of id-bearing nodes allocated.
	MaxNodes int

	// MaxArrayElements caps the element count declared by any single
	// array record (for multi-dimensional arrays, the product of the
	// extents).
	MaxArrayElements int

	// MaxDepth caps the nesting depth of inline record definitions
	// (a class whose member is a class whose member is an array...).
	// Deeply nested streams would otherwise exhaust the decoder's
	// stack.
	MaxDepth int
}

// DefaultLimits returns limits generous enough for any legitimate
// serialized payload while keeping worst-case memory in the tens of
// megabytes.
func DefaultLimits() Limits {
	return Limits{
		MaxRecords:       1 << 20,
		MaxNodes:         1 << 20,
		MaxArrayElements: 1 << 20,
		MaxDepth:         512,
	}
}

// withDefaults fills zero fields from DefaultLimits.
func (l Limits) withDefaults() Limits {
	defaults := DefaultLimits()
	if l.MaxRecords == 0 {
		l.MaxRecords = defaults.MaxRecords
	}
	if l.MaxNodes == 0 {
		l.MaxNodes = defaults.MaxNodes
	}
	if l.MaxArrayElements == 0 {
		l.MaxArrayElements = defaults.MaxArrayElements
	}
	if l.MaxDepth == 0 {
		l.MaxDepth = defaults.MaxDepth
	}
	return l
}
