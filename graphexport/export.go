// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package graphexport

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/nrbf"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical graph always
// produces identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("graphexport: CBOR encoder initialization failed: " + err.Error())
	}
}

// formatLabel names the export schema. Bump on incompatible changes
// so fingerprints from different schemas never collide.
const formatLabel = "nrbf-graph/1"

// exportGraph is the top-level CBOR document. These types are only
// ever serialized as CBOR, hence cbor struct tags.
type exportGraph struct {
	Format string       `cbor:"format"`
	Root   int32        `cbor:"root"`
	Nodes  []exportNode `cbor:"nodes"`
}

type exportNode struct {
	ID   int32  `cbor:"id"`
	Kind string `cbor:"kind"`

	// Class fields. Library holds the assembly name itself; library
	// ids, like object ids, are stream-local and excluded from the
	// canonical form.
	Type    string         `cbor:"type,omitempty"`
	Library string         `cbor:"library,omitempty"`
	Members []exportMember `cbor:"members,omitempty"`

	// Array fields.
	ArrayKind   string          `cbor:"array_kind,omitempty"`
	Element     *exportTypeInfo `cbor:"element,omitempty"`
	Dimensions  []int32         `cbor:"dimensions,omitempty"`
	LowerBounds []int32         `cbor:"lower_bounds,omitempty"`
	Elements    []exportValue   `cbor:"elements,omitempty"`

	// String field.
	Value string `cbor:"value,omitempty"`
}

type exportMember struct {
	Name  string      `cbor:"name"`
	Value exportValue `cbor:"value"`
}

type exportValue struct {
	Kind string `cbor:"kind"` // "null", "primitive", "ref"
	Type string `cbor:"type,omitempty"`
	// Value holds the primitive payload. TimeSpan exports as its
	// tick count, DateTime as [ticks, kind].
	Value any   `cbor:"value,omitempty"`
	Ref   int32 `cbor:"ref,omitempty"`
}

type exportTypeInfo struct {
	Type      string `cbor:"type"`
	Primitive string `cbor:"primitive,omitempty"`
	Class     string `cbor:"class,omitempty"`
	Library   string `cbor:"library,omitempty"`
}

// Export serializes the subgraph reachable from the root into the
// canonical CBOR form.
func Export(g *nrbf.Graph) ([]byte, error) {
	doc, err := canonicalize(g)
	if err != nil {
		return nil, err
	}
	data, err := encMode.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling graph export: %w", err)
	}
	return data, nil
}

// Fingerprint returns the BLAKE3 digest of the canonical export: a
// structural identity for the graph, equal for any two graphs that
// differ only in object-id or library-id assignment.
func Fingerprint(g *nrbf.Graph) ([32]byte, error) {
	data, err := Export(g)
	if err != nil {
		return [32]byte{}, err
	}
	return blake3.Sum256(data), nil
}

// Diagnose renders an export in CBOR diagnostic notation (RFC 8949
// §8) for human inspection.
func Diagnose(export []byte) (string, error) {
	return cbor.Diagnose(export)
}

// canonicalizer walks the graph assigning canonical ids in
// depth-first first-seen order.
type canonicalizer struct {
	graph *nrbf.Graph
	ids   map[int32]int32
	nodes []exportNode
}

func canonicalize(g *nrbf.Graph) (*exportGraph, error) {
	root := g.Root()
	if root == nil {
		return nil, fmt.Errorf("graph root (id %d) is not present", g.RootID())
	}
	c := &canonicalizer{graph: g, ids: make(map[int32]int32)}
	c.number(root)
	for _, node := range c.ordered() {
		exported, err := c.exportNode(node)
		if err != nil {
			return nil, err
		}
		c.nodes = append(c.nodes, exported)
	}
	return &exportGraph{
		Format: formatLabel,
		Root:   c.ids[root.ID],
		Nodes:  c.nodes,
	}, nil
}

// number assigns canonical ids depth-first in first-seen order.
func (c *canonicalizer) number(node *nrbf.Node) {
	if _, seen := c.ids[node.ID]; seen {
		return
	}
	c.ids[node.ID] = int32(len(c.ids) + 1)
	for _, member := range node.Members {
		c.numberValue(member.Value)
	}
	for _, element := range node.Elements {
		c.numberValue(element)
	}
}

func (c *canonicalizer) numberValue(v nrbf.Value) {
	if v.Kind != nrbf.ValueRef {
		return
	}
	if target := c.graph.Node(v.Ref); target != nil {
		c.number(target)
	}
}

// ordered yields the numbered nodes in canonical id order.
func (c *canonicalizer) ordered() []*nrbf.Node {
	nodes := make([]*nrbf.Node, len(c.ids))
	for graphID, canonicalID := range c.ids {
		nodes[canonicalID-1] = c.graph.Node(graphID)
	}
	return nodes
}

func (c *canonicalizer) exportNode(node *nrbf.Node) (exportNode, error) {
	out := exportNode{ID: c.ids[node.ID], Kind: node.Kind.String()}
	switch node.Kind {
	case nrbf.NodeString:
		out.Value = node.Str
	case nrbf.NodeClass:
		out.Type = node.TypeName
		if node.LibraryID != 0 {
			name, ok := c.graph.Library(node.LibraryID)
			if !ok {
				return exportNode{}, fmt.Errorf("class %q (id %d) references unregistered library id %d",
					node.TypeName, node.ID, node.LibraryID)
			}
			out.Library = name
		}
		out.Members = make([]exportMember, len(node.Members))
		for i, member := range node.Members {
			value, err := c.exportValue(node, member.Value)
			if err != nil {
				return exportNode{}, err
			}
			out.Members[i] = exportMember{Name: member.Name, Value: value}
		}
	case nrbf.NodeArray:
		out.ArrayKind = node.ArrayKind.String()
		element, err := c.exportTypeInfo(node.ElementType)
		if err != nil {
			return exportNode{}, err
		}
		out.Element = &element
		out.Dimensions = node.Dimensions
		out.LowerBounds = node.LowerBounds
		out.Elements = make([]exportValue, len(node.Elements))
		for i, value := range node.Elements {
			exported, err := c.exportValue(node, value)
			if err != nil {
				return exportNode{}, err
			}
			out.Elements[i] = exported
		}
	}
	return out, nil
}

func (c *canonicalizer) exportValue(holder *nrbf.Node, v nrbf.Value) (exportValue, error) {
	switch v.Kind {
	case nrbf.ValueNull:
		return exportValue{Kind: "null"}, nil
	case nrbf.ValuePrimitive:
		out := exportValue{
			Kind:  "primitive",
			Type:  v.Primitive.Type.String(),
			Value: v.Primitive.Value,
		}
		switch concrete := v.Primitive.Value.(type) {
		case nrbf.TimeSpan:
			out.Value = concrete.Ticks
		case nrbf.DateTime:
			out.Value = []int64{concrete.Ticks, int64(concrete.Kind)}
		}
		return out, nil
	case nrbf.ValueRef:
		canonicalID, ok := c.ids[v.Ref]
		if !ok {
			return exportValue{}, fmt.Errorf("object id %d referenced by object %d is not present",
				v.Ref, holder.ID)
		}
		return exportValue{Kind: "ref", Ref: canonicalID}, nil
	default:
		return exportValue{}, fmt.Errorf("object %d holds invalid value kind %d", holder.ID, v.Kind)
	}
}

func (c *canonicalizer) exportTypeInfo(info nrbf.TypeInfo) (exportTypeInfo, error) {
	out := exportTypeInfo{Type: info.Type.String()}
	switch info.Type {
	case nrbf.BinaryTypePrimitive, nrbf.BinaryTypePrimitiveArray:
		out.Primitive = info.Primitive.String()
	case nrbf.BinaryTypeSystemClass:
		out.Class = info.ClassName
	case nrbf.BinaryTypeClass:
		out.Class = info.ClassName
		if info.LibraryID != 0 {
			name, ok := c.graph.Library(info.LibraryID)
			if !ok {
				return exportTypeInfo{}, fmt.Errorf("element type %q references unregistered library id %d",
					info.ClassName, info.LibraryID)
			}
			out.Library = name
		}
	}
	return out, nil
}
