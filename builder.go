// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "fmt"

// GraphBuilder constructs a Graph programmatically for encoding (or
// for test fixtures). Object ids are caller-chosen, nonzero, and
// unique; a collision is reported immediately rather than at encode
// time. The builder does not validate references — a member may point
// at a node added later, which is how cycles are built — but Build
// verifies that every reference and the root resolve.
type GraphBuilder struct {
	graph   *Graph
	rootSet bool
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{graph: newGraph()}
}

func (b *GraphBuilder) addNode(node *Node) error {
	if node.ID == 0 {
		return fmt.Errorf("object id must be nonzero")
	}
	if _, exists := b.graph.nodes[node.ID]; exists {
		return fmt.Errorf("%w: object id %d", ErrIDCollision, node.ID)
	}
	b.graph.nodes[node.ID] = node
	return nil
}

// AddLibrary registers an assembly-qualified library name under a
// library id. Library ids live in their own namespace, separate from
// object ids.
func (b *GraphBuilder) AddLibrary(id int32, name string) error {
	if id == 0 {
		return fmt.Errorf("library id must be nonzero")
	}
	if _, exists := b.graph.libraries[id]; exists {
		return fmt.Errorf("%w: library id %d", ErrIDCollision, id)
	}
	b.graph.libraries[id] = name
	return nil
}

// AddString adds a string node.
func (b *GraphBuilder) AddString(id int32, value string) error {
	return b.addNode(&Node{ID: id, Kind: NodeString, Str: value})
}

// AddClass adds a class instance node. libraryID 0 marks a system
// (mscorlib) class; otherwise the id must be registered with
// AddLibrary before Build.
func (b *GraphBuilder) AddClass(id int32, typeName string, libraryID int32, members ...Member) error {
	return b.addNode(&Node{
		ID:        id,
		Kind:      NodeClass,
		TypeName:  typeName,
		LibraryID: libraryID,
		Members:   members,
	})
}

// AddArray adds a single-dimensional zero-based array node. The
// element TypeInfo governs how elements are encoded: Primitive
// elements inline, everything else as member records.
func (b *GraphBuilder) AddArray(id int32, element TypeInfo, elements ...Value) error {
	return b.addNode(&Node{
		ID:          id,
		Kind:        NodeArray,
		ArrayKind:   ArraySingle,
		ElementType: element,
		Dimensions:  []int32{int32(len(elements))},
		LowerBounds: []int32{0},
		Elements:    elements,
	})
}

// AddBinaryArray adds an array in the general form: any shape, rank,
// extents, and optional lower bounds, with elements in row-major
// order. The product of the extents must equal len(elements).
func (b *GraphBuilder) AddBinaryArray(id int32, kind BinaryArrayType, element TypeInfo,
	dimensions, lowerBounds []int32, elements ...Value) error {
	return b.addNode(&Node{
		ID:          id,
		Kind:        NodeArray,
		ArrayKind:   kind,
		ElementType: element,
		Dimensions:  dimensions,
		LowerBounds: lowerBounds,
		Elements:    elements,
	})
}

// SetRoot declares the root object id.
func (b *GraphBuilder) SetRoot(id int32) {
	b.graph.rootID = id
	b.rootSet = true
}

// Build validates the graph and returns it. The builder must not be
// reused afterwards.
func (b *GraphBuilder) Build() (*Graph, error) {
	if !b.rootSet || b.graph.rootID == 0 {
		return nil, fmt.Errorf("no root object set")
	}
	if b.graph.Root() == nil {
		return nil, fmt.Errorf("%w: root object id %d", ErrDanglingReference, b.graph.rootID)
	}
	for _, id := range b.graph.NodeIDs() {
		node := b.graph.nodes[id]
		for _, member := range node.Members {
			if err := b.checkRef(node, member.Value); err != nil {
				return nil, err
			}
		}
		for _, element := range node.Elements {
			if err := b.checkRef(node, element); err != nil {
				return nil, err
			}
		}
		if node.Kind == NodeClass && node.LibraryID != 0 {
			if _, ok := b.graph.libraries[node.LibraryID]; !ok {
				return nil, fmt.Errorf("class %q (id %d) references unregistered library id %d",
					node.TypeName, node.ID, node.LibraryID)
			}
		}
	}
	return b.graph, nil
}

func (b *GraphBuilder) checkRef(holder *Node, v Value) error {
	if v.Kind == ValueRef && b.graph.nodes[v.Ref] == nil {
		return fmt.Errorf("%w: object id %d referenced by object %d",
			ErrDanglingReference, v.Ref, holder.ID)
	}
	return nil
}
