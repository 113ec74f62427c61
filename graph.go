// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "sort"

// ValueKind discriminates the three forms a member or array element
// slot can take.
type ValueKind uint8

const (
	// ValueNull is an explicit null slot.
	ValueNull ValueKind = iota

	// ValuePrimitive is an inline primitive value (no object id).
	ValuePrimitive

	// ValueRef is a reference to an id-bearing node. References are
	// stored as object ids, never as Go pointers, so cyclic and
	// diamond-shared graphs carry no aliasing hazards; resolve with
	// Graph.Node or Graph.Resolve.
	ValueRef
)

// Value is one member or array element slot.
type Value struct {
	Kind      ValueKind
	Primitive Primitive // valid when Kind == ValuePrimitive
	Ref       int32     // valid when Kind == ValueRef
}

// Null returns an explicit null slot.
func Null() Value {
	return Value{Kind: ValueNull}
}

// Prim returns an inline primitive slot.
func Prim(t PrimitiveType, v any) Value {
	return Value{Kind: ValuePrimitive, Primitive: Primitive{Type: t, Value: v}}
}

// Ref returns a slot referencing the node with the given object id.
func Ref(id int32) Value {
	return Value{Kind: ValueRef, Ref: id}
}

// NodeKind discriminates the id-bearing node variants. Nulls and
// primitives are inline Values, not nodes.
type NodeKind uint8

const (
	NodeClass NodeKind = iota
	NodeArray
	NodeString
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeClass:
		return "class"
	case NodeArray:
		return "array"
	case NodeString:
		return "string"
	default:
		return "invalid"
	}
}

// Member is one named slot of a class node. Order is significant: it
// matches the member order of the class's type descriptor.
type Member struct {
	Name  string
	Value Value
}

// Node is one decoded vertex of the object graph. Exactly the fields
// for its Kind are meaningful.
type Node struct {
	ID   int32
	Kind NodeKind

	// Class node fields.
	TypeName  string
	LibraryID int32 // 0 for system classes
	Members   []Member

	// Array node fields. Dimensions and LowerBounds have one entry
	// per rank; Elements is in row-major order.
	ArrayKind   BinaryArrayType
	ElementType TypeInfo
	Dimensions  []int32
	LowerBounds []int32
	Elements    []Value

	// String node field.
	Str string
}

// Member returns the named member value of a class node.
func (n *Node) Member(name string) (Value, bool) {
	for _, m := range n.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Length returns the total element count of an array node.
func (n *Node) Length() int {
	return len(n.Elements)
}

// Graph is a decoded object graph: an arena of nodes indexed by object
// id, a root id, and the stream's library table. Two references to the
// same id always resolve to the identical *Node.
type Graph struct {
	rootID    int32
	nodes     map[int32]*Node
	libraries map[int32]string
}

// newGraph returns an empty graph.
func newGraph() *Graph {
	return &Graph{
		nodes:     make(map[int32]*Node),
		libraries: make(map[int32]string),
	}
}

// RootID returns the object id of the root node.
func (g *Graph) RootID() int32 {
	return g.rootID
}

// Root returns the root node, or nil if the root id is unresolved
// (possible only in diagnostic decoding of a broken stream).
func (g *Graph) Root() *Node {
	return g.nodes[g.rootID]
}

// Node returns the node with the given object id, or nil.
func (g *Graph) Node(id int32) *Node {
	return g.nodes[id]
}

// Resolve returns the node a reference slot points at, or nil for
// null and primitive slots.
func (g *Graph) Resolve(v Value) *Node {
	if v.Kind != ValueRef {
		return nil
	}
	return g.nodes[v.Ref]
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodeIDs returns every object id in the graph in ascending order.
func (g *Graph) NodeIDs() []int32 {
	ids := make([]int32, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Library returns the assembly-qualified name registered for a
// library id.
func (g *Graph) Library(id int32) (string, bool) {
	name, ok := g.libraries[id]
	return name, ok
}

// LibraryIDs returns every library id in the table in ascending order.
func (g *Graph) LibraryIDs() []int32 {
	ids := make([]int32, 0, len(g.libraries))
	for id := range g.libraries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
