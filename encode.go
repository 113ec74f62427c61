// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/nrbf/wire"
)

// Encode serializes the subgraph reachable from the root into one
// complete stream: header, BinaryLibrary records, data records in
// depth-first first-seen order, MessageEnd.
//
// Stream object ids are assigned fresh during traversal — the ids in
// the Graph are not carried over, since ids have no meaning outside a
// single stream. Decode(Encode(g)) yields a graph isomorphic to the
// reachable part of g (same shape and values, renumbered ids).
//
// Class nodes that share a type name, library, and inferred member
// layout are emitted as one full class record followed by ClassWithId
// records, the same reuse the format was designed for.
func Encode(g *Graph) ([]byte, error) {
	root := g.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: graph root (id %d) is not present", ErrDanglingReference, g.rootID)
	}

	e := &encoder{
		w:          wire.NewWriter(),
		graph:      g,
		streamIDs:  make(map[int32]int32),
		libraryIDs: make(map[int32]int32),
		signatures: make(map[string]int32),
	}
	if err := e.plan(root); err != nil {
		return nil, err
	}

	// Header: root id, header id (-1, the value serializers write
	// when no header object is present), version 1.0.
	e.w.Uint8(uint8(RecordSerializedStreamHeader))
	e.w.Int32(e.streamIDs[root.ID])
	e.w.Int32(-1)
	e.w.Int32(1)
	e.w.Int32(0)

	// Every library used by a reachable node, before any data record.
	for _, lib := range e.libraryOrder {
		name, _ := g.Library(lib)
		e.w.Uint8(uint8(RecordBinaryLibrary))
		e.w.Int32(e.libraryIDs[lib])
		e.w.String(name)
	}

	if err := e.emitNode(root); err != nil {
		return nil, err
	}
	e.w.Uint8(uint8(RecordMessageEnd))
	return e.w.Bytes(), nil
}

// encoder holds the per-call emission state.
type encoder struct {
	w     *wire.Writer
	graph *Graph

	// streamIDs maps graph object ids to the fresh ids assigned by
	// the planning traversal. libraryIDs does the same for library
	// ids; both draw from one counter, as serializers do.
	streamIDs  map[int32]int32
	libraryIDs map[int32]int32

	// libraryOrder lists graph library ids in first-use order.
	libraryOrder []int32

	// signatures maps a class layout signature to the stream id of
	// the first emitted instance, for ClassWithId reuse.
	signatures map[string]int32

	// emitted marks stream ids whose record has been (or is being)
	// written; later references become MemberReference records. A
	// node mid-emission counts, which is exactly how back-edges in
	// cycles turn into references.
	emitted map[int32]bool

	nextID int32
}

// plan walks the reachable subgraph depth-first, assigning stream ids
// to nodes and libraries in first-seen order and validating that
// every reference resolves.
func (e *encoder) plan(root *Node) error {
	e.emitted = make(map[int32]bool)
	if err := e.planNode(root); err != nil {
		return err
	}
	// Reset for the emission pass, which re-walks in the same order.
	e.emitted = make(map[int32]bool)
	return nil
}

func (e *encoder) planNode(node *Node) error {
	if e.emitted[node.ID] {
		return nil
	}
	e.emitted[node.ID] = true
	e.nextID++
	e.streamIDs[node.ID] = e.nextID

	if node.Kind == NodeClass && node.LibraryID != 0 {
		if err := e.planLibrary(node.LibraryID); err != nil {
			return fmt.Errorf("class %q (id %d): %w", node.TypeName, node.ID, err)
		}
	}
	if node.Kind == NodeArray && node.ElementType.Type == BinaryTypeClass {
		if err := e.planLibrary(node.ElementType.LibraryID); err != nil {
			return fmt.Errorf("array %d element type %q: %w", node.ID, node.ElementType.ClassName, err)
		}
	}

	for _, member := range node.Members {
		if err := e.planValue(node, member.Value); err != nil {
			return err
		}
	}
	for _, element := range node.Elements {
		if err := e.planValue(node, element); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) planValue(holder *Node, v Value) error {
	if v.Kind != ValueRef {
		return nil
	}
	target := e.graph.Node(v.Ref)
	if target == nil {
		return fmt.Errorf("%w: object id %d referenced by object %d",
			ErrDanglingReference, v.Ref, holder.ID)
	}
	return e.planNode(target)
}

func (e *encoder) planLibrary(id int32) error {
	if _, ok := e.graph.Library(id); !ok {
		return fmt.Errorf("library id %d is not registered in the graph", id)
	}
	if _, ok := e.libraryIDs[id]; ok {
		return nil
	}
	e.nextID++
	e.libraryIDs[id] = e.nextID
	e.libraryOrder = append(e.libraryOrder, id)
	return nil
}

// emitNode writes the defining record for a node, recursing into
// not-yet-emitted referenced nodes at their first reference position.
func (e *encoder) emitNode(node *Node) error {
	e.emitted[e.streamIDs[node.ID]] = true
	switch node.Kind {
	case NodeString:
		e.w.Uint8(uint8(RecordBinaryObjectString))
		e.w.Int32(e.streamIDs[node.ID])
		e.w.String(node.Str)
		return nil
	case NodeClass:
		return e.emitClass(node)
	case NodeArray:
		return e.emitArray(node)
	default:
		return fmt.Errorf("object %d has invalid node kind %d", node.ID, node.Kind)
	}
}

// memberInfo infers the declared type of a member slot from its
// value: primitives keep their primitive type, references to string
// nodes are String-typed, and everything else (class and array
// references, nulls) is an untyped Object reference.
func (e *encoder) memberInfo(holder *Node, v Value) (TypeInfo, error) {
	switch v.Kind {
	case ValuePrimitive:
		if !v.Primitive.Type.valid() || v.Primitive.Type == PrimitiveNull {
			return TypeInfo{}, fmt.Errorf("object %d: primitive member of type %s cannot be encoded",
				holder.ID, v.Primitive.Type)
		}
		return PrimitiveInfo(v.Primitive.Type), nil
	case ValueRef:
		if target := e.graph.Node(v.Ref); target != nil && target.Kind == NodeString {
			return StringInfo(), nil
		}
		return ObjectInfo(), nil
	default:
		return ObjectInfo(), nil
	}
}

// classSignature builds the reuse key for ClassWithId emission. Two
// nodes share a signature only when a single MemberTypeInfo describes
// both instances exactly.
func classSignature(node *Node, infos []TypeInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\x00%d", node.TypeName, node.LibraryID)
	for i, member := range node.Members {
		fmt.Fprintf(&b, "\x00%s\x01%d\x01%d", member.Name, infos[i].Type, infos[i].Primitive)
	}
	return b.String()
}

func (e *encoder) emitClass(node *Node) error {
	if node.TypeName == "" {
		return fmt.Errorf("%w: class object %d has no type name", ErrMissingTypeDescriptor, node.ID)
	}
	streamID := e.streamIDs[node.ID]

	infos := make([]TypeInfo, len(node.Members))
	for i, member := range node.Members {
		info, err := e.memberInfo(node, member.Value)
		if err != nil {
			return err
		}
		infos[i] = info
	}

	signature := classSignature(node, infos)
	if metadataID, ok := e.signatures[signature]; ok {
		e.w.Uint8(uint8(RecordClassWithID))
		e.w.Int32(streamID)
		e.w.Int32(metadataID)
	} else {
		e.signatures[signature] = streamID
		if node.LibraryID == 0 {
			e.w.Uint8(uint8(RecordSystemClassWithMembersAndTypes))
		} else {
			e.w.Uint8(uint8(RecordClassWithMembersAndTypes))
		}
		e.w.Int32(streamID)
		e.w.String(node.TypeName)
		e.w.Int32(int32(len(node.Members)))
		for _, member := range node.Members {
			e.w.String(member.Name)
		}
		for _, info := range infos {
			e.w.Uint8(uint8(info.Type))
		}
		for _, info := range infos {
			if info.Type == BinaryTypePrimitive {
				e.w.Uint8(uint8(info.Primitive))
			}
		}
		if node.LibraryID != 0 {
			e.w.Int32(e.libraryIDs[node.LibraryID])
		}
	}

	for i, member := range node.Members {
		if err := e.emitValue(node, member.Value, infos[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) emitArray(node *Node) error {
	streamID := e.streamIDs[node.ID]
	rank := len(node.Dimensions)
	if rank == 0 {
		return fmt.Errorf("array object %d has no dimensions", node.ID)
	}
	if len(node.LowerBounds) != 0 && len(node.LowerBounds) != rank {
		return fmt.Errorf("array object %d has %d lower bounds for rank %d",
			node.ID, len(node.LowerBounds), rank)
	}
	total := int64(1)
	zeroBased := true
	for _, extent := range node.Dimensions {
		if extent < 0 {
			return fmt.Errorf("array object %d has negative extent %d", node.ID, extent)
		}
		total *= int64(extent)
	}
	for _, bound := range node.LowerBounds {
		if bound != 0 {
			zeroBased = false
		}
	}
	if total != int64(len(node.Elements)) {
		return fmt.Errorf("array object %d declares %d elements but holds %d",
			node.ID, total, len(node.Elements))
	}

	element := node.ElementType
	simple := rank == 1 && zeroBased && node.ArrayKind == ArraySingle

	switch {
	case simple && element.Type == BinaryTypePrimitive:
		if !element.Primitive.valid() || element.Primitive == PrimitiveNull {
			return fmt.Errorf("array object %d has invalid element primitive type %s", node.ID, element.Primitive)
		}
		e.w.Uint8(uint8(RecordArraySinglePrimitive))
		e.w.Int32(streamID)
		e.w.Int32(node.Dimensions[0])
		e.w.Uint8(uint8(element.Primitive))

	case simple && element.Type == BinaryTypeString:
		e.w.Uint8(uint8(RecordArraySingleString))
		e.w.Int32(streamID)
		e.w.Int32(node.Dimensions[0])

	case simple && element.Type == BinaryTypeObject:
		e.w.Uint8(uint8(RecordArraySingleObject))
		e.w.Int32(streamID)
		e.w.Int32(node.Dimensions[0])

	default:
		if !node.ArrayKind.valid() {
			return fmt.Errorf("array object %d has invalid shape %d", node.ID, uint8(node.ArrayKind))
		}
		e.w.Uint8(uint8(RecordBinaryArray))
		e.w.Int32(streamID)
		e.w.Uint8(uint8(node.ArrayKind))
		e.w.Int32(int32(rank))
		for _, extent := range node.Dimensions {
			e.w.Int32(extent)
		}
		if node.ArrayKind.hasLowerBounds() {
			bounds := node.LowerBounds
			if len(bounds) == 0 {
				bounds = make([]int32, rank)
			}
			for _, bound := range bounds {
				e.w.Int32(bound)
			}
		}
		e.w.Uint8(uint8(element.Type))
		switch element.Type {
		case BinaryTypePrimitive, BinaryTypePrimitiveArray:
			e.w.Uint8(uint8(element.Primitive))
		case BinaryTypeSystemClass:
			e.w.String(element.ClassName)
		case BinaryTypeClass:
			e.w.String(element.ClassName)
			e.w.Int32(e.libraryIDs[element.LibraryID])
		}
	}

	for _, value := range node.Elements {
		if err := e.emitValue(node, value, element); err != nil {
			return err
		}
	}
	return nil
}

// emitValue writes one member or element slot: an inline primitive
// for Primitive-typed slots, otherwise the appropriate member record.
func (e *encoder) emitValue(holder *Node, v Value, info TypeInfo) error {
	if info.Type == BinaryTypePrimitive {
		if v.Kind != ValuePrimitive {
			return fmt.Errorf("object %d: slot declared %s holds a non-primitive value",
				holder.ID, info.Primitive)
		}
		return e.writePrimitive(holder, v.Primitive, info.Primitive)
	}

	switch v.Kind {
	case ValueNull:
		e.w.Uint8(uint8(RecordObjectNull))
		return nil
	case ValuePrimitive:
		return fmt.Errorf("object %d: primitive value in reference-typed slot", holder.ID)
	case ValueRef:
		target := e.graph.Node(v.Ref)
		if target == nil {
			return fmt.Errorf("%w: object id %d referenced by object %d",
				ErrDanglingReference, v.Ref, holder.ID)
		}
		streamID := e.streamIDs[target.ID]
		if e.emitted[streamID] {
			e.w.Uint8(uint8(RecordMemberReference))
			e.w.Int32(streamID)
			return nil
		}
		return e.emitNode(target)
	default:
		return fmt.Errorf("object %d: invalid value kind %d", holder.ID, v.Kind)
	}
}

// writePrimitive writes the inline wire form of a primitive value,
// checking that the Go value matches the declared type. A mismatch is
// a caller bug, reported rather than coerced.
func (e *encoder) writePrimitive(holder *Node, p Primitive, want PrimitiveType) error {
	if p.Type != want {
		return fmt.Errorf("object %d: primitive is %s, slot wants %s", holder.ID, p.Type, want)
	}
	mismatch := func() error {
		return fmt.Errorf("object %d: %s primitive holds incompatible value %T",
			holder.ID, p.Type, p.Value)
	}
	switch p.Type {
	case PrimitiveBoolean:
		v, ok := p.Value.(bool)
		if !ok {
			return mismatch()
		}
		e.w.Bool(v)
	case PrimitiveByte:
		v, ok := p.Value.(uint8)
		if !ok {
			return mismatch()
		}
		e.w.Uint8(v)
	case PrimitiveSByte:
		v, ok := p.Value.(int8)
		if !ok {
			return mismatch()
		}
		e.w.Int8(v)
	case PrimitiveChar:
		v, ok := p.Value.(rune)
		if !ok {
			return mismatch()
		}
		if v < 0 || v > 0xFFFF {
			return fmt.Errorf("object %d: Char value %U does not fit one UTF-16 code unit", holder.ID, v)
		}
		e.w.Uint16(uint16(v))
	case PrimitiveInt16:
		v, ok := p.Value.(int16)
		if !ok {
			return mismatch()
		}
		e.w.Int16(v)
	case PrimitiveUInt16:
		v, ok := p.Value.(uint16)
		if !ok {
			return mismatch()
		}
		e.w.Uint16(v)
	case PrimitiveInt32:
		v, ok := p.Value.(int32)
		if !ok {
			return mismatch()
		}
		e.w.Int32(v)
	case PrimitiveUInt32:
		v, ok := p.Value.(uint32)
		if !ok {
			return mismatch()
		}
		e.w.Uint32(v)
	case PrimitiveInt64:
		v, ok := p.Value.(int64)
		if !ok {
			return mismatch()
		}
		e.w.Int64(v)
	case PrimitiveUInt64:
		v, ok := p.Value.(uint64)
		if !ok {
			return mismatch()
		}
		e.w.Uint64(v)
	case PrimitiveSingle:
		v, ok := p.Value.(float32)
		if !ok {
			return mismatch()
		}
		e.w.Float32(v)
	case PrimitiveDouble:
		v, ok := p.Value.(float64)
		if !ok {
			return mismatch()
		}
		e.w.Float64(v)
	case PrimitiveTimeSpan:
		v, ok := p.Value.(TimeSpan)
		if !ok {
			return mismatch()
		}
		e.w.Int64(v.Ticks)
	case PrimitiveDateTime:
		v, ok := p.Value.(DateTime)
		if !ok {
			return mismatch()
		}
		if v.Ticks < 0 || v.Ticks >= 1<<62 {
			return fmt.Errorf("object %d: DateTime ticks %d out of range", holder.ID, v.Ticks)
		}
		if v.Kind > DateTimeLocal {
			return fmt.Errorf("object %d: DateTime kind %d out of range", holder.ID, v.Kind)
		}
		e.w.Uint64(uint64(v.Ticks) | uint64(v.Kind)<<62)
	case PrimitiveDecimal, PrimitiveString:
		v, ok := p.Value.(string)
		if !ok {
			return mismatch()
		}
		e.w.String(v)
	default:
		return fmt.Errorf("object %d: primitive type %s has no inline value form", holder.ID, p.Type)
	}
	return nil
}
