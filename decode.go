// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/nrbf/wire"
)

// Decode parses one serialization stream into its object graph using
// DefaultLimits. The input must be the complete stream, header through
// MessageEnd; bytes after MessageEnd are ignored (streams are often
// embedded in larger envelopes).
//
// Decoding is fatal on the first structural problem: no partial graph
// is returned. Use DecodeDiagnostic to inspect malformed input.
func Decode(data []byte) (*Graph, error) {
	return DecodeWithLimits(data, DefaultLimits())
}

// DecodeWithLimits is Decode with caller-supplied resource limits.
func DecodeWithLimits(data []byte, limits Limits) (*Graph, error) {
	graph, errs := decodeStream(data, limits, false)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return graph, nil
}

// DecodeDiagnostic decodes as much of the stream as possible and
// returns the partially assembled graph together with every error
// encountered. Unlike Decode it keeps going through reference
// resolution after a resolution failure, so all dangling references
// are reported, not just the first. The returned graph may be missing
// nodes and must not be treated as a faithful decoding when errs is
// non-empty.
func DecodeDiagnostic(data []byte, limits Limits) (*Graph, []error) {
	return decodeStream(data, limits, true)
}

// decodeStream runs one full decode. In diagnostic mode errors are
// accumulated where recovery is meaningful; otherwise the first error
// aborts.
func decodeStream(data []byte, limits Limits, diagnostic bool) (*Graph, []error) {
	d := &decoder{
		r:           wire.NewReader(data),
		limits:      limits.withDefaults(),
		graph:       newGraph(),
		descriptors: make(map[int32]*TypeDescriptor),
	}

	var errs []error
	if err := d.run(); err != nil {
		errs = append(errs, err)
		if !diagnostic {
			return nil, errs
		}
	}
	errs = append(errs, d.resolveReferences(diagnostic)...)
	if len(errs) > 0 && !diagnostic {
		return nil, errs[:1]
	}
	return d.graph, errs
}

// decoder holds the per-call state: the cursor, the caches, and the
// resource accounting. Nothing here outlives one decode, which keeps
// independent decodes free of shared mutable state.
type decoder struct {
	r      *wire.Reader
	limits Limits
	graph  *Graph

	// descriptors maps the object id of each class-definition record
	// (and of each ClassWithId that reused one) to its member layout.
	descriptors map[int32]*TypeDescriptor

	records int
	depth   int
}

// run decodes header and records through MessageEnd.
func (d *decoder) run() error {
	tag, err := d.nextTag()
	if err != nil {
		return err
	}
	if tag != RecordSerializedStreamHeader {
		return d.malformedf("stream must begin with SerializedStreamHeader, found %s", tag)
	}
	if err := d.readHeader(); err != nil {
		return err
	}

	for {
		tag, err := d.nextTag()
		if err != nil {
			return err
		}
		switch tag {
		case RecordMessageEnd:
			return nil
		case RecordBinaryLibrary:
			if err := d.readLibrary(); err != nil {
				return err
			}
		case RecordMemberReference, RecordObjectNull,
			RecordObjectNullMultiple, RecordObjectNullMultiple256:
			return d.malformedf("record %s is only valid in a member position", tag)
		default:
			if _, err := d.readValueRecord(tag); err != nil {
				return err
			}
		}
	}
}

// nextTag consumes and validates one record tag byte, charging it
// against the record limit.
func (d *decoder) nextTag() (RecordType, error) {
	tag := RecordType(d.r.Uint8())
	if err := d.wireErr(); err != nil {
		return 0, err
	}
	if !tag.known() {
		return 0, d.malformedf("unknown record tag 0x%02x", uint8(tag))
	}
	d.records++
	if d.records > d.limits.MaxRecords {
		return 0, fmt.Errorf("%w: more than %d records", ErrResourceLimit, d.limits.MaxRecords)
	}
	return tag, nil
}

// readHeader parses the SerializedStreamHeader body.
func (d *decoder) readHeader() error {
	rootID := d.r.Int32()
	d.r.Int32() // header id, unused by the object graph
	major := d.r.Int32()
	minor := d.r.Int32()
	if err := d.wireErr(); err != nil {
		return err
	}
	if major != 1 || minor != 0 {
		return d.malformedf("unsupported format version %d.%d (want 1.0)", major, minor)
	}
	if rootID == 0 {
		return d.malformedf("header declares no root object")
	}
	d.graph.rootID = rootID
	return nil
}

// readLibrary parses a BinaryLibrary record into the library table.
func (d *decoder) readLibrary() error {
	id := d.r.Int32()
	name := d.r.String()
	if err := d.wireErr(); err != nil {
		return err
	}
	if id == 0 {
		return d.malformedf("library id must be nonzero")
	}
	if _, exists := d.graph.libraries[id]; exists {
		return d.malformedf("library id %d redefined", id)
	}
	d.graph.libraries[id] = name
	return nil
}

// readValueRecord dispatches a record that defines an id-bearing node
// and returns a reference to it. The member-position-only records
// (nulls, MemberReference) are handled by readReferenceSlot before
// this is reached, so here they are positional errors.
func (d *decoder) readValueRecord(tag RecordType) (Value, error) {
	if d.depth >= d.limits.MaxDepth {
		return Value{}, fmt.Errorf("%w: record nesting deeper than %d", ErrResourceLimit, d.limits.MaxDepth)
	}
	d.depth++
	defer func() { d.depth-- }()

	switch tag {
	case RecordBinaryObjectString:
		return d.readBinaryObjectString()
	case RecordClassWithMembersAndTypes:
		return d.readClassWithMembersAndTypes(false)
	case RecordSystemClassWithMembersAndTypes:
		return d.readClassWithMembersAndTypes(true)
	case RecordClassWithMembers:
		return d.readClassWithMembers(false)
	case RecordSystemClassWithMembers:
		return d.readClassWithMembers(true)
	case RecordClassWithID:
		return d.readClassWithID()
	case RecordArraySinglePrimitive:
		return d.readArraySinglePrimitive()
	case RecordArraySingleObject:
		return d.readArraySingleFlavor(ObjectInfo())
	case RecordArraySingleString:
		return d.readArraySingleFlavor(StringInfo())
	case RecordBinaryArray:
		return d.readBinaryArray()
	case RecordMemberPrimitiveTyped, RecordMethodCall, RecordMethodReturn:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedRecord, tag)
	default:
		return Value{}, d.malformedf("record %s not valid in this position", tag)
	}
}

// newNode allocates a node in the arena. Allocation happens before
// the node's values are read, so a node under construction is already
// addressable by id — this is what makes direct self-references and
// mutual cycles decodable in a single pass.
func (d *decoder) newNode(id int32, kind NodeKind) (*Node, error) {
	if id == 0 {
		return nil, d.malformedf("%s record with object id 0", kind)
	}
	if _, exists := d.graph.nodes[id]; exists {
		return nil, fmt.Errorf("%w: object id %d", ErrDuplicateObjectID, id)
	}
	if len(d.graph.nodes) >= d.limits.MaxNodes {
		return nil, fmt.Errorf("%w: more than %d nodes", ErrResourceLimit, d.limits.MaxNodes)
	}
	node := &Node{ID: id, Kind: kind}
	d.graph.nodes[id] = node
	return node, nil
}

// readBinaryObjectString parses a BinaryObjectString record. The
// string body is read in full before the node is allocated, so a
// truncated length prefix never leaves a partial node behind.
func (d *decoder) readBinaryObjectString() (Value, error) {
	id := d.r.Int32()
	value := d.r.String()
	if err := d.wireErr(); err != nil {
		return Value{}, err
	}
	node, err := d.newNode(id, NodeString)
	if err != nil {
		return Value{}, err
	}
	node.Str = value
	return Ref(id), nil
}

// readClassInfo parses the shared ClassInfo structure: object id,
// class name, member count, member names.
func (d *decoder) readClassInfo() (int32, string, []string, error) {
	id := d.r.Int32()
	name := d.r.String()
	count := d.r.Int32()
	if err := d.wireErr(); err != nil {
		return 0, "", nil, err
	}
	if count < 0 {
		return 0, "", nil, d.malformedf("class %q declares %d members", name, count)
	}
	// Each member name occupies at least one byte, so a count beyond
	// the remaining input is provably truncated before any
	// allocation sized by it.
	if int(count) > d.r.Remaining() {
		return 0, "", nil, fmt.Errorf("%w: class %q declares %d members with %d bytes remaining",
			ErrTruncatedStream, name, count, d.r.Remaining())
	}
	names := make([]string, count)
	for i := range names {
		names[i] = d.r.String()
	}
	if err := d.wireErr(); err != nil {
		return 0, "", nil, err
	}
	return id, name, names, nil
}

// readMemberTypeInfo parses the MemberTypeInfo structure: one
// BinaryType byte per member, then each member's additional type
// information in the same order.
func (d *decoder) readMemberTypeInfo(names []string) ([]MemberType, error) {
	tags := d.r.Bytes(len(names))
	if err := d.wireErr(); err != nil {
		return nil, err
	}
	members := make([]MemberType, len(names))
	for i, name := range names {
		binaryType := BinaryType(tags[i])
		if !binaryType.valid() {
			return nil, d.malformedf("member %q has unknown binary type %d", name, tags[i])
		}
		members[i] = MemberType{Name: name, Info: TypeInfo{Type: binaryType}}
	}
	for i := range members {
		info, err := d.readAdditionalInfo(members[i].Info.Type)
		if err != nil {
			return nil, err
		}
		members[i].Info = info
	}
	return members, nil
}

// readAdditionalInfo parses the additional type information carried
// by a BinaryType tag (in member type lists and BinaryArray element
// descriptors).
func (d *decoder) readAdditionalInfo(binaryType BinaryType) (TypeInfo, error) {
	info := TypeInfo{Type: binaryType}
	switch binaryType {
	case BinaryTypePrimitive, BinaryTypePrimitiveArray:
		primitive := PrimitiveType(d.r.Uint8())
		if err := d.wireErr(); err != nil {
			return TypeInfo{}, err
		}
		if !primitive.valid() {
			return TypeInfo{}, d.malformedf("unknown primitive type %d", uint8(primitive))
		}
		info.Primitive = primitive
	case BinaryTypeSystemClass:
		info.ClassName = d.r.String()
		if err := d.wireErr(); err != nil {
			return TypeInfo{}, err
		}
	case BinaryTypeClass:
		info.ClassName = d.r.String()
		info.LibraryID = d.r.Int32()
		if err := d.wireErr(); err != nil {
			return TypeInfo{}, err
		}
	}
	return info, nil
}

// registerClass allocates the class node and registers its descriptor
// before any member value is read, then fills the members. Descriptor
// registration must precede the values because a member may itself be
// a ClassWithId referring back to this very class.
func (d *decoder) registerClass(id int32, desc *TypeDescriptor) (Value, error) {
	node, err := d.newNode(id, NodeClass)
	if err != nil {
		return Value{}, err
	}
	node.TypeName = desc.ClassName
	node.LibraryID = desc.LibraryID
	d.descriptors[id] = desc

	values, err := d.readValueSequence(len(desc.Members), func(i int) TypeInfo {
		return desc.Members[i].Info
	})
	if err != nil {
		return Value{}, err
	}
	node.Members = make([]Member, len(values))
	for i, value := range values {
		node.Members[i] = Member{Name: desc.Members[i].Name, Value: value}
	}
	return Ref(id), nil
}

// readClassWithMembersAndTypes parses ClassWithMembersAndTypes (and
// its system-library variant, which omits the library id).
func (d *decoder) readClassWithMembersAndTypes(system bool) (Value, error) {
	id, name, names, err := d.readClassInfo()
	if err != nil {
		return Value{}, err
	}
	members, err := d.readMemberTypeInfo(names)
	if err != nil {
		return Value{}, err
	}
	var libraryID int32
	if !system {
		libraryID = d.r.Int32()
		if err := d.wireErr(); err != nil {
			return Value{}, err
		}
		if _, ok := d.graph.libraries[libraryID]; !ok {
			return Value{}, d.malformedf("class %q references unregistered library id %d", name, libraryID)
		}
	}
	desc := &TypeDescriptor{ClassName: name, LibraryID: libraryID, Members: members}
	return d.registerClass(id, desc)
}

// readClassWithMembers parses ClassWithMembers / SystemClassWithMembers,
// the variants without per-member type tags. With no prior type
// knowledge available the members are treated as Object-typed
// references, so each value is expected to be a member record (a
// reference, a null, or an inline definition).
func (d *decoder) readClassWithMembers(system bool) (Value, error) {
	id, name, names, err := d.readClassInfo()
	if err != nil {
		return Value{}, err
	}
	var libraryID int32
	if !system {
		libraryID = d.r.Int32()
		if err := d.wireErr(); err != nil {
			return Value{}, err
		}
		if _, ok := d.graph.libraries[libraryID]; !ok {
			return Value{}, d.malformedf("class %q references unregistered library id %d", name, libraryID)
		}
	}
	members := make([]MemberType, len(names))
	for i, memberName := range names {
		members[i] = MemberType{Name: memberName, Info: ObjectInfo()}
	}
	desc := &TypeDescriptor{ClassName: name, LibraryID: libraryID, Members: members}
	return d.registerClass(id, desc)
}

// readClassWithID parses ClassWithId: a new instance reusing the type
// descriptor registered by an earlier class record.
func (d *decoder) readClassWithID() (Value, error) {
	objectID := d.r.Int32()
	metadataID := d.r.Int32()
	if err := d.wireErr(); err != nil {
		return Value{}, err
	}
	desc, ok := d.descriptors[metadataID]
	if !ok {
		return Value{}, fmt.Errorf("%w: ClassWithId %d references metadata id %d",
			ErrUnknownClassID, objectID, metadataID)
	}
	return d.registerClass(objectID, desc)
}

// checkArrayLength validates a declared element count against the
// limit and, for fixed-width elements, against the bytes actually
// remaining — before anything is allocated from it.
func (d *decoder) checkArrayLength(total int64, element TypeInfo) error {
	if total > int64(d.limits.MaxArrayElements) {
		return fmt.Errorf("%w: array declares %d elements (limit %d)",
			ErrResourceLimit, total, d.limits.MaxArrayElements)
	}
	if element.Type == BinaryTypePrimitive {
		if width := element.Primitive.fixedWidth(); width > 0 {
			if need := total * int64(width); need > int64(d.r.Remaining()) {
				return fmt.Errorf("%w: array declares %d bytes of %s elements with %d bytes remaining",
					ErrTruncatedStream, need, element.Primitive, d.r.Remaining())
			}
		}
	}
	return nil
}

// readArrayElements allocates the array node and fills its elements.
// As with classes, the node enters the arena before its elements are
// read so element references back to the array itself resolve.
func (d *decoder) readArrayElements(id int32, kind BinaryArrayType, element TypeInfo,
	dimensions, lowerBounds []int32, total int64) (Value, error) {
	node, err := d.newNode(id, NodeArray)
	if err != nil {
		return Value{}, err
	}
	node.ArrayKind = kind
	node.ElementType = element
	node.Dimensions = dimensions
	node.LowerBounds = lowerBounds

	elements, err := d.readValueSequence(int(total), func(int) TypeInfo { return element })
	if err != nil {
		return Value{}, err
	}
	node.Elements = elements
	return Ref(id), nil
}

// readArraySinglePrimitive parses ArraySinglePrimitive: raw
// fixed-width element values with no per-element record tags.
func (d *decoder) readArraySinglePrimitive() (Value, error) {
	id := d.r.Int32()
	length := d.r.Int32()
	primitive := PrimitiveType(d.r.Uint8())
	if err := d.wireErr(); err != nil {
		return Value{}, err
	}
	if length < 0 {
		return Value{}, d.malformedf("array %d declares length %d", id, length)
	}
	if !primitive.valid() || primitive == PrimitiveNull {
		return Value{}, d.malformedf("array %d has invalid element primitive type %d", id, uint8(primitive))
	}
	element := PrimitiveInfo(primitive)
	if err := d.checkArrayLength(int64(length), element); err != nil {
		return Value{}, err
	}
	return d.readArrayElements(id, ArraySingle, element,
		[]int32{length}, []int32{0}, int64(length))
}

// readArraySingleFlavor parses ArraySingleObject and ArraySingleString,
// which differ only in the element category.
func (d *decoder) readArraySingleFlavor(element TypeInfo) (Value, error) {
	id := d.r.Int32()
	length := d.r.Int32()
	if err := d.wireErr(); err != nil {
		return Value{}, err
	}
	if length < 0 {
		return Value{}, d.malformedf("array %d declares length %d", id, length)
	}
	if err := d.checkArrayLength(int64(length), element); err != nil {
		return Value{}, err
	}
	return d.readArrayElements(id, ArraySingle, element,
		[]int32{length}, []int32{0}, int64(length))
}

// maxRank is the dimension cap of the CLR array type system.
const maxRank = 32

// readBinaryArray parses the general BinaryArray record form:
// single-dimensional, jagged, or rectangular, with optional non-zero
// lower bounds, and an explicit element type descriptor.
func (d *decoder) readBinaryArray() (Value, error) {
	id := d.r.Int32()
	arrayType := BinaryArrayType(d.r.Uint8())
	rank := d.r.Int32()
	if err := d.wireErr(); err != nil {
		return Value{}, err
	}
	if !arrayType.valid() {
		return Value{}, d.malformedf("array %d has unknown shape %d", id, uint8(arrayType))
	}
	if rank < 1 || rank > maxRank {
		return Value{}, d.malformedf("array %d declares rank %d", id, rank)
	}
	switch arrayType {
	case ArraySingle, ArrayJagged, ArraySingleOffset, ArrayJaggedOffset:
		if rank != 1 {
			return Value{}, d.malformedf("%s array %d declares rank %d", arrayType, id, rank)
		}
	}

	dimensions := make([]int32, rank)
	for i := range dimensions {
		dimensions[i] = d.r.Int32()
	}
	lowerBounds := make([]int32, rank)
	if arrayType.hasLowerBounds() {
		for i := range lowerBounds {
			lowerBounds[i] = d.r.Int32()
		}
	}
	elementTag := BinaryType(d.r.Uint8())
	if err := d.wireErr(); err != nil {
		return Value{}, err
	}
	if !elementTag.valid() {
		return Value{}, d.malformedf("array %d has unknown element binary type %d", id, uint8(elementTag))
	}
	element, err := d.readAdditionalInfo(elementTag)
	if err != nil {
		return Value{}, err
	}

	total := int64(1)
	for _, extent := range dimensions {
		if extent < 0 {
			return Value{}, d.malformedf("array %d declares extent %d", id, extent)
		}
		total *= int64(extent)
		// The per-array element limit doubles as an overflow guard:
		// bail as soon as the running product exceeds it.
		if total > int64(d.limits.MaxArrayElements) {
			return Value{}, fmt.Errorf("%w: array %d declares %d elements (limit %d)",
				ErrResourceLimit, id, total, d.limits.MaxArrayElements)
		}
	}
	if err := d.checkArrayLength(total, element); err != nil {
		return Value{}, err
	}
	return d.readArrayElements(id, arrayType, element, dimensions, lowerBounds, total)
}

// readValueSequence decodes count member or element values, with the
// type of slot i given by infoAt(i). A null-run record
// (ObjectNullMultiple or its 256 variant) fills that many consecutive
// reference slots; a run extending past the final slot, or landing on
// an inline-primitive slot, is malformed. This exact-consumption rule
// is the alignment invariant of the format: every slot consumes
// precisely the records its declared type calls for.
func (d *decoder) readValueSequence(count int, infoAt func(int) TypeInfo) ([]Value, error) {
	values := make([]Value, 0, count)
	nullRun := 0
	for i := 0; i < count; i++ {
		info := infoAt(i)
		if info.Type == BinaryTypePrimitive {
			if nullRun > 0 {
				return nil, d.malformedf("null run spills into a primitive slot")
			}
			primitive, err := d.readPrimitive(info.Primitive)
			if err != nil {
				return nil, err
			}
			values = append(values, Value{Kind: ValuePrimitive, Primitive: primitive})
			continue
		}
		if nullRun > 0 {
			values = append(values, Null())
			nullRun--
			continue
		}
		value, run, err := d.readReferenceSlot()
		if err != nil {
			return nil, err
		}
		if run > 0 {
			values = append(values, Null())
			nullRun = run - 1
			continue
		}
		values = append(values, value)
	}
	if nullRun > 0 {
		return nil, d.malformedf("null run exceeds remaining slots by %d", nullRun)
	}
	return values, nil
}

// readReferenceSlot reads the record(s) for one reference-typed slot:
// a MemberReference, a null (possibly a run, returned as run > 0 with
// the first null consumed), or an inline id-bearing definition.
// BinaryLibrary records may precede the value record; serializers
// emit the library definition immediately before the first nested
// record that needs it.
func (d *decoder) readReferenceSlot() (Value, int, error) {
	for {
		tag, err := d.nextTag()
		if err != nil {
			return Value{}, 0, err
		}
		switch tag {
		case RecordObjectNull:
			return Null(), 0, nil
		case RecordObjectNullMultiple256:
			run := int(d.r.Uint8())
			if err := d.wireErr(); err != nil {
				return Value{}, 0, err
			}
			if run == 0 {
				return Value{}, 0, d.malformedf("ObjectNullMultiple256 with count 0")
			}
			return Null(), run, nil
		case RecordObjectNullMultiple:
			run := d.r.Int32()
			if err := d.wireErr(); err != nil {
				return Value{}, 0, err
			}
			if run <= 0 {
				return Value{}, 0, d.malformedf("ObjectNullMultiple with count %d", run)
			}
			return Null(), int(run), nil
		case RecordMemberReference:
			id := d.r.Int32()
			if err := d.wireErr(); err != nil {
				return Value{}, 0, err
			}
			if id == 0 {
				return Value{}, 0, d.malformedf("MemberReference to object id 0")
			}
			return Ref(id), 0, nil
		case RecordBinaryLibrary:
			if err := d.readLibrary(); err != nil {
				return Value{}, 0, err
			}
		default:
			value, err := d.readValueRecord(tag)
			if err != nil {
				return Value{}, 0, err
			}
			return value, 0, nil
		}
	}
}

// readPrimitive decodes one inline primitive value of the given type.
func (d *decoder) readPrimitive(t PrimitiveType) (Primitive, error) {
	p := Primitive{Type: t}
	switch t {
	case PrimitiveBoolean:
		p.Value = d.r.Bool()
	case PrimitiveByte:
		p.Value = d.r.Uint8()
	case PrimitiveSByte:
		p.Value = d.r.Int8()
	case PrimitiveChar:
		p.Value = rune(d.r.Uint16())
	case PrimitiveInt16:
		p.Value = d.r.Int16()
	case PrimitiveUInt16:
		p.Value = d.r.Uint16()
	case PrimitiveInt32:
		p.Value = d.r.Int32()
	case PrimitiveUInt32:
		p.Value = d.r.Uint32()
	case PrimitiveInt64:
		p.Value = d.r.Int64()
	case PrimitiveUInt64:
		p.Value = d.r.Uint64()
	case PrimitiveSingle:
		p.Value = d.r.Float32()
	case PrimitiveDouble:
		p.Value = d.r.Float64()
	case PrimitiveTimeSpan:
		p.Value = TimeSpan{Ticks: d.r.Int64()}
	case PrimitiveDateTime:
		raw := d.r.Uint64()
		kind := DateTimeKind(raw >> 62)
		if kind > DateTimeLocal {
			return Primitive{}, d.malformedf("DateTime with kind %d", kind)
		}
		p.Value = DateTime{Ticks: int64(raw & (1<<62 - 1)), Kind: kind}
	case PrimitiveDecimal, PrimitiveString:
		p.Value = d.r.String()
	default:
		// PrimitiveNull (17) has no inline representation.
		return Primitive{}, d.malformedf("primitive type %s has no inline value form", t)
	}
	if err := d.wireErr(); err != nil {
		return Primitive{}, err
	}
	return p, nil
}

// resolveReferences is the post-MessageEnd resolution pass: every
// reference id, and the root id, must name a node in the arena. In
// diagnostic mode all dangling references are collected; otherwise
// the first one aborts.
func (d *decoder) resolveReferences(collectAll bool) []error {
	var errs []error
	report := func(err error) bool {
		errs = append(errs, err)
		return !collectAll
	}

	if d.graph.rootID != 0 && d.graph.nodes[d.graph.rootID] == nil {
		if report(fmt.Errorf("%w: root object id %d", ErrDanglingReference, d.graph.rootID)) {
			return errs
		}
	}
	for _, id := range d.graph.NodeIDs() {
		node := d.graph.nodes[id]
		for _, member := range node.Members {
			if err := d.checkRef(node, member.Value); err != nil {
				if report(err) {
					return errs
				}
			}
		}
		for _, element := range node.Elements {
			if err := d.checkRef(node, element); err != nil {
				if report(err) {
					return errs
				}
			}
		}
	}
	return errs
}

// checkRef validates a single slot against the arena.
func (d *decoder) checkRef(holder *Node, v Value) error {
	if v.Kind == ValueRef && d.graph.nodes[v.Ref] == nil {
		return fmt.Errorf("%w: object id %d referenced by object %d",
			ErrDanglingReference, v.Ref, holder.ID)
	}
	return nil
}

// malformedf wraps ErrMalformedStream with context and the current
// stream offset.
func (d *decoder) malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s (offset %d)", ErrMalformedStream,
		fmt.Sprintf(format, args...), d.r.Offset())
}

// wireErr maps a cursor failure into the decode taxonomy: short reads
// are ErrTruncatedStream, everything else (bad varint, invalid UTF-8)
// is ErrMalformedStream.
func (d *decoder) wireErr() error {
	err := d.r.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, wire.ErrTruncated) {
		return fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedStream, err)
}
