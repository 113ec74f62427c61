// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/nrbf/wire"
)

// stream builds test input byte by byte in record order.
type stream struct {
	w *wire.Writer
}

// newStream starts a stream with a SerializedStreamHeader declaring
// the given root object id.
func newStream(rootID int32) *stream {
	s := &stream{w: wire.NewWriter()}
	s.tag(RecordSerializedStreamHeader)
	s.w.Int32(rootID)
	s.w.Int32(-1)
	s.w.Int32(1)
	s.w.Int32(0)
	return s
}

func (s *stream) tag(t RecordType) *stream {
	s.w.Uint8(uint8(t))
	return s
}

func (s *stream) i32(v int32) *stream  { s.w.Int32(v); return s }
func (s *stream) u8(v uint8) *stream   { s.w.Uint8(v); return s }
func (s *stream) u16(v uint16) *stream { s.w.Uint16(v); return s }
func (s *stream) u64(v uint64) *stream { s.w.Uint64(v); return s }
func (s *stream) str(v string) *stream { s.w.String(v); return s }

func (s *stream) library(id int32, name string) *stream {
	return s.tag(RecordBinaryLibrary).i32(id).str(name)
}

func (s *stream) binaryString(id int32, value string) *stream {
	return s.tag(RecordBinaryObjectString).i32(id).str(value)
}

func (s *stream) memberRef(id int32) *stream {
	return s.tag(RecordMemberReference).i32(id)
}

// end appends MessageEnd and returns the finished stream bytes.
func (s *stream) end() []byte {
	s.tag(RecordMessageEnd)
	return s.w.Bytes()
}

// pointStream is the canonical two-member class fixture: a system
// class "Point" with Int32 members x=5 and y=7 as the root.
func pointStream() []byte {
	s := newStream(1)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(1).str("Point").i32(2).str("x").str("y")
	s.u8(uint8(BinaryTypePrimitive)).u8(uint8(BinaryTypePrimitive))
	s.u8(uint8(PrimitiveInt32)).u8(uint8(PrimitiveInt32))
	s.i32(5).i32(7)
	return s.end()
}

func mustDecode(t *testing.T, data []byte) *Graph {
	t.Helper()
	g, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return g
}

func wantDecodeErr(t *testing.T, data []byte, sentinel error) {
	t.Helper()
	g, err := Decode(data)
	if !errors.Is(err, sentinel) {
		t.Fatalf("Decode error = %v, want %v", err, sentinel)
	}
	if g != nil {
		t.Fatalf("Decode returned a graph alongside an error")
	}
}

func TestDecodeRootString(t *testing.T) {
	g := mustDecode(t, newStream(1).binaryString(1, "hi").end())
	root := g.Root()
	if root == nil || root.Kind != NodeString {
		t.Fatalf("root = %+v, want a string node", root)
	}
	if root.Str != "hi" {
		t.Errorf("root string = %q, want %q", root.Str, "hi")
	}
	if g.Len() != 1 {
		t.Errorf("graph has %d nodes, want 1", g.Len())
	}
}

func TestDecodeClassWithPrimitiveMembers(t *testing.T) {
	g := mustDecode(t, pointStream())
	root := g.Root()
	if root.Kind != NodeClass || root.TypeName != "Point" {
		t.Fatalf("root = %+v, want class Point", root)
	}
	if root.LibraryID != 0 {
		t.Errorf("system class has library id %d, want 0", root.LibraryID)
	}
	x, ok := root.Member("x")
	if !ok || x.Kind != ValuePrimitive || x.Primitive.Value != int32(5) {
		t.Errorf("member x = %+v, want Int32 5", x)
	}
	y, ok := root.Member("y")
	if !ok || y.Primitive.Value != int32(7) {
		t.Errorf("member y = %+v, want Int32 7", y)
	}
}

func TestDecodeSelfReference(t *testing.T) {
	s := newStream(1)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(1).str("Node").i32(1).str("self")
	s.u8(uint8(BinaryTypeObject))
	s.memberRef(1)
	g := mustDecode(t, s.end())

	root := g.Root()
	self, ok := root.Member("self")
	if !ok || self.Kind != ValueRef {
		t.Fatalf("member self = %+v, want a reference", self)
	}
	if g.Resolve(self) != root {
		t.Errorf("self reference does not resolve to the root node itself")
	}
}

func TestDecodeSharedReference(t *testing.T) {
	// An array whose two elements are the same string object: one
	// inline definition, one MemberReference.
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(2)
	s.binaryString(2, "shared")
	s.memberRef(2)
	g := mustDecode(t, s.end())

	root := g.Root()
	if root.Kind != NodeArray || root.Length() != 2 {
		t.Fatalf("root = %+v, want a 2-element array", root)
	}
	first := g.Resolve(root.Elements[0])
	second := g.Resolve(root.Elements[1])
	if first == nil || first != second {
		t.Errorf("shared elements resolve to distinct nodes (%p, %p)", first, second)
	}
	if g.Len() != 2 {
		t.Errorf("graph has %d nodes, want 2", g.Len())
	}
}

func TestDecodeForwardReference(t *testing.T) {
	// Reference precedes the definition of its target.
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(1)
	s.memberRef(2)
	s.binaryString(2, "later")
	g := mustDecode(t, s.end())
	if target := g.Resolve(g.Root().Elements[0]); target == nil || target.Str != "later" {
		t.Errorf("forward reference resolved to %+v, want string %q", target, "later")
	}
}

func TestDecodeNullRuns(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(6)
	s.tag(RecordObjectNullMultiple256).u8(3)
	s.binaryString(2, "x")
	s.tag(RecordObjectNull)
	s.tag(RecordObjectNullMultiple).i32(1)
	g := mustDecode(t, s.end())

	root := g.Root()
	wantKinds := []ValueKind{ValueNull, ValueNull, ValueNull, ValueRef, ValueNull, ValueNull}
	if root.Length() != len(wantKinds) {
		t.Fatalf("array has %d elements, want %d", root.Length(), len(wantKinds))
	}
	for i, want := range wantKinds {
		if root.Elements[i].Kind != want {
			t.Errorf("element %d kind = %d, want %d", i, root.Elements[i].Kind, want)
		}
	}
}

func TestDecodeNullRunOverrun(t *testing.T) {
	// Run of 5 nulls declared for a 2-slot array.
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(2)
	s.tag(RecordObjectNullMultiple).i32(5)
	wantDecodeErr(t, s.end(), ErrMalformedStream)
}

func TestDecodeNullRunIntoPrimitiveSlot(t *testing.T) {
	// Class with [Object, Int32] members; a 2-null run from the first
	// slot would spill into the inline-primitive slot.
	s := newStream(1)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(1).str("Bad").i32(2).str("a").str("b")
	s.u8(uint8(BinaryTypeObject)).u8(uint8(BinaryTypePrimitive))
	s.u8(uint8(PrimitiveInt32))
	s.tag(RecordObjectNullMultiple256).u8(2)
	wantDecodeErr(t, s.end(), ErrMalformedStream)
}

func TestDecodeNullRunZeroCount(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(1)
	s.tag(RecordObjectNullMultiple256).u8(0)
	wantDecodeErr(t, s.end(), ErrMalformedStream)
}

func TestDecodeClassWithID(t *testing.T) {
	// Array of two Points: full class record for the first, ClassWithId
	// reusing its metadata for the second.
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(2)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(2).str("Point").i32(2).str("x").str("y")
	s.u8(uint8(BinaryTypePrimitive)).u8(uint8(BinaryTypePrimitive))
	s.u8(uint8(PrimitiveInt32)).u8(uint8(PrimitiveInt32))
	s.i32(1).i32(2)
	s.tag(RecordClassWithID).i32(3).i32(2)
	s.i32(3).i32(4)
	g := mustDecode(t, s.end())

	second := g.Node(3)
	if second == nil || second.TypeName != "Point" {
		t.Fatalf("node 3 = %+v, want a Point instance", second)
	}
	if x, _ := second.Member("x"); x.Primitive.Value != int32(3) {
		t.Errorf("second point x = %+v, want Int32 3", x)
	}
	if y, _ := second.Member("y"); y.Primitive.Value != int32(4) {
		t.Errorf("second point y = %+v, want Int32 4", y)
	}
}

func TestDecodeClassWithIDUnknownMetadata(t *testing.T) {
	s := newStream(1)
	s.tag(RecordClassWithID).i32(1).i32(99)
	wantDecodeErr(t, s.end(), ErrUnknownClassID)
}

func TestDecodeClassWithMembersUntyped(t *testing.T) {
	// The variant without member type tags: members decode as
	// reference slots.
	s := newStream(1)
	s.library(10, "MyLib, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null")
	s.tag(RecordClassWithMembers)
	s.i32(1).str("Untyped").i32(2).str("child").str("other")
	s.i32(10)
	s.binaryString(2, "inline")
	s.tag(RecordObjectNull)
	g := mustDecode(t, s.end())

	root := g.Root()
	if root.TypeName != "Untyped" || root.LibraryID != 10 {
		t.Fatalf("root = %+v, want Untyped in library 10", root)
	}
	child, _ := root.Member("child")
	if target := g.Resolve(child); target == nil || target.Str != "inline" {
		t.Errorf("member child resolved to %+v, want string %q", target, "inline")
	}
	if other, _ := root.Member("other"); other.Kind != ValueNull {
		t.Errorf("member other = %+v, want null", other)
	}
	if name, ok := g.Library(10); !ok || name == "" {
		t.Errorf("library 10 not registered")
	}
}

func TestDecodeUnregisteredLibrary(t *testing.T) {
	s := newStream(1)
	s.tag(RecordClassWithMembersAndTypes)
	s.i32(1).str("T").i32(0)
	s.i32(42) // library id never defined
	wantDecodeErr(t, s.end(), ErrMalformedStream)
}

func TestDecodeLibraryInMemberPosition(t *testing.T) {
	// Serializers emit BinaryLibrary immediately before the first
	// record that needs it, including inside a member sequence.
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(1)
	s.library(5, "Late, Version=1.0.0.0, Culture=neutral")
	s.tag(RecordClassWithMembersAndTypes)
	s.i32(2).str("Late.Type").i32(0)
	s.i32(5)
	g := mustDecode(t, s.end())
	if target := g.Resolve(g.Root().Elements[0]); target == nil || target.TypeName != "Late.Type" {
		t.Errorf("element resolved to %+v, want Late.Type instance", target)
	}
}

func TestDecodeArraySinglePrimitive(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySinglePrimitive).i32(1).i32(3).u8(uint8(PrimitiveInt32))
	s.i32(10).i32(20).i32(30)
	g := mustDecode(t, s.end())

	root := g.Root()
	if root.ElementType.Primitive != PrimitiveInt32 || root.Length() != 3 {
		t.Fatalf("root = %+v, want Int32[3]", root)
	}
	for i, want := range []int32{10, 20, 30} {
		if got := root.Elements[i].Primitive.Value; got != want {
			t.Errorf("element %d = %v, want %d", i, got, want)
		}
	}
}

func TestDecodeArraySingleString(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleString).i32(1).i32(2)
	s.binaryString(2, "a")
	s.tag(RecordObjectNull)
	g := mustDecode(t, s.end())
	root := g.Root()
	if root.ElementType.Type != BinaryTypeString {
		t.Errorf("element type = %v, want String", root.ElementType.Type)
	}
	if target := g.Resolve(root.Elements[0]); target == nil || target.Str != "a" {
		t.Errorf("element 0 resolved to %+v", target)
	}
}

func TestDecodeRectangularBinaryArray(t *testing.T) {
	s := newStream(1)
	s.tag(RecordBinaryArray).i32(1)
	s.u8(uint8(ArrayRectangular)).i32(2)
	s.i32(2).i32(3)
	s.u8(uint8(BinaryTypePrimitive)).u8(uint8(PrimitiveInt32))
	for i := int32(0); i < 6; i++ {
		s.i32(i * 10)
	}
	g := mustDecode(t, s.end())

	root := g.Root()
	if len(root.Dimensions) != 2 || root.Dimensions[0] != 2 || root.Dimensions[1] != 3 {
		t.Fatalf("dimensions = %v, want [2 3]", root.Dimensions)
	}
	if root.Length() != 6 {
		t.Fatalf("element count = %d, want 6", root.Length())
	}
	// Row-major order.
	if got := root.Elements[4].Primitive.Value; got != int32(40) {
		t.Errorf("element [1][1] = %v, want 40", got)
	}
}

func TestDecodeJaggedBinaryArray(t *testing.T) {
	s := newStream(1)
	s.tag(RecordBinaryArray).i32(1)
	s.u8(uint8(ArrayJagged)).i32(1)
	s.i32(2)
	s.u8(uint8(BinaryTypeObjectArray))
	s.tag(RecordArraySinglePrimitive).i32(2).i32(1).u8(uint8(PrimitiveByte)).u8(0xAA)
	s.memberRef(2)
	g := mustDecode(t, s.end())

	root := g.Root()
	inner := g.Resolve(root.Elements[0])
	if inner == nil || inner.Kind != NodeArray {
		t.Fatalf("inner element = %+v, want nested array", inner)
	}
	if g.Resolve(root.Elements[1]) != inner {
		t.Errorf("second element is not the shared inner array")
	}
}

func TestDecodeOffsetBinaryArray(t *testing.T) {
	s := newStream(1)
	s.tag(RecordBinaryArray).i32(1)
	s.u8(uint8(ArraySingleOffset)).i32(1)
	s.i32(2) // extent
	s.i32(5) // lower bound
	s.u8(uint8(BinaryTypeString))
	s.binaryString(2, "p")
	s.binaryString(3, "q")
	g := mustDecode(t, s.end())
	root := g.Root()
	if len(root.LowerBounds) != 1 || root.LowerBounds[0] != 5 {
		t.Errorf("lower bounds = %v, want [5]", root.LowerBounds)
	}
}

func TestDecodeBinaryArrayRankMismatch(t *testing.T) {
	// Jagged shape with rank 2 is contradictory.
	s := newStream(1)
	s.tag(RecordBinaryArray).i32(1)
	s.u8(uint8(ArrayJagged)).i32(2)
	s.i32(1).i32(1)
	s.u8(uint8(BinaryTypeObject))
	wantDecodeErr(t, s.end(), ErrMalformedStream)
}

func TestDecodePrimitiveVariants(t *testing.T) {
	s := newStream(1)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(1).str("Mixed").i32(4).str("c").str("d").str("t").str("w")
	s.u8(uint8(BinaryTypePrimitive)).u8(uint8(BinaryTypePrimitive))
	s.u8(uint8(BinaryTypePrimitive)).u8(uint8(BinaryTypePrimitive))
	s.u8(uint8(PrimitiveChar)).u8(uint8(PrimitiveDecimal))
	s.u8(uint8(PrimitiveTimeSpan)).u8(uint8(PrimitiveDateTime))
	s.u16('A')
	s.str("123.45")
	s.u64(10000000) // one second of ticks
	s.u64(uint64(unixEpochTicks) | uint64(DateTimeUTC)<<62)
	g := mustDecode(t, s.end())

	root := g.Root()
	if c, _ := root.Member("c"); c.Primitive.Value != 'A' {
		t.Errorf("Char member = %+v, want 'A'", c)
	}
	if d, _ := root.Member("d"); d.Primitive.Value != "123.45" {
		t.Errorf("Decimal member = %+v, want %q", d, "123.45")
	}
	tv, _ := root.Member("t")
	if span, ok := tv.Primitive.Value.(TimeSpan); !ok || span.Ticks != 10000000 {
		t.Errorf("TimeSpan member = %+v, want 10000000 ticks", tv)
	}
	wv, _ := root.Member("w")
	when, ok := wv.Primitive.Value.(DateTime)
	if !ok || when.Kind != DateTimeUTC || when.Ticks != unixEpochTicks {
		t.Errorf("DateTime member = %+v, want UTC epoch", wv)
	}
}

func TestDecodeDateTimeBadKind(t *testing.T) {
	s := newStream(1)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(1).str("T").i32(1).str("w")
	s.u8(uint8(BinaryTypePrimitive)).u8(uint8(PrimitiveDateTime))
	s.u64(uint64(3) << 62)
	wantDecodeErr(t, s.end(), ErrMalformedStream)
}

func TestDecodeTruncatedPrimitive(t *testing.T) {
	s := newStream(1)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(1).str("N").i32(1).str("v")
	s.u8(uint8(BinaryTypePrimitive)).u8(uint8(PrimitiveInt32))
	s.u16(0x0505) // only 2 of the 4 value bytes
	g, err := Decode(s.w.Bytes())
	if !errors.Is(err, ErrTruncatedStream) {
		t.Fatalf("Decode error = %v, want ErrTruncatedStream", err)
	}
	if g != nil {
		t.Fatalf("Decode returned a graph alongside an error")
	}
}

func TestDecodeTruncatedMemberCount(t *testing.T) {
	// Declared member count provably exceeds the remaining input;
	// rejected before any allocation sized by it.
	s := newStream(1)
	s.tag(RecordSystemClassWithMembersAndTypes)
	s.i32(1).str("Huge").i32(1 << 20)
	wantDecodeErr(t, s.w.Bytes(), ErrTruncatedStream)
}

func TestDecodeTruncatedPrimitiveArray(t *testing.T) {
	// 1000 Int64 elements declared with almost no bytes behind them.
	s := newStream(1)
	s.tag(RecordArraySinglePrimitive).i32(1).i32(1000).u8(uint8(PrimitiveInt64))
	s.u64(1)
	wantDecodeErr(t, s.w.Bytes(), ErrTruncatedStream)
}

func TestDecodeUnknownTag(t *testing.T) {
	s := newStream(1)
	s.u8(0xFF)
	g, errs := DecodeDiagnostic(s.w.Bytes(), Limits{})
	if len(errs) == 0 || !errors.Is(errs[0], ErrMalformedStream) {
		t.Fatalf("errs = %v, want ErrMalformedStream", errs)
	}
	if g.Len() != 0 {
		t.Errorf("graph has %d nodes, want 0", g.Len())
	}
}

func TestDecodeMissingHeader(t *testing.T) {
	w := wire.NewWriter()
	w.Uint8(uint8(RecordBinaryObjectString))
	w.Int32(1)
	w.String("no header")
	wantDecodeErr(t, w.Bytes(), ErrMalformedStream)
}

func TestDecodeBadVersion(t *testing.T) {
	w := wire.NewWriter()
	w.Uint8(uint8(RecordSerializedStreamHeader))
	w.Int32(1)
	w.Int32(-1)
	w.Int32(2) // major version 2 does not exist
	w.Int32(0)
	wantDecodeErr(t, w.Bytes(), ErrMalformedStream)
}

func TestDecodeZeroRootID(t *testing.T) {
	wantDecodeErr(t, newStream(0).binaryString(1, "x").end(), ErrMalformedStream)
}

func TestDecodeMemberRecordAtTopLevel(t *testing.T) {
	s := newStream(1)
	s.tag(RecordObjectNull)
	wantDecodeErr(t, s.end(), ErrMalformedStream)
}

func TestDecodeDuplicateObjectID(t *testing.T) {
	s := newStream(1)
	s.binaryString(1, "first")
	s.binaryString(1, "second")
	wantDecodeErr(t, s.end(), ErrDuplicateObjectID)
}

func TestDecodeDanglingRoot(t *testing.T) {
	wantDecodeErr(t, newStream(99).binaryString(1, "x").end(), ErrDanglingReference)
}

func TestDecodeDanglingMemberReference(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(1)
	s.memberRef(42)
	wantDecodeErr(t, s.end(), ErrDanglingReference)
}

func TestDecodeUnsupportedRecords(t *testing.T) {
	for _, tag := range []RecordType{RecordMemberPrimitiveTyped, RecordMethodCall, RecordMethodReturn} {
		s := newStream(1)
		s.tag(tag)
		if _, err := Decode(s.w.Bytes()); !errors.Is(err, ErrUnsupportedRecord) {
			t.Errorf("%s: error = %v, want ErrUnsupportedRecord", tag, err)
		}
	}
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	data := newStream(1).binaryString(1, "x").end()
	data = append(data, 0xDE, 0xAD)
	if _, err := Decode(data); err != nil {
		t.Errorf("Decode with trailing bytes failed: %v", err)
	}
}

func TestDecodeRecordLimit(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(8)
	for i := 0; i < 8; i++ {
		s.tag(RecordObjectNull)
	}
	_, err := DecodeWithLimits(s.end(), Limits{MaxRecords: 4})
	if !errors.Is(err, ErrResourceLimit) {
		t.Errorf("error = %v, want ErrResourceLimit", err)
	}
}

func TestDecodeNodeLimit(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(2)
	s.binaryString(2, "a")
	s.binaryString(3, "b")
	_, err := DecodeWithLimits(s.end(), Limits{MaxNodes: 2})
	if !errors.Is(err, ErrResourceLimit) {
		t.Errorf("error = %v, want ErrResourceLimit", err)
	}
}

func TestDecodeArrayElementLimit(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(1000)
	_, err := DecodeWithLimits(s.w.Bytes(), Limits{MaxArrayElements: 100})
	if !errors.Is(err, ErrResourceLimit) {
		t.Errorf("error = %v, want ErrResourceLimit", err)
	}
}

func TestDecodeExtentProductOverflow(t *testing.T) {
	// Individually plausible extents whose product overflows; the
	// running check trips at the element limit long before overflow.
	s := newStream(1)
	s.tag(RecordBinaryArray).i32(1)
	s.u8(uint8(ArrayRectangular)).i32(4)
	for i := 0; i < 4; i++ {
		s.i32(1 << 30)
	}
	s.u8(uint8(BinaryTypeObject))
	_, err := Decode(s.w.Bytes())
	if !errors.Is(err, ErrResourceLimit) {
		t.Errorf("error = %v, want ErrResourceLimit", err)
	}
}

func TestDecodeDepthLimit(t *testing.T) {
	s := newStream(1)
	for id := int32(1); id <= 10; id++ {
		s.tag(RecordArraySingleObject).i32(id).i32(1)
	}
	s.tag(RecordObjectNull)
	_, err := DecodeWithLimits(s.end(), Limits{MaxDepth: 4})
	if !errors.Is(err, ErrResourceLimit) {
		t.Errorf("error = %v, want ErrResourceLimit", err)
	}
}

func TestDecodeDiagnosticCollectsAllDanglingReferences(t *testing.T) {
	s := newStream(1)
	s.tag(RecordArraySingleObject).i32(1).i32(2)
	s.memberRef(50)
	s.memberRef(51)
	g, errs := DecodeDiagnostic(s.end(), Limits{})
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	for _, err := range errs {
		if !errors.Is(err, ErrDanglingReference) {
			t.Errorf("error = %v, want ErrDanglingReference", err)
		}
	}
	// The partial graph still holds what did decode.
	if g.Root() == nil || g.Root().Length() != 2 {
		t.Errorf("partial graph root = %+v, want the 2-element array", g.Root())
	}
}

func TestDecodeDiagnosticCleanStream(t *testing.T) {
	g, errs := DecodeDiagnostic(pointStream(), Limits{})
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	if g.Root() == nil {
		t.Fatalf("no root on clean stream")
	}
}
