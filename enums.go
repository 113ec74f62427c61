// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "fmt"

// RecordType identifies one record in the serialization stream. These
// values are protocol constants from MS-NRBF — changing them breaks
// wire compatibility.
type RecordType uint8

const (
	RecordSerializedStreamHeader       RecordType = 0
	RecordClassWithID                  RecordType = 1
	RecordSystemClassWithMembers       RecordType = 2
	RecordClassWithMembers             RecordType = 3
	RecordSystemClassWithMembersAndTypes RecordType = 4
	RecordClassWithMembersAndTypes     RecordType = 5
	RecordBinaryObjectString           RecordType = 6
	RecordBinaryArray                  RecordType = 7
	RecordMemberPrimitiveTyped         RecordType = 8
	RecordMemberReference              RecordType = 9
	RecordObjectNull                   RecordType = 10
	RecordMessageEnd                   RecordType = 11
	RecordBinaryLibrary                RecordType = 12
	RecordObjectNullMultiple256        RecordType = 13
	RecordObjectNullMultiple           RecordType = 14
	RecordArraySinglePrimitive         RecordType = 15
	RecordArraySingleObject            RecordType = 16
	RecordArraySingleString            RecordType = 17

	// MethodCall and MethodReturn belong to the remoting message
	// layer above this codec. The tags are recognized so they can be
	// rejected as unsupported rather than unknown.
	RecordMethodCall   RecordType = 21
	RecordMethodReturn RecordType = 22
)

// String returns the MS-NRBF name of the record type.
func (t RecordType) String() string {
	switch t {
	case RecordSerializedStreamHeader:
		return "SerializedStreamHeader"
	case RecordClassWithID:
		return "ClassWithId"
	case RecordSystemClassWithMembers:
		return "SystemClassWithMembers"
	case RecordClassWithMembers:
		return "ClassWithMembers"
	case RecordSystemClassWithMembersAndTypes:
		return "SystemClassWithMembersAndTypes"
	case RecordClassWithMembersAndTypes:
		return "ClassWithMembersAndTypes"
	case RecordBinaryObjectString:
		return "BinaryObjectString"
	case RecordBinaryArray:
		return "BinaryArray"
	case RecordMemberPrimitiveTyped:
		return "MemberPrimitiveTyped"
	case RecordMemberReference:
		return "MemberReference"
	case RecordObjectNull:
		return "ObjectNull"
	case RecordMessageEnd:
		return "MessageEnd"
	case RecordBinaryLibrary:
		return "BinaryLibrary"
	case RecordObjectNullMultiple256:
		return "ObjectNullMultiple256"
	case RecordObjectNullMultiple:
		return "ObjectNullMultiple"
	case RecordArraySinglePrimitive:
		return "ArraySinglePrimitive"
	case RecordArraySingleObject:
		return "ArraySingleObject"
	case RecordArraySingleString:
		return "ArraySingleString"
	case RecordMethodCall:
		return "MethodCall"
	case RecordMethodReturn:
		return "MethodReturn"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// known reports whether the tag byte is a defined record type at all.
// Unsupported-but-defined tags (MethodCall etc.) are known.
func (t RecordType) known() bool {
	return t <= RecordArraySingleString || t == RecordMethodCall || t == RecordMethodReturn
}

// BinaryType categorizes a class member or array element value.
type BinaryType uint8

const (
	BinaryTypePrimitive      BinaryType = 0
	BinaryTypeString         BinaryType = 1
	BinaryTypeObject         BinaryType = 2
	BinaryTypeSystemClass    BinaryType = 3
	BinaryTypeClass          BinaryType = 4
	BinaryTypeObjectArray    BinaryType = 5
	BinaryTypeStringArray    BinaryType = 6
	BinaryTypePrimitiveArray BinaryType = 7
)

// String returns the MS-NRBF name of the binary type.
func (t BinaryType) String() string {
	switch t {
	case BinaryTypePrimitive:
		return "Primitive"
	case BinaryTypeString:
		return "String"
	case BinaryTypeObject:
		return "Object"
	case BinaryTypeSystemClass:
		return "SystemClass"
	case BinaryTypeClass:
		return "Class"
	case BinaryTypeObjectArray:
		return "ObjectArray"
	case BinaryTypeStringArray:
		return "StringArray"
	case BinaryTypePrimitiveArray:
		return "PrimitiveArray"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

func (t BinaryType) valid() bool {
	return t <= BinaryTypePrimitiveArray
}

// PrimitiveType identifies the wire format of an inline primitive
// value. Value 4 is unassigned in the protocol.
type PrimitiveType uint8

const (
	PrimitiveBoolean  PrimitiveType = 1
	PrimitiveByte     PrimitiveType = 2
	PrimitiveChar     PrimitiveType = 3
	PrimitiveDecimal  PrimitiveType = 5
	PrimitiveDouble   PrimitiveType = 6
	PrimitiveInt16    PrimitiveType = 7
	PrimitiveInt32    PrimitiveType = 8
	PrimitiveInt64    PrimitiveType = 9
	PrimitiveSByte    PrimitiveType = 10
	PrimitiveSingle   PrimitiveType = 11
	PrimitiveTimeSpan PrimitiveType = 12
	PrimitiveDateTime PrimitiveType = 13
	PrimitiveUInt16   PrimitiveType = 14
	PrimitiveUInt32   PrimitiveType = 15
	PrimitiveUInt64   PrimitiveType = 16
	PrimitiveNull     PrimitiveType = 17
	PrimitiveString   PrimitiveType = 18
)

// String returns the MS-NRBF name of the primitive type.
func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveByte:
		return "Byte"
	case PrimitiveChar:
		return "Char"
	case PrimitiveDecimal:
		return "Decimal"
	case PrimitiveDouble:
		return "Double"
	case PrimitiveInt16:
		return "Int16"
	case PrimitiveInt32:
		return "Int32"
	case PrimitiveInt64:
		return "Int64"
	case PrimitiveSByte:
		return "SByte"
	case PrimitiveSingle:
		return "Single"
	case PrimitiveTimeSpan:
		return "TimeSpan"
	case PrimitiveDateTime:
		return "DateTime"
	case PrimitiveUInt16:
		return "UInt16"
	case PrimitiveUInt32:
		return "UInt32"
	case PrimitiveUInt64:
		return "UInt64"
	case PrimitiveNull:
		return "Null"
	case PrimitiveString:
		return "String"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

func (t PrimitiveType) valid() bool {
	return t >= PrimitiveBoolean && t <= PrimitiveString && t != 4
}

// BinaryArrayType describes the shape of a BinaryArray record: how
// many dimensions, whether element arrays nest (jagged), and whether
// per-dimension lower bounds follow the extents.
type BinaryArrayType uint8

const (
	ArraySingle            BinaryArrayType = 0
	ArrayJagged            BinaryArrayType = 1
	ArrayRectangular       BinaryArrayType = 2
	ArraySingleOffset      BinaryArrayType = 3
	ArrayJaggedOffset      BinaryArrayType = 4
	ArrayRectangularOffset BinaryArrayType = 5
)

// String returns the MS-NRBF name of the array shape.
func (t BinaryArrayType) String() string {
	switch t {
	case ArraySingle:
		return "Single"
	case ArrayJagged:
		return "Jagged"
	case ArrayRectangular:
		return "Rectangular"
	case ArraySingleOffset:
		return "SingleOffset"
	case ArrayJaggedOffset:
		return "JaggedOffset"
	case ArrayRectangularOffset:
		return "RectangularOffset"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

func (t BinaryArrayType) valid() bool {
	return t <= ArrayRectangularOffset
}

// hasLowerBounds reports whether the record carries one lower bound
// per dimension after the extents.
func (t BinaryArrayType) hasLowerBounds() bool {
	return t >= ArraySingleOffset && t <= ArrayRectangularOffset
}
