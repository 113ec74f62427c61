// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

// TypeInfo is the BinaryType tag of a member or array element plus
// its additional type information. Exactly the fields implied by Type
// are meaningful: Primitive for the Primitive and PrimitiveArray
// types, ClassName for SystemClass, ClassName and LibraryID for
// Class. The remaining types carry no additional information.
type TypeInfo struct {
	Type      BinaryType
	Primitive PrimitiveType
	ClassName string
	LibraryID int32
}

// PrimitiveInfo returns the TypeInfo for an inline primitive member.
func PrimitiveInfo(t PrimitiveType) TypeInfo {
	return TypeInfo{Type: BinaryTypePrimitive, Primitive: t}
}

// ObjectInfo returns the TypeInfo for an untyped object reference
// member.
func ObjectInfo() TypeInfo {
	return TypeInfo{Type: BinaryTypeObject}
}

// StringInfo returns the TypeInfo for a string reference member.
func StringInfo() TypeInfo {
	return TypeInfo{Type: BinaryTypeString}
}

// MemberType is one entry of a type descriptor: a member name and its
// declared value category.
type MemberType struct {
	Name string
	Info TypeInfo
}

// TypeDescriptor is the cached member layout of one class, registered
// under the object id of the record that introduced it and immutable
// for the remainder of the stream. ClassWithId records reuse it by
// that id.
type TypeDescriptor struct {
	ClassName string
	LibraryID int32 // 0 for system classes
	Members   []MemberType
}
