// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "errors"

// Decode failures. Every error returned by Decode wraps exactly one of
// these sentinels, with positional context (byte offset, object id)
// added via fmt.Errorf, so callers classify with errors.Is and log the
// wrapped message.
var (
	// ErrMalformedStream reports a structurally invalid stream: bad
	// header or version, an undefined record tag, an enum byte
	// outside its value set, a negative count, or a record appearing
	// in a position the format does not permit.
	ErrMalformedStream = errors.New("malformed stream")

	// ErrTruncatedStream reports a declared length that exceeds the
	// bytes remaining in the input.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrDanglingReference reports a member or element reference to
	// an object id that no record in the stream defines.
	ErrDanglingReference = errors.New("dangling object reference")

	// ErrDuplicateObjectID reports two id-bearing records claiming
	// the same object id.
	ErrDuplicateObjectID = errors.New("duplicate object id")

	// ErrUnknownClassID reports a ClassWithId record whose metadata
	// id has no previously registered type descriptor.
	ErrUnknownClassID = errors.New("unknown class id")

	// ErrUnsupportedRecord reports a recognized record tag whose body
	// this codec does not implement (MemberPrimitiveTyped,
	// MethodCall, MethodReturn).
	ErrUnsupportedRecord = errors.New("unsupported record type")

	// ErrResourceLimit reports that decoding exceeded one of the
	// configured Limits before the stream ended.
	ErrResourceLimit = errors.New("resource limit exceeded")
)

// Encode failures.
var (
	// ErrMissingTypeDescriptor reports a class node without the type
	// information needed to emit its class record (empty type name).
	ErrMissingTypeDescriptor = errors.New("missing type descriptor")

	// ErrIDCollision reports a caller-constructed graph assigning the
	// same object id to two nodes.
	ErrIDCollision = errors.New("object id collision")
)
