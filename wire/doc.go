// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the primitive value layer of the NRBF byte
// stream: little-endian fixed-width integers and floats, single-byte
// enum tags, and strings prefixed with a 7-bit-segment variable-length
// byte count.
//
// The Reader is a cursor over a fully buffered input with a sticky
// error: after the first failed read every subsequent read returns a
// zero value, and Err reports the first failure. Callers read a run of
// fields and check Err once at the record boundary — in particular
// before allocating anything based on the values read. The Writer
// appends to an in-memory buffer and cannot fail.
//
// Every read validates the requested length against the remaining
// buffer before consuming bytes, so a declared length inside the
// stream can never cause a read past the end of the input.
package wire
