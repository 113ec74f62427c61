// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"
)

// Writer appends primitive values to an in-memory buffer. It is the
// structural inverse of Reader. Writes cannot fail; the caller
// retrieves the encoded stream with Bytes.
type Writer struct {
	buffer []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer. The slice is owned by the
// Writer; callers that keep writing must not hold on to it.
func (w *Writer) Bytes() []byte {
	return w.buffer
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buffer)
}

// Data appends raw bytes.
func (w *Writer) Data(b []byte) {
	w.buffer = append(w.buffer, b...)
}

// Uint8 appends one byte.
func (w *Writer) Uint8(v uint8) {
	w.buffer = append(w.buffer, v)
}

// Bool appends one byte, 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

// Int8 appends one signed byte.
func (w *Writer) Int8(v int8) {
	w.Uint8(uint8(v))
}

// Uint16 appends a little-endian 16-bit unsigned integer.
func (w *Writer) Uint16(v uint16) {
	w.buffer = binary.LittleEndian.AppendUint16(w.buffer, v)
}

// Int16 appends a little-endian 16-bit signed integer.
func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

// Uint32 appends a little-endian 32-bit unsigned integer.
func (w *Writer) Uint32(v uint32) {
	w.buffer = binary.LittleEndian.AppendUint32(w.buffer, v)
}

// Int32 appends a little-endian 32-bit signed integer.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Uint64 appends a little-endian 64-bit unsigned integer.
func (w *Writer) Uint64(v uint64) {
	w.buffer = binary.LittleEndian.AppendUint64(w.buffer, v)
}

// Int64 appends a little-endian 64-bit signed integer.
func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// Float32 appends a little-endian IEEE 754 single.
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

// Float64 appends a little-endian IEEE 754 double.
func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// VarLen appends the 7-bit-segment length prefix for n. Negative
// lengths are a caller programming error and panic.
func (w *Writer) VarLen(n int) {
	if n < 0 {
		panic("wire: negative length prefix")
	}
	v := uint64(n)
	for v >= 0x80 {
		w.Uint8(byte(v) | 0x80)
		v >>= 7
	}
	w.Uint8(byte(v))
}

// String appends the VarLen byte count of s followed by its UTF-8
// bytes.
func (w *Writer) String(s string) {
	w.VarLen(len(s))
	w.buffer = append(w.buffer, s...)
}
