// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrTruncated reports a read whose declared length exceeds the bytes
// remaining in the buffer. Callers classify it with errors.Is.
var ErrTruncated = fmt.Errorf("truncated stream")

// ErrBadVarint reports a length prefix whose continuation bits extend
// past the maximum of five segments.
var ErrBadVarint = fmt.Errorf("invalid length prefix")

// maxVarintSegments caps the 7-bit length prefix at five bytes, which
// covers every length the format can declare (2^35-1 raw, but .NET
// itself never emits prefixes above 2^31-1).
const maxVarintSegments = 5

// Reader is a sticky-error cursor over a byte buffer. All integers are
// little-endian. After the first failed read every method returns a
// zero value; Err reports the first failure together with the offset
// at which it occurred.
type Reader struct {
	data   []byte
	offset int
	err    error
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Offset returns the current byte position in the buffer.
func (r *Reader) Offset() int {
	return r.offset
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// fail records the first error. Subsequent failures are discarded so
// Err always reports the read that actually went wrong.
func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// take consumes n bytes and returns them as a subslice of the input
// buffer. On truncation it records ErrTruncated and returns nil.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.data)-r.offset {
		r.fail(fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.offset, len(r.data)-r.offset))
		return nil
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b
}

// Bytes consumes and returns n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	return r.take(n)
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Bool reads one byte; any nonzero value is true.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

// Int8 reads one signed byte.
func (r *Reader) Int8() int8 {
	return int8(r.Uint8())
}

// Uint16 reads a little-endian 16-bit unsigned integer.
func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Int16 reads a little-endian 16-bit signed integer.
func (r *Reader) Int16() int16 {
	return int16(r.Uint16())
}

// Uint32 reads a little-endian 32-bit unsigned integer.
func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Int32 reads a little-endian 32-bit signed integer.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Uint64 reads a little-endian 64-bit unsigned integer.
func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Int64 reads a little-endian 64-bit signed integer.
func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

// Float32 reads a little-endian IEEE 754 single.
func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

// Float64 reads a little-endian IEEE 754 double.
func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

// VarLen reads the 7-bit-segment length prefix: each byte carries
// seven value bits (low bits first) and a continuation flag in the
// high bit. At most five segments are permitted.
func (r *Reader) VarLen() int {
	var value uint64
	var shift uint
	for segment := 0; segment < maxVarintSegments; segment++ {
		b := r.Uint8()
		if r.err != nil {
			return 0
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			if value > math.MaxInt32 {
				r.fail(fmt.Errorf("%w: declared length %d at offset %d", ErrBadVarint, value, r.offset))
				return 0
			}
			return int(value)
		}
		shift += 7
	}
	r.fail(fmt.Errorf("%w: more than %d segments at offset %d", ErrBadVarint, maxVarintSegments, r.offset))
	return 0
}

// String reads a VarLen byte count followed by that many bytes of
// UTF-8. Invalid UTF-8 is surfaced as an error rather than replaced,
// since a malformed name in an adversarial stream is worth flagging.
func (r *Reader) String() string {
	length := r.VarLen()
	b := r.take(length)
	if b == nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.fail(fmt.Errorf("invalid UTF-8 in string at offset %d", r.offset-length))
		return ""
	}
	return string(b)
}
