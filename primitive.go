// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"fmt"
	"time"
)

// Primitive is a decoded inline primitive value. Value holds the
// concrete Go representation for Type:
//
//	Boolean          bool
//	Byte             uint8
//	SByte            int8
//	Char             rune (one UTF-16 code unit)
//	Int16/32/64      int16 / int32 / int64
//	UInt16/32/64     uint16 / uint32 / uint64
//	Single           float32
//	Double           float64
//	Decimal          string (textual form, exact)
//	String           string
//	TimeSpan         TimeSpan
//	DateTime         DateTime
type Primitive struct {
	Type  PrimitiveType
	Value any
}

// String formats the primitive as "Type(value)" for diagnostics.
func (p Primitive) String() string {
	return fmt.Sprintf("%s(%v)", p.Type, p.Value)
}

// TimeSpan is a .NET System.TimeSpan: a signed count of 100 ns ticks.
// Ticks are kept raw because the full range does not fit in a
// time.Duration (which counts nanoseconds).
type TimeSpan struct {
	Ticks int64
}

// Duration converts the span to a time.Duration. Spans beyond roughly
// ±292 years saturate at the Duration range limits.
func (t TimeSpan) Duration() time.Duration {
	const maxTicks = int64(1<<63-1) / 100
	if t.Ticks > maxTicks {
		return time.Duration(1<<63 - 1)
	}
	if t.Ticks < -maxTicks {
		return time.Duration(-1 << 63)
	}
	return time.Duration(t.Ticks * 100)
}

// DateTimeKind mirrors System.DateTimeKind: whether the tick count is
// to be interpreted as UTC, local time, or has no zone information.
type DateTimeKind uint8

const (
	DateTimeUnspecified DateTimeKind = 0
	DateTimeUTC         DateTimeKind = 1
	DateTimeLocal       DateTimeKind = 2
)

// String returns the System.DateTimeKind name.
func (k DateTimeKind) String() string {
	switch k {
	case DateTimeUnspecified:
		return "Unspecified"
	case DateTimeUTC:
		return "Utc"
	case DateTimeLocal:
		return "Local"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// DateTime is a .NET System.DateTime: 100 ns ticks since 0001-01-01
// 00:00:00, plus a kind. On the wire the kind occupies the top two
// bits of the 64-bit field and the ticks the low 62.
type DateTime struct {
	Ticks int64
	Kind  DateTimeKind
}

// unixEpochTicks is the .NET tick count at 1970-01-01T00:00:00Z.
const unixEpochTicks = 621355968000000000

// Time converts the value to a time.Time. UTC and Unspecified ticks
// are placed in the UTC location (Unspecified has no zone by
// definition; UTC is the least surprising rendering). Local ticks are
// placed in time.Local.
func (d DateTime) Time() time.Time {
	sinceEpoch := d.Ticks - unixEpochTicks
	seconds := sinceEpoch / 10000000
	nanos := (sinceEpoch % 10000000) * 100
	t := time.Unix(seconds, nanos).UTC()
	if d.Kind == DateTimeLocal {
		return t.In(time.Local)
	}
	return t
}

// fixedWidth returns the inline byte width of the primitive type, or
// -1 for the length-prefixed forms (Decimal, String) and the
// unreadable Null pseudo-type.
func (t PrimitiveType) fixedWidth() int {
	switch t {
	case PrimitiveBoolean, PrimitiveByte, PrimitiveSByte:
		return 1
	case PrimitiveChar, PrimitiveInt16, PrimitiveUInt16:
		return 2
	case PrimitiveInt32, PrimitiveUInt32, PrimitiveSingle:
		return 4
	case PrimitiveInt64, PrimitiveUInt64, PrimitiveDouble,
		PrimitiveTimeSpan, PrimitiveDateTime:
		return 8
	default:
		return -1
	}
}
