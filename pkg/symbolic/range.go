// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package symbolic

import "github.com/symfuzz/symfuzz/pkg/state"

// Ranged generators draw an unconstrained value and assume it lies in
// [lo, hi]. Under a symbolic backend the assumption prunes the current
// path; in plain execution an out-of-range draw is not a failure and
// the value is returned as-is, matching concrete execution semantics.
// Handling such values is the caller's responsibility.

func ByteInRange(lo, hi uint8) uint8 {
	x := Byte()
	state.Assume(lo <= x && x <= hi)
	return x
}

func Int8InRange(lo, hi int8) int8 {
	x := Int8()
	state.Assume(lo <= x && x <= hi)
	return x
}

func UInt16InRange(lo, hi uint16) uint16 {
	x := UInt16()
	state.Assume(lo <= x && x <= hi)
	return x
}

func Int16InRange(lo, hi int16) int16 {
	x := Int16()
	state.Assume(lo <= x && x <= hi)
	return x
}

func UInt32InRange(lo, hi uint32) uint32 {
	x := UInt32()
	state.Assume(lo <= x && x <= hi)
	return x
}

func Int32InRange(lo, hi int32) int32 {
	x := Int32()
	state.Assume(lo <= x && x <= hi)
	return x
}

func UInt64InRange(lo, hi uint64) uint64 {
	x := UInt64()
	state.Assume(lo <= x && x <= hi)
	return x
}

func Int64InRange(lo, hi int64) int64 {
	x := Int64()
	state.Assume(lo <= x && x <= hi)
	return x
}

func SizeInRange(lo, hi uint) uint {
	x := Size()
	state.Assume(lo <= x && x <= hi)
	return x
}
