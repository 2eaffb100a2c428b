// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package symbolic

import "math"

// Bounded-extremum queries. With a symbolic backend attached they
// return the minimum/maximum model-satisfiable value of v under the
// current path constraints; without one they return v unchanged.
// The 32-bit variants are the hook targets, which keeps hooking
// portable; the narrower forms widen through them.

//go:noinline
func MinUInt32(v uint32) uint32 {
	return v
}

//go:noinline
func MaxUInt32(v uint32) uint32 {
	return v
}

//go:noinline
func MinInt32(v int32) int32 {
	return v
}

//go:noinline
func MaxInt32(v int32) int32 {
	return v
}

func MinUInt16(v uint16) uint16 { return uint16(MinUInt32(uint32(v))) }
func MaxUInt16(v uint16) uint16 { return uint16(MaxUInt32(uint32(v))) }
func MinByte(v uint8) uint8     { return uint8(MinUInt32(uint32(v))) }
func MaxByte(v uint8) uint8     { return uint8(MaxUInt32(uint32(v))) }
func MinInt16(v int16) int16    { return int16(MinInt32(int32(v))) }
func MaxInt16(v int16) int16    { return int16(MaxInt32(int32(v))) }
func MinInt8(v int8) int8       { return int8(MinInt32(int32(v))) }
func MaxInt8(v int8) int8       { return int8(MaxInt32(int32(v))) }

// Symbolicity predicates. In plain execution nothing is symbolic.
// IsSymbolicUInt32 is the sole hook target; the other predicates are
// implemented in terms of it so that hooking mechanisms only need to
// intercept a single 32-bit entry point.

//go:noinline
func IsSymbolicUInt32(x uint32) bool {
	return false
}

func IsSymbolicInt32(x int32) bool { return IsSymbolicUInt32(uint32(x)) }

func IsSymbolicUInt16(x uint16) bool { return IsSymbolicUInt32(uint32(x)) }

func IsSymbolicInt16(x int16) bool { return IsSymbolicUInt32(uint32(uint16(x))) }

func IsSymbolicByte(x uint8) bool { return IsSymbolicUInt32(uint32(x)) }

func IsSymbolicInt8(x int8) bool { return IsSymbolicUInt32(uint32(uint8(x))) }

func IsSymbolicUInt64(x uint64) bool {
	return IsSymbolicUInt32(uint32(x)) || IsSymbolicUInt32(uint32(x>>32))
}

func IsSymbolicInt64(x int64) bool { return IsSymbolicUInt64(uint64(x)) }

func IsSymbolicBool(x bool) bool {
	v := uint32(0)
	if x {
		v = 1
	}
	return IsSymbolicUInt32(v)
}

func IsSymbolicFloat32(x float32) bool { return IsSymbolicUInt32(math.Float32bits(x)) }

func IsSymbolicFloat64(x float64) bool { return IsSymbolicUInt64(math.Float64bits(x)) }
