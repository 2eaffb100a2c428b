// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package symbolic provides the typed value generators that test code
// uses to obtain symbolic values. In plain execution every generator
// draws little-endian bytes from the input substrate; under a symbolic
// backend the generators (all externally addressable and never
// inlined) are intercepted and return constrained symbolic values.
package symbolic

import (
	"encoding/binary"

	"github.com/symfuzz/symfuzz/pkg/input"
)

func draw2() uint16 {
	var b [2]byte
	for i := range b {
		b[i] = input.NextByte()
	}
	return binary.LittleEndian.Uint16(b[:])
}

func draw4() uint32 {
	var b [4]byte
	for i := range b {
		b[i] = input.NextByte()
	}
	return binary.LittleEndian.Uint32(b[:])
}

func draw8() uint64 {
	var b [8]byte
	for i := range b {
		b[i] = input.NextByte()
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Bool draws one byte and tests its low bit.
//
//go:noinline
func Bool() bool {
	return input.NextByte()&1 != 0
}

//go:noinline
func Byte() uint8 {
	return input.NextByte()
}

//go:noinline
func Int8() int8 {
	return int8(input.NextByte())
}

//go:noinline
func UInt16() uint16 {
	return draw2()
}

//go:noinline
func Int16() int16 {
	return int16(draw2())
}

//go:noinline
func UInt32() uint32 {
	return draw4()
}

//go:noinline
func Int32() int32 {
	return int32(draw4())
}

//go:noinline
func UInt64() uint64 {
	return draw8()
}

//go:noinline
func Int64() int64 {
	return int64(draw8())
}

// Size draws a size_t-shaped value.
//
//go:noinline
func Size() uint {
	return uint(draw8())
}

// IsTrue is an indirect way to take a symbolic value, introduce a
// fork, and on each side replace it with a concrete value.
//
//go:noinline
func IsTrue(expr bool) bool {
	return expr
}

// One always returns 1.
//
//go:noinline
func One() int {
	return 1
}

// Zero always returns 0.
//
//go:noinline
func Zero() int {
	return 0
}

// ZeroSink always returns 0, consuming its argument.
//
//go:noinline
func ZeroSink(int) int {
	return 0
}

// CStr returns a buffer of n drawn bytes with a forced trailing NUL.
func CStr(n int) []byte {
	s := make([]byte, n+1)
	input.SymbolizeData(s[:n])
	s[n] = 0
	return s
}

// String returns a string of n drawn bytes.
func String(n int) string {
	return string(input.Malloc(n))
}

// SymbolizeCStr re-draws the bytes of p up to (not including) its
// first NUL, the length a C strlen would see.
//
//go:noinline
func SymbolizeCStr(p []byte) {
	n := len(p)
	for i, c := range p {
		if c == 0 {
			n = i
			break
		}
	}
	input.SymbolizeData(p[:n])
}

// ConcretizeCStr returns p after a hook opportunity.
//
//go:noinline
func ConcretizeCStr(p []byte) []byte {
	return p
}
