// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package input owns the symbolic input substrate: a bounded,
// process-wide byte buffer consumed monotonically by the typed value
// generators. The buffer and its cursor are exported package-level
// variables so that their addresses are stable for the lifetime of the
// process; an external symbolic backend locates and populates them by
// address.
package input

import (
	"errors"

	"github.com/symfuzz/symfuzz/pkg/state"
)

// InputSize is the capacity of the symbolic input buffer.
const InputSize = 8192

var (
	// Input contains the symbolic data used to supply requests for
	// symbolic values. Shared with the symbolic backend by address.
	Input [InputSize]byte

	// InputIndex tracks how many input bytes have been consumed.
	// Invariant: InputIndex <= InputSize.
	InputIndex uint32
)

// ErrTooLarge is returned by Load for data that does not fit the
// buffer. Callers treat it as a per-run abandon.
var ErrTooLarge = errors.New("input data exceeds buffer size")

// Reset zeroes the buffer and rewinds the cursor.
func Reset() {
	Input = [InputSize]byte{}
	InputIndex = 0
}

// Load resets the substrate and fills it with data. Short data leaves
// a deterministic zero tail; oversized data fails with ErrTooLarge and
// leaves the substrate reset.
func Load(data []byte) error {
	Reset()
	if len(data) > InputSize {
		return ErrTooLarge
	}
	copy(Input[:], data)
	return nil
}

// NextByte returns the byte at the cursor and advances it.
// Drawing past the end of the buffer abandons the run.
//
//go:noinline
func NextByte() byte {
	if InputIndex >= InputSize {
		state.Abandon("input exhausted")
	}
	b := Input[InputIndex]
	InputIndex++
	return b
}

// Consumed returns the number of bytes drawn so far.
func Consumed() int {
	return int(InputIndex)
}

// Remaining returns the number of bytes still available.
func Remaining() int {
	return InputSize - int(InputIndex)
}

// Data returns a copy of the whole buffer, e.g. for persisting the
// input of a completed run.
func Data() []byte {
	data := make([]byte, InputSize)
	copy(data, Input[:])
	return data
}

// SymbolizeData fills data with drawn bytes. It is a hook target: a
// symbolic backend intercepts it to mark the region as symbolic
// instead.
//
//go:noinline
func SymbolizeData(data []byte) {
	for i := range data {
		data[i] = NextByte()
	}
}

// ConcretizeData returns data after a hook opportunity; without a
// backend it is the identity.
//
//go:noinline
func ConcretizeData(data []byte) []byte {
	return data
}

// Malloc allocates and returns n symbolic bytes.
func Malloc(n int) []byte {
	data := make([]byte, n)
	SymbolizeData(data)
	return data
}
