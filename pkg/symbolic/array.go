// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package symbolic

import "github.com/symfuzz/symfuzz/pkg/input"

// Array generators allocate n elements and fill them by repeated
// single-element draws.

func ByteArray(n int) []byte {
	return input.Malloc(n)
}

func Int8Array(n int) []int8 {
	arr := make([]int8, n)
	for i := range arr {
		arr[i] = Int8()
	}
	return arr
}

func UInt16Array(n int) []uint16 {
	arr := make([]uint16, n)
	for i := range arr {
		arr[i] = UInt16()
	}
	return arr
}

func Int16Array(n int) []int16 {
	arr := make([]int16, n)
	for i := range arr {
		arr[i] = Int16()
	}
	return arr
}

func UInt32Array(n int) []uint32 {
	arr := make([]uint32, n)
	for i := range arr {
		arr[i] = UInt32()
	}
	return arr
}

func Int32Array(n int) []int32 {
	arr := make([]int32, n)
	for i := range arr {
		arr[i] = Int32()
	}
	return arr
}

func UInt64Array(n int) []uint64 {
	arr := make([]uint64, n)
	for i := range arr {
		arr[i] = UInt64()
	}
	return arr
}

func Int64Array(n int) []int64 {
	arr := make([]int64, n)
	for i := range arr {
		arr[i] = Int64()
	}
	return arr
}
