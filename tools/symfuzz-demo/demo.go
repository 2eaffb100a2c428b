// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// symfuzz-demo is an example test binary: it registers a few test
// units against a toy fixed-point parser and hands control to the
// runner. Try:
//
//	symfuzz-demo -output_test_dir=/tmp/corpus
//	symfuzz-demo -input_test_files_dir=/tmp/corpus -input_which_test=ParseFixed_RoundTrip
package main

import (
	"github.com/symfuzz/symfuzz/pkg/runner"
	"github.com/symfuzz/symfuzz/pkg/state"
	"github.com/symfuzz/symfuzz/pkg/symbolic"
)

// parseFixed decodes a little toy format: a sign byte followed by a
// 16-bit magnitude.
func parseFixed(sign uint8, mag uint16) (int32, bool) {
	if sign > 1 {
		return 0, false
	}
	v := int32(mag)
	if sign == 1 {
		v = -v
	}
	return v, true
}

func init() {
	state.Register("ParseFixed_RoundTrip", func() {
		sign := symbolic.ByteInRange(0, 1)
		mag := symbolic.UInt16()
		v, ok := parseFixed(sign, mag)
		if sign > 1 {
			// Out-of-range draw without a backend; nothing to verify.
			return
		}
		state.Assert(ok)
		if sign == 1 {
			state.Check(v <= 0)
		} else {
			state.Check(v >= 0)
		}
	})

	state.Register("ParseFixed_RejectsBadSign", func() {
		sign := symbolic.Byte()
		state.Assume(sign > 1)
		if sign <= 1 {
			return
		}
		_, ok := parseFixed(sign, symbolic.UInt16())
		state.Assert(!ok)
	})

	state.Register("Strings_NulTerminated", func() {
		n := int(symbolic.ByteInRange(0, 32))
		if n > 32 {
			return
		}
		s := symbolic.CStr(n)
		state.Assert(len(s) == n+1)
		state.Assert(s[n] == 0)
	})
}

func main() {
	runner.Main()
}
