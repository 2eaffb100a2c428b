// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package tool contains helper utilities for implementation of command line tools.
package tool

import (
	"fmt"
	"os"
)

func Failf(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func Fail(err error) {
	Failf("%v", err)
}

// ExitCode converts a failed-test count into a process exit status.
// Child exit conventions are 8-bit, so the count saturates.
func ExitCode(failed int) int {
	if failed > 255 {
		return 255
	}
	return failed
}
