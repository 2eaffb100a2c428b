// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package state

import (
	"path/filepath"
	"runtime"
)

// TestInfo describes one registered test unit.
type TestInfo struct {
	prev *TestInfo
	Name string // identifier of the test unit
	File string // basename of the file that registered it
	Line int
	Func func()
}

// Prev returns the test registered before this one.
func (t *TestInfo) Prev() *TestInfo {
	return t.prev
}

// lastTest is the head of the intrusive registration list.
// Each registration prepends, so iteration is last-registered first.
var lastTest *TestInfo

// Register adds a test unit to the registry. It is meant to be called
// from init functions of test binaries; the registry must not be
// mutated after the driver starts. The registration site's file and
// line are captured for corpus directory layout.
func Register(name string, fn func()) *TestInfo {
	_, file, line, _ := runtime.Caller(1)
	t := &TestInfo{
		prev: lastTest,
		Name: name,
		File: filepath.Base(file),
		Line: line,
		Func: fn,
	}
	lastTest = t
	return t
}

// FirstTest returns the first test to run.
// Iterate with Prev; order is reverse registration order.
func FirstTest() *TestInfo {
	return lastTest
}

// FindTest returns the registered test with exactly the given name,
// or nil.
func FindTest(name string) *TestInfo {
	for t := FirstTest(); t != nil; t = t.Prev() {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// ResetRegistry drops all registered tests. Only for use in tests of
// the harness itself.
func ResetRegistry() {
	lastTest = nil
}
