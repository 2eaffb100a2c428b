// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package state holds the per-run assertion and outcome state of the
// harness, the test registry, and the declarations test code uses to
// terminate a run (Pass, Fail, Abandon) or record failures without
// terminating (Check, SoftFail).
//
// Pass, Fail, Abandon and Assert unwind to the top of the child run
// wrapper via a sentinel panic; no test code runs after one of them.
package state

import (
	"runtime"

	"github.com/symfuzz/symfuzz/pkg/log"
)

// run is the per-child-process run state. It is reset by Begin at the
// start of every test invocation.
var run struct {
	failed     bool
	softFailed bool
	abandoned  bool
	reason     string
}

// escape is the sentinel carried by the non-local return from
// Pass/Fail/Abandon to the run wrapper.
type escape struct {
	outcome Outcome
}

// Begin resets the run state for a new invocation of t.
func Begin(t *TestInfo) {
	run.failed = false
	run.softFailed = false
	run.abandoned = false
	run.reason = ""
	log.Logf(2, "Running: %v from %v(%v)", t.Name, t.File, t.Line)
}

// Assert requires cond to hold. If it does not, the test fails and
// immediately stops.
func Assert(cond bool) {
	if !cond {
		Fail()
	}
}

// Check requires cond to hold. If it does not, the test is marked as
// failing but nonetheless continues on.
func Check(cond bool) {
	if !cond {
		SoftFail()
	}
}

// Assume records an assumption about a symbolic value. With a symbolic
// backend attached the assumption prunes the current path; in plain
// execution an unsatisfied assumption is advisory and never alters the
// outcome.
func Assume(cond bool) {
	_, file, line, _ := runtime.Caller(1)
	AssumeHook(cond, "", file, line)
}

// AssumeHook is the externally addressable assumption hook.
// A symbolic backend intercepts it to constrain the exploration path.
//
//go:noinline
func AssumeHook(cond bool, expr, file string, line int) {
	if !cond {
		log.Logf(2, "assumption does not hold at %v:%v", file, line)
	}
}

// Pass declares the test passed and stops it.
//
//go:noinline
func Pass() {
	panic(escape{OutcomePass})
}

// Fail declares the test failed and stops it.
//
//go:noinline
func Fail() {
	run.failed = true
	panic(escape{OutcomeFail})
}

// SoftFail marks the test as failing but does not stop it.
// The run is reported as failed at termination.
//
//go:noinline
func SoftFail() {
	run.softFailed = true
}

// Abandon gives up on this run due to a harness-internal problem and
// stops the test. The reason is reported alongside the outcome.
//
//go:noinline
func Abandon(reason string) {
	run.abandoned = true
	run.reason = reason
	panic(escape{OutcomeAbandon})
}

// Crash is a hook target for external backends to mark a run as
// crashing. In plain execution it does nothing; crash classification
// is done by the parent from the wait status.
//
//go:noinline
func Crash() {
}

// AbandonReason returns the reason passed to Abandon during the
// current run, if any.
func AbandonReason() string {
	return run.reason
}

// RunTest invokes the test function of t and classifies the run.
// It installs the non-local return target for Pass/Fail/Abandon and
// converts any other panic escaping the test into a failure, the same
// way the wrapper converts an escaped exception. A normal return is an
// implicit Pass. Any soft failure recorded during the run upgrades a
// would-be pass (or abandon) to a failure at termination.
func RunTest(t *TestInfo) (outcome Outcome, reason string) {
	defer func() {
		r := recover()
		if r != nil {
			if _, ok := r.(escape); !ok {
				log.Logf(0, "uncaught panic in %v: %v", t.Name, r)
				run.failed = true
			}
		}
		outcome, reason = classify()
	}()
	t.Func()
	return
}

// classify folds the run flags into the final outcome.
// Failures (hard or soft) take precedence over abandonment: soft
// failures may have been recorded before the run was abandoned and we
// prefer to surface those.
func classify() (Outcome, string) {
	switch {
	case run.failed || run.softFailed:
		return OutcomeFail, ""
	case run.abandoned:
		return OutcomeAbandon, run.reason
	default:
		return OutcomePass, ""
	}
}
