// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package runner

import (
	"flag"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/symfuzz/symfuzz/pkg/input"
	"github.com/symfuzz/symfuzz/pkg/log"
	"github.com/symfuzz/symfuzz/pkg/state"
	"github.com/symfuzz/symfuzz/pkg/tool"
)

// The child is a re-execution of the test binary itself. The parent
// names the test unit in the environment and streams the input buffer
// over stdin; the child's exit code is the run outcome.
const (
	childTestEnv = "SYMFUZZ_CHILD_TEST"
	fuzzerEnv    = "SYMFUZZ_FUZZER"
)

// IsChild reports whether this process was spawned by the runner to
// execute a single test unit.
func IsChild() bool {
	return os.Getenv(childTestEnv) != ""
}

// ChildMain executes the test unit named in the environment and exits
// with its outcome code. Test binaries must call it (via Main, or
// directly from main/TestMain) before doing anything else when IsChild
// reports true.
func ChildMain() {
	if cfg == nil {
		restoreConfig()
	}
	name := os.Getenv(childTestEnv)
	t := state.FindTest(name)
	if t == nil {
		log.Logf(0, "unknown test `%v`", name)
		os.Exit(int(state.OutcomeAbandon))
	}
	if os.Getenv(fuzzerEnv) != "" {
		// External-fuzzer mode: hand control to the instrumentation
		// binary instead of running the test directly.
		if err := BeginExternal(t); err != nil {
			log.Logf(0, "failed to start instrumentation: %v", err)
			os.Exit(int(state.OutcomeAbandon))
		}
	}
	data, err := io.ReadAll(io.LimitReader(os.Stdin, input.InputSize+1))
	if err != nil {
		log.Logf(0, "error reading input: %v", err)
		os.Exit(int(state.OutcomeAbandon))
	}
	if err := input.Load(data); err != nil {
		log.Logf(0, "%v", err)
		os.Exit(int(state.OutcomeAbandon))
	}
	state.Begin(t)
	outcome, reason := state.RunTest(t)
	if outcome == state.OutcomeAbandon {
		log.Logf(0, "%v: %v", t.Name, reason)
	}
	os.Exit(int(outcome))
}

// restoreConfig recovers the parent's options from the optional-flags
// argument the runner passed on re-execution. A binary built on Main
// parses them as part of its normal command line; this path covers
// children whose entry point (e.g. a TestMain) calls ChildMain
// directly. A child with no usable options falls back to an empty
// configuration.
func restoreConfig() {
	fs := flag.NewFlagSet("child", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := RegisterFlags(fs)
	if err := tool.ParseFlags(fs, os.Args[1:]); err != nil {
		c = nil
	}
	Init(c)
}

// BeginExternal replaces the child process with the instrumentation
// binary named by the environment, pointing it at this binary with the
// current test still selected in the environment. It only returns on
// error.
func BeginExternal(t *state.TestInfo) error {
	fuzzer := os.Getenv(fuzzerEnv)
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	env := []string{}
	for _, kv := range os.Environ() {
		// Strip the trigger so the re-executed target runs the test.
		if len(kv) > len(fuzzerEnv) && kv[:len(fuzzerEnv)+1] == fuzzerEnv+"=" {
			continue
		}
		env = append(env, kv)
	}
	return unix.Exec(fuzzer, []string{fuzzer, exe}, env)
}

// TakeOver is the entry point for handing an already-running process
// over to the harness mid-execution, rather than forking per test.
// The returned value is a sentinel for the external executor driving
// the take-over.
//
//go:noinline
func TakeOver() int {
	return 0
}
