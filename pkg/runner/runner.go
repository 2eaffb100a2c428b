// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package runner drives registered test units: it selects an execution
// mode from the configuration, isolates every run in a child process,
// classifies the child's wait status into an outcome and persists
// notable inputs to the output corpus.
package runner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/symfuzz/symfuzz/pkg/corpus"
	"github.com/symfuzz/symfuzz/pkg/input"
	"github.com/symfuzz/symfuzz/pkg/log"
	"github.com/symfuzz/symfuzz/pkg/osutil"
	"github.com/symfuzz/symfuzz/pkg/stat"
	"github.com/symfuzz/symfuzz/pkg/state"
	"github.com/symfuzz/symfuzz/pkg/tool"
)

var (
	statPassed    = stat.New("symfuzz_runs_passed", "test runs that passed")
	statFailed    = stat.New("symfuzz_runs_failed", "test runs that failed")
	statCrashed   = stat.New("symfuzz_runs_crashed", "test runs that crashed")
	statAbandoned = stat.New("symfuzz_runs_abandoned", "test runs abandoned by the harness")
	runDurations  = stat.NewDurations()
)

var shutdown <-chan struct{}

// HandleShutdown makes the driver stop scheduling new runs once c is
// closed. Runs already in flight are awaited normally.
func HandleShutdown(c <-chan struct{}) {
	shutdown = c
}

func stopRequested() bool {
	if shutdown == nil {
		return false
	}
	select {
	case <-shutdown:
		return true
	default:
		return false
	}
}

// Setup prepares the harness for a sequence of runs.
func Setup() {
	log.Logf(2, "harness setup")
}

// Teardown logs the accumulated run statistics.
func Teardown() {
	for _, ui := range stat.Collect() {
		log.Logf(1, "%v: %v", ui.Name, ui.Value)
	}
	if n := runDurations.Count(); n != 0 {
		log.Logf(1, "executed %v runs: p50 %v, p90 %v",
			n, runDurations.Quantile(0.5), runDurations.Quantile(0.9))
	}
}

// Run executes tests according to the configured mode and returns the
// number of runs that did not pass.
func Run() int {
	if cfg == nil {
		log.Fatalf("options are not initialized, call runner.Init before runner.Run")
	}
	if IsChild() {
		// Defensive: a child that reaches the driver would fork again.
		ChildMain()
	}
	Setup()
	failed := 0
	switch {
	case cfg.InputTestDir != "":
		failed = runSavedTestCases()
	case cfg.InputTestFile != "":
		failed = runSingleSavedCase()
	case cfg.InputTestFilesDir != "":
		failed = runSavedCasesDir()
	default:
		failed = runFresh()
	}
	Teardown()
	return failed
}

// forkAndRun executes t once in a freshly spawned child and decodes
// its wait status. Termination by signal is a crash; an exit code in
// the outcome range is the outcome; anything else is also a crash.
func forkAndRun(t *state.TestInfo) (state.Outcome, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to locate test binary: %w", err)
	}
	cmd := osutil.Command(exe, tool.OptionalFlags(cfg.Flags()))
	cmd.Env = append(os.Environ(), childTestEnv+"="+t.Name)
	cmd.Stdin = bytes.NewReader(input.Data())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start child: %w", err)
	}
	cmd.Wait()
	if sig, ok := osutil.ProcessSignaled(cmd.ProcessState); ok {
		log.Logf(2, "child terminated by signal %v", sig)
		return state.OutcomeCrash, nil
	}
	return state.OutcomeFromExit(osutil.ProcessExitStatus(cmd.ProcessState)), nil
}

// runOne performs the full per-run protocol: reset run state, fork,
// classify, report and persist.
func runOne(t *state.TestInfo) state.Outcome {
	state.Begin(t)
	start := time.Now()
	outcome, err := forkAndRun(t)
	runDurations.Sample(time.Since(start))
	if err != nil {
		log.Logf(0, "Abandoned: %v (%v)", t.Name, err)
		statAbandoned.Add(1)
		return state.OutcomeAbandon
	}
	reportOutcome(t, outcome)
	return outcome
}

func reportOutcome(t *state.TestInfo, outcome state.Outcome) {
	switch outcome {
	case state.OutcomePass:
		log.Logf(0, "Passed: %v", t.Name)
		statPassed.Add(1)
	case state.OutcomeFail:
		log.Logf(0, "Failed: %v", t.Name)
		statFailed.Add(1)
	case state.OutcomeCrash:
		log.Logf(0, "Crashed: %v", t.Name)
		statCrashed.Add(1)
		state.Crash()
	case state.OutcomeAbandon:
		log.Logf(0, "Abandoned: %v", t.Name)
		statAbandoned.Add(1)
	}
	if cfg.OutputTestDir != "" && outcome != state.OutcomeAbandon {
		path, err := corpus.Save(cfg.OutputTestDir, t.Name, input.Data(), outcome)
		if err != nil {
			log.Logf(0, "failed to save test case: %v", err)
			return
		}
		log.Logf(1, "Saved: %v", path)
	}
}

// runSavedCase loads one saved input and runs t against it. Load
// problems abandon the run but not the harness. In replay modes a
// non-passing run aborts the whole process if so configured.
func runSavedCase(t *state.TestInfo, path string) state.Outcome {
	outcome := state.OutcomeAbandon
	if err := corpus.LoadFile(path); err != nil {
		log.Logf(0, "Abandoned: %v (%v)", t.Name, err)
		statAbandoned.Add(1)
	} else {
		outcome = runOne(t)
	}
	if cfg.AbortOnFail && outcome != state.OutcomePass {
		osutil.Abort()
	}
	return outcome
}

// Mode 1: replay the per-test corpus of every registered test.
func runSavedTestCases() int {
	failed := 0
	for t := state.FirstTest(); t != nil && !stopRequested(); t = t.Prev() {
		failed += runSavedCasesForTest(t)
	}
	return failed
}

func runSavedCasesForTest(t *state.TestInfo) int {
	dir := corpus.TestCaseDir(cfg.InputTestDir, t)
	cases, err := corpus.ListSavedCases(dir)
	if err != nil {
		log.Logf(0, "Skipping test `%v`, no saved test cases", t.Name)
		return 0
	}
	failed := 0
	for _, name := range cases {
		if stopRequested() {
			break
		}
		if runSavedCase(t, filepath.Join(dir, name)) != state.OutcomePass {
			failed++
		}
	}
	return failed
}

// selectTest picks the test for single-file and single-directory
// replay: the first test whose name has the configured prefix, or the
// first registered test when no selector is given.
func selectTest() *state.TestInfo {
	if cfg.InputWhichTest == "" {
		log.Logf(0, "No test specified, defaulting to first test")
		return state.FirstTest()
	}
	for t := state.FirstTest(); t != nil; t = t.Prev() {
		if strings.HasPrefix(t.Name, cfg.InputWhichTest) {
			return t
		}
	}
	log.Logf(0, "Could not find matching test for %v", cfg.InputWhichTest)
	return nil
}

// Mode 2: replay one explicit file against the selected test.
func runSingleSavedCase() int {
	t := selectTest()
	if t == nil {
		return 0
	}
	if runSavedCase(t, cfg.InputTestFile) != state.OutcomePass {
		return 1
	}
	return 0
}

// Mode 3: replay every regular file of a directory against the
// selected test. There is deliberately no suffix filter here.
func runSavedCasesDir() int {
	t := selectTest()
	if t == nil {
		return 0
	}
	entries, err := osutil.ListDir(cfg.InputTestFilesDir)
	if err != nil {
		log.Logf(0, "No tests to run.")
		return 0
	}
	failed := 0
	for _, name := range entries {
		if stopRequested() {
			break
		}
		path := filepath.Join(cfg.InputTestFilesDir, name)
		if !osutil.IsRegularFile(path) {
			continue
		}
		if runSavedCase(t, path) != state.OutcomePass {
			failed++
		}
	}
	return failed
}

// Mode 4: run every registered test exactly once on a zero-initialized
// (or backend-populated) buffer. With an instrumentation binary named
// in the environment, children are launched for all tests up front and
// awaited collectively, in no particular order.
func runFresh() int {
	if os.Getenv(fuzzerEnv) != "" {
		return runExternal()
	}
	failed := 0
	for t := state.FirstTest(); t != nil && !stopRequested(); t = t.Prev() {
		input.Reset()
		if runOne(t) != state.OutcomePass {
			failed++
		}
	}
	return failed
}

func runExternal() int {
	var failed atomic.Int64
	var g errgroup.Group
	for t := state.FirstTest(); t != nil; t = t.Prev() {
		t := t
		g.Go(func() error {
			outcome, err := forkAndRun(t)
			if err != nil {
				log.Logf(0, "Abandoned: %v (%v)", t.Name, err)
				statAbandoned.Add(1)
				failed.Add(1)
				return nil
			}
			reportOutcome(t, outcome)
			if outcome != state.OutcomePass {
				failed.Add(1)
			}
			return nil
		})
	}
	g.Wait()
	return int(failed.Load())
}
