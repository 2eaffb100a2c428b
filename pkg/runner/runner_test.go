// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package runner_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/symfuzz/symfuzz/pkg/corpus"
	"github.com/symfuzz/symfuzz/pkg/input"
	"github.com/symfuzz/symfuzz/pkg/log"
	"github.com/symfuzz/symfuzz/pkg/osutil"
	"github.com/symfuzz/symfuzz/pkg/runner"
	"github.com/symfuzz/symfuzz/pkg/stat"
	"github.com/symfuzz/symfuzz/pkg/state"
	"github.com/symfuzz/symfuzz/pkg/symbolic"
	"github.com/symfuzz/symfuzz/pkg/testutil"
)

// The test binary plays both roles: the parent driver (the tests
// below) and the re-exec'd child runs. Registration happens here, so
// both sides see the same registry.
func init() {
	state.Register("T1_TrivialPass", func() {
		state.Assert(true)
	})
	state.Register("T2_HardFail", func() {
		state.Assert(false)
	})
	state.Register("T3_SoftFail", func() {
		state.Check(false)
	})
	state.Register("T4_Crash", func() {
		unix.Kill(os.Getpid(), unix.SIGSEGV)
	})
	state.Register("T5_ReplaySeed", func() {
		state.Assert(symbolic.UInt32() == 0xaaaaaaaa)
	})
	state.Register("T6_CorpusCount", func() {
		if symbolic.Byte() == 0xff {
			state.Fail()
		}
	})
	state.Register("T7_Exhaust", func() {
		for i := 0; i <= input.InputSize; i++ {
			input.NextByte()
		}
	})
}

func TestMain(m *testing.M) {
	if runner.IsChild() {
		runner.ChildMain()
	}
	switch os.Getenv("SYMFUZZ_TEST_HELPER") {
	case "":
	case "abort_on_fail":
		runner.Init(&runner.Config{
			InputTestFile:  os.Getenv("SYMFUZZ_TEST_SEED"),
			InputWhichTest: "T2",
			AbortOnFail:    true,
		})
		os.Exit(runner.Run())
	case "run_without_init":
		runner.Run() // must not return
		os.Exit(0)
	default:
		os.Exit(int(state.OutcomeAbandon))
	}
	log.EnableLogCaching(4096, 4<<20)
	os.Exit(m.Run())
}

func outcomeCounts() map[string]int {
	counts := make(map[string]int)
	for _, ui := range stat.Collect() {
		counts[ui.Name] = ui.Value
	}
	return counts
}

func diffCounts(before, after map[string]int) map[string]int {
	diff := make(map[string]int)
	for name, v := range after {
		if d := v - before[name]; d != 0 {
			diff[name] = d
		}
	}
	return diff
}

// Fresh mode: every registered test runs once, in reverse registration
// order, against a zero buffer. Covers scenarios S1-S4.
func TestFreshRun(t *testing.T) {
	outDir := t.TempDir()
	runner.Init(&runner.Config{OutputTestDir: outDir})
	before := outcomeCounts()
	failed := runner.Run()
	diff := diffCounts(before, outcomeCounts())

	// Pass: T1, T6 (zero byte). Fail: T2, T3 (soft upgraded),
	// T5 (zero != 0xaaaaaaaa). Crash: T4. Abandon: T7.
	assert.Equal(t, 5, failed)
	assert.Equal(t, 2, diff["symfuzz_runs_passed"])
	assert.Equal(t, 3, diff["symfuzz_runs_failed"])
	assert.Equal(t, 1, diff["symfuzz_runs_crashed"])
	assert.Equal(t, 1, diff["symfuzz_runs_abandoned"])

	cached := log.CachedLogOutput()
	assert.Contains(t, cached, "Passed: T1_TrivialPass")
	assert.Contains(t, cached, "Failed: T2_HardFail")
	assert.Contains(t, cached, "Failed: T3_SoftFail")
	assert.Contains(t, cached, "Crashed: T4_Crash")
	assert.Contains(t, cached, "Abandoned: T7_Exhaust")

	// Reverse registration order: T7 runs before T1.
	require.Less(t,
		strings.Index(cached, "Abandoned: T7_Exhaust"),
		strings.Index(cached, "Passed: T1_TrivialPass"))

	// Saved by outcome; nothing is persisted for the abandoned run.
	for glob, want := range map[string]int{
		"T1_TrivialPass-*.pass": 1,
		"T2_HardFail-*.fail":    1,
		"T3_SoftFail-*.fail":    1,
		"T4_Crash-*.crash":      1,
		"T7_Exhaust-*":          0,
	} {
		matches, err := filepath.Glob(filepath.Join(outDir, glob))
		require.NoError(t, err)
		assert.Len(t, matches, want, glob)
	}

	// S2: the .fail file holds the run's buffer contents (all zero in
	// fresh mode).
	matches, _ := filepath.Glob(filepath.Join(outDir, "T2_HardFail-*.fail"))
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	require.Len(t, data, input.InputSize)
	assert.Equal(t, data, bytes.Repeat([]byte{0}, input.InputSize))
}

// S5: replaying an explicit seed file against a prefix-selected test.
func TestSingleFileReplay(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.bin")
	require.NoError(t, os.WriteFile(seed, bytes.Repeat([]byte{0xaa}, 256), 0644))
	runner.Init(&runner.Config{
		InputTestFile:  seed,
		InputWhichTest: "T5",
	})
	failed := runner.Run()
	assert.Equal(t, 0, failed)
	assert.Contains(t, log.CachedLogOutput(), "Passed: T5_ReplaySeed")
}

func TestSingleFileReplayDefaultsToFirstTest(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.bin")
	require.NoError(t, os.WriteFile(seed, []byte{0}, 0644))
	runner.Init(&runner.Config{InputTestFile: seed})
	// The first test is the last registered one, which exhausts the
	// buffer and abandons.
	failed := runner.Run()
	assert.Equal(t, 1, failed)
	assert.Contains(t, log.CachedLogOutput(), "No test specified, defaulting to first test")
}

func TestSingleFileReplayUnknownSelector(t *testing.T) {
	runner.Init(&runner.Config{
		InputTestFile:  "/nonexistent",
		InputWhichTest: "NoSuchTest",
	})
	failed := runner.Run()
	assert.Equal(t, 0, failed)
	assert.Contains(t, log.CachedLogOutput(), "Could not find matching test for NoSuchTest")
}

// S6: per-test corpus discovery honors the suffix rule and skips tests
// without saved cases.
func TestPerTestCorpus(t *testing.T) {
	dir := t.TempDir()
	t6 := state.FindTest("T6_CorpusCount")
	require.NotNil(t, t6)
	caseDir := corpus.TestCaseDir(dir, t6)
	require.NoError(t, osutil.MkdirAll(caseDir))
	require.NoError(t, os.WriteFile(filepath.Join(caseDir, "a.pass"), []byte{0x00}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(caseDir, "b.fail"), []byte{0xff}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(caseDir, "c.txt"), []byte{0xff}, 0644))

	runner.Init(&runner.Config{InputTestDir: dir})
	before := outcomeCounts()
	failed := runner.Run()
	diff := diffCounts(before, outcomeCounts())

	// Exactly two runs of T6: c.txt is ignored, all other tests have
	// no saved cases and are skipped.
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, diff["symfuzz_runs_passed"])
	assert.Equal(t, 1, diff["symfuzz_runs_failed"])
	assert.Equal(t, 0, diff["symfuzz_runs_crashed"])
	assert.Contains(t, log.CachedLogOutput(), "Skipping test `T1_TrivialPass`, no saved test cases")
}

// Mode 3 replays arbitrary regular files, with no suffix filter.
func TestDirReplay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one"), []byte{0x00}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.bin"), []byte{0xff}, 0644))
	require.NoError(t, osutil.MkdirAll(filepath.Join(dir, "subdir")))

	runner.Init(&runner.Config{
		InputTestFilesDir: dir,
		InputWhichTest:    "T6",
	})
	before := outcomeCounts()
	failed := runner.Run()
	diff := diffCounts(before, outcomeCounts())

	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, diff["symfuzz_runs_passed"])
	assert.Equal(t, 1, diff["symfuzz_runs_failed"])
}

// Outcome idempotence: replaying a saved input reproduces the outcome
// its suffix encodes.
func TestReplayIdempotence(t *testing.T) {
	outDir := t.TempDir()
	runner.Init(&runner.Config{OutputTestDir: outDir})
	runner.Run()

	replay := func(which, glob string) int {
		matches, err := filepath.Glob(filepath.Join(outDir, glob))
		require.NoError(t, err)
		require.Len(t, matches, 1, glob)
		runner.Init(&runner.Config{
			InputTestFile:  matches[0],
			InputWhichTest: which,
		})
		return runner.Run()
	}
	assert.Equal(t, 0, replay("T1_TrivialPass", "T1_TrivialPass-*.pass"))
	assert.Equal(t, 1, replay("T2_HardFail", "T2_HardFail-*.fail"))
	assert.Equal(t, 1, replay("T4_Crash", "T4_Crash-*.crash"))
}

// An oversized saved case abandons that run only; the harness carries on.
func TestOversizedInputAbandons(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "big.bin")
	require.NoError(t, os.WriteFile(seed, make([]byte, input.InputSize+1), 0644))
	runner.Init(&runner.Config{
		InputTestFile:  seed,
		InputWhichTest: "T1",
	})
	before := outcomeCounts()
	failed := runner.Run()
	diff := diffCounts(before, outcomeCounts())
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, diff["symfuzz_runs_abandoned"])
}

// abort_on_fail must tear down the whole harness with SIGABRT on the
// first non-passing replayed run, so we observe it from outside.
func TestAbortOnFail(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.bin")
	require.NoError(t, os.WriteFile(seed, []byte{0}, 0644))
	exe, err := os.Executable()
	require.NoError(t, err)
	cmd := osutil.Command(exe)
	cmd.Env = append(os.Environ(),
		"SYMFUZZ_TEST_HELPER=abort_on_fail",
		"SYMFUZZ_TEST_SEED="+seed,
	)
	cmd.Stdout = &testutil.Writer{TB: t}
	cmd.Stderr = &testutil.Writer{TB: t}
	require.NoError(t, cmd.Start())
	cmd.Wait()
	sig, signaled := osutil.ProcessSignaled(cmd.ProcessState)
	require.True(t, signaled, "harness did not die of a signal")
	assert.Equal(t, unix.SIGABRT, sig)
}

// Running without initialized options is a fatal misconfiguration.
func TestRunWithoutInitIsFatal(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	cmd := osutil.Command(exe)
	cmd.Env = append(os.Environ(), "SYMFUZZ_TEST_HELPER=run_without_init")
	cmd.Stdout = &testutil.Writer{TB: t}
	cmd.Stderr = &testutil.Writer{TB: t}
	require.NoError(t, cmd.Start())
	cmd.Wait()
	if _, signaled := osutil.ProcessSignaled(cmd.ProcessState); signaled {
		t.Fatalf("expected a plain fatal exit, got a signal")
	}
	assert.Equal(t, 1, osutil.ProcessExitStatus(cmd.ProcessState))
}
