// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package runner

import (
	"flag"

	"github.com/symfuzz/symfuzz/pkg/config"
	"github.com/symfuzz/symfuzz/pkg/osutil"
	"github.com/symfuzz/symfuzz/pkg/tool"
)

// Config selects the execution mode of the driver. Exactly one mode is
// chosen, in this priority: per-test corpus replay (InputTestDir), one
// explicit file (InputTestFile), one directory of files
// (InputTestFilesDir), otherwise a fresh run of every registered test.
type Config struct {
	// InputTestDir replays the per-test corpora under
	// {dir}/{source basename}/{test name}/.
	InputTestDir string `json:"input_test_dir,omitempty"`
	// InputTestFile replays one saved input against a chosen test.
	InputTestFile string `json:"input_test_file,omitempty"`
	// InputTestFilesDir replays every regular file in the directory
	// against a chosen test.
	InputTestFilesDir string `json:"input_test_files_dir,omitempty"`
	// InputWhichTest selects the test for the two modes above by name
	// prefix; first match in registry order wins.
	InputWhichTest string `json:"input_which_test,omitempty"`
	// OutputTestDir persists the input of each completed run under a
	// name suffixed with the outcome.
	OutputTestDir string `json:"output_test_dir,omitempty"`
	// TakeOver hands the running process to the harness instead of
	// forking.
	TakeOver bool `json:"take_over,omitempty"`
	// AbortOnFail aborts the harness right after the first non-passing
	// replayed run, so external drivers observe the binary crashing.
	AbortOnFail bool `json:"abort_on_fail,omitempty"`
}

var cfg *Config

// Init installs the driver configuration. It must be called before
// Run; running without initialized options is a fatal harness error.
func Init(c *Config) {
	if c == nil {
		c = new(Config)
	}
	c.InputTestDir = osutil.Abs(c.InputTestDir)
	c.InputTestFile = osutil.Abs(c.InputTestFile)
	c.InputTestFilesDir = osutil.Abs(c.InputTestFilesDir)
	c.OutputTestDir = osutil.Abs(c.OutputTestDir)
	cfg = c
}

// Flags serializes the configuration for handing to a re-exec'd
// child via tool.OptionalFlags. A forked child would inherit every
// option; re-execution has to pass them explicitly.
func (c *Config) Flags() []tool.Flag {
	var flags []tool.Flag
	str := func(name, value string) {
		if value != "" {
			flags = append(flags, tool.Flag{Name: name, Value: value})
		}
	}
	str("input_test_dir", c.InputTestDir)
	str("input_test_file", c.InputTestFile)
	str("input_test_files_dir", c.InputTestFilesDir)
	str("input_which_test", c.InputWhichTest)
	str("output_test_dir", c.OutputTestDir)
	if c.TakeOver {
		flags = append(flags, tool.Flag{Name: "take_over", Value: "true"})
	}
	if c.AbortOnFail {
		flags = append(flags, tool.Flag{Name: "abort_on_fail", Value: "true"})
	}
	return flags
}

// LoadConfig reads a Config from a JSON file.
func LoadConfig(filename string) (*Config, error) {
	c := new(Config)
	if err := config.LoadFile(filename, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RegisterFlags binds the recognized options onto fs and returns the
// Config that will be filled in by parsing.
func RegisterFlags(fs *flag.FlagSet) *Config {
	c := new(Config)
	fs.StringVar(&c.InputTestDir, "input_test_dir", "", "directory with saved test cases per test")
	fs.StringVar(&c.InputTestFile, "input_test_file", "", "saved test case to replay")
	fs.StringVar(&c.InputTestFilesDir, "input_test_files_dir", "", "directory with saved test cases for one test")
	fs.StringVar(&c.InputWhichTest, "input_which_test", "", "test to run (name prefix)")
	fs.StringVar(&c.OutputTestDir, "output_test_dir", "", "directory to save test cases by outcome")
	fs.BoolVar(&c.TakeOver, "take_over", false, "take over the running process instead of forking")
	fs.BoolVar(&c.AbortOnFail, "abort_on_fail", false, "abort on the first non-passing replayed run")
	return c
}
