// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package runner

import (
	"flag"
	"os"

	"github.com/symfuzz/symfuzz/pkg/osutil"
	"github.com/symfuzz/symfuzz/pkg/tool"
)

// Main is the whole-program entry point for test binaries: it parses
// the recognized options, dispatches to the child path when this
// process is a forked run, and otherwise drives all tests and exits
// with the number of failed runs (saturated to the exit-code range).
//
//	func main() {
//		runner.Main()
//	}
func Main() {
	flagConfig := flag.String("config", "", "configuration file")
	c := RegisterFlags(flag.CommandLine)
	if err := tool.ParseFlags(flag.CommandLine, os.Args[1:]); err != nil {
		tool.Fail(err)
	}
	if *flagConfig != "" {
		fileCfg, err := LoadConfig(*flagConfig)
		if err != nil {
			tool.Fail(err)
		}
		c = fileCfg
	}
	Init(c)
	if IsChild() {
		ChildMain()
	}
	if c.TakeOver {
		os.Exit(TakeOver())
	}
	shutdown := make(chan struct{})
	osutil.HandleInterrupts(shutdown)
	HandleShutdown(shutdown)
	os.Exit(tool.ExitCode(Run()))
}
