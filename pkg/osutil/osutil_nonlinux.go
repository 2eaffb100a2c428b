// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build !linux

package osutil

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

func setPdeathsig(cmd *exec.Cmd) {
	// PDEATHSIG is linux-only; elsewhere we only put the child
	// into its own process group so that killPgroup works.
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

func killPgroup(cmd *exec.Cmd) {
	unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
}

func Abort() {
	signal.Reset(unix.SIGABRT)
	unix.Kill(os.Getpid(), unix.SIGABRT)
	os.Exit(int(unix.SIGABRT) + 128)
}
