// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package osutil

import (
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"golang.org/x/sys/unix"
)

func setPdeathsig(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.SysProcAttr.Pdeathsig = syscall.SIGKILL
}

func killPgroup(cmd *exec.Cmd) {
	unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
}

// Abort raises SIGABRT in the current process, the moral equivalent
// of abort(3). It does not return.
func Abort() {
	signal.Reset(unix.SIGABRT)
	// The runtime's own SIGABRT handler exits with status 2 unless
	// tracebacks are in crash mode, in which case it re-raises the
	// signal with the default action. The signal is directed at this
	// thread so that it is taken before the fallback below runs.
	debug.SetTraceback("crash")
	runtime.LockOSThread()
	unix.Tgkill(os.Getpid(), unix.Gettid(), unix.SIGABRT)
	// In case the signal got lost.
	os.Exit(int(unix.SIGABRT) + 128)
}
