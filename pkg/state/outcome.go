// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package state

import "fmt"

// Outcome is the result of a single isolated test run.
// It doubles as the exit code of the child process.
type Outcome int

const (
	OutcomePass    Outcome = 0
	OutcomeFail    Outcome = 1
	OutcomeCrash   Outcome = 2
	OutcomeAbandon Outcome = 3
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeFail:
		return "fail"
	case OutcomeCrash:
		return "crash"
	case OutcomeAbandon:
		return "abandon"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// OutcomeFromExit maps a child exit status onto an Outcome.
// Statuses outside the defined range mean the child died in some
// unexpected way and are classified as a crash.
func OutcomeFromExit(code int) Outcome {
	if code >= int(OutcomePass) && code <= int(OutcomeAbandon) {
		return Outcome(code)
	}
	return OutcomeCrash
}
