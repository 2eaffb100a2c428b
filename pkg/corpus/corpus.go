// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package corpus implements the saved-input protocol: discovery of
// saved test cases by filename convention, loading them into the input
// substrate, and persisting run inputs under an outcome-suffixed name.
//
// A corpus file is raw bytes, at most input.InputSize long, with no
// header or framing; it is loaded verbatim into the input buffer.
package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/symfuzz/symfuzz/pkg/hash"
	"github.com/symfuzz/symfuzz/pkg/input"
	"github.com/symfuzz/symfuzz/pkg/osutil"
	"github.com/symfuzz/symfuzz/pkg/state"
)

var extensions = []string{".pass", ".fail", ".crash"}

// IsTestCaseFile checks a filename to see if it might be a saved test
// case. The candidate suffix starts at the FIRST dot of the name, not
// the last; a name with no dot is never a saved case. Multi-dot names
// such as foo.bar.pass are accepted, foo.passx is not. This rule is
// frozen for corpus compatibility.
func IsTestCaseFile(name string) bool {
	dot := strings.IndexByte(name, '.')
	if dot == -1 {
		return false
	}
	suffix := name[dot:]
	for _, ext := range extensions {
		if strings.HasSuffix(suffix, ext) {
			return true
		}
	}
	return false
}

// Suffix returns the filename extension that encodes the outcome, or
// "" for outcomes that are never persisted.
func Suffix(out state.Outcome) string {
	switch out {
	case state.OutcomePass, state.OutcomeFail, state.OutcomeCrash:
		return "." + out.String()
	}
	return ""
}

// TestCaseDir returns the per-test corpus directory for t:
// {dir}/{source file basename}/{test name}.
func TestCaseDir(dir string, t *state.TestInfo) string {
	return filepath.Join(dir, t.File, t.Name)
}

// ListSavedCases enumerates the saved test cases in dir, in directory
// order. A missing directory is not an error to the caller beyond the
// returned one; the runner skips such tests.
func ListSavedCases(dir string) ([]string, error) {
	entries, err := osutil.ListDir(dir)
	if err != nil {
		return nil, err
	}
	var cases []string
	for _, name := range entries {
		if IsTestCaseFile(name) {
			cases = append(cases, name)
		}
	}
	return cases, nil
}

// LoadFile loads the contents of path verbatim into the input
// substrate. Oversized, unreadable or partially read files fail; the
// caller abandons the run.
func LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open file %v: %w", path, err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("unable to access input file %v: %w", path, err)
	}
	if st.Size() > input.InputSize {
		return fmt.Errorf("file %v too large: %v bytes", path, st.Size())
	}
	data := make([]byte, st.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return fmt.Errorf("error reading file %v: %w", path, err)
	}
	return input.Load(data)
}

// Save persists data as a saved case for testName under dir, creating
// the directory if needed. The filename is content-addressed and
// contains a single dot, so it stays discoverable under the first-dot
// suffix rule. Returns the path of the written file.
func Save(dir, testName string, data []byte, out state.Outcome) (string, error) {
	suffix := Suffix(out)
	if suffix == "" {
		return "", fmt.Errorf("outcome %v is not persisted", out)
	}
	if err := osutil.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("unable to create output directory %v: %w", dir, err)
	}
	name := fmt.Sprintf("%v-%v%v", testName, hash.String(data), suffix)
	path := filepath.Join(dir, name)
	if err := osutil.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("unable to save test case %v: %w", path, err)
	}
	return path, nil
}
