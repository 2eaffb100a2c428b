// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package log

import (
	"strings"
	"testing"
)

func TestCaching(t *testing.T) {
	prependTime = false
	EnableLogCaching(4, 1<<10)
	Logf(0, "one: %v", 1)
	Logf(1, "two: %v", 2)
	Logf(2, "three: %v", 3) // too verbose, not cached
	out := CachedLogOutput()
	if want := "one: 1\ntwo: 2\n"; out != want {
		t.Fatalf("cached output %q, want %q", out, want)
	}
	// The cache is a ring: old entries fall out.
	for i := 0; i < 10; i++ {
		Logf(0, "line %v", i)
	}
	out = CachedLogOutput()
	if strings.Contains(out, "one: 1") {
		t.Fatalf("evicted entry still cached: %q", out)
	}
	if !strings.Contains(out, "line 9") {
		t.Fatalf("latest entry missing: %q", out)
	}
}
