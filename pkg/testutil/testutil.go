// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package testutil

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

func IterCount() int {
	iters := 1000
	if testing.Short() {
		iters /= 10
	}
	return iters
}

// RandSource returns a rand source seeded from the current time.
// The seed can be fixed with the SYMFUZZ_SEED env var, and is always
// logged so that failures are reproducible.
func RandSource(t *testing.T) rand.Source {
	seed := time.Now().UnixNano()
	if fixed := os.Getenv("SYMFUZZ_SEED"); fixed != "" {
		seed, _ = strconv.ParseInt(fixed, 0, 64)
	}
	if os.Getenv("CI") != "" {
		seed = 0 // required for deterministic coverage reports
	}
	t.Logf("seed=%v", seed)
	return rand.NewSource(seed)
}

// RandBytes returns a random byte slice of length up to maxLen.
func RandBytes(r *rand.Rand, maxLen int) []byte {
	data := make([]byte, r.Intn(maxLen+1))
	r.Read(data)
	return data
}

type Writer struct {
	testing.TB
}

func (w *Writer) Write(data []byte) (int, error) {
	w.TB.Logf("%s", data)
	return len(data), nil
}
