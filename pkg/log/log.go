// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package log provides functionality similar to standard log package with some extensions:
//   - verbosity levels
//   - global verbosity setting that can be used by multiple packages
//   - ability to cache recent output in memory
package log

import (
	"flag"
	"fmt"
	golog "log"
	"strings"
	"sync"
	"time"
)

var (
	flagV = flag.Int("vv", 0, "verbosity")

	mu          sync.Mutex
	cache       []string
	cachePos    int
	cacheMem    int
	cacheMaxMem int
	prependTime = true // for testing
)

// EnableLogCaching enables in-memory caching of log output.
// Caches up to maxLines lines, but no more than maxMem bytes.
// Cached output can later be queried with CachedLogOutput.
func EnableLogCaching(maxLines, maxMem int) {
	mu.Lock()
	defer mu.Unlock()
	if cache != nil {
		Fatalf("log caching is already enabled")
	}
	if maxLines < 1 || maxMem < 1 {
		panic("invalid maxLines/maxMem")
	}
	cache = make([]string, maxLines)
	cacheMaxMem = maxMem
}

// CachedLogOutput returns the lines cached so far, oldest first.
func CachedLogOutput() string {
	mu.Lock()
	defer mu.Unlock()
	buf := new(strings.Builder)
	for i := range cache {
		pos := (cachePos + i) % len(cache)
		if cache[pos] == "" {
			continue
		}
		buf.WriteString(cache[pos])
		buf.WriteByte('\n')
	}
	return buf.String()
}

func Logf(v int, msg string, args ...interface{}) {
	mu.Lock()
	doLog := v <= *flagV
	if cache != nil && v <= 1 {
		line := fmt.Sprintf(msg, args...)
		if prependTime {
			line = time.Now().Format("2006/01/02 15:04:05 ") + line
		}
		cacheMem += len(line) - len(cache[cachePos])
		cache[cachePos] = line
		cachePos = (cachePos + 1) % len(cache)
		for i := 0; i < len(cache)-1 && cacheMem > cacheMaxMem; i++ {
			pos := (cachePos + i) % len(cache)
			cacheMem -= len(cache[pos])
			cache[pos] = ""
		}
	}
	mu.Unlock()

	if doLog {
		golog.Printf(msg, args...)
	}
}

func Fatal(err error) {
	golog.Fatal(err)
}

func Fatalf(msg string, args ...interface{}) {
	golog.Fatalf(msg, args...)
}

// VerboseWriter is an io.Writer that forwards everything to Logf
// with the given verbosity.
type VerboseWriter int

func (w VerboseWriter) Write(data []byte) (int, error) {
	Logf(int(w), "%s", data)
	return len(data), nil
}
