// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package stat provides prometheus/streamz style metrics (Val type) for
// instrumenting the harness. Values are exported both through the
// default prometheus registry and through Collect for plain-text
// summaries at teardown.
package stat

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VividCortex/gohistogram"
	"github.com/prometheus/client_golang/prometheus"
)

type Val struct {
	Name string
	Desc string
	v    atomic.Int64
	prom prometheus.Counter
}

type set struct {
	mu   sync.Mutex
	vals []*Val
}

var global set

// New creates a new metric and registers it with prometheus.
// Name must be a valid prometheus identifier.
func New(name, desc string) *Val {
	v := &Val{
		Name: name,
		Desc: desc,
		prom: prometheus.NewCounter(prometheus.CounterOpts{
			Name: name,
			Help: desc,
		}),
	}
	// Duplicate registration can happen in tests that re-create stats.
	if err := prometheus.Register(v.prom); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			v.prom = are.ExistingCollector.(prometheus.Counter)
		} else {
			panic(err)
		}
	}
	global.mu.Lock()
	global.vals = append(global.vals, v)
	global.mu.Unlock()
	return v
}

func (v *Val) Add(n int) {
	v.v.Add(int64(n))
	v.prom.Add(float64(n))
}

func (v *Val) Val() int {
	return int(v.v.Load())
}

type UI struct {
	Name  string
	Desc  string
	Value int
}

// Collect returns a snapshot of all registered metrics, sorted by name.
func Collect() []UI {
	global.mu.Lock()
	defer global.mu.Unlock()
	res := make([]UI, 0, len(global.vals))
	for _, v := range global.vals {
		res = append(res, UI{v.Name, v.Desc, v.Val()})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Durations tracks a streaming distribution of time samples.
type Durations struct {
	mu   sync.Mutex
	hist *gohistogram.NumericHistogram
	n    int
}

const histogramBuckets = 64

func NewDurations() *Durations {
	return &Durations{hist: gohistogram.NewHistogram(histogramBuckets)}
}

func (d *Durations) Sample(dur time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hist.Add(float64(dur.Microseconds()))
	d.n++
}

func (d *Durations) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.n
}

// Quantile returns the approximate q-quantile of the samples, or 0 if
// nothing was sampled yet.
func (d *Durations) Quantile(q float64) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.n == 0 {
		return 0
	}
	return time.Duration(d.hist.Quantile(q)) * time.Microsecond
}
