package app

import (
	"sync/atomic"
	"time"
)

// Monitor records per-call latency and throughput counters. All fields are
// atomics — Record runs on the hot path concurrently with Report.
type Monitor struct {
	calls     atomic.Uint64
	latencyNs atomic.Int64
	started   time.Time
}

// NewMonitor creates a monitor; calls-per-second is measured from now.
func NewMonitor() *Monitor {
	return &Monitor{started: time.Now()}
}

// Record adds one completed call.
func (m *Monitor) Record(d time.Duration) {
	m.calls.Add(1)
	m.latencyNs.Add(int64(d))
}

// Calls returns the total number of recorded calls.
func (m *Monitor) Calls() uint64 { return m.calls.Load() }

// AvgLatencyMs returns the mean call latency in milliseconds.
func (m *Monitor) AvgLatencyMs() float64 {
	calls := m.calls.Load()
	if calls == 0 {
		return 0
	}
	return float64(m.latencyNs.Load()) / float64(calls) / 1e6
}

// CallsPerSecond returns throughput since the monitor was created.
func (m *Monitor) CallsPerSecond() float64 {
	elapsed := time.Since(m.started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.calls.Load()) / elapsed
}
