package logger

import "sync/atomic"

// Stats tracks delivery statistics of a Logger
type Stats struct {
	// Enqueued counts records handed to the deferred queue
	Enqueued atomic.Uint64
	// Processed counts records fanned out to the sinks
	Processed atomic.Uint64
	// Blocked counts producers that had to wait for queue space
	Blocked atomic.Uint64
	// Dropped counts records emitted after the Logger was closed
	Dropped atomic.Uint64
	// SinkErrors counts failed sink writes and flushes
	SinkErrors atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Enqueued   uint64
	Processed  uint64
	Blocked    uint64
	Dropped    uint64
	SinkErrors uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Enqueued:   s.Enqueued.Load(),
		Processed:  s.Processed.Load(),
		Blocked:    s.Blocked.Load(),
		Dropped:    s.Dropped.Load(),
		SinkErrors: s.SinkErrors.Load(),
	}
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	s.Enqueued.Store(0)
	s.Processed.Store(0)
	s.Blocked.Store(0)
	s.Dropped.Store(0)
	s.SinkErrors.Store(0)
}
