package logger

import (
	"sync"
	"sync/atomic"

	"github.com/philipp01105/sinklog/core"
)

// pipeline moves records from emit calls to the sinks
type pipeline interface {
	// submit takes ownership of rec
	submit(rec *core.Record)
	// flush returns once every record submitted before it is written and
	// every sink has been flushed
	flush() error
	// close stops accepting records after delivering the pending ones
	close()
}

func newPipeline(l *Logger, mode Mode, queueSize int) pipeline {
	if mode == Deferred {
		return newDeferredPipeline(l, queueSize)
	}
	return &immediatePipeline{l: l}
}

// immediatePipeline writes on the caller's goroutine.
type immediatePipeline struct {
	l      *Logger
	closed atomic.Bool
}

func (p *immediatePipeline) submit(rec *core.Record) {
	if p.closed.Load() {
		p.l.stats.Dropped.Add(1)
		core.PutRecord(rec)
		return
	}
	p.l.dispatch(rec)
	core.PutRecord(rec)
}

func (p *immediatePipeline) flush() error {
	return p.l.flushSinks()
}

func (p *immediatePipeline) close() {
	p.closed.Store(true)
}

// queueItem is either a record or a flush marker
type queueItem struct {
	rec     *core.Record
	flushed chan error
}

// deferredPipeline hands records to a single worker over a bounded
// channel. A full channel blocks the producer; nothing is dropped while
// the pipeline is open.
type deferredPipeline struct {
	l *Logger

	// mu is held for reading while sending on queue and for writing
	// while closing it, so no send can race with close(queue).
	mu     sync.RWMutex
	closed bool
	queue  chan queueItem
	done   chan struct{}
}

func newDeferredPipeline(l *Logger, queueSize int) *deferredPipeline {
	p := &deferredPipeline{
		l:     l,
		queue: make(chan queueItem, queueSize),
		done:  make(chan struct{}),
	}
	go p.process()
	return p
}

func (p *deferredPipeline) submit(rec *core.Record) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.l.stats.Dropped.Add(1)
		core.PutRecord(rec)
		return
	}

	item := queueItem{rec: rec}
	select {
	case p.queue <- item:
	default:
		// Queue full, wait for the worker
		p.l.stats.Blocked.Add(1)
		p.queue <- item
	}
	p.l.stats.Enqueued.Add(1)
}

func (p *deferredPipeline) flush() error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return p.l.flushSinks()
	}
	ack := make(chan error, 1)
	p.queue <- queueItem{flushed: ack}
	p.mu.RUnlock()
	return <-ack
}

// process is the worker loop. Ranging over the queue drains every item
// that was sent before close.
func (p *deferredPipeline) process() {
	defer close(p.done)

	for item := range p.queue {
		if item.rec != nil {
			p.l.dispatch(item.rec)
			core.PutRecord(item.rec)
		}
		if item.flushed != nil {
			item.flushed <- p.l.flushSinks()
		}
	}
}

func (p *deferredPipeline) close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
}
