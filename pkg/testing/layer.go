package testing

import (
	"sync"

	"github.com/go-drift/pipify/pkg/sample"
)

// RecordingLayer is a display layer that records every enqueued sample and
// can simulate the failed state real layers report after a pipeline error.
// All methods are safe for concurrent use.
type RecordingLayer struct {
	mu      sync.Mutex
	samples []*sample.FrameSample
	failed  bool
	flushes int
}

// NewRecordingLayer returns an empty RecordingLayer.
func NewRecordingLayer() *RecordingLayer {
	return &RecordingLayer{}
}

// Enqueue records the sample. It never fails.
func (l *RecordingLayer) Enqueue(s *sample.FrameSample) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.samples = append(l.samples, s)
	return nil
}

// Failed reports the simulated error state.
func (l *RecordingLayer) Failed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failed
}

// SetFailed puts the layer into (or out of) the simulated error state.
func (l *RecordingLayer) SetFailed(failed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed = failed
}

// Flush clears the error state. Recorded samples are kept so tests can
// still inspect them.
func (l *RecordingLayer) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flushes++
	l.failed = false
}

// Samples returns a copy of the recorded samples in enqueue order.
func (l *RecordingLayer) Samples() []*sample.FrameSample {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*sample.FrameSample, len(l.samples))
	copy(out, l.samples)
	return out
}

// Count returns the number of enqueued samples.
func (l *RecordingLayer) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.samples)
}

// Flushes returns how many times the layer was flushed.
func (l *RecordingLayer) Flushes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushes
}
