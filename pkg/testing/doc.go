// Package testing provides test doubles for the pipify bridge.
//
// Import it with an alias to avoid clashing with the standard library:
//
//	import piptest "github.com/go-drift/pipify/pkg/testing"
//
// FakeClock drives the timeline deterministically:
//
//	clk := piptest.NewFakeClock()
//	prev := timeline.SetClock(clk)
//	defer timeline.SetClock(prev)
//	clk.Advance(time.Minute)
//
// RecordingLayer stands in for a platform display layer and records every
// enqueued sample.
package testing
