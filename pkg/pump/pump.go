// Package pump schedules periodic frame capture for a display pipeline.
//
// A Pump ties the capture and sample packages together: on every tick it
// snapshots the current surface, encodes the image as a timed sample, and
// enqueues it into a DisplayLayer. Capture and encode failures skip the
// tick; the next tick tries again.
package pump

import (
	"image"
	"sync"
	"time"

	"github.com/go-drift/pipify/pkg/capture"
	"github.com/go-drift/pipify/pkg/errors"
	"github.com/go-drift/pipify/pkg/sample"
)

// DefaultMaximumUpdatesPerSecond bounds the capture rate when none is set.
const DefaultMaximumUpdatesPerSecond = 30

// DisplayLayer is the frame-consuming side of the platform's floating
// video surface. Implementations synchronize Enqueue internally; callers
// must not enqueue from two contexts at once.
type DisplayLayer interface {
	// Enqueue hands a sample to the display pipeline.
	Enqueue(*sample.FrameSample) error

	// Failed reports whether the layer is in an error state and needs a
	// flush before it accepts new samples.
	Failed() bool

	// Flush resets the layer, discarding pending samples and clearing any
	// error state.
	Flush()
}

// Pump periodically captures a surface and feeds the resulting samples into
// a display layer.
//
// Ticks are delivered on the main scheduling context when a dispatch
// function is registered via SetDispatch; otherwise they run on the pump's
// internal timer goroutine. Tick may also be called directly by an
// embedding frame loop instead of Start.
type Pump struct {
	mu      sync.Mutex
	layer   DisplayLayer
	surface capture.Surface
	encoder sample.Encoder
	rate    int
	running bool
	stopped bool // suppresses enqueues after Stop until the next Start
	done    chan struct{}

	dispatch func(func())
}

// New creates a pump that enqueues into layer.
func New(layer DisplayLayer) *Pump {
	return &Pump{
		layer: layer,
		rate:  DefaultMaximumUpdatesPerSecond,
	}
}

// SetDispatch registers the function used to marshal timer ticks onto the
// main scheduling context. Pass nil to run ticks on the timer goroutine.
func (p *Pump) SetDispatch(fn func(func())) {
	p.mu.Lock()
	p.dispatch = fn
	p.mu.Unlock()
}

// SetRate bounds the capture rate in updates per second. Non-positive
// values reset the default. A running pump is rescheduled so the timer
// interval and the durations stamped on samples stay in agreement.
func (p *Pump) SetRate(maximumUpdatesPerSecond int) {
	if maximumUpdatesPerSecond <= 0 {
		maximumUpdatesPerSecond = DefaultMaximumUpdatesPerSecond
	}

	p.mu.Lock()
	if p.rate == maximumUpdatesPerSecond {
		p.mu.Unlock()
		return
	}
	p.rate = maximumUpdatesPerSecond
	p.encoder.TickRate = maximumUpdatesPerSecond
	restart := p.running
	p.mu.Unlock()

	if restart {
		p.Stop()
		p.Start()
	}
}

// SetTargetSize fixes the encoded buffer dimensions; captured frames of a
// different size are scaled into them. Non-positive dimensions clear the
// target and buffers match the captured surface again.
func (p *Pump) SetTargetSize(width, height int) {
	p.mu.Lock()
	if width > 0 && height > 0 {
		p.encoder.TargetSize = image.Point{X: width, Y: height}
	} else {
		p.encoder.TargetSize = image.Point{}
	}
	p.mu.Unlock()
}

// Rate returns the configured capture rate in updates per second.
func (p *Pump) Rate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

// SetSurface retargets frame capture to s without restarting tick timing,
// then performs one immediate capture cycle so the display surface shows
// content before the first periodic tick. The immediate frame is a one-shot
// sample with no duration.
func (p *Pump) SetSurface(s capture.Surface) {
	p.mu.Lock()
	p.surface = s
	p.stopped = false
	p.mu.Unlock()

	p.cycle(true)
}

// Surface returns the capture target.
func (p *Pump) Surface() capture.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.surface
}

// Start begins periodic ticking at 1/rate intervals. It is a no-op if the
// pump is already running.
func (p *Pump) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopped = false
	interval := time.Second / time.Duration(p.rate)
	done := make(chan struct{})
	p.done = done
	dispatch := p.dispatch
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if dispatch != nil {
					dispatch(p.Tick)
				} else {
					p.Tick()
				}
			}
		}
	}()
}

// Stop halts periodic ticking and suppresses further enqueues. A capture
// already in flight when Stop is called is discarded, not enqueued.
func (p *Pump) Stop() {
	p.mu.Lock()
	if p.running {
		close(p.done)
		p.done = nil
		p.running = false
	}
	p.stopped = true
	p.mu.Unlock()
}

// Running reports whether the periodic timer is active.
func (p *Pump) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Tick performs one capture+encode+enqueue cycle. A cycle that fails at any
// stage is skipped silently; the surface may simply not be ready this tick.
func (p *Pump) Tick() {
	p.cycle(false)
}

func (p *Pump) cycle(oneShot bool) {
	defer errors.Recover("pump.Pump.cycle")

	p.mu.Lock()
	surface := p.surface
	layer := p.layer
	encoder := p.encoder
	stopped := p.stopped
	p.mu.Unlock()

	if stopped || layer == nil {
		return
	}

	img, err := capture.Capture(surface)
	if err != nil {
		return
	}

	var s *sample.FrameSample
	if oneShot {
		s, err = encoder.EncodeOneShot(img)
	} else {
		s, err = encoder.EncodePeriodic(img)
	}
	if err != nil {
		return
	}

	// The capture may have outlived a concurrent Stop; discard it.
	p.mu.Lock()
	stopped = p.stopped
	p.mu.Unlock()
	if stopped {
		return
	}

	if layer.Failed() {
		layer.Flush()
	}
	layer.Enqueue(s)
}
