// Package timeline maps an application-defined progress value onto the
// synthetic time ranges a platform transport UI expects.
//
// The platform infers the scrub-bar fill fraction from
// (now − start)/(end − start). Encoding progress as a ratio of a very large
// time window makes the visible fill match progress while keeping the
// absolute times far outside any human-perceptible range, so wall-clock
// drift during display is imperceptible.
package timeline

import (
	"math"
	"sync"
	"time"
)

const (
	// window is the synthetic scrub window on either side of now.
	window = 7 * 24 * time.Hour

	// forwardSlack is added to the range end so the platform never believes
	// playback sits at the exact end, which would disable the skip-forward
	// control.
	forwardSlack = 20 * time.Second

	// linearRangeStart and linearRangeEnd bound the fixed short range
	// returned for definite, complete, no-skip content. Combined with
	// RequiresLinearPlayback, this makes the transport UI show only
	// play/pause.
	linearRangeStart = 1 * time.Second
	linearRangeEnd   = 2 * time.Second
)

// maxForwardSpan bounds the forward window in nanoseconds so that adding
// forwardSlack still fits in a time.Duration.
const maxForwardSpan = float64(math.MaxInt64) - float64(forwardSlack)

// Mapper translates progress and skip availability into the time-range
// contract of the platform transport UI.
//
// Progress is a completion fraction in [0,1]. The default of 1 means
// "complete or indefinite"; 0 means "at the live start". Every mutation of
// progress or skip availability fires the invalidation callback so the
// platform re-queries the range.
type Mapper struct {
	mu           sync.Mutex
	progress     float64
	skipEnabled  bool
	onInvalidate func()
}

// NewMapper returns a mapper with progress 1 and skipping disabled.
func NewMapper() *Mapper {
	return &Mapper{progress: 1}
}

// OnInvalidate registers the callback fired after every progress or
// skip-availability mutation. It replaces any previous callback.
func (m *Mapper) OnInvalidate(fn func()) {
	m.mu.Lock()
	m.onInvalidate = fn
	m.mu.Unlock()
}

// Progress returns the current completion fraction.
func (m *Mapper) Progress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

// SetProgress updates the completion fraction, clamped to [0,1], and fires
// the invalidation callback exactly once.
func (m *Mapper) SetProgress(p float64) {
	if math.IsNaN(p) {
		p = 1
	}
	p = math.Max(0, math.Min(1, p))

	m.mu.Lock()
	m.progress = p
	fn := m.onInvalidate
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// SkipEnabled reports whether an application skip callback is available.
func (m *Mapper) SkipEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skipEnabled
}

// SetSkipEnabled records skip availability and fires the invalidation
// callback exactly once per assignment.
func (m *Mapper) SetSkipEnabled(enabled bool) {
	m.mu.Lock()
	m.skipEnabled = enabled
	fn := m.onInvalidate
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// RequiresLinearPlayback reports whether the transport UI should hide
// scrub and skip controls. True iff no skip callback is available.
func (m *Mapper) RequiresLinearPlayback() bool {
	return !m.SkipEnabled()
}

// CurrentTimeRange returns the valid scrub range for the transport UI.
//
// With skipping disabled and progress 1, the range is a fixed short span
// near the epoch; together with RequiresLinearPlayback this hides scrubbing
// entirely. Otherwise the range is centered on the current wall-clock time
// so that the fill fraction (now − start)/(end − start) matches progress.
func (m *Mapper) CurrentTimeRange() (start, end time.Time) {
	m.mu.Lock()
	progress := m.progress
	skipEnabled := m.skipEnabled
	m.mu.Unlock()

	if !skipEnabled && progress == 1 {
		epoch := time.Unix(0, 0)
		return epoch.Add(linearRangeStart), epoch.Add(linearRangeEnd)
	}

	now := Now()
	var backward, forward float64
	if progress == 0 {
		backward, forward = 0, 1
	} else {
		backward, forward = 1, 1/progress-1
	}
	// Tiny progress values make the forward span exceed what a Duration
	// can hold; cap it so the conversion cannot overflow and invert the
	// range.
	forwardSpan := forward * float64(window)
	if forwardSpan > maxForwardSpan {
		forwardSpan = maxForwardSpan
	}
	start = now.Add(-time.Duration(backward * float64(window)))
	end = now.Add(time.Duration(forwardSpan) + forwardSlack)
	return start, end
}
