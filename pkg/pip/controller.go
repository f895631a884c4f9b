package pip

import (
	"sync"
	"time"

	"github.com/go-drift/pipify/pkg/capture"
	"github.com/go-drift/pipify/pkg/errors"
	"github.com/go-drift/pipify/pkg/pump"
	"github.com/go-drift/pipify/pkg/rendering"
	"github.com/go-drift/pipify/pkg/timeline"
)

// Phase is the lifecycle phase of the floating-surface session.
type Phase int

const (
	// PhaseIdle indicates no activation is in progress or active.
	PhaseIdle Phase = iota

	// PhaseStarting indicates activation has been requested.
	PhaseStarting

	// PhaseWaitingForCapability indicates activation is deferred until the
	// platform reports that it is possible (e.g. the app is foregrounded).
	PhaseWaitingForCapability

	// PhaseActive indicates the floating surface is visible.
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "Starting"
	case PhaseWaitingForCapability:
		return "WaitingForCapability"
	case PhaseActive:
		return "Active"
	default:
		return "Idle"
	}
}

// State is the observable render state of the controller.
type State struct {
	// RenderSize is the floating window size reported by the platform.
	RenderSize rendering.Size

	// Playing reports whether the transport UI shows the playing state.
	Playing bool

	// Enabled reports whether the application wants the floating surface
	// shown. Cleared by the platform on stop, failure, and restore.
	Enabled bool

	// PlayPauseEnabled reports whether platform-driven play/pause is
	// honored.
	PlayPauseEnabled bool
}

// StateListener observes controller state changes.
type StateListener func(State)

// Controller owns one floating-surface session: start, stop, waiting for
// the activation capability, and the playback delegate callbacks.
//
// The controller is anchored to the main scheduling context: state
// mutations (progress, skip callback, play state, enabled) must happen
// there. Platform delegate callbacks arrive on the main context too, except
// skip requests, which may arrive asynchronously and are marshaled back
// through Dispatch.
type Controller struct {
	session Session
	audio   AudioSession
	pump    *pump.Pump
	mapper  *timeline.Mapper

	mu         sync.Mutex
	phase      Phase
	state      State
	onSkip     func(seconds float64)
	cancelWait func()

	listeners      map[int]StateListener
	nextListenerID int
}

// NewController creates a controller bound to one floating-surface session.
// The session's display layer and playback delegate are wired immediately;
// the session is torn down implicitly when the controller is released.
// audio may be nil when no audio-session prerequisite exists.
func NewController(session Session, audio AudioSession) *Controller {
	c := &Controller{
		session:   session,
		audio:     audio,
		mapper:    timeline.NewMapper(),
		listeners: make(map[int]StateListener),
	}
	c.state.PlayPauseEnabled = true

	if session != nil {
		c.pump = pump.New(session.Layer())
		c.pump.SetDispatch(Dispatch)
		c.mapper.OnInvalidate(session.InvalidatePlaybackState)
		session.SetListener(c)
	} else {
		c.pump = pump.New(nil)
	}
	return c
}

// Pump returns the frame pump feeding the session's display layer.
// Embedding frame loops may drive it directly via Tick instead of relying
// on the internal timer.
func (c *Controller) Pump() *pump.Pump {
	return c.pump
}

// IsSupported reports whether the platform can show a floating surface.
func (c *Controller) IsSupported() bool {
	return c.session != nil && c.session.Supported()
}

// State returns a snapshot of the observable state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// AddStateListener registers a listener called after every state change.
// Returns a function that removes the listener.
func (c *Controller) AddStateListener(l StateListener) func() {
	c.mu.Lock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// notify delivers a state snapshot to all listeners.
func (c *Controller) notify(st State) {
	c.mu.Lock()
	ls := make([]StateListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.mu.Unlock()

	for _, l := range ls {
		l(st)
	}
}

// SetView retargets frame production to surface, bounded at
// maximumUpdatesPerSecond (non-positive selects the default of 30). One
// frame is captured and enqueued immediately so the floating surface shows
// content before the first periodic tick.
func (c *Controller) SetView(surface capture.Surface, maximumUpdatesPerSecond int) {
	c.pump.SetRate(maximumUpdatesPerSecond)
	c.pump.SetSurface(surface)
}

// Enabled reports whether the application wants the floating surface shown.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Enabled
}

// SetEnabled toggles the floating surface: enabling starts the session,
// disabling stops it. Setting the current value is a no-op.
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	if c.state.Enabled == enabled {
		c.mu.Unlock()
		return
	}
	c.state.Enabled = enabled
	st := c.state
	c.mu.Unlock()

	c.notify(st)
	if enabled {
		c.Start()
	} else {
		c.Stop()
	}
}

// IsPlaying reports the transport play state.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Playing
}

// SetPlaying updates the transport play state from the application side and
// invalidates the platform's cached playback state so the control refreshes.
func (c *Controller) SetPlaying(playing bool) {
	c.mu.Lock()
	if c.state.Playing == playing {
		c.mu.Unlock()
		return
	}
	c.state.Playing = playing
	st := c.state
	c.mu.Unlock()

	c.notify(st)
	if c.session != nil {
		c.session.InvalidatePlaybackState()
	}
}

// RenderSize returns the floating window size last reported by the platform.
func (c *Controller) RenderSize() rendering.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.RenderSize
}

// PlayPauseEnabled reports whether platform-driven play/pause is honored.
func (c *Controller) PlayPauseEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.PlayPauseEnabled
}

// SetPlayPauseEnabled controls whether platform play/pause toggles are
// honored, and invalidates the platform's cached playback state so the
// transport UI refreshes.
func (c *Controller) SetPlayPauseEnabled(enabled bool) {
	c.mu.Lock()
	if c.state.PlayPauseEnabled == enabled {
		c.mu.Unlock()
		return
	}
	c.state.PlayPauseEnabled = enabled
	st := c.state
	c.mu.Unlock()

	c.notify(st)
	if c.session != nil {
		c.session.InvalidatePlaybackState()
	}
}

// Progress returns the application-defined completion fraction.
func (c *Controller) Progress() float64 {
	return c.mapper.Progress()
}

// SetProgress updates the completion fraction in [0,1]. 1 means "complete
// or indefinite", 0 means "live start". Each call invalidates the
// platform's cached playback state.
func (c *Controller) SetProgress(p float64) {
	c.mapper.SetProgress(p)
}

// OnSkip returns the application skip callback, if any.
func (c *Controller) OnSkip() func(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onSkip
}

// SetOnSkip installs the application skip callback. A nil callback disables
// the platform skip controls; each assignment updates the linear-playback
// flag and invalidates the platform's cached playback state.
func (c *Controller) SetOnSkip(fn func(seconds float64)) {
	c.mu.Lock()
	c.onSkip = fn
	c.mu.Unlock()
	c.mapper.SetSkipEnabled(fn != nil)
}

// RequiresLinearPlayback reports whether the transport UI should show only
// play/pause. Session implementations surface this to the platform.
func (c *Controller) RequiresLinearPlayback() bool {
	return c.mapper.RequiresLinearPlayback()
}

// Start activates the floating surface. When activation is not currently
// possible, the controller waits for the capability to become true and
// activates then. Calling Start while starting or active is a reported
// no-op.
func (c *Controller) Start() {
	if c.session == nil {
		errors.Report(&errors.PipError{
			Op:   "pip.Controller.Start",
			Kind: errors.KindLifecycle,
			Err:  ErrNoSession,
		})
		return
	}

	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		errors.Report(&errors.PipError{
			Op:   "pip.Controller.Start",
			Kind: errors.KindLifecycle,
			Err:  ErrAlreadyActive,
		})
		return
	}
	c.phase = PhaseStarting
	c.mu.Unlock()

	c.activateAudio()
	c.session.InvalidatePlaybackState()

	if c.session.Possible() {
		c.requestActivation()
		return
	}

	c.mu.Lock()
	c.phase = PhaseWaitingForCapability
	c.mu.Unlock()

	cancel := c.session.SubscribePossible(func(possible bool) {
		if possible {
			c.capabilityBecamePossible()
		}
	})

	// The subscription may have fired synchronously; only retain the cancel
	// function while still waiting.
	c.mu.Lock()
	if c.phase == PhaseWaitingForCapability {
		c.cancelWait = cancel
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	cancel()
}

// capabilityBecamePossible handles the one-shot capability notification:
// the subscription is cancelled and activation is requested exactly once.
func (c *Controller) capabilityBecamePossible() {
	c.mu.Lock()
	if c.phase != PhaseWaitingForCapability {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseStarting
	cancel := c.cancelWait
	c.cancelWait = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.requestActivation()
}

func (c *Controller) requestActivation() {
	if err := c.session.RequestActivation(); err != nil {
		c.OnFailure(err)
	}
}

// Stop deactivates the floating surface and releases the audio-session
// prerequisite. Calling Stop on an idle controller is a reported no-op.
func (c *Controller) Stop() {
	if c.session == nil {
		errors.Report(&errors.PipError{
			Op:   "pip.Controller.Stop",
			Kind: errors.KindLifecycle,
			Err:  ErrNoSession,
		})
		return
	}

	c.mu.Lock()
	if c.phase == PhaseIdle {
		c.mu.Unlock()
		errors.Report(&errors.PipError{
			Op:   "pip.Controller.Stop",
			Kind: errors.KindLifecycle,
			Err:  ErrNotActive,
		})
		return
	}
	c.phase = PhaseIdle
	cancel := c.cancelWait
	c.cancelWait = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.pump.Stop()

	if err := c.session.RequestDeactivation(); err != nil {
		errors.Report(&errors.PipError{
			Op:   "pip.Controller.Stop",
			Kind: errors.KindPlatform,
			Err:  err,
		})
	}
	c.deactivateAudio()
}

func (c *Controller) activateAudio() {
	if c.audio == nil {
		return
	}
	if err := c.audio.Activate(); err != nil {
		errors.Report(&errors.PipError{
			Op:   "pip.Controller.activateAudio",
			Kind: errors.KindPlatform,
			Err:  err,
		})
	}
}

func (c *Controller) deactivateAudio() {
	if c.audio == nil {
		return
	}
	if err := c.audio.Deactivate(); err != nil {
		errors.Report(&errors.PipError{
			Op:   "pip.Controller.deactivateAudio",
			Kind: errors.KindPlatform,
			Err:  err,
		})
	}
}

// clearEnabled resets the enabled flag without driving session control.
// Used by delegate callbacks where the platform already tore the surface
// down.
func (c *Controller) clearEnabled() {
	c.mu.Lock()
	if !c.state.Enabled {
		c.mu.Unlock()
		return
	}
	c.state.Enabled = false
	st := c.state
	c.mu.Unlock()
	c.notify(st)
}

// OnStart implements EventListener. The floating surface is visible; frame
// production begins.
func (c *Controller) OnStart() {
	c.mu.Lock()
	c.phase = PhaseActive
	c.mu.Unlock()
	c.pump.Start()
}

// OnStop implements EventListener. The surface was dismissed by the
// platform; frame production halts and enabled is cleared.
func (c *Controller) OnStop() {
	c.pump.Stop()
	c.mu.Lock()
	c.phase = PhaseIdle
	c.mu.Unlock()
	c.clearEnabled()
}

// OnFailure implements EventListener. Activation failed; the error is
// reported and enabled is cleared. The application may retry Start.
func (c *Controller) OnFailure(err error) {
	errors.Report(&errors.PipError{
		Op:   "pip.Controller.OnFailure",
		Kind: errors.KindPlatform,
		Err:  err,
	})
	c.pump.Stop()
	c.mu.Lock()
	c.phase = PhaseIdle
	c.mu.Unlock()
	c.clearEnabled()
}

// OnSizeChange implements EventListener. Frame encoding retargets to the
// new window size so samples match what the platform displays.
func (c *Controller) OnSizeChange(size rendering.Size) {
	c.mu.Lock()
	if c.state.RenderSize.Equals(size) {
		c.mu.Unlock()
		return
	}
	c.state.RenderSize = size
	st := c.state
	c.mu.Unlock()

	c.pump.SetTargetSize(int(size.Width), int(size.Height))
	c.notify(st)
}

// OnSkipRequest implements EventListener. Skip requests may arrive from an
// asynchronous context; the application callback is marshaled onto the
// main scheduling context.
func (c *Controller) OnSkipRequest(seconds float64) {
	Dispatch(func() {
		c.mu.Lock()
		fn := c.onSkip
		c.mu.Unlock()
		if fn != nil {
			fn(seconds)
		}
	})
}

// OnRestoreRequest implements EventListener. The user asked to return to
// the main UI: enabled is cleared and completion acknowledged.
func (c *Controller) OnRestoreRequest(done func()) {
	c.clearEnabled()
	if done != nil {
		done()
	}
}

// QueryPaused implements EventListener.
func (c *Controller) QueryPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.PlayPauseEnabled && !c.state.Playing
}

// QueryTimeRange implements EventListener.
func (c *Controller) QueryTimeRange() (start, end time.Time) {
	return c.mapper.CurrentTimeRange()
}

// QueryProhibitBackgroundAudio implements EventListener. This surface never
// produces audio, so other audio may always continue.
func (c *Controller) QueryProhibitBackgroundAudio() bool {
	return false
}

// OnSetPlaying implements EventListener. Honored only while play/pause is
// enabled; the platform's cached playback state is invalidated on the main
// scheduling context.
func (c *Controller) OnSetPlaying(playing bool) {
	c.mu.Lock()
	if !c.state.PlayPauseEnabled || c.state.Playing == playing {
		c.mu.Unlock()
		return
	}
	c.state.Playing = playing
	st := c.state
	c.mu.Unlock()

	c.notify(st)
	if c.session != nil {
		Dispatch(c.session.InvalidatePlaybackState)
	}
}
