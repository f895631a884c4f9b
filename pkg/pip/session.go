// Package pip drives a platform floating-video ("picture-in-picture")
// surface from arbitrary rendered UI content.
//
// The platform facility only accepts real video-timed samples and drives
// its transport controls from a playback delegate. This package owns the
// bridge: a Controller binds a frame pump to the session's display layer,
// answers the platform's delegate queries through a timeline mapper, and
// keeps the floating window lifecycle consistent with frame production.
package pip

import (
	"time"

	"github.com/go-drift/pipify/pkg/pump"
	"github.com/go-drift/pipify/pkg/rendering"
)

// EventListener receives delegate callbacks and queries from the platform
// floating-surface session. The Controller implements it.
type EventListener interface {
	// OnStart is called when the floating surface becomes active.
	OnStart()

	// OnStop is called when the floating surface has been dismissed.
	OnStop()

	// OnFailure is called when the platform refuses to start or aborts the
	// surface.
	OnFailure(err error)

	// OnSizeChange is called when the floating window is resized.
	OnSizeChange(size rendering.Size)

	// OnSkipRequest is called when the user taps a skip control. It may be
	// invoked from an asynchronous context.
	OnSkipRequest(seconds float64)

	// OnRestoreRequest is called when the user asks to return to the main
	// UI. done must be called exactly once to acknowledge completion.
	OnRestoreRequest(done func())

	// QueryPaused is consulted by the transport UI for the play/pause
	// button state.
	QueryPaused() bool

	// QueryTimeRange is consulted whenever the platform needs the valid
	// scrub range.
	QueryTimeRange() (start, end time.Time)

	// QueryProhibitBackgroundAudio reports whether other audio must stop
	// while the surface is visible. This surface never produces audio, so
	// implementations return false.
	QueryProhibitBackgroundAudio() bool

	// OnSetPlaying is called when the user toggles play/pause.
	OnSetPlaying(playing bool)
}

// Session is one platform floating-surface session. It binds a
// frame-consuming display layer and a playback delegate; a Controller
// creates exactly one session for its lifetime.
type Session interface {
	// Supported reports whether the platform can show a floating surface
	// at all.
	Supported() bool

	// Possible reports whether activation can happen right now (e.g. the
	// app is foregrounded).
	Possible() bool

	// SubscribePossible registers a callback for changes of the activation
	// capability. The returned cancel function removes the subscription.
	SubscribePossible(fn func(possible bool)) (cancel func())

	// RequestActivation asks the platform to present the floating surface.
	// The result arrives through the listener's OnStart or OnFailure.
	RequestActivation() error

	// RequestDeactivation asks the platform to dismiss the surface.
	RequestDeactivation() error

	// InvalidatePlaybackState discards the platform's cached playback
	// state so it re-queries the time range and flags.
	InvalidatePlaybackState()

	// SetListener installs the playback delegate.
	SetListener(l EventListener)

	// Layer returns the display layer samples are enqueued into.
	Layer() pump.DisplayLayer
}

// AudioSession is the platform audio prerequisite for showing a video
// surface. Both calls are best-effort: failures are reported and swallowed.
type AudioSession interface {
	Activate() error
	Deactivate() error
}
