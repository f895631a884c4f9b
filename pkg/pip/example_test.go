package pip_test

import (
	"fmt"
	"time"

	"github.com/go-drift/pipify/pkg/pip"
	"github.com/go-drift/pipify/pkg/pump"
	"github.com/go-drift/pipify/pkg/sample"
)

// stubSession is a minimal floating-surface session for the examples.
// Real integrations adapt the platform's picture-in-picture facility.
type stubSession struct {
	listener pip.EventListener
	layer    stubLayer
}

type stubLayer struct{}

func (stubLayer) Enqueue(*sample.FrameSample) error { return nil }
func (stubLayer) Failed() bool                      { return false }
func (stubLayer) Flush()                            {}

func (s *stubSession) Supported() bool                     { return true }
func (s *stubSession) Possible() bool                      { return true }
func (s *stubSession) SubscribePossible(func(bool)) func() { return func() {} }
func (s *stubSession) RequestActivation() error            { s.listener.OnStart(); return nil }
func (s *stubSession) RequestDeactivation() error          { s.listener.OnStop(); return nil }
func (s *stubSession) InvalidatePlaybackState()            {}
func (s *stubSession) SetListener(l pip.EventListener)     { s.listener = l }
func (s *stubSession) Layer() pump.DisplayLayer            { return s.layer }

// This example shows the basic lifecycle of a floating-surface controller.
func ExampleController() {
	controller := pip.NewController(&stubSession{}, nil)

	// Observe play/pause and window size changes.
	remove := controller.AddStateListener(func(st pip.State) {
		fmt.Printf("playing=%v size=%vx%v\n", st.Playing, st.RenderSize.Width, st.RenderSize.Height)
	})
	defer remove()

	// Show the floating surface and stop it again.
	controller.SetEnabled(true)
	controller.SetEnabled(false)
}

// This example shows how progress and skipping shape the transport UI.
func ExampleController_transportControls() {
	controller := pip.NewController(&stubSession{}, nil)

	// Enable the skip controls: skip deltas arrive on the main context.
	controller.SetOnSkip(func(seconds float64) {
		fmt.Printf("skip %v\n", time.Duration(seconds*float64(time.Second)))
	})

	// Show a half-filled scrub bar.
	controller.SetProgress(0.5)

	fmt.Println(controller.RequiresLinearPlayback())
	// Output: false
}
