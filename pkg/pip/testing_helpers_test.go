package pip

import (
	"sync"
	"testing"

	"github.com/go-drift/pipify/pkg/errors"
	"github.com/go-drift/pipify/pkg/pump"
	piptest "github.com/go-drift/pipify/pkg/testing"
)

// fakeSession is a controllable floating-surface session.
type fakeSession struct {
	mu            sync.Mutex
	layer         *piptest.RecordingLayer
	listener      EventListener
	supported     bool
	possible      bool
	subscribers   map[int]func(bool)
	nextSubID     int
	cancellations int
	activations   int
	deactivations int
	invalidations int
	activationErr error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		layer:       piptest.NewRecordingLayer(),
		supported:   true,
		possible:    true,
		subscribers: map[int]func(bool){},
	}
}

func (s *fakeSession) Supported() bool { return s.supported }

func (s *fakeSession) Possible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.possible
}

func (s *fakeSession) SubscribePossible(fn func(bool)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			s.cancellations++
		}
		s.mu.Unlock()
	}
}

// notifyPossible changes the capability and notifies subscribers.
func (s *fakeSession) notifyPossible(possible bool) {
	s.mu.Lock()
	s.possible = possible
	subs := make([]func(bool), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(possible)
	}
}

func (s *fakeSession) RequestActivation() error {
	s.mu.Lock()
	s.activations++
	err := s.activationErr
	listener := s.listener
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if listener != nil {
		listener.OnStart()
	}
	return nil
}

func (s *fakeSession) RequestDeactivation() error {
	s.mu.Lock()
	s.deactivations++
	listener := s.listener
	s.mu.Unlock()
	if listener != nil {
		listener.OnStop()
	}
	return nil
}

func (s *fakeSession) InvalidatePlaybackState() {
	s.mu.Lock()
	s.invalidations++
	s.mu.Unlock()
}

func (s *fakeSession) SetListener(l EventListener) {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

func (s *fakeSession) Layer() pump.DisplayLayer { return s.layer }

func (s *fakeSession) activationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activations
}

func (s *fakeSession) invalidationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidations
}

func (s *fakeSession) subscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// fakeAudio records audio-session prerequisite calls.
type fakeAudio struct {
	activations   int
	deactivations int
	activateErr   error
}

func (a *fakeAudio) Activate() error {
	a.activations++
	return a.activateErr
}

func (a *fakeAudio) Deactivate() error {
	a.deactivations++
	return nil
}

// silentErrors replaces the global error handler with a recorder for the
// duration of the test so expected warnings stay off stderr.
func silentErrors(t *testing.T) *errorRecorder {
	t.Helper()
	rec := &errorRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return rec
}

type errorRecorder struct {
	mu     sync.Mutex
	errs   []*errors.PipError
	panics []*errors.PanicError
}

func (r *errorRecorder) HandleError(err *errors.PipError) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *errorRecorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	r.panics = append(r.panics, err)
	r.mu.Unlock()
}

func (r *errorRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func (r *errorRecorder) last() *errors.PipError {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}
