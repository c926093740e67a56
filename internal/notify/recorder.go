package notify

import (
	"context"
	"sync"
)

var _ Notifier = (*Recorder)(nil)

// Recorder is a test double that records the last Send call instead of
// delivering anything. Tests inject it wherever a Notifier is expected and
// assert on what the high-level code handed over.
type Recorder struct {
	mu            sync.Mutex
	invoked       bool
	lastRecipient string
	lastMessage   string
	err           error
}

// NewRecorder creates a new Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Fail makes every subsequent Send return err. Pass nil to succeed again.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Send implements the Notifier interface. It unconditionally overwrites the
// recorded call and marks the recorder as invoked.
func (r *Recorder) Send(_ context.Context, recipient, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoked = true
	r.lastRecipient = recipient
	r.lastMessage = message
	return r.err
}

// Invoked reports whether Send has been called at least once.
func (r *Recorder) Invoked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invoked
}

// LastRecipient returns the recipient of the most recent Send call.
func (r *Recorder) LastRecipient() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRecipient
}

// LastMessage returns the message of the most recent Send call.
func (r *Recorder) LastMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastMessage
}
