package channel

import (
	"errors"
	"io"
)

var (
	ErrSourceUnavailable      = errors.New("clip source unavailable")
	ErrDecodeFailed           = errors.New("clip decode failed")
	ErrDeviceAllocationFailed = errors.New("device allocation failed")
	ErrDispatcherClosed       = errors.New("dispatcher closed")
	ErrInvalidConfig          = errors.New("invalid channel config")
)

// Indicator receives the playing state of one channel.
// It is always invoked on the UI execution context.
type Indicator func(playing bool)

// Dispatcher posts a unit of work onto the UI execution context.
// Work posted through one Dispatcher runs in the order it was posted.
type Dispatcher interface {
	Dispatch(fn func()) error
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(fn func()) error

func (f DispatcherFunc) Dispatch(fn func()) error { return f(fn) }

// Stream is a decoded clip, ready to be bound to a session.
type Stream interface {
	io.Closer
}

// Session is one playback of one stream on the shared output device.
type Session interface {
	ID() string
	Play()
	// Stop ends playback early. Calling it more than once is a no-op.
	Stop()
	// Wait blocks until the session ends, either naturally or through Stop.
	Wait()
	// Finished reports whether the stream drained naturally.
	Finished() bool
}

// Backend performs the three fallible steps of starting a clip.
// A single Backend is shared by every channel and must be safe for
// concurrent use.
type Backend interface {
	Open(locator string) (io.ReadCloser, error)
	// Decode owns src: it is closed on failure, and by the returned
	// Stream otherwise.
	Decode(locator string, src io.ReadCloser) (Stream, error)
	// NewSession owns stream only on success. On failure the caller
	// closes it.
	NewSession(stream Stream) (Session, error)
}

// State is the toggle state of a channel.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
)

// Status is a point-in-time snapshot of a channel.
type Status struct {
	ID         string
	Locator    string
	State      State
	Generation uint64
	SessionID  string // Empty when idle
}
