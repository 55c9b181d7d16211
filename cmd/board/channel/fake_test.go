package channel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// fakeSession finishes after its duration, or when finish() is called.
type fakeSession struct {
	id       string
	duration time.Duration

	once     sync.Once
	done     chan struct{}
	finished atomic.Bool
	stopped  atomic.Bool
	playing  atomic.Bool
}

func newFakeSession(id string, d time.Duration) *fakeSession {
	return &fakeSession{id: id, duration: d, done: make(chan struct{})}
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Play() {
	s.playing.Store(true)
	if s.duration > 0 {
		time.AfterFunc(s.duration, s.finish)
	}
}

func (s *fakeSession) Stop() {
	s.stopped.Store(true)
	s.release()
}

func (s *fakeSession) Wait() { <-s.done }

func (s *fakeSession) Finished() bool { return s.finished.Load() }

// finish simulates the stream draining naturally.
func (s *fakeSession) finish() {
	if !s.stopped.Load() {
		s.finished.Store(true)
	}
	s.release()
}

func (s *fakeSession) release() {
	s.once.Do(func() { close(s.done) })
}

type fakeStream struct{ closed atomic.Bool }

func (f *fakeStream) Close() error {
	f.closed.Store(true)
	return nil
}

// fakeBackend hands out fakeSessions. A duration of zero means the session
// only ends through Stop or an explicit finish().
type fakeBackend struct {
	mu       sync.Mutex
	duration time.Duration
	openErr  error
	decErr   error
	devErr   error
	sessions []*fakeSession
	sources  []*fakeSource
	streams  []*fakeStream
}

// fakeSource counts how often it is closed.
type fakeSource struct {
	io.Reader
	closes atomic.Int32
}

func (s *fakeSource) Close() error {
	s.closes.Add(1)
	return nil
}

func (b *fakeBackend) Open(locator string) (io.ReadCloser, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	src := &fakeSource{Reader: bytes.NewReader([]byte(locator))}
	b.mu.Lock()
	b.sources = append(b.sources, src)
	b.mu.Unlock()
	return src, nil
}

// Decode closes src on failure, like the audio backend does.
func (b *fakeBackend) Decode(_ string, src io.ReadCloser) (Stream, error) {
	_ = src.Close()
	if b.decErr != nil {
		return nil, b.decErr
	}
	stream := &fakeStream{}
	b.mu.Lock()
	b.streams = append(b.streams, stream)
	b.mu.Unlock()
	return stream, nil
}

func (b *fakeBackend) NewSession(_ Stream) (Session, error) {
	if b.devErr != nil {
		return nil, b.devErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s := newFakeSession(fmt.Sprintf("s%d", len(b.sessions)+1), b.duration)
	b.sessions = append(b.sessions, s)
	return s, nil
}

func (b *fakeBackend) session(i int) *fakeSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i >= len(b.sessions) {
		return nil
	}
	return b.sessions[i]
}

func (b *fakeBackend) sessionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

// recorder collects indicator values in delivery order.
type recorder struct {
	mu     sync.Mutex
	values []bool
	notify chan bool
}

func newRecorder() *recorder {
	return &recorder{notify: make(chan bool, 1024)}
}

func (r *recorder) indicator(playing bool) {
	r.mu.Lock()
	r.values = append(r.values, playing)
	r.mu.Unlock()
	r.notify <- playing
}

func (r *recorder) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.values...)
}

// next waits for the next indicator value.
func (r *recorder) next(timeout time.Duration) (bool, error) {
	select {
	case v := <-r.notify:
		return v, nil
	case <-time.After(timeout):
		return false, errors.New("timed out waiting for indicator")
	}
}

// none asserts that no indicator arrives within the window.
func (r *recorder) none(window time.Duration) error {
	select {
	case v := <-r.notify:
		return fmt.Errorf("unexpected indicator %v", v)
	case <-time.After(window):
		return nil
	}
}
