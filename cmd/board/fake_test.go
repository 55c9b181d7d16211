package board

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gigurra/soundboard/cmd/board/channel"
)

var errNoSuchClip = errors.New("no such clip")

// syncDispatch runs indicator work inline on the caller.
var syncDispatch = channel.DispatcherFunc(func(fn func()) error {
	fn()
	return nil
})

// stubSession plays until stopped.
type stubSession struct {
	id      string
	once    sync.Once
	done    chan struct{}
	stopped atomic.Bool
}

func (s *stubSession) ID() string     { return s.id }
func (s *stubSession) Play()          {}
func (s *stubSession) Wait()          { <-s.done }
func (s *stubSession) Finished() bool { return false }

func (s *stubSession) Stop() {
	s.stopped.Store(true)
	s.once.Do(func() { close(s.done) })
}

type stubStream struct{}

func (stubStream) Close() error { return nil }

// stubBackend fails to open any locator containing "missing".
type stubBackend struct {
	mu       sync.Mutex
	sessions []*stubSession
}

func (b *stubBackend) Open(locator string) (io.ReadCloser, error) {
	if strings.Contains(locator, "missing") {
		return nil, fmt.Errorf("open %s: %w", locator, errNoSuchClip)
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (b *stubBackend) Decode(_ string, src io.ReadCloser) (channel.Stream, error) {
	_ = src.Close()
	return stubStream{}, nil
}

func (b *stubBackend) NewSession(channel.Stream) (channel.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &stubSession{id: fmt.Sprintf("s%d", len(b.sessions)), done: make(chan struct{})}
	b.sessions = append(b.sessions, s)
	return s, nil
}

// litSet records indicator calls per channel.
type litSet struct {
	mu  sync.Mutex
	lit map[string]bool
}

func newLitSet() *litSet { return &litSet{lit: map[string]bool{}} }

func (l *litSet) indicatorFor(id string) channel.Indicator {
	return func(on bool) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.lit[id] = on
	}
}

func (l *litSet) get(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lit[id]
}
