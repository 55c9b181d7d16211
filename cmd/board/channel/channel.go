// Package channel implements one independently toggleable soundboard slot.
//
// A Channel starts its clip on the first Toggle and stops it on the next.
// Every Toggle bumps a generation counter; the background watcher spawned
// for a playback only resets the indicator if the generation it captured is
// still current, so watchers of superseded playbacks wake up as no-ops.
package channel

import (
	"fmt"
	"log/slog"
	"sync"
)

// Config describes one channel at construction time.
type Config struct {
	ID        string
	Locator   string // Clip file path, never changed after construction
	Backend   Backend
	Dispatch  Dispatcher
	Indicator Indicator
}

// Channel owns the playback toggle state for one clip.
type Channel struct {
	id        string
	locator   string
	backend   Backend
	dispatch  Dispatcher
	indicator Indicator
	log       *slog.Logger

	mu         sync.Mutex
	active     Session // nil when idle
	generation uint64  // Incremented on every Toggle, fences stale watchers

	// watchHook is called after each watcher has made its decision. Tests only.
	watchHook func(gen uint64, honored bool)
}

// New creates an idle channel.
func New(cfg Config) (*Channel, error) {
	switch {
	case cfg.ID == "":
		return nil, fmt.Errorf("%w: missing id", ErrInvalidConfig)
	case cfg.Locator == "":
		return nil, fmt.Errorf("%w: channel %s has no clip", ErrInvalidConfig, cfg.ID)
	case cfg.Backend == nil:
		return nil, fmt.Errorf("%w: channel %s has no backend", ErrInvalidConfig, cfg.ID)
	case cfg.Dispatch == nil:
		return nil, fmt.Errorf("%w: channel %s has no dispatcher", ErrInvalidConfig, cfg.ID)
	case cfg.Indicator == nil:
		return nil, fmt.Errorf("%w: channel %s has no indicator", ErrInvalidConfig, cfg.ID)
	}

	return &Channel{
		id:        cfg.ID,
		locator:   cfg.Locator,
		backend:   cfg.Backend,
		dispatch:  cfg.Dispatch,
		indicator: cfg.Indicator,
		log:       slog.With("channel", cfg.ID),
	}, nil
}

// ID returns the channel identifier.
func (c *Channel) ID() string { return c.id }

// Locator returns the clip path the channel plays.
func (c *Channel) Locator() string { return c.locator }

// Toggle stops the clip if it is playing, otherwise starts it.
// Exactly one indicator update is dispatched per call.
func (c *Channel) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playingLocked() {
		c.stopLocked()
		return
	}

	if c.active != nil {
		// Drained naturally but the watcher has not confirmed yet
		c.log.Debug("clearing finished session", "session", c.active.ID())
		c.active = nil
	}

	session, err := c.start()
	c.generation++
	if err != nil {
		c.log.Error("failed to start clip", "clip", c.locator, "error", err)
		c.post(false)
		return
	}

	c.active = session
	gen := c.generation
	c.log.Info("clip started", "clip", c.locator, "session", session.ID(), "generation", gen)
	c.post(true)

	go c.watch(session, gen)
}

// Stop stops the clip if it is playing. An idle channel is left untouched
// and no indicator update is dispatched.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playingLocked() {
		c.stopLocked()
	}
}

// start opens, decodes and binds the clip to a new session, then plays it.
func (c *Channel) start() (Session, error) {
	src, err := c.backend.Open(c.locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	stream, err := c.backend.Decode(c.locator, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	session, err := c.backend.NewSession(stream)
	if err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %w", ErrDeviceAllocationFailed, err)
	}

	session.Play()
	return session, nil
}

// playingLocked must be called with c.mu held.
func (c *Channel) playingLocked() bool {
	return c.active != nil && !c.active.Finished()
}

// stopLocked must be called with c.mu held and an active session.
func (c *Channel) stopLocked() {
	session := c.active
	session.Stop()
	c.active = nil
	c.generation++
	c.log.Info("clip stopped", "session", session.ID(), "generation", c.generation)
	c.post(false)
}

// watch waits for the session to end and resets the channel if no later
// toggle has superseded it.
func (c *Channel) watch(session Session, gen uint64) {
	session.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	honored := c.generation == gen
	if honored {
		c.active = nil
		c.log.Info("clip finished", "session", session.ID(), "generation", gen)
		c.post(false)
	} else {
		c.log.Debug("ignoring superseded session", "session", session.ID(), "generation", gen, "current", c.generation)
	}

	if c.watchHook != nil {
		c.watchHook(gen, honored)
	}
}

// post schedules the indicator on the UI context. Must be called with c.mu
// held so updates reach the UI in event order.
func (c *Channel) post(playing bool) {
	indicator := c.indicator
	if err := c.dispatch.Dispatch(func() { indicator(playing) }); err != nil {
		// The UI context is gone, so the process is going down anyway
		c.log.Error("indicator dispatch failed", "error", err)
		panic(fmt.Errorf("channel %s: %w", c.id, err))
	}
}

// Status returns a snapshot of the channel.
func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		ID:         c.id,
		Locator:    c.locator,
		State:      StateIdle,
		Generation: c.generation,
	}
	if c.playingLocked() {
		st.State = StatePlaying
		st.SessionID = c.active.ID()
	}
	return st
}

// Generation returns the current fencing token.
func (c *Channel) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Playing reports whether the clip is currently playing.
func (c *Channel) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playingLocked()
}
