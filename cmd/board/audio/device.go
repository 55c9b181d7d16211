//go:build !linux || cgo

package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gigurra/soundboard/cmd/board/channel"
	"github.com/google/uuid"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// Device is the shared output device. Every channel opens independent
// sessions against it; only the owner that opened it may Close it.
type Device struct {
	sampleRate beep.SampleRate

	mu     sync.Mutex
	closed bool
	live   map[*session]struct{}
}

// OpenDevice initializes the speaker. Call it once per process.
func OpenDevice(opts Options) (*Device, error) {
	opts = opts.withDefaults()
	sr := beep.SampleRate(opts.SampleRate)

	if err := speaker.Init(sr, sr.N(opts.Buffer)); err != nil {
		return nil, fmt.Errorf("no audio output device: %w", err)
	}
	slog.Debug("audio device opened", "sample_rate", opts.SampleRate, "buffer", opts.Buffer)

	return newDevice(sr), nil
}

func newDevice(sr beep.SampleRate) *Device {
	return &Device{sampleRate: sr, live: make(map[*session]struct{})}
}

// SampleRate returns the rate the speaker runs at.
func (d *Device) SampleRate() beep.SampleRate { return d.sampleRate }

// NewSession binds a decoded stream to the speaker. Playback starts on Play.
func (d *Device) NewSession(stream channel.Stream) (channel.Session, error) {
	st, ok := stream.(*Stream)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignStream, stream)
	}

	// Resample if needed to match speaker sample rate
	var streamer beep.Streamer = st
	if st.Format.SampleRate != d.sampleRate {
		streamer = beep.Resample(4, st.Format.SampleRate, d.sampleRate, st)
	}
	s := &session{
		id:     uuid.NewString(),
		device: d,
		stream: st,
		ctrl:   &beep.Ctrl{Streamer: streamer},
		done:   make(chan struct{}),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	d.live[s] = struct{}{}
	return s, nil
}

// Close silences all sessions and releases the speaker. Sessions still
// playing end as if stopped, so their waiters return.
func (d *Device) Close() {
	live, ok := d.shutdown()
	if !ok {
		return
	}
	speaker.Clear()
	for _, s := range live {
		s.Stop()
	}
	speaker.Close()
}

// shutdown marks the device closed and returns the sessions that have not
// ended yet. ok is false if the device was already closed.
func (d *Device) shutdown() (live []*session, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, false
	}
	d.closed = true
	for s := range d.live {
		live = append(live, s)
	}
	return live, true
}

func (d *Device) forget(s *session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.live, s)
}

// session is one clip queued on the speaker.
type session struct {
	id     string
	device *Device
	stream *Stream
	ctrl   *beep.Ctrl

	once     sync.Once
	done     chan struct{}
	finished atomic.Bool
	stopped  atomic.Bool
}

func (s *session) ID() string { return s.id }

func (s *session) Play() {
	speaker.Play(beep.Seq(s.ctrl, beep.Callback(s.drained)))
}

// drained runs on the speaker goroutine once the sequence ends, which also
// happens right after Stop detached the streamer.
func (s *session) drained() {
	if !s.stopped.Load() {
		s.finished.Store(true)
	}
	s.release()
}

func (s *session) Stop() {
	if s.stopped.Swap(true) {
		return
	}
	speaker.Lock()
	s.ctrl.Streamer = nil
	speaker.Unlock()
	s.release()
}

func (s *session) Wait() { <-s.done }

func (s *session) Finished() bool { return s.finished.Load() }

func (s *session) release() {
	s.once.Do(func() {
		close(s.done)
		_ = s.stream.Close()
		s.device.forget(s)
	})
}
