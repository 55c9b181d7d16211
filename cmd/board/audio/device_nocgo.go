//go:build linux && !cgo

package audio

import (
	"github.com/gigurra/soundboard/cmd/board/channel"
	"github.com/gopxl/beep/v2"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries on Linux.
const AudioAvailable = false

// Device is a placeholder for builds without cgo. It can decode clips but
// never plays them.
type Device struct {
	sampleRate beep.SampleRate
}

// OpenDevice always fails when cgo is disabled.
func OpenDevice(opts Options) (*Device, error) {
	return nil, ErrAudioUnavailable
}

// SampleRate returns the configured rate.
func (d *Device) SampleRate() beep.SampleRate { return d.sampleRate }

// NewSession always fails when cgo is disabled.
func (d *Device) NewSession(channel.Stream) (channel.Session, error) {
	return nil, ErrAudioUnavailable
}

// Close is a no-op when cgo is disabled.
func (d *Device) Close() {}
