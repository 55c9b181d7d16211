// Package audio plays soundboard clips on the process-wide output device
// using beep.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gigurra/soundboard/cmd/board/channel"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrAudioUnavailable  = errors.New("audio playback is not available in this build")
	ErrDeviceClosed      = errors.New("audio device closed")
	ErrForeignStream     = errors.New("stream was not decoded by this device")
)

var _ channel.Backend = (*Device)(nil)

// SupportedExtensions lists the clip file extensions Decode understands.
var SupportedExtensions = []string{".mp3", ".wav"}

const (
	DefaultSampleRate = 44100
	DefaultBuffer     = 100 * time.Millisecond
)

// Options configure the output device.
type Options struct {
	SampleRate int
	Buffer     time.Duration
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.Buffer <= 0 {
		o.Buffer = DefaultBuffer
	}
	return o
}

// Stream is a decoded clip.
type Stream struct {
	beep.StreamSeekCloser
	Format beep.Format
}

// Duration returns the clip length.
func (s *Stream) Duration() time.Duration {
	return s.Format.SampleRate.D(s.Len())
}

// Open opens the clip file for reading.
func (d *Device) Open(locator string) (io.ReadCloser, error) {
	return os.Open(locator)
}

// Decode picks a decoder from the clip's file extension. The source is
// owned by the returned stream, or closed on failure.
func (d *Device) Decode(locator string, src io.ReadCloser) (channel.Stream, error) {
	return Decode(locator, src)
}

// Decode decodes src as the format implied by locator's extension.
func Decode(locator string, src io.ReadCloser) (*Stream, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	ext := strings.ToLower(filepath.Ext(locator))
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(src)
	case ".wav":
		streamer, format, err = wav.Decode(src)
	default:
		_ = src.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return &Stream{StreamSeekCloser: streamer, Format: format}, nil
}

// Probe decodes the clip at path just far enough to report its length.
func Probe(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	st, err := Decode(path, f)
	if err != nil {
		return 0, err
	}
	defer st.Close()
	return st.Duration(), nil
}
