package audio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// writeSilentWav writes a mono 16-bit wav of the given length.
func writeSilentWav(t *testing.T, dir, name string, rate int, d time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func TestDecode_Wav(t *testing.T) {
	path := writeSilentWav(t, t.TempDir(), "rimshot1.WAV", 22050, 500*time.Millisecond)

	d := &Device{}
	src, err := d.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	stream, err := d.Decode(path, src)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer stream.Close()

	st, ok := stream.(*Stream)
	if !ok {
		t.Fatalf("Decode() returned %T, want *Stream", stream)
	}
	if st.Format.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", st.Format.SampleRate)
	}
	if got := st.Duration(); got != 500*time.Millisecond {
		t.Errorf("Duration() = %v, want 500ms", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "anthem.wav")
	if err := os.WriteFile(garbage, []byte("definitely not a riff header"), 0644); err != nil {
		t.Fatal(err)
	}
	garbageMp3 := filepath.Join(dir, "anthem.mp3")
	if err := os.WriteFile(garbageMp3, make([]byte, 64), 0644); err != nil {
		t.Fatal(err)
	}
	ogg := filepath.Join(dir, "anthem.ogg")
	if err := os.WriteFile(ogg, []byte("OggS"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error // nil means any error
	}{
		{"corrupt wav", garbage, nil},
		{"corrupt mp3", garbageMp3, nil},
		{"unsupported extension", ogg, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := os.Open(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			_, err = Decode(tt.path, f)
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	d := &Device{}
	_, err := d.Open(filepath.Join(t.TempDir(), "nope.mp3"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open() error = %v, want fs.ErrNotExist", err)
	}
}

func TestProbe(t *testing.T) {
	path := writeSilentWav(t, t.TempDir(), "tapis.wav", 44100, 2*time.Second)

	got, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if got != 2*time.Second {
		t.Errorf("Probe() = %v, want 2s", got)
	}
}

func TestOptions_Defaults(t *testing.T) {
	got := Options{}.withDefaults()
	if got.SampleRate != DefaultSampleRate || got.Buffer != DefaultBuffer {
		t.Errorf("withDefaults() = %+v", got)
	}

	custom := Options{SampleRate: 48000, Buffer: time.Second}.withDefaults()
	if custom.SampleRate != 48000 || custom.Buffer != time.Second {
		t.Errorf("withDefaults() overrode explicit values: %+v", custom)
	}
}
