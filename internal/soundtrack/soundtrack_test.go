package soundtrack

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func writeSilentWAV(t *testing.T, path string, d time.Duration) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
}

func TestOpen_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.WAV")
	writeSilentWAV(t, path, 2*time.Second)

	track, err := Open(path, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer track.Close()

	if got := track.Duration(); got < 1990*time.Millisecond || got > 2010*time.Millisecond {
		t.Fatalf("duration = %v, want ≈2s", got)
	}
}

func TestOpen_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path, 0); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.mp3"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestOpen_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("not a wave file"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path, 0); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClose_WithoutPlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.wav")
	writeSilentWAV(t, path, 100*time.Millisecond)

	track, err := Open(path, -1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := track.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(125 * time.Second); got != "02:05" {
		t.Fatalf("FormatDuration = %s", got)
	}
	if got := FormatDuration(0); got != "00:00" {
		t.Fatalf("FormatDuration(0) = %s", got)
	}
}
