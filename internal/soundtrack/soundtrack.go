// Package soundtrack plays an optional background track on a loop while the
// animation runs.
package soundtrack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var ErrUnsupported = errors.New("unsupported audio file type")

// Patterns lists the file patterns Open understands.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Track is a decoded audio file ready to loop.
type Track struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	volume   float64
	playing  bool
}

// Open decodes the file at path. volume is a base-2 exponent applied on
// playback (0 leaves the track unchanged, -1 halves it).
func Open(path string, volume float64) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupported)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &Track{file: f, streamer: streamer, format: format, volume: volume}, nil
}

// Duration returns the length of one pass through the track.
func (t *Track) Duration() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

// Play starts looping the track forever on the speaker.
func (t *Track) Play() error {
	bufferSize := t.format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(t.format.SampleRate, bufferSize); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(t.chain())
	t.playing = true
	return nil
}

// chain builds streamer -> loop -> volume.
func (t *Track) chain() beep.Streamer {
	return &effects.Volume{
		Streamer: beep.Loop(-1, t.streamer),
		Base:     2,
		Volume:   t.volume,
	}
}

// Close stops playback and releases the file.
func (t *Track) Close() error {
	if t.playing {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		t.playing = false
	}
	err := t.streamer.Close()
	if cerr := t.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}

// FormatDuration formats a duration as MM:SS
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
