package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"
)

var errUnsupportedSound = errors.New("unsupported sound file type")

// cheer plays a short celebration clip every time confetti is launched.
// The clip is decoded once into memory so replays never touch the disk.
type cheer struct {
	logger *zap.Logger

	clip     *beep.Buffer
	path     string
	rate     beep.SampleRate
	initDone bool
}

func newCheer(logger *zap.Logger) *cheer {
	return &cheer{logger: logger}
}

// decodeSound picks a decoder by file extension.
func decodeSound(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", errUnsupportedSound, ext)
	}
}

// Load replaces the current clip with the file at path.
func (c *cheer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound: %w", err)
	}
	defer f.Close()

	streamer, format, err := decodeSound(path, f)
	if err != nil {
		return fmt.Errorf("decode sound: %w", err)
	}
	defer streamer.Close()

	clip := beep.NewBuffer(format)
	clip.Append(streamer)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("decode sound: %w", err)
	}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !c.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		c.initDone = true
	case c.rate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		speaker.Clear()
	}

	c.clip = clip
	c.path = path
	c.rate = format.SampleRate

	c.logger.Info("celebration sound loaded",
		zap.String("path", path),
		zap.Duration("length", format.SampleRate.D(clip.Len())))
	return nil
}

// Play starts the clip from the beginning. Overlapping launches mix.
func (c *cheer) Play() {
	if c.clip == nil {
		return
	}
	speaker.Play(c.clip.Streamer(0, c.clip.Len()))
}

// Name is the base name of the loaded clip, or "" when none is loaded.
func (c *cheer) Name() string {
	if c.path == "" {
		return ""
	}
	return filepath.Base(c.path)
}

// pickSound asks the user for a clip. A cancelled dialog returns "".
func pickSound() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose Celebration Sound"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
