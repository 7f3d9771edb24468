package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Logo Drift"

	// Simulation
	SpriteCount = 20
	SpriteSpeed = 1.2 // tuned by eye
	TargetFPS   = 60

	// Rasterized logo edge length in pixels, scaled down at draw time
	LogoResolution = 256

	// Soundtrack
	SoundtrackVolume = 0.0 // beep volume exponent, 0 = unchanged

	// Debug
	StatsInterval = 5 * time.Second

	EnvFile = ".env"
)

// Environment variables read by Load.
const (
	EnvSprites    = "LOGODRIFT_SPRITES"
	EnvSpeed      = "LOGODRIFT_SPEED"
	EnvFPS        = "LOGODRIFT_FPS"
	EnvFullscreen = "LOGODRIFT_FULLSCREEN"
	EnvLogo       = "LOGODRIFT_LOGO"
	EnvSoundtrack = "LOGODRIFT_SOUNDTRACK"
	EnvVolume     = "LOGODRIFT_VOLUME"
	EnvSeed       = "LOGODRIFT_SEED"
	EnvDebug      = "LOGODRIFT_DEBUG"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Sprites    int
	Speed      float64
	FPS        int
	Fullscreen bool
	Logo       string // optional SVG path replacing the built-in logo
	Soundtrack string // optional wav/mp3/flac path
	Volume     float64
	Seed       int64 // 0 picks a time-based seed
	Debug      bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Sprites: SpriteCount,
		Speed:   SpriteSpeed,
		FPS:     TargetFPS,
		Volume:  SoundtrackVolume,
	}
}

// Load returns the defaults overridden by envFile (if it exists) and then by
// the process environment. Variables already set in the environment win over
// the file.
func Load(envFile string) (Config, error) {
	cfg := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var err error
	if cfg.Sprites, err = envInt(EnvSprites, cfg.Sprites); err != nil {
		return cfg, err
	}
	if cfg.Speed, err = envFloat(EnvSpeed, cfg.Speed); err != nil {
		return cfg, err
	}
	if cfg.FPS, err = envInt(EnvFPS, cfg.FPS); err != nil {
		return cfg, err
	}
	if cfg.Fullscreen, err = envBool(EnvFullscreen, cfg.Fullscreen); err != nil {
		return cfg, err
	}
	if cfg.Volume, err = envFloat(EnvVolume, cfg.Volume); err != nil {
		return cfg, err
	}
	if cfg.Debug, err = envBool(EnvDebug, cfg.Debug); err != nil {
		return cfg, err
	}
	seed, err := envInt(EnvSeed, 0)
	if err != nil {
		return cfg, err
	}
	cfg.Seed = int64(seed)
	cfg.Logo = os.Getenv(EnvLogo)
	cfg.Soundtrack = os.Getenv(EnvSoundtrack)

	return cfg, cfg.Validate()
}

// Validate reports settings the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Sprites <= 0:
		return fmt.Errorf("sprites must be > 0, got %d: %w", c.Sprites, ErrInvalid)
	case c.Speed < 0:
		return fmt.Errorf("speed must be >= 0, got %g: %w", c.Speed, ErrInvalid)
	case c.FPS <= 0 || c.FPS > 1000:
		return fmt.Errorf("fps must be in 1..1000, got %d: %w", c.FPS, ErrInvalid)
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s=%q: %w", key, v, ErrInvalid)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s=%q: %w", key, v, ErrInvalid)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s=%q: %w", key, v, ErrInvalid)
	}
	return b, nil
}
