package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/logo-drift/internal/assets"
	"github.com/iburimskiy/logo-drift/internal/config"
	"github.com/iburimskiy/logo-drift/internal/game"
	"github.com/iburimskiy/logo-drift/internal/sim"
	"github.com/iburimskiy/logo-drift/internal/soundtrack"
)

type options struct {
	envFile        string
	pickSoundtrack bool
	headless       bool
	duration       time.Duration
	hostHz         int
	width          uint
	height         uint
}

func main() {
	log.SetPrefix("logodrift: ")
	log.SetFlags(log.Ltime)

	var opts options
	var override config.Config

	flag.StringVar(&opts.envFile, "env", config.EnvFile, "optional .env file with LOGODRIFT_* settings")
	flag.IntVar(&override.Sprites, "sprites", config.SpriteCount, "number of logos")
	flag.Float64Var(&override.Speed, "speed", config.SpriteSpeed, "outward drift rate")
	flag.IntVar(&override.FPS, "fps", config.TargetFPS, "tick rate cap")
	flag.BoolVar(&override.Fullscreen, "fullscreen", false, "start fullscreen")
	flag.StringVar(&override.Logo, "logo", "", "SVG logo with "+assets.Placeholder+" fills to tint")
	flag.StringVar(&override.Soundtrack, "soundtrack", "", "wav/mp3/flac file to loop")
	flag.Float64Var(&override.Volume, "volume", config.SoundtrackVolume, "soundtrack volume, base-2 exponent")
	flag.Int64Var(&override.Seed, "seed", 0, "random seed (0 = time based)")
	flag.BoolVar(&override.Debug, "debug", false, "show and log tick statistics")
	flag.BoolVar(&opts.pickSoundtrack, "pick-soundtrack", false, "choose a soundtrack in a file dialog")
	flag.BoolVar(&opts.headless, "headless", false, "run without a window and print a report")
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "headless run length")
	flag.IntVar(&opts.hostHz, "host-hz", 144, "headless frame delivery rate")
	flag.UintVar(&opts.width, "width", config.WindowWidth, "headless viewport width")
	flag.UintVar(&opts.height, "height", config.WindowHeight, "headless viewport height")
	flag.Parse()

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		fail(!opts.headless, err)
	}
	cfg = applyFlags(cfg, override)
	if err := cfg.Validate(); err != nil {
		fail(!opts.headless, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only

	if opts.headless {
		if err := runHeadless(cfg, opts, rng); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runWindow(cfg, opts, rng); err != nil {
		fail(true, err)
	}
}

// applyFlags copies the flags given on the command line over cfg.
func applyFlags(cfg, override config.Config) config.Config {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sprites":
			cfg.Sprites = override.Sprites
		case "speed":
			cfg.Speed = override.Speed
		case "fps":
			cfg.FPS = override.FPS
		case "fullscreen":
			cfg.Fullscreen = override.Fullscreen
		case "logo":
			cfg.Logo = override.Logo
		case "soundtrack":
			cfg.Soundtrack = override.Soundtrack
		case "volume":
			cfg.Volume = override.Volume
		case "seed":
			cfg.Seed = override.Seed
		case "debug":
			cfg.Debug = override.Debug
		}
	})
	return cfg
}

func runWindow(cfg config.Config, opts options, rng *rand.Rand) error {
	svg, err := assets.ReadLogo(cfg.Logo)
	if err != nil {
		return err
	}
	atlas, err := assets.Build(svg, config.LogoResolution, func(img *image.RGBA) *ebiten.Image {
		return ebiten.NewImageFromImage(img)
	})
	if err != nil {
		return fmt.Errorf("load logo images: %w", err)
	}
	log.Printf("loaded %d tinted logos at %dpx", len(sim.Palette), atlas.Size())

	if opts.pickSoundtrack {
		path, err := pickSoundtrack()
		if err != nil {
			log.Printf("soundtrack dialog: %v", err)
		} else if path != "" {
			cfg.Soundtrack = path
		}
	}
	if track := startSoundtrack(cfg); track != nil {
		defer track.Close()
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.Fullscreen {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	// one Update per display refresh; the simulation clock does the gating
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := game.New(atlas, game.Options{
		Sprites:       cfg.Sprites,
		Speed:         cfg.Speed,
		FPS:           cfg.FPS,
		Rand:          rng,
		Debug:         cfg.Debug,
		StatsInterval: config.StatsInterval,
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		if sig, ok := <-sigs; ok {
			log.Printf("%s received, stopping", sig)
			g.Stop()
		}
	}()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	st := g.Stats()
	log.Printf("stopped after %d ticks", st.Ticks)
	return nil
}

// startSoundtrack plays cfg.Soundtrack if set. Audio problems are logged and
// the animation runs silent.
func startSoundtrack(cfg config.Config) *soundtrack.Track {
	if cfg.Soundtrack == "" {
		return nil
	}
	track, err := soundtrack.Open(cfg.Soundtrack, cfg.Volume)
	if err != nil {
		log.Printf("soundtrack: %v", err)
		return nil
	}
	if err := track.Play(); err != nil {
		log.Printf("soundtrack: %v", err)
		_ = track.Close()
		return nil
	}
	log.Printf("soundtrack: %s (%s, looping)", cfg.Soundtrack, soundtrack.FormatDuration(track.Duration()))
	return track
}

func pickSoundtrack() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Choose a soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: soundtrack.Patterns,
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

func runHeadless(cfg config.Config, opts options, rng *rand.Rand) error {
	vp := sim.Viewport{Width: opts.width, Height: opts.height}
	driver := sim.NewTickerDriver(opts.hostHz)
	rec := &sim.Recorder{}
	loop := sim.NewLoop[sim.Color](
		sim.NewWorld(rng, vp, cfg.Sprites, cfg.Speed),
		sim.NewClock(cfg.FPS),
		sim.FixedViewport(vp),
		sim.PaletteImages{},
		rec,
		driver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	log.Printf("headless: %d sprites, %dx%d, host %d Hz, cap %d fps, %s",
		cfg.Sprites, vp.Width, vp.Height, opts.hostHz, cfg.FPS, opts.duration)

	start := time.Now()
	loop.Start()
	err := driver.Run(ctx)
	loop.Stop()
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}

	printReport(loop.Stats(), rec, time.Since(start))
	return nil
}

func printReport(st sim.Stats, rec *sim.Recorder, wall time.Duration) {
	fmt.Printf("=== Headless Report ===\n")
	fmt.Printf("wall time      %s\n", wall.Round(time.Millisecond))
	fmt.Printf("samples        %d\n", st.Samples)
	fmt.Printf("ticks          %d\n", st.Ticks)
	fmt.Printf("dropped        %d\n", st.Dropped)
	fmt.Printf("recycles       %d\n", st.Recycles)
	fmt.Printf("draws          %d\n", st.Draws)
	fmt.Printf("render passes  %d\n", rec.Clears)
	if secs := wall.Seconds(); secs > 0 {
		fmt.Printf("tick rate      %.1f/s\n", float64(st.Ticks)/secs)
	}
}

// fail reports a fatal startup error, in a dialog too when there is a desktop.
func fail(dialog bool, err error) {
	if dialog {
		_ = zenity.Error(err.Error(), zenity.Title(config.WindowTitle), zenity.ErrorIcon)
	}
	log.Fatal(err)
}
