// Package main provides the shufflebox entry point.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"shufflebox/internal/app/input"
	"shufflebox/internal/app/lifesupport"
	"shufflebox/internal/app/player"
	"shufflebox/internal/control"
	"shufflebox/internal/engine"
	"shufflebox/internal/infra/config"
	"shufflebox/internal/infra/logger"
	"shufflebox/internal/library"
)

var (
	app        = kingpin.New("shuffleboxd", "continuous shuffle player for a directory of audio tracks")
	configPath = app.Flag("config", "Path to config file (optional)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()
	musicDir   = app.Arg("dir", "Directory whose entries are played").Required().ExistingDir()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	// Initialize logger. Interactive prompts own stdout, so logs default
	// to stderr.
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg, *musicDir); err != nil {
		zlog.Error().Msgf("shuffleboxd error: %v", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file, or the built-in defaults when no file
// is supplied.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	zlog.Info().Msgf("Loading config from %s", path)
	return config.Load(path)
}

// run wires the channels, starts the three actors and joins them. Using a
// separate function ensures defer statements are executed even when
// returning with an error.
func run(cfg *config.Config, dir string) error {
	sessionID := uuid.New().String()
	zlog.Info().Msgf("Starting session: id=%s dir=%s", sessionID, dir)

	tracks, err := library.Scan(dir, cfg.Library.Extensions)
	if err != nil {
		return errors.Wrap(err, "failed to scan library")
	}
	if len(tracks) == 0 {
		return errors.Newf("no playable tracks in %s", dir)
	}
	zlog.Info().Msgf("Library scanned: tracks=%d", len(tracks))

	eng, err := engine.NewBeep(cfg.Engine.Settings)
	if err != nil {
		return errors.Wrap(err, "failed to initialize playback engine")
	}
	defer func() { _ = eng.Close() }()

	// Channel wiring. The command channel is shared by both producers;
	// each origin gets its own single-slot reply channel.
	commands := make(chan control.Message, cfg.Player.CommandDepth)
	inputReplies := make(chan int, 1)
	lifeSupportReplies := make(chan int, 1)

	p := player.New(eng, tracks, commands, player.Config{
		VolumeStep: cfg.Player.VolumeStep,
	})
	p.RegisterReply(control.OriginInput, inputReplies)
	p.RegisterReply(control.OriginLifeSupport, lifeSupportReplies)

	in := input.New(os.Stdin, os.Stdout, commands, inputReplies, p.Done())
	ls := lifesupport.New(commands, lifeSupportReplies, p.Done(), lifesupport.Config{
		Interval:     cfg.KeepAliveInterval(),
		LowWater:     cfg.LifeSupport.LowWater,
		ReplyTimeout: cfg.ReplyTimeout(),
	})

	// Translate SIGINT/SIGTERM into a clean Stop.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			zlog.Info().Msg("Received shutdown signal, stopping")
			select {
			case commands <- control.NewMessage(control.Stop, control.OriginInput):
			case <-p.Done():
			}
		case <-p.Done():
		}
	}()

	var g errgroup.Group
	g.Go(p.Run)
	g.Go(in.Run)
	g.Go(ls.Run)

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "actor terminated abnormally")
	}

	zlog.Info().Msg("Session ended")
	return nil
}
