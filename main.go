package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gridsnake/config"
	"gridsnake/game/session"
	"gridsnake/headless"
	"gridsnake/telemetry"
	"gridsnake/ui"
	"gridsnake/ui/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	width := flag.Int("width", 0, "Grid width in cells (0 = use config)")
	height := flag.Int("height", 0, "Grid height in cells (0 = use config)")
	speed := flag.Duration("speed", 0, "Time between ticks, e.g. 150ms (0 = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config, then time-based)")
	frontend := flag.String("ui", "", "Frontend: terminal or window (empty = use config)")
	auto := flag.Bool("auto", false, "Let the autopilot play")
	runHeadless := flag.Bool("headless", false, "Play autopilot games without a frontend and print stats")
	games := flag.Int("games", 0, "Headless games to play (0 = use config)")
	traceDir := flag.String("trace-dir", "", "Directory for per-tick CSV traces")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, overrides{
		width:    *width,
		height:   *height,
		speed:    *speed,
		seed:     *seed,
		frontend: *frontend,
		auto:     *auto,
		games:    *games,
		traceDir: *traceDir,
	})
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	logOut, closeLog, err := logOutput(cfg, *runHeadless)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *runHeadless {
		err = headless.Run(cfg, logger)
	} else {
		err = play(cfg, logger)
	}
	if err != nil {
		logger.Error("exiting", "error", err)
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

// overrides are the command-line values that win over the config file.
type overrides struct {
	width, height int
	speed         time.Duration
	seed          uint64
	frontend      string
	auto          bool
	games         int
	traceDir      string
}

func applyFlags(cfg *config.Config, o overrides) {
	if o.width > 0 {
		cfg.Grid.Width = o.width
	}
	if o.height > 0 {
		cfg.Grid.Height = o.height
	}
	if o.speed > 0 {
		cfg.Game.TickInterval = o.speed
	}
	if o.seed != 0 {
		cfg.Game.Seed = o.seed
	}
	if o.frontend != "" {
		cfg.UI.Frontend = o.frontend
	}
	if o.auto {
		cfg.Game.Autopilot = true
	}
	if o.games > 0 {
		cfg.Headless.Games = o.games
	}
	if o.traceDir != "" {
		cfg.Trace.Dir = o.traceDir
	}
}

// play runs one interactive session on the configured frontend.
func play(cfg *config.Config, logger *slog.Logger) error {
	stats := headless.NewGameStats()
	defer stats.Log(logger)

	opts := session.Options{
		Width:      cfg.Grid.Width,
		Height:     cfg.Grid.Height,
		Seed:       cfg.Game.Seed,
		Autopilot:  cfg.Game.Autopilot,
		OnGameOver: stats.AddGame,
		Logger:     logger,
	}
	s, err := session.New(opts)
	if err != nil {
		return err
	}

	trace, err := telemetry.CreateTrace(cfg.Trace.Dir, s.ID)
	if err != nil {
		return err
	}
	defer trace.Close()
	if trace != nil {
		s.SetTracer(trace)
		if err := cfg.WriteYAML(filepath.Join(cfg.Trace.Dir, "config-"+s.ID+".yaml")); err != nil {
			logger.Warn("could not save config next to trace", "error", err)
		}
	}

	switch cfg.UI.Frontend {
	case config.FrontendWindow:
		return ui.RunWindow(s, cfg.UI.WindowWidth, cfg.UI.WindowHeight, cfg.UI.TargetFPS, cfg.Game.TickInterval)
	default:
		term, err := terminal.New(cfg.Game.TickInterval)
		if err != nil {
			return err
		}
		return term.Run(s)
	}
}

// logOutput picks where slog writes. The terminal frontend owns the screen,
// so its logs go to the configured file.
func logOutput(cfg *config.Config, headlessRun bool) (io.Writer, func(), error) {
	if headlessRun || cfg.UI.Frontend != config.FrontendTerminal || cfg.Log.File == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", cfg.Log.File, err)
	}
	return f, func() { f.Close() }, nil
}
