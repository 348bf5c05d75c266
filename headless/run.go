// Package headless plays autopilot games without a frontend and aggregates
// their results.
package headless

import (
	"log/slog"
	"time"

	"gridsnake/config"
	"gridsnake/game/session"
)

// Run plays cfg.Headless.Games autopilot games without a frontend
// and logs the aggregate results.
func Run(cfg *config.Config, logger *slog.Logger) error {
	stats := NewGameStats()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	newOpts := func(worker int) session.Options {
		return session.Options{
			Width:  cfg.Grid.Width,
			Height: cfg.Grid.Height,
			Seed:   seed + uint64(worker),
			Logger: logger.With("worker", worker),
		}
	}

	logger.Info("starting headless run",
		"games", cfg.Headless.Games,
		"workers", cfg.Headless.Workers,
		"max_ticks", cfg.Headless.MaxTicks,
		"seed", seed,
	)

	start := time.Now()
	pool := NewAgentPool(cfg.Headless.Workers, cfg.Headless.MaxTicks, newOpts, stats, logger)
	if err := pool.Run(cfg.Headless.Games); err != nil {
		return err
	}

	logger.Info("headless run finished", "elapsed", time.Since(start).Round(time.Millisecond))
	stats.Log(logger)
	return nil
}
