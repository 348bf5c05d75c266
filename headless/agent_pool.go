package headless

import (
	"fmt"
	"log/slog"
	"sync"

	"gridsnake/game"
	"gridsnake/game/session"
)

// AgentPool plays autopilot games on several goroutines. Every worker owns
// its own session, so no grid is ever shared.
type AgentPool struct {
	workers  int
	maxTicks int
	newOpts  func(worker int) session.Options
	stats    *GameStats
	logger   *slog.Logger
}

// NewAgentPool creates a pool of workers. newOpts builds the session options
// for each worker; the pool forces Autopilot on and hooks in stats.
func NewAgentPool(workers, maxTicks int, newOpts func(worker int) session.Options, stats *GameStats, logger *slog.Logger) *AgentPool {
	return &AgentPool{
		workers:  workers,
		maxTicks: maxTicks,
		newOpts:  newOpts,
		stats:    stats,
		logger:   logger,
	}
}

// Run plays games in total and returns once all are finished.
func (p *AgentPool) Run(games int) error {
	jobs := make(chan int)
	errs := make(chan error, p.workers)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			if err := p.work(worker, jobs); err != nil {
				errs <- err
			}
		}(w)
	}

	for i := 0; i < games; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	return <-errs
}

func (p *AgentPool) work(worker int, jobs <-chan int) error {
	opts := p.newOpts(worker)
	opts.Autopilot = true
	opts.OnGameOver = p.stats.AddGame

	s, err := session.New(opts)
	played := 0
	for range jobs {
		// Keep draining after a failure so the feeder never blocks.
		if err != nil {
			continue
		}
		if played > 0 {
			if err = s.Restart(); err != nil {
				continue
			}
		}
		p.play(s)
		played++
	}

	if err != nil {
		return fmt.Errorf("worker %d: %w", worker, err)
	}
	return nil
}

// play runs the current game to the end or to the tick cap. Games stopped by
// the cap count as finished at their current length. A game that dies on the
// last allowed tick was already recorded by the session's game-over hook.
func (p *AgentPool) play(s *session.Session) {
	for s.Ticks() < p.maxTicks || p.maxTicks <= 0 {
		if s.Step() == game.Idle {
			return
		}
	}
	if s.Grid().GameOver() {
		return
	}

	p.logger.Debug("game stopped at tick cap", "session", s.ID, "game", s.Games(), "length", s.Grid().SnakeLength())
	p.stats.AddGame(session.Result{
		Session: s.ID,
		Game:    s.Games(),
		Length:  s.Grid().SnakeLength(),
		Ticks:   s.Ticks(),
		Cause:   game.Idle,
	})
}
