// Package session drives a Grid on behalf of a frontend: it filters player
// input, ticks the grid, restarts finished games and reports results. It has
// no notion of time; frontends decide when to call Step.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"gridsnake/ai"
	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/telemetry"
)

// Pilot chooses directions instead of a player.
type Pilot interface {
	Next(v ai.View) types.Direction
}

// Tracer receives one record per tick. *telemetry.TraceWriter implements it.
type Tracer interface {
	Write(rec telemetry.TickRecord) error
}

// Result summarizes a finished game.
type Result struct {
	Session string
	Game    int
	Length  int
	Ticks   int
	Cause   game.Outcome
	Start   time.Time
	End     time.Time
}

// Options configures a Session.
type Options struct {
	Width, Height int
	Seed          uint64 // 0 = time-based
	Autopilot     bool
	Glyphs        *types.Glyphs
	Tracer        Tracer
	OnGameOver    func(Result)
	Logger        *slog.Logger
}

type Session struct {
	ID string

	opts    Options
	rng     *rand.Rand
	grid    *game.Grid
	pilot   Pilot
	pending types.Direction

	games   int
	ticks   int
	started time.Time
	logger  *slog.Logger
}

// ResolveDirection applies the reversal rule: turning straight back into the
// neck is ignored unless the snake is a single cell. A None request keeps
// the current direction.
func ResolveDirection(requested, current types.Direction, length int) types.Direction {
	if requested == types.None {
		return current
	}
	if length > 1 && types.IsOpposite(requested, current) {
		return current
	}
	return requested
}

func New(opts Options) (*Session, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New().String()
	s := &Session{
		ID:     id,
		opts:   opts,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.With("session", id),
	}
	if opts.Autopilot {
		s.pilot = ai.NewAutopilot(s.rng)
	}

	if err := s.Restart(); err != nil {
		return nil, err
	}
	s.logger.Info("session started",
		"width", opts.Width,
		"height", opts.Height,
		"seed", seed,
		"autopilot", opts.Autopilot,
	)
	return s, nil
}

// Restart throws away the current grid and starts a new game.
func (s *Session) Restart() error {
	var gridOpts []game.Option
	if s.opts.Glyphs != nil {
		gridOpts = append(gridOpts, game.WithGlyphs(*s.opts.Glyphs))
	}

	g, err := game.NewGrid(s.opts.Width, s.opts.Height, s.rng, gridOpts...)
	if err != nil {
		return fmt.Errorf("session restart: %w", err)
	}

	s.grid = g
	s.pending = types.None
	s.games++
	s.ticks = 0
	s.started = time.Now()
	if s.games > 1 {
		s.logger.Info("game restarted", "game", s.games)
	}
	return nil
}

// Steer records the player's wish for the next tick. Only the last call
// before Step counts.
func (s *Session) Steer(d types.Direction) {
	s.pending = d
}

// Step advances the game by one tick.
func (s *Session) Step() game.Outcome {
	if s.grid.GameOver() {
		return game.Idle
	}

	requested := s.pending
	if s.pilot != nil {
		requested = s.pilot.Next(s.grid)
	}
	s.grid.SetDirection(ResolveDirection(requested, s.grid.Direction(), s.grid.SnakeLength()))

	outcome := s.grid.Tick()
	if outcome == game.Idle {
		return outcome
	}
	s.ticks++

	s.trace(outcome)

	switch outcome {
	case game.Ate:
		s.logger.Debug("apple eaten", "game", s.games, "length", s.grid.SnakeLength(), "tick", s.ticks)
	case game.HitWall, game.HitSelf:
		s.finish(outcome)
	}
	return outcome
}

func (s *Session) trace(outcome game.Outcome) {
	if s.opts.Tracer == nil {
		return
	}

	head := s.grid.HeadPoint()
	apple, _ := s.grid.Apple()
	rec := telemetry.TickRecord{
		Session:   s.ID,
		Game:      s.games,
		Tick:      s.ticks,
		Direction: s.grid.Direction().String(),
		Outcome:   outcome.String(),
		HeadX:     head.X,
		HeadY:     head.Y,
		Length:    s.grid.SnakeLength(),
		Apple:     apple,
		GameOver:  s.grid.GameOver(),
	}
	if err := s.opts.Tracer.Write(rec); err != nil {
		s.logger.Warn("trace write failed", "error", err)
	}
}

func (s *Session) finish(cause game.Outcome) {
	res := Result{
		Session: s.ID,
		Game:    s.games,
		Length:  s.grid.SnakeLength(),
		Ticks:   s.ticks,
		Cause:   cause,
		Start:   s.started,
		End:     time.Now(),
	}
	s.logger.Info("game over",
		"game", res.Game,
		"length", res.Length,
		"ticks", res.Ticks,
		"cause", cause.String(),
	)
	if s.opts.OnGameOver != nil {
		s.opts.OnGameOver(res)
	}
}

// SetTracer starts tracing ticks to t. Tracers that need the session ID
// are created after New, hence the setter.
func (s *Session) SetTracer(t Tracer) {
	s.opts.Tracer = t
}

// Grid exposes the current game for rendering. Callers must not mutate it.
func (s *Session) Grid() *game.Grid { return s.grid }

// Games is the number of games started so far, including the current one.
func (s *Session) Games() int { return s.games }

// Ticks is the number of moves made in the current game.
func (s *Session) Ticks() int { return s.ticks }

func (s *Session) Autopilot() bool { return s.pilot != nil }
