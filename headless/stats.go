package headless

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"gridsnake/game/session"
)

// GameStats collects the results of the games played in this process. Scores
// are not written anywhere; they are summarized in the log at exit.
type GameStats struct {
	Games []GameRecord
	mutex sync.RWMutex
}

// GameRecord is one finished game.
type GameRecord struct {
	Session  string
	Length   int
	Ticks    int
	Cause    string
	Duration time.Duration
}

// Summary aggregates the recorded games.
type Summary struct {
	GamesPlayed   int
	AverageLength float64
	MedianLength  float64
	MaxLength     int
	StdDevLength  float64
	AverageTicks  float64
	WallDeaths    int
	SelfDeaths    int
}

func NewGameStats() *GameStats {
	return &GameStats{
		Games: make([]GameRecord, 0),
	}
}

// AddGame records a finished game. Safe for concurrent use.
func (s *GameStats) AddGame(r session.Result) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.Games = append(s.Games, GameRecord{
		Session:  r.Session,
		Length:   r.Length,
		Ticks:    r.Ticks,
		Cause:    r.Cause.String(),
		Duration: r.End.Sub(r.Start),
	})
}

// Summary computes the aggregate figures.
func (s *GameStats) Summary() Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sum := Summary{GamesPlayed: len(s.Games)}
	if len(s.Games) == 0 {
		return sum
	}

	lengths := make([]float64, len(s.Games))
	ticks := make([]float64, len(s.Games))
	for i, g := range s.Games {
		lengths[i] = float64(g.Length)
		ticks[i] = float64(g.Ticks)
		if g.Length > sum.MaxLength {
			sum.MaxLength = g.Length
		}
		switch g.Cause {
		case "hit_wall":
			sum.WallDeaths++
		case "hit_self":
			sum.SelfDeaths++
		}
	}

	sum.AverageLength, sum.StdDevLength = stat.MeanStdDev(lengths, nil)
	if len(lengths) == 1 {
		sum.StdDevLength = 0
	}
	sum.AverageTicks = stat.Mean(ticks, nil)

	sort.Float64s(lengths)
	sum.MedianLength = median(lengths)

	return sum
}

// median of sorted values, averaging the middle pair for even counts.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Log writes the summary through slog.
func (s *GameStats) Log(logger *slog.Logger) {
	sum := s.Summary()
	if sum.GamesPlayed == 0 {
		return
	}
	logger.Info("session summary",
		"games", sum.GamesPlayed,
		"avg_length", sum.AverageLength,
		"median_length", sum.MedianLength,
		"max_length", sum.MaxLength,
		"stddev_length", sum.StdDevLength,
		"avg_ticks", sum.AverageTicks,
		"wall_deaths", sum.WallDeaths,
		"self_deaths", sum.SelfDeaths,
	)
}
