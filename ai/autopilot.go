package ai

import (
	"math"

	"gridsnake/game/types"
)

// Autopilot steers the snake towards the apple while avoiding walls, its own
// body and pockets too small to hold it.
type Autopilot struct {
	rng types.RandSource
}

// NewAutopilot creates an autopilot. rng breaks ties between equally good moves.
func NewAutopilot(rng types.RandSource) *Autopilot {
	return &Autopilot{
		rng: rng,
	}
}

type candidate struct {
	dir      types.Direction
	distance int
	roomy    bool
}

// Next picks the direction for the coming tick. With no safe move it keeps
// the current direction and lets the grid end the game.
func (a *Autopilot) Next(v View) types.Direction {
	dims := v.Dims()
	apple, hasApple := v.Apple()

	candidates := make([]candidate, 0, len(types.Directions))
	for _, dir := range types.Directions {
		target, ok := Probe(v, dir)
		if !ok {
			continue
		}

		dist := 0
		if hasApple {
			dist = manhattanDistance(dims.PointOf(target), dims.PointOf(apple))
		}
		room := FreeArea(v, target, v.SnakeLength()+1)
		candidates = append(candidates, candidate{
			dir:      dir,
			distance: dist,
			roomy:    room > v.SnakeLength(),
		})
	}

	if len(candidates) == 0 {
		if v.Direction() == types.None {
			return types.Up
		}
		return v.Direction()
	}

	// Prefer moves that do not trap the snake, then the shortest way to the apple.
	anyRoomy := false
	for _, c := range candidates {
		if c.roomy {
			anyRoomy = true
			break
		}
	}

	best := make([]types.Direction, 0, len(candidates))
	bestDist := math.MaxInt
	for _, c := range candidates {
		if anyRoomy && !c.roomy {
			continue
		}
		switch {
		case c.distance < bestDist:
			bestDist = c.distance
			best = append(best[:0], c.dir)
		case c.distance == bestDist:
			best = append(best, c.dir)
		}
	}

	return best[a.rng.Intn(len(best))]
}
