package ai

import (
	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"
)

// View is the read-only part of a grid the autopilot looks at.
// *game.Grid satisfies it.
type View interface {
	Dims() types.Grid
	Head() int
	Direction() types.Direction
	SnakeLength() int
	CellAt(index int) entity.Cell
	Apple() (int, bool)
}

// blockedNextTick reports whether a cell will still hold body after this
// tick's decay. A cell with one tick of life left is the tail and frees up.
func blockedNextTick(c entity.Cell) bool {
	return c.IsOccupied() && c.RemainingLife > 1
}

// Probe looks one move ahead in dir and returns the target index. ok is false
// when the move reverses into the neck, leaves the grid or hits the body.
func Probe(v View, dir types.Direction) (target int, ok bool) {
	if v.SnakeLength() > 1 && types.IsOpposite(dir, v.Direction()) {
		return v.Head(), false
	}

	cm := manager.NewCollisionManager(v.Dims())
	target, inside := cm.Step(v.Head(), dir)
	if !inside {
		return v.Head(), false
	}
	if blockedNextTick(v.CellAt(target)) {
		return target, false
	}
	return target, true
}

// FreeArea counts the cells reachable from start without crossing body cells
// that are still alive next tick. It stops counting at limit.
func FreeArea(v View, start, limit int) int {
	dims := v.Dims()
	cm := manager.NewCollisionManager(dims)
	seen := make([]bool, dims.Size())
	queue := []int{start}
	seen[start] = true
	count := 0

	for len(queue) > 0 && count < limit {
		idx := queue[0]
		queue = queue[1:]
		count++

		for _, d := range types.Directions {
			next, ok := cm.Step(idx, d)
			if !ok || seen[next] || next == v.Head() {
				continue
			}
			seen[next] = true
			if blockedNextTick(v.CellAt(next)) {
				continue
			}
			queue = append(queue, next)
		}
	}

	return count
}
