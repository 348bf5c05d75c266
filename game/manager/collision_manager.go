package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Step moves index one cell in dir. The boundary is checked against the
// current position before moving, so a false result means the move would
// leave the grid and index is returned unchanged.
func (cm *CollisionManager) Step(index int, dir types.Direction) (int, bool) {
	pos := cm.grid.PointOf(index)

	switch dir {
	case types.Left:
		if pos.X <= 0 {
			return index, false
		}
		return index - 1, true
	case types.Right:
		if pos.X >= cm.grid.Width-1 {
			return index, false
		}
		return index + 1, true
	case types.Up:
		if pos.Y <= 0 {
			return index, false
		}
		return index - cm.grid.Width, true
	case types.Down:
		if pos.Y >= cm.grid.Height-1 {
			return index, false
		}
		return index + cm.grid.Width, true
	}

	return index, true
}

// IsBody checks if the cell at index is part of the snake
func (cm *CollisionManager) IsBody(cells []entity.Cell, index int) bool {
	return cells[index].IsOccupied()
}

// IsFoodCollision checks if the cell at index holds the apple
func (cm *CollisionManager) IsFoodCollision(cells []entity.Cell, index int) bool {
	return cells[index].IsApple()
}
