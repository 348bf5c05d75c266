package entity

import "gridsnake/game/types"

// Cell is a single grid position. The snake body is not stored anywhere
// else: a cell that is Occupied stays so for RemainingLife more ticks.
type Cell struct {
	Occupancy     types.Occupancy
	RemainingLife uint
}

func NewCell() Cell {
	return Cell{Occupancy: types.Empty}
}

// Decay counts one tick off an occupied cell and frees it when the life
// runs out. Calling it on a cell with no life left does nothing.
func (c *Cell) Decay() {
	if c.RemainingLife == 0 {
		return
	}

	c.RemainingLife--
	if c.RemainingLife == 0 {
		c.Occupancy = types.Empty
	}
}

func (c *Cell) Occupy(kind types.Occupancy, life uint) {
	c.Occupancy = kind
	c.RemainingLife = life
}

// Extend adds one tick of life to a body cell. Used when the snake eats so
// that the following Decay leaves the tail in place.
func (c *Cell) Extend() {
	if c.Occupancy == types.Occupied {
		c.RemainingLife++
	}
}

func (c Cell) IsEmpty() bool {
	return c.Occupancy == types.Empty
}

func (c Cell) IsApple() bool {
	return c.Occupancy == types.Apple
}

func (c Cell) IsOccupied() bool {
	return c.Occupancy == types.Occupied
}
