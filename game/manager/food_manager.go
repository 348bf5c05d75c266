package manager

import (
	"errors"

	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// ErrGridFull is returned when an apple is requested but no cell is empty.
var ErrGridFull = errors.New("no empty cell for apple")

// Rejected draws per cell before switching to a scan of the empty cells.
const sampleAttemptsPerCell = 4

type FoodManager struct {
	rng types.RandSource
}

func NewFoodManager(rng types.RandSource) *FoodManager {
	return &FoodManager{
		rng: rng,
	}
}

// PlaceApple draws uniformly random cells until it finds an empty one and
// puts the apple there. It returns the chosen index.
//
// Rejection sampling is bounded: once it has failed sampleAttemptsPerCell
// times per cell the remaining empty cells are collected and one of them is
// drawn directly, which keeps the distribution uniform over empty cells.
func (fm *FoodManager) PlaceApple(cells []entity.Cell) (int, error) {
	n := len(cells)
	for attempt := 0; attempt < n*sampleAttemptsPerCell; attempt++ {
		idx := fm.rng.Intn(n)
		if cells[idx].IsEmpty() {
			cells[idx].Occupy(types.Apple, 0)
			return idx, nil
		}
	}

	free := make([]int, 0)
	for i := range cells {
		if cells[i].IsEmpty() {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return -1, ErrGridFull
	}

	idx := free[fm.rng.Intn(len(free))]
	cells[idx].Occupy(types.Apple, 0)
	return idx, nil
}
