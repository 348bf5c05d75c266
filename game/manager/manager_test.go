package manager

import (
	"errors"
	"testing"

	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// seqRand replays a fixed list of draws, reducing each modulo n.
type seqRand struct {
	vals []int
	pos  int
}

func (s *seqRand) Intn(n int) int {
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return v % n
}

func TestStep(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 5, Height: 4})

	tests := []struct {
		name   string
		index  int
		dir    types.Direction
		want   int
		wantOK bool
	}{
		{"left inside", 7, types.Left, 6, true},
		{"left at column 0", 5, types.Left, 5, false},
		{"right inside", 7, types.Right, 8, true},
		{"right at last column", 9, types.Right, 9, false},
		{"up inside", 7, types.Up, 2, true},
		{"up at row 0", 3, types.Up, 3, false},
		{"down inside", 7, types.Down, 12, true},
		{"down at last row", 17, types.Down, 17, false},
		{"none stays", 7, types.None, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cm.Step(tt.index, tt.dir)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Step(%d, %v) = (%d, %v), want (%d, %v)", tt.index, tt.dir, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStepDoesNotWrapRows(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 3, Height: 3})
	// index 3 is column 0 of row 1; index 2 is the end of row 0.
	if _, ok := cm.Step(3, types.Left); ok {
		t.Error("moving left from column 0 should hit the wall, not wrap to the previous row")
	}
	if _, ok := cm.Step(2, types.Right); ok {
		t.Error("moving right from the last column should hit the wall, not wrap to the next row")
	}
}

func TestPlaceAppleSkipsNonEmpty(t *testing.T) {
	cells := make([]entity.Cell, 4)
	cells[0].Occupy(types.Occupied, 2)
	cells[1].Occupy(types.Occupied, 1)

	fm := NewFoodManager(&seqRand{vals: []int{0, 1, 3}})
	idx, err := fm.PlaceApple(cells)
	if err != nil {
		t.Fatalf("PlaceApple: %v", err)
	}
	if idx != 3 || !cells[3].IsApple() {
		t.Errorf("apple at %d, cells=%v", idx, cells)
	}
}

func TestPlaceAppleFallsBackToScan(t *testing.T) {
	cells := make([]entity.Cell, 4)
	for i := 0; i < 3; i++ {
		cells[i].Occupy(types.Occupied, 1)
	}

	// Always draws 0, which is never empty, so only the scan can find cell 3.
	fm := NewFoodManager(&seqRand{vals: []int{0}})
	idx, err := fm.PlaceApple(cells)
	if err != nil {
		t.Fatalf("PlaceApple: %v", err)
	}
	if idx != 3 {
		t.Errorf("apple at %d, want 3", idx)
	}
}

func TestPlaceAppleOnFullGrid(t *testing.T) {
	cells := make([]entity.Cell, 2)
	cells[0].Occupy(types.Occupied, 1)
	cells[1].Occupy(types.Occupied, 2)

	fm := NewFoodManager(&seqRand{vals: []int{0, 1}})
	if _, err := fm.PlaceApple(cells); !errors.Is(err, ErrGridFull) {
		t.Errorf("PlaceApple on full grid err = %v, want ErrGridFull", err)
	}
}
