package game

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"

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

var plainGlyphs = types.Glyphs{Empty: ".", Apple: "*", Occupied: "o", Head: "@"}

// newTestGrid builds a grid whose head and first apple come from draws.
func newTestGrid(t *testing.T, width, height int, draws ...int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height, &seqRand{vals: draws}, WithGlyphs(plainGlyphs))
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", width, height, err)
	}
	return g
}

// setBody writes body cells directly; lives[i] is the remaining life of cells[i].
func setBody(g *Grid, head int, length int, cells []int, lives []uint) {
	for i, idx := range cells {
		g.cells[idx].Occupy(types.Occupied, lives[i])
	}
	g.head = head
	g.snakeLength = length
}

func countApples(g *Grid) int {
	n := 0
	for i := 0; i < g.Size(); i++ {
		if g.CellAt(i).IsApple() {
			n++
		}
	}
	return n
}

func TestNewGridRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 3},
		{"zero height", 3, 0},
		{"negative", -1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.width, tt.height, &seqRand{vals: []int{0}})
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("NewGrid(%d, %d) err = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
			}
		})
	}
}

func TestNewGridInitialState(t *testing.T) {
	g := newTestGrid(t, 5, 5, 12, 3)

	if g.Head() != 12 {
		t.Errorf("head = %d, want 12", g.Head())
	}
	if g.Direction() != types.None || g.SnakeLength() != 1 || g.GameOver() {
		t.Errorf("direction=%v length=%d over=%v", g.Direction(), g.SnakeLength(), g.GameOver())
	}
	if apple, ok := g.Apple(); !ok || apple != 3 || !g.CellAt(3).IsApple() {
		t.Errorf("apple = %d, %v", apple, ok)
	}
	if g.OccupiedCount() != 0 {
		t.Errorf("head cell should not be marked before the first tick, occupied=%d", g.OccupiedCount())
	}
}

func TestSingleCellGridHasNoApple(t *testing.T) {
	g := newTestGrid(t, 1, 1, 0)
	if _, ok := g.Apple(); ok || countApples(g) != 0 {
		t.Error("a full 1x1 grid must not hold an apple")
	}

	g.SetDirection(types.Up)
	if got := g.Tick(); got != HitWall || !g.GameOver() {
		t.Errorf("Tick() = %v, over=%v", got, g.GameOver())
	}
}

func TestTickWithoutDirectionIsNoop(t *testing.T) {
	g := newTestGrid(t, 5, 5, 12, 0)
	if got := g.Tick(); got != Idle {
		t.Errorf("Tick() = %v, want Idle", got)
	}
	if g.Head() != 12 || g.OccupiedCount() != 0 {
		t.Errorf("grid changed: head=%d occupied=%d", g.Head(), g.OccupiedCount())
	}
}

func TestMoveRightTwice(t *testing.T) {
	g := newTestGrid(t, 5, 5, 12, 0)
	g.SetDirection(types.Right)

	for i := 0; i < 2; i++ {
		if got := g.Tick(); got != Moved {
			t.Fatalf("tick %d = %v, want Moved", i, got)
		}
	}

	if g.Head() != 14 || g.GameOver() {
		t.Errorf("head=%d over=%v, want 14 false", g.Head(), g.GameOver())
	}
	if g.OccupiedCount() != 1 || !g.CellAt(14).IsOccupied() {
		t.Errorf("occupied=%d, want only the head cell", g.OccupiedCount())
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name string
		head int
		dir  types.Direction
	}{
		{"left from column 0", 10, types.Left},
		{"right from last column", 14, types.Right},
		{"up from row 0", 2, types.Up},
		{"down from last row", 22, types.Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, 5, 5, tt.head, 0)
			g.SetDirection(tt.dir)

			if got := g.Tick(); got != HitWall {
				t.Errorf("Tick() = %v, want HitWall", got)
			}
			if !g.GameOver() || g.Head() != tt.head {
				t.Errorf("over=%v head=%d, want true %d", g.GameOver(), g.Head(), tt.head)
			}
			if got := g.Tick(); got != Idle {
				t.Errorf("tick after game over = %v, want Idle", got)
			}
		})
	}
}

func TestEatingGrowsAndPlacesApple(t *testing.T) {
	g := newTestGrid(t, 5, 5, 12, 13, 0)
	g.SetDirection(types.Right)

	if got := g.Tick(); got != Ate {
		t.Fatalf("Tick() = %v, want Ate", got)
	}
	if g.SnakeLength() != 2 {
		t.Errorf("length = %d, want 2", g.SnakeLength())
	}
	if apple, ok := g.Apple(); !ok || apple != 0 {
		t.Errorf("new apple = %d, %v, want 0", apple, ok)
	}
	if g.OccupiedCount() != 2 {
		t.Errorf("occupied = %d, want 2 (start cell kept as tail)", g.OccupiedCount())
	}

	g.Tick()
	if g.Head() != 14 || g.OccupiedCount() != 2 || g.CellAt(12).IsOccupied() {
		t.Errorf("after second tick head=%d occupied=%d", g.Head(), g.OccupiedCount())
	}
}

func TestEatingWhileTailIsVacating(t *testing.T) {
	// Row 2 of a 5x5 grid: tail 10 (life 1), head 11 (life 2), apple at 12.
	g := newTestGrid(t, 5, 5, 11, 12, 0)
	setBody(g, 11, 2, []int{10, 11}, []uint{1, 2})
	g.SetDirection(types.Right)

	if got := g.Tick(); got != Ate {
		t.Fatalf("Tick() = %v, want Ate", got)
	}
	if !g.CellAt(10).IsOccupied() || g.CellAt(10).RemainingLife != 1 {
		t.Errorf("tail cell = %+v, want still occupied with life 1", g.CellAt(10))
	}
	if g.SnakeLength() != 3 || g.OccupiedCount() != 3 {
		t.Errorf("length=%d occupied=%d, want 3 3", g.SnakeLength(), g.OccupiedCount())
	}
	if g.CellAt(12).RemainingLife != 3 {
		t.Errorf("new head life = %d, want 3", g.CellAt(12).RemainingLife)
	}

	// Without the bite the tail would now be gone: one more plain move frees it.
	g.Tick()
	if g.CellAt(10).IsOccupied() || g.OccupiedCount() != 3 {
		t.Errorf("after next tick tail=%+v occupied=%d", g.CellAt(10), g.OccupiedCount())
	}
}

func TestSelfCollision(t *testing.T) {
	// Body in a hook: 5(1) 6(2) 7(3) 12(4) 11(5), head at 11 moving up into 6.
	g := newTestGrid(t, 5, 5, 11, 24)
	setBody(g, 11, 5, []int{5, 6, 7, 12, 11}, []uint{1, 2, 3, 4, 5})
	g.SetDirection(types.Up)

	if got := g.Tick(); got != HitSelf {
		t.Fatalf("Tick() = %v, want HitSelf", got)
	}
	if !g.GameOver() || g.Head() != 11 {
		t.Errorf("over=%v head=%d, want true 11", g.GameOver(), g.Head())
	}
}

func TestMovingIntoVacatingTailIsLegal(t *testing.T) {
	// A 2x2 loop: tail 6 (life 1) is left this very tick.
	g := newTestGrid(t, 5, 5, 11, 24)
	setBody(g, 11, 4, []int{6, 7, 12, 11}, []uint{1, 2, 3, 4})
	g.SetDirection(types.Up)

	if got := g.Tick(); got != Moved {
		t.Fatalf("Tick() = %v, want Moved", got)
	}
	if g.GameOver() || g.Head() != 6 || g.OccupiedCount() != 4 {
		t.Errorf("over=%v head=%d occupied=%d", g.GameOver(), g.Head(), g.OccupiedCount())
	}
}

func TestFillingTheGridRemovesTheApple(t *testing.T) {
	g := newTestGrid(t, 2, 1, 0, 1)
	g.SetDirection(types.Right)

	if got := g.Tick(); got != Ate {
		t.Fatalf("Tick() = %v, want Ate", got)
	}
	if _, ok := g.Apple(); ok || countApples(g) != 0 {
		t.Error("full grid still has an apple")
	}
	if g.SnakeLength() != 2 || g.OccupiedCount() != 2 {
		t.Errorf("length=%d occupied=%d", g.SnakeLength(), g.OccupiedCount())
	}
}

func TestRowAsText(t *testing.T) {
	g := newTestGrid(t, 3, 2, 1, 5)

	tests := []struct {
		row    int
		want   string
		wantOK bool
	}{
		{0, ".@.", true},
		{1, "..*", true},
		{2, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		got, ok := g.RowAsText(tt.row)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("RowAsText(%d) = %q, %v, want %q, %v", tt.row, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRowAsTextHeadOverridesCell(t *testing.T) {
	g := newTestGrid(t, 3, 1, 0, 2)
	g.SetDirection(types.Right)
	g.Tick()

	if got, _ := g.RowAsText(0); got != ".@*" {
		t.Errorf("row = %q, want .@*", got)
	}
	if !g.CellAt(1).IsOccupied() {
		t.Error("head cell should be marked occupied after a move")
	}
}

func TestDefaultGlyphs(t *testing.T) {
	g, err := NewGrid(2, 1, &seqRand{vals: []int{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if got := g.String(); got != "██◀▶" {
		t.Errorf("String() = %q", got)
	}
}

// Random play must keep the body count equal to the length and at most one
// apple on the board, with none once it is full.
func TestRandomPlayKeepsBodyConsistent(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, err := NewGrid(6, 5, rng)
		if err != nil {
			t.Fatal(err)
		}

		for tick := 0; tick < 500 && !g.GameOver(); tick++ {
			dir := types.Directions[rng.Intn(len(types.Directions))]
			if types.IsOpposite(dir, g.Direction()) && g.SnakeLength() > 1 {
				dir = g.Direction()
			}
			g.SetDirection(dir)
			g.Tick()

			apples := countApples(g)
			if g.SnakeLength() < g.Size() && apples != 1 {
				t.Fatalf("seed %d tick %d: %d apples with length %d", seed, tick, apples, g.SnakeLength())
			}
			if g.SnakeLength() == g.Size() && apples != 0 {
				t.Fatalf("seed %d tick %d: apple on a full grid", seed, tick)
			}
			if !g.GameOver() && g.OccupiedCount() != g.SnakeLength() {
				t.Fatalf("seed %d tick %d: occupied=%d length=%d", seed, tick, g.OccupiedCount(), g.SnakeLength())
			}
		}
	}
}
