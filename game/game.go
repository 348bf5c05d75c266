package game

import (
	"errors"
	"fmt"
	"strings"

	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"
)

// ErrInvalidDimensions is returned by NewGrid for a non-positive width or height.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Outcome describes what a call to Tick did.
type Outcome int

const (
	Idle Outcome = iota // direction None or game already over
	Moved
	Ate
	HitWall
	HitSelf
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case HitWall:
		return "hit_wall"
	case HitSelf:
		return "hit_self"
	default:
		return "idle"
	}
}

// Grid is the whole game state. The snake has no body list: every cell the
// snake covers is Occupied with a life equal to the number of ticks until
// the tail leaves it. The head position is tracked separately and is not
// written into the cell array until the first move.
type Grid struct {
	dims        types.Grid
	cells       []entity.Cell
	head        int
	direction   types.Direction
	snakeLength int
	gameOver    bool
	apple       int

	glyphs    types.Glyphs
	collision *manager.CollisionManager
	food      *manager.FoodManager
}

// Option customizes a Grid at construction.
type Option func(*Grid)

// WithGlyphs sets the text used by RowAsText.
func WithGlyphs(g types.Glyphs) Option {
	return func(grid *Grid) {
		grid.glyphs = g
	}
}

// NewGrid creates a width x height grid with the head at a uniformly random
// cell, no direction yet, length 1 and one apple.
func NewGrid(width, height int, rng types.RandSource, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	dims := types.Grid{Width: width, Height: height}
	cells := make([]entity.Cell, dims.Size())
	for i := range cells {
		cells[i] = entity.NewCell()
	}

	g := &Grid{
		dims:        dims,
		cells:       cells,
		head:        rng.Intn(dims.Size()),
		direction:   types.None,
		snakeLength: 1,
		apple:       -1,
		glyphs:      types.DefaultGlyphs,
		collision:   manager.NewCollisionManager(dims),
		food:        manager.NewFoodManager(rng),
	}
	for _, opt := range opts {
		opt(g)
	}

	// A 1x1 grid is already full with the head alone.
	if g.snakeLength < dims.Size() {
		if err := g.PlaceApple(); err != nil {
			return nil, fmt.Errorf("new grid: %w", err)
		}
	}

	return g, nil
}

// PlaceApple puts an apple on a random empty cell. The caller must not call
// it on a full grid; doing so returns manager.ErrGridFull.
func (g *Grid) PlaceApple() error {
	idx, err := g.food.PlaceApple(g.cells)
	if err != nil {
		return err
	}
	g.apple = idx
	return nil
}

// Tick advances the snake one cell in the current direction.
func (g *Grid) Tick() Outcome {
	if g.direction == types.None || g.gameOver {
		return Idle
	}

	candidate, ok := g.collision.Step(g.head, g.direction)
	if !ok {
		g.gameOver = true
		return HitWall
	}

	outcome := Moved
	if g.collision.IsFoodCollision(g.cells, candidate) {
		outcome = Ate
		g.snakeLength++
		g.apple = -1

		// The starting cell is never written by a move. On an opening
		// bite it has to stay behind as the tail.
		if !g.cells[g.head].IsOccupied() {
			g.cells[g.head].Occupy(types.Occupied, 1)
		}

		// Give every body segment one extra tick so the decay below
		// leaves the tail where it is.
		for i := range g.cells {
			g.cells[i].Extend()
		}

		if g.snakeLength < g.dims.Size() {
			if err := g.PlaceApple(); err != nil {
				panic(fmt.Sprintf("game: apple placement with %d of %d cells used: %v",
					g.snakeLength, g.dims.Size(), err))
			}
		}
	}

	for i := range g.cells {
		g.cells[i].Decay()
	}

	// Checked after decay: the cell the tail just left is free to enter.
	if g.collision.IsBody(g.cells, candidate) {
		g.gameOver = true
		return HitSelf
	}

	g.head = candidate
	g.cells[candidate].Occupy(types.Occupied, uint(g.snakeLength))
	return outcome
}

// RowAsText renders one row left to right. The head glyph always wins over
// whatever the head's cell holds. ok is false when row is outside the grid.
func (g *Grid) RowAsText(row int) (text string, ok bool) {
	if row < 0 || row >= g.dims.Height {
		return "", false
	}

	var sb strings.Builder
	start := row * g.dims.Width
	for col := 0; col < g.dims.Width; col++ {
		idx := start + col
		if idx == g.head {
			sb.WriteString(g.glyphs.Head)
			continue
		}
		sb.WriteString(g.glyphs.For(g.cells[idx].Occupancy))
	}
	return sb.String(), true
}

// String renders every row, one per line.
func (g *Grid) String() string {
	rows := make([]string, 0, g.dims.Height)
	for row := 0; ; row++ {
		line, ok := g.RowAsText(row)
		if !ok {
			break
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (g *Grid) Width() int  { return g.dims.Width }
func (g *Grid) Height() int { return g.dims.Height }

// Size is the number of cells, which is also the maximum snake length.
func (g *Grid) Size() int { return g.dims.Size() }

func (g *Grid) Dims() types.Grid { return g.dims }

func (g *Grid) Head() int { return g.head }

func (g *Grid) HeadPoint() types.Point { return g.dims.PointOf(g.head) }

func (g *Grid) Direction() types.Direction { return g.direction }

// SetDirection sets the direction used by the next Tick. Reversal filtering
// is the caller's job.
func (g *Grid) SetDirection(d types.Direction) { g.direction = d }

func (g *Grid) SnakeLength() int { return g.snakeLength }

func (g *Grid) GameOver() bool { return g.gameOver }

// CellAt returns a copy of the cell at index.
func (g *Grid) CellAt(index int) entity.Cell { return g.cells[index] }

// Apple returns the apple's index, or false once the grid is full.
func (g *Grid) Apple() (int, bool) {
	if g.apple < 0 {
		return -1, false
	}
	return g.apple, true
}

// OccupiedCount counts the body cells currently in the array.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.IsOccupied() {
			n++
		}
	}
	return n
}
