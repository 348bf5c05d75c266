package types

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return g.Width * g.Height
}

// Index converts a column/row pair into a row-major cell index.
func (g Grid) Index(p Point) int {
	return p.Y*g.Width + p.X
}

// PointOf decomposes a row-major index into column (X) and row (Y).
func (g Grid) PointOf(index int) Point {
	return Point{X: index % g.Width, Y: index / g.Width}
}

// Point is a column/row position on the grid.
type Point struct {
	X, Y int
}

// Occupancy is the role a cell currently plays.
type Occupancy int

const (
	Empty Occupancy = iota
	Apple
	Occupied
)

func (o Occupancy) String() string {
	switch o {
	case Apple:
		return "apple"
	case Occupied:
		return "occupied"
	default:
		return "empty"
	}
}

// Direction represents a cardinal direction
type Direction int

const (
	None  Direction = iota // 0
	Up                     // 1
	Right                  // 2
	Down                   // 3
	Left                   // 4
)

// Directions lists the four movable directions in clockwise order.
var Directions = [4]Direction{Up, Right, Down, Left}

// ToPoint converts a Direction into a displacement vector
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 0, Y: 0}
	}
}

// Opposite returns the reverse of d. None has no opposite and maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// IsOpposite reports whether a and b point in reverse directions.
func IsOpposite(a, b Direction) bool {
	return a != None && a.Opposite() == b
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// Glyphs maps cell roles to the text printed for them by row rendering.
type Glyphs struct {
	Empty    string
	Apple    string
	Occupied string
	Head     string
}

// DefaultGlyphs are two columns wide so that cells look square in a terminal.
var DefaultGlyphs = Glyphs{
	Empty:    "░░",
	Apple:    "◀▶",
	Occupied: "▓▓",
	Head:     "██",
}

// For returns the glyph for an occupancy.
func (g Glyphs) For(o Occupancy) string {
	switch o {
	case Apple:
		return g.Apple
	case Occupied:
		return g.Occupied
	default:
		return g.Empty
	}
}

// RandSource draws uniform integers in [0, n). *rand.Rand from
// golang.org/x/exp/rand satisfies it; tests pass scripted sources.
type RandSource interface {
	Intn(n int) int
}
