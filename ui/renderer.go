package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/game/session"
	"gridsnake/game/types"
)

const (
	borderPadding = 10 // Padding around game area
)

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	// Get window dimensions
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 5
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// RunWindow opens a raylib window and plays until it is closed (Esc) or q is
// pressed. The session is stepped every interval; the window redraws at fps.
func RunWindow(s *session.Session, width, height, fps int, interval time.Duration) error {
	rl.InitWindow(int32(width), int32(height), "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(fps))

	renderer := NewRenderer()
	lastUpdate := time.Now()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		if rl.IsKeyPressed(rl.KeyR) {
			if err := s.Restart(); err != nil {
				return err
			}
			lastUpdate = time.Now()
		}
		if dir, ok := pressedDirection(); ok {
			s.Steer(dir)
		}

		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		// Update game state at fixed interval
		if time.Since(lastUpdate) >= interval {
			s.Step()
			lastUpdate = time.Now()
		}

		renderer.Draw(s)
	}
	return nil
}

// pressedDirection returns the direction of the last steering key pressed
// this frame.
func pressedDirection() (types.Direction, bool) {
	keys := []struct {
		key int32
		dir types.Direction
	}{
		{rl.KeyUp, types.Up}, {rl.KeyW, types.Up}, {rl.KeyK, types.Up},
		{rl.KeyDown, types.Down}, {rl.KeyS, types.Down}, {rl.KeyJ, types.Down},
		{rl.KeyLeft, types.Left}, {rl.KeyA, types.Left}, {rl.KeyH, types.Left},
		{rl.KeyRight, types.Right}, {rl.KeyD, types.Right}, {rl.KeyL, types.Right},
	}

	dir, found := types.None, false
	for _, k := range keys {
		if rl.IsKeyPressed(k.key) {
			dir, found = k.dir, true
		}
	}
	return dir, found
}

func (r *Renderer) Draw(s *session.Session) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g := s.Grid()
	fontSize := min(r.screenHeight/35, r.statsPanel/10)
	lineHeight := fontSize + fontSize/2

	// Calculate cell size based on available space and grid dimensions
	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)
	cellW := availableWidth / int32(g.Width())
	cellH := availableHeight / int32(g.Height())
	r.cellSize = min(cellW, cellH)
	if r.cellSize < 1 {
		r.cellSize = 1
	}

	r.totalGridWidth = r.cellSize * int32(g.Width())
	r.totalGridHeight = r.cellSize * int32(g.Height())
	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	rl.DrawRectangle(
		r.offsetX-1,
		r.offsetY-1,
		r.totalGridWidth+2,
		r.totalGridHeight+2,
		rl.DarkGray)

	length := g.SnakeLength()
	for i := 0; i < g.Size(); i++ {
		cell := g.CellAt(i)
		p := g.Dims().PointOf(i)
		x := r.offsetX + int32(p.X)*r.cellSize
		y := r.offsetY + int32(p.Y)*r.cellSize

		switch {
		case cell.IsApple():
			rl.DrawRectangle(x, y, r.cellSize, r.cellSize, rl.Red)
		case cell.IsOccupied():
			// Fade from the head towards the tail.
			shade := uint8(80 + 175*int(cell.RemainingLife)/length)
			rl.DrawRectangle(x, y, r.cellSize, r.cellSize, rl.Color{R: 0, G: shade, B: 0, A: 255})
		default:
			rl.DrawRectangleLines(x, y, r.cellSize, r.cellSize, rl.Gray)
		}
	}

	r.drawHead(g.HeadPoint(), g.Direction())
	r.drawStatsPanel(s, fontSize, lineHeight)
	rl.EndDrawing()
}

// drawHead paints the head cell and a direction indicator.
func (r *Renderer) drawHead(head types.Point, direction types.Direction) {
	headX := r.offsetX + int32(head.X)*r.cellSize
	headY := r.offsetY + int32(head.Y)*r.cellSize
	halfCell := r.cellSize / 2

	rl.DrawRectangle(headX, headY, r.cellSize, r.cellSize, rl.Lime)

	switch direction {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Yellow)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Yellow)
	}
}

func (r *Renderer) drawStatsPanel(s *session.Session, fontSize, lineHeight int32) {
	g := s.Grid()
	statsX := r.gameWidth + 5 // Small gap from game area
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	lines := []string{
		fmt.Sprintf("Length: %d", g.SnakeLength()),
		fmt.Sprintf("Ticks: %d", s.Ticks()),
		fmt.Sprintf("Game: %d", s.Games()),
		fmt.Sprintf("Grid: %dx%d", g.Width(), g.Height()),
	}
	if s.Autopilot() {
		lines = append(lines, "Autopilot")
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	rl.DrawText("Arrows to steer", statsX, r.screenHeight-2*lineHeight, fontSize, rl.LightGray)
	rl.DrawText("R restart, Esc quit", statsX, r.screenHeight-lineHeight, fontSize, rl.LightGray)

	if g.GameOver() {
		gameOverText := fmt.Sprintf("Game Over! Score: %d", g.SnakeLength())
		textWidth := rl.MeasureText(gameOverText, fontSize*2)
		rl.DrawText(gameOverText,
			r.offsetX+(r.totalGridWidth-textWidth)/2,
			r.offsetY+r.totalGridHeight/2-fontSize,
			fontSize*2, rl.Yellow)
	}
}
