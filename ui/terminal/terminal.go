// Package terminal is the text frontend: it prints Grid.RowAsText rows with
// tcell and reads the keyboard.
package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game/session"
	"gridsnake/game/types"
)

// UI draws the grid as text rows with tcell and paces the session with a
// ticker.
type UI struct {
	screen   tcell.Screen
	style    tcell.Style
	interval time.Duration
}

// New takes over the terminal. Call Run, which restores it on exit.
func New(interval time.Duration) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return newUI(screen, interval)
}

func newUI(screen tcell.Screen, interval time.Duration) (*UI, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	style := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorGreen)
	screen.SetStyle(style)
	screen.HideCursor()

	return &UI{
		screen:   screen,
		style:    style,
		interval: interval,
	}, nil
}

// KeyDirection maps arrow keys, hjkl and wasd to directions.
func KeyDirection(key tcell.Key, r rune) (types.Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return types.Up, true
	case tcell.KeyDown:
		return types.Down, true
	case tcell.KeyLeft:
		return types.Left, true
	case tcell.KeyRight:
		return types.Right, true
	case tcell.KeyRune:
		switch r {
		case 'k', 'w':
			return types.Up, true
		case 'j', 's':
			return types.Down, true
		case 'h', 'a':
			return types.Left, true
		case 'l', 'd':
			return types.Right, true
		}
	}
	return types.None, false
}

// Run loops until Esc or q is pressed.
func (t *UI) Run(s *session.Session) error {
	defer t.screen.Fini()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.Draw(s)
	for {
		select {
		case <-ticker.C:
			s.Step()
			t.Draw(s)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.screen.Sync()
				t.Draw(s)
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || isRune(ev, 'q') {
					return nil
				}
				if isRune(ev, 'r') {
					if err := s.Restart(); err != nil {
						return err
					}
					t.Draw(s)
					continue
				}
				if dir, ok := KeyDirection(ev.Key(), ev.Rune()); ok {
					s.Steer(dir)
				}
			}
		}
	}
}

// Draw renders the grid rows, the score and the help line.
func (t *UI) Draw(s *session.Session) {
	t.screen.Clear()
	g := s.Grid()

	row := 0
	for {
		line, ok := g.RowAsText(row)
		if !ok {
			break
		}
		t.print(0, row, line)
		row++
	}

	// Glyphs are two columns wide.
	panelX := g.Width()*2 + 3
	t.print(panelX, 1, fmt.Sprintf("Length: %d", g.SnakeLength()))
	t.print(panelX, 2, fmt.Sprintf("Game: %d", s.Games()))
	if s.Autopilot() {
		t.print(panelX, 3, "Autopilot")
	}
	if g.GameOver() {
		t.print(panelX, 5, "GAME OVER!")
		t.print(panelX, 6, fmt.Sprintf("Score: %d", g.SnakeLength()))
	}

	t.print(0, row+1, "Arrows/hjkl to steer, 'r' to restart, 'Esc' to exit...")
	t.screen.Show()
}

func isRune(ev *tcell.EventKey, r rune) bool {
	return ev.Key() == tcell.KeyRune && ev.Rune() == r
}

func (t *UI) print(x, y int, text string) {
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, t.style)
		x++
	}
}
