package terminal

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyph-rain/rain"
)

// styleFor maps the three-color glyph model to tcell styles.
func styleFor(c rain.Color) tcell.Style {
	switch c {
	case rain.LightGreen:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case rain.DarkGreen:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// Screen adapts a tcell.Screen to the compositor's sink contract and owns
// the input loop watching for the exit keys (Esc, q, Ctrl+C).
type Screen struct {
	screen tcell.Screen
	logger *log.Logger

	done     chan struct{}
	stopOnce sync.Once
}

// NewScreen initializes the physical terminal: raw mode, alternate buffer,
// hidden cursor.
func NewScreen(logger *log.Logger) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return newScreen(screen, logger), nil
}

// NewScreenFrom wraps an already-initialized tcell screen. Tests use it with
// tcell.NewSimulationScreen.
func NewScreenFrom(screen tcell.Screen, logger *log.Logger) *Screen {
	return newScreen(screen, logger)
}

func newScreen(screen tcell.Screen, logger *log.Logger) *Screen {
	return &Screen{
		screen: screen,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Size returns the terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// ClearAll blanks the whole display.
func (s *Screen) ClearAll() error {
	s.screen.Clear()
	return nil
}

// WriteCell places one glyph. Presentation is deferred until Flush.
func (s *Screen) WriteCell(x, y int, r rune, c rain.Color) error {
	s.screen.SetContent(x, y, r, nil, styleFor(c))
	return nil
}

// Flush presents all writes since the previous Flush.
func (s *Screen) Flush() error {
	s.screen.Show()
	return nil
}

// Watch polls terminal events until an exit key arrives or the screen is
// finalized, then closes the done channel. Run it on its own goroutine.
func (s *Screen) Watch() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			s.signalDone()
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				s.signalDone()
				return
			}
		case *tcell.EventResize:
			// Viewport dimensions are fixed for the process lifetime.
			w, h := ev.Size()
			s.logger.Debug("resize ignored", "width", w, "height", h)
		}
	}
}

// Done is closed once an exit key has been seen.
func (s *Screen) Done() <-chan struct{} {
	return s.done
}

func (s *Screen) signalDone() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Fini restores the terminal. Safe to call on any exit path.
func (s *Screen) Fini() {
	s.screen.Fini()
}
