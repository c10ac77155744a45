package render

import (
	"fmt"

	"github.com/lixenwraith/glyph-rain/rain"
)

// Sink is the physical display the compositor writes patches to. Writes are
// issued once per patch entry; Flush presents the completed frame.
type Sink interface {
	ClearAll() error
	WriteCell(x, y int, r rune, c rain.Color) error
	Flush() error
}

// Compositor owns the current/next viewport pair and is the sole writer to
// either. Each refresh resolves the stack field into the next frame, sends
// the minimal diff to the sink, and rotates the buffers.
type Compositor struct {
	current *Viewport
	next    *Viewport
	sink    Sink
}

// NewCompositor creates a compositor with two blank buffers.
func NewCompositor(width, height int, sink Sink) *Compositor {
	return &Compositor{
		current: NewViewport(width, height),
		next:    NewViewport(width, height),
		sink:    sink,
	}
}

// Refresh composes one consistent frame from the stack states and pushes the
// changes to the sink. An unchanged frame performs no sink I/O at all.
func (c *Compositor) Refresh(stacks []*rain.GlyphStack) error {
	c.next.RenderStacks(stacks)

	patch := Diff(c.current, c.next)
	if len(patch) > 0 {
		for _, p := range patch {
			if err := c.sink.WriteCell(p.X, p.Y, p.Cell.Rune, p.Cell.Color); err != nil {
				return fmt.Errorf("write cell (%d,%d): %w", p.X, p.Y, err)
			}
		}
		if err := c.sink.Flush(); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}
	}

	c.current, c.next = c.next, c.current
	return nil
}

// Wipe blanks both buffers and the physical display. Issued once on
// shutdown; diffing against the terminal state is not needed, a full clear
// command goes out directly.
func (c *Compositor) Wipe() error {
	c.current.Clear()
	c.next.Clear()
	if err := c.sink.ClearAll(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}
	return c.sink.Flush()
}
