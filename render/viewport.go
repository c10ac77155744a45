package render

import (
	"sort"

	"github.com/lixenwraith/glyph-rain/rain"
)

// Cell is a single rendered viewport cell. The zero value is blank.
type Cell struct {
	Rune  rune
	Color rain.Color
}

// Blank reports whether the cell holds no glyph.
func (c Cell) Blank() bool {
	return c.Rune == 0
}

// Viewport is a fixed-size cell grid, row-major like the terminal itself.
// Two instances are live at once: the frame last flushed and the frame
// being assembled.
type Viewport struct {
	cells  []Cell
	width  int
	height int
}

// NewViewport creates an all-blank viewport with the given dimensions.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
}

// Size returns the viewport dimensions.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Clear resets every cell to blank.
func (v *Viewport) Clear() {
	for i := range v.cells {
		v.cells[i] = Cell{}
	}
}

func (v *Viewport) inBounds(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height
}

// Get returns the cell at (x, y), or a blank cell out of bounds.
func (v *Viewport) Get(x, y int) Cell {
	if !v.inBounds(x, y) {
		return Cell{}
	}
	return v.cells[y*v.width+x]
}

// Set writes the cell at (x, y). Out-of-bounds writes are silently dropped.
func (v *Viewport) Set(x, y int, c Cell) {
	if !v.inBounds(x, y) {
		return
	}
	v.cells[y*v.width+x] = c
}

// Clone returns an independent copy of the viewport.
func (v *Viewport) Clone() *Viewport {
	c := NewViewport(v.width, v.height)
	copy(c.cells, v.cells)
	return c
}

// CellPatch is one changed cell between two viewport snapshots. A blank cell
// means the position was cleared.
type CellPatch struct {
	X, Y int
	Cell Cell
}

// Diff returns the minimal patch transforming cur into next: one entry per
// cell whose content differs, nothing for cells identical in both.
func Diff(cur, next *Viewport) []CellPatch {
	var patch []CellPatch
	for y := 0; y < next.height; y++ {
		for x := 0; x < next.width; x++ {
			i := y*next.width + x
			if cur.cells[i] != next.cells[i] {
				patch = append(patch, CellPatch{X: x, Y: y, Cell: next.cells[i]})
			}
		}
	}
	return patch
}

// Apply writes a patch into the viewport.
func (v *Viewport) Apply(patch []CellPatch) {
	for _, p := range patch {
		v.Set(p.X, p.Y, p.Cell)
	}
}

// RenderStacks clears the viewport and paints the stacks into it. Stacks are
// painted in descending MinY order so the stack nearest the top lands last
// and wins where columns overlap. Glyph i of a stack maps to row MinY+i;
// rows outside the grid are skipped, not errors.
func (v *Viewport) RenderStacks(stacks []*rain.GlyphStack) {
	v.Clear()

	ordered := make([]*rain.GlyphStack, len(stacks))
	copy(ordered, stacks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinY > ordered[j].MinY
	})

	for _, s := range ordered {
		for i, g := range s.Glyphs {
			v.Set(s.X, s.MinY+i, Cell{Rune: g.Value, Color: g.Color})
		}
	}
}
