package rain

import "time"

// mutationChance is the per-glyph probability of a codepoint swap each tick.
const mutationChance = 0.05

// GlyphStack is one falling column: an ordered glyph history (index 0 = tail,
// last index = head) plus position and timing state. The stack occupies
// viewport rows MinY..MaxY in its column; MaxY always tracks the head.
type GlyphStack struct {
	X          int
	MinY, MaxY int

	Glyphs []Glyph
	Length int

	UpdateInterval time.Duration
	LastUpdate     time.Time
}

// SpawnStack creates a stack at column x with a single white glyph on row 0.
// Length is uniform in [1, 3/4 of the viewport height]; the tick cadence is
// an independent uniform draw so columns fall at visibly different rates.
func SpawnStack(x, viewportHeight int, minInterval, maxInterval time.Duration, rng *Rand, now time.Time) *GlyphStack {
	maxLen := viewportHeight * 3 / 4
	if maxLen < 1 {
		maxLen = 1
	}
	return &GlyphStack{
		X:              x,
		Length:         rng.UniformInt(1, maxLen),
		Glyphs:         []Glyph{randomGlyph(rng)},
		UpdateInterval: time.Duration(rng.UniformInt(int(minInterval), int(maxInterval))),
		LastUpdate:     now,
	}
}

// Due reports whether enough time has passed for the next tick.
func (s *GlyphStack) Due(now time.Time) bool {
	return now.Sub(s.LastUpdate) >= s.UpdateInterval
}

// Tick advances the stack one step: a fresh white head is appended, the
// previous head fades to light green, the tail pops once the stack is full
// (sliding the whole column down one row), and the glyph nearest mid-stack
// darkens. Push happens before pop so the stack never holds fewer than one
// glyph.
func (s *GlyphStack) Tick(now time.Time, rng *Rand) {
	s.Glyphs = append(s.Glyphs, randomGlyph(rng))

	n := len(s.Glyphs)
	if n >= 2 {
		s.Glyphs[n-2].Color = LightGreen
	}

	if n > s.Length {
		copy(s.Glyphs, s.Glyphs[1:])
		n--
		s.Glyphs = s.Glyphs[:n]
		s.MinY++
	}

	// Middle measured from the head side so the freshly faded neighbor of
	// the head keeps its light green for at least one tick. Darkening is
	// monotone; a dark slot is never lightened here.
	if n > 2 {
		s.Glyphs[n-1-n/2].Color = DarkGreen
	}

	s.MaxY++

	// The head is excluded: it stays a fresh draw on the tick it appears.
	for i := 0; i < n-1; i++ {
		if rng.Bernoulli(mutationChance) {
			s.Glyphs[i].Value = rune(rng.UniformInt(GlyphMin, GlyphMax))
		}
	}

	s.LastUpdate = now
}

// Expired reports whether the stack has slid fully past the bottom edge.
func (s *GlyphStack) Expired(viewportHeight int) bool {
	return s.MinY > viewportHeight-1
}
