package rain

// Color is the rendered tint of a single glyph.
type Color uint8

const (
	White Color = iota
	LightGreen
	DarkGreen
)

// Katakana block used by the classic rain effect, inclusive bounds.
const (
	GlyphMin = 0x30A0
	GlyphMax = 0x30FF
)

// Glyph is one cell's logical content: a codepoint plus a color tag.
// Slots holding a Glyph are replaced by value, never partially mutated.
type Glyph struct {
	Value rune
	Color Color
}

// randomGlyph draws a uniformly random katakana codepoint, colored white.
func randomGlyph(rng *Rand) Glyph {
	return Glyph{Value: rune(rng.UniformInt(GlyphMin, GlyphMax)), Color: White}
}
