package rain

import "time"

// FieldOptions are the per-field tunables supplied at startup.
type FieldOptions struct {
	// SpawnChance is the Bernoulli probability of creating a new stack on
	// each simulation tick.
	SpawnChance float64

	// MinGlyphInterval and MaxGlyphInterval bound the per-stack tick cadence.
	MinGlyphInterval time.Duration
	MaxGlyphInterval time.Duration

	// OnSpawn, when set, is invoked after each successful spawn.
	OnSpawn func()
}

// StackField owns every live stack: spawn timing and placement, per-stack
// ticks, and pruning of stacks that fell off the bottom. It is not safe for
// concurrent use; the scheduler confines all calls to one goroutine.
type StackField struct {
	width  int
	height int
	opts   FieldOptions
	rng    *Rand

	stacks []*GlyphStack
}

// NewStackField creates an empty field for a width x height viewport.
func NewStackField(width, height int, opts FieldOptions, rng *Rand) *StackField {
	return &StackField{
		width:  width,
		height: height,
		opts:   opts,
		rng:    rng,
	}
}

// Tick runs one simulation step: a spawn decision, then every due stack's
// update, then removal of expired stacks. Removal happens strictly after the
// tick pass so no stack skips its final frame.
func (f *StackField) Tick(now time.Time) {
	f.maybeSpawn(now)

	for _, s := range f.stacks {
		if s.Due(now) {
			s.Tick(now, f.rng)
		}
	}

	live := f.stacks[:0]
	for _, s := range f.stacks {
		if !s.Expired(f.height) {
			live = append(live, s)
		}
	}
	for i := len(live); i < len(f.stacks); i++ {
		f.stacks[i] = nil
	}
	f.stacks = live
}

func (f *StackField) maybeSpawn(now time.Time) {
	if !f.rng.Bernoulli(f.opts.SpawnChance) {
		return
	}
	x := f.rng.UniformInt(0, f.width-1)
	f.stacks = append(f.stacks, SpawnStack(x, f.height, f.opts.MinGlyphInterval, f.opts.MaxGlyphInterval, f.rng, now))
	if f.opts.OnSpawn != nil {
		f.opts.OnSpawn()
	}
}

// Stacks returns the live set. The slice is owned by the field and only
// valid until the next Tick.
func (f *StackField) Stacks() []*GlyphStack {
	return f.stacks
}

// Len returns the number of live stacks.
func (f *StackField) Len() int {
	return len(f.stacks)
}
