package internal

// EffectType distinguishes the two passes effects run in once a flush's
// height-ordered recompute settles: EffectWire (internal DOM writes driven
// by the binding layer) runs before EffectUser (user-authored createEffect
// bodies), so a user effect reading the DOM always sees it already settled.
type EffectType int

const (
	EffectWire EffectType = iota
	EffectUser
)

// Effect is a computation that runs purely for its side effects; its
// underlying signal's value is always nil and is never read.
type Effect struct {
	*Computed
}

// NewEffect creates an effect of the given type and runs its body once,
// synchronously. Unlike a plain Computed, an effect's later reruns don't
// run inline while the dirty heap drains — Runtime.
// recompute detects effectType and stages the run through the effect queue
// instead, so all effects of one type finish before the next type starts.
func (r *Runtime) NewEffect(typ EffectType, fn func()) *Effect {
	c := r.newComputed(func(*Computed) any {
		fn()
		return nil
	}, isEqual, &typ)

	return &Effect{Computed: c}
}

// Dispose permanently stops the effect: removed from the dirty heap, its
// last-run scope (nested owners, registered cleanups) torn down.
func (e *Effect) Dispose() {
	e.Computed.DisposePermanent()
}
