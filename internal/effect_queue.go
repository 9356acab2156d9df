package internal

// EffectQueue buffers effect bodies by stage during a flush so all effects
// of one type run before the next type starts, decoupling "marked dirty"
// (discovered while draining the height-ordered heap) from "body executed".
type EffectQueue struct {
	effects map[EffectType][]func()
}

func NewEffectQueue() *EffectQueue {
	return &EffectQueue{
		effects: make(map[EffectType][]func()),
	}
}

func (q *EffectQueue) Enqueue(typ EffectType, fn func()) {
	q.effects[typ] = append(q.effects[typ], fn)
}

// RunEffects runs and clears every effect queued for typ. Running an effect
// can itself enqueue more of the same type (e.g. a wire effect whose write
// triggers another wire), so this drains until the type's queue is empty
// rather than taking one fixed-length pass.
func (q *EffectQueue) RunEffects(typ EffectType) {
	for len(q.effects[typ]) > 0 {
		pending := q.effects[typ]
		q.effects[typ] = nil

		for _, fn := range pending {
			fn()
		}
	}
}

func (q *EffectQueue) ClearEffects() {
	q.effects = make(map[EffectType][]func())
}
