package internal

// Batcher implements spec §4.D's batch primitive: while depth > 0, signal
// writes still mark the scheduler dirty but Runtime.Schedule skips the
// immediate Flush, so every write inside the outermost Batch call settles
// in a single recompute pass instead of one per write.
type Batcher struct {
	// depth counts nested Batch calls; only the outermost call's completion
	// triggers onComplete.
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

// IsBatching reports whether a Batch call is currently on the stack.
func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Batch runs fn with depth incremented, then, once the outermost Batch call
// returns, invokes onComplete exactly once.
func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// NewBatch is pulsar.Batch's runtime entry point: fn runs batched, then a
// single Flush settles everything it touched (spec §4.D, §6).
func (r *Runtime) NewBatch(fn func()) {
	r.batcher.Batch(fn, r.Flush)
}
