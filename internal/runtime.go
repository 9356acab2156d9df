package internal

// Runtime bundles one execution context's dirty heap, scheduler, batcher,
// tracker and effect queue. The browser build keeps exactly one Runtime
// (runtime_wasm.go); the native build keys one per goroutine
// (runtime_default.go) so package tests can run in parallel without
// cross-talk.
type Runtime struct {
	heap        *PriorityHeap
	tracker     *Tracker
	batcher     *Batcher
	scheduler   *Scheduler
	effectQueue *EffectQueue
	frameQueue  *FrameQueue

	// onFlush, if set, runs once after each completed Flush; used by the
	// dom package's optional instrumentation hook (SPEC_FULL.md §4.O) to
	// count flush cycles without the kernel importing prometheus itself.
	onFlush func()
}

// SetFlushHook installs (or clears, with nil) the post-flush callback.
func (r *Runtime) SetFlushHook(fn func()) {
	r.onFlush = fn
}

func NewRuntime() *Runtime {
	return &Runtime{
		heap:        NewHeap(),
		tracker:     NewTracker(),
		batcher:     NewBatcher(),
		scheduler:   NewScheduler(),
		effectQueue: NewEffectQueue(),
		frameQueue:  NewFrameQueue(),
	}
}

func (r *Runtime) Schedule() {
	r.scheduler.Schedule()

	if !r.batcher.IsBatching() {
		r.Flush()
	}
}

// Flush drains the dirty heap in height order, recomputing every signal and
// memo in topological order, then runs the staged effect passes: wire
// effects (internal DOM writes) settle before user-authored effects observe
// the tree.
func (r *Runtime) Flush() {
	r.scheduler.Run(func() {
		r.heap.Drain(r.recompute)

		r.effectQueue.RunEffects(EffectWire)
		r.effectQueue.RunEffects(EffectUser)
	})

	if r.onFlush != nil {
		r.onFlush()
	}
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) CurrentComputation() *Computed {
	return r.tracker.CurrentComputation()
}

func (r *Runtime) OnCleanup(fn func()) {
	if owner := r.CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// Untrack runs fn without enlisting the currently-running computation as a
// subscriber of any signal it reads (spec §6 untrack).
func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// recompute is the dirty-heap's process function. It detaches the node from
// its previously-read signals, tears down the child scope (nested owners,
// cleanups) left over from the last run, then runs the body under this node
// as current owner/computation. Plain signals and memos run inline so their
// new value is visible to the rest of this same drain pass; effects defer
// the same sequence through the effect queue so they run in two settled
// stages after the whole graph has stabilized.
func (r *Runtime) recompute(node *Computed) {
	run := func() {
		node.ClearDeps()
		node.Dispose()

		r.tracker.RunWithComputation(node, node.fn)

		r.heap.InsertAll(node.Subs())
	}

	if node.effectType != nil {
		r.effectQueue.Enqueue(*node.effectType, run)
		return
	}

	run()
}
