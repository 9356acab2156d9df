package internal

import "iter"

// Computed is a re-runnable unit: effects and memos share this shape (spec:
// "a re-runnable unit... two observable kinds share the shape"). A plain
// Computed recomputes inline during the dirty heap's drain; Effect sets
// effectType so Runtime.recompute stages its body through the effect queue
// instead.
type Computed struct {
	*Owner
	*Signal

	// running is true for the duration of compute(c); the dirty heap
	// consults it to suppress a self-triggered re-schedule when a
	// computation writes a signal it also reads (spec's re-entrancy rule).
	running bool

	// effectType is nil for a plain computed/memo (runs inline) and set for
	// an Effect (runs through the effect queue's two-stage pass).
	effectType *EffectType

	// fn is the trampoline the dirty heap invokes; always c.run.
	fn func()

	depsHead *DependencyLink

	compute func(*Computed) any
}

func (r *Runtime) NewComputed(compute func(*Computed) any) *Computed {
	return r.newComputed(compute, isEqual, nil)
}

// NewComputedWithEquals creates a computed (memo) using a caller-supplied
// equality check, grounding createMemo's {equals?} option.
func (r *Runtime) NewComputedWithEquals(compute func(*Computed) any, equals func(a, b any) bool) *Computed {
	return r.newComputed(compute, equals, nil)
}

func (r *Runtime) newComputed(compute func(*Computed) any, equals func(a, b any) bool, effectType *EffectType) *Computed {
	c := &Computed{
		Owner:      r.NewOwner(),
		Signal:     r.NewSignalWithEquals(nil, equals),
		compute:    compute,
		effectType: effectType,
	}
	c.fn = c.run

	c.onDisposePermanent(func() {
		if c.depsHead != nil || c.HasFlag(FlagInHeap) {
			r.heap.Remove(c)
			c.ClearDeps()
			c.SetFlags(FlagNone)
		}
	})

	if effectType != nil {
		// An effect's first run happens here, synchronously; only its
		// reruns are staged through the effect queue by recompute.
		r.tracker.RunWithComputation(c, c.fn)
	} else {
		r.recompute(c)
	}

	return c
}

// run executes the computation body. Runtime.recompute is responsible for
// clearing the previous run's deps/child scope before calling this, and for
// queueing subscribers in the dirty heap afterward — run only evaluates the
// body and commits the result when the signal's equality check reports a
// change.
func (c *Computed) run() {
	c.running = true
	value := c.compute(c)
	c.running = false

	if c.equals(c.Value(), value) {
		return
	}
	c.pendingValue = &value
	c.Commit()
}

// Link creates a bidirectional dependency link between this node (subcriber) and the given node (dependency).
func (c *Computed) Link(sub *Computed, dep *Signal) {
	// dont link if already present as the most recent dependency
	if sub.depsHead != nil {
		tail := sub.depsHead.prevDep
		if tail.dep == dep {
			return
		}
	}

	link := &DependencyLink{dep: dep, sub: sub}

	sub.addDepLink(link)
	dep.addSubLink(link)

	// Update subscriber height if needed
	if dep.height >= sub.height {
		sub.height = dep.height + 1
	}
}

// Deps returns an iterator over all dependencies
func (c *Computed) Deps() iter.Seq[*Signal] {
	return func(yield func(*Signal) bool) {
		link := c.depsHead
		for link != nil {
			if !yield(link.dep) {
				return
			}

			link = link.nextDep
		}
	}
}

// ClearDeps removes all dependencies
func (c *Computed) ClearDeps() {
	for link := c.depsHead; link != nil; {
		next := link.nextDep
		link.dep.removeSubLink(link)
		link = next
	}

	c.depsHead = nil
}

// MaxDepHeight returns the maximum height of the node's dependencies
func (c *Computed) MaxDepHeight() int {
	maxHeight := 0
	for dep := range c.Deps() {
		if dep.height >= maxHeight {
			maxHeight = dep.height + 1
		}
	}

	return maxHeight
}

func (c *Computed) addDepLink(link *DependencyLink) {
	if c.depsHead == nil {
		c.depsHead = link
		link.prevDep = link // loop to self
		link.nextDep = nil
	} else {
		tail := c.depsHead.prevDep
		tail.nextDep = link
		link.prevDep = tail
		link.nextDep = nil
		c.depsHead.prevDep = link
	}
}
