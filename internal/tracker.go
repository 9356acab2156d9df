package internal

import (
	"sync"
)

// Tracker holds the "currently running" context a Signal.Read consults to
// decide whether to link itself as a dependency (spec §3 "Tracking
// context"): the active Owner for OnCleanup/OnError scoping, the active
// Computed for dependency linking, and a goroutine-id fence so a value
// leaked into a goroutine the runtime didn't start can't silently start
// tracking against the wrong computation.
type Tracker struct {
	mu sync.RWMutex

	tracking bool

	executingGID       int64     // to prevent cross-goroutine tracking issues
	currentOwner       *Owner    // for lifecycle/cleanup tracking
	currentComputation *Computed // for reactive dependency tracking
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

func (t *Tracker) IsTracking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tracking
}

func (t *Tracker) CurrentOwner() *Owner {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentOwner
}

func (t *Tracker) CurrentComputation() *Computed {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentComputation
}

// RunWithOwner runs fn with owner installed as the current owner, so any
// OnCleanup/OnError registered during fn scopes to owner (spec §4.C).
func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	defer owner.recover()

	t.mu.Lock()
	prev := t.currentOwner
	t.currentOwner = owner

	t.executingGID = getGID()
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.currentOwner = prev
		t.mu.Unlock()
	}()

	fn()
}

// RunWithComputation runs fn with node installed as both current owner and
// current computation, so any signal fn reads links itself to node (spec
// §3 "Tracking context") and any nested scope it opens is a child of node.
func (t *Tracker) RunWithComputation(node *Computed, fn func()) {
	defer node.recover()

	t.mu.Lock()
	prevOwner := t.currentOwner
	prevComputation := t.currentComputation

	t.currentOwner = node.Owner
	t.currentComputation = node

	t.executingGID = getGID()
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.currentOwner = prevOwner
		t.currentComputation = prevComputation
		t.mu.Unlock()
	}()

	fn()
}

// RunUntracked runs fn with tracking suspended, so any signal it reads is
// not linked as a dependency of the currently running computation (spec §6
// untrack).
func (t *Tracker) RunUntracked(fn func()) {
	t.mu.Lock()
	prev := t.tracking
	t.tracking = false
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.tracking = prev
		t.mu.Unlock()
	}()

	fn()
}

// Track links node as a dependency of the current computation if tracking
// is active, a computation is running, and the caller is on the goroutine that
// started it (spec §3 dependency linking, guarded against cross-goroutine
// leakage).
func (t *Tracker) Track(node *Signal) {
	t.mu.RLock()
	shouldTrack := t.shouldTrack(node)
	comp := t.currentComputation
	t.mu.RUnlock()

	if shouldTrack {
		comp.Link(comp, node)
	}
}

func (t *Tracker) shouldTrack(node *Signal) bool {
	callerGID := getGID()

	hasOwner := t.currentComputation != nil
	isTracking := t.tracking
	// make sure we're currently in the same goroutine as the computation
	// to avoid cross-goroutine tracking issues
	isSameGID := callerGID == t.executingGID

	return hasOwner && isTracking && isSameGID
}
