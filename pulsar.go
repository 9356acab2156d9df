// Package pulsar is the public surface of the reactivity kernel: signals,
// memos, effects, batching, ownership and the frame scheduler (spec §4.A-D,
// §6). It is a thin generic façade over internal's untyped push-pull graph,
// the same split the teacher keeps between its root package and internal/.
package pulsar

import "github.com/binaryjack/pulsar/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// SignalOptions configures CreateSignal/CreateMemo's optional {equals}
// (spec §6: "createSignal(initial, opts?)").
type SignalOptions[T any] struct {
	Equals func(a, b T) bool
}

func wrapEquals[T any](eq func(a, b T) bool) func(a, b any) bool {
	if eq == nil {
		return nil
	}
	return func(a, b any) bool { return eq(as[T](a), as[T](b)) }
}

func firstOpt[T any](opts []SignalOptions[T]) SignalOptions[T] {
	var o SignalOptions[T]
	if len(opts) > 0 {
		o = opts[0]
	}
	return o
}

// CreateSignal creates a reactive cell and returns a (read, write) pair
// (spec §4.A, §6). read() enlists the currently-running computation as a
// subscriber; write(v) is a no-op when opts.Equals reports no change. The
// default equality is == for comparable values; slices, maps and funcs are
// compared with reflect.DeepEqual, so a distinct slice with equal contents
// counts as unchanged. A functional update is expressed as
// write(fn(read())) — Go's generics don't admit the JS "value or updater"
// union on a single typed parameter.
func CreateSignal[T any](initial T, opts ...SignalOptions[T]) (read func() T, write func(T)) {
	o := firstOpt(opts)
	s := internal.GetRuntime().NewSignalWithEquals(initial, wrapEquals(o.Equals))

	return func() T { return as[T](s.Read()) }, func(v T) { s.Write(v) }
}

// CreateMemo creates a derived signal whose value is recomputed from fn's
// dependencies (spec §4.A-B: "a signal whose value is the last return").
func CreateMemo[T any](fn func() T, opts ...SignalOptions[T]) (read func() T) {
	o := firstOpt(opts)
	eq := wrapEquals(o.Equals)

	var c *internal.Computed
	if eq != nil {
		c = internal.GetRuntime().NewComputedWithEquals(func(*internal.Computed) any { return fn() }, eq)
	} else {
		c = internal.GetRuntime().NewComputed(func(*internal.Computed) any { return fn() })
	}

	return func() T { return as[T](c.Signal.Read()) }
}

// CreateEffect runs fn immediately and re-runs it whenever a signal it read
// during its last run changes; the returned disposer permanently stops it
// (spec §4.B, §6).
func CreateEffect(fn func()) (dispose func()) {
	e := internal.GetRuntime().NewEffect(internal.EffectUser, fn)
	return e.Dispose
}

// CreateWireEffect is CreateEffect's internal counterpart for the dom
// package's binding layer: it stages fn in the EffectWire pass, so every
// wire settles before any EffectUser body runs and observes the tree (spec
// §4.G, §6; internal.Runtime.Flush runs EffectWire before EffectUser). Not
// part of the public signal/memo/effect surface — dom.WireNode is its only
// caller.
func CreateWireEffect(fn func()) (dispose func()) {
	e := internal.GetRuntime().NewEffect(internal.EffectWire, fn)
	return e.Dispose
}

// Batch runs fn with subscriber re-runs deferred: each write inside fn stores
// its value at once, and every affected computation re-runs at most once,
// after the outermost Batch returns (spec §4.D, §6).
func Batch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// Untrack runs fn without registering any signal it reads as a dependency
// of the currently-running computation (spec §6).
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// OnMount runs cb once, as an untracked effect of the current owner, so no
// signal it reads makes it run again (spec §6). Effects run on creation, so
// cb runs during the OnMount call itself: after the effects created before
// it, but not after effects created later in the component, and without
// waiting for the component's node to be attached to the document.
func OnMount(cb func()) {
	CreateEffect(func() {
		internal.GetRuntime().Untrack(cb)
	})
}

// OnCleanup appends cb to the current owner's cleanup list; run when that
// owner is disposed (spec §4.C, §6). With no active owner, cb is discarded
// and never runs.
func OnCleanup(cb func()) {
	internal.GetRuntime().OnCleanup(cb)
}

// SetFlushHook installs a callback run once after each completed batch
// flush (nil clears it). Used by dom.Instrumentation (SPEC_FULL.md §4.O) so
// the kernel itself carries no dependency on a metrics library.
func SetFlushHook(fn func()) {
	internal.GetRuntime().SetFlushHook(fn)
}

// ScheduleFrame upserts task under key in the per-frame coalescing queue;
// scheduling the same key again before a flush replaces the task (spec
// §4.D, §6).
func ScheduleFrame(key string, task func()) {
	internal.GetRuntime().ScheduleFrame(key, task)
}

// FlushFrames runs every pending frame task once, in key-insertion order,
// and returns how many ran (spec §4.D, §6).
func FlushFrames() int {
	return internal.GetRuntime().FlushFrames()
}

// Owner is a disposal scope: nested CreateEffect/CreateMemo calls and
// onCleanup registrations made while it is current become its children,
// torn down together when it is disposed (spec §4.C).
type Owner struct {
	o *internal.Owner
}

// NewOwner creates a fresh owner. If a computation is currently running, the
// new owner becomes its child and is disposed along with it.
func NewOwner() *Owner {
	return &Owner{internal.GetRuntime().NewOwner()}
}

// GetOwner exposes the current owner so a deferred callback (e.g. a promise
// continuation) can re-enter the same ownership scope later (spec §4.C).
func GetOwner() *Owner {
	o := internal.GetRuntime().CurrentOwner()
	if o == nil {
		return nil
	}
	return &Owner{o}
}

// RunWithOwner sets owner as current for the duration of fn, restoring the
// previous owner on return (spec §4.C).
func RunWithOwner(owner *Owner, fn func()) {
	if owner == nil {
		fn()
		return
	}
	owner.o.Run(fn)
}

// Dispose tears down owner's current child scope permanently: cleanups run,
// children are disposed, and it is removed from the dirty heap/frame queue.
func (o *Owner) Dispose() {
	o.o.DisposePermanent()
}

// OnCleanup appends cb to this owner's cleanup list.
func (o *Owner) OnCleanup(cb func()) {
	o.o.OnCleanup(cb)
}

// OnError registers a panic catcher; a synchronous panic unwinding through
// this owner's Run is routed to every registered catcher instead of the
// process default.
func (o *Owner) OnError(fn func(any)) {
	o.o.OnError(fn)
}

// Run invokes fn with this owner current.
func (o *Owner) Run(fn func()) {
	o.o.Run(fn)
}

// Internal exposes the underlying *internal.Owner for callers that need the
// kernel's concrete owner type.
func (o *Owner) Internal() *internal.Owner {
	return o.o
}
