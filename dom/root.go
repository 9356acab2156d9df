//go:build js && wasm

package dom

import (
	"errors"
	"sync"
	"sync/atomic"
	"syscall/js"

	"github.com/binaryjack/pulsar"
	"github.com/prometheus/client_golang/prometheus"
)

// rootConfig is assembled by the bootstrapApp()...Build() chain and by
// Pulse's functional options (spec §4.N, §6 "Configuration options").
type rootConfig struct {
	target         any // string selector, or a Node
	onMount        func(Node)
	onUnmount      func()
	onError        func(error)
	errorReporter  func(error)
	registerer     prometheus.Registerer
	serviceManager any
	settings       any
}

// RootOption configures a Builder/Pulse call. WithLogger lives in
// logging.go since it mutates package state rather than rootConfig, but
// still satisfies this type so it composes with the others.
type RootOption func(*rootConfig)

func WithRootTarget(target any) RootOption { return func(c *rootConfig) { c.target = target } }
func WithOnMount(cb func(Node)) RootOption { return func(c *rootConfig) { c.onMount = cb } }
func WithOnUnmount(cb func()) RootOption   { return func(c *rootConfig) { c.onUnmount = cb } }
func WithOnError(cb func(error)) RootOption { return func(c *rootConfig) { c.onError = cb } }

// WithErrorReporter forwards boundary/root errors to an external sink (e.g.
// a Sentry-backed func(error)) in addition to the fallback a Tryer renders
// (SPEC_FULL.md §6, grounded on newbpydev-bubblyui's sentry-go dependency).
func WithErrorReporter(report func(error)) RootOption {
	return func(c *rootConfig) { c.errorReporter = report }
}

// WithInstrumentation attaches a Prometheus registerer (SPEC_FULL.md §4.O).
func WithInstrumentation(reg prometheus.Registerer) RootOption {
	return func(c *rootConfig) { c.registerer = reg }
}

// WithIOC attaches an opaque service container reachable from useService
// (spec §6 "ioc(manager)").
func WithIOC(manager any) RootOption { return func(c *rootConfig) { c.serviceManager = manager } }

// WithSettings passes an opaque value through to user code (spec §6
// "settings(x) / stateManager(x)").
func WithSettings(x any) RootOption { return func(c *rootConfig) { c.settings = x } }

// Root is the application root: owner of the registry, event delegator,
// node watcher and lifecycle callbacks (spec §3 "Application root", §4.N).
type Root struct {
	RootElement Node
	Registry    *Registry
	Delegator   *Delegator

	owner           *pulsar.Owner
	watcher         *NodeWatcher
	instrumentation *Instrumentation

	cfg rootConfig

	mu      sync.Mutex
	mounted bool

	idCounter uint64
}

var (
	currentRootMu sync.RWMutex
	currentRoot   *Root
)

// CurrentRoot returns the one application root that is currently mounted,
// used by lifecycle hooks that don't receive a root explicitly (spec §9
// "current application root").
func CurrentRoot() *Root {
	currentRootMu.RLock()
	defer currentRootMu.RUnlock()
	return currentRoot
}

func setCurrentRoot(r *Root) {
	currentRootMu.Lock()
	defer currentRootMu.Unlock()
	currentRoot = r
}

func clearCurrentRoot(r *Root) {
	currentRootMu.Lock()
	defer currentRootMu.Unlock()
	if currentRoot == r {
		currentRoot = nil
	}
}

// Builder assembles a Root via bootstrapApp()...Build() (spec §6, §4.N).
type Builder struct {
	cfg rootConfig
}

// BootstrapApp starts a Root builder chain.
func BootstrapApp() *Builder { return &Builder{} }

func (b *Builder) Root(target any) *Builder { b.cfg.target = target; return b }
func (b *Builder) OnMount(cb func(Node)) *Builder { b.cfg.onMount = cb; return b }
func (b *Builder) OnUnmount(cb func()) *Builder   { b.cfg.onUnmount = cb; return b }
func (b *Builder) OnError(cb func(error)) *Builder { b.cfg.onError = cb; return b }
func (b *Builder) ErrorReporter(cb func(error)) *Builder { b.cfg.errorReporter = cb; return b }
func (b *Builder) Instrumentation(reg prometheus.Registerer) *Builder {
	b.cfg.registerer = reg
	return b
}
func (b *Builder) IOC(manager any) *Builder { b.cfg.serviceManager = manager; return b }
func (b *Builder) Settings(x any) *Builder  { b.cfg.settings = x; return b }

// Build resolves the target element, verifying it exists, and instantiates
// a registry, event delegator and mutation observer for it (spec §4.N).
// Configuration errors (missing root, selector not found) are returned as
// the error; when cfg.onError is set it also receives the same error.
func (b *Builder) Build() (*Root, error) {
	return newRoot(b.cfg)
}

// Pulse is the one-call shorthand form of bootstrapApp()...build().Mount(...)
// (spec §6 "pulse(component, config)").
func Pulse(component func() Node, opts ...RootOption) (*Root, error) {
	var cfg rootConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r, err := newRoot(cfg)
	if err != nil {
		return nil, err
	}
	r.Mount(component)
	return r, nil
}

func newRoot(cfg rootConfig) (*Root, error) {
	el, err := resolveTarget(cfg.target)
	if err != nil {
		if cfg.onError != nil {
			cfg.onError(err)
			return nil, err
		}
		return nil, err
	}

	r := &Root{
		RootElement:     el,
		Registry:        NewRegistry(),
		Delegator:       NewDelegator(el),
		cfg:             cfg,
		instrumentation: NewInstrumentation(cfg.registerer),
	}
	r.owner = pulsar.NewOwner()
	r.watcher = newNodeWatcher(r)
	// The kernel's flush hook is a single global slot; a WASM page normally
	// mounts one root at a time, so the most recently built root owns it.
	pulsar.SetFlushHook(func() { r.instrumentation.RecordFlush() })

	return r, nil
}

// resolveTarget implements spec §6 "root(selector|element)": a CSS
// selector string, or an already-resolved Node.
func resolveTarget(target any) (Node, error) {
	switch t := target.(type) {
	case nil:
		return js.Undefined(), errors.New("pulsar: bootstrapApp requires a root target")
	case string:
		el := document.Call("querySelector", t)
		if el.IsNull() {
			return js.Undefined(), errors.New("pulsar: root selector not found: " + t)
		}
		return el, nil
	case js.Value:
		if t.IsUndefined() || t.IsNull() {
			return js.Undefined(), errors.New("pulsar: root element is undefined")
		}
		return t, nil
	default:
		return js.Undefined(), errors.New("pulsar: unsupported root target type")
	}
}

// Mount clears the root, appends component's tree, marks this root current,
// and runs onMount (spec §4.N). This implements the "direct mount path"
// Open Question resolution in DESIGN.md, not the prototype orchestrator.
func (r *Root) Mount(component func() Node) {
	r.mu.Lock()
	if r.mounted {
		r.mu.Unlock()
		r.reportError(errors.New("pulsar: root is already mounted"))
		return
	}
	r.mu.Unlock()

	waitForDOMReady()

	var node Node
	r.owner.Run(func() {
		node = component()
	})

	r.RootElement.Set("innerHTML", "")
	r.RootElement.Call("appendChild", node)
	r.watcher.start(r.RootElement)

	setCurrentRoot(r)

	r.mu.Lock()
	r.mounted = true
	r.mu.Unlock()

	if r.cfg.onMount != nil {
		r.cfg.onMount(node)
	}
}

// Unmount disposes the root owner (cascading every cleanup), clears the
// registry, disconnects the observer, destroys the delegator, clears the
// current-root reference and empties the root element (spec §4.N).
func (r *Root) Unmount() {
	r.mu.Lock()
	if !r.mounted {
		r.mu.Unlock()
		return
	}
	r.mounted = false
	r.mu.Unlock()

	if r.cfg.onUnmount != nil {
		r.cfg.onUnmount()
	}

	r.owner.Dispose()
	r.Registry.Clear()
	r.watcher.stop()
	r.Delegator.Destroy()
	clearCurrentRoot(r)
	pulsar.SetFlushHook(nil)
	r.RootElement.Set("innerHTML", "")
}

func waitForDOMReady() {
	if document.Get("readyState").String() != "loading" {
		return
	}

	done := make(chan struct{})
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		close(done)
		cb.Release()
		return nil
	})
	document.Call("addEventListener", "DOMContentLoaded", cb)
	<-done
}

// reportError routes a configuration/mount-time error to onError, then to
// the host if no handler is set (spec §7 "Configuration" taxonomy).
func (r *Root) reportError(err error) {
	if r.instrumentation != nil {
		r.instrumentation.RecordError()
	}
	if r.cfg.errorReporter != nil {
		r.cfg.errorReporter(err)
	}
	if r.cfg.onError != nil {
		r.cfg.onError(err)
		return
	}
	Logger().Error("pulsar: unhandled root error", "error", err)
}

// ensureElementID returns node's registry ID, minting and registering one
// under parentID the first time it's asked for (element.go's event
// delegation path needs a stable ID before it can register a handler).
func (r *Root) ensureElementID(node Node, parentID string) string {
	if id, ok := r.Registry.IDForNode(node); ok {
		node.Set(elementIDProp, id)
		return id
	}

	id := r.Registry.NextChildID(parentID)
	r.Registry.Register(id, node, Entry{Type: ElementStatic, ParentID: parentID})
	node.Set(elementIDProp, id)
	return id
}

// releaseNode tears down every piece of per-node state the node watcher is
// responsible for once a node is confirmed removed from the DOM (spec
// §4.F): its registry entry and delegated handlers. Wire disposal is
// handled separately by disposeWiresFor, called before this.
func (r *Root) releaseNode(node Node) {
	id, ok := r.Registry.IDForNode(node)
	if !ok {
		return
	}
	r.Registry.Unregister(id)
	r.Delegator.UnregisterElement(id)
}

// FlushFrames flushes the per-frame coalescing queue and records the
// coalesced task count through instrumentation, if attached (SPEC_FULL.md
// §4.O). Equivalent to the bare pulsar.FlushFrames for roots that don't
// need the metric.
func (r *Root) FlushFrames() int {
	n := pulsar.FlushFrames()
	r.instrumentation.RecordFrameFlush(n)
	return n
}

// StartFrameLoop drives FlushFrames from requestAnimationFrame, the
// production flush trigger spec §4.D describes ("explicit flush for
// tests" is the alternative, used directly via FlushFrames in unit tests).
func (r *Root) StartFrameLoop() (stop func()) {
	var tick js.Func
	stopped := atomic.Bool{}

	tick = js.FuncOf(func(this js.Value, args []js.Value) any {
		if stopped.Load() {
			return nil
		}
		r.FlushFrames()
		js.Global().Call("requestAnimationFrame", tick)
		return nil
	})
	js.Global().Call("requestAnimationFrame", tick)

	return func() {
		stopped.Store(true)
		tick.Release()
	}
}

// ReportRenderError routes a synchronous render error that escaped every
// Tryer to onError, instrumentation and errorReporter (spec §7 "Render...
// if none, bubbles to onError, then to the host").
func (r *Root) ReportRenderError(err error) {
	r.reportError(err)
}
