//go:build js && wasm

package dom

import (
	"strings"
	"sync"
	"syscall/js"

	"github.com/binaryjack/pulsar"
)

// Wire is the record kept per (node, path) binding (spec §3 "Wire record").
type Wire struct {
	node   Node
	path   string
	owner  *pulsar.Owner
	dispose func()

	mu        sync.Mutex
	lastValue any
	hasValue  bool
}

// wireSets indexes every live Wire by the node it targets, so the node
// watcher (watcher.go) can dispose them all when the node leaves the DOM
// (spec §4.F, §3 "Wires attached to a node are kept in a node-indexed set").
var (
	wireSetsMu sync.Mutex
	wireSets   = map[string][]*Wire{}
)

func trackWire(node Node, w *Wire) {
	key := nodeKey(node)
	wireSetsMu.Lock()
	defer wireSetsMu.Unlock()
	wireSets[key] = append(wireSets[key], w)
}

func untrackWire(node Node, w *Wire) {
	key := nodeKey(node)
	wireSetsMu.Lock()
	defer wireSetsMu.Unlock()
	set := wireSets[key]
	for i, cand := range set {
		if cand == w {
			wireSets[key] = append(set[:i], set[i+1:]...)
			break
		}
	}
	if len(wireSets[key]) == 0 {
		delete(wireSets, key)
	}
}

// disposeWiresFor disposes (and removes) every wire currently attached to
// node, called by the node watcher once a node is confirmed removed.
func disposeWiresFor(node Node) {
	key := nodeKey(node)
	wireSetsMu.Lock()
	set := wireSets[key]
	delete(wireSets, key)
	wireSetsMu.Unlock()

	for _, w := range set {
		w.dispose()
	}
}

// WireNode binds a reactive expression to a (node, path) pair with the routing
// table and change detection the spec describes (§4.G). expr is either a
// plain value (bound once) or a func() any, which runs inside a fresh
// effect so the binding re-applies whenever its dependencies change. The
// effect becomes a child of the currently active owner, so it disposes
// along with the surrounding component (spec §4.G "Disposer").
func WireNode(node Node, path string, expr any) (dispose func()) {
	w := &Wire{node: node, path: path}

	apply := func(v any) {
		w.mu.Lock()
		if w.hasValue && jsObjectIs(w.lastValue, v) {
			w.mu.Unlock()
			return
		}
		w.lastValue = v
		w.hasValue = true
		w.mu.Unlock()

		route(node, path, v)
	}

	if fn, ok := expr.(func() any); ok {
		d := pulsar.CreateWireEffect(func() {
			apply(fn())
		})
		w.owner = pulsar.GetOwner()
		w.dispose = func() {
			d()
			untrackWire(node, w)
		}
	} else {
		apply(expr)
		w.dispose = func() { untrackWire(node, w) }
	}

	trackWire(node, w)
	return w.dispose
}

// jsObjectIs mirrors JS's Object.is for the change-detection rule in spec
// §4.G ("Keep lastValue; skip the write if Object.is(lastValue, newValue)").
// For js.Value operands it uses JS reference/primitive equality; for plain
// Go values it falls back to ==, panicking-safe via a recover for
// non-comparable kinds (slices/maps/funcs always count as changed).
func jsObjectIs(a, b any) (eq bool) {
	if av, ok := a.(js.Value); ok {
		if bv, ok := b.(js.Value); ok {
			return av.Equal(bv)
		}
		return false
	}

	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// route applies v to node[path] following the six-case table in spec §4.G.
func route(node Node, path string, v any) {
	switch {
	case path == "className" && isSVGNamespace(node):
		setAttr(node, "class", path, v)

	case strings.Contains(path, "."):
		setPropertyChain(node, path, v)

	case isSVGNamespace(node) && !knownDOMProperties[path]:
		setAttr(node, path, path, v)

	case knownDOMProperties[path]:
		setProperty(node, path, v)

	case strings.HasPrefix(path, "data-") || strings.HasPrefix(path, "aria-"):
		setAttr(node, path, path, v)

	default:
		setProperty(node, path, v)
	}
}

// setAttr implements spec §4.G's null/undefined policy for SVG attributes:
// refuse null/undefined (warn, leave the attribute at its previous value);
// otherwise setAttribute(name, String(v)).
func setAttr(node Node, attrName, logPath string, v any) {
	if v == nil {
		Logger().Warn("wire: refusing nil value for SVG attribute", "attr", logPath)
		return
	}
	node.Call("setAttribute", attrName, toAttrString(v))
}

func setProperty(node Node, path string, v any) {
	node.Set(path, jsValueOf(v))
}

// setPropertyChain assigns a dotted path (e.g. "style.left") by walking
// Get() down to the penultimate segment and Set()ing the last one (spec
// §4.G step 2).
func setPropertyChain(node Node, path string, v any) {
	segs := strings.Split(path, ".")
	target := node
	for _, seg := range segs[:len(segs)-1] {
		target = target.Get(seg)
	}
	target.Set(segs[len(segs)-1], jsValueOf(v))
}
