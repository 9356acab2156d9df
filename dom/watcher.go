//go:build js && wasm

package dom

import "syscall/js"

// NodeWatcher is a MutationObserver rooted at an application's root element
// that disposes a removed node's wires, registry entry and delegated
// handlers (spec §4.F). Grounded on other_examples/
// 43a2a990_ozanturksever-uiwgo__dom-mutation_observer.go.go's
// MutationObserverManager, generalized from a scope-registry lookup to the
// three kinds of per-node state Pulsar tracks (wires, registry, delegator).
type NodeWatcher struct {
	observer js.Value
	callback js.Func
	root     *Root
}

func newNodeWatcher(root *Root) *NodeWatcher {
	w := &NodeWatcher{root: root}

	w.callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			w.handleMutations(args[0])
		}
		return nil
	})
	w.observer = js.Global().Get("MutationObserver").New(w.callback)

	return w
}

func (w *NodeWatcher) start(target Node) {
	config := js.ValueOf(map[string]any{"childList": true, "subtree": true})
	w.observer.Call("observe", target, config)
}

func (w *NodeWatcher) stop() {
	w.observer.Call("disconnect")
	w.callback.Release()
}

func (w *NodeWatcher) handleMutations(mutations js.Value) {
	n := mutations.Get("length").Int()
	for i := 0; i < n; i++ {
		mutation := mutations.Index(i)
		if mutation.Get("type").String() != "childList" {
			continue
		}
		w.scheduleRemoved(mutation.Get("removedNodes"))
	}
}

// scheduleRemoved implements the spec §9 open-question resolution: a removed
// node is disposed on the next microtask, exempted if it is reattached
// (reports isConnected) before that microtask runs.
func (w *NodeWatcher) scheduleRemoved(removedNodes js.Value) {
	n := removedNodes.Get("length").Int()
	nodes := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		nodes = append(nodes, removedNodes.Index(i))
	}

	queueMicrotask(func() {
		for _, node := range nodes {
			w.disposeIfStillDetached(node)
		}
	})
}

func (w *NodeWatcher) disposeIfStillDetached(node js.Value) {
	if node.Get("nodeType").Int() != 1 { // element nodes only
		return
	}
	if node.Get("isConnected").Bool() {
		return // reattached within the same microtask; exempted (spec §4.F)
	}

	disposeWiresFor(node)
	w.root.releaseNode(node)

	children := node.Get("children")
	cn := children.Get("length").Int()
	for i := 0; i < cn; i++ {
		w.disposeIfStillDetached(children.Index(i))
	}
}

func queueMicrotask(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		cb.Release()
		return nil
	})
	js.Global().Call("queueMicrotask", cb)
}
