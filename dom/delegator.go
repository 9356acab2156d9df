//go:build js && wasm

package dom

import (
	"strings"
	"sync"
	"syscall/js"
)

// HandlerOptions mirrors addEventListener's {once, capture} (spec §4.I).
type HandlerOptions struct {
	Once    bool
	Capture bool
}

type handlerEntry struct {
	fn      func(js.Value)
	once    bool
}

// Delegator is the one-per-application-root event dispatcher: a single
// bubbling listener per distinct event type attached at the root element,
// walking from event.target up to the root on dispatch (spec §4.I). Grounds
// the "on*" attribute handling in t_element (element.go).
type Delegator struct {
	root Node

	mu       sync.Mutex
	handlers map[string]map[string]*handlerEntry // eventType -> elementID -> handler
	attached map[string]js.Func                  // eventType -> root listener
}

func NewDelegator(root Node) *Delegator {
	return &Delegator{
		root:     root,
		handlers: make(map[string]map[string]*handlerEntry),
		attached: make(map[string]js.Func),
	}
}

// RegisterHandler attaches handler for eventType on elementID, lazily
// registering the root-level listener for that event type the first time
// it's seen (spec §4.I: "For each distinct event type first registered,
// attach one listener at the root element").
func (d *Delegator) RegisterHandler(elementID, eventType string, handler func(js.Value), opts HandlerOptions) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handlers[eventType] == nil {
		d.handlers[eventType] = make(map[string]*handlerEntry)
	}
	d.handlers[eventType][elementID] = &handlerEntry{fn: handler, once: opts.Once}

	if _, attached := d.attached[eventType]; !attached {
		d.attachRoot(eventType, opts.Capture)
	}
}

func (d *Delegator) attachRoot(eventType string, capture bool) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		d.dispatch(eventType, args[0])
		return nil
	})
	d.attached[eventType] = cb

	listenerOpts := js.ValueOf(map[string]any{"capture": capture})
	d.root.Call("addEventListener", eventType, cb, listenerOpts)
}

// dispatch walks event.target up to d.root, invoking every matching
// handler registered for an ancestor carrying that elementID (spec §4.I).
func (d *Delegator) dispatch(eventType string, event js.Value) {
	node := event.Get("target")

	for !node.IsUndefined() && !node.IsNull() {
		elementID := node.Get(elementIDProp)
		if !elementID.IsUndefined() && !elementID.IsNull() {
			d.invoke(eventType, elementID.String(), event)
		}
		if node.Equal(d.root) {
			break
		}
		node = node.Get("parentNode")
	}
}

func (d *Delegator) invoke(eventType, elementID string, event js.Value) {
	d.mu.Lock()
	byElement, ok := d.handlers[eventType]
	if !ok {
		d.mu.Unlock()
		return
	}
	entry, ok := byElement[elementID]
	if !ok {
		d.mu.Unlock()
		return
	}
	if entry.once {
		delete(byElement, elementID)
	}
	d.mu.Unlock()

	entry.fn(event)
}

// UnregisterElement removes every handler registered for elementID across
// all event types (spec §4.I, called by the node watcher on disposal).
func (d *Delegator) UnregisterElement(elementID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, byElement := range d.handlers {
		delete(byElement, elementID)
	}
}

// Destroy detaches every root-level listener.
func (d *Delegator) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for eventType, cb := range d.attached {
		d.root.Call("removeEventListener", eventType, cb)
		d.root.Call("removeEventListener", eventType, cb, true) // capture-phase listeners
		cb.Release()
	}
	d.attached = make(map[string]js.Func)
	d.handlers = make(map[string]map[string]*handlerEntry)
}

// dragEventTypes bypass the delegator and bind directly (spec §4.I:
// "Drag events bypass delegation and bind directly, because drop-eligibility
// must be established before the browser's next hit test").
var dragEventTypes = map[string]bool{
	"dragstart": true, "dragover": true, "dragenter": true,
	"dragleave": true, "drop": true, "dragend": true,
}

func isDragEvent(eventType string) bool {
	return dragEventTypes[strings.ToLower(eventType)]
}

const elementIDProp = "__elementId"
