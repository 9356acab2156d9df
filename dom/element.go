//go:build js && wasm

package dom

import (
	"strings"
	"syscall/js"

	"github.com/binaryjack/pulsar"
)

// Attrs is the attribute map passed to Element (spec §4.H: "t_element(tag,
// attrs) → Node"). Values may be plain values, js.Value-compatible values, a
// func() any (wired reactively), or for "style" either a string or a
// map[string]any of sub-properties (each of which may itself be a func()
// any, wired individually).
type Attrs map[string]any

// ElementConfig carries the optional per-call context t_element needs beyond
// tag/attrs: the owning application root (for the event delegator and
// hydration lookups) and this element's registry parent, if any.
type ElementConfig struct {
	Root     *Root
	ParentID string
}

// Element creates an HTML or SVG DOM node, applies static and reactive
// attributes through the same routing rules wires use, and, if attrs
// carries a "data-hid", attempts SSR hydration by adopting a matching
// existing node instead of creating a fresh one (spec §4.H).
func Element(tag string, attrs Attrs, cfg ElementConfig) Node {
	node := createOrHydrate(tag, attrs, cfg)

	for key, value := range attrs {
		applyAttr(node, key, value, cfg)
	}

	return node
}

func createOrHydrate(tag string, attrs Attrs, cfg ElementConfig) Node {
	if hid, ok := attrs["data-hid"]; ok {
		if existing := findHydrationCandidate(tag, toAttrString(hid)); !existing.IsUndefined() {
			return existing
		}
		Logger().Warn("element: no matching data-hid node to hydrate, creating fresh", "tag", tag, "data-hid", hid)
	}

	if isSVGTag(tag) {
		return document.Call("createElementNS", "http://www.w3.org/2000/svg", tag)
	}
	return document.Call("createElement", tag)
}

func findHydrationCandidate(tag, hid string) js.Value {
	candidate := document.Call("querySelector", "["+"data-hid"+"=\""+hid+"\"]")
	if candidate.IsNull() || candidate.IsUndefined() {
		return js.Undefined()
	}
	if !strings.EqualFold(candidate.Get("tagName").String(), tag) {
		return js.Undefined()
	}
	return candidate
}

func applyAttr(node Node, key string, value any, cfg ElementConfig) {
	switch {
	case strings.HasPrefix(key, "on") && len(key) > 2:
		registerEventAttr(node, key, value, cfg)

	case key == "className" || key == "class":
		applyClassName(node, value)

	case key == "style":
		applyStyle(node, value)

	case key == "data-hid":
		// consumed by createOrHydrate; still worth a plain setAttribute so
		// devtools/SSR diffing can see it on freshly created nodes too.
		node.Call("setAttribute", "data-hid", toAttrString(value))

	case strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "aria-") || key == "role":
		if fn, ok := value.(func() any); ok {
			WireNode(node, key, fn)
		} else {
			node.Call("setAttribute", key, toAttrString(value))
		}

	default:
		if fn, ok := value.(func() any); ok {
			WireNode(node, key, fn)
			return
		}
		if knownDOMProperties[key] || !isSVGNamespace(node) {
			setProperty(node, key, value)
		} else {
			node.Call("setAttribute", key, toAttrString(value))
		}
	}
}

// applyClassName maps to the "class" attribute on SVG and to the
// className DOM property on HTML (spec §4.H step 2, §6 "Attribute policy").
func applyClassName(node Node, value any) {
	if fn, ok := value.(func() any); ok {
		WireNode(node, "className", fn)
		return
	}
	if isSVGNamespace(node) {
		node.Call("setAttribute", "class", toAttrString(value))
	} else {
		node.Set("className", toAttrString(value))
	}
}

// applyStyle accepts either a string (set wholesale) or a map of
// sub-properties, any of which may be a func() any wired individually
// (spec §4.H step 2).
func applyStyle(node Node, value any) {
	switch v := value.(type) {
	case string:
		node.Set("style", v)
	case func() any:
		WireNode(node, "style.cssText", v)
	case map[string]any:
		style := node.Get("style")
		for prop, sub := range v {
			if fn, ok := sub.(func() any); ok {
				WireNode(style, prop, fn)
			} else {
				style.Set(prop, toAttrString(sub))
			}
		}
	}
}

// registerEventAttr lowercases "on<Type>" to the event type (spec §6
// "Event handler keys begin with on, lowercased to form the event type").
// Drag events bind directly via addEventListener so preventDefault can run
// synchronously before the next hit test; everything else goes through the
// per-root delegator when one is available.
func registerEventAttr(node Node, key string, value any, cfg ElementConfig) {
	eventType := strings.ToLower(key[2:])
	opts := HandlerOptions{}

	handlerFn, ok := asEventHandler(value)
	if !ok {
		return
	}

	if isDragEvent(eventType) || cfg.Root == nil || cfg.Root.Delegator == nil {
		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				handlerFn(args[0])
			}
			return nil
		})
		node.Call("addEventListener", eventType, cb)
		pulsar.OnCleanup(func() {
			node.Call("removeEventListener", eventType, cb)
			cb.Release()
		})
		return
	}

	elementID := cfg.Root.ensureElementID(node, cfg.ParentID)
	cfg.Root.Delegator.RegisterHandler(elementID, eventType, handlerFn, opts)
}

func asEventHandler(value any) (func(js.Value), bool) {
	switch fn := value.(type) {
	case func(js.Value):
		return fn, true
	case func():
		return func(js.Value) { fn() }, true
	default:
		return nil, false
	}
}
