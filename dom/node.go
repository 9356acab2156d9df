//go:build js && wasm

package dom

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"syscall/js"
)

// Node is a DOM node handle. Aliased (not wrapped) so dom code can pass
// js.Value values returned by document.* calls straight through without an
// extra conversion layer, matching the teacher's own direct js.Value use in
// examples/browser-counter/main.go.
type Node = js.Value

var (
	document  = js.Global().Get("document")
	nullValue = js.Null()
)

// svgTagSet is the set of tag names created in the SVG namespace (spec
// §4.H step 1).
var svgTagSet = map[string]bool{
	"svg": true, "g": true, "path": true, "rect": true, "circle": true,
	"ellipse": true, "line": true, "polyline": true, "polygon": true,
	"text": true, "tspan": true, "defs": true, "use": true, "symbol": true,
	"marker": true, "clippath": true, "mask": true, "pattern": true,
	"lineargradient": true, "radialgradient": true, "stop": true,
	"foreignobject": true, "image": true, "filter": true,
}

func isSVGTag(tag string) bool {
	return svgTagSet[normalizeTag(tag)]
}

func normalizeTag(tag string) string {
	out := make([]byte, len(tag))
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// isSVGNamespace reports whether node belongs to the SVG namespace, used by
// the wire routing table (spec §4.G steps 1 and 3) and by t_element's
// className handling (spec §4.H step 2).
func isSVGNamespace(node Node) bool {
	if node.IsUndefined() || node.IsNull() {
		return false
	}
	ns := node.Get("namespaceURI")
	if ns.IsUndefined() || ns.IsNull() {
		return false
	}
	return ns.String() == "http://www.w3.org/2000/svg"
}

// knownDOMProperties are path names the wire routing table and t_element
// treat as plain property assignment even though they don't start with
// "data-"/"aria-" (spec §4.G step 4).
var knownDOMProperties = map[string]bool{
	"textContent": true, "value": true, "checked": true, "innerHTML": true,
	"className": true, "disabled": true, "selected": true, "id": true,
	"placeholder": true, "title": true, "src": true, "href": true,
}

// jsValueOf converts a Go value into the js.Value the DOM API expects for a
// property assignment or attribute string.
func jsValueOf(v any) any {
	switch val := v.(type) {
	case nil:
		return nullValue
	case js.Value:
		return val
	default:
		return val
	}
}

var nodeKeyCounter uint64

// nodeKey returns a stable string identity for node, stashed as an expando
// property on first use. js.Value's own equality (.Equal) works for map
// lookups too, but an expando key lets wire/watcher bookkeeping use plain
// Go maps keyed by string instead of a linear scan or a wrapper type.
const nodeKeyProp = "__pulsarNodeKey"

func nodeKey(node Node) string {
	existing := node.Get(nodeKeyProp)
	if !existing.IsUndefined() && !existing.IsNull() {
		return existing.String()
	}
	key := strconv.FormatUint(atomic.AddUint64(&nodeKeyCounter, 1), 36)
	node.Set(nodeKeyProp, key)
	return key
}

func toAttrString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
