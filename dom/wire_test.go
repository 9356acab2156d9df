//go:build js && wasm

package dom

import (
	"testing"

	"github.com/binaryjack/pulsar"
	"github.com/stretchr/testify/assert"
)

func TestWireNodeStaticValue(t *testing.T) {
	node := document.Call("createElement", "div")
	WireNode(node, "textContent", "static")
	assert.Equal(t, "static", node.Get("textContent").String())
}

func TestWireNodeReactiveValueSkipsNoopWrites(t *testing.T) {
	node := document.Call("createElement", "div")
	name, setName := pulsar.CreateSignal("a")
	writes := 0

	WireNode(node, "textContent", func() any {
		writes++
		return name()
	})
	assert.Equal(t, "a", node.Get("textContent").String())
	assert.Equal(t, 1, writes)

	setName("a")
	assert.Equal(t, 1, writes, "an equal signal write does not rerun the effect")
	assert.Equal(t, "a", node.Get("textContent").String())

	setName("b")
	assert.Equal(t, "b", node.Get("textContent").String())
}

func TestWireNodeDisposeStopsUpdates(t *testing.T) {
	node := document.Call("createElement", "div")
	name, setName := pulsar.CreateSignal("a")

	dispose := WireNode(node, "textContent", func() any { return name() })
	assert.Equal(t, "a", node.Get("textContent").String())

	dispose()
	setName("b")
	assert.Equal(t, "a", node.Get("textContent").String())
}

func TestWireNodeDottedPathSetsNestedProperty(t *testing.T) {
	node := document.Call("createElement", "div")
	WireNode(node, "style.left", "5px")
	assert.Equal(t, "5px", node.Get("style").Get("left").String())
}

func TestWireNodeSVGAttributeRoutesThroughSetAttribute(t *testing.T) {
	svg := document.Call("createElementNS", "http://www.w3.org/2000/svg", "circle")
	WireNode(svg, "cx", "42")
	assert.Equal(t, "42", svg.Call("getAttribute", "cx").String())
}

func TestDisposeWiresForRemovesTrackedSet(t *testing.T) {
	node := document.Call("createElement", "div")
	name, setName := pulsar.CreateSignal("a")
	runs := 0

	WireNode(node, "textContent", func() any {
		runs++
		return name()
	})
	assert.Equal(t, 1, runs)

	disposeWiresFor(node)
	setName("b")
	assert.Equal(t, 1, runs, "wire must have been disposed by the watcher path")
}
