//go:build js && wasm

package dom

import (
	"testing"

	"github.com/binaryjack/pulsar"
	"github.com/stretchr/testify/assert"
)

func TestShowTogglesBranches(t *testing.T) {
	container := document.Call("createElement", "div")
	when, setWhen := pulsar.CreateSignal(true)

	childrenCalls, fallbackCalls := 0, 0
	Show(container, ShowConfig{
		When: when,
		Children: func() Node {
			childrenCalls++
			el := document.Call("createElement", "span")
			el.Set("textContent", "on")
			return el
		},
		Fallback: func() Node {
			fallbackCalls++
			el := document.Call("createElement", "span")
			el.Set("textContent", "off")
			return el
		},
	})

	assert.Equal(t, "on", container.Get("firstChild").Get("textContent").String())
	assert.Equal(t, 1, childrenCalls)
	assert.Equal(t, 0, fallbackCalls, "fallback must not be materialised before it's active")

	setWhen(false)
	assert.Equal(t, "off", container.Get("firstChild").Get("textContent").String())
	assert.Equal(t, 1, fallbackCalls)

	setWhen(true)
	assert.Equal(t, "on", container.Get("firstChild").Get("textContent").String())
	assert.Equal(t, 1, childrenCalls, "children must not be re-materialised on a repeat toggle")
}

func TestShowWithoutFallbackLeavesContainerEmpty(t *testing.T) {
	container := document.Call("createElement", "div")
	when, setWhen := pulsar.CreateSignal(false)

	Show(container, ShowConfig{
		When: when,
		Children: func() Node {
			return document.Call("createElement", "span")
		},
	})

	assert.True(t, container.Get("firstChild").IsNull())

	setWhen(true)
	assert.False(t, container.Get("firstChild").IsNull())
}

func TestShowPreservesNodeIdentityAcrossRoundTrip(t *testing.T) {
	container := document.Call("createElement", "div")
	when, setWhen := pulsar.CreateSignal(true)

	Show(container, ShowConfig{
		When:     when,
		Children: func() Node { return document.Call("createElement", "span") },
		Fallback: func() Node { return document.Call("createElement", "p") },
	})
	firstOnNode := container.Get("firstChild")

	setWhen(false)
	setWhen(true)

	assert.True(t, firstOnNode.Equal(container.Get("firstChild")))
}
