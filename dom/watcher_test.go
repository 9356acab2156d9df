//go:build js && wasm

package dom

import (
	"testing"

	"github.com/binaryjack/pulsar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeWatcherDisposesRemovedNode(t *testing.T) {
	_, selector := newMountPoint(t)
	root, err := BootstrapApp().Root(selector).Build()
	require.NoError(t, err)
	t.Cleanup(root.Unmount)

	name, setName := pulsar.CreateSignal("a")
	var child Node

	root.Mount(func() Node {
		child = document.Call("createElement", "span")
		WireNode(child, "textContent", func() any { return name() })
		return child
	})

	root.RootElement.Call("removeChild", child)
	awaitMicrotasks(t, 3) // MutationObserver callback, then its scheduleRemoved microtask

	setName("b")
	assert.Equal(t, "a", child.Get("textContent").String(), "wire for a detached node must stop applying updates")
}

func TestNodeWatcherExemptsSameMicrotaskReattach(t *testing.T) {
	_, selector := newMountPoint(t)
	root, err := BootstrapApp().Root(selector).Build()
	require.NoError(t, err)
	t.Cleanup(root.Unmount)

	name, setName := pulsar.CreateSignal("a")
	var child Node

	root.Mount(func() Node {
		child = document.Call("createElement", "span")
		WireNode(child, "textContent", func() any { return name() })
		return child
	})

	root.RootElement.Call("removeChild", child)
	root.RootElement.Call("appendChild", child) // reattached before the watcher's microtask runs
	awaitMicrotasks(t, 3)

	setName("b")
	assert.Equal(t, "b", child.Get("textContent").String(), "a node reattached within the same microtask must not be disposed")
}

// awaitMicrotasks blocks until n microtask turns have elapsed, giving the
// MutationObserver callback (itself microtask-scheduled by the browser) and
// the watcher's own queueMicrotask call time to run before an assertion.
func awaitMicrotasks(t *testing.T, n int) {
	t.Helper()
	done := make(chan struct{})
	var chain func(remaining int)
	chain = func(remaining int) {
		if remaining == 0 {
			close(done)
			return
		}
		queueMicrotask(func() { chain(remaining - 1) })
	}
	chain(n)
	<-done
}
