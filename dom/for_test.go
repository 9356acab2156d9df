//go:build js && wasm

package dom

import (
	"testing"

	"github.com/binaryjack/pulsar"
	"github.com/stretchr/testify/assert"
)

func childTexts(container Node) []string {
	kids := container.Get("children")
	n := kids.Get("length").Int()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = kids.Index(i).Get("textContent").String()
	}
	return out
}

func TestForInitialRender(t *testing.T) {
	container := document.Call("createElement", "ul")
	items, _ := pulsar.CreateSignal([]string{"a", "b", "c"})

	For(container, ForConfig[string, string]{
		Each: items,
		Key:  func(s string, _ int) string { return s },
		Children: func(s string, index func() int) Node {
			li := document.Call("createElement", "li")
			li.Set("textContent", s)
			return li
		},
	})

	assert.Equal(t, []string{"a", "b", "c"}, childTexts(container))
}

func TestForReorderPreservesNodeIdentity(t *testing.T) {
	container := document.Call("createElement", "ul")
	items, setItems := pulsar.CreateSignal([]string{"a", "b", "c"})

	For(container, ForConfig[string, string]{
		Each: items,
		Key:  func(s string, _ int) string { return s },
		Children: func(s string, index func() int) Node {
			li := document.Call("createElement", "li")
			li.Set("textContent", s)
			return li
		},
	})

	first := container.Get("children").Index(0)
	setItems([]string{"c", "b", "a"})

	assert.Equal(t, []string{"c", "b", "a"}, childTexts(container))
	last := container.Get("children").Index(2)
	assert.True(t, first.Equal(last), "node for key \"a\" must be reused, not recreated")
}

func TestForDuplicateKeyLastWins(t *testing.T) {
	container := document.Call("createElement", "ul")
	items, _ := pulsar.CreateSignal([]string{"x:1", "x:2", "y:1"})

	For(container, ForConfig[string, string]{
		Each: items,
		Key:  func(s string, _ int) string { return s[:1] },
		Children: func(s string, index func() int) Node {
			li := document.Call("createElement", "li")
			li.Set("textContent", s)
			return li
		},
	})

	assert.Equal(t, []string{"x:2", "y:1"}, childTexts(container))
}

func TestForEmptyShowsFallback(t *testing.T) {
	container := document.Call("createElement", "ul")
	items, setItems := pulsar.CreateSignal([]string{"a"})

	For(container, ForConfig[string, string]{
		Each: items,
		Key:  func(s string, _ int) string { return s },
		Children: func(s string, index func() int) Node {
			li := document.Call("createElement", "li")
			li.Set("textContent", s)
			return li
		},
		Fallback: func() Node {
			p := document.Call("createElement", "p")
			p.Set("textContent", "empty")
			return p
		},
	})

	setItems(nil)
	assert.Equal(t, []string{"empty"}, childTexts(container))

	setItems([]string{"b"})
	assert.Equal(t, []string{"b"}, childTexts(container))
}
