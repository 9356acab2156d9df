//go:build js && wasm

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	node := document.Call("createElement", "div")

	id := r.NextChildID("")
	r.Register(id, node, Entry{Type: ElementStatic})

	entry, ok := r.Get(id)
	assert.True(t, ok)
	assert.Equal(t, ElementStatic, entry.Type)
	assert.True(t, entry.Element.Equal(node))
	assert.Equal(t, 1, r.Size())
}

func TestRegistryChildTracking(t *testing.T) {
	r := NewRegistry()
	parent := document.Call("createElement", "div")
	parentID := r.NextChildID("")
	r.Register(parentID, parent, Entry{Type: ElementComponent})

	var childIDs []string
	for i := 0; i < 3; i++ {
		child := document.Call("createElement", "span")
		cid := r.NextChildID(parentID)
		r.Register(cid, child, Entry{Type: ElementStatic, ParentID: parentID})
		childIDs = append(childIDs, cid)
	}

	assert.Equal(t, childIDs, r.GetChildren(parentID))

	r.Unregister(childIDs[1])
	remaining := r.GetChildren(parentID)
	assert.Len(t, remaining, 2)
	assert.NotContains(t, remaining, childIDs[1])
}

func TestRegistryUnregisterRemovesEntry(t *testing.T) {
	r := NewRegistry()
	node := document.Call("createElement", "div")
	id := r.NextChildID("")
	r.Register(id, node, Entry{Type: ElementStatic})

	r.Unregister(id)
	_, ok := r.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Size())

	_, ok = r.IDForNode(node)
	assert.False(t, ok)
}

func TestRegistryIDForNode(t *testing.T) {
	r := NewRegistry()
	node := document.Call("createElement", "div")
	id := r.NextChildID("")
	r.Register(id, node, Entry{Type: ElementDynamic})

	got, ok := r.IDForNode(node)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestNextArrayItemIDEncodesKey(t *testing.T) {
	a := NextArrayItemID("r1.c2", 7)
	b := NextArrayItemID("r1.c2", 8)
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "7")
}
