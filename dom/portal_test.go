//go:build js && wasm

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalMountsIntoExplicitTarget(t *testing.T) {
	_, selector := newMountPoint(t)
	root, err := BootstrapApp().Root(selector).Build()
	require.NoError(t, err)

	slot := document.Call("createElement", "div")
	slot.Set("id", "portal-slot-1")
	document.Get("body").Call("appendChild", slot)
	t.Cleanup(func() { document.Get("body").Call("removeChild", slot) })

	placeholder := Portal(root, "", PortalConfig{
		Mount: "#portal-slot-1",
		Children: func() Node {
			span := document.Call("createElement", "span")
			span.Set("textContent", "ported")
			return span
		},
	})

	assert.Equal(t, "TEMPLATE", placeholder.Get("tagName").String())
	assert.Equal(t, "ported", slot.Get("firstChild").Get("textContent").String())
}

func TestPortalDefaultsToDocumentBody(t *testing.T) {
	_, selector := newMountPoint(t)
	root, err := BootstrapApp().Root(selector).Build()
	require.NoError(t, err)

	marker := document.Call("createElement", "div")
	marker.Set("id", "body-portal-marker")

	Portal(root, "", PortalConfig{
		Children: func() Node { return marker },
	})

	found := document.Call("getElementById", "body-portal-marker")
	assert.False(t, found.IsNull())
	document.Get("body").Call("removeChild", marker)
}

func TestPortalRegistersPhysicalParent(t *testing.T) {
	_, selector := newMountPoint(t)
	root, err := BootstrapApp().Root(selector).Build()
	require.NoError(t, err)

	slot := document.Call("createElement", "div")
	slot.Set("id", "portal-slot-2")
	document.Get("body").Call("appendChild", slot)
	t.Cleanup(func() { document.Get("body").Call("removeChild", slot) })

	slotID := root.Registry.NextChildID("")
	root.Registry.Register(slotID, slot, Entry{Type: ElementStatic})

	var content Node
	Portal(root, "logical-parent", PortalConfig{
		Mount: "#portal-slot-2",
		Children: func() Node {
			content = document.Call("createElement", "span")
			return content
		},
	})

	id, ok := root.Registry.IDForNode(content)
	require.True(t, ok)
	entry, ok := root.Registry.Get(id)
	require.True(t, ok)
	assert.Equal(t, slotID, entry.PhysicalParent)
	assert.Equal(t, "logical-parent", entry.ParentID)
	assert.True(t, entry.IsPortalContent)
}
