//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/binaryjack/pulsar"
)

// PortalConfig configures Portal (spec §4.L). Mount is either a CSS
// selector, a direct Node, or nil (document.body default). ID+Target is the
// slot pattern: Target is a selector resolved relative to document, ID
// identifies which of possibly several matching slots to use (by
// data-portal-id attribute).
type PortalConfig struct {
	Mount    any // string selector | Node | nil
	ID       string
	Target   string
	Children func() Node // may return a single node, or nil
}

// Portal mounts cfg.Children() into a physical container outside logicalParent
// while remaining logicalParent's logical child for registry and cleanup
// purposes (spec §4.L). It returns a detached placeholder node: appending it
// under logicalParent and relying on the caller's owner to register an
// onCleanup is what ties the portal's lifetime to its logical parent.
func Portal(root *Root, logicalParentID string, cfg PortalConfig) Node {
	placeholder := document.Call("createElement", "template")

	mountOnce := func() bool {
		container, ok := resolvePortalContainer(cfg)
		if !ok {
			return false
		}

		content := cfg.Children()
		if content.IsUndefined() || content.IsNull() {
			return true
		}
		content = normalizePortalContent(content)

		container.Call("appendChild", content)

		physicalParentID, _ := root.Registry.IDForNode(container)
		id := root.Registry.NextChildID(logicalParentID)
		root.Registry.Register(id, content, Entry{
			Type:            ElementPortalContent,
			ParentID:        logicalParentID,
			PhysicalParent:  physicalParentID,
			IsPortalContent: true,
		})

		pulsar.OnCleanup(func() {
			container.Call("removeChild", content)
			root.Registry.Unregister(id)
		})
		return true
	}

	if !mountOnce() {
		// Slot not yet in the DOM: retry once on the next microtask, warn
		// if still absent (spec §4.L, §7 "Portal slot missing").
		queueMicrotask(func() {
			if !mountOnce() {
				Logger().Warn("portal: target slot not found after retry", "id", cfg.ID, "target", cfg.Target)
			}
		})
	}

	return placeholder
}

func resolvePortalContainer(cfg PortalConfig) (Node, bool) {
	if cfg.ID != "" && cfg.Target != "" {
		sel := cfg.Target + "[data-portal-id=\"" + cfg.ID + "\"]"
		el := document.Call("querySelector", sel)
		if el.IsNull() {
			return js.Undefined(), false
		}
		return el, true
	}

	switch m := cfg.Mount.(type) {
	case nil:
		return document.Get("body"), true
	case string:
		el := document.Call("querySelector", m)
		if el.IsNull() {
			return js.Undefined(), false
		}
		return el, true
	case js.Value:
		if m.IsUndefined() || m.IsNull() {
			return js.Undefined(), false
		}
		return m, true
	default:
		return js.Undefined(), false
	}
}

// normalizePortalContent is a passthrough: Children's Go signature
// (func() Node) already forces a single resolved node, so the
// array/primitive normalisation spec §4.L describes for a dynamically
// typed JSX child list has no work left to do on this typed port. Kept as
// a named seam so a future multi-node Portal content type has one place to
// add the "display: contents" wrapper.
func normalizePortalContent(content js.Value) js.Value {
	return content
}
