//go:build js && wasm

package dom

import "github.com/binaryjack/pulsar"

// ShowConfig configures the conditional primitive (spec §4.K). Children and
// Fallback are factories so neither branch is materialised before it first
// becomes active (spec: "Lazy materialisation is required: factories must
// not be called for a branch that never becomes active").
type ShowConfig struct {
	When     func() bool
	Children func() Node
	Fallback func() Node
}

// Show mounts container with whichever of cfg.Children/cfg.Fallback is
// currently active, preserving each branch's node identity across repeated
// toggles (spec §4.K, testable property "Show with stable when=true and
// stable when=false round trips yield the same node identities").
func Show(container Node, cfg ShowConfig) {
	var childrenNode, fallbackNode Node
	haveChildren, haveFallback := false, false
	var attached int // 0 = none, 1 = children, 2 = fallback

	detachChildren := func() {
		if attached == 1 {
			container.Call("removeChild", childrenNode)
			attached = 0
		}
	}
	detachFallback := func() {
		if attached == 2 {
			container.Call("removeChild", fallbackNode)
			attached = 0
		}
	}

	pulsar.CreateEffect(func() {
		if cfg.When() {
			detachFallback()
			if !haveChildren {
				childrenNode = cfg.Children()
				haveChildren = true
			}
			if attached != 1 {
				container.Call("appendChild", childrenNode)
				attached = 1
			}
			return
		}

		detachChildren()
		if cfg.Fallback == nil {
			return
		}
		if !haveFallback {
			fallbackNode = cfg.Fallback()
			haveFallback = true
		}
		if attached != 2 {
			container.Call("appendChild", fallbackNode)
			attached = 2
		}
	})
}
