//go:build js && wasm

package dom

import (
	"github.com/binaryjack/pulsar"
)

// ForConfig configures the keyed list primitive (spec §4.J). Each is called
// on every reconciliation pass (spec §9: "always materialised to an array
// per reconciliation" — For treats a lazy/restartable iterator the same
// way). Key defaults to the item's index when nil, per spec "key(item,
// index) supplies identity (defaults to index)".
type ForConfig[T any, K comparable] struct {
	Each func() []T

	// Key supplies each item's identity. If nil, it defaults to the item's
	// index, which requires K == int — a nil Key with any other K panics on
	// the first reconciliation (any(i).(K) fails its type assertion).
	Key      func(item T, index int) K
	Children func(item T, index func() int) Node
	Fallback func() Node

	// Root/ParentID, when Root is non-nil, register each item's node in
	// the element registry under an array-item ID that encodes its key
	// (spec §4.E: "an array-item ID includes the key... so that reorder
	// does not change identity").
	Root     *Root
	ParentID string
}

type forEntry struct {
	node      Node
	owner     *pulsar.Owner
	setIndex  func(int)
	registryID string
}

// For mounts container's children by keyed reconciliation against cfg.Each,
// re-running the reconciliation protocol in spec §4.J every time cfg.Each's
// dependencies change. The effect (and every per-item owner it creates)
// becomes a child of the owner active when For is called, so tearing down
// the surrounding component tears the whole list down too.
func For[T any, K comparable](container Node, cfg ForConfig[T, K]) {
	tracked := make(map[K]*forEntry)
	var order []K
	fallbackShown := false
	var fallbackNode Node

	keyFn := cfg.Key
	if keyFn == nil {
		keyFn = func(_ T, i int) K { return any(i).(K) }
	}

	pulsar.CreateEffect(func() {
		items := cfg.Each()
		reconcileFor(container, items, keyFn, cfg, tracked, &order, &fallbackShown, &fallbackNode)
	})
}

func reconcileFor[T any, K comparable](
	container Node,
	items []T,
	keyFn func(T, int) K,
	cfg ForConfig[T, K],
	tracked map[K]*forEntry,
	order *[]K,
	fallbackShown *bool,
	fallbackNode *Node,
) {
	children, fallback := cfg.Children, cfg.Fallback
	// Step 1: empty sequence.
	if len(items) == 0 {
		for _, k := range *order {
			removeForEntry(cfg.Root, container, tracked[k])
			delete(tracked, k)
		}
		*order = nil

		if fallback != nil && !*fallbackShown {
			node := fallback()
			container.Call("appendChild", node)
			*fallbackNode = node
			*fallbackShown = true
		}
		return
	}

	// Step 2: remove fallback if shown.
	if *fallbackShown {
		container.Call("removeChild", *fallbackNode)
		*fallbackShown = false
		*fallbackNode = Node{}
	}

	// Step 3: build newOrder, last-write-wins on duplicate keys.
	type posItem struct {
		key   K
		item  T
		index int
	}
	lastIndex := make(map[K]int, len(items))
	for i, item := range items {
		lastIndex[keyFn(item, i)] = i
	}

	newOrder := make([]posItem, 0, len(items))
	newKeys := make(map[K]bool, len(items))
	for i, item := range items {
		k := keyFn(item, i)
		if lastIndex[k] != i {
			continue // an earlier occurrence of this key; later one wins
		}
		newOrder = append(newOrder, posItem{key: k, item: item, index: i})
		newKeys[k] = true
	}

	// Step 4: remove phase.
	for _, k := range *order {
		if newKeys[k] {
			continue
		}
		removeForEntry(cfg.Root, container, tracked[k])
		delete(tracked, k)
	}

	// Step 5: reorder phase.
	var prevNode Node
	hasPrev := false
	for p, pi := range newOrder {
		entry, exists := tracked[pi.key]
		if !exists {
			idx := pi.index
			indexRead, indexWrite := pulsar.CreateSignal(idx)
			owner := pulsar.NewOwner()

			var node Node
			owner.Run(func() {
				node = children(pi.item, indexRead)
			})

			insertAt(container, node, p, prevNode, hasPrev)

			entry = &forEntry{node: node, owner: owner, setIndex: indexWrite}
			if cfg.Root != nil {
				entry.registryID = NextArrayItemID(cfg.ParentID, pi.key)
				cfg.Root.Registry.Register(entry.registryID, node, Entry{
					Type:     ElementArrayItem,
					ParentID: cfg.ParentID,
				})
			}
			tracked[pi.key] = entry
		} else if currentDOMIndex(container, entry.node) != p {
			moveTo(container, entry.node, p, prevNode, hasPrev)
		}

		entry.setIndex(p)
		prevNode = entry.node
		hasPrev = true
	}

	newKeyOrder := make([]K, len(newOrder))
	for i, pi := range newOrder {
		newKeyOrder[i] = pi.key
	}
	*order = newKeyOrder
}

func removeForEntry(root *Root, container Node, entry *forEntry) {
	if entry == nil {
		return
	}
	container.Call("removeChild", entry.node)
	entry.owner.Dispose()
	if root != nil && entry.registryID != "" {
		root.Registry.Unregister(entry.registryID)
	}
}

func insertAt(container Node, node Node, position int, prevNode Node, hasPrev bool) {
	if position == 0 {
		children := container.Get("firstChild")
		if children.IsNull() || children.IsUndefined() {
			container.Call("appendChild", node)
		} else {
			container.Call("insertBefore", node, children)
		}
		return
	}
	if hasPrev {
		next := prevNode.Get("nextSibling")
		if next.IsNull() || next.IsUndefined() {
			container.Call("appendChild", node)
		} else {
			container.Call("insertBefore", node, next)
		}
		return
	}
	container.Call("appendChild", node)
}

func moveTo(container Node, node Node, position int, prevNode Node, hasPrev bool) {
	if position == 0 {
		container.Call("insertBefore", node, container.Get("firstChild"))
		return
	}
	if hasPrev {
		next := prevNode.Get("nextSibling")
		if next.IsNull() || next.IsUndefined() {
			container.Call("appendChild", node)
		} else {
			container.Call("insertBefore", node, next)
		}
		return
	}
	container.Call("appendChild", node)
}

func currentDOMIndex(container Node, node Node) int {
	children := container.Get("childNodes")
	n := children.Get("length").Int()
	for i := 0; i < n; i++ {
		if children.Index(i).Equal(node) {
			return i
		}
	}
	return -1
}
