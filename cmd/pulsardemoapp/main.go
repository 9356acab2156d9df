//go:build js && wasm

// Command pulsardemoapp is the bundled browser demo: a counter, a todo list
// (For, Show), a draggable SVG circle (frame coalescing, batched attribute
// writes), a widget that fails its first render and recovers through Tryer,
// and a status line posted through Portal into a slot outside the app root.
// Combines the teacher's examples/browser-counter counter demo with the
// end-to-end scenarios from spec §8 (SPEC_FULL.md §4.P, SUPPLEMENTED
// FEATURES #5).
package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"syscall/js"

	"github.com/binaryjack/pulsar"
	"github.com/binaryjack/pulsar/dom"
)

type todo struct {
	id   int
	text string
	done bool
}

func main() {
	root, err := dom.BootstrapApp().
		Root("#app").
		OnError(func(err error) { slog.Error("pulsar demo: root error", "error", err) }).
		Build()
	if err != nil {
		slog.Error("pulsar demo: failed to build root", "error", err)
		<-make(chan struct{})
	}

	root.Mount(func() dom.Node {
		setNote, notesNode := notesPortal(root)

		container := document().Call("createElement", "div")
		container.Call("appendChild", counter())
		container.Call("appendChild", todoList())
		container.Call("appendChild", dragCircle(setNote))
		container.Call("appendChild", flakyWidget(root))
		container.Call("appendChild", notesNode)
		return container
	})

	root.StartFrameLoop()

	<-make(chan struct{})
}

func document() js.Value { return js.Global().Get("document") }

// flakyWidget exercises Tryer (spec §4.M): its first render always panics,
// so the fallback renders with a "retry" button wired to reset; retrying
// succeeds, demonstrating the recover/fallback/reset cycle end to end.
func flakyWidget(root *dom.Root) dom.Node {
	attempts, setAttempts := pulsar.CreateSignal(0)
	container := document().Call("createElement", "div")

	dom.Tryer(root, container, dom.TryerConfig{
		Children: func() dom.Node {
			n := attempts()
			setAttempts(n + 1)
			if n == 0 {
				panic(&dom.RenderError{Err: fmt.Errorf("widget not ready yet")})
			}
			el := document().Call("createElement", "span")
			el.Set("textContent", "widget loaded")
			return el
		},
		Fallback: func(err error, reset func()) dom.Node {
			el := document().Call("createElement", "div")
			msg := document().Call("createElement", "span")
			msg.Set("textContent", "failed: "+err.Error()+" ")
			retry := dom.Element("button", dom.Attrs{
				"textContent": "retry",
				"onclick":     func() { reset() },
			}, dom.ElementConfig{Root: root})
			el.Call("appendChild", msg)
			el.Call("appendChild", retry)
			return el
		},
	})

	return container
}

// notesPortal exercises Portal (spec §4.L): its content is appended into
// the page's #notes-slot element (see cmd/pulsardemo's indexHTML) while
// staying a logical child of the root for registry/cleanup purposes, even
// though #notes-slot sits outside the #app mount point in the DOM tree. The
// returned setter lets a sibling component (dragCircle) post into it.
func notesPortal(root *dom.Root) (setNote func(string), placeholder dom.Node) {
	note, setNoteSignal := pulsar.CreateSignal("waiting for the first drag...")

	placeholder = dom.Portal(root, "", dom.PortalConfig{
		Mount: "#notes-slot",
		Children: func() dom.Node {
			return dom.Element("p", dom.Attrs{
				"textContent": func() any { return note() },
			}, dom.ElementConfig{Root: root})
		},
	})

	return setNoteSignal, placeholder
}

// counter reproduces the end-to-end scenario from spec §8 #1, wired
// through t_element/WireNode instead of the teacher's raw addEventListener
// snippet.
func counter() dom.Node {
	count, setCount := pulsar.CreateSignal(0)

	label := dom.Element("span", dom.Attrs{
		"textContent": func() any { return "Count: " + strconv.Itoa(count()) },
	}, dom.ElementConfig{})

	button := dom.Element("button", dom.Attrs{
		"textContent": "increment",
		"onclick":     func() { setCount(count() + 1) },
	}, dom.ElementConfig{})

	wrapper := document().Call("createElement", "div")
	wrapper.Call("appendChild", label)
	wrapper.Call("appendChild", button)
	return wrapper
}

// todoList exercises For (keyed reconciliation) and Show (empty-state
// fallback).
func todoList() dom.Node {
	nextID, setNextID := pulsar.CreateSignal(1)
	items, setItems := pulsar.CreateSignal([]todo{})

	list := document().Call("createElement", "ul")
	dom.For(list, dom.ForConfig[todo, int]{
		Each: items,
		Key:  func(t todo, _ int) int { return t.id },
		Children: func(t todo, index func() int) dom.Node {
			li := document().Call("createElement", "li")
			li.Set("textContent", fmt.Sprintf("#%d %s", index()+1, t.text))
			return li
		},
	})

	empty := document().Call("createElement", "p")
	empty.Set("textContent", "no todos yet")

	showContainer := document().Call("createElement", "div")
	dom.Show(showContainer, dom.ShowConfig{
		When:     func() bool { return len(items()) == 0 },
		Children: func() dom.Node { return empty },
	})

	input := document().Call("createElement", "input")
	addButton := dom.Element("button", dom.Attrs{
		"textContent": "add",
		"onclick": func() {
			text := input.Get("value").String()
			if text == "" {
				return
			}
			pulsar.Batch(func() {
				id := nextID()
				setItems(append(append([]todo{}, items()...), todo{id: id, text: text}))
				setNextID(id + 1)
			})
			input.Set("value", "")
		},
	}, dom.ElementConfig{})

	wrapper := document().Call("createElement", "div")
	wrapper.Call("appendChild", showContainer)
	wrapper.Call("appendChild", list)
	wrapper.Call("appendChild", input)
	wrapper.Call("appendChild", addButton)
	return wrapper
}

// dragCircle exercises batched geometry writes and frame coalescing (spec
// §8 scenarios #3-4): pointer-move events accumulate into cx/cy signals via
// scheduleFrame under a fixed key, so 60 pointermove events inside one
// frame collapse into a single DOM write. Each coalesced move also posts a
// status line through setNote, into the notesPortal placed elsewhere in the
// page (spec §4.L).
func dragCircle(setNote func(string)) dom.Node {
	cx, setCx := pulsar.CreateSignal(100)
	cy, setCy := pulsar.CreateSignal(100)
	r, _ := pulsar.CreateSignal(40)

	svgNS := "http://www.w3.org/2000/svg"
	svg := document().Call("createElementNS", svgNS, "svg")
	svg.Call("setAttribute", "width", "200")
	svg.Call("setAttribute", "height", "200")

	circle := dom.Element("circle", dom.Attrs{
		"cx": func() any { return strconv.Itoa(cx()) },
		"cy": func() any { return strconv.Itoa(cy()) },
		"r":  func() any { return strconv.Itoa(r()) },
		"onpointermove": func(ev js.Value) {
			if ev.Get("buttons").Int() == 0 {
				return
			}
			x := ev.Get("offsetX").Int()
			y := ev.Get("offsetY").Int()
			pulsar.ScheduleFrame("drag-circle", func() {
				pulsar.Batch(func() {
					setCx(x)
					setCy(y)
				})
				setNote(fmt.Sprintf("circle last moved to (%d, %d)", x, y))
			})
		},
	}, dom.ElementConfig{})

	svg.Call("appendChild", circle)
	return svg
}
