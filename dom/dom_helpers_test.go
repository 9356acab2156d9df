//go:build js && wasm

package dom

import "syscall/js"

// newEventTest constructs a browser Event for dispatchEvent in tests.
func newEventTest(eventType string) js.Value {
	return js.Global().Get("Event").New(eventType)
}
