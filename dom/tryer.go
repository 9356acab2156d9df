//go:build js && wasm

package dom

import (
	"fmt"

	"github.com/binaryjack/pulsar"
)

// TryerConfig configures the error boundary primitive (spec §4.M).
// Children must return a Node; a panic during its invocation is caught and
// routed to Fallback instead of propagating further up the owner tree.
type TryerConfig struct {
	Children func() Node
	Fallback func(err error, reset func()) Node
}

// RenderError is the typed error a Tryer's children must raise (by
// panicking with one) when they want to report a render failure distinct
// from a programming bug; spec §4.M step 2 calls this out explicitly
// ("non-node children throw a typed error").
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// Tryer wraps container's children in a reactive try/catch: a synchronous
// panic during Children() clears the container and renders Fallback(err,
// reset) instead; reset increments an internal retry signal, re-running
// Children() (spec §4.M). Only synchronous errors during render are
// caught here; async errors must go through the application root's
// onError (spec §7 "Async").
func Tryer(root *Root, container Node, cfg TryerConfig) {
	retryRead, retryWrite := pulsar.CreateSignal(0)
	reset := func() { retryWrite(retryRead() + 1) }

	fallback := cfg.Fallback
	if fallback == nil {
		fallback = func(err error, reset func()) Node {
			el := document.Call("createElement", "div")
			el.Set("textContent", "error: "+err.Error())
			return el
		}
	}

	pulsar.CreateEffect(func() {
		retryRead() // subscribe to reset()

		container.Set("innerHTML", "")

		var renderErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					renderErr = toRenderError(r)
				}
			}()

			node := cfg.Children()
			container.Call("appendChild", node)
		}()

		if renderErr == nil {
			return
		}

		if root != nil {
			root.ReportRenderError(renderErr)
		}

		container.Set("innerHTML", "")
		container.Call("appendChild", fallback(renderErr, reset))
	})
}

func toRenderError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	default:
		return fmt.Errorf("%v", v)
	}
}
