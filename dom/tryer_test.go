//go:build js && wasm

package dom

import (
	"errors"
	"testing"

	"github.com/binaryjack/pulsar"
	"github.com/stretchr/testify/assert"
)

func TestTryerRendersChildrenWhenNoPanic(t *testing.T) {
	container := document.Call("createElement", "div")

	Tryer(nil, container, TryerConfig{
		Children: func() Node {
			el := document.Call("createElement", "span")
			el.Set("textContent", "ok")
			return el
		},
	})

	assert.Equal(t, "ok", container.Get("firstChild").Get("textContent").String())
}

func TestTryerCatchesPanicAndRendersFallback(t *testing.T) {
	container := document.Call("createElement", "div")

	Tryer(nil, container, TryerConfig{
		Children: func() Node {
			panic(&RenderError{Err: errors.New("boom")})
		},
		Fallback: func(err error, reset func()) Node {
			el := document.Call("createElement", "span")
			el.Set("textContent", "caught: "+err.Error())
			return el
		},
	})

	assert.Equal(t, "caught: boom", container.Get("firstChild").Get("textContent").String())
}

func TestTryerResetRetriesChildren(t *testing.T) {
	container := document.Call("createElement", "div")
	attempt, setAttempt := pulsar.CreateSignal(0)

	var resetFn func()
	Tryer(nil, container, TryerConfig{
		Children: func() Node {
			if attempt() == 0 {
				panic(errors.New("first attempt fails"))
			}
			el := document.Call("createElement", "span")
			el.Set("textContent", "recovered")
			return el
		},
		Fallback: func(err error, reset func()) Node {
			resetFn = reset
			el := document.Call("createElement", "span")
			el.Set("textContent", "failed")
			return el
		},
	})

	assert.Equal(t, "failed", container.Get("firstChild").Get("textContent").String())

	setAttempt(1)
	resetFn()
	assert.Equal(t, "recovered", container.Get("firstChild").Get("textContent").String())
}

func TestTryerDefaultFallbackRendersErrorText(t *testing.T) {
	container := document.Call("createElement", "div")

	Tryer(nil, container, TryerConfig{
		Children: func() Node {
			panic(errors.New("unhandled"))
		},
	})

	assert.Contains(t, container.Get("firstChild").Get("textContent").String(), "unhandled")
}
