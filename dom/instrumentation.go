//go:build js && wasm

package dom

import "github.com/prometheus/client_golang/prometheus"

// Instrumentation is the optional Prometheus hook described in
// SPEC_FULL.md §4.O: when a Registerer is attached via WithInstrumentation,
// a counter increments per flush cycle, per flushFrames call (labelled by
// coalesced-task count), and per error caught by a Tryer or bubbled to
// onError. With no registerer attached it is a complete no-op, grounded on
// vango-go-vango's and newbpydev-bubblyui's shared use of
// prometheus/client_golang for their own UI-loop metrics.
type Instrumentation struct {
	enabled bool

	flushes  prometheus.Counter
	frames   *prometheus.CounterVec
	errors   prometheus.Counter
}

// NewInstrumentation registers Pulsar's metrics on reg and returns a handle
// the application root threads through the flush/frame/error paths it
// instruments. Passing a nil reg yields a disabled (zero-cost) handle.
func NewInstrumentation(reg prometheus.Registerer) *Instrumentation {
	if reg == nil {
		return &Instrumentation{}
	}

	i := &Instrumentation{
		enabled: true,
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulsar_flush_total",
			Help: "Number of reactive batch flush cycles completed.",
		}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsar_frame_flush_total",
			Help: "Number of flushFrames calls, by coalesced task count bucket.",
		}, []string{"tasks"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulsar_render_errors_total",
			Help: "Number of render errors caught by a Tryer or bubbled to onError.",
		}),
	}

	reg.MustRegister(i.flushes, i.frames, i.errors)
	return i
}

func (i *Instrumentation) RecordFlush() {
	if i == nil || !i.enabled {
		return
	}
	i.flushes.Inc()
}

func (i *Instrumentation) RecordFrameFlush(taskCount int) {
	if i == nil || !i.enabled {
		return
	}
	i.frames.WithLabelValues(frameBucket(taskCount)).Inc()
}

func (i *Instrumentation) RecordError() {
	if i == nil || !i.enabled {
		return
	}
	i.errors.Inc()
}

func frameBucket(n int) string {
	switch {
	case n == 0:
		return "0"
	case n <= 4:
		return "1-4"
	case n <= 16:
		return "5-16"
	default:
		return "17+"
	}
}
