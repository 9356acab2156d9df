package internal

import (
	"iter"
	"reflect"
)

type Signal struct {
	*ReactiveNode

	value        any
	pendingValue *any // nil if no pending value

	equals func(a, b any) bool

	subsHead *DependencyLink
}

func (r *Runtime) NewSignal(initial any) *Signal {
	return r.NewSignalWithEquals(initial, isEqual)
}

// NewSignalWithEquals creates a signal with a caller-supplied equality check,
// grounding createSignal's {equals?} option.
func (r *Runtime) NewSignalWithEquals(initial any, equals func(a, b any) bool) *Signal {
	if equals == nil {
		equals = isEqual
	}

	return &Signal{
		ReactiveNode: r.NewNode(),
		value:        initial,
		equals:       equals,
	}
}

func (s *Signal) Read() any {
	r := GetRuntime()

	r.tracker.Track(s)

	return s.Value()
}

// Write compares the new value against the current one using the signal's
// equality function; unchanged writes are silent no-ops (spec: "write(v)...
// if !equals(current,next), store and schedule"). Writes made while a
// subscriber of this signal is itself mid-run are not re-scheduled for that
// subscriber this flush (see Computed.running in computed.go) to break the
// self-write cycle called out in the concurrency model.
func (s *Signal) Write(v any) {
	r := GetRuntime()

	if s.equals(s.Value(), v) {
		return
	}

	s.pendingValue = &v
	s.Commit()

	r.heap.InsertAll(s.Subs())
	r.Schedule()
}

func (s *Signal) Value() any {
	if s.pendingValue != nil {
		return *s.pendingValue
	}

	return s.value
}

// Commit applies the pending value to the signal
func (s *Signal) Commit() {
	if s.pendingValue != nil {
		s.value = *s.pendingValue
		s.pendingValue = nil
	}
}

// Subs returns an iterator over all subscribers
func (s *Signal) Subs() iter.Seq[*Computed] {
	return func(yield func(*Computed) bool) {
		link := s.subsHead
		for link != nil {
			if !yield(link.sub) {
				return
			}

			link = link.nextSub
		}
	}
}

func (s *Signal) addSubLink(link *DependencyLink) {
	if s.subsHead == nil {
		s.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := s.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		s.subsHead.prevSub = link
	}
}

func (s *Signal) removeSubLink(link *DependencyLink) {
	// single node
	if link.prevSub == link {
		s.subsHead = nil
		link.prevSub = nil
		link.nextSub = nil
		return
	}

	// multiple nodes
	if link == s.subsHead {
		s.subsHead = link.nextSub
	} else {
		link.prevSub.nextSub = link.nextSub
	}

	if link.nextSub != nil {
		link.nextSub.prevSub = link.prevSub
	} else {
		s.subsHead.prevSub = link.prevSub
	}

	link.prevSub = nil
	link.nextSub = nil
}

// isEqual is the default equality used when createSignal/createMemo are not
// given an explicit {equals} option. Most values stored in a signal are
// comparable (numbers, strings, structs of comparable fields, pointers), so
// the common path is a plain ==; slices, maps and funcs aren't comparable
// with == and fall back to reflect.DeepEqual instead of panicking.
func isEqual(a, b any) bool {
	if isComparableKind(a) && isComparableKind(b) {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}

func isComparableKind(v any) bool {
	if v == nil {
		return true
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	default:
		return true
	}
}
