package pulsar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		read, write := CreateSignal(0)
		assert.Equal(t, 0, read())

		write(10)
		assert.Equal(t, 10, read())
	})

	t.Run("equal write is a no-op", func(t *testing.T) {
		read, write := CreateSignal(0)
		runs := 0

		CreateEffect(func() {
			read()
			runs++
		})
		assert.Equal(t, 1, runs)

		write(0)
		assert.Equal(t, 1, runs)

		write(1)
		assert.Equal(t, 2, runs)
	})

	t.Run("custom equals", func(t *testing.T) {
		type box struct{ n int }
		read, write := CreateSignal(box{1}, SignalOptions[box]{
			Equals: func(a, b box) bool { return a.n == b.n },
		})
		runs := 0
		CreateEffect(func() {
			read()
			runs++
		})

		write(box{1})
		assert.Equal(t, 1, runs)

		write(box{2})
		assert.Equal(t, 2, runs)
	})

	t.Run("zero values", func(t *testing.T) {
		read, write := CreateSignal[error](nil)
		assert.Nil(t, read())

		write(errors.New("oops"))
		assert.EqualError(t, read(), "oops")
	})
}

func TestMemo(t *testing.T) {
	t.Run("derives and caches", func(t *testing.T) {
		a, setA := CreateSignal(1)
		b, setB := CreateSignal(2)
		runs := 0

		sum := CreateMemo(func() int {
			runs++
			return a() + b()
		})

		assert.Equal(t, 3, sum())
		assert.Equal(t, 1, runs)

		setA(10)
		assert.Equal(t, 12, sum())
		assert.Equal(t, 2, runs)

		setB(2) // unchanged write, no dependency re-run
		assert.Equal(t, 2, runs)
	})
}

func TestEffect(t *testing.T) {
	t.Run("counter scenario", func(t *testing.T) {
		n, setN := CreateSignal(0)
		var lastText string

		CreateEffect(func() {
			lastText = "Count: " + itoa(n())
		})
		assert.Equal(t, "Count: 0", lastText)

		setN(1)
		setN(2)
		assert.Equal(t, "Count: 2", lastText)
	})

	t.Run("dispose stops future runs", func(t *testing.T) {
		n, setN := CreateSignal(0)
		runs := 0

		dispose := CreateEffect(func() {
			n()
			runs++
		})
		assert.Equal(t, 1, runs)

		dispose()
		setN(1)
		assert.Equal(t, 1, runs)
	})

	t.Run("nested effects are disposed on parent rerun", func(t *testing.T) {
		outer, setOuter := CreateSignal(0)
		log := []string{}

		CreateEffect(func() {
			outer()
			CreateEffect(func() {
				log = append(log, "child")
				OnCleanup(func() { log = append(log, "child-cleanup") })
			})
		})
		assert.Equal(t, []string{"child"}, log)

		setOuter(1)
		assert.Equal(t, []string{"child", "child-cleanup", "child"}, log)
	})
}

func TestBatch(t *testing.T) {
	t.Run("batched geometry runs each effect once", func(t *testing.T) {
		cx, setCx := CreateSignal(0)
		cy, setCy := CreateSignal(0)
		r, setR := CreateSignal(0)

		cxRuns, cyRuns, rRuns := 0, 0, 0
		CreateEffect(func() { cx(); cxRuns++ })
		CreateEffect(func() { cy(); cyRuns++ })
		CreateEffect(func() { r(); rRuns++ })

		Batch(func() {
			setCx(200)
			setCy(300)
			setR(50)
		})

		assert.Equal(t, 200, cx())
		assert.Equal(t, 300, cy())
		assert.Equal(t, 50, r())
		assert.Equal(t, 2, cxRuns)
		assert.Equal(t, 2, cyRuns)
		assert.Equal(t, 2, rRuns)
	})

	t.Run("re-entrant batch nests without flushing early", func(t *testing.T) {
		n, setN := CreateSignal(0)
		runs := 0
		CreateEffect(func() { n(); runs++ })

		Batch(func() {
			setN(1)
			Batch(func() {
				setN(2)
			})
			assert.Equal(t, 1, runs, "inner batch exit must not flush yet")
		})
		assert.Equal(t, 2, runs)
	})
}

func TestUntrack(t *testing.T) {
	t.Run("suppresses dependency capture", func(t *testing.T) {
		a, setA := CreateSignal(1)
		b, setB := CreateSignal(2)
		runs := 0

		CreateEffect(func() {
			runs++
			a()
			Untrack(func() any { return b() })
		})
		assert.Equal(t, 1, runs)

		setB(20)
		assert.Equal(t, 1, runs, "effect must not have subscribed to b")

		setA(10)
		assert.Equal(t, 2, runs)
	})
}

func TestOwner(t *testing.T) {
	t.Run("dispose tears down cleanups in reverse order", func(t *testing.T) {
		var log []string
		o := NewOwner()

		o.Run(func() {
			CreateEffect(func() {
				log = append(log, "effect")
				OnCleanup(func() { log = append(log, "cleanup") })
			})
		})

		log = append(log, "ran")
		o.Dispose()
		log = append(log, "disposed")

		assert.Equal(t, []string{"effect", "ran", "cleanup", "disposed"}, log)
	})

	t.Run("onError catches a panic inside Run", func(t *testing.T) {
		o := NewOwner()
		var caught any
		o.OnError(func(r any) { caught = r })

		o.Run(func() {
			panic("boom")
		})

		assert.Equal(t, "boom", caught)
	})
}

func TestFrameScheduler(t *testing.T) {
	t.Run("coalesces same-key tasks, last writer wins", func(t *testing.T) {
		cx, setCx := CreateSignal(0)
		cy, setCy := CreateSignal(0)

		for i := 0; i < 50; i++ {
			i := i
			ScheduleFrame("drag", func() {
				Batch(func() {
					setCx(i * 5)
					setCy(i * 3)
				})
			})
		}

		assert.Equal(t, 0, cx(), "nothing should apply before flush")

		ran := FlushFrames()
		assert.Equal(t, 1, ran)
		assert.Equal(t, 49*5, cx())
		assert.Equal(t, 49*3, cy())
	})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
