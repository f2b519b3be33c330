package host

import (
	"math"
	"testing"
)

func TestWindowNotifiesOnChangeOnly(t *testing.T) {
	w := NewWindow()
	var calls [][2]float64
	w.Subscribe(func(width, height float64) {
		calls = append(calls, [2]float64{width, height})
	})

	w.Observe(1280, 720)
	w.Observe(1280, 720)
	w.Observe(1280, 800)

	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}
	if calls[1] != [2]float64{1280, 800} {
		t.Fatalf("unexpected second notification %v", calls[1])
	}
	if gw, gh := w.Size(); gw != 1280 || gh != 800 {
		t.Fatalf("expected size 1280x800, got %vx%v", gw, gh)
	}
}

func TestWindowDropsInvalidSizes(t *testing.T) {
	cases := []struct {
		name string
		w, h float64
	}{
		{"minimised", 0, 0},
		{"negative", -1, 600},
		{"nan", math.NaN(), 600},
		{"inf", 800, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWindow()
			notified := false
			w.Subscribe(func(float64, float64) { notified = true })
			if w.Observe(tc.w, tc.h) || notified {
				t.Fatalf("expected %vx%v to be ignored", tc.w, tc.h)
			}
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	w := NewWindow()
	var a, b int
	unsubA := w.Subscribe(func(float64, float64) { a++ })
	w.Subscribe(func(float64, float64) { b++ })

	w.Observe(100, 100)
	unsubA()
	unsubA()
	w.Observe(200, 200)

	if a != 1 || b != 2 {
		t.Fatalf("expected a=1 b=2, got a=%d b=%d", a, b)
	}
}

func TestSubscriberMayUnsubscribeDuringDispatch(t *testing.T) {
	w := NewWindow()
	calls := 0
	var unsub func()
	unsub = w.Subscribe(func(float64, float64) {
		calls++
		unsub()
	})

	w.Observe(100, 100)
	w.Observe(200, 200)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestNilSubscriber(t *testing.T) {
	w := NewWindow()
	unsub := w.Subscribe(nil)
	unsub()
	w.Observe(10, 10)
}
