// Package host turns the per-frame outside size reported by the game runtime
// into resize notifications.
package host

import (
	"math"
	"sync"
)

// ResizeFunc receives the new outside size of the window in pixels.
type ResizeFunc func(width, height float64)

// Resizer is the capability the scene needs from a host environment.
type Resizer interface {
	Size() (width, height float64)
	Subscribe(fn ResizeFunc) (unsubscribe func())
}

// Window records the outside size and notifies subscribers when it changes.
type Window struct {
	mu     sync.Mutex
	width  float64
	height float64
	known  bool

	nextID int
	subs   map[int]ResizeFunc
	order  []int
}

func NewWindow() *Window {
	return &Window{subs: make(map[int]ResizeFunc)}
}

// Size returns the last observed size, or zero before the first observation.
func (w *Window) Size() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Subscribe registers fn for future size changes. The returned func removes
// it and may be called any number of times.
func (w *Window) Subscribe(fn ResizeFunc) func() {
	if fn == nil {
		return func() {}
	}

	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.order = append(w.order, id)
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.subs, id)
			for i, v := range w.order {
				if v == id {
					w.order = append(w.order[:i], w.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Observe records a size reported by the runtime and notifies subscribers if
// it differs from the previous one. Zero, negative and non-finite sizes are
// dropped; ebiten reports 0x0 while the window is minimised. It reports
// whether subscribers were notified.
func (w *Window) Observe(width, height float64) bool {
	if !validDimension(width) || !validDimension(height) {
		return false
	}

	w.mu.Lock()
	if w.known && width == w.width && height == w.height {
		w.mu.Unlock()
		return false
	}
	w.width, w.height, w.known = width, height, true
	fns := make([]ResizeFunc, 0, len(w.order))
	for _, id := range w.order {
		fns = append(fns, w.subs[id])
	}
	w.mu.Unlock()

	// Callbacks run unlocked so they may subscribe or unsubscribe.
	for _, fn := range fns {
		fn(width, height)
	}
	return true
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
