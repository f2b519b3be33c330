package render

import (
	"math"

	"github.com/milk9111/hexpath/maze"
)

// stepFrames is how many ticks each recorded step stays on screen.
const stepFrames = 12

// playback walks a recorded run one step at a time.
type playback struct {
	steps []maze.Step
	index int
	frame int
}

func (p *playback) tick() {
	if p == nil || p.done() {
		return
	}
	p.frame++
	if p.frame >= stepFrames {
		p.frame = 0
		p.index++
	}
}

func (p *playback) done() bool {
	return p == nil || p.index >= len(p.steps)
}

// current returns the step being shown, if any.
func (p *playback) current() (maze.Step, bool) {
	if p == nil || len(p.steps) == 0 {
		return maze.Step{}, false
	}
	i := p.index
	if i >= len(p.steps) {
		i = len(p.steps) - 1
	}
	return p.steps[i], true
}

// progress is how far the current step's animation has run, in [0, 1].
func (p *playback) progress() float64 {
	if p.done() {
		return 1
	}
	return float64(p.frame) / stepFrames
}

// previous returns the step shown before the current one.
func (p *playback) previous() (maze.Step, bool) {
	if p == nil || p.index == 0 || len(p.steps) == 0 {
		return maze.Step{}, false
	}
	i := p.index - 1
	if i >= len(p.steps) {
		i = len(p.steps) - 1
	}
	return p.steps[i], true
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// lerpAngle turns from a towards b the short way round.
func lerpAngle(a, b, t float64) float64 {
	d := math.Remainder(b-a, 2*math.Pi)
	return a + t*d
}
