package entity

import (
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// TimingFunction is the easing curve of a moving platform's oscillation
type TimingFunction int

const (
	TimingLinear TimingFunction = iota
	TimingSine
	TimingBounce
)

// String returns the timing name used in level files
func (t TimingFunction) String() string {
	switch t {
	case TimingSine:
		return "sine"
	case TimingBounce:
		return "bounce"
	default:
		return "linear"
	}
}

// ParseTimingFunction converts a level-file timing name. Unknown names return false.
func ParseTimingFunction(s string) (TimingFunction, bool) {
	switch strings.ToLower(s) {
	case "linear", "":
		return TimingLinear, true
	case "sine", "sin":
		return TimingSine, true
	case "bounce":
		return TimingBounce, true
	}
	return TimingLinear, false
}

// Factor maps a phase in [0,1) to an offset factor in [0,1]
func (t TimingFunction) Factor(phase float64) float64 {
	switch t {
	case TimingSine:
		return 0.5 + 0.5*math.Sin(2*math.Pi*phase)
	case TimingBounce:
		return bounceFactor(phase)
	default:
		// triangle wave 0 -> 1 -> 0
		if phase < 0.5 {
			return phase * 2
		}
		return 2 - phase*2
	}
}

// bounceFactor: accelerate out, decelerate on a short rebound, accelerate out again,
// then decelerate home.
func bounceFactor(phase float64) float64 {
	p := float32(phase)
	var v float32
	switch {
	case p < 0.3:
		v = ease.InCubic(p, 0, 1, 0.3)
	case p < 0.5:
		v = ease.OutCubic(p-0.3, 1, -0.3, 0.2)
	case p < 0.8:
		v = ease.InCubic(p-0.5, 0.7, 0.3, 0.3)
	default:
		v = ease.OutCubic(p-0.8, 1, -1, 0.2)
	}
	return clamp(float64(v), 0, 1)
}

// MovingData is the oscillation state of a moving platform
type MovingData struct {
	Start       Vec
	Offset      Vec     // displacement at factor 1
	SpeedFactor float64 // cycles per second
	Timing      TimingFunction
	Phase       float64 // [0,1)

	Delta Vec // movement applied by the last Advance
}

// PositionAt returns Start + Offset*factor(phase)
func (m *MovingData) PositionAt(phase float64) Vec {
	return m.Start.Add(m.Offset.Scale(m.Timing.Factor(phase)))
}
