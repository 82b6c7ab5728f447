package audio

import (
	"math"
	"sort"
	"time"
)

// MinRampValue replaces non-positive exponential ramp targets.
const MinRampValue = 1e-4

// Transition selects how the envelope reaches a control point.
type Transition int

const (
	// SetValue jumps to the value at the point's time.
	SetValue Transition = iota
	// ExponentialRamp glides from the previous point to this one.
	ExponentialRamp
)

func (t Transition) String() string {
	switch t {
	case SetValue:
		return "set"
	case ExponentialRamp:
		return "exp_ramp"
	default:
		return "unknown"
	}
}

// ControlPoint is one automation event on a GainEnvelope.
type ControlPoint struct {
	At    time.Duration
	Value float64
	Kind  Transition
}

// GainEnvelope is a time-varying gain relative to mix start.
//
// Evaluation rules:
//   - before the first point, the initial value holds
//   - an ExponentialRamp point interpolates geometrically from the
//     previous point's (time, value) to its own
//   - after the last point, the last value holds
//
// Points with equal times keep insertion order.
type GainEnvelope struct {
	initial float64
	points  []ControlPoint
}

// NewGainEnvelope returns an envelope holding initial until automated.
func NewGainEnvelope(initial float64) *GainEnvelope {
	return &GainEnvelope{initial: initial}
}

// ConstantGain returns an envelope that never changes.
func ConstantGain(v float64) *GainEnvelope {
	return NewGainEnvelope(v)
}

// SetValueAt schedules an instantaneous change to v at offset at.
func (e *GainEnvelope) SetValueAt(v float64, at time.Duration) *GainEnvelope {
	e.insert(ControlPoint{At: at, Value: v, Kind: SetValue})

	return e
}

// ExponentialRampTo schedules a geometric ramp ending at v at offset at.
// Targets at or below zero are clamped to MinRampValue.
func (e *GainEnvelope) ExponentialRampTo(v float64, at time.Duration) *GainEnvelope {
	if v <= 0 || math.IsNaN(v) {
		v = MinRampValue
	}
	e.insert(ControlPoint{At: at, Value: v, Kind: ExponentialRamp})

	return e
}

// Points returns a copy of the scheduled control points.
func (e *GainEnvelope) Points() []ControlPoint {
	out := make([]ControlPoint, len(e.points))
	copy(out, e.points)

	return out
}

// Initial returns the value held before the first point.
func (e *GainEnvelope) Initial() float64 {
	return e.initial
}

// ValueAt evaluates the envelope at offset t.
func (e *GainEnvelope) ValueAt(t time.Duration) float64 {
	return e.ValueAtSeconds(t.Seconds())
}

// ValueAtSeconds evaluates the envelope at t seconds from mix start.
func (e *GainEnvelope) ValueAtSeconds(t float64) float64 {
	prevT, prevV := 0.0, e.initial

	for _, p := range e.points {
		at := p.At.Seconds()
		if at > t {
			if p.Kind == ExponentialRamp {
				return expInterpolate(prevT, prevV, at, p.Value, t)
			}

			return prevV
		}
		prevT, prevV = at, p.Value
	}

	return prevV
}

func (e *GainEnvelope) insert(p ControlPoint) {
	i := sort.Search(len(e.points), func(i int) bool {
		return e.points[i].At > p.At
	})
	e.points = append(e.points, ControlPoint{})
	copy(e.points[i+1:], e.points[i:])
	e.points[i] = p
}

// expInterpolate follows the Web Audio definition: v0·(v1/v0)^((t−t0)/(t1−t0)).
// A ramp starting from a non-positive value holds that value until t1.
func expInterpolate(t0, v0, t1, v1, t float64) float64 {
	if t1 <= t0 {
		return v1
	}
	if v0 <= 0 {
		return v0
	}
	if t <= t0 {
		return v0
	}

	return v0 * math.Pow(v1/v0, (t-t0)/(t1-t0))
}
