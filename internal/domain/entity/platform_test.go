package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatformKind(t *testing.T) {
	tests := []struct {
		in     string
		want   PlatformKind
		wantOK bool
	}{
		{"ground", KindGround, true},
		{"platform", KindPlatform, true},
		{"one-way", KindOneWay, true},
		{"ONEWAY", KindOneWay, true},
		{"slope", KindSlope, true},
		{"moving", KindMoving, true},
		{"lava", KindGround, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePlatformKind(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatform_Predicates(t *testing.T) {
	ground := NewPlatform(KindGround, Rect{0, 0, 32, 32})
	oneWay := NewPlatform(KindOneWay, Rect{0, 0, 32, 8})
	slope := NewSlope(Rect{0, 0, 32, 32}, 30, DirRight)

	assert.True(t, ground.IsSolid())
	assert.False(t, ground.IsOneWay())
	assert.True(t, oneWay.IsOneWay())
	assert.False(t, oneWay.IsSolid())
	assert.True(t, slope.IsSlope())
	assert.False(t, slope.IsSolid())
	assert.Equal(t, KindSlope, slope.Kind())
}

func TestSlope_HeightContinuity(t *testing.T) {
	p := NewSlope(Rect{0, 0, 100, 60}, 30, DirRight)

	rise := math.Tan(30*math.Pi/180) * 100
	assert.InDelta(t, rise, p.RiseAtFullWidth(), 1e-9)
	assert.False(t, p.HeightAt(0) > p.HeightAt(100), "right-ascending slope is higher on the right")
	assert.InDelta(t, 0.0, p.HeightAt(0), 1e-9)
	assert.InDelta(t, rise, p.HeightAt(100), 1e-9)

	prev := p.HeightAt(0)
	for x := 1.0; x <= 100; x++ {
		h := p.HeightAt(x)
		assert.GreaterOrEqual(t, h, prev)
		assert.InDelta(t, rise*x/100, h, 1e-9, "linear at x=%v", x)
		prev = h
	}
}

func TestSlope_LeftDirection(t *testing.T) {
	p := NewSlope(Rect{0, 0, 100, 60}, 45, DirLeft)

	assert.InDelta(t, 100.0, p.HeightAt(0), 1e-9)
	assert.InDelta(t, 0.0, p.HeightAt(100), 1e-9)
	assert.InDelta(t, 60.0-50.0, p.SurfaceY(50), 1e-9)
	assert.Less(t, p.SignedAngle(), 0.0)
}

func TestSlope_HeightClampedOutsideSpan(t *testing.T) {
	p := NewSlope(Rect{100, 0, 100, 60}, 30, DirRight)

	assert.Equal(t, p.HeightAt(100), p.HeightAt(-50))
	assert.Equal(t, p.HeightAt(200), p.HeightAt(500))
}

func TestTimingFunction_Factor(t *testing.T) {
	t.Run("linear is a triangle wave", func(t *testing.T) {
		assert.InDelta(t, 0.0, TimingLinear.Factor(0), 1e-9)
		assert.InDelta(t, 0.5, TimingLinear.Factor(0.25), 1e-9)
		assert.InDelta(t, 1.0, TimingLinear.Factor(0.5), 1e-9)
		assert.InDelta(t, 0.5, TimingLinear.Factor(0.75), 1e-9)
	})

	t.Run("sine", func(t *testing.T) {
		assert.InDelta(t, 0.5, TimingSine.Factor(0), 1e-9)
		assert.InDelta(t, 1.0, TimingSine.Factor(0.25), 1e-9)
		assert.InDelta(t, 0.0, TimingSine.Factor(0.75), 1e-9)
	})

	t.Run("bounce is continuous at sub-interval boundaries", func(t *testing.T) {
		for _, b := range []float64{0.3, 0.5, 0.8} {
			assert.InDelta(t, TimingBounce.Factor(b-1e-6), TimingBounce.Factor(b), 1e-3, "boundary %v", b)
		}
		assert.InDelta(t, 0.0, TimingBounce.Factor(0), 1e-6)
		assert.InDelta(t, 1.0, TimingBounce.Factor(0.3), 1e-3)
		assert.InDelta(t, 0.7, TimingBounce.Factor(0.5), 1e-3)
		for p := 0.0; p < 1; p += 0.01 {
			f := TimingBounce.Factor(p)
			assert.True(t, f >= 0 && f <= 1, "factor %v out of range at %v", f, p)
		}
	})
}

func TestMovingPlatform_Advance(t *testing.T) {
	p := NewMovingPlatform(Rect{100, 200, 64, 16}, MovingData{
		Offset:      Vec{100, 0},
		SpeedFactor: 0.5,
		Timing:      TimingLinear,
	}, nil)
	require.True(t, p.IsMoving())

	dt := 1.0 / 60
	var sum Vec
	for i := 0; i < 120; i++ {
		before := p.Rect
		p.Advance(dt, 0.01)
		d := p.Delta()
		assert.InDelta(t, before.X+d.X, p.X, 1e-9, "delta matches movement")
		assert.InDelta(t, before.X, p.PrevRect().X, 1e-9)
		assert.InDelta(t, before.Y, p.PrevRect().Y, 1e-9)
		assert.GreaterOrEqual(t, p.Moving.Phase, 0.0)
		assert.Less(t, p.Moving.Phase, 1.0)
		sum = sum.Add(d)
	}

	assert.InDelta(t, 0.0, sum.X, 0.05, "one full cycle returns to start")
	assert.InDelta(t, 100.0, p.X, 0.05)
}

func TestMovingPlatform_EpsilonSnap(t *testing.T) {
	p := NewMovingPlatform(Rect{0, 0, 32, 8}, MovingData{
		Offset:      Vec{0.5, 0},
		SpeedFactor: 0.001,
		Timing:      TimingLinear,
	}, nil)

	p.Advance(1.0/60, 0.01)

	assert.Zero(t, p.Delta().X)
	assert.Zero(t, p.X)
}

func TestMovingSlope_TracksPosition(t *testing.T) {
	p := NewMovingPlatform(Rect{0, 100, 100, 60}, MovingData{
		Offset:      Vec{0, -40},
		SpeedFactor: 1,
		Timing:      TimingSine,
	}, &SlopeData{AngleDegrees: 30, Direction: DirRight})
	require.True(t, p.IsSlope())

	before := p.SurfaceY(50)
	p.Advance(0.1, 0.01)

	assert.InDelta(t, before+p.Delta().Y, p.SurfaceY(50), 1e-9)
}

func TestPlatform_SameShape(t *testing.T) {
	a := NewPlatform(KindGround, Rect{0, 0, 32, 32})
	b := NewPlatform(KindGround, Rect{32, 0, 32, 32})
	c := NewPlatform(KindGround, Rect{32, 0, 32, 16})
	d := NewPlatform(KindOneWay, Rect{32, 0, 32, 32})

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
	assert.False(t, a.SameShape(d))
	assert.False(t, NewSlope(Rect{0, 0, 32, 32}, 30, DirRight).SameShape(NewSlope(Rect{32, 0, 32, 32}, 30, DirRight)))
}

func TestPlatform_CloneIsIndependent(t *testing.T) {
	p := NewMovingPlatform(Rect{0, 0, 32, 8}, MovingData{Offset: Vec{10, 0}, SpeedFactor: 1}, nil)
	c := p.Clone()

	c.Advance(0.25, 0.01)

	assert.NotEqual(t, p.Moving.Phase, c.Moving.Phase)
	assert.Zero(t, p.X)
}
