package entity

import (
	"math"
	"strings"
)

// PlatformKind is the collision category of a platform.
// It never changes after the platform is created.
type PlatformKind int

const (
	KindGround PlatformKind = iota
	KindPlatform
	KindOneWay
	KindSlope
	KindMoving
)

// String returns the kind name used in level files
func (k PlatformKind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindPlatform:
		return "platform"
	case KindOneWay:
		return "one-way"
	case KindSlope:
		return "slope"
	case KindMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// ParsePlatformKind converts a level-file kind name. Unknown names return false.
func ParsePlatformKind(s string) (PlatformKind, bool) {
	switch strings.ToLower(s) {
	case "ground", "":
		return KindGround, true
	case "platform", "solid":
		return KindPlatform, true
	case "one-way", "oneway", "one_way":
		return KindOneWay, true
	case "slope":
		return KindSlope, true
	case "moving":
		return KindMoving, true
	}
	return KindGround, false
}

// SlopeData describes the incline of a slope platform
type SlopeData struct {
	AngleDegrees float64
	Direction    Direction // DirRight: right edge is the high edge
}

// Platform is a static or moving collision segment.
// Rect always holds the current position.
type Platform struct {
	Rect
	ID int // index in the level's platform list

	kind   PlatformKind
	Slope  *SlopeData
	Moving *MovingData
}

// NewPlatform creates a flat platform of the given kind
func NewPlatform(kind PlatformKind, r Rect) *Platform {
	return &Platform{Rect: r, kind: kind}
}

// NewSlope creates a slope platform. Angles are clamped to [0, 89] degrees.
func NewSlope(r Rect, angleDeg float64, dir Direction) *Platform {
	if dir == DirNone {
		dir = DirRight
	}
	return &Platform{
		Rect:  r,
		kind:  KindSlope,
		Slope: &SlopeData{AngleDegrees: clamp(angleDeg, 0, 89), Direction: dir},
	}
}

// NewMovingPlatform creates a moving platform starting at r.
// slope may be nil; when set, the platform is also queried as a slope.
func NewMovingPlatform(r Rect, m MovingData, slope *SlopeData) *Platform {
	m.Start = Vec{r.X, r.Y}
	m.Phase = wrapPhase(m.Phase)
	p := &Platform{Rect: r, kind: KindMoving, Slope: slope, Moving: &m}
	pos := m.PositionAt(m.Phase)
	p.X, p.Y = pos.X, pos.Y
	return p
}

// Kind returns the immutable platform kind
func (p *Platform) Kind() PlatformKind { return p.kind }

// IsSlope reports whether slope height queries apply
func (p *Platform) IsSlope() bool { return p.Slope != nil }

// IsMoving reports whether the platform is advanced each tick
func (p *Platform) IsMoving() bool { return p.Moving != nil }

// IsOneWay reports whether the platform only blocks downward motion onto its top face
func (p *Platform) IsOneWay() bool { return p.kind == KindOneWay }

// IsSolid reports whether the platform blocks from every side
func (p *Platform) IsSolid() bool {
	return !p.IsSlope() && p.kind != KindOneWay
}

// RiseAtFullWidth returns tan(angle) * width
func (p *Platform) RiseAtFullWidth() float64 {
	if p.Slope == nil {
		return 0
	}
	return math.Tan(p.Slope.AngleDegrees*math.Pi/180) * p.W
}

// HeightAt returns the slope surface elevation above the platform's bottom edge
// at world x. x is clamped into the platform span; flat platforms return H.
func (p *Platform) HeightAt(x float64) float64 {
	if p.Slope == nil {
		return p.H
	}
	t := 0.0
	if p.W > 0 {
		t = clamp((x-p.X)/p.W, 0, 1)
	}
	rise := p.RiseAtFullWidth()
	if p.Slope.Direction == DirLeft {
		return rise * (1 - t)
	}
	return rise * t
}

// SurfaceY returns the world y of the walkable surface at x
func (p *Platform) SurfaceY(x float64) float64 {
	if p.Slope == nil {
		return p.Y
	}
	return p.Bottom() - p.HeightAt(x)
}

// SignedAngle returns the slope angle in radians, positive when rising to the right
func (p *Platform) SignedAngle() float64 {
	if p.Slope == nil {
		return 0
	}
	a := p.Slope.AngleDegrees * math.Pi / 180
	if p.Slope.Direction == DirLeft {
		return -a
	}
	return a
}

// Delta returns the last tick's movement (zero for static platforms)
func (p *Platform) Delta() Vec {
	if p.Moving == nil {
		return Vec{}
	}
	return p.Moving.Delta
}

// PrevRect returns the platform's rect before the last Advance
func (p *Platform) PrevRect() Rect {
	d := p.Delta()
	return p.Rect.Translate(-d.X, -d.Y)
}

// Advance steps a moving platform's phase and position.
// Per-axis deltas smaller than epsilon are dropped so riders never accumulate subpixel jitter.
func (p *Platform) Advance(dt, epsilon float64) {
	if p.Moving == nil {
		return
	}
	m := p.Moving
	m.Phase = wrapPhase(m.Phase + m.SpeedFactor*dt)

	target := m.PositionAt(m.Phase)
	d := Vec{target.X - p.X, target.Y - p.Y}
	if math.Abs(d.X) < epsilon {
		d.X = 0
	}
	if math.Abs(d.Y) < epsilon {
		d.Y = 0
	}
	p.X += d.X
	p.Y += d.Y
	m.Delta = d
}

// Clone returns a deep copy so moving state is never shared between worlds
func (p *Platform) Clone() *Platform {
	c := *p
	if p.Slope != nil {
		s := *p.Slope
		c.Slope = &s
	}
	if p.Moving != nil {
		m := *p.Moving
		c.Moving = &m
	}
	return &c
}

// SameShape reports whether two platforms may be merged into one wider record
func (p *Platform) SameShape(o *Platform) bool {
	if p.kind != o.kind || p.Y != o.Y || p.H != o.H {
		return false
	}
	if p.Slope != nil || o.Slope != nil {
		return false
	}
	if (p.Moving == nil) != (o.Moving == nil) {
		return false
	}
	if p.Moving != nil {
		a, b := p.Moving, o.Moving
		return a.Offset == b.Offset && a.SpeedFactor == b.SpeedFactor &&
			a.Timing == b.Timing && a.Phase == b.Phase && a.Start.Y == b.Start.Y
	}
	return true
}

func wrapPhase(p float64) float64 {
	p = math.Mod(p, 1)
	if p < 0 {
		p++
	}
	return p
}
