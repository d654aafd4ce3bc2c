package entity

// NoPlatform marks a body that is not standing on any platform
const NoPlatform = -1

// Body represents the physical body shared by the player and enemies.
// ActivePlatform is an index into the world's platform list, never an owning reference.
type Body struct {
	X, Y   float64 // top-left, pixels
	W, H   float64
	VX, VY float64 // pixels per frame at 60 fps

	Grounded       bool
	WasGrounded    bool
	ActivePlatform int
	Facing         Direction
}

// NewBody creates a body at (x, y) facing right, not standing on anything
func NewBody(x, y, w, h float64) Body {
	return Body{X: x, Y: y, W: w, H: h, ActivePlatform: NoPlatform, Facing: DirRight}
}

// Bounds returns the body's AABB
func (b *Body) Bounds() Rect {
	return Rect{b.X, b.Y, b.W, b.H}
}

// Bottom returns the y of the feet
func (b *Body) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center
func (b *Body) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center
func (b *Body) CenterY() float64 { return b.Y + b.H/2 }

// SetFeet places the body so its feet rest at y
func (b *Body) SetFeet(y float64) { b.Y = y - b.H }

// Resize changes the body size keeping the feet and horizontal center fixed
func (b *Body) Resize(w, h float64) {
	cx, feet := b.CenterX(), b.Bottom()
	b.W, b.H = w, h
	b.X = cx - w/2
	b.Y = feet - h
}

// Land marks the body as resting on top of platform id at surface y
func (b *Body) Land(id int, surfaceY float64) {
	b.SetFeet(surfaceY)
	b.VY = 0
	b.Grounded = true
	b.ActivePlatform = id
}
