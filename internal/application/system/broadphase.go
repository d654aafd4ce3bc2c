package system

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/younwookim/skyrunner/internal/domain/entity"
)

const (
	tagPlatform = "platform"
	tagProbe    = "probe"
)

// PlatformIndex is the broad phase over a level's platforms.
// Each platform has one object in a resolv spatial hash; queries return candidate
// platform indices in ascending order so resolution order never depends on hashing.
type PlatformIndex struct {
	platforms []*entity.Platform
	space     *resolv.Space
	objects   []*resolv.Object
	ids       map[*resolv.Object]int
	probe     *resolv.Object
	origin    entity.Vec
}

// NewPlatformIndex builds the index. bounds is the level rectangle; the space is
// grown to cover every platform and the full travel of moving platforms.
func NewPlatformIndex(platforms []*entity.Platform, bounds entity.Rect, cellSize int) *PlatformIndex {
	if cellSize <= 0 {
		cellSize = 32
	}

	extent := bounds
	for _, p := range platforms {
		extent = extent.Union(p.Rect)
		if p.Moving != nil {
			for _, f := range []float64{0, 1} {
				pos := p.Moving.Start.Add(p.Moving.Offset.Scale(f))
				extent = extent.Union(entity.Rect{X: pos.X, Y: pos.Y, W: p.W, H: p.H})
			}
		}
	}
	margin := float64(cellSize * 4)
	extent = extent.Inset(-margin, -margin)

	w := int(math.Ceil(extent.W))
	h := int(math.Ceil(extent.H))
	ix := &PlatformIndex{
		platforms: platforms,
		space:     resolv.NewSpace(w, h, cellSize, cellSize),
		objects:   make([]*resolv.Object, len(platforms)),
		ids:       make(map[*resolv.Object]int, len(platforms)),
		origin:    entity.Vec{X: extent.X, Y: extent.Y},
	}

	for i, p := range platforms {
		r := ix.toSpace(p.Rect)
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tagPlatform, p.Kind().String())
		ix.objects[i] = obj
		ix.ids[obj] = i
		ix.space.Add(obj)
	}

	ix.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	ix.space.Add(ix.probe)
	return ix
}

// Len returns the number of platforms
func (ix *PlatformIndex) Len() int { return len(ix.platforms) }

// Platform returns the platform at index i
func (ix *PlatformIndex) Platform(i int) *entity.Platform { return ix.platforms[i] }

// Platforms returns the indexed platforms
func (ix *PlatformIndex) Platforms() []*entity.Platform { return ix.platforms }

// Sync moves the objects of moving platforms. Each covers the platform's previous
// and current rect so queries against either position find it.
func (ix *PlatformIndex) Sync() {
	for i, p := range ix.platforms {
		if p.Moving == nil {
			continue
		}
		r := ix.toSpace(p.Rect.Union(p.PrevRect()))
		obj := ix.objects[i]
		obj.X, obj.Y, obj.W, obj.H = r.X, r.Y, r.W, r.H
		obj.Update()
	}
}

// Query returns the indices of platforms whose cells intersect r, ascending
func (ix *PlatformIndex) Query(r entity.Rect) []int {
	sr := ix.toSpace(r)
	ix.probe.X, ix.probe.Y = sr.X, sr.Y
	ix.probe.W, ix.probe.H = math.Max(sr.W, 1), math.Max(sr.H, 1)
	ix.probe.Update()

	check := ix.probe.Check(0, 0, tagPlatform)
	if check == nil {
		return nil
	}

	out := make([]int, 0, len(check.Objects))
	for _, obj := range check.Objects {
		if i, ok := ix.ids[obj]; ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// PointSupported reports whether (x, y) lies inside or on top of any platform
func (ix *PlatformIndex) PointSupported(x, y float64) bool {
	for _, i := range ix.Query(entity.Rect{X: x - 1, Y: y - 1, W: 2, H: 2}) {
		p := ix.platforms[i]
		if x < p.Left() || x > p.Right() {
			continue
		}
		if y >= p.SurfaceY(x) && y <= p.Bottom() {
			return true
		}
	}
	return false
}

func (ix *PlatformIndex) toSpace(r entity.Rect) entity.Rect {
	return r.Translate(-ix.origin.X, -ix.origin.Y)
}
