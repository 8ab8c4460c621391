package geometry

import (
	"fmt"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// Box is an axis-aligned rectangle given by its center and half extents.
// Scene files call it "bbox".
type Box struct {
	Center   core.Vec2
	HalfSize core.Vec2
}

// NewBox creates a new axis-aligned box
func NewBox(center, halfSize core.Vec2) *Box {
	return &Box{Center: center, HalfSize: halfSize}
}

func (b *Box) String() string {
	return fmt.Sprintf("bbox (%.2f, %.2f) half=(%.2f, %.2f)", b.Center.X, b.Center.Y, b.HalfSize.X, b.HalfSize.Y)
}

// intersect uses the slab method. Zero direction components give infinite
// slab bounds through the reciprocal; a NaN bound (origin exactly on a slab
// plane with zero direction) propagates through min/max and misses.
//
// When the clamped entry distance equals tMin the origin is inside the box
// and the exit distance is reported, otherwise the entry distance.
func (b *Box) intersect(ray core.Ray, tMin, tMax float64) (float64, core.Vec2, bool) {
	invDir := ray.Direction.Reciprocal()
	pos := ray.Origin.Subtract(b.Center)

	tx1 := (-b.HalfSize.X - pos.X) * invDir.X
	tx2 := (b.HalfSize.X - pos.X) * invDir.X
	ty1 := (-b.HalfSize.Y - pos.Y) * invDir.Y
	ty2 := (b.HalfSize.Y - pos.Y) * invDir.Y

	near := max(tMin, min(tx1, tx2), min(ty1, ty2))
	far := min(tMax, max(tx1, tx2), max(ty1, ty2))
	if !(far >= near) {
		return 0, core.Vec2{}, false
	}

	t := near
	if near == tMin {
		t = far
	}
	if !inRange(t, tMin, tMax) {
		return 0, core.Vec2{}, false
	}

	var normal core.Vec2
	switch t {
	case tx1:
		normal = core.NewVec2(-1, 0)
	case tx2:
		normal = core.NewVec2(1, 0)
	case ty1:
		normal = core.NewVec2(0, -1)
	default:
		normal = core.NewVec2(0, 1)
	}
	return t, normal, true
}

func (b *Box) containsPoint(point core.Vec2) bool {
	c := b.corners()
	return insideRectangle(c[0], c[1], c[2], point)
}

// corners returns bottom-left, bottom-right, top-right, top-left
func (b *Box) corners() []core.Vec2 {
	return []core.Vec2{
		b.Center.Subtract(b.HalfSize),
		core.NewVec2(b.Center.X+b.HalfSize.X, b.Center.Y-b.HalfSize.Y),
		b.Center.Add(b.HalfSize),
		core.NewVec2(b.Center.X-b.HalfSize.X, b.Center.Y+b.HalfSize.Y),
	}
}
