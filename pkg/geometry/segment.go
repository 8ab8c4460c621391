package geometry

import (
	"fmt"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// Segment is the finite line between A and B. A degenerate segment (A == B)
// has no defined normal and is never hit.
type Segment struct {
	A, B core.Vec2
}

// NewSegment creates a new segment
func NewSegment(a, b core.Vec2) *Segment {
	return &Segment{A: a, B: b}
}

func (s *Segment) String() string {
	return fmt.Sprintf("segment (%.2f, %.2f)-(%.2f, %.2f)", s.A.X, s.A.Y, s.B.X, s.B.Y)
}

// intersect solves for the ray distance t and the projection u of the hit
// point onto the tangent. u is in squared-length units so the extent test
// needs no square root.
func (s *Segment) intersect(ray core.Ray, tMin, tMax float64) (float64, core.Vec2, bool) {
	tangent := s.B.Subtract(s.A)
	normal := tangent.Perp()

	t := normal.Dot(s.A.Subtract(ray.Origin)) / normal.Dot(ray.Direction)
	if !inRange(t, tMin, tMax) {
		return 0, core.Vec2{}, false
	}

	u := tangent.Dot(ray.At(t).Subtract(s.A))
	if !(u >= 0 && u <= tangent.LengthSquared()) {
		return 0, core.Vec2{}, false
	}

	return t, normal.Normalize(), true
}

// containsPoint tests the point against the rectangle that extends one unit
// to both sides of the segment
func (s *Segment) containsPoint(point core.Vec2) bool {
	ab := s.B.Subtract(s.A)
	side := core.NewVec2(ab.Y, -ab.X).Normalize()

	a := s.A.Add(side)
	b := s.B.Add(side)
	c := s.B.Subtract(side)
	return insideRectangle(a, b, c, point)
}

// insideRectangle reports whether point lies in the rectangle spanned by the
// consecutive corners a, b, c
func insideRectangle(a, b, c, point core.Vec2) bool {
	ab := b.Subtract(a)
	am := point.Subtract(a)
	bc := c.Subtract(b)
	bm := point.Subtract(b)

	dotABAM := ab.Dot(am)
	dotBCBM := bc.Dot(bm)
	return 0 <= dotABAM && dotABAM <= ab.Dot(ab) && 0 <= dotBCBM && dotBCBM <= bc.Dot(bc)
}
