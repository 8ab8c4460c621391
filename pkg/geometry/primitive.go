package geometry

import (
	"fmt"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/material"
)

// Shape is the closed set of primitive geometries: *Segment, *Circle and *Box
type Shape interface {
	fmt.Stringer
	shape()
}

func (*Segment) shape() {}
func (*Circle) shape()  {}
func (*Box) shape()     {}

// Primitive is a shape with a display color and a material. The material is
// held by pointer so several primitives may share one instance.
type Primitive struct {
	Shape    Shape
	Color    core.Vec3
	Material *material.Material
}

// NewPrimitive creates a new primitive
func NewPrimitive(shape Shape, color core.Vec3, mat *material.Material) *Primitive {
	return &Primitive{Shape: shape, Color: color, Material: mat}
}

// ClosestHit tests the primitive against the open interval (TMin, TMax) of
// isect. On a hit it narrows TMax and overwrites the normal, material and
// primitive. Callers sweeping a scene must test every primitive; a true
// return does not mean the hit is the closest one.
func (p *Primitive) ClosestHit(ray core.Ray, isect *Intersection) bool {
	t, normal, ok := p.intersect(ray, isect.TMin, isect.TMax)
	if !ok {
		return false
	}

	isect.TMax = t
	isect.Normal = normal
	isect.Material = p.Material
	isect.Primitive = p
	return true
}

// AnyHit reports whether the ray hits the primitive strictly closer than maxDistance
func (p *Primitive) AnyHit(ray core.Ray, maxDistance float64) bool {
	_, _, ok := p.intersect(ray, DefaultTMin, maxDistance)
	return ok
}

func (p *Primitive) intersect(ray core.Ray, tMin, tMax float64) (float64, core.Vec2, bool) {
	switch s := p.Shape.(type) {
	case *Segment:
		return s.intersect(ray, tMin, tMax)
	case *Circle:
		return s.intersect(ray, tMin, tMax)
	case *Box:
		return s.intersect(ray, tMin, tMax)
	}
	panic(fmt.Sprintf("geometry: unknown shape %T", p.Shape))
}

// ContainsPoint reports whether point lies on the primitive, used for picking
func (p *Primitive) ContainsPoint(point core.Vec2) bool {
	switch s := p.Shape.(type) {
	case *Segment:
		return s.containsPoint(point)
	case *Circle:
		return s.containsPoint(point)
	case *Box:
		return s.containsPoint(point)
	}
	panic(fmt.Sprintf("geometry: unknown shape %T", p.Shape))
}

// Translate moves the primitive rigidly by (dx, dy)
func (p *Primitive) Translate(dx, dy float64) {
	offset := core.NewVec2(dx, dy)
	switch s := p.Shape.(type) {
	case *Segment:
		s.A = s.A.Add(offset)
		s.B = s.B.Add(offset)
	case *Circle:
		s.Center = s.Center.Add(offset)
	case *Box:
		s.Center = s.Center.Add(offset)
	default:
		panic(fmt.Sprintf("geometry: unknown shape %T", p.Shape))
	}
}

// Outline returns the vertices of the closed outline in scene space
func (p *Primitive) Outline() []core.Vec2 {
	switch s := p.Shape.(type) {
	case *Segment:
		return []core.Vec2{s.A, s.B}
	case *Circle:
		return s.outline()
	case *Box:
		return s.corners()
	}
	panic(fmt.Sprintf("geometry: unknown shape %T", p.Shape))
}
