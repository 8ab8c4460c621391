package core

import "math"

// Vec2 represents a 2D point or direction in scene space
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Subtract returns the difference of two vectors
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Multiply returns the vector scaled by a scalar
func (v Vec2) Multiply(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec2) MultiplyVec(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the distance between two points
func (v Vec2) Distance(other Vec2) float64 {
	return v.Subtract(other).Length()
}

// Normalize returns a unit vector in the same direction
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{0, 0}
	}
	return Vec2{v.X / length, v.Y / length}
}

// Negate returns the negative of the vector
func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Perp returns the vector rotated by +90 degrees
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Rotate returns the vector rotated counter-clockwise by angle radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Reciprocal returns the component-wise inverse. Zero components map to
// signed infinities.
func (v Vec2) Reciprocal() Vec2 {
	return Vec2{1 / v.X, 1 / v.Y}
}

// Equals checks if two vectors are exactly equal
func (v Vec2) Equals(other Vec2) bool {
	return v.X == other.X && v.Y == other.Y
}

// Cross2D returns the z component of the 3D cross product of v1 and v2
func Cross2D(v1, v2 Vec2) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}
