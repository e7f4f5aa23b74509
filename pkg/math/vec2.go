// Package math provides the float32 vector, matrix and quaternion types shared
// by the fairing geometry packages.
package math

import "github.com/chewxy/math32"

// Deg2Rad converts degrees to radians.
const Deg2Rad = math32.Pi / 180

// Vec2 is a 2D vector. The shape packages use it as (radius, height).
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector, or the zero vector for very short input.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l <= 1e-5 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated a quarter turn clockwise: (y, -x).
// For a silhouette walked bottom-up this points away from the axis.
func (v Vec2) Perp() Vec2 {
	return Vec2{v.Y, -v.X}
}

// Lerp interpolates between v and other. t is not clamped.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// Lerp interpolates between two scalars. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
