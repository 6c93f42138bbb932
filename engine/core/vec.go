package core

import "math"

// Vec2 is a point or direction in world (canvas pixel) space
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromAngle returns a vector of length mag pointing at angle (radians)
func FromAngle(angle, mag float64) Vec2 {
	return Vec2{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}
}

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2      { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64              { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) IsZero() bool              { return v.X == 0 && v.Y == 0 }
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }

// AngleTo returns the angle from this point to another
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Normalize returns the unit vector and false when v has zero length.
// Callers treat the zero case as "no movement".
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Overlaps is the circle test used for every collision pair.
// Touching circles (distance == r1+r2) do not overlap.
func Overlaps(a Vec2, ra float64, b Vec2, rb float64) bool {
	return a.DistanceTo(b) < ra+rb
}

// Rect is an axis aligned bounds, used for the visible canvas
type Rect struct {
	W, H float64
}

// Contains reports whether p lies inside the rect grown by margin on every side
func (r Rect) Contains(p Vec2, margin float64) bool {
	return p.X > -margin && p.X < r.W+margin && p.Y > -margin && p.Y < r.H+margin
}

// Clamp keeps p at least inset away from every edge
func (r Rect) Clamp(p Vec2, inset float64) Vec2 {
	return Vec2{
		X: math.Max(inset, math.Min(r.W-inset, p.X)),
		Y: math.Max(inset, math.Min(r.H-inset, p.Y)),
	}
}

// Countdown decrements a tick timer by one, never below zero
func Countdown(t *float64) {
	if *t > 0 {
		*t--
		if *t < 0 {
			*t = 0
		}
	}
}
