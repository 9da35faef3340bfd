package geometry

import "math"

// Point is a position in a view's logical coordinate space. Logical units are
// independent of the display scale factor, so stored transforms survive zoom
// changes on the host side.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in logical units. Both axes stay positive.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Transform places a rectangle in a view: top-left position, size, and a
// rotation in degrees about the rectangle's own center (never the origin).
type Transform struct {
	Position Point   `json:"position"`
	Size     Size    `json:"size"`
	Rotation float64 `json:"rotation"`
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Rect returns the unrotated rectangle the transform occupies.
func (t Transform) Rect() Rect {
	return Rect{X: t.Position.X, Y: t.Position.Y, Width: t.Size.Width, Height: t.Size.Height}
}

// Center returns the rotation center of the transform.
func (t Transform) Center() Point {
	return t.Rect().Center()
}

// AABB returns the axis-aligned bounding box of the transform's rectangle
// after rotation about its center. With zero rotation this is Rect itself.
func (t Transform) AABB() Rect {
	if t.Rotation == 0 {
		return t.Rect()
	}
	c := t.Center()
	m := Translate(c.X, c.Y).Mul(RotateDegrees(t.Rotation)).Mul(Translate(-c.X, -c.Y))
	return m.TransformRect(t.Rect())
}

// NormalizeDegrees maps an unbounded rotation to [0, 360) for display.
// The stored rotation itself is range-unrestricted.
func NormalizeDegrees(deg float64) float64 {
	norm := math.Mod(deg, 360)
	if norm < 0 {
		norm += 360
	}
	return norm
}
