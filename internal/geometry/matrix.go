package geometry

import "math"

// Matrix2D is a 2D affine transformation matrix stored as [a, b, c, d, e, f]:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
// a/d carry scale, b/c rotation, e/f translation. The compositor composes
// these to place rotated images; the geometry layer uses them for rotated
// bounding boxes.
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, 0, 0}
}

// RotateDegrees returns a rotation matrix for an angle in degrees.
func RotateDegrees(degrees float64) Matrix2D {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// Mul multiplies this matrix by another: result = m * other.
// 'other' is applied first, then m.
func (m Matrix2D) Mul(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Apply transforms a point.
func (m Matrix2D) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformRect transforms a rectangle and returns its axis-aligned
// bounding box.
func (m Matrix2D) TransformRect(r Rect) Rect {
	p0 := m.Apply(Point{X: r.X, Y: r.Y})
	p1 := m.Apply(Point{X: r.X + r.Width, Y: r.Y})
	p2 := m.Apply(Point{X: r.X + r.Width, Y: r.Y + r.Height})
	p3 := m.Apply(Point{X: r.X, Y: r.Y + r.Height})

	minX := min(p0.X, min(p1.X, min(p2.X, p3.X)))
	minY := min(p0.Y, min(p1.Y, min(p2.Y, p3.Y)))
	maxX := max(p0.X, max(p1.X, max(p2.X, p3.X)))
	maxY := max(p0.Y, max(p1.Y, max(p2.Y, p3.Y)))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
