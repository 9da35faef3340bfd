package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampToBoundsInsideUnchanged(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 500}
	r := Rect{X: 50, Y: 60, Width: 100, Height: 100}
	assert.Equal(t, r, ClampToBounds(r, bounds))
}

func TestClampToBoundsTranslatesOnly(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 500}

	left := ClampToBounds(Rect{X: -30, Y: 10, Width: 100, Height: 100}, bounds)
	assert.Equal(t, Rect{X: 0, Y: 10, Width: 100, Height: 100}, left)

	bottomRight := ClampToBounds(Rect{X: 350, Y: 480, Width: 100, Height: 100}, bounds)
	assert.Equal(t, Rect{X: 300, Y: 400, Width: 100, Height: 100}, bottomRight)
}

func TestClampToBoundsOversizedCenters(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 400, Height: 500}

	// Wider than bounds: centered on x, clamped normally on y.
	r := ClampToBounds(Rect{X: 10, Y: -20, Width: 600, Height: 100}, bounds)
	assert.Equal(t, Rect{X: -100, Y: 0, Width: 600, Height: 100}, r)
}

func TestResizeFromHandleAnchorInvariance(t *testing.T) {
	start := Transform{
		Position: Point{X: 100, Y: 100},
		Size:     Size{Width: 80, Height: 60},
	}

	tests := []struct {
		handle Handle
		delta  Point
	}{
		{HandleNW, Point{X: -20, Y: -5}},
		{HandleNE, Point{X: 20, Y: -5}},
		{HandleSW, Point{X: -20, Y: 5}},
		{HandleSE, Point{X: 20, Y: 5}},
		{HandleN, Point{X: 0, Y: -30}},
		{HandleS, Point{X: 0, Y: 30}},
		{HandleE, Point{X: 30, Y: 0}},
		{HandleW, Point{X: -30, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(string(tt.handle), func(t *testing.T) {
			got := ResizeFromHandle(start, tt.handle, tt.delta, 20, true)

			// The side(s) opposite the dragged handle must not move.
			switch tt.handle {
			case HandleNW, HandleN, HandleNE:
				assert.InDelta(t, 160.0, got.Position.Y+got.Size.Height, 1e-9, "south edge moved")
			case HandleSW, HandleS, HandleSE:
				assert.InDelta(t, 100.0, got.Position.Y, 1e-9, "north edge moved")
			}
			switch tt.handle {
			case HandleNW, HandleW, HandleSW:
				assert.InDelta(t, 180.0, got.Position.X+got.Size.Width, 1e-9, "east edge moved")
			case HandleNE, HandleE, HandleSE:
				assert.InDelta(t, 100.0, got.Position.X, 1e-9, "west edge moved")
			}
		})
	}
}

func TestResizeFromHandleCornerPreservesAspect(t *testing.T) {
	start := Transform{
		Position: Point{X: 0, Y: 0},
		Size:     Size{Width: 80, Height: 60},
	}

	// X delta dominates: width drives, height follows the 4:3 ratio.
	got := ResizeFromHandle(start, HandleSE, Point{X: 40, Y: 10}, 20, true)
	assert.InDelta(t, 120.0, got.Size.Width, 1e-9)
	assert.InDelta(t, 90.0, got.Size.Height, 1e-9)

	// Y delta dominates: height drives.
	got = ResizeFromHandle(start, HandleSE, Point{X: 5, Y: 30}, 20, true)
	assert.InDelta(t, 120.0, got.Size.Width, 1e-9)
	assert.InDelta(t, 90.0, got.Size.Height, 1e-9)
}

func TestResizeFromHandleEdgeIgnoresAspect(t *testing.T) {
	start := Transform{
		Position: Point{X: 0, Y: 0},
		Size:     Size{Width: 80, Height: 60},
	}

	got := ResizeFromHandle(start, HandleE, Point{X: 40, Y: 100}, 20, true)
	assert.InDelta(t, 120.0, got.Size.Width, 1e-9)
	assert.InDelta(t, 60.0, got.Size.Height, 1e-9)
}

func TestResizeFromHandleFloorsAtMinSize(t *testing.T) {
	start := Transform{
		Position: Point{X: 0, Y: 0},
		Size:     Size{Width: 100, Height: 100},
	}

	got := ResizeFromHandle(start, HandleSE, Point{X: -200, Y: -200}, 20, true)
	assert.Equal(t, Size{Width: 20, Height: 20}, got.Size)
	// Flooring never moves the anchor: the nw corner stays at the origin.
	assert.Equal(t, Point{X: 0, Y: 0}, got.Position)

	// Shrinking through a west handle keeps the east edge anchored too.
	got = ResizeFromHandle(start, HandleNW, Point{X: 300, Y: 300}, 20, true)
	assert.Equal(t, Size{Width: 20, Height: 20}, got.Size)
	assert.InDelta(t, 100.0, got.Position.X+got.Size.Width, 1e-9)
	assert.InDelta(t, 100.0, got.Position.Y+got.Size.Height, 1e-9)
}

func TestResizeFromHandleNonResizeHandleIsNoop(t *testing.T) {
	start := Transform{Position: Point{X: 1, Y: 2}, Size: Size{Width: 30, Height: 40}}
	assert.Equal(t, start, ResizeFromHandle(start, HandleRotate, Point{X: 50, Y: 50}, 20, true))
	assert.Equal(t, start, ResizeFromHandle(start, HandleNone, Point{X: 50, Y: 50}, 20, true))
}

func TestRotationAngle(t *testing.T) {
	c := Point{X: 0, Y: 0}
	assert.InDelta(t, 0.0, RotationAngle(c, Point{X: 10, Y: 0}), 1e-9)
	assert.InDelta(t, 90.0, RotationAngle(c, Point{X: 0, Y: 10}), 1e-9)
	assert.InDelta(t, 180.0, RotationAngle(c, Point{X: -10, Y: 0}), 1e-9)
	assert.InDelta(t, -90.0, RotationAngle(c, Point{X: 0, Y: -10}), 1e-9)
}

func TestComputePinch(t *testing.T) {
	s := ComputePinch(Point{X: 0, Y: 0}, Point{X: 30, Y: 40})
	assert.InDelta(t, 50.0, s.Distance, 1e-9)
	assert.Equal(t, Point{X: 15, Y: 20}, s.Midpoint)

	horizontal := ComputePinch(Point{X: 10, Y: 10}, Point{X: 50, Y: 10})
	assert.InDelta(t, 0.0, horizontal.Angle, 1e-9)
}

func TestNormalizeDegrees(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeDegrees(720), 1e-9)
	assert.InDelta(t, 270.0, NormalizeDegrees(-90), 1e-9)
	assert.InDelta(t, 45.0, NormalizeDegrees(405), 1e-9)
}

func TestTransformAABBRotated(t *testing.T) {
	tr := Transform{
		Position: Point{X: 0, Y: 0},
		Size:     Size{Width: 40, Height: 20},
		Rotation: 90,
	}

	// Rotating 90 degrees about the center (20, 10) swaps the extents.
	aabb := tr.AABB()
	assert.InDelta(t, 10.0, aabb.X, 1e-9)
	assert.InDelta(t, -10.0, aabb.Y, 1e-9)
	assert.InDelta(t, 20.0, aabb.Width, 1e-9)
	assert.InDelta(t, 40.0, aabb.Height, 1e-9)
}

func TestMatrixCompose(t *testing.T) {
	m := Translate(10, 20).Mul(Scale(2, 3))
	p := m.Apply(Point{X: 1, Y: 1})
	assert.InDelta(t, 12.0, p.X, 1e-9)
	assert.InDelta(t, 23.0, p.Y, 1e-9)
}
