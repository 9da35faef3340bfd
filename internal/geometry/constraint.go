package geometry

import "math"

// Handle identifies one of the eight resize grab points, or the rotate grab
// point, on a selected image's frame.
type Handle string

const (
	HandleNone   Handle = ""
	HandleNW     Handle = "nw"
	HandleN      Handle = "n"
	HandleNE     Handle = "ne"
	HandleE      Handle = "e"
	HandleSE     Handle = "se"
	HandleS      Handle = "s"
	HandleSW     Handle = "sw"
	HandleW      Handle = "w"
	HandleRotate Handle = "rotate"
)

// IsResize reports whether the handle is one of the eight resize points.
func (h Handle) IsResize() bool {
	switch h {
	case HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW:
		return true
	}
	return false
}

// IsCorner reports whether the handle is a corner resize point.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleNW, HandleNE, HandleSE, HandleSW:
		return true
	}
	return false
}

// ClampToBounds translates rect by the minimum delta so it lies within
// bounds. The rect is never resized. If the rect is larger than bounds on an
// axis, it is centered on that axis instead, since no translation can make
// it fit.
func ClampToBounds(rect, bounds Rect) Rect {
	out := rect

	if rect.Width > bounds.Width {
		out.X = bounds.X + (bounds.Width-rect.Width)/2
	} else if rect.X < bounds.X {
		out.X = bounds.X
	} else if rect.X+rect.Width > bounds.X+bounds.Width {
		out.X = bounds.X + bounds.Width - rect.Width
	}

	if rect.Height > bounds.Height {
		out.Y = bounds.Y + (bounds.Height-rect.Height)/2
	} else if rect.Y < bounds.Y {
		out.Y = bounds.Y
	} else if rect.Y+rect.Height > bounds.Y+bounds.Height {
		out.Y = bounds.Y + bounds.Height - rect.Height
	}

	return out
}

// ResizeFromHandle computes the transform that results from dragging the
// given handle by delta, starting from the pre-drag transform.
//
// The anchor (the corner or edge opposite the dragged handle) stays fixed:
// the new position is recomputed from the anchor and the new size. Corner
// handles with aspectLocked preserve the pre-drag aspect ratio by letting
// the dominant-axis delta drive both axes. Edge handles resize only their
// own axis. Both axes are floored at minSize, and flooring never moves the
// anchor.
func ResizeFromHandle(start Transform, handle Handle, delta Point, minSize float64, aspectLocked bool) Transform {
	if !handle.IsResize() {
		return start
	}

	startW := start.Size.Width
	startH := start.Size.Height

	// Signed growth per axis for this handle. Dragging a west or north
	// handle outward means a negative pointer delta grows the rect.
	var dw, dh float64
	switch handle {
	case HandleE, HandleNE, HandleSE:
		dw = delta.X
	case HandleW, HandleNW, HandleSW:
		dw = -delta.X
	}
	switch handle {
	case HandleS, HandleSW, HandleSE:
		dh = delta.Y
	case HandleN, HandleNW, HandleNE:
		dh = -delta.Y
	}

	newW := startW + dw
	newH := startH + dh

	if handle.IsCorner() && aspectLocked && startW > 0 && startH > 0 {
		if math.Abs(dw) >= math.Abs(dh) {
			newH = newW * startH / startW
		} else {
			newW = newH * startW / startH
		}
	}

	newW = max(newW, minSize)
	newH = max(newH, minSize)

	out := start
	out.Size = Size{Width: newW, Height: newH}

	// Recompute position from the fixed anchor.
	switch handle {
	case HandleW, HandleNW, HandleSW:
		out.Position.X = start.Position.X + startW - newW
	default:
		out.Position.X = start.Position.X
	}
	switch handle {
	case HandleN, HandleNW, HandleNE:
		out.Position.Y = start.Position.Y + startH - newH
	default:
		out.Position.Y = start.Position.Y
	}

	return out
}

// RotationAngle returns the angle in degrees of the pointer position relative
// to a rotation center. Drag handlers use the difference between the current
// angle and the drag-start angle, so rotation is relative rather than
// absolute from the handle position.
func RotationAngle(center, pointer Point) float64 {
	return math.Atan2(pointer.Y-center.Y, pointer.X-center.X) * 180.0 / math.Pi
}

// PinchState describes the relationship between two active touch points.
type PinchState struct {
	Distance float64
	Angle    float64
	Midpoint Point
}

// ComputePinch returns the pinch state for two touch points. The gesture
// layer derives incremental scale as newDistance/startDistance and
// incremental rotation as newAngle - startAngle.
func ComputePinch(a, b Point) PinchState {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return PinchState{
		Distance: math.Hypot(dx, dy),
		Angle:    math.Atan2(dy, dx) * 180.0 / math.Pi,
		Midpoint: Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2},
	}
}
