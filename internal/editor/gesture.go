package editor

import (
	"github.com/pressproof/pressproof/backend-go/internal/geometry"
)

// PointerEvent is a discrete pointer/touch command injected by the host.
// Coordinates are raw screen pixels; the editor divides by the display scale
// factor before touching logical state. Handle is set when the pointer went
// down on a control handle of the selected image; TargetID may carry the
// host's own hit-test result, otherwise the editor hit-tests itself.
type PointerEvent struct {
	PointerID int             `json:"pointerId"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Handle    geometry.Handle `json:"handle,omitempty"`
	TargetID  string          `json:"targetId,omitempty"`
}

type gestureMode int

const (
	modeNone gestureMode = iota
	modeMove
	modeResize
	modeRotate
	modePinch
)

// dragState is the transient gesture capture: the state-machine variant plus
// everything snapshotted at pointer-down. It is process-local and never part
// of the exported snapshot.
type dragState struct {
	mode           gestureMode
	targetID       string
	handle         geometry.Handle
	pointerID      int
	startPointer   geometry.Point
	startTransform geometry.Transform

	// pinch tracking
	secondPointerID int
	startPinch      geometry.PinchState
	primaryPos      geometry.Point
	secondaryPos    geometry.Point
}

func (e *Editor) toLogical(ev PointerEvent) geometry.Point {
	return geometry.Point{X: ev.X / e.displayScale, Y: ev.Y / e.displayScale}
}

// hitTest returns the topmost image under the logical point, accounting for
// rotation, or nil. Later collection entries are on top, so iteration runs
// back to front.
func (e *Editor) hitTest(p geometry.Point) *Image {
	images := e.active().Images()
	for i := len(images) - 1; i >= 0; i-- {
		img := images[i]
		local := p
		if img.Transform.Rotation != 0 {
			c := img.Transform.Center()
			m := geometry.Translate(c.X, c.Y).
				Mul(geometry.RotateDegrees(-img.Transform.Rotation)).
				Mul(geometry.Translate(-c.X, -c.Y))
			local = m.Apply(p)
		}
		if img.Transform.Rect().Contains(local) {
			return img
		}
	}
	return nil
}

// PointerDown starts a gesture. Over a control handle of the selected image
// it begins a resize or rotate drag; over an image it selects it and begins
// a move drag; a second simultaneous pointer on the same target upgrades a
// drag to a pinch. A miss is a no-op and the machine stays idle.
func (e *Editor) PointerDown(ev PointerEvent) {
	p := e.toLogical(ev)

	switch e.drag.mode {
	case modePinch:
		// Two pointers already tracked; further ones are ignored.
		return

	case modeMove, modeResize, modeRotate:
		e.tryStartPinch(ev, p)
		return
	}

	switch {
	case ev.Handle == geometry.HandleRotate:
		if !e.cfg.AllowRotation {
			return
		}
		img := e.selected()
		if img == nil {
			return
		}
		e.drag = dragState{
			mode:           modeRotate,
			targetID:       img.ID,
			pointerID:      ev.PointerID,
			startPointer:   p,
			startTransform: img.Transform,
		}

	case ev.Handle.IsResize():
		img := e.selected()
		if img == nil {
			return
		}
		e.drag = dragState{
			mode:           modeResize,
			targetID:       img.ID,
			handle:         ev.Handle,
			pointerID:      ev.PointerID,
			startPointer:   p,
			startTransform: img.Transform,
		}

	default:
		var img *Image
		if ev.TargetID != "" {
			img = e.active().Get(ev.TargetID)
		} else {
			img = e.hitTest(p)
		}
		if img == nil {
			return
		}
		e.drag = dragState{
			mode:           modeMove,
			targetID:       img.ID,
			pointerID:      ev.PointerID,
			startPointer:   p,
			startTransform: img.Transform,
		}
		e.Select(img.ID)
	}
}

// tryStartPinch upgrades a single-pointer drag to a pinch when a second
// pointer lands on the same target. The target's transform is re-captured at
// pinch start.
func (e *Editor) tryStartPinch(ev PointerEvent, p geometry.Point) {
	if ev.PointerID == e.drag.pointerID {
		return
	}
	img := e.active().Get(e.drag.targetID)
	if img == nil {
		e.drag = dragState{}
		return
	}
	if ev.TargetID != "" && ev.TargetID != img.ID {
		return
	}
	if ev.TargetID == "" && e.hitTest(p) != img {
		return
	}

	primary := e.drag.startPointer
	e.drag = dragState{
		mode:            modePinch,
		targetID:        img.ID,
		pointerID:       e.drag.pointerID,
		secondPointerID: ev.PointerID,
		startTransform:  img.Transform,
		startPinch:      geometry.ComputePinch(primary, p),
		primaryPos:      primary,
		secondaryPos:    p,
	}
}

// PointerMove applies the current gesture to the target. The updated
// transform is written into the active collection and the change listener
// fires before the call returns. If the target vanished between events the
// machine drops to idle without error.
func (e *Editor) PointerMove(ev PointerEvent) {
	if e.drag.mode == modeNone {
		return
	}

	img := e.active().Get(e.drag.targetID)
	if img == nil {
		e.drag = dragState{}
		return
	}

	p := e.toLogical(ev)

	if e.drag.mode == modePinch {
		switch ev.PointerID {
		case e.drag.pointerID:
			e.drag.primaryPos = p
		case e.drag.secondPointerID:
			e.drag.secondaryPos = p
		default:
			return
		}
		e.applyPinch(img)
		return
	}

	if ev.PointerID != e.drag.pointerID {
		return
	}

	start := e.drag.startTransform
	delta := geometry.Point{X: p.X - e.drag.startPointer.X, Y: p.Y - e.drag.startPointer.Y}

	switch e.drag.mode {
	case modeMove:
		t := start
		t.Position.X += delta.X
		t.Position.Y += delta.Y
		img.Transform = e.constrain(t)

	case modeResize:
		t := geometry.ResizeFromHandle(start, e.drag.handle, delta, e.cfg.MinImageSize, true)
		img.Transform = e.constrain(t)

	case modeRotate:
		// Rotation is relative: the delta between the current and the
		// drag-start cursor angle, added to the rotation at drag start.
		// Containment never applies to rotation.
		center := start.Center()
		startAngle := geometry.RotationAngle(center, e.drag.startPointer)
		angle := geometry.RotationAngle(center, p)
		t := start
		t.Rotation = start.Rotation + (angle - startAngle)
		img.Transform = t
	}

	e.notify()
}

func (e *Editor) applyPinch(img *Image) {
	start := e.drag.startTransform
	s0 := e.drag.startPinch
	if s0.Distance <= 0 {
		return
	}

	cur := geometry.ComputePinch(e.drag.primaryPos, e.drag.secondaryPos)
	scale := cur.Distance / s0.Distance

	t := start
	t.Size.Width = max(start.Size.Width*scale, e.cfg.MinImageSize)
	t.Size.Height = max(start.Size.Height*scale, e.cfg.MinImageSize)
	if e.cfg.AllowRotation {
		t.Rotation = start.Rotation + (cur.Angle - s0.Angle)
	}

	// Keep the pinch midpoint anchored: the start center's offset from the
	// start midpoint scales with the gesture.
	startCenter := start.Center()
	t.Position.X = cur.Midpoint.X + (startCenter.X-s0.Midpoint.X)*scale - t.Size.Width/2
	t.Position.Y = cur.Midpoint.Y + (startCenter.Y-s0.Midpoint.Y)*scale - t.Size.Height/2

	img.Transform = e.constrain(t)
	e.notify()
}

// PointerUp ends the gesture for a tracked pointer. There is no rollback:
// the last applied intermediate transform stands. Losing either pointer of a
// pinch drops straight to idle.
func (e *Editor) PointerUp(ev PointerEvent) {
	if e.drag.mode == modeNone {
		return
	}
	if ev.PointerID != e.drag.pointerID &&
		!(e.drag.mode == modePinch && ev.PointerID == e.drag.secondPointerID) {
		return
	}
	e.drag = dragState{}
}

// PointerCancel behaves like PointerUp: the machine returns to idle and the
// in-progress transform writes are kept.
func (e *Editor) PointerCancel(ev PointerEvent) {
	e.PointerUp(ev)
}

func (e *Editor) selected() *Image {
	if e.selection == "" {
		return nil
	}
	return e.active().Get(e.selection)
}
