package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressproof/pressproof/backend-go/internal/geometry"
)

// placeImage adds an image and pins its transform so gesture tests start
// from known coordinates.
func placeImage(e *Editor, x, y, w, h float64) *Image {
	img := addTestImage(e, 100, 100)
	e.UpdateTransform(img.ID, geometry.Transform{
		Position: geometry.Point{X: x, Y: y},
		Size:     geometry.Size{Width: w, Height: h},
	})
	return img
}

func TestMoveGesture(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150})
	require.Equal(t, img.ID, e.Selection(), "pointer-down over an image selects it")

	e.PointerMove(PointerEvent{PointerID: 1, X: 180, Y: 130})
	assert.Equal(t, geometry.Point{X: 130, Y: 80}, img.Transform.Position)

	// Deltas accumulate from the drag start, not from the previous move.
	e.PointerMove(PointerEvent{PointerID: 1, X: 160, Y: 150})
	assert.Equal(t, geometry.Point{X: 110, Y: 100}, img.Transform.Position)

	e.PointerUp(PointerEvent{PointerID: 1})
	// No rollback: the last applied transform stands.
	assert.Equal(t, geometry.Point{X: 110, Y: 100}, img.Transform.Position)

	// After pointer-up the machine is idle; moves are ignored.
	e.PointerMove(PointerEvent{PointerID: 1, X: 300, Y: 300})
	assert.Equal(t, geometry.Point{X: 110, Y: 100}, img.Transform.Position)
}

func TestMoveClampsToPrintableArea(t *testing.T) {
	pa := geometry.Rect{X: 50, Y: 50, Width: 300, Height: 400}
	e := New(Config{Width: 400, Height: 500, PrintableArea: &pa})
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150})
	e.PointerMove(PointerEvent{PointerID: 1, X: -1000, Y: -1000})
	assert.Equal(t, geometry.Point{X: 50, Y: 50}, img.Transform.Position)

	e.PointerMove(PointerEvent{PointerID: 1, X: 1000, Y: 1000})
	assert.Equal(t, geometry.Point{X: 250, Y: 350}, img.Transform.Position)
}

func TestMoveUsesDisplayScale(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)
	e.SetDisplayScale(2)

	// Screen coordinates are twice the logical ones at scale 2.
	e.PointerDown(PointerEvent{PointerID: 1, X: 300, Y: 300})
	require.Equal(t, img.ID, e.Selection())

	e.PointerMove(PointerEvent{PointerID: 1, X: 400, Y: 300})
	assert.Equal(t, geometry.Point{X: 150, Y: 100}, img.Transform.Position)
}

func TestPointerDownOnEmptyCanvasIsNoop(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	// A miss starts no gesture and leaves the selection alone.
	e.PointerDown(PointerEvent{PointerID: 1, X: 390, Y: 490})
	assert.Equal(t, img.ID, e.Selection())

	e.PointerMove(PointerEvent{PointerID: 1, X: 200, Y: 200})
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, img.Transform.Position)
}

func TestPointerDownWithExplicitTarget(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	// The host's own hit-test result is honored even off the image.
	e.PointerDown(PointerEvent{PointerID: 1, X: 10, Y: 10, TargetID: img.ID})
	assert.Equal(t, img.ID, e.Selection())

	// An absent target id is a no-op: the machine stays idle and the
	// selection is untouched.
	e2 := newTestEditor()
	img2 := placeImage(e2, 100, 100, 100, 100)
	e2.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150, TargetID: "img_missing"})
	assert.Equal(t, img2.ID, e2.Selection())
	e2.PointerMove(PointerEvent{PointerID: 1, X: 200, Y: 200})
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, img2.Transform.Position)
}

func TestHitTestPicksTopmost(t *testing.T) {
	e := newTestEditor()
	bottom := placeImage(e, 100, 100, 100, 100)
	top := placeImage(e, 150, 150, 100, 100)

	// Overlap region: the later (topmost) image wins.
	e.PointerDown(PointerEvent{PointerID: 1, X: 175, Y: 175})
	assert.Equal(t, top.ID, e.Selection())
	e.PointerUp(PointerEvent{PointerID: 1})

	// Outside the top image but inside the bottom one.
	e.PointerDown(PointerEvent{PointerID: 2, X: 110, Y: 110})
	assert.Equal(t, bottom.ID, e.Selection())
}

func TestHitTestRespectsRotation(t *testing.T) {
	e := New(Config{Width: 400, Height: 500, AllowRotation: true})
	img := placeImage(e, 150, 200, 100, 20)
	e.UpdateTransform(img.ID, geometry.Transform{
		Position: img.Transform.Position,
		Size:     img.Transform.Size,
		Rotation: 90,
	})

	// Center is (200, 210). After a 90 degree rotation the strip runs
	// vertically: a point above the center is now inside...
	e.PointerDown(PointerEvent{PointerID: 1, X: 200, Y: 170})
	assert.Equal(t, img.ID, e.Selection())
	e.PointerUp(PointerEvent{PointerID: 1})
	e.Select("")

	// ...and a point at the strip's unrotated left end no longer is.
	e.PointerDown(PointerEvent{PointerID: 2, X: 155, Y: 210})
	assert.Empty(t, e.Selection())
}

func TestResizeGestureFloorsAtMinSize(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 0, 0, 100, 100)
	e.Select(img.ID)

	e.PointerDown(PointerEvent{PointerID: 1, X: 100, Y: 100, Handle: geometry.HandleSE})
	e.PointerMove(PointerEvent{PointerID: 1, X: -100, Y: -100})

	assert.Equal(t, geometry.Size{Width: 20, Height: 20}, img.Transform.Size)
	// The anchor (nw corner at the origin) never moves.
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, img.Transform.Position)
}

func TestResizeGestureKeepsAnchor(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 80, 60)
	e.Select(img.ID)

	e.PointerDown(PointerEvent{PointerID: 1, X: 100, Y: 100, Handle: geometry.HandleNW})
	e.PointerMove(PointerEvent{PointerID: 1, X: 80, Y: 95})

	// Aspect-locked corner resize: x delta dominates.
	assert.InDelta(t, 100.0, img.Transform.Size.Width, 1e-9)
	assert.InDelta(t, 75.0, img.Transform.Size.Height, 1e-9)
	// The se corner stays fixed at (180, 160).
	assert.InDelta(t, 180.0, img.Transform.Position.X+img.Transform.Size.Width, 1e-9)
	assert.InDelta(t, 160.0, img.Transform.Position.Y+img.Transform.Size.Height, 1e-9)
}

func TestResizeRequiresSelection(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)
	e.Select("")

	e.PointerDown(PointerEvent{PointerID: 1, X: 200, Y: 200, Handle: geometry.HandleSE})
	e.PointerMove(PointerEvent{PointerID: 1, X: 300, Y: 300})

	assert.Equal(t, geometry.Size{Width: 100, Height: 100}, img.Transform.Size)
}

func TestRotateGesture(t *testing.T) {
	e := New(Config{Width: 400, Height: 500, AllowRotation: true})
	img := placeImage(e, 100, 100, 100, 100)
	e.Select(img.ID)

	// Center is (150, 150). Start to the right of it, drag below it:
	// a quarter turn.
	e.PointerDown(PointerEvent{PointerID: 1, X: 250, Y: 150, Handle: geometry.HandleRotate})
	e.PointerMove(PointerEvent{PointerID: 1, X: 150, Y: 250})

	assert.InDelta(t, 90.0, img.Transform.Rotation, 1e-9)
	// Rotation leaves position and size alone.
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, img.Transform.Position)
	assert.Equal(t, geometry.Size{Width: 100, Height: 100}, img.Transform.Size)
}

func TestRotateRefusedWhenDisallowed(t *testing.T) {
	e := newTestEditor() // allowRotation defaults to false
	img := placeImage(e, 100, 100, 100, 100)
	e.Select(img.ID)

	e.PointerDown(PointerEvent{PointerID: 1, X: 250, Y: 150, Handle: geometry.HandleRotate})
	e.PointerMove(PointerEvent{PointerID: 1, X: 150, Y: 250})

	assert.Zero(t, img.Transform.Rotation)
}

func TestRotationNotBlockedAtBoundary(t *testing.T) {
	e := New(Config{Width: 400, Height: 500, AllowRotation: true})
	img := placeImage(e, 0, 0, 100, 40)
	e.Select(img.ID)

	// Flush against the top-left corner; rotating would push the AABB
	// outside, but rotation is never containment-clamped.
	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 20, Handle: geometry.HandleRotate})
	e.PointerMove(PointerEvent{PointerID: 1, X: 50, Y: 120})

	assert.InDelta(t, 90.0, img.Transform.Rotation, 1e-9)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, img.Transform.Position)
}

func TestPinchGesture(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	// First finger starts a move drag, second on the same image upgrades
	// to a pinch.
	e.PointerDown(PointerEvent{PointerID: 1, X: 140, Y: 150})
	e.PointerDown(PointerEvent{PointerID: 2, X: 160, Y: 150})

	// Spread from 20 to 40 units: scale 2, midpoint unchanged at the
	// image center, so the image grows in place.
	e.PointerMove(PointerEvent{PointerID: 1, X: 130, Y: 150})
	e.PointerMove(PointerEvent{PointerID: 2, X: 170, Y: 150})

	assert.InDelta(t, 200.0, img.Transform.Size.Width, 1e-9)
	assert.InDelta(t, 200.0, img.Transform.Size.Height, 1e-9)
	assert.InDelta(t, 50.0, img.Transform.Position.X, 1e-9)
	assert.InDelta(t, 50.0, img.Transform.Position.Y, 1e-9)
}

func TestPinchFloorsAtMinSize(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 110, Y: 150})
	e.PointerDown(PointerEvent{PointerID: 2, X: 190, Y: 150})

	// Pinch almost closed: the floor wins over the raw scale.
	e.PointerMove(PointerEvent{PointerID: 1, X: 149, Y: 150})
	e.PointerMove(PointerEvent{PointerID: 2, X: 151, Y: 150})

	assert.Equal(t, geometry.Size{Width: 20, Height: 20}, img.Transform.Size)
}

func TestPinchRotatesWhenAllowed(t *testing.T) {
	e := New(Config{Width: 400, Height: 500, AllowRotation: true})
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 130, Y: 150})
	e.PointerDown(PointerEvent{PointerID: 2, X: 170, Y: 150})

	// Rotate the finger pair a quarter turn at constant spread.
	e.PointerMove(PointerEvent{PointerID: 1, X: 150, Y: 130})
	e.PointerMove(PointerEvent{PointerID: 2, X: 150, Y: 170})

	assert.InDelta(t, 90.0, img.Transform.Rotation, 1e-9)
	assert.InDelta(t, 100.0, img.Transform.Size.Width, 1e-9)
}

func TestPinchSecondPointerMustHitTarget(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150})
	// Second finger misses the image: the move drag continues alone.
	e.PointerDown(PointerEvent{PointerID: 2, X: 390, Y: 490})

	e.PointerMove(PointerEvent{PointerID: 1, X: 170, Y: 150})
	assert.Equal(t, geometry.Point{X: 120, Y: 100}, img.Transform.Position)
}

func TestPinchPointerLossDropsToIdle(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 140, Y: 150})
	e.PointerDown(PointerEvent{PointerID: 2, X: 160, Y: 150})
	e.PointerUp(PointerEvent{PointerID: 2})

	before := img.Transform
	e.PointerMove(PointerEvent{PointerID: 1, X: 200, Y: 200})
	assert.Equal(t, before, img.Transform)
}

func TestEntityVanishingMidGesture(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150})

	// Host deletes the target between two pointer events.
	e.Delete(img.ID)

	// The next move must not crash; the machine drops to idle.
	e.PointerMove(PointerEvent{PointerID: 1, X: 200, Y: 200})
	assert.Equal(t, 0, e.Collection(ViewFront).Len())

	// And the engine is usable again.
	other := placeImage(e, 50, 50, 100, 100)
	e.PointerDown(PointerEvent{PointerID: 1, X: 100, Y: 100})
	assert.Equal(t, other.ID, e.Selection())
}

func TestPointerCancelKeepsLastTransform(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150})
	e.PointerMove(PointerEvent{PointerID: 1, X: 180, Y: 180})
	e.PointerCancel(PointerEvent{PointerID: 1})

	assert.Equal(t, geometry.Point{X: 130, Y: 130}, img.Transform.Position)

	e.PointerMove(PointerEvent{PointerID: 1, X: 300, Y: 300})
	assert.Equal(t, geometry.Point{X: 130, Y: 130}, img.Transform.Position)
}

func TestUntrackedPointerIgnored(t *testing.T) {
	e := newTestEditor()
	img := placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150})
	e.PointerMove(PointerEvent{PointerID: 7, X: 300, Y: 300})
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, img.Transform.Position)

	// A foreign pointer-up must not end the drag.
	e.PointerUp(PointerEvent{PointerID: 7})
	e.PointerMove(PointerEvent{PointerID: 1, X: 170, Y: 150})
	assert.Equal(t, geometry.Point{X: 120, Y: 100}, img.Transform.Position)
}

func TestMidDragDeleteAbortsDrag(t *testing.T) {
	e := newTestEditor()
	placeImage(e, 100, 100, 100, 100)

	e.PointerDown(PointerEvent{PointerID: 1, X: 150, Y: 150})
	e.DeleteSelected()

	assert.Equal(t, 0, e.Collection(ViewFront).Len())
	assert.Empty(t, e.Selection())
	e.PointerMove(PointerEvent{PointerID: 1, X: 200, Y: 200})
}
