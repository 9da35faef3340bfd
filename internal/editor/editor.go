package editor

import (
	"github.com/pressproof/pressproof/backend-go/internal/geometry"
	"github.com/pressproof/pressproof/backend-go/internal/typeid"
)

// Snapshot is the combined change notification sent to the host after every
// mutating call: both view collections, the active view, and the selection.
type Snapshot struct {
	ViewImages map[View][]Image `json:"viewImages"`
	ActiveView View             `json:"activeView"`
	Selection  string           `json:"selection,omitempty"`
}

// Candidate is what the upload pipeline hands the editor once a file has
// been decoded: an opaque source reference plus natural pixel dimensions.
// The editor computes the initial transform and assigns the id.
type Candidate struct {
	SourceRef     string  `json:"sourceRef"`
	NaturalWidth  float64 `json:"naturalWidth"`
	NaturalHeight float64 `json:"naturalHeight"`
}

// Editor owns the per-view image collections, the selection, and the gesture
// state machine. It is single-threaded: the host delivers pointer
// events and operations one at a time, and each call runs to completion
// (collection updated, listener notified) before the next.
type Editor struct {
	cfg          Config
	views        map[View]*Collection
	activeView   View
	selection    string
	displayScale float64

	drag dragState

	onChange func(Snapshot)
}

// New creates an editor with the resolved configuration and two empty view
// collections.
func New(cfg Config) *Editor {
	return &Editor{
		cfg: cfg.WithDefaults(),
		views: map[View]*Collection{
			ViewFront: NewCollection(),
			ViewBack:  NewCollection(),
		},
		activeView:   ViewFront,
		displayScale: 1,
	}
}

// Config returns the session configuration.
func (e *Editor) Config() Config {
	return e.cfg
}

// SetOnChange registers the host's change listener. The listener is invoked
// synchronously after each mutation.
func (e *Editor) SetOnChange(fn func(Snapshot)) {
	e.onChange = fn
}

// Snapshot returns the current combined state.
func (e *Editor) Snapshot() Snapshot {
	views := make(map[View][]Image, len(e.views))
	for v, c := range e.views {
		views[v] = c.snapshot()
	}
	return Snapshot{
		ViewImages: views,
		ActiveView: e.activeView,
		Selection:  e.selection,
	}
}

// ActiveView returns the view currently receiving gesture mutations.
func (e *Editor) ActiveView() View {
	return e.activeView
}

// SetActiveView swaps the collection the engine reads and writes. Selection
// is scoped per-view and never survives a switch. Any in-flight gesture is
// dropped with it.
func (e *Editor) SetActiveView(v View) {
	if !v.Valid() || v == e.activeView {
		return
	}
	e.activeView = v
	e.selection = ""
	e.drag = dragState{}
	e.notify()
}

// Collection returns the collection for a view, or nil for an unknown view.
func (e *Editor) Collection(v View) *Collection {
	return e.views[v]
}

// active returns the collection for the active view.
func (e *Editor) active() *Collection {
	return e.views[e.activeView]
}

// Selection returns the selected image id, or "" when nothing is selected.
func (e *Editor) Selection() string {
	return e.selection
}

// Select sets the selection. A missing id clears it; selecting the current
// selection is a no-op.
func (e *Editor) Select(id string) {
	if id == e.selection {
		return
	}
	if id != "" && e.active().Get(id) == nil {
		id = ""
	}
	if id == e.selection {
		return
	}
	e.selection = id
	e.notify()
}

// Delete removes an image from the active collection. If it was selected the
// selection clears; if it was mid-drag the gesture aborts, since its target
// no longer exists. Deleting an absent id is a no-op, so delete is
// idempotent.
func (e *Editor) Delete(id string) {
	if !e.active().Remove(id) {
		return
	}
	if e.selection == id {
		e.selection = ""
	}
	if e.drag.targetID == id {
		e.drag = dragState{}
	}
	e.notify()
}

// DeleteSelected deletes the selected image, if any.
func (e *Editor) DeleteSelected() {
	if e.selection == "" {
		return
	}
	e.Delete(e.selection)
}

// BringToFront moves the image to the top of the z-order. No-op if absent.
func (e *Editor) BringToFront(id string) {
	if e.active().BringToFront(id) {
		e.notify()
	}
}

// SendToBack moves the image to the bottom of the z-order. No-op if absent.
func (e *Editor) SendToBack(id string) {
	if e.active().SendToBack(id) {
		e.notify()
	}
}

// Reorder moves the image at from to to within the active collection.
// Out-of-range indices leave the collection unchanged.
func (e *Editor) Reorder(from, to int) {
	if e.active().Reorder(from, to) {
		e.notify()
	}
}

// UpdateTransform writes a transform directly, outside the gesture flow. It
// passes through the same min-size and containment constraints as the
// gesture path, so the invariants hold regardless of entry point.
func (e *Editor) UpdateTransform(id string, t geometry.Transform) {
	img := e.active().Get(id)
	if img == nil {
		return
	}
	img.Transform = e.constrain(t)
	e.notify()
}

// SetDisplayScale records the host's current display scale factor. Raw
// screen deltas are divided by it so the same logical transform results
// regardless of zoom level.
func (e *Editor) SetDisplayScale(scale float64) {
	if scale > 0 {
		e.displayScale = scale
	}
}

// AddImage accepts a decoded upload candidate into the active collection.
// The initial transform is centered in the printable area and scaled to 75%
// of the area's smaller dimension, preserving the candidate's aspect ratio.
// The new image lands on top of the z-order and becomes the selection.
func (e *Editor) AddImage(c Candidate) *Image {
	if c.NaturalWidth <= 0 || c.NaturalHeight <= 0 {
		return nil
	}

	img := &Image{
		ID:            typeid.NewImageID(),
		SourceRef:     c.SourceRef,
		NaturalWidth:  c.NaturalWidth,
		NaturalHeight: c.NaturalHeight,
		Transform:     e.initialTransform(c),
	}
	e.active().Add(img)
	e.selection = img.ID
	e.notify()
	return img
}

func (e *Editor) initialTransform(c Candidate) geometry.Transform {
	area := e.cfg.Bounds()
	fit := 0.75 * min(area.Width, area.Height)

	var w, h float64
	if c.NaturalWidth >= c.NaturalHeight {
		w = fit
		h = fit * c.NaturalHeight / c.NaturalWidth
	} else {
		h = fit
		w = fit * c.NaturalWidth / c.NaturalHeight
	}
	w = max(w, e.cfg.MinImageSize)
	h = max(h, e.cfg.MinImageSize)

	return geometry.Transform{
		Position: geometry.Point{
			X: area.X + (area.Width-w)/2,
			Y: area.Y + (area.Height-h)/2,
		},
		Size: geometry.Size{Width: w, Height: h},
	}
}

// constrain enforces the post-mutation invariants: both size axes at or
// above the minimum, and the rotated bounding box kept inside the printable
// area by translation. The size floor has priority over containment.
func (e *Editor) constrain(t geometry.Transform) geometry.Transform {
	t.Size.Width = max(t.Size.Width, e.cfg.MinImageSize)
	t.Size.Height = max(t.Size.Height, e.cfg.MinImageSize)

	aabb := t.AABB()
	clamped := geometry.ClampToBounds(aabb, e.cfg.Bounds())
	t.Position.X += clamped.X - aabb.X
	t.Position.Y += clamped.Y - aabb.Y
	return t
}

func (e *Editor) notify() {
	if e.onChange != nil {
		e.onChange(e.Snapshot())
	}
}
