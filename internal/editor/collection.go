package editor

import (
	"github.com/pressproof/pressproof/backend-go/internal/geometry"
)

// View identifies one of the two independent placement surfaces.
type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
)

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	return v == ViewFront || v == ViewBack
}

// Image is a placed raster image. The id is opaque, unique within its view's
// collection, and stable across reorders. Natural dimensions are set once at
// creation; only the transform mutates afterwards.
type Image struct {
	ID            string             `json:"id"`
	SourceRef     string             `json:"sourceRef"`
	NaturalWidth  float64            `json:"naturalWidth"`
	NaturalHeight float64            `json:"naturalHeight"`
	Transform     geometry.Transform `json:"transform"`
}

// Collection is an ordered sequence of images. Array order is z-order: later
// entries paint on top. Each view owns exactly one collection; images never
// migrate between views.
type Collection struct {
	images []*Image
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Len returns the number of images.
func (c *Collection) Len() int {
	return len(c.images)
}

// Get returns the image with the given id, or nil.
func (c *Collection) Get(id string) *Image {
	for _, img := range c.images {
		if img.ID == id {
			return img
		}
	}
	return nil
}

// IndexOf returns the z-index of the image with the given id, or -1.
func (c *Collection) IndexOf(id string) int {
	for i, img := range c.images {
		if img.ID == id {
			return i
		}
	}
	return -1
}

// Add appends an image at the top of the z-order.
func (c *Collection) Add(img *Image) {
	c.images = append(c.images, img)
}

// Remove deletes the image with the given id. Reports whether it was present.
func (c *Collection) Remove(id string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	c.images = append(c.images[:i], c.images[i+1:]...)
	return true
}

// BringToFront moves the image to the end of the z-order. No-op if absent.
func (c *Collection) BringToFront(id string) bool {
	i := c.IndexOf(id)
	if i < 0 || i == len(c.images)-1 {
		return i >= 0
	}
	img := c.images[i]
	c.images = append(c.images[:i], c.images[i+1:]...)
	c.images = append(c.images, img)
	return true
}

// SendToBack moves the image to index 0. No-op if absent.
func (c *Collection) SendToBack(id string) bool {
	i := c.IndexOf(id)
	if i < 0 || i == 0 {
		return i >= 0
	}
	img := c.images[i]
	c.images = append(c.images[:i], c.images[i+1:]...)
	c.images = append([]*Image{img}, c.images...)
	return true
}

// Reorder moves the element at from to to, shifting the elements between
// them. Out-of-range indices leave the collection unchanged.
func (c *Collection) Reorder(from, to int) bool {
	n := len(c.images)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	img := c.images[from]
	c.images = append(c.images[:from], c.images[from+1:]...)
	rest := append([]*Image{}, c.images[to:]...)
	c.images = append(append(c.images[:to:to], img), rest...)
	return true
}

// Images returns the images in z-order. The slice is a copy; the pointed-to
// images are live.
func (c *Collection) Images() []*Image {
	out := make([]*Image, len(c.images))
	copy(out, c.images)
	return out
}

// snapshot returns value copies of the images in z-order.
func (c *Collection) snapshot() []Image {
	out := make([]Image, len(c.images))
	for i, img := range c.images {
		out[i] = *img
	}
	return out
}
