package compositor

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
	"github.com/pressproof/pressproof/backend-go/internal/geometry"
)

// SourceOpener resolves an entity's opaque source reference to pixels.
type SourceOpener func(sourceRef string) (image.Image, error)

// Render composites one view into a static raster: background first, then
// each image in z-order, rotated about its own center and clipped to the
// printable area if one is configured. The export scale multiplies every
// output coordinate; stored transforms stay in logical units.
func Render(cfg editor.Config, images []editor.Image, background image.Image, open SourceOpener) (*image.RGBA, error) {
	scale := cfg.ExportScale
	outW := int(math.Round(cfg.Width * scale))
	outH := int(math.Round(cfg.Height * scale))
	if outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("render: empty canvas %dx%d", outW, outH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))

	if background != nil {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), background, background.Bounds(), xdraw.Src, nil)
	}

	// Images paint into the printable-area subregion only; the background
	// covers the full canvas.
	target := dst
	if cfg.PrintableArea != nil {
		pa := *cfg.PrintableArea
		clip := image.Rect(
			int(math.Floor(pa.X*scale)),
			int(math.Floor(pa.Y*scale)),
			int(math.Ceil((pa.X+pa.Width)*scale)),
			int(math.Ceil((pa.Y+pa.Height)*scale)),
		)
		target = dst.SubImage(clip.Intersect(dst.Bounds())).(*image.RGBA)
	}

	for _, img := range images {
		src, err := open(img.SourceRef)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", img.ID, err)
		}
		m := placementMatrix(img, scale)
		aff := f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
		xdraw.ApproxBiLinear.Transform(target, aff, src, src.Bounds(), xdraw.Over, nil)
	}

	return dst, nil
}

// placementMatrix maps natural source pixels onto output pixels: scale the
// source to the transform size, translate to the position, rotate about the
// rectangle center, then apply the export scale.
func placementMatrix(img editor.Image, exportScale float64) geometry.Matrix2D {
	t := img.Transform
	c := t.Center()

	m := geometry.Scale(exportScale, exportScale)
	if t.Rotation != 0 {
		m = m.Mul(geometry.Translate(c.X, c.Y)).
			Mul(geometry.RotateDegrees(t.Rotation)).
			Mul(geometry.Translate(-c.X, -c.Y))
	}
	return m.
		Mul(geometry.Translate(t.Position.X, t.Position.Y)).
		Mul(geometry.Scale(t.Size.Width/img.NaturalWidth, t.Size.Height/img.NaturalHeight))
}
