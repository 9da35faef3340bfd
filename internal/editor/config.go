package editor

import (
	"github.com/pressproof/pressproof/backend-go/internal/geometry"
)

const (
	DefaultMinImageSize = 20.0
	DefaultExportScale  = 1.0
	DefaultMaxFileSize  = 10 << 20 // 10MB
)

// DefaultAcceptedFileTypes are the MIME types the upload pipeline accepts
// unless the session config overrides them.
var DefaultAcceptedFileTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// Config is the per-session editor configuration. It is resolved once from
// defaults plus host overrides and stays immutable for the session.
type Config struct {
	Width             float64        `json:"width"`
	Height            float64        `json:"height"`
	PrintableArea     *geometry.Rect `json:"printableArea,omitempty"`
	MinImageSize      float64        `json:"minImageSize,omitempty"`
	AllowRotation     bool           `json:"allowRotation,omitempty"`
	ExportScale       float64        `json:"exportScale,omitempty"`
	AcceptedFileTypes []string       `json:"acceptedFileTypes,omitempty"`
	MaxFileSize       int64          `json:"maxFileSize,omitempty"`
}

// WithDefaults fills unset fields with their defaults. A printable area that
// is missing or empty resolves to the full canvas.
func (c Config) WithDefaults() Config {
	if c.MinImageSize <= 0 {
		c.MinImageSize = DefaultMinImageSize
	}
	if c.ExportScale <= 0 {
		c.ExportScale = DefaultExportScale
	}
	if len(c.AcceptedFileTypes) == 0 {
		c.AcceptedFileTypes = DefaultAcceptedFileTypes
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.PrintableArea != nil && c.PrintableArea.IsEmpty() {
		c.PrintableArea = nil
	}
	return c
}

// Bounds returns the containment bounds for image placement: the printable
// area if one is configured, the full canvas otherwise.
func (c Config) Bounds() geometry.Rect {
	if c.PrintableArea != nil {
		return *c.PrintableArea
	}
	return geometry.Rect{X: 0, Y: 0, Width: c.Width, Height: c.Height}
}

// Accepts reports whether the given MIME type is in the accepted set.
func (c Config) Accepts(mimeType string) bool {
	for _, t := range c.AcceptedFileTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}
