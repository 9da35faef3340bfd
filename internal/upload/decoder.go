package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
)

// Decode failures surface as human-readable errors through the host's error
// callback; the editor's collections are never touched on failure.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file exceeds the maximum upload size")
)

// Decoded is the outcome of validating and decoding an uploaded file: the
// detected format plus natural pixel dimensions. The editor turns this into
// an entity candidate once the bytes are stored.
type Decoded struct {
	Format string
	Width  int
	Height int
}

// Decode validates an upload against the session's accepted types and size
// cap, then reads the image header for its natural dimensions. Only the
// header is decoded; pixel data stays untouched until export.
func Decode(data []byte, contentType string, cfg editor.Config) (*Decoded, error) {
	if int64(len(data)) > cfg.MaxFileSize {
		return nil, fmt.Errorf("%w (max %d bytes)", ErrTooLarge, cfg.MaxFileSize)
	}
	if !cfg.Accepts(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if imgCfg.Width <= 0 || imgCfg.Height <= 0 {
		return nil, fmt.Errorf("decode image: empty dimensions")
	}

	return &Decoded{
		Format: format,
		Width:  imgCfg.Width,
		Height: imgCfg.Height,
	}, nil
}
