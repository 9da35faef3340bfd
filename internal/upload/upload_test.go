package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testConfig() editor.Config {
	return editor.Config{Width: 400, Height: 500}.WithDefaults()
}

func TestDecodePNG(t *testing.T) {
	data := pngBytes(t, 32, 24)

	dec, err := Decode(data, "image/png", testConfig())
	require.NoError(t, err)
	assert.Equal(t, "png", dec.Format)
	assert.Equal(t, 32, dec.Width)
	assert.Equal(t, 24, dec.Height)
}

func TestDecodeRejectsUnsupportedType(t *testing.T) {
	data := pngBytes(t, 8, 8)

	_, err := Decode(data, "image/svg+xml", testConfig())
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDecodeRejectsOversizedFile(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFileSize = 16

	_, err := Decode(pngBytes(t, 8, 8), "image/png", cfg)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDecodeRejectsCorruptData(t *testing.T) {
	_, err := Decode([]byte("not an image"), "image/png", testConfig())
	assert.Error(t, err)
}

func TestStoreSaveDeduplicates(t *testing.T) {
	s := NewStore(t.TempDir())
	data := pngBytes(t, 8, 8)

	name, err := s.Save(data, "png")
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name))

	again, err := s.Save(data, "png")
	require.NoError(t, err)
	assert.Equal(t, name, again, "identical bytes map to the same asset")

	other, err := s.Save(pngBytes(t, 9, 9), "png")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStoreOpen(t *testing.T) {
	s := NewStore(t.TempDir())
	name, err := s.Save(pngBytes(t, 16, 12), "png")
	require.NoError(t, err)

	img, err := s.Open(name)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 12), img.Bounds())

	// Path components in the name must not escape the store directory.
	img, err = s.Open("../" + name)
	require.NoError(t, err)
	assert.NotNil(t, img)

	_, err = s.Open("missing.png")
	assert.Error(t, err)
}
