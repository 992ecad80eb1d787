package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 0x39, G: 0xc5, B: 0xbb, A: 0xff})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestValidateFileAcceptsPNG(t *testing.T) {
	p := NewImageProcessor()
	assert.NoError(t, p.ValidateFile(BytesFile("avatar.png", pngBytes(t, 20, 20))))
}

func TestValidateFileRejectsNonImage(t *testing.T) {
	p := NewImageProcessor()
	err := p.ValidateFile(BytesFile("avatar.png", []byte("definitely not a png")))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestValidateFileRejectsOversize(t *testing.T) {
	p := &ImageProcessor{MaxSize: 10}
	err := p.ValidateFile(BytesFile("avatar.png", pngBytes(t, 20, 20)))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestThumbnailFitsBox(t *testing.T) {
	p := NewImageProcessor()

	out, err := p.Thumbnail(bytes.NewReader(pngBytes(t, 600, 400)), ThumbnailSize)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}
