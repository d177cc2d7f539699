package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)
	key := BuildObjectKey("tjsl/", "/programs/abc/", "Foto Kegiatan Desa.JPG", now)

	assert.True(t, strings.HasPrefix(key, "tjsl/programs/abc/foto-kegiatan-desa_20240305_102030_"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
}

func TestConvertToWebP_DownscalesPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		for y := 0; y < 200; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := ConvertToWebP(&buf, "foto.png", WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestConvertToWebP_RejectsNonImage(t *testing.T) {
	_, err := ConvertToWebP(strings.NewReader("%PDF-1.4 not an image"), "doc.pdf", WebPOptions{})
	assert.ErrorIs(t, err, errUnsupportedImage)
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", detectContentType([]byte("%PDF-1.4"), "lpj.pdf"))
	assert.Equal(t, "image/webp", detectContentType(nil, "x.webp"))
	assert.Equal(t, "application/pdf", detectContentType([]byte("%PDF-1.7\n"), "noext"))
}
