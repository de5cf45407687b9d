package hocrpdf

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/image/bmp"
)

// encodePNG renders a small solid image as PNG bytes.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeTempImage(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0666))
	return path
}

func TestLoadImagePNG(t *testing.T) {
	path := writeTempImage(t, "page.png", encodePNG(t, 10, 8))

	src, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "PNG", src.Format)
	assert.Equal(t, 10, src.Width)
	assert.Equal(t, 8, src.Height)
	assert.Nil(t, src.DPI)
}

func TestLoadImageConvertsBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	path := writeTempImage(t, "page.bmp", buf.Bytes())

	src, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "PNG", src.Format, "BMP should be re-encoded for embedding")
	assert.Equal(t, 6, src.Width)
	assert.Equal(t, 4, src.Height)

	_, format, err := image.DecodeConfig(bytes.NewReader(src.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadImageUndecodable(t *testing.T) {
	path := writeTempImage(t, "garbage.png", []byte("not an image at all"))
	_, err := LoadImage(path)
	assert.Error(t, err)
}

// physChunk builds a pHYs chunk with the given pixels-per-meter values.
func physChunk(ppuX, ppuY uint32, unit byte) []byte {
	chunk := make([]byte, 8+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppuX)
	binary.BigEndian.PutUint32(chunk[12:16], ppuY)
	chunk[16] = unit
	return chunk
}

func TestPNGDPI(t *testing.T) {
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

	// 11811 pixels per meter is 300 dpi
	data := append(append([]byte{}, sig...), physChunk(11811, 11811, 1)...)
	dpi := pngDPI(data)
	require.NotNil(t, dpi)
	assert.InDelta(t, 300.0, dpi.X, 0.01)
	assert.InDelta(t, 300.0, dpi.Y, 0.01)

	// Unit 0 is only an aspect ratio
	data = append(append([]byte{}, sig...), physChunk(11811, 11811, 0)...)
	assert.Nil(t, pngDPI(data))

	// A plain encoded PNG carries no pHYs at all
	assert.Nil(t, pngDPI(encodePNG(t, 4, 4)))
}

// jfifHeader builds an SOI + APP0 JFIF segment with the given density.
func jfifHeader(unit byte, dx, dy uint16) []byte {
	data := []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xE0, // APP0
		0x00, 0x10, // segment length 16
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x02, // version
		unit,
		0, 0, 0, 0, // density, patched below
		0x00, 0x00, // no thumbnail
	}
	binary.BigEndian.PutUint16(data[14:16], dx)
	binary.BigEndian.PutUint16(data[16:18], dy)
	return data
}

func TestJPEGDPI(t *testing.T) {
	dpi := jpegDPI(jfifHeader(1, 300, 150))
	require.NotNil(t, dpi)
	assert.Equal(t, 300.0, dpi.X)
	assert.Equal(t, 150.0, dpi.Y)

	// Dots per centimeter
	dpi = jpegDPI(jfifHeader(2, 100, 100))
	require.NotNil(t, dpi)
	assert.InDelta(t, 254.0, dpi.X, 1e-9)

	// Unit 0 means no physical density
	assert.Nil(t, jpegDPI(jfifHeader(0, 1, 1)))

	// Not a JPEG
	assert.Nil(t, jpegDPI([]byte{0x00, 0x01, 0x02, 0x03}))
}
