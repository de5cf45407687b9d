package hocrpdf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	// Formats beyond the stdlib trio so DecodeConfig resolves their
	// pixel dimensions; sources in these formats are re-encoded to PNG
	// before being handed to the PDF layer.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/jpeg"
)

// DPI is an embedded image resolution in dots per inch.
type DPI struct {
	X float64
	Y float64
}

// ImageSource is one raster page image: its raw bytes, pixel dimensions,
// and optional embedded resolution. At most one source is active per page
// at compositing time.
type ImageSource struct {
	Path   string
	Data   []byte
	Format string // fpdf image type: "PNG", "JPEG", or "GIF"
	Width  int    // Pixel width
	Height int    // Pixel height
	DPI    *DPI   // Embedded resolution, nil when the image carries none
}

// LoadImage reads an image file and resolves its pixel dimensions and any
// embedded resolution metadata. Formats the PDF layer cannot embed
// (TIFF, BMP, WebP) are transparently re-encoded to PNG.
func LoadImage(path string) (*ImageSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	src := &ImageSource{
		Path:   path,
		Data:   data,
		Format: strings.ToUpper(format),
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	switch format {
	case "png":
		src.DPI = pngDPI(data)
	case "jpeg":
		src.DPI = jpegDPI(data)
	}

	switch src.Format {
	case "PNG", "JPEG", "GIF":
	default:
		// fpdf cannot embed this format directly
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to convert image %s to PNG: %w", path, err)
		}
		src.Data = buf.Bytes()
		src.Format = "PNG"
	}

	return src, nil
}

const metersPerInch = 0.0254

// pngDPI extracts the resolution from a PNG pHYs chunk, if present with a
// physical (per-meter) unit.
func pngDPI(data []byte) *DPI {
	const sigLen = 8
	if len(data) < sigLen {
		return nil
	}
	pos := sigLen
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])
		body := pos + 8
		if body+length > len(data) {
			return nil
		}
		switch chunkType {
		case "pHYs":
			if length < 9 {
				return nil
			}
			ppuX := binary.BigEndian.Uint32(data[body : body+4])
			ppuY := binary.BigEndian.Uint32(data[body+4 : body+8])
			unit := data[body+8]
			if unit != 1 || ppuX == 0 || ppuY == 0 {
				// unit 0 carries only an aspect ratio, no physical scale
				return nil
			}
			return &DPI{
				X: float64(ppuX) * metersPerInch,
				Y: float64(ppuY) * metersPerInch,
			}
		case "IDAT", "IEND":
			// pHYs must precede the image data
			return nil
		}
		pos = body + length + 4 // skip data and CRC
	}
	return nil
}

// jpegDPI extracts the density from a JFIF APP0 segment, if present with a
// dots-per-inch or dots-per-centimeter unit.
func jpegDPI(data []byte) *DPI {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil
	}
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return nil
		}
		marker := data[pos+1]
		if marker == 0xDA || marker == 0xD9 { // start of scan / end of image
			return nil
		}
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		seg := pos + 4
		if length < 2 || seg+length-2 > len(data) {
			return nil
		}
		if marker == 0xE0 && length >= 16 && bytes.HasPrefix(data[seg:], []byte("JFIF\x00")) {
			unit := data[seg+7]
			dx := float64(binary.BigEndian.Uint16(data[seg+8 : seg+10]))
			dy := float64(binary.BigEndian.Uint16(data[seg+10 : seg+12]))
			if dx == 0 || dy == 0 {
				return nil
			}
			switch unit {
			case 1: // dots per inch
				return &DPI{X: dx, Y: dy}
			case 2: // dots per centimeter
				return &DPI{X: dx * 2.54, Y: dy * 2.54}
			}
			return nil
		}
		pos = seg + length - 2
	}
	return nil
}
