package hocrpdf

import (
	"errors"

	"github.com/piql/hocrpdf/pkg/hocr"
)

// ErrZeroExtent reports a page with no usable width or height from any
// geometry source. Callers skip such pages and continue; the error is
// never fatal to a conversion.
var ErrZeroExtent = errors.New("page has zero extent")

const (
	// pointsPerInch converts the physical length unit to PDF points.
	pointsPerInch = 72.0

	// assumedOCRDPI applies when neither the image nor the hOCR carries
	// resolution metadata; most OCR engines rasterize at 300 dpi.
	assumedOCRDPI = 300.0

	// fallbackImageDPI applies to an image with no resolution metadata
	// and no hOCR geometry to infer one from.
	fallbackImageDPI = 96.0
)

// PageGeometry is the resolved geometry of one output page: physical size
// in inches and the effective resolution mapping hOCR pixel coordinates
// into it. DPI values are always positive and finite.
type PageGeometry struct {
	Width  float64 // Physical width in inches
	Height float64 // Physical height in inches
	DPIX   float64 // hOCR pixels per inch, horizontal
	DPIY   float64 // hOCR pixels per inch, vertical
}

// WidthPt returns the page width in PDF points.
func (g PageGeometry) WidthPt() float64 { return g.Width * pointsPerInch }

// HeightPt returns the page height in PDF points.
func (g PageGeometry) HeightPt() float64 { return g.Height * pointsPerInch }

// XToPt maps an hOCR x coordinate to points.
func (g PageGeometry) XToPt(x float64) float64 { return x / g.DPIX * pointsPerInch }

// YToPt maps an hOCR y coordinate to points.
func (g PageGeometry) YToPt(y float64) float64 { return y / g.DPIY * pointsPerInch }

// InvertY reflects a y coordinate in points about the page height.
// Applying it twice restores the original coordinate.
func (g PageGeometry) InvertY(yPt float64) float64 { return g.HeightPt() - yPt }

// ResolveGeometry reconciles the available scale sources for one page into
// a single PageGeometry.
//
// img is the image that will be drawn on the page, if any. ref is the
// image whose pixel size serves as the hOCR coordinate-space reference
// when it differs from img (the hOCR-referenced image under the
// size-reference option); pass nil to use img. pageBox is the ocr_page
// bbox and textExtent the union box of the page's lines; either may be
// nil when the hOCR omits them.
//
// The cascade, each step applying only when the previous source is
// unavailable:
//
//  1. hOCR-space extent: pageBox if nonzero, else the reference image's
//     pixel size, else textExtent's maximum coordinates.
//  2. Physical size: image pixels over embedded DPI; else hOCR-space
//     extent at an assumed 300 dpi; else image pixels at 96 dpi.
//  3. Effective DPI: hOCR-space extent over physical size.
//
// ErrZeroExtent is returned when no source yields a usable extent.
func ResolveGeometry(img, ref *ImageSource, pageBox, textExtent *hocr.BoundingBox) (PageGeometry, error) {
	if ref == nil {
		ref = img
	}

	// hOCR coordinate-space extent
	var ocrW, ocrH float64
	if pageBox != nil {
		b := pageBox.Normalized()
		ocrW = float64(b.Width())
		ocrH = float64(b.Height())
	}
	if ocrW == 0 || ocrH == 0 {
		if ref != nil {
			ocrW = float64(ref.Width)
			ocrH = float64(ref.Height)
		} else if textExtent != nil {
			b := textExtent.Normalized()
			ocrW = float64(b.X1)
			ocrH = float64(b.Y1)
		}
	}
	if ocrW <= 0 || ocrH <= 0 {
		return PageGeometry{}, ErrZeroExtent
	}

	// Physical size in inches
	var width, height float64
	if img != nil && img.DPI != nil && img.DPI.X > 0 && img.DPI.Y > 0 {
		width = float64(img.Width) / img.DPI.X
		height = float64(img.Height) / img.DPI.Y
	}
	if width <= 0 || height <= 0 {
		width = ocrW / assumedOCRDPI
		height = ocrH / assumedOCRDPI
	}
	if (width <= 0 || height <= 0) && img != nil {
		width = float64(img.Width) / fallbackImageDPI
		height = float64(img.Height) / fallbackImageDPI
	}
	if width <= 0 || height <= 0 {
		return PageGeometry{}, ErrZeroExtent
	}

	return PageGeometry{
		Width:  width,
		Height: height,
		DPIX:   ocrW / width,
		DPIY:   ocrH / height,
	}, nil
}
