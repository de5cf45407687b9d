package hocrpdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/piql/hocrpdf/pkg/hocr"
)

// rgb is a color triple for text fill or box outlines.
type rgb struct{ r, g, b int }

// classStyle pairs the fill color of a class's text runs with the stroke
// color of its bounding boxes.
type classStyle struct {
	text rgb
	box  rgb
}

var classStyles = map[string]classStyle{
	hocr.ClassLine: {text: rgb{0, 0, 0}, box: rgb{0, 255, 0}},
	hocr.ClassWord: {text: rgb{0, 0, 0}, box: rgb{0, 255, 255}},
	hocr.ClassArea: {text: rgb{255, 0, 0}, box: rgb{255, 255, 0}},
	hocr.ClassPar:  {text: rgb{255, 0, 0}, box: rgb{255, 0, 0}},
}

// horizScale is the percentage scaling that stretches text of natural
// width strWidthPt across boxWidthPt.
func horizScale(boxWidthPt, strWidthPt float64) float64 {
	return boxWidthPt / strWidthPt * 100
}

func nodeStyle(class string) (classStyle, bool) {
	for c, s := range classStyles {
		if strings.Contains(class, c) {
			return s, true
		}
	}
	return classStyle{}, false
}

// compositor drives one conversion: it owns the output document handle and
// walks pages strictly in order.
type compositor struct {
	pdf    *fpdf.Fpdf
	doc    *hocr.Document // nil in image-only mode
	images []*ImageSource
	cfg    Config
	out    io.Writer

	fontName string
	utf8Font bool
}

func newCompositor(doc *hocr.Document, images []*ImageSource, cfg Config, out io.Writer) *compositor {
	c := &compositor{
		pdf:      fpdf.New("P", "pt", "A4", ""),
		doc:      doc,
		images:   images,
		cfg:      cfg,
		out:      out,
		fontName: cfg.Font.Name,
	}
	if cfg.Font.File != "" {
		c.fontName = "hocrpdf-custom"
		c.pdf.AddUTF8Font(c.fontName, cfg.Font.Style, cfg.Font.File)
		c.utf8Font = true
	}
	c.pdf.SetFont(c.fontName, cfg.Font.Style, cfg.Font.Size)
	return c
}

func (c *compositor) infof(format string, args ...interface{}) {
	if c.cfg.Verbose {
		fmt.Fprintf(c.out, format+"\n", args...)
	}
}

func (c *compositor) warnf(format string, args ...interface{}) {
	if c.cfg.LogWarnings {
		fmt.Fprintf(c.out, "Warning: "+format+"\n", args...)
	}
}

// run composes every page in order. Pages past the first are only
// processed in multi-page mode; a zero-extent page is skipped without
// disturbing the page sequence.
func (c *compositor) run() error {
	var pages []*hocr.Node
	if c.doc != nil {
		pages = c.doc.Pages()
	}
	c.infof("%d pages; %d image files from command line.", len(pages), len(c.images))

	for pageNum := 1; ; pageNum++ {
		var page *hocr.Node
		if pageNum <= len(pages) {
			page = pages[pageNum-1]
		}

		if pageNum > 1 && !c.cfg.MultiPage {
			c.infof("Only processing one page.")
			break
		}

		// Image selection: a distinct command-line image per page, the
		// last one repeated when pages outnumber images.
		var img *ImageSource
		if len(c.images) > 0 {
			if pageNum <= len(c.images) {
				img = c.images[pageNum-1]
			} else {
				img = c.images[len(c.images)-1]
				if page == nil {
					break // no more OCR data to pair with the repeat
				}
			}
		} else if page == nil {
			break
		}

		if err := c.composePage(pageNum, page, img); err != nil {
			return err
		}
	}
	return nil
}

// composePage resolves one page's geometry and emits it: page size,
// optional background image, and the text layer.
func (c *compositor) composePage(pageNum int, page *hocr.Node, img *ImageSource) error {
	// An image referenced by the page's own title attribute serves as the
	// display image when none was supplied, and as the pixel-size
	// reference when configured to.
	var ref *ImageSource
	if page != nil {
		if path := page.ImageRef(); path != "" {
			display := img == nil && !c.cfg.SkipEmbeddedImage
			if display || c.cfg.EmbeddedSizeReference {
				emb, err := LoadImage(path)
				if err != nil {
					return fmt.Errorf("page %d: %w", pageNum, err)
				}
				c.infof("Page %d uses hOCR-referenced image %s.", pageNum, path)
				ref = emb
				if display {
					img = emb
				}
			}
		}
	}

	var pageBox, extent *hocr.BoundingBox
	if page != nil {
		pageBox = page.BBox()
		extent = hocr.LineExtent(page)
	}

	geom, err := ResolveGeometry(img, ref, pageBox, extent)
	if errors.Is(err, ErrZeroExtent) {
		c.warnf("Page %d has extension 0 or no content. Skipping.", pageNum)
		return nil
	}
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNum, err)
	}
	c.infof("Page %d: %.2fx%.2f in at %.0fx%.0f dpi.", pageNum, geom.Width, geom.Height, geom.DPIX, geom.DPIY)

	c.pdf.AddPageFormat("P", fpdf.SizeType{Wd: geom.WidthPt(), Ht: geom.HeightPt()})

	if c.cfg.ShowImage {
		if img != nil {
			name := fmt.Sprintf("page%d", pageNum)
			opts := fpdf.ImageOptions{ImageType: img.Format}
			c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
			c.pdf.ImageOptions(name, 0, 0, geom.WidthPt(), geom.HeightPt(), false, opts, 0, "")
		} else {
			c.infof("No image for page %d, emitting text layer only.", pageNum)
		}
	}

	if page != nil {
		c.drawTextLayer(page, geom, pageNum)
	}
	return c.pdf.Error()
}

// drawTextLayer emits one positioned text run per text-bearing node under
// the page, inside a named layer that PDF readers can toggle.
func (c *compositor) drawTextLayer(page *hocr.Node, geom PageGeometry, pageNum int) {
	layer := c.pdf.AddLayer(fmt.Sprintf("%s (Page %d)", c.cfg.LayerName, pageNum), true)
	c.pdf.BeginLayer(layer)
	c.pdf.SetFont(c.fontName, c.cfg.Font.Style, c.cfg.Font.Size)

	runs := 0
	encodingErrors := 0
	for _, node := range c.doc.TextNodes(page) {
		c.drawRun(node, geom, &encodingErrors)
		runs++
	}

	c.pdf.EndLayer()

	if runs > 0 && encodingErrors > runs/10 {
		c.warnf("Character encoding issues in %d of %d text runs on page %d.",
			encodingErrors, runs, pageNum)
	}
}

// drawRun places one node's text run. The run's origin is the lower-left
// corner of its box after optional inversion, and the text is scaled
// horizontally so it spans exactly the box width regardless of glyph
// widths.
func (c *compositor) drawRun(node *hocr.Node, geom PageGeometry, encodingErrors *int) {
	style, ok := nodeStyle(node.Class)
	if !ok {
		return
	}
	box := node.BBox()
	if box == nil {
		// No geometry information, nothing can be placed
		return
	}

	b := box.Normalized()
	x0 := geom.XToPt(float64(b.X0))
	x1 := geom.XToPt(float64(b.X1))
	top := geom.YToPt(float64(b.Y0))
	bottom := geom.YToPt(float64(b.Y1))
	if c.cfg.InvertY {
		top, bottom = geom.InvertY(bottom), geom.InvertY(top)
	}
	width := x1 - x0
	height := bottom - top

	var text string
	if c.cfg.FullLineText {
		text = node.FullText()
	} else {
		text = node.DirectText()
	}
	text = strings.TrimRight(text, " \t\r\n")

	if text != "" {
		content := text
		if !c.utf8Font {
			// Core PDF fonts are Latin-1; re-encode and fall back to the
			// raw text when a rune has no mapping.
			latin1, err := charmap.ISO8859_1.NewEncoder().String(text)
			if err != nil {
				*encodingErrors++
			} else {
				content = latin1
			}
		}

		if strWidth := c.pdf.GetStringWidth(content); strWidth > 0 {
			c.pdf.SetTextColor(style.text.r, style.text.g, style.text.b)
			if !c.cfg.VisibleText {
				c.pdf.SetAlpha(0.0, "Normal")
			}
			if width > 0 {
				c.pdf.TransformBegin()
				c.pdf.TransformScaleX(horizScale(width, strWidth), x0, bottom)
				c.pdf.Text(x0, bottom, content)
				c.pdf.TransformEnd()
			} else {
				// Degenerate zero-width box; fpdf rejects a zero scale
				// factor, so the run is placed at its natural width.
				c.pdf.Text(x0, bottom, content)
			}
			if !c.cfg.VisibleText {
				c.pdf.SetAlpha(1.0, "Normal")
			}
		}
	}

	if c.cfg.ShowBoxes {
		c.pdf.SetLineWidth(0.1)
		c.pdf.SetDrawColor(style.box.r, style.box.g, style.box.b)
		c.pdf.Rect(x0, top, width, height, "D")
	}
}
