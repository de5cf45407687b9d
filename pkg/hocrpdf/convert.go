package hocrpdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/piql/hocrpdf/pkg/hocr"
)

// Convert composes doc and images into a PDF written to w.
//
// doc may be nil for image-only output; images may be empty when the hOCR
// references its own page images. The PDF is assembled fully in memory and
// only written to w after a successful compose, so a failed conversion
// leaves no partial stream behind.
func Convert(doc *hocr.Document, images []*ImageSource, w io.Writer, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if doc == nil && len(images) == 0 {
		return fmt.Errorf("nothing to convert: no hOCR document and no images")
	}

	c := newCompositor(doc, images, cfg, diagnostics(cfg))
	if doc == nil {
		c.warnf("No hOCR data supplied. PDF will be image-only.")
	}
	if err := c.run(); err != nil {
		return err
	}
	if c.pdf.PageCount() == 0 {
		return fmt.Errorf("conversion produced no pages")
	}

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// ConvertFiles is the file-to-file driver: it loads the hOCR source
// (optional; "-" reads stdin), loads every image, converts, and writes the
// output path only on success.
func ConvertFiles(hocrPath string, imagePaths []string, outPath string, cfg Config) error {
	var doc *hocr.Document
	if hocrPath != "" {
		data, err := readInput(hocrPath)
		if err != nil {
			return fmt.Errorf("failed to read hOCR source: %w", err)
		}
		doc, err = hocr.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse hOCR source: %w", err)
		}
	}

	var images []*ImageSource
	for _, path := range imagePaths {
		img, err := LoadImage(path)
		if err != nil {
			return err
		}
		images = append(images, img)
	}

	var buf bytes.Buffer
	if err := Convert(doc, images, &buf, cfg); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0666); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}
	return nil
}

// ExtractText returns the flattened text of the document body: every text
// fragment of the markup concatenated in document order.
func ExtractText(doc *hocr.Document) string {
	return doc.Text()
}

// ExtractTextToFile writes the flattened document text of an hOCR source
// to a plain-text file. It is independent of PDF compositing.
func ExtractTextToFile(hocrPath, outPath string) error {
	data, err := readInput(hocrPath)
	if err != nil {
		return fmt.Errorf("failed to read hOCR source: %w", err)
	}
	doc, err := hocr.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse hOCR source: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(ExtractText(doc)), 0666); err != nil {
		return fmt.Errorf("failed to write text export: %w", err)
	}
	return nil
}

// readInput reads a source path, with "-" meaning stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// diagnostics returns the writer progress messages and warnings go to,
// defaulting to stdout.
func diagnostics(cfg Config) io.Writer {
	if cfg.Logger == nil {
		return os.Stdout
	}
	return cfg.Logger
}
