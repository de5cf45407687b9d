package hocrpdf

import (
	"io"

	"github.com/go-playground/validator/v10"
)

// Config holds user options for a conversion. The value is treated as
// immutable by the conversion code; build one, validate it, pass it in.
type Config struct {
	VisibleText  bool // Render the OCR text visibly instead of invisibly
	ShowImage    bool // Draw the page image as the page background
	ShowBoxes    bool // Stroke the bounding box of every text run
	FullLineText bool // Use the whole flattened line text instead of direct text

	SkipEmbeddedImage bool // Ignore images referenced in hOCR page titles
	MultiPage         bool // Process every page instead of stopping after the first

	// EmbeddedSizeReference makes the image referenced in the hOCR page
	// title the pixel-size reference for geometry even when a command-line
	// image is supplied for display.
	EmbeddedSizeReference bool

	// InvertY reflects hOCR y coordinates about the page height before
	// drawing, for producers that measure y upward from the bottom edge
	// (ocropus-style). Tesseract output needs no inversion.
	InvertY bool

	LayerName string `validate:"required"` // Base name of the per-page OCR text layer
	Font      FontConfig

	Verbose     bool      // Emit progress diagnostics
	LogWarnings bool      // Emit warnings for recoverable conditions
	Logger      io.Writer // Diagnostics sink (nil = stdout)
}

// FontConfig contains font settings for OCR text rendering.
type FontConfig struct {
	Name  string  `validate:"required"` // Core font name, overridden when File is set
	Style string  // Font style ("", "B", "I", "BI")
	Size  float64 `validate:"gt=0"` // Font size in points
	File  string  // Optional path to a TTF file registered as the text font
}

// DefaultFont is a monospace metric, so the horizontal scaling that fits
// text to its bounding box behaves the same for every glyph.
var DefaultFont = FontConfig{
	Name: "Courier",
	Size: 12,
}

// DefaultConfig returns a config with sensible defaults: invisible text
// over a visible image, single page, tesseract-style coordinates.
func DefaultConfig() Config {
	return Config{
		ShowImage:   true,
		LayerName:   "OCR Text", // Formatted as "OCR Text (Page X)" in the final PDF
		Font:        DefaultFont,
		LogWarnings: true,
	}
}

// Validate checks the config against its struct tags.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
