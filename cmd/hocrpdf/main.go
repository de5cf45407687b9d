// hocrpdf is a command-line tool for converting hOCR files and page images
// into searchable PDFs.
//
// Each output page overlays the page image with an invisible, searchable
// text layer positioned from the hOCR bounding boxes. The tool can also
// export the flattened document text to a plain-text file.
//
// Usage:
//
//	hocrpdf [options] -o output.pdf [image ...]
//
// Input options:
//
//	-i string          hOCR input file, - for stdin (omit for image-only PDFs)
//	-o string          Output PDF path (required)
//	-text string       Also write the flattened document text to this path
//	-config string     YAML file with default options; explicit flags win
//
// Rendering options:
//
//	-t                 Make the OCR text visible
//	-image             Draw the page images (default true; -image=false for text only)
//	-b                 Draw bounding boxes around text runs
//	-c                 Use full flattened line text instead of direct text
//	-n                 Ignore images referenced inside the hOCR file
//	-m                 Process all pages instead of only the first
//	-r                 Take hOCR-referenced image sizes as the page size reference
//	-V                 Vertical inversion, for OCR engines that measure y bottom-up
//	-font-file string  Custom TTF font for the text layer
//	-font-size float   Font size in points (default 12)
//	-layer string      Base name of the per-page text layer (default "OCR Text")
//
// Output handling:
//
//	-overwrite         Overwrite the output PDF if it already exists
//	-v                 Verbose progress output
//	-q                 Quiet mode, suppress warnings
//
// Examples:
//
// Create a searchable PDF from a tesseract hOCR file and a scan:
//
//	hocrpdf -i page.hocr -o page.pdf page.png
//
// Multi-page document, text export alongside:
//
//	hocrpdf -m -i book.hocr -text book.txt -o book.pdf page-*.png
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piql/hocrpdf/pkg/hocrpdf"
)

// yamlConfig mirrors the flag set for defaults loaded from -config.
type yamlConfig struct {
	VisibleText  *bool   `yaml:"visible_text"`
	ShowImage    *bool   `yaml:"show_image"`
	ShowBoxes    *bool   `yaml:"show_boxes"`
	FullLineText *bool   `yaml:"full_line_text"`
	MultiPage    *bool   `yaml:"multi_page"`
	InvertY      *bool   `yaml:"invert_y"`
	LayerName    string  `yaml:"layer_name"`
	FontFile     string  `yaml:"font_file"`
	FontSize     float64 `yaml:"font_size"`
}

func applyYAMLConfig(path string, cfg *hocrpdf.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if yc.VisibleText != nil {
		cfg.VisibleText = *yc.VisibleText
	}
	if yc.ShowImage != nil {
		cfg.ShowImage = *yc.ShowImage
	}
	if yc.ShowBoxes != nil {
		cfg.ShowBoxes = *yc.ShowBoxes
	}
	if yc.FullLineText != nil {
		cfg.FullLineText = *yc.FullLineText
	}
	if yc.MultiPage != nil {
		cfg.MultiPage = *yc.MultiPage
	}
	if yc.InvertY != nil {
		cfg.InvertY = *yc.InvertY
	}
	if yc.LayerName != "" {
		cfg.LayerName = yc.LayerName
	}
	if yc.FontFile != "" {
		cfg.Font.File = yc.FontFile
	}
	if yc.FontSize > 0 {
		cfg.Font.Size = yc.FontSize
	}
	return nil
}

// flagOverrides carries the boolean rendering flags whose values replace
// -config defaults when given explicitly on the command line.
type flagOverrides struct {
	visibleText bool
	showImage   bool
	showBoxes   bool
	fullLine    bool
	multiPage   bool
	invert      bool
}

// applyFlagOverrides applies the boolean flags named in set over cfg.
// Flags the user did not type keep whatever -config established, so
// -t=false can switch off a visible_text default from YAML.
func applyFlagOverrides(cfg *hocrpdf.Config, set map[string]bool, o flagOverrides) {
	if set["t"] {
		cfg.VisibleText = o.visibleText
	}
	if set["image"] {
		cfg.ShowImage = o.showImage
	}
	if set["b"] {
		cfg.ShowBoxes = o.showBoxes
	}
	if set["c"] {
		cfg.FullLineText = o.fullLine
	}
	if set["m"] {
		cfg.MultiPage = o.multiPage
	}
	if set["V"] {
		cfg.InvertY = o.invert
	}
}

func main() {
	hocrPath := flag.String("i", "", "hOCR input file, - for stdin")
	outPath := flag.String("o", "", "Output PDF path")
	textPath := flag.String("text", "", "Write the flattened document text to this path")
	configPath := flag.String("config", "", "YAML file with default options")

	visibleText := flag.Bool("t", false, "Make the OCR text visible")
	showImage := flag.Bool("image", true, "Draw the page images")
	showBoxes := flag.Bool("b", false, "Draw bounding boxes around text runs")
	fullLine := flag.Bool("c", false, "Use full flattened line text")
	skipEmbedded := flag.Bool("n", false, "Ignore images referenced inside the hOCR file")
	multiPage := flag.Bool("m", false, "Process all pages instead of only the first")
	sizeRef := flag.Bool("r", false, "Take hOCR-referenced image sizes as the page size reference")
	invert := flag.Bool("V", false, "Vertical inversion for bottom-up OCR coordinates")

	fontFile := flag.String("font-file", "", "Custom TTF font for the text layer")
	fontSize := flag.Float64("font-size", hocrpdf.DefaultFont.Size, "Font size in points")
	layerName := flag.String("layer", "", "Base name of the per-page text layer")

	overwrite := flag.Bool("overwrite", false, "Overwrite the output PDF if it already exists")
	verbose := flag.Bool("v", false, "Verbose progress output")
	quiet := flag.Bool("q", false, "Quiet mode, suppress warnings")
	flag.Parse()

	if *outPath == "" {
		fmt.Println("Error: Must provide -o output path")
		os.Exit(1)
	}
	imagePaths := flag.Args()
	if *hocrPath == "" && len(imagePaths) == 0 {
		fmt.Println("Error: Must provide -i or at least one image file")
		os.Exit(1)
	}

	config := hocrpdf.DefaultConfig()
	if *configPath != "" {
		if err := applyYAMLConfig(*configPath, &config); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlagOverrides(&config, set, flagOverrides{
		visibleText: *visibleText,
		showImage:   *showImage,
		showBoxes:   *showBoxes,
		fullLine:    *fullLine,
		multiPage:   *multiPage,
		invert:      *invert,
	})
	config.SkipEmbeddedImage = *skipEmbedded
	config.EmbeddedSizeReference = *sizeRef
	config.Verbose = *verbose
	config.LogWarnings = !*quiet
	if *layerName != "" {
		config.LayerName = *layerName
	}
	if *fontFile != "" {
		config.Font.File = *fontFile
	}
	if *fontSize > 0 {
		config.Font.Size = *fontSize
	}

	if _, err := os.Stat(*outPath); err == nil {
		if !*overwrite {
			fmt.Printf("Output file %s already exists. Use -overwrite to overwrite.\n", *outPath)
			os.Exit(1)
		}
		os.Remove(*outPath)
	}

	if err := hocrpdf.ConvertFiles(*hocrPath, imagePaths, *outPath, config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *textPath != "" {
		if *hocrPath == "" || *hocrPath == "-" {
			fmt.Println("Warning: -text requires an hOCR input file. Skipping text export.")
		} else if err := hocrpdf.ExtractTextToFile(*hocrPath, *textPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	if !*quiet {
		fmt.Println("Searchable PDF created:", *outPath)
	}
}
