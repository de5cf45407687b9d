// Package hocrpdf composes hOCR layout data and raster page images into
// searchable PDF documents.
//
// Each output page shows the (optional) page image at its resolved
// physical size and carries a text layer with one run per text-bearing
// hOCR node, positioned from the node's bounding box. The text is:
// - Fully searchable
// - Selectable with mouse drag operations
// - Invisible by default, or rendered visibly for inspection
// - Held in a named per-page layer that compatible readers can toggle
//
// The geometry engine reconciles three independent, often-missing scale
// sources per page: resolution embedded in the image, the ocr_page
// bounding box, and the extent of the recognized lines. A deterministic
// fallback cascade always produces one consistent page geometry; pages
// with no usable extent at all are skipped, never fatal.
//
// Main Functions:
//
// - Convert: composes a parsed document and loaded images into a PDF stream
// - ConvertFiles: the file-to-file driver used by the CLI
// - ExtractText: exports the flattened document text
package hocrpdf
