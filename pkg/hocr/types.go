package hocr

// Document is a parsed hOCR document.
// It is built once by Parse and read-only afterwards.
type Document struct {
	Root *Node // The root html element
	Body *Node // The body element, nil if the document has none

	// Namespace is the XML namespace declared on the root html element,
	// or the empty string when the document declares none. hOCR files in
	// the wild carry the XHTML namespace; the lenient HTML parser does
	// not require it for lookups, but consumers exporting or re-serializing
	// elements need to know it.
	Namespace string
}

// Node is one element of an hOCR document tree.
// Text holds the element's own text up to its first child element and Tail
// holds the text following the element's end tag inside its parent, so that
// flattening Text, children, and Tail in order reproduces the document text.
type Node struct {
	Tag      string  // Element name ("div", "span", "p", ...)
	Class    string  // Value of the class attribute, "" if absent
	ID       string  // Value of the id attribute, "" if absent
	Title    string  // Raw title attribute, "" if absent
	Text     string  // Direct text before the first child element
	Tail     string  // Text following this element inside its parent
	Children []*Node // Child elements in document order
}

// hOCR classes recognized on page and text-bearing elements.
const (
	ClassPage = "ocr_page"
	ClassArea = "ocr_carea"
	ClassPar  = "ocr_par"
	ClassLine = "ocr_line"
	ClassWord = "ocrx_word"
)

// BoundingBox is a rectangle in hOCR's pixel-like coordinate space,
// as carried by the 'bbox x0 y0 x1 y1' title token. Producers are expected
// to emit x0<=x1 and y0<=y1 but consumers must tolerate violations;
// see the geometry code for normalization.
type BoundingBox struct {
	X0 int
	Y0 int
	X1 int
	Y1 int
}

// NewBoundingBox creates a bounding box from the four coordinates of an
// hOCR 'bbox' property. x0, y0 is the top-left corner and x1, y1 the
// bottom-right corner in the producer's coordinate space.
func NewBoundingBox(x0, y0, x1, y1 int) BoundingBox {
	return BoundingBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() int { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() int { return b.Y1 - b.Y0 }

// Normalized returns the box with coordinates swapped as needed so that
// X0<=X1 and Y0<=Y1.
func (b BoundingBox) Normalized() BoundingBox {
	if b.X0 > b.X1 {
		b.X0, b.X1 = b.X1, b.X0
	}
	if b.Y0 > b.Y1 {
		b.Y0, b.Y1 = b.Y1, b.Y0
	}
	return b
}

// BBox parses the node's title attribute and returns its bounding box,
// or nil when the title carries none. Absence is distinct from a
// zero-size box: a page without a bbox falls back to other geometry
// sources, a degenerate box does not.
func (n *Node) BBox() *BoundingBox {
	if n == nil {
		return nil
	}
	return titleBBox(n.Title)
}

// ImageRef parses the node's title attribute and returns the referenced
// image path, or "" when the title carries none. Page titles may carry an
// image reference alongside a bbox; both remain reachable here.
func (n *Node) ImageRef() string {
	if n == nil {
		return ""
	}
	return titleFileRef(n.Title)
}
