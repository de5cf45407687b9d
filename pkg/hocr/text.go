package hocr

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Flatten returns the human-readable text of the node and its subtree:
// the node's own text, each child flattened recursively, and the node's
// tail text, concatenated in document order.
func (n *Node) Flatten() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, c := range n.Children {
		b.WriteString(c.Flatten())
	}
	b.WriteString(n.Tail)
	return b.String()
}

// Text returns the flattened text of the document body, or of the whole
// tree when the document has no body element.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	if d.Body != nil {
		return d.Body.Flatten()
	}
	return d.Root.Flatten()
}

// DirectText returns the node's own text with trailing whitespace removed.
//
// Producers sometimes wrap a line's text in markup like <em> or <strong>
// instead of placing it directly in the line element. When the node has no
// direct text and its subtree contains no span other than possibly itself,
// the first non-empty text fragment of the subtree is used instead. A line
// whose text lives in word spans stays empty here; the words carry it.
func (n *Node) DirectText() string {
	if n == nil {
		return ""
	}
	text := n.Text
	if strings.TrimSpace(text) == "" {
		spans := 0
		walk(n, func(c *Node) bool {
			if c.Tag == "span" {
				spans++
			}
			return true
		})
		selfSpan := 0
		if n.Tag == "span" {
			selfSpan = 1
		}
		if spans == selfSpan {
			for _, frag := range n.fragments() {
				if strings.TrimSpace(frag) != "" {
					text = frag
					break
				}
			}
		}
	}
	return strings.TrimRight(text, " \t\r\n")
}

// FullText returns the node's whole subtree text as a single NFC-normalized
// line: every non-blank fragment trimmed and joined with single spaces.
func (n *Node) FullText() string {
	var parts []string
	for _, frag := range n.fragments() {
		if t := strings.TrimSpace(frag); t != "" {
			parts = append(parts, t)
		}
	}
	return norm.NFC.String(strings.Join(parts, " "))
}

// fragments returns the text fragments of the node's subtree in document
// order, excluding the node's own tail.
func (n *Node) fragments() []string {
	var frags []string
	var collect func(c *Node, withTail bool)
	collect = func(c *Node, withTail bool) {
		if c.Text != "" {
			frags = append(frags, c.Text)
		}
		for _, child := range c.Children {
			collect(child, true)
		}
		if withTail && c.Tail != "" {
			frags = append(frags, c.Tail)
		}
	}
	collect(n, false)
	return frags
}

// LineExtent returns the tightest box enclosing every ocr_line under the
// page, extended to include the origin, or nil when no line carries a box.
// It is the geometry source of last resort for pages whose ocr_page element
// has no usable bbox and no image.
func LineExtent(page *Node) *BoundingBox {
	var ext *BoundingBox
	walk(page, func(n *Node) bool {
		if !strings.Contains(n.Class, ClassLine) {
			return true
		}
		box := n.BBox()
		if box == nil {
			return true
		}
		b := box.Normalized()
		if ext == nil {
			ext = &BoundingBox{}
		}
		if b.X0 < ext.X0 {
			ext.X0 = b.X0
		}
		if b.Y0 < ext.Y0 {
			ext.Y0 = b.Y0
		}
		if b.X1 > ext.X1 {
			ext.X1 = b.X1
		}
		if b.Y1 > ext.Y1 {
			ext.Y1 = b.Y1
		}
		return true
	})
	return ext
}
