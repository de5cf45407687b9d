package hocr

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Parse converts raw hOCR data into a Document.
//
// The input is parsed leniently as HTML, which accepts both the XHTML
// dialect hOCR producers emit and slightly malformed markup. A document
// without any ocr_page element is still a valid parse; callers that need
// pages check Pages themselves.
func Parse(data []byte) (*Document, error) {
	// Figure out the character encoding
	content := string(data)
	encoding := "utf-8"
	if idx := strings.Index(content, "charset="); idx >= 0 {
		snippet := content[idx+len("charset="):]
		if len(snippet) > 20 {
			snippet = snippet[:20]
		}
		fields := strings.FieldsFunc(snippet, func(r rune) bool {
			return r == '"' || r == ';' || r == '\'' || r == '>'
		})
		if len(fields) > 0 && fields[0] != "" {
			encoding = strings.ToLower(fields[0])
		}
	}

	// Convert to UTF-8 if needed
	decoded := data
	if encoding != "utf-8" {
		var err error
		decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", encoding, err)
		}
	}

	root, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR markup: %w", err)
	}

	htmlElem := findElement(root, "html")
	if htmlElem == nil {
		return nil, fmt.Errorf("no html root element in hOCR data")
	}

	doc := &Document{
		Root:      convertElement(htmlElem),
		Namespace: attrVal(htmlElem, "xmlns"),
	}
	doc.Body = doc.find("body")
	return doc, nil
}

// Pages returns all div elements with class ocr_page, in document order.
func (d *Document) Pages() []*Node {
	var pages []*Node
	d.Walk(func(n *Node) bool {
		if n.Tag == "div" && strings.Contains(n.Class, ClassPage) {
			pages = append(pages, n)
			return false
		}
		return true
	})
	return pages
}

// TextNodes returns the text-bearing elements under page: every span or p
// whose class is one of ocr_carea, ocr_par, ocr_line, or ocrx_word, in
// document order. Nested matches are all included, so a line and the words
// inside it each appear.
func (d *Document) TextNodes(page *Node) []*Node {
	var nodes []*Node
	walk(page, func(n *Node) bool {
		if n != page && (n.Tag == "span" || n.Tag == "p") && isTextClass(n.Class) {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

func isTextClass(class string) bool {
	for _, c := range []string{ClassLine, ClassWord, ClassArea, ClassPar} {
		if strings.Contains(class, c) {
			return true
		}
	}
	return false
}

// Walk visits every node under the document root in document order.
// The visitor returns false to prune a subtree.
func (d *Document) Walk(visit func(*Node) bool) {
	walk(d.Root, visit)
}

func walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		walk(c, visit)
	}
}

// find returns the first element with the given tag, in document order.
func (d *Document) find(tag string) *Node {
	var found *Node
	d.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Tag == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

// convertElement builds the Node tree for one html element.
// Text between child elements is attached ElementTree-style: text before
// the first child element lands in the parent's Text, text after a child
// element lands in that child's Tail.
func convertElement(e *html.Node) *Node {
	n := &Node{
		Tag:   e.Data,
		Class: attrVal(e, "class"),
		ID:    attrVal(e, "id"),
		Title: attrVal(e, "title"),
	}
	var last *Node
	for c := e.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if last == nil {
				n.Text += c.Data
			} else {
				last.Tail += c.Data
			}
		case html.ElementNode:
			last = convertElement(c)
			n.Children = append(n.Children, last)
		}
	}
	return n
}

// findElement locates the first element with the given tag in the raw
// parse tree.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// attrVal returns the value of an attribute on a raw parse node.
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
