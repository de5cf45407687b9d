package hocr

import (
	"regexp"
	"strconv"
	"strings"
)

// TitleKind tags the outcome of parsing an hOCR title attribute.
type TitleKind int

const (
	TitleNone TitleKind = iota // neither recognized token present
	TitleBBox                  // a 'bbox x0 y0 x1 y1' token
	TitleFile                  // a 'file <path>' or 'image <path>' token
)

// TitleResult is the parsed form of an hOCR title attribute.
// Exactly one of BBox or File is meaningful, selected by Kind.
type TitleResult struct {
	Kind TitleKind
	BBox BoundingBox
	File string
}

// The title attribute is free-form; the two tokens of interest are
// extracted with the same patterns hOCR producers have converged on:
// 'bbox' followed by four integers, and 'file'/'image' followed by a
// path token that may be single- or double-quoted.
var (
	bboxPattern = regexp.MustCompile(`bbox((?:\s+\d+){4})`)
	filePattern = regexp.MustCompile(`(?:file|image)\s+("[^"]+"|'[^']+'|[^\s'";]+)`)
)

// ParseTitle breaks down an hOCR title attribute.
// A bbox token takes priority when both patterns match. A title matching
// neither pattern, or a bbox with unparseable integers, yields TitleNone;
// there is no partial box.
func ParseTitle(title string) TitleResult {
	if box := titleBBox(title); box != nil {
		return TitleResult{Kind: TitleBBox, BBox: *box}
	}
	if ref := titleFileRef(title); ref != "" {
		return TitleResult{Kind: TitleFile, File: ref}
	}
	return TitleResult{Kind: TitleNone}
}

func titleBBox(title string) *BoundingBox {
	m := bboxPattern.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	fields := strings.Fields(m[1])
	if len(fields) != 4 {
		return nil
	}
	var coords [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		coords[i] = v
	}
	box := NewBoundingBox(coords[0], coords[1], coords[2], coords[3])
	return &box
}

func titleFileRef(title string) string {
	m := filePattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], `"'`)
}
