// Package hocr implements parsing of hOCR data, the HTML-based standard
// format for representing OCR results.
//
// This package provides:
//
// - A document model exposing page, area, paragraph, line, and word nodes
// - Functions for parsing hOCR HTML into the model
// - A parser for the free-form 'title' attribute mini-language
// - Utilities for flattening text content and computing text extents
//
// The model is deliberately generic: every element is a Node carrying its
// tag, hOCR class, title attribute, direct text, tail text, and children,
// preserving document order. This mirrors the way hOCR consumers walk the
// markup: pages are 'div' elements with class 'ocr_page', and text-bearing
// elements are 'span'/'p' elements with class 'ocr_carea', 'ocr_par',
// 'ocr_line', or 'ocrx_word'.
//
// Key Types:
//
// - Document: a parsed hOCR document plus its declared XML namespace
// - Node: one element with its attributes, text, and children
// - BoundingBox: integer pixel-space coordinates from a 'bbox' title token
// - TitleResult: tagged result of parsing a 'title' attribute
//
// Main Functions:
//
// - Parse: parses hOCR bytes into a Document
// - ParseTitle: extracts the bbox or file token from a title attribute
// - LineExtent: computes the union box of all ocr_line nodes on a page
package hocr
