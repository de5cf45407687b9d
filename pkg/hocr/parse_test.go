package hocr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
 <head>
  <title></title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name="ocr-system" content="tesseract 5.3.0"/>
 </head>
 <body>
  <div class="ocr_page" id="page_1" title='image "page1.png"; bbox 0 0 1500 2250; ppageno 0'>
   <div class="ocr_carea" id="block_1_1" title="bbox 100 100 1400 400">
    <p class="ocr_par" id="par_1_1" lang="eng" title="bbox 100 100 1400 400">
     <span class="ocr_line" id="line_1_1" title="bbox 100 100 1400 200; baseline 0 -10">
      <span class="ocrx_word" id="word_1_1" title="bbox 100 100 400 200; x_wconf 95">Hello</span>
      <span class="ocrx_word" id="word_1_2" title="bbox 500 100 900 200; x_wconf 96">world</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(sampleHOCR))
	require.NoError(t, err)
	return doc
}

func TestParseNamespace(t *testing.T) {
	doc := parseSample(t)
	assert.Equal(t, "http://www.w3.org/1999/xhtml", doc.Namespace)

	plain, err := Parse([]byte(`<html><body><div class="ocr_page"></div></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, plain.Namespace)
}

func TestParsePages(t *testing.T) {
	doc := parseSample(t)
	pages := doc.Pages()
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, "page_1", page.ID)
	require.NotNil(t, page.BBox())
	assert.Equal(t, NewBoundingBox(0, 0, 1500, 2250), *page.BBox())
	assert.Equal(t, "page1.png", page.ImageRef())
}

func TestParseNoPagesIsValid(t *testing.T) {
	doc, err := Parse([]byte(`<html><body><p>just text</p></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, doc.Pages())
}

func TestParseMalformedMarkup(t *testing.T) {
	// The lenient parser accepts unclosed tags
	doc, err := Parse([]byte(`<html><body><div class="ocr_page" title="bbox 0 0 10 10">`))
	require.NoError(t, err)
	assert.Len(t, doc.Pages(), 1)
}

func TestTextNodesDocumentOrder(t *testing.T) {
	doc := parseSample(t)
	page := doc.Pages()[0]

	nodes := doc.TextNodes(page)
	require.Len(t, nodes, 4)
	assert.Equal(t, "par_1_1", nodes[0].ID)
	assert.Equal(t, "line_1_1", nodes[1].ID)
	assert.Equal(t, "word_1_1", nodes[2].ID)
	assert.Equal(t, "word_1_2", nodes[3].ID)
}

func TestDirectText(t *testing.T) {
	doc := parseSample(t)
	page := doc.Pages()[0]
	nodes := doc.TextNodes(page)

	// Words carry their text directly
	assert.Equal(t, "Hello", nodes[2].DirectText())
	assert.Equal(t, "world", nodes[3].DirectText())

	// The line's text lives in its word spans, so its own run is empty
	assert.Empty(t, nodes[1].DirectText())
}

func TestDirectTextWrappedInMarkup(t *testing.T) {
	doc, err := Parse([]byte(`<html><body><div class="ocr_page" title="bbox 0 0 100 100">
		<span class="ocr_line" title="bbox 0 0 50 10"><em>Styled text </em></span>
	</div></body></html>`))
	require.NoError(t, err)

	nodes := doc.TextNodes(doc.Pages()[0])
	require.Len(t, nodes, 1)
	assert.Equal(t, "Styled text", nodes[0].DirectText())
}

func TestFlattenAndDocumentText(t *testing.T) {
	doc := parseSample(t)

	text := doc.Text()
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "world")
	assert.Less(t, strings.Index(text, "Hello"), strings.Index(text, "world"))
}

func TestFullText(t *testing.T) {
	doc := parseSample(t)
	line := doc.TextNodes(doc.Pages()[0])[1]
	assert.Equal(t, "Hello world", line.FullText())
}

func TestLineExtent(t *testing.T) {
	doc := parseSample(t)
	ext := LineExtent(doc.Pages()[0])
	require.NotNil(t, ext)
	assert.Equal(t, 1400, ext.X1)
	assert.Equal(t, 200, ext.Y1)
}

func TestLineExtentNoLines(t *testing.T) {
	doc, err := Parse([]byte(`<html><body><div class="ocr_page" title="bbox 0 0 10 10"></div></body></html>`))
	require.NoError(t, err)
	assert.Nil(t, LineExtent(doc.Pages()[0]))
}

func TestParseLatin1Charset(t *testing.T) {
	raw := []byte(`<html><head><meta http-equiv="Content-Type" content="text/html;charset=iso-8859-1"/></head>` +
		`<body><div class="ocr_page" title="bbox 0 0 10 10">` +
		`<span class="ocrx_word" title="bbox 0 0 5 5">caf`)
	raw = append(raw, 0xE9) // 'é' in ISO-8859-1
	raw = append(raw, []byte(`</span></div></body></html>`)...)

	doc, err := Parse(raw)
	require.NoError(t, err)
	nodes := doc.TextNodes(doc.Pages()[0])
	require.Len(t, nodes, 1)
	assert.Equal(t, "café", nodes[0].DirectText())
}
