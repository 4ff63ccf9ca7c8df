package screen

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/noteforge/internal/notegen"
	"github.com/jcorbin/noteforge/notedown"
)

func renderHTML(t *testing.T, h HTML, md string) *goquery.Document {
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf, Render(notedown.Parse(md))))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err, "must parse rendered html")
	return doc
}

func TestWriteHTML(t *testing.T) {
	doc := renderHTML(t, HTML{}, strings.Join([]string{
		"## Key Concepts", // 0
		"",                // 1
		"1. Install the **driver** package", // 2
		"",                // 3
		"2. Run `go get`", // 4
		"- loose <tag>",   // 5
		"> quoted & said", // 6
		"plain paragraph", // 7
		"### Done",        // 8
	}, "\n"))

	assert.Equal(t, "Key Concepts", doc.Find("article h2#block-0").Text())
	assert.Equal(t, 1, doc.Find("div.spacer#block-1").Length(), "blank outside a list is a spacer")

	ol := doc.Find("article ol")
	require.Equal(t, 1, ol.Length(), "blank lines do not split an ordered run")
	items := ol.Find("li")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "Install the driver package", strings.TrimSpace(items.Eq(0).Text()))
	assert.Equal(t, "driver", items.Eq(0).Find("strong").Text())
	assert.Equal(t, "go get", items.Eq(1).Find("code").Text())
	assert.Equal(t, 1, items.Eq(1).Find("a#block-4").Length())
	assert.Equal(t, 2, ol.Find("li > p").Length(), "blank lines loosen the list")
	assert.Equal(t, 0, doc.Find("#block-3").Length())

	ul := doc.Find("article ul")
	require.Equal(t, 1, ul.Length())
	assert.Equal(t, "loose <tag>", ul.Find("li").Text(), "text is escaped")
	assert.Equal(t, 0, ul.Find("li > p").Length(), "tight lists have no paragraphs")

	quote := doc.Find("article blockquote")
	assert.Equal(t, "quoted & said", strings.TrimSpace(quote.Text()))
	assert.Equal(t, 1, quote.Find("a#block-6").Length())

	assert.Equal(t, 1, doc.Find("article > p a#block-7").Length())
	assert.Equal(t, "Done", doc.Find("h3#block-8").Text())
}

func TestHTML_header(t *testing.T) {
	doc := renderHTML(t, HTML{
		Header: &Header{
			Subject: "Biology",
			Topic:   "Cells <& Tissues>",
			Level:   notegen.Beginner,
			Time:    time.Date(2025, time.January, 2, 9, 5, 0, 0, time.UTC),
		},
		Footer: "12 words",
	}, "body")

	hdr := doc.Find("header.note-header")
	require.Equal(t, 1, hdr.Length())
	assert.Equal(t, "Cells <& Tissues>", hdr.Find("h1#note-title").Text())
	badge := hdr.Find(".badge")
	assert.Equal(t, "BEGINNER", badge.Text())
	style, _ := badge.Attr("style")
	assert.Contains(t, style, "#059669")
	assert.Equal(t, "Generated Jan 2, 2025 9:05 AM", hdr.Find("em").Text())
	assert.Equal(t, "12 words", doc.Find("footer.note-footer").Text())
	assert.Equal(t, "body", strings.TrimSpace(doc.Find("article.note").Text()))
}

func TestWriteHTML_listKinds(t *testing.T) {
	doc := renderHTML(t, HTML{}, "1. a\n- b\n2. c")
	assert.Equal(t, 2, doc.Find("ol").Length(), "another kind ends the run")
	assert.Equal(t, 1, doc.Find("ul").Length())
}
