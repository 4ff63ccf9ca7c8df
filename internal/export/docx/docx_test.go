package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	paras := Build("Rust Lifetimes", strings.Join([]string{
		"## Borrowing",
		"",
		"- **owner** drops the `value`",
		"plain line",
	}, "\n"), Options{})

	assert.Equal(t, []Paragraph{
		{Heading: 1, After: 400, Runs: []Run{{Text: "Rust Lifetimes"}}},
		{Heading: 2, Before: 240, After: 120, Runs: []Run{{Text: "Borrowing", Bold: true}}},
		{Before: 120, After: 120, Runs: []Run{{Text: ""}}},
		{Before: 120, After: 120, Runs: []Run{{Text: "- owner drops the value", Bold: true}}},
		{Before: 120, After: 120, Runs: []Run{{Text: "plain line"}}},
	}, paras)
}

func TestBuild_headings(t *testing.T) {
	for _, tc := range []struct {
		line   string
		expect string
	}{
		{"# One", "One"},
		{"###Deep", "Deep"},
		{"#### **Four**", "Four"},
		{"#", ""},
	} {
		t.Run(tc.line, func(t *testing.T) {
			paras := Build("T", tc.line, Options{})
			require.Len(t, paras, 2)
			assert.Equal(t, 2, paras[1].Heading)
			assert.Equal(t, tc.expect, paras[1].Text())
			assert.True(t, paras[1].Runs[0].Bold)
		})
	}
}

func TestBuild_spanAccurate(t *testing.T) {
	paras := Build("T", strings.Join([]string{
		"1. Install the **driver** package",
		"> run `go get`",
		"**unterminated",
		"",
	}, "\n"), Options{SpanAccurate: true})
	require.Len(t, paras, 5)

	assert.Equal(t, []Run{
		{Text: "1. "},
		{Text: "Install the "},
		{Text: "driver", Bold: true},
		{Text: " package"},
	}, paras[1].Runs)
	assert.Equal(t, []Run{
		{Text: "> "},
		{Text: "run "},
		{Text: "go get", Code: true},
	}, paras[2].Runs)
	assert.Equal(t, []Run{{Text: "**unterminated"}}, paras[3].Runs)
	assert.Equal(t, []Run{{Text: ""}}, paras[4].Runs)
}

type readParagraph struct {
	style string
	text  string
	bold  bool
}

// readDocument extracts paragraphs from a packaged document.
func readDocument(t *testing.T, b []byte) (parts []string, paras []readParagraph) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err, "must be a zip archive")

	var docFile *zip.File
	for _, f := range zr.File {
		parts = append(parts, f.Name)
		if f.Name == "word/document.xml" {
			docFile = f
		}
	}
	require.NotNil(t, docFile, "must have a main document part")

	rc, err := docFile.Open()
	require.NoError(t, err)
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var cur *readParagraph
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err, "must be well formed xml")
		switch tok := tok.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "p":
				paras = append(paras, readParagraph{})
				cur = &paras[len(paras)-1]
			case "pStyle":
				for _, attr := range tok.Attr {
					if attr.Name.Local == "val" {
						cur.style = attr.Value
					}
				}
			case "b":
				cur.bold = true
			}
		case xml.CharData:
			if cur != nil {
				cur.text += string(tok)
			}
		}
	}
	return parts, paras
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Cell Biology", strings.Join([]string{
		"# Mitochondria",
		"The **powerhouse** of the cell",
		"  spaced  ",
	}, "\n"), Options{}))

	parts, paras := readDocument(t, buf.Bytes())
	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/document.xml",
	}, parts)

	assert.Equal(t, []readParagraph{
		{style: "Heading1", text: "Cell Biology"},
		{style: "Heading2", text: "Mitochondria", bold: true},
		{text: "The powerhouse of the cell", bold: true},
		{text: "  spaced  "},
	}, paras, "one title paragraph then one per line")
}

func TestRender_escapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "A & B", "x < y > z", Options{}))
	_, paras := readDocument(t, buf.Bytes())
	require.Len(t, paras, 2)
	assert.Equal(t, "A & B", paras[0].text)
	assert.Equal(t, "x < y > z", paras[1].text)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }

func TestRender_writeError(t *testing.T) {
	err := Render(failWriter{}, "T", strings.Repeat("line of text\n", 2000), Options{})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}
