package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"
)

// MIME is the content type of a word processing document.
const MIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	nsMain  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes = "http://schemas.openxmlformats.org/package/2006/content-types"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"

	codeFont = "Courier New"
)

// Render writes a single section document of the titled note into w.
func Render(w io.Writer, title, markdown string, opts Options) error {
	return Write(w, title, Build(title, markdown, opts))
}

// Write packages paragraphs into a docx container. The title only sets the
// document properties; it is not added to the body.
func Write(w io.Writer, title string, paras []Paragraph) (rerr error) {
	zw := zip.NewWriter(w)
	defer func() {
		if cerr := zw.Close(); rerr == nil && cerr != nil {
			rerr = fmt.Errorf("unable to finish docx archive: %w", cerr)
		}
	}()

	for _, part := range []struct {
		name string
		body interface{}
	}{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", packageRels},
		{"docProps/core.xml", coreProps(title, time.Now())},
		{"word/_rels/document.xml.rels", documentRels},
		{"word/styles.xml", styles},
		{"word/document.xml", document(paras)},
	} {
		if err := writePart(zw, part.name, part.body); err != nil {
			return err
		}
	}
	return nil
}

func writePart(zw *zip.Writer, name string, body interface{}) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("unable to add docx part %v: %w", name, err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("unable to write docx part %v: %w", name, err)
	}
	if err := xml.NewEncoder(w).Encode(body); err != nil {
		return fmt.Errorf("unable to encode docx part %v: %w", name, err)
	}
	return nil
}

// package parts

type xmlTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	NS        string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:",attr"`
	ContentType string `xml:",attr"`
}

type xmlOverride struct {
	PartName    string `xml:",attr"`
	ContentType string `xml:",attr"`
}

var contentTypes = xmlTypes{
	NS: nsTypes,
	Defaults: []xmlDefault{
		{"rels", "application/vnd.openxmlformats-package.relationships+xml"},
		{"xml", "application/xml"},
	},
	Overrides: []xmlOverride{
		{"/word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
		{"/word/styles.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
		{"/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml"},
	},
}

type xmlRelationships struct {
	XMLName xml.Name          `xml:"Relationships"`
	NS      string            `xml:"xmlns,attr"`
	Rels    []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:",attr"`
	Target string `xml:",attr"`
}

var packageRels = xmlRelationships{
	NS: nsRel,
	Rels: []xmlRelationship{
		{"rId1", relOfficeDocument, "word/document.xml"},
		{"rId2", relCoreProps, "docProps/core.xml"},
	},
}

var documentRels = xmlRelationships{
	NS: nsRel,
	Rels: []xmlRelationship{
		{"rId1", relStyles, "styles.xml"},
	},
}

type xmlCoreProps struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	CP       string   `xml:"xmlns:cp,attr"`
	DC       string   `xml:"xmlns:dc,attr"`
	DCTerms  string   `xml:"xmlns:dcterms,attr"`
	XSI      string   `xml:"xmlns:xsi,attr"`
	Title    string   `xml:"dc:title"`
	Creator  string   `xml:"dc:creator"`
	Created  xmlDate  `xml:"dcterms:created"`
	Modified xmlDate  `xml:"dcterms:modified"`
}

type xmlDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func coreProps(title string, now time.Time) xmlCoreProps {
	date := xmlDate{"dcterms:W3CDTF", now.UTC().Format(time.RFC3339)}
	return xmlCoreProps{
		CP:       "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		DC:       "http://purl.org/dc/elements/1.1/",
		DCTerms:  "http://purl.org/dc/terms/",
		XSI:      "http://www.w3.org/2001/XMLSchema-instance",
		Title:    title,
		Creator:  "noteforge",
		Created:  date,
		Modified: date,
	}
}

// word parts

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlStyles struct {
	XMLName xml.Name   `xml:"w:styles"`
	NS      string     `xml:"xmlns:w,attr"`
	Styles  []xmlStyle `xml:"w:style"`
}

type xmlStyle struct {
	Type    string  `xml:"w:type,attr"`
	ID      string  `xml:"w:styleId,attr"`
	Name    xmlVal  `xml:"w:name"`
	BasedOn *xmlVal `xml:"w:basedOn"`
	PPr     *xmlPPr `xml:"w:pPr"`
	RPr     *xmlRPr `xml:"w:rPr"`
}

var styles = xmlStyles{
	NS: nsMain,
	Styles: []xmlStyle{
		{Type: "paragraph", ID: "Normal", Name: xmlVal{"Normal"}},
		headingStyle(1, 32),
		headingStyle(2, 26),
	},
}

func headingStyle(level, halfPoints int) xmlStyle {
	return xmlStyle{
		Type:    "paragraph",
		ID:      "Heading" + strconv.Itoa(level),
		Name:    xmlVal{"heading " + strconv.Itoa(level)},
		BasedOn: &xmlVal{"Normal"},
		PPr:     &xmlPPr{OutlineLvl: &xmlVal{strconv.Itoa(level - 1)}},
		RPr:     &xmlRPr{Bold: &struct{}{}, Size: &xmlVal{strconv.Itoa(halfPoints)}},
	}
}

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paras []xmlP    `xml:"w:p"`
	Sect  xmlSectPr `xml:"w:sectPr"`
}

type xmlP struct {
	PPr  *xmlPPr `xml:"w:pPr"`
	Runs []xmlR  `xml:"w:r"`
}

type xmlPPr struct {
	Style      *xmlVal     `xml:"w:pStyle"`
	Spacing    *xmlSpacing `xml:"w:spacing"`
	OutlineLvl *xmlVal     `xml:"w:outlineLvl"`
}

type xmlSpacing struct {
	Before int `xml:"w:before,attr,omitempty"`
	After  int `xml:"w:after,attr,omitempty"`
}

type xmlR struct {
	RPr  *xmlRPr `xml:"w:rPr"`
	Text xmlT    `xml:"w:t"`
}

type xmlRPr struct {
	Fonts *xmlFonts `xml:"w:rFonts"`
	Bold  *struct{} `xml:"w:b"`
	Size  *xmlVal   `xml:"w:sz"`
}

type xmlFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
}

type xmlT struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Text  string `xml:",chardata"`
}

// xmlSectPr sets an A4 page with one inch margins, all in twips.
type xmlSectPr struct {
	PgSz struct {
		W int `xml:"w:w,attr"`
		H int `xml:"w:h,attr"`
	} `xml:"w:pgSz"`
	PgMar struct {
		Top    int `xml:"w:top,attr"`
		Right  int `xml:"w:right,attr"`
		Bottom int `xml:"w:bottom,attr"`
		Left   int `xml:"w:left,attr"`
	} `xml:"w:pgMar"`
}

func document(paras []Paragraph) xmlDocument {
	doc := xmlDocument{NS: nsMain}
	doc.Body.Paras = make([]xmlP, 0, len(paras))
	for _, para := range paras {
		doc.Body.Paras = append(doc.Body.Paras, paragraph(para))
	}
	sect := &doc.Body.Sect
	sect.PgSz.W, sect.PgSz.H = 11906, 16838
	sect.PgMar.Top, sect.PgMar.Right, sect.PgMar.Bottom, sect.PgMar.Left = 1440, 1440, 1440, 1440
	return doc
}

func paragraph(para Paragraph) xmlP {
	ppr := &xmlPPr{}
	if para.Heading > 0 {
		ppr.Style = &xmlVal{"Heading" + strconv.Itoa(para.Heading)}
	}
	if para.Before > 0 || para.After > 0 {
		ppr.Spacing = &xmlSpacing{Before: para.Before, After: para.After}
	}
	p := xmlP{PPr: ppr}
	for _, run := range para.Runs {
		r := xmlR{Text: xmlT{Text: run.Text}}
		if run.Text != "" && (run.Text[0] == ' ' || run.Text[len(run.Text)-1] == ' ') {
			r.Text.Space = "preserve"
		}
		if run.Bold || run.Code {
			r.RPr = &xmlRPr{}
			if run.Bold {
				r.RPr.Bold = &struct{}{}
			}
			if run.Code {
				r.RPr.Fonts = &xmlFonts{codeFont, codeFont}
			}
		}
		p.Runs = append(p.Runs, r)
	}
	return p
}
