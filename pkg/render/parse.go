package render

import (
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"

	"github.com/exzellenz/exzellenz/pkg/compose"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
)

type svgElement struct {
	XMLName xml.Name     `xml:"http://www.w3.org/2000/svg svg"`
	ViewBox string       `xml:"viewBox,attr"`
	Width   string       `xml:"width,attr"`
	Height  string       `xml:"height,attr"`
	Style   *styleElem   `xml:"style"`
	Rect    *rectElement `xml:"rect"`
	Text    *textElement `xml:"text"`
}

type styleElem struct {
	CSS string `xml:",chardata"`
}

type rectElement struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Fill   string `xml:"fill,attr"`
}

type textElement struct {
	X          string `xml:"x,attr"`
	Y          string `xml:"y,attr"`
	FontSize   string `xml:"font-size,attr"`
	FontFamily string `xml:"font-family,attr"`
	Fill       string `xml:"fill,attr"`
	Content    string `xml:",chardata"`
}

var fontFaceRe = regexp.MustCompile(`^@font-face\{font-family:"([^"]+)";src:url\(([^)]+)\)\}$`)

// ParseVectorText reads a document written by ToVectorText. Anything that is
// not well-formed, or lacks a required attribute, fails with a
// RasterizationError.
func ParseVectorText(svg string) (*compose.Document, error) {
	var el svgElement
	if err := xml.Unmarshal([]byte(svg), &el); err != nil {
		return nil, &errs.RasterizationError{Reason: "decode svg", Cause: err}
	}

	p := &numParser{}
	vb := strings.Fields(el.ViewBox)
	if len(vb) != 4 {
		return nil, &errs.RasterizationError{Reason: "viewBox must have four numbers"}
	}
	doc := &compose.Document{
		Width:  p.parse("width", el.Width),
		Height: p.parse("height", el.Height),
		ViewBox: compose.ViewBox{
			MinX:   p.parse("viewBox", vb[0]),
			MinY:   p.parse("viewBox", vb[1]),
			Width:  p.parse("viewBox", vb[2]),
			Height: p.parse("viewBox", vb[3]),
		},
	}

	if el.Style != nil {
		m := fontFaceRe.FindStringSubmatch(strings.TrimSpace(el.Style.CSS))
		if m == nil {
			return nil, &errs.RasterizationError{Reason: "unsupported embedded font syntax"}
		}
		doc.Style = &compose.FontFace{Family: m[1], Source: m[2]}
	}

	if r := el.Rect; r != nil {
		doc.Background = &compose.Rect{
			Width:  p.parse("rect width", r.Width),
			Height: p.parse("rect height", r.Height),
			Fill:   r.Fill,
		}
	}

	t := el.Text
	if t == nil {
		return nil, &errs.RasterizationError{Reason: "missing text element"}
	}
	doc.Text = compose.TextNode{
		Content:    t.Content,
		X:          p.parse("text x", t.X),
		Y:          p.parse("text y", t.Y),
		FontSize:   p.parse("font-size", t.FontSize),
		FontFamily: t.FontFamily,
		Fill:       t.Fill,
	}
	if p.err != nil {
		return nil, p.err
	}

	if doc.Width <= 0 || doc.Height <= 0 || doc.ViewBox.Width <= 0 || doc.ViewBox.Height <= 0 {
		return nil, &errs.RasterizationError{Reason: "document has no area"}
	}
	if doc.Text.FontSize <= 0 {
		return nil, &errs.RasterizationError{Reason: "font-size must be positive"}
	}
	return doc, nil
}

// numParser parses attribute values and keeps the first failure.
type numParser struct {
	err error
}

func (p *numParser) parse(name, s string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = &errs.RasterizationError{Reason: "invalid " + name + " " + strconv.Quote(s), Cause: err}
		return 0
	}
	return v
}
