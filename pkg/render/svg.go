package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/exzellenz/exzellenz/pkg/compose"
)

const svgNS = "http://www.w3.org/2000/svg"

// ToVectorText serializes doc as canonical SVG.
func ToVectorText(doc *compose.Document) string {
	var buf bytes.Buffer

	vb := doc.ViewBox
	fmt.Fprintf(&buf, `<svg xmlns="%s" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		svgNS, num(vb.MinX), num(vb.MinY), num(vb.Width), num(vb.Height), num(doc.Width), num(doc.Height))

	if s := doc.Style; s != nil {
		buf.WriteString("<style>")
		escape(&buf, fontFaceRule(s))
		buf.WriteString("</style>\n")
	}

	if r := doc.Background; r != nil {
		fmt.Fprintf(&buf, `<rect x="0" y="0" width="%s" height="%s" fill="`, num(r.Width), num(r.Height))
		escape(&buf, r.Fill)
		buf.WriteString(`"/>` + "\n")
	}

	t := doc.Text
	fmt.Fprintf(&buf, `<text xml:space="preserve" x="%s" y="%s" font-size="%s" word-spacing="0" font-family="`, num(t.X), num(t.Y), num(t.FontSize))
	escape(&buf, t.FontFamily)
	buf.WriteString(`" fill="`)
	escape(&buf, t.Fill)
	buf.WriteString(`">`)
	escape(&buf, t.Content)
	buf.WriteString("</text>\n</svg>\n")

	return buf.String()
}

func fontFaceRule(s *compose.FontFace) string {
	return fmt.Sprintf(`@font-face{font-family:"%s";src:url(%s)}`, s.Family, s.Source)
}

// num formats v rounded to four decimals with no trailing zeros.
func num(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
