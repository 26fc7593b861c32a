// Package compose builds vector text documents sized to fit their text.
//
// A [Composer] fits the text's ascent (baseline to the visual top of the ink)
// to the requested target height and surrounds the ink with padding:
//
//	width  = ink width + 2*padding
//	height = ascent    + 2*padding
//
// The text node is placed so the left edge of the ink and the top of the ink
// touch the padding boundary exactly. Descenders extend into the bottom
// padding.
//
// Composition is deterministic: the same request always produces a
// structurally identical [Document].
package compose

import (
	"github.com/exzellenz/exzellenz/pkg/measure"
)

// Composer turns render requests into documents.
type Composer struct {
	measurer *measure.Measurer
}

// New creates a Composer that measures text with m.
func New(m *measure.Measurer) *Composer {
	return &Composer{measurer: m}
}

// Compose validates req, measures its text and lays out the document.
//
// The request's font family must already be registered with the measurer's
// registry; otherwise a FONT_NOT_LOADED error is returned.
func (c *Composer) Compose(req RenderRequest) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	family := req.Family()
	g, err := c.measurer.FitHeight(req.Text, family, 0, req.TargetHeight)
	if err != nil {
		return nil, err
	}

	p := req.Padding
	w := g.Width + 2*p
	h := g.AscentOffset + 2*p

	doc := &Document{
		Width:   w,
		Height:  h,
		ViewBox: ViewBox{Width: w, Height: h},
		Text: TextNode{
			Content:    req.Text,
			X:          p - g.OffsetX,
			Y:          p + g.AscentOffset,
			FontSize:   g.FontSize,
			FontFamily: family,
			Fill:       req.Color(),
		},
	}
	if !req.TransparentBackground {
		doc.Background = &Rect{Width: w, Height: h, Fill: CanvasColor}
	}
	if req.Font != nil {
		doc.Style = &FontFace{Family: family, Source: req.Font.DataURL()}
	}
	return doc, nil
}
