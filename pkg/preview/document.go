package preview

import (
	"github.com/exzellenz/exzellenz/pkg/compose"
)

// Document converts the frame to a style-less document in viewBox units,
// for hosts that display the preview as SVG. The document relies on the
// viewer having the frame's font family available.
func (f Frame) Document(fill string) *compose.Document {
	if fill == "" {
		fill = compose.DefaultTextColor
	}
	return &compose.Document{
		Width:   f.ViewBoxWidth,
		Height:  f.ViewBoxHeight,
		ViewBox: compose.ViewBox{Width: f.ViewBoxWidth, Height: f.ViewBoxHeight},
		Text: compose.TextNode{
			Content:    f.Text,
			X:          f.X,
			Y:          f.Y,
			FontSize:   f.FontSize,
			FontFamily: f.FontFamily,
			Fill:       fill,
		},
	}
}
