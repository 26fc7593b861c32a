package compose

import (
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
)

const (
	// CanvasColor fills the background rectangle of opaque documents.
	CanvasColor = "#ffffff"

	// DefaultTextColor is the text fill when a request leaves TextColor empty.
	DefaultTextColor = "#1565c0"

	// DefaultFamily is the font family name used when a request leaves
	// FontFamily empty.
	DefaultFamily = fontembed.DefaultFamily
)

// RenderRequest describes one export or preview action. It is built once per
// action and never modified by the engine.
type RenderRequest struct {
	Text                  string
	TargetHeight          float64
	Padding               float64
	TransparentBackground bool
	FontFamily            string              // Defaults to DefaultFamily
	Font                  *fontembed.Resource // Embedded when non-nil
	TextColor             string              // Defaults to DefaultTextColor
}

// Validate checks the request fields without measuring anything.
func (r RenderRequest) Validate() error {
	if err := errs.ValidateText(r.Text); err != nil {
		return err
	}
	if err := errs.ValidateHeight(r.TargetHeight); err != nil {
		return err
	}
	if err := errs.ValidatePadding(r.Padding); err != nil {
		return err
	}
	if r.TextColor != "" {
		if err := errs.ValidateColor(r.TextColor); err != nil {
			return err
		}
	}
	if r.FontFamily != "" {
		if err := errs.ValidateFamily(r.FontFamily); err != nil {
			return err
		}
	}
	return nil
}

// Family returns the requested font family or DefaultFamily.
func (r RenderRequest) Family() string {
	if r.FontFamily == "" {
		return DefaultFamily
	}
	return r.FontFamily
}

// Color returns the requested text color or DefaultTextColor.
func (r RenderRequest) Color() string {
	if r.TextColor == "" {
		return DefaultTextColor
	}
	return r.TextColor
}

// Document is a vector text document: an optional background, an optional
// embedded font, and a single text node, in device-independent units.
type Document struct {
	Width      float64
	Height     float64
	ViewBox    ViewBox
	Background *Rect     // nil for transparent documents
	Style      *FontFace // nil when the font is not embedded
	Text       TextNode
}

// ViewBox is the document's user coordinate system.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// Rect is a filled rectangle anchored at the origin.
type Rect struct {
	Width  float64
	Height float64
	Fill   string
}

// FontFace binds a family name to embedded font data for this document only.
type FontFace struct {
	Family string
	Source string // data: URL
}

// TextNode is a single line of text. (X, Y) is the baseline origin.
type TextNode struct {
	Content    string
	X          float64
	Y          float64
	FontSize   float64
	FontFamily string
	Fill       string
}

// SelfContained reports whether the document embeds its font and therefore
// renders identically without network access or installed fonts.
func (d *Document) SelfContained() bool {
	return d.Style != nil
}
