// Package pipeline runs the export pipeline shared by the CLI and the HTTP
// host.
//
// An export waits for the font, composes a document fitted to the requested
// text height, serializes it to SVG and, for PNG, rasterizes it:
//
//	runner := pipeline.NewRunner(loader, measurer, nil, logger)
//	art, err := runner.Export(ctx, pipeline.ExportRequest{
//	    Text:    "Hello",
//	    Format:  pipeline.FormatPNG,
//	    Height:  100,
//	    Padding: 20,
//	})
//	os.WriteFile(art.Filename, art.Data, 0644)
//
// Every call is independent: concurrent exports share the font load but
// nothing else, and nothing is cached between them.
package pipeline

import (
	"strings"

	"github.com/exzellenz/exzellenz/pkg/compose"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP host
// =============================================================================

const (
	// DefaultHeight is the default text height in document units.
	DefaultHeight = 100.0

	// DefaultPadding is the default padding around the text.
	DefaultPadding = 20.0

	// DefaultFormat is the default artifact format.
	DefaultFormat = FormatSVG
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// formatAliases maps the form's format names to output formats.
var formatAliases = map[string]string{
	"vector": FormatSVG,
	"raster": FormatPNG,
}

// ParseFormat normalizes a user-supplied format name. It accepts "svg" and
// "png" in any case, plus "vector" and "raster".
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := formatAliases[f]; ok {
		f = alias
	}
	if err := ValidateFormat(f); err != nil {
		return "", err
	}
	return f, nil
}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be svg or png)", format)
	}
	return nil
}

// MIMEType returns the artifact MIME type for format.
func MIMEType(format string) string {
	if format == FormatPNG {
		return render.MIMETypePNG
	}
	return render.MIMETypeSVG
}

// =============================================================================
// ExportRequest
// =============================================================================

// ExportRequest is the payload of one export action.
type ExportRequest struct {
	Text        string  `json:"text"`
	Format      string  `json:"format,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Padding     float64 `json:"padding"`
	Transparent bool    `json:"transparent,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// ValidateAndSetDefaults fills zero-valued Format, Height and Color with
// defaults and validates every field.
func (r *ExportRequest) ValidateAndSetDefaults() error {
	if r.Format == "" {
		r.Format = DefaultFormat
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.Color == "" {
		r.Color = compose.DefaultTextColor
	}

	if err := errs.ValidateText(r.Text); err != nil {
		return err
	}
	if err := ValidateFormat(r.Format); err != nil {
		return err
	}
	if err := errs.ValidateHeight(r.Height); err != nil {
		return err
	}
	if err := errs.ValidatePadding(r.Padding); err != nil {
		return err
	}
	return errs.ValidateColor(r.Color)
}

// =============================================================================
// Artifact
// =============================================================================

// Artifact is one export result. It is self-contained and is never stored.
type Artifact struct {
	ID       string
	Format   string
	MIMEType string
	Data     []byte
	Width    float64 // document width for SVG, pixel width for PNG
	Height   float64 // document height for SVG, pixel height for PNG
	Filename string
}

// DataURL returns the artifact as a data: URL.
func (a *Artifact) DataURL() string {
	if a.Format == FormatSVG {
		return render.SVGDataURL(string(a.Data))
	}
	return render.DataURL(a.MIMEType, a.Data)
}
