package render

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/exzellenz/exzellenz/pkg/compose"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/measure"
)

// Rasterizer converts vector text to PNG bytes of exactly
// round(width) x round(height) pixels.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg string, width, height float64) ([]byte, error)
}

// ToRaster rasterizes svg with r, or with a NativeRasterizer when r is nil.
func ToRaster(ctx context.Context, r Rasterizer, svg string, width, height float64) ([]byte, error) {
	if r == nil {
		r = &NativeRasterizer{}
	}
	out, err := r.Rasterize(ctx, svg, width, height)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NativeRasterizer draws documents with fogleman/gg.
//
// The font comes from the document's embedded @font-face. Documents without
// one are drawn with the family registered in Registry; if that is nil or
// lacks the family, rasterization fails.
type NativeRasterizer struct {
	Registry *measure.Registry
}

// Rasterize implements Rasterizer.
func (r *NativeRasterizer) Rasterize(ctx context.Context, svg string, width, height float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pw, ph, err := pixelSize(width, height)
	if err != nil {
		return nil, err
	}

	doc, err := ParseVectorText(svg)
	if err != nil {
		return nil, err
	}
	f, err := r.font(doc)
	if err != nil {
		return nil, err
	}

	// Uniform scale centred in the canvas, like preserveAspectRatio="xMidYMid meet".
	vb := doc.ViewBox
	scale := math.Min(float64(pw)/vb.Width, float64(ph)/vb.Height)
	tx := (float64(pw) - vb.Width*scale) / 2
	ty := (float64(ph) - vb.Height*scale) / 2

	size := doc.Text.FontSize * scale
	if size > maxRasterFontSize {
		return nil, &errs.RasterizationError{Reason: fmt.Sprintf("font size %.0fpx too large to rasterize", size)}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, &errs.RasterizationError{Reason: "create font face", Cause: err}
	}
	defer face.Close()

	dc := gg.NewContext(pw, ph)
	if bg := doc.Background; bg != nil {
		// The background spans the viewBox, which rounding may leave a
		// fraction of a pixel short of the canvas.
		dc.SetHexColor(bg.Fill)
		dc.DrawRectangle(0, 0, float64(pw), float64(ph))
		dc.Fill()
	}
	dc.SetFontFace(face)
	dc.SetHexColor(doc.Text.Fill)
	dc.DrawString(doc.Text.Content, tx+(doc.Text.X-vb.MinX)*scale, ty+(doc.Text.Y-vb.MinY)*scale)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, &errs.RasterizationError{Reason: "encode png", Cause: err}
	}
	return buf.Bytes(), nil
}

func (r *NativeRasterizer) font(doc *compose.Document) (*opentype.Font, error) {
	if doc.Style != nil {
		_, data, err := DecodeDataURL(doc.Style.Source)
		if err != nil {
			return nil, &errs.RasterizationError{Reason: "decode embedded font", Cause: err}
		}
		sfnt, err := fontembed.ToSFNT(data)
		if err != nil {
			return nil, &errs.RasterizationError{Reason: "unsupported embedded font", Cause: err}
		}
		f, err := opentype.Parse(sfnt)
		if err != nil {
			return nil, &errs.RasterizationError{Reason: "parse embedded font", Cause: err}
		}
		return f, nil
	}

	if r.Registry == nil {
		return nil, &errs.RasterizationError{Reason: "document has no embedded font"}
	}
	f, err := r.Registry.Font(doc.Text.FontFamily)
	if err != nil {
		return nil, &errs.RasterizationError{Reason: "resolve font family", Cause: err}
	}
	return f, nil
}

func pixelSize(width, height float64) (int, int, error) {
	pw, ph := math.Round(width), math.Round(height)
	if math.IsNaN(pw) || math.IsNaN(ph) || pw < 1 || ph < 1 || pw > maxPixels || ph > maxPixels {
		return 0, 0, &errs.RasterizationError{Reason: "invalid pixel size"}
	}
	return int(pw), int(ph), nil
}

// maxPixels bounds each raster dimension.
const maxPixels = 16384

// maxRasterFontSize keeps scaled glyph coordinates inside 26.6 fixed point.
const maxRasterFontSize = 8192
