// Package measure computes text geometry against a font's real metrics.
//
// # Two-pass fitting
//
// Fitting text into a box takes two measurements. The first renders the text
// at a large, fixed reference size ([DefaultReferenceSize]) where the 1/64px
// precision of glyph bounds is negligible relative to the ink extent, and
// derives the scale that makes the fitted extent equal the target. The
// second re-measures at the resulting font size and reports that geometry.
// The vertical offset is never scaled from the reference measurement.
//
// Faces are never built above [MaxFaceSize]: glyph coordinates are 26.6
// fixed point and overflow at very large sizes. Larger sizes are measured at
// MaxFaceSize and scaled linearly in float64, which is exact without hinting.
//
//	m := measure.New(reg)
//	g, err := m.Measure("Hello", "exzellenz", 0, 300)
//	// g.Width ≈ 300, g.FontSize is the size that produces it
//
// Measurement is ink based: bounds enclose the glyph outlines, not the
// advance box. Text without ink (empty or whitespace only) is degenerate and
// fails with a DegenerateInputError; callers substitute placeholder
// text before measuring.
package measure

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
)

// DefaultReferenceSize is the font size of the first measurement pass.
const DefaultReferenceSize = 1024.0

// MaxFaceSize is the largest font size a face is instantiated at.
const MaxFaceSize = 4096.0

// fitTolerance is the relative error allowed between the fitted extent and
// the target before a fit is rejected.
const fitTolerance = 1e-3

// Bounds is an ink bounding box in user units. The baseline origin is at
// (0, 0) and y grows downward, so glyphs above the baseline have MinY < 0.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal ink extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical ink extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Geometry is the measured shape of a string at a fitted font size.
type Geometry struct {
	FontSize     float64 // Font size that produced this geometry
	Width        float64 // Ink width
	Height       float64 // Ink height, ascent plus descent
	AscentOffset float64 // Baseline to visual top of the ink
	OffsetX      float64 // Pen origin to left edge of the ink
}

// Measurer fits text to target extents using fonts from a [Registry].
// It holds no per-call state and is safe for concurrent use.
type Measurer struct {
	reg *Registry
	ref float64
}

// New creates a Measurer backed by reg.
func New(reg *Registry) *Measurer {
	return &Measurer{reg: reg, ref: DefaultReferenceSize}
}

// Registry returns the registry the measurer reads fonts from.
func (m *Measurer) Registry() *Registry { return m.reg }

// ReferenceSize returns the reference size used when a call passes 0.
func (m *Measurer) ReferenceSize() float64 { return m.ref }

// BoundsAt measures the ink bounds of text at the given font size.
func (m *Measurer) BoundsAt(text, family string, size float64) (Bounds, error) {
	if err := checkPositive("font size", size); err != nil {
		return Bounds{}, err
	}
	f, err := m.reg.Font(family)
	if err != nil {
		return Bounds{}, err
	}
	return boundsAt(f, text, size)
}

// Measure returns the geometry of text scaled so its ink width equals
// targetWidth. A refSize of 0 selects the measurer's reference size.
func (m *Measurer) Measure(text, family string, refSize, targetWidth float64) (Geometry, error) {
	return m.fit(text, family, refSize, targetWidth, widthAxis)
}

// FitHeight returns the geometry of text scaled so its ascent (baseline to
// visual top) equals targetHeight. A refSize of 0 selects the measurer's
// reference size.
func (m *Measurer) FitHeight(text, family string, refSize, targetHeight float64) (Geometry, error) {
	return m.fit(text, family, refSize, targetHeight, ascentAxis)
}

type axis int

const (
	widthAxis axis = iota
	ascentAxis
)

func (a axis) extent(b Bounds) float64 {
	if a == ascentAxis {
		return -b.MinY
	}
	return b.Width()
}

func (a axis) String() string {
	if a == ascentAxis {
		return "ascent"
	}
	return "width"
}

func (m *Measurer) fit(text, family string, refSize, target float64, ax axis) (Geometry, error) {
	if err := checkPositive("target "+ax.String(), target); err != nil {
		return Geometry{}, err
	}
	if refSize == 0 {
		refSize = m.ref
	}
	if err := checkPositive("reference size", refSize); err != nil {
		return Geometry{}, err
	}
	if text == "" {
		return Geometry{}, &errs.DegenerateInputError{Reason: "empty text"}
	}
	f, err := m.reg.Font(family)
	if err != nil {
		return Geometry{}, err
	}

	// Pass 1: scale from the reference measurement.
	b, err := boundsAt(f, text, refSize)
	if err != nil {
		return Geometry{}, err
	}
	extent := ax.extent(b)
	if extent <= 0 {
		return Geometry{}, &errs.DegenerateInputError{Text: text, Reason: "zero " + ax.String() + " at reference size"}
	}
	size := refSize * target / extent
	if math.IsInf(size, 0) || math.IsNaN(size) {
		return Geometry{}, &errs.DegenerateInputError{Text: text, Reason: "font size overflow"}
	}

	// Pass 2: re-measure at the final size.
	b, err = boundsAt(f, text, size)
	if err != nil {
		return Geometry{}, err
	}
	got := ax.extent(b)
	if got <= 0 {
		return Geometry{}, &errs.DegenerateInputError{Text: text, Reason: "zero " + ax.String() + " at final size"}
	}
	if math.Abs(got-target) > math.Max(epsilonPx, target*fitTolerance) {
		return Geometry{}, errs.New(errs.ErrCodeInternal, "fitted %s %.4f does not match target %.4f", ax, got, target)
	}

	return Geometry{
		FontSize:     size,
		Width:        b.Width(),
		Height:       b.Height(),
		AscentOffset: -b.MinY,
		OffsetX:      b.MinX,
	}, nil
}

// epsilonPx is the absolute fit tolerance for small targets.
const epsilonPx = 0.25

// boundsAt renders text off-screen at size and returns its ink bounds.
// Hinting is disabled so bounds scale with the font size.
func boundsAt(f *opentype.Font, text string, size float64) (Bounds, error) {
	if size > MaxFaceSize {
		b, err := boundsAt(f, text, MaxFaceSize)
		if err != nil {
			return Bounds{}, err
		}
		k := size / MaxFaceSize
		return Bounds{MinX: b.MinX * k, MinY: b.MinY * k, MaxX: b.MaxX * k, MaxY: b.MaxY * k}, nil
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Bounds{}, errs.Wrap(errs.ErrCodeInternal, err, "create face at %.2fpx", size)
	}
	defer face.Close()

	rb, _ := font.BoundString(face, text)
	return Bounds{
		MinX: fixedToFloat(rb.Min.X),
		MinY: fixedToFloat(rb.Min.Y),
		MaxX: fixedToFloat(rb.Max.X),
		MaxY: fixedToFloat(rb.Max.Y),
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func checkPositive(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "%s must be positive, got %v", what, v)
	}
	return nil
}
