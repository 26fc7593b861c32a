// Package preview keeps a live text preview fitted to its container.
//
// The preview lives in a fixed coordinate space: a viewBox whose width is
// constant (100 units by default) and whose height follows the text. A host
// attaches a [Container], then drives the [Handle] with text updates and
// reflow triggers:
//
//	h := preview.Attach(container, measurer)
//	h.Update("Hello")                       // on every input change
//	h.OnReflowNeeded(preview.TriggerResize) // when the container resizes
//	h.OnReflowNeeded(preview.TriggerLoad)   // when the font finishes loading
//
// Each call re-measures synchronously; there is no debouncing. When a reflow
// fails the container keeps showing the last good frame.
package preview

import (
	"fmt"
	"math"
	"sync"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/fonts"
	"github.com/exzellenz/exzellenz/pkg/measure"
)

// Default placeholders shown instead of empty or invalid input.
const (
	DefaultEmptyText   = "empty"
	DefaultInvalidText = "invalid"
)

// DefaultViewBoxWidth is the width of the preview coordinate space.
const DefaultViewBoxWidth = 100

// Trigger names the reason for a reflow.
type Trigger int

const (
	TriggerUpdate Trigger = iota // the text changed
	TriggerResize                // the container changed size
	TriggerLoad                  // the font finished loading
)

func (t Trigger) String() string {
	switch t {
	case TriggerUpdate:
		return "update"
	case TriggerResize:
		return "resize"
	case TriggerLoad:
		return "load"
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

// Container is the host surface the preview draws into.
type Container interface {
	// Width returns the container's current width in device units.
	Width() float64

	// Present shows a new frame.
	Present(Frame)
}

// Frame is one fitted preview state in viewBox units. The text's baseline
// origin is at (X, Y).
type Frame struct {
	Text           string
	FontFamily     string
	FontSize       float64
	X              float64
	Y              float64
	ViewBoxWidth   float64
	ViewBoxHeight  float64
	ContainerWidth float64
	Trigger        Trigger
	Degraded       bool // measured with the fallback family
}

// Option configures a Handle.
type Option func(*Handle)

// WithFamily sets the family the preview measures with.
func WithFamily(family string) Option { return func(h *Handle) { h.family = family } }

// WithFallbackFamily sets the family used while the main family is not
// loaded. An empty name disables the fallback.
func WithFallbackFamily(family string) Option { return func(h *Handle) { h.fallback = family } }

// WithViewBoxWidth sets the width of the preview coordinate space.
func WithViewBoxWidth(w float64) Option { return func(h *Handle) { h.vbWidth = w } }

// WithPlaceholders sets the text shown for empty and invalid input.
func WithPlaceholders(empty, invalid string) Option {
	return func(h *Handle) { h.emptyText, h.invalidText = empty, invalid }
}

// Handle is an attached preview. It is safe for concurrent use; calls are
// serialized.
type Handle struct {
	c Container
	m *measure.Measurer

	family      string
	fallback    string
	vbWidth     float64
	emptyText   string
	invalidText string

	mu    sync.Mutex
	text  string
	frame Frame
	ok    bool
}

// Attach binds a preview to c. Nothing is measured until the first Update or
// OnReflowNeeded call.
func Attach(c Container, m *measure.Measurer, opts ...Option) *Handle {
	h := &Handle{
		c:           c,
		m:           m,
		family:      fontembed.DefaultFamily,
		fallback:    fonts.FallbackFamily,
		vbWidth:     DefaultViewBoxWidth,
		emptyText:   DefaultEmptyText,
		invalidText: DefaultInvalidText,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.text = h.emptyText
	return h
}

// Update shows text, substituting the empty placeholder for "".
func (h *Handle) Update(text string) error {
	return h.UpdateValidated(text, true)
}

// UpdateValidated shows text, substituting the empty placeholder for "" and
// the invalid placeholder when valid is false.
func (h *Handle) UpdateValidated(text string, valid bool) error {
	switch {
	case text == "":
		text = h.emptyText
	case !valid:
		text = h.invalidText
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reflow(text, TriggerUpdate)
}

// OnReflowNeeded re-fits the current text, for example after the container
// was resized or the font finished loading.
func (h *Handle) OnReflowNeeded(trigger Trigger) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reflow(h.text, trigger)
}

// Frame returns the last successfully presented frame and whether there is
// one.
func (h *Handle) Frame() (Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame, h.ok
}

// reflow measures text against the current container width and presents
// the result. On error nothing is presented and the previous state is kept.
func (h *Handle) reflow(text string, trigger Trigger) error {
	width := h.c.Width()
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "preview container has no width")
	}

	family, degraded := h.family, false
	g, err := h.m.Measure(text, family, 0, width)
	if errs.Is(err, errs.ErrCodeFontNotLoaded) && h.fallback != "" && h.fallback != h.family {
		family, degraded = h.fallback, true
		g, err = h.m.Measure(text, family, 0, width)
	}
	if err != nil {
		return err
	}

	k := h.vbWidth / width
	frame := Frame{
		Text:           text,
		FontFamily:     family,
		FontSize:       g.FontSize * k,
		X:              -g.OffsetX * k,
		Y:              g.AscentOffset * k,
		ViewBoxWidth:   h.vbWidth,
		ViewBoxHeight:  g.AscentOffset * k,
		ContainerWidth: width,
		Trigger:        trigger,
		Degraded:       degraded,
	}

	h.text = text
	h.frame = frame
	h.ok = true
	h.c.Present(frame)
	return nil
}
