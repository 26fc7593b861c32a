package preview

import (
	"math"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fonts"
	"github.com/exzellenz/exzellenz/pkg/measure"
)

type fakeContainer struct {
	mu     sync.Mutex
	width  float64
	frames []Frame
}

func (c *fakeContainer) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

func (c *fakeContainer) Present(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
}

func (c *fakeContainer) setWidth(w float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = w
}

func (c *fakeContainer) presented() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

const family = "exzellenz"

func newHandle(t *testing.T, width float64, withMain bool, opts ...Option) (*Handle, *fakeContainer, *measure.Registry) {
	t.Helper()
	reg := measure.NewRegistry()
	if err := reg.Register(fonts.FallbackFamily, gomono.TTF); err != nil {
		t.Fatal(err)
	}
	if withMain {
		if err := reg.Register(family, goregular.TTF); err != nil {
			t.Fatal(err)
		}
	}
	c := &fakeContainer{width: width}
	return Attach(c, measure.New(reg), append([]Option{WithFamily(family)}, opts...)...), c, reg
}

func TestUpdateFitsViewBox(t *testing.T) {
	h, c, reg := newHandle(t, 640, true)

	if err := h.Update("Hello"); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	f, ok := h.Frame()
	if !ok {
		t.Fatal("Frame() reported no frame after Update")
	}
	if c.presented() != 1 {
		t.Errorf("presented %d frames, want 1", c.presented())
	}
	if f.Degraded {
		t.Error("frame degraded with main family loaded")
	}
	if f.ViewBoxWidth != DefaultViewBoxWidth {
		t.Errorf("ViewBoxWidth = %v", f.ViewBoxWidth)
	}
	if f.Y != f.ViewBoxHeight || f.Y <= 0 {
		t.Errorf("Y = %v, ViewBoxHeight = %v, want equal and positive", f.Y, f.ViewBoxHeight)
	}

	// The ink spans the viewBox width.
	b, err := measure.New(reg).BoundsAt("Hello", family, f.FontSize)
	if err != nil {
		t.Fatal(err)
	}
	if left := f.X + b.MinX; math.Abs(left) > 0.05 {
		t.Errorf("ink left = %v, want 0", left)
	}
	if right := f.X + b.MaxX; math.Abs(right-DefaultViewBoxWidth) > 0.1 {
		t.Errorf("ink right = %v, want %v", right, DefaultViewBoxWidth)
	}
	if top := f.Y + b.MinY; math.Abs(top) > 0.05 {
		t.Errorf("ink top = %v, want 0", top)
	}
}

func TestResizeKeepsViewBoxShape(t *testing.T) {
	h, c, _ := newHandle(t, 300, true)

	if err := h.Update("Hello"); err != nil {
		t.Fatal(err)
	}
	before, _ := h.Frame()

	c.setWidth(1200)
	if err := h.OnReflowNeeded(TriggerResize); err != nil {
		t.Fatalf("OnReflowNeeded() error: %v", err)
	}
	after, _ := h.Frame()

	if after.Trigger != TriggerResize {
		t.Errorf("Trigger = %v, want resize", after.Trigger)
	}
	if after.ContainerWidth != 1200 {
		t.Errorf("ContainerWidth = %v, want 1200", after.ContainerWidth)
	}
	if after.Text != "Hello" {
		t.Errorf("Text = %q, want the last updated text", after.Text)
	}
	if math.Abs(after.ViewBoxHeight-before.ViewBoxHeight) > 0.05 {
		t.Errorf("ViewBoxHeight changed from %v to %v", before.ViewBoxHeight, after.ViewBoxHeight)
	}
}

func TestPlaceholders(t *testing.T) {
	h, _, _ := newHandle(t, 500, true, WithPlaceholders("type something", "nope"))

	tests := []struct {
		text  string
		valid bool
		want  string
	}{
		{"", true, "type something"},
		{"", false, "type something"},
		{"Hello", false, "nope"},
		{"Hello", true, "Hello"},
	}

	for _, tt := range tests {
		if err := h.UpdateValidated(tt.text, tt.valid); err != nil {
			t.Fatalf("UpdateValidated(%q, %v) error: %v", tt.text, tt.valid, err)
		}
		if f, _ := h.Frame(); f.Text != tt.want {
			t.Errorf("UpdateValidated(%q, %v) shows %q, want %q", tt.text, tt.valid, f.Text, tt.want)
		}
	}
}

func TestReflowBeforeUpdateShowsEmptyPlaceholder(t *testing.T) {
	h, _, _ := newHandle(t, 500, true)

	if err := h.OnReflowNeeded(TriggerLoad); err != nil {
		t.Fatal(err)
	}
	if f, _ := h.Frame(); f.Text != DefaultEmptyText || f.Trigger != TriggerLoad {
		t.Errorf("frame = %+v, want empty placeholder from load", f)
	}
}

func TestFallbackFamily(t *testing.T) {
	h, _, reg := newHandle(t, 500, false)

	if err := h.Update("Hello"); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	f, _ := h.Frame()
	if !f.Degraded || f.FontFamily != fonts.FallbackFamily {
		t.Errorf("frame = %+v, want degraded fallback frame", f)
	}

	// Once the font loads, a load reflow switches to it.
	if err := reg.Register(family, goregular.TTF); err != nil {
		t.Fatal(err)
	}
	if err := h.OnReflowNeeded(TriggerLoad); err != nil {
		t.Fatal(err)
	}
	f, _ = h.Frame()
	if f.Degraded || f.FontFamily != family {
		t.Errorf("frame after load = %+v, want main family", f)
	}
}

func TestNoFallbackFails(t *testing.T) {
	h, c, _ := newHandle(t, 500, false, WithFallbackFamily(""))

	if err := h.Update("Hello"); !errs.Is(err, errs.ErrCodeFontNotLoaded) {
		t.Errorf("Update() error = %v, want FONT_NOT_LOADED", err)
	}
	if _, ok := h.Frame(); ok {
		t.Error("Frame() should report no frame")
	}
	if c.presented() != 0 {
		t.Error("nothing should be presented on error")
	}
}

func TestFailedReflowKeepsLastFrame(t *testing.T) {
	h, c, _ := newHandle(t, 500, true)

	if err := h.Update("Hello"); err != nil {
		t.Fatal(err)
	}
	good, _ := h.Frame()

	// Whitespace has no ink and cannot be fitted.
	if err := h.Update("   "); !errs.Is(err, errs.ErrCodeDegenerateInput) {
		t.Errorf("Update(whitespace) error = %v, want DEGENERATE_INPUT", err)
	}
	c.setWidth(0)
	if err := h.OnReflowNeeded(TriggerResize); err == nil {
		t.Error("OnReflowNeeded() with zero width should fail")
	}

	if f, _ := h.Frame(); f != good {
		t.Errorf("Frame() = %+v, want last good %+v", f, good)
	}
	if c.presented() != 1 {
		t.Errorf("presented %d frames, want 1", c.presented())
	}

	// The last good text is reflowed once the container is usable again.
	c.setWidth(800)
	if err := h.OnReflowNeeded(TriggerResize); err != nil {
		t.Fatal(err)
	}
	if f, _ := h.Frame(); f.Text != "Hello" {
		t.Errorf("Text = %q, want Hello", f.Text)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	h, c, _ := newHandle(t, 500, true)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = h.Update("Hello")
			} else {
				_ = h.OnReflowNeeded(TriggerResize)
			}
		}(i)
	}
	wg.Wait()

	if c.presented() != 8 {
		t.Errorf("presented %d frames, want 8", c.presented())
	}
}

func TestFrameDocument(t *testing.T) {
	h, _, _ := newHandle(t, 500, true)
	if err := h.Update("Hello"); err != nil {
		t.Fatal(err)
	}
	f, _ := h.Frame()

	doc := f.Document("")
	if doc.Background != nil || doc.Style != nil {
		t.Error("preview document should have no background and no embedded font")
	}
	if doc.ViewBox.Width != f.ViewBoxWidth || doc.ViewBox.Height != f.ViewBoxHeight {
		t.Errorf("ViewBox = %+v", doc.ViewBox)
	}
	if doc.Text.Content != "Hello" || doc.Text.FontFamily != family {
		t.Errorf("Text = %+v", doc.Text)
	}
}

func TestTriggerString(t *testing.T) {
	for trig, want := range map[Trigger]string{TriggerUpdate: "update", TriggerResize: "resize", TriggerLoad: "load", Trigger(9): "Trigger(9)"} {
		if got := trig.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
