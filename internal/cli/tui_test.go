package cli

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/fonts"
	"github.com/exzellenz/exzellenz/pkg/measure"
	"github.com/exzellenz/exzellenz/pkg/preview"
)

func newTestPreviewModel(t *testing.T, loader *fontembed.Loader) previewModel {
	t.Helper()
	reg := measure.NewRegistry()
	if err := reg.Register(fonts.FallbackFamily, goregular.TTF); err != nil {
		t.Fatal(err)
	}
	box := &termContainer{}
	h := preview.Attach(box, measure.New(reg), preview.WithFamily(loader.Family()))
	return newPreviewModel(t.Context(), h, box, reg, loader, "Hello", color.White)
}

func send(m previewModel, msg tea.Msg) previewModel {
	next, _ := m.Update(msg)
	return next.(previewModel)
}

func TestPreviewModelResizeAndType(t *testing.T) {
	m := newTestPreviewModel(t, fontembed.NewLoader("builtin:goregular"))

	if _, ok := m.handle.Frame(); ok {
		t.Fatal("nothing should be presented before the first resize")
	}

	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	f, ok := m.handle.Frame()
	if !ok {
		t.Fatalf("no frame after resize: %v", m.err)
	}
	if f.Text != "Hello" || f.ContainerWidth != 60 || !f.Degraded {
		t.Errorf("frame = %+v, want Hello at 60 cols with the fallback font", f)
	}
	if strings.TrimSpace(m.art) == "" {
		t.Error("preview art should not be blank")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if f, _ := m.handle.Frame(); f.Text != "Hello!" || f.Trigger != preview.TriggerUpdate {
		t.Errorf("after typing frame = %+v", f)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if f, _ := m.handle.Frame(); f.Text != preview.DefaultEmptyText {
		t.Errorf("cleared text should show the placeholder, got %q", f.Text)
	}

	m = send(m, tea.WindowSizeMsg{Width: 30, Height: 20})
	if f, _ := m.handle.Frame(); f.Trigger != preview.TriggerResize || f.ContainerWidth != 30 {
		t.Errorf("after resize frame = %+v", f)
	}
}

func TestPreviewModelFontLoaded(t *testing.T) {
	loader := fontembed.Resolved(fontembed.NewResource(fontembed.DefaultFamily, goregular.TTF))
	m := newTestPreviewModel(t, loader)
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 10})

	msg := m.Init()()
	m = send(m, msg)

	f, _ := m.handle.Frame()
	if f.Degraded || f.Trigger != preview.TriggerLoad {
		t.Errorf("after font load frame = %+v, want main family", f)
	}
	if m.fontErr != nil {
		t.Errorf("fontErr = %v", m.fontErr)
	}
}

func TestPreviewModelInvalidText(t *testing.T) {
	m := newTestPreviewModel(t, fontembed.NewLoader("builtin:goregular"))
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\x01")})

	if f, _ := m.handle.Frame(); f.Text != preview.DefaultInvalidText {
		t.Errorf("invalid text should show the placeholder, got %q", f.Text)
	}
	if !strings.Contains(m.View(), "Preview") {
		t.Error("view should have a title")
	}
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
		}
	}
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := halfBlocks(img)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (two pixel rows per line)", len(lines))
	}
	if !strings.Contains(lines[0], "▀") {
		t.Errorf("first line %q should draw the lit pixel", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "" {
		t.Errorf("second line %q should be blank", lines[1])
	}
}

func TestDrawFrameUnknownFamily(t *testing.T) {
	f := preview.Frame{Text: "a", FontFamily: "nope", FontSize: 10, ViewBoxWidth: 100, ViewBoxHeight: 10}
	if _, err := drawFrame(f, measure.NewRegistry(), 20, color.White); err == nil {
		t.Error("drawFrame with an unregistered family should fail")
	}
}
