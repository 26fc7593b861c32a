package cli

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/measure"
	"github.com/exzellenz/exzellenz/pkg/preview"
)

// oversample is the supersampling factor of the preview raster before it
// is reduced to one pixel per terminal column.
const oversample = 4

var (
	previewInputStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	previewCursorStyle = lipgloss.NewStyle().Foreground(colorCyan)
	previewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	previewErrStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Terminal container
// =============================================================================

// termContainer is a preview container as wide as the terminal.
type termContainer struct {
	cols  int
	frame preview.Frame
}

func (t *termContainer) Width() float64          { return float64(t.cols) }
func (t *termContainer) Present(f preview.Frame) { t.frame = f }

// =============================================================================
// PreviewModel - Live preview
// =============================================================================

// fontLoadedMsg reports the outcome of the background font fetch.
type fontLoadedMsg struct {
	res *fontembed.Resource
	err error
}

// previewModel is the bubbletea model for the live preview. Typing updates
// the preview, resizing the terminal and the font arriving reflow it.
type previewModel struct {
	ctx    context.Context
	handle *preview.Handle
	box    *termContainer
	reg    *measure.Registry
	fonts  *fontembed.Loader
	fill   color.Color

	text    string
	art     string
	err     error
	fontErr error
	width   int
}

func newPreviewModel(ctx context.Context, h *preview.Handle, box *termContainer, reg *measure.Registry, fonts *fontembed.Loader, text string, fill color.Color) previewModel {
	return previewModel{
		ctx:    ctx,
		handle: h,
		box:    box,
		reg:    reg,
		fonts:  fonts,
		fill:   fill,
		text:   text,
	}
}

func (m previewModel) Init() tea.Cmd {
	return waitForFont(m.ctx, m.fonts)
}

func waitForFont(ctx context.Context, l *fontembed.Loader) tea.Cmd {
	return func() tea.Msg {
		res, err := l.Load(ctx)
		return fontLoadedMsg{res: res, err: err}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyBackspace:
			if r := []rune(m.text); len(r) > 0 {
				m.text = string(r[:len(r)-1])
			}
		case tea.KeyCtrlU:
			m.text = ""
		case tea.KeySpace:
			m.text += " "
		case tea.KeyRunes:
			m.text += string(msg.Runes)
		default:
			return m, nil
		}
		m.update()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.box.cols = msg.Width
		if _, ok := m.handle.Frame(); ok {
			m.err = m.handle.OnReflowNeeded(preview.TriggerResize)
			m.redraw()
		} else {
			m.update()
		}

	case fontLoadedMsg:
		switch {
		case msg.err != nil:
			m.fontErr = msg.err
		default:
			if err := msg.res.Register(m.reg); err != nil {
				m.fontErr = err
				break
			}
			if m.width > 0 {
				m.err = m.handle.OnReflowNeeded(preview.TriggerLoad)
				m.redraw()
			}
		}
	}
	return m, nil
}

// update shows the current text, or the invalid placeholder if the text
// could never be exported.
func (m *previewModel) update() {
	if m.width <= 0 {
		return
	}
	valid := m.text == "" || errs.ValidateText(m.text) == nil
	m.err = m.handle.UpdateValidated(m.text, valid)
	m.redraw()
}

func (m *previewModel) redraw() {
	f, ok := m.handle.Frame()
	if !ok {
		return
	}
	art, err := drawFrame(f, m.reg, m.width, m.fill)
	if err != nil {
		m.err = err
		return
	}
	m.art = art
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview"))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("type to edit  ctrl+u clear  esc quit"))
	b.WriteString("\n\n")
	b.WriteString(previewCursorStyle.Render(iconInfo) + " " + previewInputStyle.Render(m.text) + previewCursorStyle.Render("▌"))
	b.WriteString("\n\n")
	b.WriteString(m.art)
	b.WriteString("\n")

	f, ok := m.handle.Frame()
	if ok {
		status := fmt.Sprintf("%s · %.2f units · %d cols · %s", f.FontFamily, f.FontSize, m.width, f.Trigger)
		b.WriteString(previewDimStyle.Render(status))
		if f.Degraded {
			b.WriteString(" " + StyleWarning.Render("(fallback font)"))
		}
		b.WriteString("\n")
	}
	if m.fontErr != nil {
		b.WriteString(previewErrStyle.Render(iconError+" font: "+errs.UserMessage(m.fontErr)) + "\n")
	}
	if m.err != nil {
		b.WriteString(previewErrStyle.Render(iconError+" "+errs.UserMessage(m.err)) + "\n")
	}
	return b.String()
}

// =============================================================================
// Drawing
// =============================================================================

// drawFrame rasterizes f at cols pixels wide and renders it as half-block
// cells, two pixel rows per terminal line.
func drawFrame(f preview.Frame, reg *measure.Registry, cols int, fill color.Color) (string, error) {
	if cols <= 0 || f.ViewBoxWidth <= 0 {
		return "", nil
	}
	fnt, err := reg.Font(f.FontFamily)
	if err != nil {
		return "", err
	}

	pw := cols * oversample
	k := float64(pw) / f.ViewBoxWidth
	ph := max(1, int(math.Ceil(f.ViewBoxHeight*k)))

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    f.FontSize * k,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return "", err
	}
	defer face.Close()

	dc := gg.NewContext(pw, ph)
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetColor(fill)
	dc.DrawString(f.Text, f.X*k, f.Y*k)

	return halfBlocks(imaging.Resize(dc.Image(), cols, 0, imaging.Lanczos)), nil
}

// halfBlocks renders img with one "▀" per cell: the foreground is the upper
// pixel and the background the lower one. Dark cells are left blank.
func halfBlocks(img *image.NRGBA) string {
	var b strings.Builder
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			top := img.NRGBAAt(x, y)
			bottom := color.NRGBA{A: 255}
			if y+1 < r.Max.Y {
				bottom = img.NRGBAAt(x, y+1)
			}
			if dark(top) && dark(bottom) {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func dark(c color.NRGBA) bool {
	return c.R < 16 && c.G < 16 && c.B < 16
}

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
