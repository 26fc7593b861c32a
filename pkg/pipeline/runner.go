package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/exzellenz/exzellenz/pkg/compose"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/measure"
	"github.com/exzellenz/exzellenz/pkg/observability"
	"github.com/exzellenz/exzellenz/pkg/render"
)

// Runner executes exports against one font loader.
//
// The Runner holds no per-export state. Multiple goroutines can export
// through the same Runner; each call is a separate pipeline instance.
type Runner struct {
	Fonts      *fontembed.Loader
	Measurer   *measure.Measurer
	Rasterizer render.Rasterizer
	Logger     *log.Logger
}

// NewRunner creates a runner.
// If rasterizer is nil, a NativeRasterizer is used.
// If logger is nil, log.Default() is used.
func NewRunner(fonts *fontembed.Loader, m *measure.Measurer, rasterizer render.Rasterizer, logger *log.Logger) *Runner {
	if rasterizer == nil {
		rasterizer = &render.NativeRasterizer{Registry: m.Registry()}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fonts:      fonts,
		Measurer:   m,
		Rasterizer: rasterizer,
		Logger:     logger,
	}
}

// CanExport reports why an export of text would be refused right now, or nil
// if it would be attempted. Empty text and a font that is still loading or
// failed to load all block the export.
func (r *Runner) CanExport(ctx context.Context, text string) error {
	if err := errs.ValidateText(text); err != nil {
		return err
	}
	_, err := r.Fonts.Result()
	return err
}

// Export runs the full pipeline for req. It waits for the font if it is
// still loading. No artifact is returned unless every stage succeeded.
func (r *Runner) Export(ctx context.Context, req ExportRequest) (art *Artifact, err error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, req.Format, len(req.Text))
	defer func() {
		size := 0
		if art != nil {
			size = len(art.Data)
		}
		hooks.OnExportComplete(ctx, req.Format, size, time.Since(start), err)
	}()

	res, err := r.Fonts.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.register(res); err != nil {
		return nil, err
	}

	doc, err := compose.New(r.Measurer).Compose(compose.RenderRequest{
		Text:                  req.Text,
		TargetHeight:          req.Height,
		Padding:               req.Padding,
		TransparentBackground: req.Transparent,
		FontFamily:            res.Family,
		Font:                  res,
		TextColor:             req.Color,
	})
	if err != nil {
		return nil, err
	}
	svg := render.ToVectorText(doc)

	art = &Artifact{
		ID:       uuid.NewString(),
		Format:   req.Format,
		MIMEType: MIMEType(req.Format),
		Width:    doc.Width,
		Height:   doc.Height,
		Filename: Filename(req.Text, req.Format),
	}

	switch req.Format {
	case FormatPNG:
		data, err := render.ToRaster(ctx, r.Rasterizer, svg, doc.Width, doc.Height)
		if err != nil {
			return nil, err
		}
		art.Data = data
		art.Width, art.Height = math.Round(doc.Width), math.Round(doc.Height)
	default:
		art.Data = []byte(svg)
	}

	r.Logger.Info("exported",
		"id", art.ID,
		"file", art.Filename,
		"size", len(art.Data),
		"width", art.Width,
		"height", art.Height,
		"duration", time.Since(start).Round(time.Millisecond))
	return art, nil
}

// register makes the loaded font measurable. Registering the same resource
// again is harmless.
func (r *Runner) register(res *fontembed.Resource) error {
	if r.Measurer.Registry().Has(res.Family) {
		return nil
	}
	return res.Register(r.Measurer.Registry())
}
