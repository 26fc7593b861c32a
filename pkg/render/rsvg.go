package render

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
)

// RSVGRasterizer converts SVG to PNG by shelling out to rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVGRasterizer struct {
	// Path is the rsvg-convert binary. Empty means look it up in PATH.
	Path string
}

// Rasterize implements Rasterizer.
func (r *RSVGRasterizer) Rasterize(ctx context.Context, svg string, width, height float64) ([]byte, error) {
	pw, ph, err := pixelSize(width, height)
	if err != nil {
		return nil, err
	}

	bin := r.Path
	if bin == "" {
		bin = "rsvg-convert"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, &errs.RasterizationError{
			Reason: "png export with rsvg requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin",
			Cause:  err,
		}
	}

	cmd := exec.CommandContext(ctx, bin, "-f", "png", "-w", strconv.Itoa(pw), "-h", strconv.Itoa(ph))
	cmd.Stdin = strings.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errBuf.String())
		if msg == "" {
			msg = "rsvg-convert failed"
		}
		return nil, &errs.RasterizationError{Reason: msg, Cause: err}
	}
	if out.Len() == 0 {
		return nil, &errs.RasterizationError{Reason: "rsvg-convert produced no output", Cause: errors.New("empty output")}
	}
	return out.Bytes(), nil
}
