package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
// Flags that are not set on the command line fall back to the config file.
type exportOpts struct {
	format      string  // output format: svg (default) or png
	height      float64 // target height of the text ascent in pixels
	padding     float64 // padding on every side in pixels
	transparent bool    // omit the background rectangle
	color       string  // text fill color
	output      string  // output file; "-" writes to stdout
	runner      runnerOpts
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <text>...",
		Short: "Export text as a self-contained SVG or PNG",
		Long: `Export fits the text to the requested height and writes it as a file.

The font is embedded in every SVG, so the file renders the same anywhere.
Multiple arguments are joined with a space. The file is named after the text
unless --output is given.`,
		Example: `  exzellenz export "Hello World"
  exzellenz export Hello -f png --height 200 --transparent
  exzellenz export Hello -o - > hello.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.exportRequest(cmd, strings.Join(args, " "), &opts)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), req, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png")
	cmd.Flags().Float64Var(&opts.height, "height", pipeline.DefaultHeight, "text height in pixels")
	cmd.Flags().Float64Var(&opts.padding, "padding", pipeline.DefaultPadding, "padding in pixels")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "omit the background")
	cmd.Flags().StringVar(&opts.color, "color", "", "text color (#rgb or #rrggbb)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: named after the text)")
	cmd.Flags().StringVar(&opts.runner.font, "font", "", "font source: URL, file or builtin:<name> (default from config)")
	cmd.Flags().StringVar(&opts.runner.rasterizer, "rasterizer", rasterizerNative, "PNG rasterizer: native, rsvg")
	cmd.Flags().BoolVar(&opts.runner.noCache, "no-cache", false, "do not read or write the font cache")

	return cmd
}

// exportRequest builds the request from the config and any flags that were
// set explicitly.
func (c *CLI) exportRequest(cmd *cobra.Command, text string, opts *exportOpts) (pipeline.ExportRequest, error) {
	req := c.config().ExportRequest(text)
	flags := cmd.Flags()

	if flags.Changed("format") {
		f, err := pipeline.ParseFormat(opts.format)
		if err != nil {
			return req, err
		}
		req.Format = f
	}
	if flags.Changed("height") {
		req.Height = opts.height
	}
	if flags.Changed("padding") {
		req.Padding = opts.padding
	}
	if flags.Changed("transparent") {
		req.Transparent = opts.transparent
	}
	if flags.Changed("color") {
		req.Color = opts.color
	}
	return req, req.ValidateAndSetDefaults()
}

func (c *CLI) runExport(ctx context.Context, req pipeline.ExportRequest, opts *exportOpts) error {
	logger := loggerFromContext(ctx)

	runner, closeCache, err := c.newRunner(ctx, opts.runner)
	if err != nil {
		return err
	}
	defer closeCache()

	toStdout := opts.output == "-"
	start := time.Now()

	showSpinner := fontembed.IsRemote(runner.Fonts.Source()) && !toStdout
	art, err := whileLoading(ctx, uiErr, showSpinner, func() (*pipeline.Artifact, error) {
		return runner.Export(ctx, req)
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if toStdout {
		_, err := os.Stdout.Write(art.Data)
		return err
	}

	path := opts.output
	if path == "" {
		path = art.Filename
	}
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logDone(logger, start, "export finished", "format", art.Format, "bytes", len(art.Data))
	printStatus(statusOK, "Exported %s", StyleHighlight.Render(req.Text))
	printFile(path)
	printDetail("%s · %s×%s px · %s",
		art.Format,
		StyleNumber.Render(fmt.Sprintf("%.0f", art.Width)),
		StyleNumber.Render(fmt.Sprintf("%.0f", art.Height)),
		formatBytes(len(art.Data)))
	return nil
}
