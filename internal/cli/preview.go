package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/exzellenz/exzellenz/pkg/preview"
)

// previewCommand creates the live preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts runnerOpts

	cmd := &cobra.Command{
		Use:   "preview [text]...",
		Short: "Live preview in the terminal",
		Long: `Preview fits the text to the terminal width as you type and refits it
when the terminal is resized or the font finishes loading. Until the font has
loaded, the builtin fallback font is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()

			// Log lines would tear the full-screen view; errors are shown in it.
			opts.logger = newLogger(io.Discard, LogInfo)
			runner, closeCache, err := c.newRunner(ctx, opts)
			if err != nil {
				return err
			}
			defer closeCache()
			runner.Fonts.Start(ctx)

			box := &termContainer{}
			h := preview.Attach(box, runner.Measurer,
				preview.WithFamily(runner.Fonts.Family()),
				preview.WithFallbackFamily(cfg.Preview.FallbackFamily),
				preview.WithViewBoxWidth(cfg.Preview.ViewBoxWidth))

			m := newPreviewModel(ctx, h, box, runner.Measurer.Registry(), runner.Fonts,
				strings.Join(args, " "), lipgloss.Color(cfg.Export.Color))
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}

			if pm, ok := final.(previewModel); ok && pm.text != "" {
				printNextStep("Export it", fmt.Sprintf("%s export %q", appName, pm.text))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.font, "font", "", "font source: URL, file or builtin:<name> (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the font cache")

	return cmd
}
