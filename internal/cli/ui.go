package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders the preview header.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleWarning marks degraded preview frames.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	// StyleHighlight marks exported text and spinner frames.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleLink renders listen addresses.
	StyleLink = lipgloss.NewStyle().Foreground(colorLink).Underline(true)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	// StyleNumber renders pixel dimensions.
	StyleNumber = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
)

// Terminal output. Tests swap these for buffers.
var (
	uiOut io.Writer = os.Stdout
	uiErr io.Writer = os.Stderr
)

// status is the outcome shown in front of a status line.
type status int

const (
	statusOK status = iota
	statusFailed
	statusWarning
	statusInfo
)

var statusMarks = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusOK:      {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusFailed:  {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorLabel)},
}

// printStatus prints one status line. Warnings are colored in full so they
// stand out between key/value output.
func printStatus(st status, format string, args ...any) {
	mark := statusMarks[st]
	msg := fmt.Sprintf(format, args...)
	if st == statusWarning {
		msg = mark.style.Render(msg)
	}
	fmt.Fprintln(uiOut, mark.style.Render(mark.icon)+" "+msg)
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written file.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printKeyValue prints a labeled value with labels aligned in one column.
func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleLabel.Render(key)+" "+styleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut)
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// formatBytes formats a font or artifact size for display.
func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
