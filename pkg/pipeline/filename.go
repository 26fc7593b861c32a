package pipeline

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	spaceRunRe  = regexp.MustCompile(` +`)
	pathCharsRe = regexp.MustCompile(`[/\\]`)
)

// Filename derives the download name for an export: runs of spaces become a
// single underscore, the text is lowercased and the format's extension is
// appended. Path separators are replaced as well so the name stays a single
// path element.
func Filename(text, format string) string {
	name := spaceRunRe.ReplaceAllString(text, "_")
	name = pathCharsRe.ReplaceAllString(name, "_")
	// A Caser is stateful and cannot be shared between goroutines.
	return cases.Lower(language.Und).String(name) + "." + format
}
