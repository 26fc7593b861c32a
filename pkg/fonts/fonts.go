// Package fonts provides the font files bundled with the binary.
//
// The bundled fonts are the Go fonts shipped with golang.org/x/image. They
// back the "builtin:" font source scheme and the preview fallback, so the
// tool works without network access or installed fonts.
package fonts

import (
	"fmt"
	"slices"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default is the builtin font used when no font source is configured.
const Default = "goregular"

// FallbackFamily is the family name the preview registers the default
// builtin font under. It is used when the configured font cannot be loaded.
const FallbackFamily = "exzellenz-fallback"

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// Lookup returns the TTF data of the named builtin font.
func Lookup(name string) ([]byte, error) {
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin font %q (available: %v)", name, Names())
	}
	return data, nil
}

// Names returns the sorted builtin font names.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
