package measure

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
)

// Registry maps font family names to parsed fonts.
//
// A family becomes measurable only once its font data has been registered;
// there is no fallback to another family. Registering is the font's load
// signal. Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts map[string]*opentype.Font
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fonts: make(map[string]*opentype.Font)}
}

// Register parses TTF/OTF data and stores it under family.
// Registering an existing family replaces it.
func (r *Registry) Register(family string, data []byte) error {
	if family == "" {
		return errs.New(errs.ErrCodeInvalidInput, "font family cannot be empty")
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return errs.Wrap(errs.ErrCodeUnsupported, err, "parse font %q", family)
	}
	r.mu.Lock()
	r.fonts[family] = f
	r.mu.Unlock()
	return nil
}

// Font returns the parsed font for family, or a FONT_NOT_LOADED error.
func (r *Registry) Font(family string) (*opentype.Font, error) {
	r.mu.RLock()
	f, ok := r.fonts[family]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.New(errs.ErrCodeFontNotLoaded, "font family %q is not loaded", family)
	}
	return f, nil
}

// Has reports whether family has been registered.
func (r *Registry) Has(family string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.fonts[family]
	return ok
}

// Families returns the registered family names, sorted.
func (r *Registry) Families() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// FamilyName reads the family name stored in the font's name table.
// It returns "" if the table has no family entry.
func FamilyName(data []byte) (string, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return "", fmt.Errorf("parse font: %w", err)
	}
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return "", nil
	}
	return name, nil
}
