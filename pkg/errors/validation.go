package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxTextLength bounds the exported string. Single-line text only, so
// anything longer is almost certainly pasted by mistake.
const MaxTextLength = 256

// ValidateText validates a string for export.
//
// The validation rules:
//   - No empty text (export is blocked, not attempted)
//   - No control characters, which includes newlines (single-line only)
//   - Maximum length of MaxTextLength runes
func ValidateText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "text cannot be empty")
	}

	if n := len([]rune(text)); n > MaxTextLength {
		return New(ErrCodeInvalidInput, "text too long (%d characters, max %d)", n, MaxTextLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "text contains control characters")
		}
	}

	return nil
}

// ValidateHeight validates the requested text height.
func ValidateHeight(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return New(ErrCodeInvalidInput, "height must be a positive number, got %v", h)
	}
	return nil
}

// ValidatePadding validates the padding around the text.
func ValidatePadding(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return New(ErrCodeInvalidInput, "padding must be a non-negative number, got %v", p)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a fill color. Only hex notation is accepted so the
// same value renders identically in SVG viewers and the native rasterizer.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// MaxFamilyLength is the maximum length of a font family name.
const MaxFamilyLength = 64

// familyRegex matches family names that are safe to place unescaped in a
// CSS string and an XML attribute.
var familyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]*$`)

// ValidateFamily validates a font family name.
func ValidateFamily(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "font family cannot be empty")
	}
	if len(name) > MaxFamilyLength {
		return New(ErrCodeInvalidInput, "font family too long (%d bytes, max %d)", len(name), MaxFamilyLength)
	}
	if !familyRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid font family %q (letters, digits, space, '_', '.', '-')", name)
	}
	return nil
}

// ValidateFontSource validates a font source string.
// Accepted forms are http(s) URLs, builtin:<name> and file paths.
func ValidateFontSource(src string) error {
	if src == "" {
		return New(ErrCodeInvalidSource, "font source cannot be empty")
	}

	for _, r := range src {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "font source contains invalid characters")
		}
	}

	if strings.HasPrefix(src, "builtin:") && strings.TrimPrefix(src, "builtin:") == "" {
		return New(ErrCodeInvalidSource, "builtin font source needs a name")
	}

	if i := strings.Index(src, "://"); i > 0 {
		switch src[:i] {
		case "http", "https", "file":
		default:
			return New(ErrCodeInvalidSource, "unsupported font source scheme %q", src[:i])
		}
	}

	return nil
}
