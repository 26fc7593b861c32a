package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Hello", false},
		{"valid with spaces", "Hello World", false},
		{"valid unicode", "Grüße", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxTextLength+1), true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateHeightPadding(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		heightErr  bool
		paddingErr bool
	}{
		{"positive", 100, false, false},
		{"zero", 0, true, false},
		{"negative", -1, true, true},
		{"nan", math.NaN(), true, true},
		{"inf", math.Inf(1), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateHeight(tt.value); (err != nil) != tt.heightErr {
				t.Errorf("ValidateHeight(%v) error = %v, wantErr %v", tt.value, err, tt.heightErr)
			}
			if err := ValidatePadding(tt.value); (err != nil) != tt.paddingErr {
				t.Errorf("ValidatePadding(%v) error = %v, wantErr %v", tt.value, err, tt.paddingErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#1565c0", false},
		{"#FFF", false},
		{"", true},
		{"red", true},
		{"#12345", true},
		{"1565c0", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFamily(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"exzellenz", false},
		{"exzellenz-fallback", false},
		{"Go Regular 2.0", false},
		{"test_regular", false},
		{"", true},
		{" leading", true},
		{`x";}body{color:red`, true},
		{"a<b", true},
		{"a&b", true},
		{"tab\tname", true},
		{strings.Repeat("a", MaxFamilyLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateFamily(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFamily(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateFamily(%q) code = %v, want INVALID_INPUT", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateFontSource(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/fonts/exzellenz.woff", false},
		{"http", "http://localhost:8080/fonts/a.ttf", false},
		{"builtin", "builtin:goregular", false},
		{"file url", "file:///usr/share/fonts/a.ttf", false},
		{"path", "fonts/exzellenz.ttf", false},

		{"empty", "", true},
		{"builtin no name", "builtin:", true},
		{"ftp", "ftp://example.com/a.ttf", true},
		{"control char", "fonts/\x01a.ttf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFontSource(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFontSource(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
