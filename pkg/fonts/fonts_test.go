package fonts

import (
	"bytes"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			data, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", name, err)
			}
			// TrueType fonts start with the 0x00010000 sfnt version.
			if !bytes.HasPrefix(data, []byte{0x00, 0x01, 0x00, 0x00}) {
				t.Errorf("Lookup(%q) does not look like a TrueType font", name)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("comic-sans"); err == nil {
		t.Error("Lookup(unknown) should fail")
	}
}

func TestNamesIncludesDefault(t *testing.T) {
	found := false
	for _, n := range Names() {
		if n == Default {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, missing default %q", Names(), Default)
	}
}
