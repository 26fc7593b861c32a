package cache

// Keyer builds cache keys.
type Keyer interface {
	// FontKey returns the key for the raw bytes fetched from a font source.
	FontKey(source string) string
}

// fontKeyVersion changes whenever the stored representation of font bytes
// changes, so stale entries are never read back.
const fontKeyVersion = 1

// DefaultKeyer hashes its inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FontKey returns "font:<sha256>" for source.
func (DefaultKeyer) FontKey(source string) string {
	return hashKey("font", fontKeyVersion, source)
}
