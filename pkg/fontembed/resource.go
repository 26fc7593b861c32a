package fontembed

import (
	"bytes"
	"encoding/base64"
	"sync"

	tdfont "github.com/tdewolff/font"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/measure"
)

// Font MIME types recognised by [SniffMIME].
const (
	MIMETypeTTF   = "font/ttf"
	MIMETypeOTF   = "font/otf"
	MIMETypeWOFF  = "font/woff"
	MIMETypeWOFF2 = "font/woff2"
)

// Resource is font data ready to be embedded in a document. It is immutable
// once created and safe to share between goroutines.
type Resource struct {
	Family   string
	MIMEType string
	Data     []byte

	dataURLOnce sync.Once
	dataURL     string

	sfntOnce sync.Once
	sfnt     []byte
	sfntErr  error
}

// NewResource wraps font data, detecting its MIME type from the header.
func NewResource(family string, data []byte) *Resource {
	return &Resource{
		Family:   family,
		MIMEType: SniffMIME(data),
		Data:     data,
	}
}

// DataURL returns the font as a base64 data: URL. The encoding is computed
// on first use and reused afterwards.
func (r *Resource) DataURL() string {
	r.dataURLOnce.Do(func() {
		r.dataURL = "data:" + r.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
	})
	return r.dataURL
}

// SFNT returns the font as TrueType/OpenType bytes, decompressing WOFF and
// WOFF2 data.
func (r *Resource) SFNT() ([]byte, error) {
	r.sfntOnce.Do(func() {
		r.sfnt, r.sfntErr = ToSFNT(r.Data)
	})
	return r.sfnt, r.sfntErr
}

// Register makes the resource's family measurable in reg.
func (r *Resource) Register(reg *measure.Registry) error {
	data, err := r.SFNT()
	if err != nil {
		return err
	}
	return reg.Register(r.Family, data)
}

// ToSFNT converts font data of any supported container to SFNT bytes.
func ToSFNT(data []byte) ([]byte, error) {
	switch SniffMIME(data) {
	case MIMETypeTTF, MIMETypeOTF:
		return data, nil
	case MIMETypeWOFF, MIMETypeWOFF2:
		out, err := tdfont.ToSFNT(data)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeUnsupported, err, "decode web font")
		}
		return out, nil
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unrecognised font data")
	}
}

// SniffMIME identifies font data by its first four bytes. Unknown data is
// reported as "application/octet-stream".
func SniffMIME(data []byte) string {
	if len(data) < 4 {
		return "application/octet-stream"
	}
	switch tag := data[:4]; {
	case bytes.Equal(tag, []byte("wOFF")):
		return MIMETypeWOFF
	case bytes.Equal(tag, []byte("wOF2")):
		return MIMETypeWOFF2
	case bytes.Equal(tag, []byte("OTTO")):
		return MIMETypeOTF
	case bytes.Equal(tag, []byte{0x00, 0x01, 0x00, 0x00}), bytes.Equal(tag, []byte("true")):
		return MIMETypeTTF
	}
	return "application/octet-stream"
}

// CSSFormat returns the @font-face format() hint for a font MIME type.
func CSSFormat(mime string) string {
	switch mime {
	case MIMETypeWOFF:
		return "woff"
	case MIMETypeWOFF2:
		return "woff2"
	case MIMETypeOTF:
		return "opentype"
	case MIMETypeTTF:
		return "truetype"
	}
	return ""
}
