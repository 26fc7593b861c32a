package render

import (
	"encoding/base64"
	"strings"

	errs "github.com/exzellenz/exzellenz/pkg/errors"
)

// MIMETypeSVG and MIMETypePNG are the artifact MIME types.
const (
	MIMETypeSVG = "image/svg+xml"
	MIMETypePNG = "image/png"
)

// DataURL encodes data as a base64 data: URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// SVGDataURL encodes vector text as a data: URL.
func SVGDataURL(svg string) string {
	return "data:" + MIMETypeSVG + ";charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// DecodeDataURL returns the MIME type and payload of a base64 data: URL.
func DecodeDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, errs.New(errs.ErrCodeInvalidFormat, "not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errs.New(errs.ErrCodeInvalidFormat, "data URL has no payload")
	}
	params := strings.Split(meta, ";")
	if params[len(params)-1] != "base64" {
		return "", nil, errs.New(errs.ErrCodeInvalidFormat, "data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode data URL")
	}
	return params[0], data, nil
}
