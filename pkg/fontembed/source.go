package fontembed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/exzellenz/exzellenz/pkg/buildinfo"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fonts"
	"github.com/exzellenz/exzellenz/pkg/observability"
)

// maxFontSize caps the bytes read from any font source.
const maxFontSize = 32 << 20

// builtinPrefix selects a font bundled with the binary.
const builtinPrefix = "builtin:"

type sourceKind int

const (
	sourceBuiltin sourceKind = iota
	sourceHTTP
	sourceFile
)

func (k sourceKind) String() string {
	switch k {
	case sourceBuiltin:
		return "builtin"
	case sourceHTTP:
		return "http"
	default:
		return "file"
	}
}

// classify returns the kind of src and, for files, the local path.
func classify(src string) (sourceKind, string) {
	switch {
	case strings.HasPrefix(src, builtinPrefix):
		return sourceBuiltin, strings.TrimPrefix(src, builtinPrefix)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return sourceHTTP, src
	case strings.HasPrefix(src, "file://"):
		if u, err := url.Parse(src); err == nil {
			return sourceFile, u.Path
		}
		return sourceFile, strings.TrimPrefix(src, "file://")
	default:
		return sourceFile, src
	}
}

// IsRemote reports whether src is fetched over the network.
func IsRemote(src string) bool {
	kind, _ := classify(src)
	return kind == sourceHTTP
}

func readBuiltin(name string) ([]byte, error) {
	data, err := fonts.Lookup(name)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "builtin font")
	}
	return data, nil
}

func readFile(src, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errs.ResourceFetchError{URL: src, Status: http.StatusNotFound, StatusText: http.StatusText(http.StatusNotFound), Cause: err}
		}
		return nil, &errs.ResourceFetchError{URL: src, Cause: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFontSize+1))
	if err != nil {
		return nil, &errs.ResourceFetchError{URL: src, Cause: err}
	}
	if len(data) > maxFontSize {
		return nil, &errs.ResourceFetchError{URL: src, Cause: fmt.Errorf("font exceeds %d bytes", maxFontSize)}
	}
	return data, nil
}

// fetchHTTP performs a single GET. There is no retry: a failed fetch is
// reported to the caller as is.
func fetchHTTP(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, &errs.ResourceFetchError{URL: src, Cause: err}
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, &errs.ResourceFetchError{URL: src, Cause: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.ResourceFetchError{
			URL:        src,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontSize+1))
	if err != nil {
		return nil, &errs.ResourceFetchError{URL: src, Cause: err}
	}
	if len(data) > maxFontSize {
		return nil, &errs.ResourceFetchError{URL: src, Cause: fmt.Errorf("font exceeds %d bytes", maxFontSize)}
	}
	return data, nil
}
