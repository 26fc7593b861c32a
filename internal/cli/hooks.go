package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/exzellenz/exzellenz/pkg/observability"
)

// logHooks writes engine events to the debug log.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks for every event source.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetExportHooks(h)
	observability.SetFontHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnExportStart(_ context.Context, format string, textLen int) {
	h.logger.Debug("export started", "format", format, "chars", textLen)
}

func (h *logHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("export complete", "format", format, "size", size, "duration", d)
}

func (h *logHooks) OnFontFetchStart(_ context.Context, source string) {
	h.logger.Debug("font fetch started", "source", source)
}

func (h *logHooks) OnFontFetchComplete(_ context.Context, source string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("font fetch failed", "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("font fetched", "source", source, "size", size, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "size", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
