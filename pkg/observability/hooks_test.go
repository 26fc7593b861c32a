package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopExportHooks{}
	e.OnExportStart(ctx, "svg", 5)
	e.OnExportComplete(ctx, "svg", 1024, time.Second, nil)

	f := NoopFontHooks{}
	f.OnFontFetchStart(ctx, "builtin:goregular")
	f.OnFontFetchComplete(ctx, "builtin:goregular", 1024, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "font")
	c.OnCacheMiss(ctx, "font")
	c.OnCacheSet(ctx, "font", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.com", "/fonts/exzellenz/exzellenz.woff")
	h.OnResponse(ctx, "GET", "example.com", "/fonts/exzellenz/exzellenz.woff", 200, time.Second)
	h.OnError(ctx, "GET", "example.com", "/fonts/exzellenz/exzellenz.woff", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Font().(NoopFontHooks); !ok {
		t.Error("Font() should return NoopFontHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	customFont := &testFontHooks{}
	SetFontHooks(customFont)
	if Font() != customFont {
		t.Error("SetFontHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Reset() should restore NoopExportHooks")
	}
	if _, ok := Font().(NoopFontHooks); !ok {
		t.Error("Reset() should restore NoopFontHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testExportHooks{}
	SetExportHooks(custom)
	SetExportHooks(nil)

	if Export() != custom {
		t.Error("SetExportHooks(nil) should be ignored")
	}

	Reset()
}

type testExportHooks struct{ NoopExportHooks }
type testFontHooks struct{ NoopFontHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
