// Package fontembed loads the font that exported documents embed.
//
// A [Loader] owns a single font source and fetches it at most once. Every
// caller of [Loader.Load] shares the same outcome: either the resolved
// [Resource] or the error of the one fetch attempt. A failed fetch is final
// for that Loader; there is no retry.
//
//	l := fontembed.NewLoader("https://example.com/fonts/exzellenz.woff",
//	    fontembed.WithCache(c, 30*24*time.Hour))
//	l.Start(ctx) // begin fetching in the background
//	...
//	res, err := l.Load(ctx) // wait for the shared result
//
// Sources are "http://" and "https://" URLs, "file://" URLs or plain paths,
// and "builtin:<name>" for the fonts bundled in package fonts. Only remote
// sources go through the byte cache.
package fontembed

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/exzellenz/exzellenz/pkg/cache"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/observability"
)

// DefaultFamily is the family name a loaded font is registered under unless
// [WithFamily] says otherwise.
const DefaultFamily = "exzellenz"

// DefaultCacheTTL is how long fetched font bytes stay in the cache.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Loader fetches one font source once and memoizes the outcome.
type Loader struct {
	src    string
	family string
	client *http.Client
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger

	once sync.Once
	done chan struct{}
	res  *Resource
	err  error
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for remote sources.
func WithHTTPClient(c *http.Client) Option { return func(l *Loader) { l.client = c } }

// WithCache stores remote font bytes in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(l *Loader) { l.cache, l.ttl = c, ttl }
}

// WithKeyer sets the keyer for cache entries.
func WithKeyer(k cache.Keyer) Option { return func(l *Loader) { l.keyer = k } }

// WithLogger sets the logger.
func WithLogger(lg *log.Logger) Option { return func(l *Loader) { l.logger = lg } }

// WithFamily sets the family name of the resulting resource.
func WithFamily(family string) Option { return func(l *Loader) { l.family = family } }

// NewLoader creates a loader for src. Nothing is fetched until Start or Load
// is called.
func NewLoader(src string, opts ...Option) *Loader {
	l := &Loader{
		src:    src,
		family: DefaultFamily,
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		ttl:    DefaultCacheTTL,
		logger: log.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolved returns a loader that has already settled with res.
func Resolved(res *Resource) *Loader {
	l := &Loader{src: "memory:" + res.Family, family: res.Family, done: make(chan struct{}), res: res}
	l.once.Do(func() { close(l.done) })
	return l
}

// Source returns the font source the loader was created with.
func (l *Loader) Source() string { return l.src }

// Family returns the family name of the resource the loader produces.
func (l *Loader) Family() string { return l.family }

// Start begins the fetch in the background. Only the first call has any
// effect; its ctx governs the fetch for every caller.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() { go l.run(ctx) })
}

// Load starts the fetch if needed and waits for its outcome. Cancelling ctx
// stops the wait but not the shared fetch.
func (l *Loader) Load(ctx context.Context) (*Resource, error) {
	l.Start(context.WithoutCancel(ctx))
	select {
	case <-l.done:
		return l.res, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done is closed once the fetch has settled.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Result returns the outcome without waiting. While the fetch is pending the
// error has code FONT_NOT_LOADED.
func (l *Loader) Result() (*Resource, error) {
	select {
	case <-l.done:
		return l.res, l.err
	default:
		return nil, errs.New(errs.ErrCodeFontNotLoaded, "font %q is still loading", l.family)
	}
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)

	start := time.Now()
	observability.Font().OnFontFetchStart(ctx, l.src)

	res, err := l.load(ctx)
	elapsed := time.Since(start)

	size := 0
	if res != nil {
		size = len(res.Data)
	}
	observability.Font().OnFontFetchComplete(ctx, l.src, size, elapsed, err)

	if err != nil {
		l.logger.Error("font load failed", "source", l.src, "err", err)
		l.err = err
		return
	}
	l.logger.Debug("font loaded",
		"source", l.src,
		"family", res.Family,
		"mime", res.MIMEType,
		"bytes", size,
		"duration", elapsed.Round(time.Millisecond))
	l.res = res
}

func (l *Loader) load(ctx context.Context) (*Resource, error) {
	if err := errs.ValidateFontSource(l.src); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch kind, target := classify(l.src); kind {
	case sourceBuiltin:
		data, err = readBuiltin(target)
	case sourceHTTP:
		data, err = l.fetchCached(ctx)
	default:
		data, err = readFile(l.src, target)
	}
	if err != nil {
		return nil, err
	}

	res := NewResource(l.family, data)
	if _, err := res.SFNT(); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Loader) fetchCached(ctx context.Context) ([]byte, error) {
	key := l.keyer.FontKey(l.src)
	hooks := observability.Cache()

	data, hit, err := l.cache.Get(ctx, key)
	switch {
	case err != nil:
		l.logger.Warn("font cache read failed", "err", err)
	case hit:
		hooks.OnCacheHit(ctx, "font")
		l.logger.Debug("font cache hit", "source", l.src)
		return data, nil
	default:
		hooks.OnCacheMiss(ctx, "font")
	}

	data, err = fetchHTTP(ctx, l.client, l.src)
	if err != nil {
		return nil, err
	}

	if SniffMIME(data) != "application/octet-stream" {
		if err := l.cache.Set(ctx, key, data, l.ttl); err != nil {
			l.logger.Warn("font cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "font", len(data))
		}
	}
	return data, nil
}
