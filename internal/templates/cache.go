package templates

import (
	"context"
	"sync"

	"golang.org/x/text/language"
)

type languageCacheKey struct{}

type languageCache struct {
	mu   sync.Mutex
	tags map[int64]language.Tag
}

// WithLanguageCache returns a context under which Render resolves each
// reseller's language once. Scope it to a single notification.
func WithLanguageCache(ctx context.Context) context.Context {
	if _, ok := ctx.Value(languageCacheKey{}).(*languageCache); ok {
		return ctx
	}
	return context.WithValue(ctx, languageCacheKey{}, &languageCache{tags: map[int64]language.Tag{}})
}

func cachedLanguage(ctx context.Context, resellerID int64, resolve func() language.Tag) language.Tag {
	cache, ok := ctx.Value(languageCacheKey{}).(*languageCache)
	if !ok {
		return resolve()
	}
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if tag, ok := cache.tags[resellerID]; ok {
		return tag
	}
	tag := resolve()
	cache.tags[resellerID] = tag
	return tag
}
