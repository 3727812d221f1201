package cache

import (
	"context"
	"log/slog"

	"subtrans/internal/language"
	"subtrans/internal/translator"
)

// Backend wraps a translator.Backend with the translation cache. Cache
// hits are answered locally; only misses travel to the inner backend.
// Errors from the inner backend pass through untouched so the caller's
// retry handling sees exactly what the backend returned.
type Backend struct {
	inner  translator.Backend
	store  *Store
	model  string
	logger *slog.Logger
}

var _ translator.Backend = (*Backend)(nil)

// NewBackend decorates inner with the cache store. The model name is
// part of every cache key so different models never share entries.
func NewBackend(inner translator.Backend, store *Store, model string, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{inner: inner, store: store, model: model, logger: logger}
}

// Translate serves what it can from the cache, forwards the remainder,
// and writes fresh translations back on success.
func (b *Backend) Translate(ctx context.Context, items []translator.Item, source, target language.Language) (map[int]string, error) {
	out := make(map[int]string, len(items))
	misses := make([]translator.Item, 0, len(items))
	keys := make(map[int]string, len(items))

	for _, item := range items {
		key := Key(b.model, source.Code, target.Code, item.Text)
		keys[item.ID] = key
		cached, ok, err := b.store.Get(ctx, key)
		if err != nil {
			// A broken cache read degrades to a miss rather than
			// failing the batch.
			b.logger.Warn("cache read failed", "error", err)
			ok = false
		}
		if ok {
			out[item.ID] = cached
			continue
		}
		misses = append(misses, item)
	}

	if len(misses) == 0 {
		return out, nil
	}

	fresh, err := b.inner.Translate(ctx, misses, source, target)
	if err != nil {
		return nil, err
	}

	for _, item := range misses {
		translated, ok := fresh[item.ID]
		if !ok {
			continue
		}
		out[item.ID] = translated
		if err := b.store.Put(ctx, keys[item.ID], b.model, source.Code, target.Code, item.Text, translated); err != nil {
			b.logger.Warn("cache write failed", "error", err)
		}
	}
	return out, nil
}
