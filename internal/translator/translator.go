package translator

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"subtrans/internal/language"
	"subtrans/internal/services"
	"subtrans/internal/subtitle"
)

// DefaultBatchSize is the number of segments sent per backend request when
// no override is configured.
const DefaultBatchSize = 50

// Item is one unit of text sent to a backend. The ID re-associates the
// translation with its source segment.
type Item struct {
	ID   int
	Text string
}

// Backend translates a batch of items. Implementations must be safe to
// retry: a failed call is reissued with smaller batches. Errors should be
// tagged with the markers in the services package; the translator treats
// every failure the same way regardless of marker.
type Backend interface {
	Translate(ctx context.Context, items []Item, source, target language.Language) (map[int]string, error)
}

// Summary reports the outcome of a translation run.
type Summary struct {
	Total  int
	Failed []int // Indices of segments that kept their original text
}

// Translator drives batch translation with recursive failure isolation.
type Translator struct {
	backend    Backend
	batchSize  int
	logger     *slog.Logger
	onProgress func(done, total int)
}

// Option customizes a Translator.
type Option func(*Translator)

// WithBatchSize overrides the default batch size. Values below one are
// ignored.
func WithBatchSize(n int) Option {
	return func(t *Translator) {
		if n >= 1 {
			t.batchSize = n
		}
	}
}

// WithLogger attaches a logger for per-segment failure warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithProgress registers a callback fired after each resolved batch with
// the number of segments settled so far and the overall total.
func WithProgress(fn func(done, total int)) Option {
	return func(t *Translator) {
		t.onProgress = fn
	}
}

// New constructs a Translator over the supplied backend.
func New(backend Backend, opts ...Option) *Translator {
	t := &Translator{
		backend:   backend,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate produces a new set whose segments carry translated text and
// the exact Index, Start, and End of the source segments. The input set is
// never modified. The only error returned is context cancellation; backend
// failures are contained by split-retry and surface through Summary.Failed.
func (t *Translator) Translate(ctx context.Context, set subtitle.Set, source, target language.Language) (subtitle.Set, Summary, error) {
	summary := Summary{Total: len(set)}
	if len(set) == 0 {
		return subtitle.Set{}, summary, nil
	}

	// Pre-populate with the source segments so failed leaves keep their
	// original text and timings are copied exactly once.
	out := set.Clone()

	done := 0
	for start := 0; start < len(set); start += t.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}
		end := min(start+t.batchSize, len(set))
		if err := t.translateRange(ctx, set, out, start, end, source, target, &summary, &done); err != nil {
			return nil, summary, err
		}
	}

	sort.Ints(summary.Failed)
	return out, summary, nil
}

// translateRange resolves src[lo:hi] into out, splitting on failure. Each
// leaf writes a disjoint index range, so recursion never contends for a
// segment.
func (t *Translator) translateRange(ctx context.Context, src, out subtitle.Set, lo, hi int, source, target language.Language, summary *Summary, done *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items := make([]Item, 0, hi-lo)
	for i := lo; i < hi; i++ {
		items = append(items, Item{ID: src[i].Index, Text: src[i].Text})
	}

	result, err := t.backend.Translate(ctx, items, source, target)
	if err == nil {
		err = validateResult(result, items)
	}
	if err == nil {
		for i := lo; i < hi; i++ {
			out[i].Text = result[src[i].Index]
		}
		t.settle(hi-lo, done, summary.Total)
		return nil
	}

	// Cancellation aborts the job; everything else is a batch failure.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if hi-lo == 1 {
		summary.Failed = append(summary.Failed, src[lo].Index)
		t.logger.Warn("segment translation failed, keeping original text",
			"index", src[lo].Index,
			"error", err,
		)
		t.settle(1, done, summary.Total)
		return nil
	}

	t.logger.Debug("batch failed, splitting",
		"segments", hi-lo,
		"error", err,
	)

	// Odd splits bias the larger half to the front.
	mid := lo + (hi-lo+1)/2
	if err := t.translateRange(ctx, src, out, lo, mid, source, target, summary, done); err != nil {
		return err
	}
	return t.translateRange(ctx, src, out, mid, hi, source, target, summary, done)
}

func (t *Translator) settle(count int, done *int, total int) {
	*done += count
	if t.onProgress != nil {
		t.onProgress(*done, total)
	}
}

// validateResult enforces the batch contract: exactly one non-empty
// translation per requested ID.
func validateResult(result map[int]string, items []Item) error {
	if len(result) != len(items) {
		return services.Wrap(services.ErrPartialResult, "translator", "validate",
			"translation count mismatch", nil)
	}
	for _, item := range items {
		text, ok := result[item.ID]
		if !ok || strings.TrimSpace(text) == "" {
			return services.Wrap(services.ErrPartialResult, "translator", "validate",
				"missing translation for segment", nil)
		}
	}
	return nil
}
