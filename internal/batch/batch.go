// Package batch translates ordered lists of strings one request at a time.
package batch

import (
	"context"
	"time"

	"github.com/allergiapp/langpack/internal/translator"
)

// DefaultDelay is the pause between successive requests, kept conservative to
// stay under the provider's rate limits.
const DefaultDelay = 300 * time.Millisecond

// ProgressFunc receives the 1-based count of items completed so far.
type ProgressFunc func(current, total int)

// Translator drains lists of texts through a single backend, strictly one
// request at a time. Requests are never issued concurrently.
type Translator struct {
	service translator.Service
	delay   time.Duration
}

// New creates a batch translator. A non-positive delay selects DefaultDelay.
func New(service translator.Service, delay time.Duration) *Translator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Translator{service: service, delay: delay}
}

// TranslateAll translates texts in order and returns results one-to-one with
// the input. The batch is atomic: any item failure or cancellation fails the
// whole call and no partial prefix is returned. Cancellation is polled before
// each request and during each inter-request pause; one in-flight request may
// still complete after a cancel, and its result is discarded with the batch.
func (t *Translator) TranslateAll(ctx context.Context, texts []string, sourceLang, targetLang string, onProgress ProgressFunc) ([]string, error) {
	results := make([]string, 0, len(texts))
	total := len(texts)

	for i, text := range texts {
		if ctx.Err() != nil {
			return nil, translator.ErrCancelled
		}

		translated, err := t.service.Translate(ctx, translator.Request{
			Text:       text,
			SourceLang: sourceLang,
			TargetLang: targetLang,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, translated)

		if onProgress != nil {
			onProgress(i+1, total)
		}

		// No pause after the last item.
		if i < total-1 {
			select {
			case <-time.After(t.delay):
			case <-ctx.Done():
				return nil, translator.ErrCancelled
			}
		}
	}

	return results, nil
}
