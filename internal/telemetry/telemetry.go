// Package telemetry records one event per completed download attempt.
package telemetry

import (
	"context"

	"github.com/allergiapp/langpack/internal/store"
)

// Event describes one terminal download attempt.
type Event struct {
	ID           string
	LanguageCode string
	Success      bool
	DurationMS   int64
}

// Consent is the user's analytics choice, handed to the session controller
// explicitly rather than read from process-global state, so tests can pin it
// per case.
type Consent struct {
	Granted bool
}

// Sink accepts download events. Dispatch is best-effort: callers log and
// drop the returned error, and a failing sink must never affect the download
// outcome.
type Sink interface {
	LanguageDownloaded(ctx context.Context, evt Event) error
}

// NopSink discards every event. Selected at process start when the analytics
// capability is absent.
type NopSink struct{}

func (NopSink) LanguageDownloaded(context.Context, Event) error { return nil }

// StoreSink persists events to the local store.
type StoreSink struct {
	store *store.Store
}

func NewStoreSink(s *store.Store) *StoreSink {
	return &StoreSink{store: s}
}

func (s *StoreSink) LanguageDownloaded(ctx context.Context, evt Event) error {
	return s.store.SaveDownloadEvent(ctx, evt.ID, evt.LanguageCode, evt.Success, evt.DurationMS)
}
