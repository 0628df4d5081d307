package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allergiapp/langpack/internal"
	"github.com/allergiapp/langpack/internal/batch"
	"github.com/allergiapp/langpack/internal/catalog"
	"github.com/allergiapp/langpack/internal/notify"
	"github.com/allergiapp/langpack/internal/telemetry"
	"github.com/allergiapp/langpack/internal/translator"
)

// Telemetry dispatch is best-effort and bounded; it never holds up teardown.
const telemetryTimeout = 5 * time.Second

// SessionConfig wires a Session's collaborators. Service and Catalog are
// required; nil Sink and Notifier default to no-ops.
type SessionConfig struct {
	Service    translator.Service
	Catalog    catalog.Catalog
	Delay      time.Duration
	Sink       telemetry.Sink
	Consent    telemetry.Consent
	Notifier   notify.Notifier
	OnProgress ProgressFunc
}

// SuccessFunc receives the finished bundle. Persisting it is the caller's
// job; a returned error turns the attempt into a failed one.
type SuccessFunc func(code string, data *internal.DownloadedLanguageData) error

// Session serializes language downloads: at most one runs per process at a
// time, with a cooperative cancel, per-outcome user notification, and
// exactly one telemetry event per terminal attempt.
type Session struct {
	orchestrator *Orchestrator
	service      translator.Service
	sink         telemetry.Sink
	consent      telemetry.Consent
	notifier     notify.Notifier
	onProgress   ProgressFunc

	mu       sync.Mutex
	active   string // language code currently downloading, "" when idle
	cancel   context.CancelFunc
	progress *internal.DownloadProgress
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Sink == nil {
		cfg.Sink = telemetry.NopSink{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard{}
	}

	return &Session{
		orchestrator: NewOrchestrator(cfg.Catalog, batch.New(cfg.Service, cfg.Delay)),
		service:      cfg.Service,
		sink:         cfg.Sink,
		consent:      cfg.Consent,
		notifier:     cfg.Notifier,
		onProgress:   cfg.OnProgress,
	}
}

// Start runs a download for code and blocks until the attempt reaches a
// terminal state. A Start while any download is in flight is a no-op: not
// queued, not an error. When the service is unreachable the user is told and
// nothing else happens; no telemetry is recorded for that early return.
func (s *Session) Start(ctx context.Context, code string, onSuccess SuccessFunc) {
	runCtx, ok := s.claim(ctx, code)
	if !ok {
		return
	}
	defer s.release()

	if err := s.service.IsAvailable(runCtx); err != nil {
		s.notifier.Notify(notify.NoConnectivity)
		return
	}

	start := time.Now()
	data, err := s.orchestrator.Download(runCtx, code, s.setProgress)

	success := false
	switch {
	case err == nil:
		if cbErr := onSuccess(code, data); cbErr != nil {
			s.notifier.Notify(notify.DownloadError)
		} else {
			success = true
			s.notifier.Notify(notify.DownloadComplete)
		}
	case errors.Is(err, translator.ErrCancelled):
		s.notifier.Notify(notify.DownloadCancelled)
	default:
		s.notifier.Notify(notify.DownloadError)
	}

	s.emit(code, success, time.Since(start))
}

// Cancel signals the in-flight download, if any. The download stops at its
// next cancellation checkpoint; an idle session is unaffected.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Close cancels any in-flight download. Meant for owner teardown, so no
// orphaned download keeps consuming network after its observer is gone.
func (s *Session) Close() {
	s.Cancel()
}

// Active returns the language code currently downloading, or "".
func (s *Session) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Downloading reports whether code is the one currently downloading.
func (s *Session) Downloading(code string) bool {
	return s.Active() == code
}

// Progress returns the latest snapshot for the in-flight download.
func (s *Session) Progress() (internal.DownloadProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress == nil {
		return internal.DownloadProgress{}, false
	}
	return *s.progress, true
}

// claim transitions idle -> downloading. The mutex guarantees two concurrent
// Start calls can never both claim the slot.
func (s *Session) claim(ctx context.Context, code string) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != "" {
		return nil, false
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.active = code
	s.cancel = cancel
	s.progress = nil
	return runCtx, true
}

// release resets to idle and clears progress, releasing the run context.
func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = ""
	s.progress = nil
}

func (s *Session) setProgress(p internal.DownloadProgress) {
	s.mu.Lock()
	s.progress = &p
	s.mu.Unlock()

	if s.onProgress != nil {
		s.onProgress(p)
	}
}

// emit dispatches the single telemetry event for a terminal attempt. Sink
// failures are logged and dropped; they never change the download outcome.
func (s *Session) emit(code string, success bool, elapsed time.Duration) {
	if !s.consent.Granted {
		return
	}

	evt := telemetry.Event{
		ID:           uuid.NewString(),
		LanguageCode: code,
		Success:      success,
		DurationMS:   elapsed.Milliseconds(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), telemetryTimeout)
	defer cancel()

	if err := s.sink.LanguageDownloaded(ctx, evt); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry dispatch failed: %v\n", err)
	}
}
