package translator

import "context"

// Request is a single text to translate between a fixed language pair.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Service is a translation backend. One Translate call issues one outbound
// request; rate limiting and sequencing are the caller's concern.
type Service interface {
	Name() string

	// Translate returns the translated text as returned by the provider,
	// untrimmed. Failures are classified into the package error taxonomy.
	Translate(ctx context.Context, req Request) (string, error)

	// IsAvailable reports whether the backend is reachable right now, using
	// a short probe with its own deadline. A non-nil error means
	// unreachable; it never panics.
	IsAvailable(ctx context.Context) error
}
