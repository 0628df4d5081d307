package translator

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService translates through the Google Cloud Translation API. It is
// the alternative backend for users who bring their own credentials.
type GoogleService struct {
	credentials string
}

// NewGoogleService creates a backend using the given credentials file.
// An empty path falls back to GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogleService(credentialsFile string) *GoogleService {
	return &GoogleService{credentials: credentialsFile}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}
	return opts
}

func (s *GoogleService) Translate(ctx context.Context, req Request) (string, error) {
	targetTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %v", req.TargetLang, err)
	}

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "en"
	}
	sourceTag, err := language.Parse(sourceLang)
	if err != nil {
		return "", fmt.Errorf("invalid source language %q: %v", sourceLang, err)
	}

	client, err := translate.NewClient(ctx, s.clientOptions()...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{req.Text}, targetTag, &translate.Options{
		Source: sourceTag,
	})
	if err != nil {
		return "", classifyTransportError(err)
	}

	if len(translations) == 0 {
		return "", fmt.Errorf("%w: no translation returned", ErrInvalidResponse)
	}

	return translations[0].Text, nil
}

func (s *GoogleService) IsAvailable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	client, err := translate.NewClient(ctx, s.clientOptions()...)
	if err != nil {
		return err
	}
	defer client.Close()

	_, err = client.SupportedLanguages(ctx, language.English)
	return err
}
