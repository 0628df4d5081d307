package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	mymemoryBaseURL = "https://api.mymemory.translated.net/get"

	// Per-request bound; there is deliberately no timeout on a whole
	// download, only on individual requests.
	requestTimeout      = 30 * time.Second
	availabilityTimeout = 10 * time.Second

	// MyMemory reports quota exhaustion in the payload status, not the
	// HTTP status.
	quotaStatus = 403
)

// MyMemoryService translates single strings through the free MyMemory API.
type MyMemoryService struct {
	email   string
	baseURL string
	client  *http.Client
}

// NewMyMemoryService creates the default backend. The email is optional and
// only raises MyMemory's daily character limit.
func NewMyMemoryService(email string) *MyMemoryService {
	return &MyMemoryService{
		email:   email,
		baseURL: mymemoryBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

func (s *MyMemoryService) Translate(ctx context.Context, req Request) (string, error) {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "en"
	}

	params := url.Values{}
	params.Set("q", req.Text)
	params.Set("langpair", fmt.Sprintf("%s|%s", sourceLang, req.TargetLang))
	if s.email != "" {
		params.Set("de", s.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	var body struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus  any    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if status := statusCode(body.ResponseStatus); status != 0 && status != http.StatusOK {
		if status == quotaStatus {
			return "", fmt.Errorf("%w: %s", ErrQuotaExceeded, body.ResponseDetails)
		}
		return "", fmt.Errorf("%w: %s (%d)", ErrNetwork, body.ResponseDetails, status)
	}

	if body.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("%w: missing translatedText", ErrInvalidResponse)
	}

	return body.ResponseData.TranslatedText, nil
}

// IsAvailable probes the API by translating a trivial fixed string under a
// short deadline. Any failure means the service should be treated as
// unreachable; the caller decides what to tell the user.
func (s *MyMemoryService) IsAvailable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	_, err := s.Translate(ctx, Request{Text: "hello", SourceLang: "en", TargetLang: "es"})
	return err
}

// statusCode tolerates the API reporting responseStatus as either a number
// or a quoted string.
func statusCode(v any) int {
	switch s := v.(type) {
	case float64:
		return int(s)
	case string:
		n, _ := strconv.Atoi(s)
		return n
	}
	return 0
}
