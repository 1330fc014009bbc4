package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// Translator renders English response text in the user's language.
type Translator interface {
	Translate(ctx context.Context, text string, targetLanguage string) (string, error)
}

// HTTPTranslator posts text to a translation service. The service is
// optional, callers keep the English text when it is unconfigured or fails.
type HTTPTranslator struct {
	Endpoint string
	APIKey   string

	httpClient *http.Client
}

func NewHTTPTranslator() *HTTPTranslator {
	env := util.GetEnvironmentVariables()

	if env["YATRIGO_TRANSLATOR_ENDPOINT"] == "" {
		return nil
	}

	return &HTTPTranslator{
		Endpoint: env["YATRIGO_TRANSLATOR_ENDPOINT"],
		APIKey:   env["YATRIGO_TRANSLATOR_API_KEY"],
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type translationRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

type translationResponse struct {
	Text string `json:"text"`
}

func (t *HTTPTranslator) Translate(ctx context.Context, text string, targetLanguage string) (string, error) {
	body, err := json.Marshal(translationRequest{
		Text:           text,
		TargetLanguage: targetLanguage,
	})
	if err != nil {
		return "", transit.ExternalServiceError{Service: "translator", Err: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", transit.ExternalServiceError{Service: "translator", Err: err}
	}
	request.Header.Set("Content-Type", "application/json")
	if t.APIKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.APIKey))
	}

	response, err := t.httpClient.Do(request)
	if err != nil {
		return "", transit.ExternalServiceError{Service: "translator", Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", transit.ExternalServiceError{
			Service: "translator",
			Err:     fmt.Errorf("status %d", response.StatusCode),
		}
	}

	var translation translationResponse
	if err := json.NewDecoder(response.Body).Decode(&translation); err != nil {
		return "", transit.ExternalServiceError{Service: "translator", Err: err}
	}

	return translation.Text, nil
}
