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

// Transcriber turns recorded speech into query text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// HTTPTranscriber posts audio to a speech-to-text service. The service is
// optional, the voice endpoint reports it as unavailable when unconfigured.
type HTTPTranscriber struct {
	Endpoint string
	APIKey   string

	httpClient *http.Client
}

func NewHTTPTranscriber() *HTTPTranscriber {
	env := util.GetEnvironmentVariables()

	if env["YATRIGO_TRANSCRIBER_ENDPOINT"] == "" {
		return nil
	}

	return &HTTPTranscriber{
		Endpoint: env["YATRIGO_TRANSCRIBER_ENDPOINT"],
		APIKey:   env["YATRIGO_TRANSCRIBER_API_KEY"],
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (t *HTTPTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	requestURL := t.Endpoint
	if language != "" {
		requestURL = fmt.Sprintf("%s?language=%s", t.Endpoint, language)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(audio))
	if err != nil {
		return "", transit.ExternalServiceError{Service: "transcriber", Err: err}
	}
	request.Header.Set("Content-Type", "application/octet-stream")
	if t.APIKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.APIKey))
	}

	response, err := t.httpClient.Do(request)
	if err != nil {
		return "", transit.ExternalServiceError{Service: "transcriber", Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", transit.ExternalServiceError{
			Service: "transcriber",
			Err:     fmt.Errorf("status %d", response.StatusCode),
		}
	}

	var transcription transcriptionResponse
	if err := json.NewDecoder(response.Body).Decode(&transcription); err != nil {
		return "", transit.ExternalServiceError{Service: "transcriber", Err: err}
	}

	return transcription.Text, nil
}
