package requests

import (
	"bytes"
	"consolidator/src/utils"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ExternalAPIService wraps an http.Client for JSON calls to third party services
type ExternalAPIService struct {
	client *http.Client
}

// NewExternalAPIService creates a new instance of ExternalAPIService with the given request timeout
func NewExternalAPIService(timeout time.Duration) *ExternalAPIService {
	return &ExternalAPIService{client: &http.Client{Timeout: timeout}}
}

// makeRequest is a helper function to make HTTP requests, supporting optional query parameters
func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint string, params url.Values, body interface{}) ([]byte, error) {
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, utils.NewHTTPError(resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Get makes a GET request and returns the response body of a 2xx reply
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	return s.makeRequest(ctx, http.MethodGet, endpoint, params, nil)
}

// GetJSON makes a GET request and decodes the JSON reply into out
func (s *ExternalAPIService) GetJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	body, err := s.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
