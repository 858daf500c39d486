package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// ExternalAPIService is a struct representing a configurable external service
type ExternalAPIService struct {
	client *http.Client
}

// NewExternalAPIService creates a new instance of ExternalAPIService
func NewExternalAPIService() *ExternalAPIService {
	return &ExternalAPIService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// makeRequest is a helper function to make HTTP requests, supporting optional query parameters
func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint, token string, params url.Values, body interface{}) (*http.Response, error) {
	// Convert params to query string
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}

	// Marshal the body to JSON if it's provided
	var err error
	var jsonBody []byte
	if body != nil {
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	// Add headers
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	// Execute the request
	return s.client.Do(req)
}

// Get makes a GET request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Get(ctx context.Context, endpoint, token string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, "GET", endpoint, token, params, nil)
}

// Post makes a POST request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Post(ctx context.Context, endpoint, token string, params url.Values, body interface{}) (*http.Response, error) {
	return s.makeRequest(ctx, "POST", endpoint, token, params, body)
}

// Put makes a PUT request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Put(ctx context.Context, endpoint, token string, params url.Values, body interface{}) (*http.Response, error) {
	return s.makeRequest(ctx, "PUT", endpoint, token, params, body)
}

// Delete makes a DELETE request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Delete(ctx context.Context, endpoint, token string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, "DELETE", endpoint, token, params, nil)
}
