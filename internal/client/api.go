// Package client talks to the registration API: it fetches verification
// questions and submits registrations.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/feather/internal/envelope"
	"github.com/atinyakov/feather/internal/models"
)

const (
	apiQuestions = "/api/v1/get_questions"
	apiRegister  = "/api/v1/register"
)

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error %d: %s (%s)", e.Status, e.Message, strings.Join(e.Errors, "; "))
}

// Client calls the API rooted at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client; a nil httpClient is replaced by one with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// NewHTTPClient returns an HTTP client trusting only the CA in caFile. An empty caFile yields the default trust store.
func NewHTTPClient(caFile string) (*http.Client, error) {
	if caFile == "" {
		return &http.Client{Timeout: 10 * time.Second}, nil
	}
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12},
	}
	return &http.Client{Transport: transport, Timeout: 10 * time.Second}, nil
}

// FetchQuestion asks the server for a random verification question.
func (c *Client) FetchQuestion(ctx context.Context) (models.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+apiQuestions, nil)
	if err != nil {
		return models.Question{}, err
	}

	q, err := call[models.Question](c, req)
	if err != nil {
		return models.Question{}, err
	}
	return *q, nil
}

// Register submits a registration and returns the created user.
func (c *Client) Register(ctx context.Context, r models.RegisterRequest) (*models.UserResponse, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+apiRegister, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return call[models.UserResponse](c, req)
}

// call performs req and unwraps the response envelope.
func call[T any](c *Client, req *http.Request) (*T, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope.Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	if env.Data == nil {
		return nil, errors.New("data missing in response")
	}
	return env.Data, nil
}
