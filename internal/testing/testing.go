// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/desertthunder/soundgram/internal/models"
)

// MockFetcher is a test double for services.Fetcher that records every request it receives.
type MockFetcher struct {
	Payload json.RawMessage
	Err     error

	mu       sync.Mutex
	requests []models.PlaylistRequest
}

func (m *MockFetcher) Fetch(ctx context.Context, req models.PlaylistRequest) (json.RawMessage, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.Payload, m.Err
}

func (m *MockFetcher) Name() string { return "mock" }

// Requests returns the requests received so far.
func (m *MockFetcher) Requests() []models.PlaylistRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PlaylistRequest(nil), m.requests...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// timeoutError satisfies net.Error with Timeout() reporting true.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// ErrNetTimeout is a net.Error whose Timeout method reports true.
var ErrNetTimeout error = timeoutError{}
