// Yandex Music upstream client
//
// Talks to the provider's public JSON endpoints directly; no authentication is required for public playlists.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/soundgram/internal/models"
	"github.com/desertthunder/soundgram/internal/shared"
	"github.com/tidwall/gjson"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 8 << 20
)

// UpstreamConfig holds the endpoint templates and request identity used by [YandexService].
//
// It is copied into the service at construction and never mutated afterwards.
type UpstreamConfig struct {
	LegacyURL       string
	ModernURL       string
	UserAgent       string
	AcceptLanguage  string
	Timeout         time.Duration
	FollowRedirects bool
	MaxBodyBytes    int64
}

// NewUpstreamConfig converts the TOML upstream section into an [UpstreamConfig].
func NewUpstreamConfig(c shared.UpstreamConfig) (UpstreamConfig, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return UpstreamConfig{}, err
	}

	return UpstreamConfig{
		LegacyURL:       c.LegacyURL,
		ModernURL:       c.ModernURL,
		UserAgent:       c.UserAgent,
		AcceptLanguage:  c.AcceptLanguage,
		Timeout:         timeout,
		FollowRedirects: c.FollowRedirects,
		MaxBodyBytes:    c.MaxBodyBytes,
	}, nil
}

// YandexService implements [Fetcher] against the Yandex Music JSON endpoints.
type YandexService struct {
	config     UpstreamConfig
	httpClient *http.Client
}

// NewYandexService creates a new upstream client.
//
// The given client is copied, so its Timeout and CheckRedirect are set without affecting the caller.
// A nil client starts from a zero [http.Client].
func NewYandexService(config UpstreamConfig, client *http.Client) *YandexService {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}

	var hc http.Client
	if client != nil {
		hc = *client
	}
	hc.Timeout = config.Timeout
	if !config.FollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &YandexService{config: config, httpClient: &hc}
}

// Name returns the service name.
func (y *YandexService) Name() string {
	return "Yandex Music"
}

// Endpoint builds the upstream URL for req from the configured templates.
func (y *YandexService) Endpoint(req models.PlaylistRequest) (string, error) {
	if req.Kind == "" {
		return "", fmt.Errorf("%w: empty playlist kind", shared.ErrInvalidURL)
	}

	if req.Legacy {
		if req.Owner == "" {
			return "", fmt.Errorf("%w: legacy playlist without owner", shared.ErrInvalidURL)
		}
		r := strings.NewReplacer("{owner}", url.QueryEscape(req.Owner), "{kind}", url.QueryEscape(req.Kind))
		return r.Replace(y.config.LegacyURL), nil
	}

	return strings.NewReplacer("{kind}", url.PathEscape(req.Kind)).Replace(y.config.ModernURL), nil
}

// Fetch performs one GET for req and returns the JSON body. No retries are attempted.
func (y *YandexService) Fetch(ctx context.Context, req models.PlaylistRequest) (json.RawMessage, error) {
	endpoint, err := y.Endpoint(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrUpstream, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if y.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", y.config.UserAgent)
	}
	if y.config.AcceptLanguage != "" {
		httpReq.Header.Set("Accept-Language", y.config.AcceptLanguage)
	}

	resp, err := y.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, y.config.MaxBodyBytes+1))
	if err != nil {
		return nil, classify(err)
	}
	if int64(len(body)) > y.config.MaxBodyBytes {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", shared.ErrUpstream, y.config.MaxBodyBytes)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response body is not valid JSON", shared.ErrUpstream)
	}

	return json.RawMessage(body), nil
}

// classify maps a transport failure onto the upstream error taxonomy.
func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", shared.ErrUpstreamTimeout, err)
	default:
		return fmt.Errorf("%w: %v", shared.ErrUpstreamUnreachable, err)
	}
}
