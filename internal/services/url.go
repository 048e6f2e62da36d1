package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/desertthunder/soundgram/internal/models"
	"github.com/desertthunder/soundgram/internal/shared"
)

// schemePattern matches an explicit scheme at the very start of the input.
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

var hostPattern = regexp.MustCompile(`^(?:www\.)?music\.yandex\.(?:ru|by|kz|ua|com|uz)$`)

// urlShape is a recognized playlist path and how to read it.
type urlShape struct {
	pattern *regexp.Regexp
	build   func(m []string) models.PlaylistRequest
}

// urlShapes is tried in order. The legacy shape comes first so an owner segment is never dropped.
var urlShapes = []urlShape{
	{
		pattern: regexp.MustCompile(`^/users/([A-Za-z0-9._-]+)/playlists/([A-Za-z0-9_-]+)(?:/|$)`),
		build: func(m []string) models.PlaylistRequest {
			return models.PlaylistRequest{Owner: m[1], Kind: m[2], Legacy: true}
		},
	},
	{
		pattern: regexp.MustCompile(`^/playlists/([A-Za-z0-9_-]+)(?:/|$)`),
		build: func(m []string) models.PlaylistRequest {
			return models.PlaylistRequest{Kind: m[1]}
		},
	},
}

// ParseURL converts a public playlist URL into a [models.PlaylistRequest].
//
// The scheme may be omitted. Returns [shared.ErrInvalidURL] when the host is not a provider domain or the
// path matches neither playlist shape.
func ParseURL(rawURL string) (models.PlaylistRequest, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return models.PlaylistRequest{}, fmt.Errorf("%w: empty URL", shared.ErrInvalidURL)
	}

	if !schemePattern.MatchString(rawURL) {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return models.PlaylistRequest{}, fmt.Errorf("%w: %v", shared.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return models.PlaylistRequest{}, fmt.Errorf("%w: unsupported scheme %q", shared.ErrInvalidURL, u.Scheme)
	}

	if !hostPattern.MatchString(strings.ToLower(u.Hostname())) {
		return models.PlaylistRequest{}, fmt.Errorf("%w: unsupported host %q", shared.ErrInvalidURL, u.Hostname())
	}

	for _, shape := range urlShapes {
		if m := shape.pattern.FindStringSubmatch(u.EscapedPath()); m != nil {
			return shape.build(m), nil
		}
	}

	return models.PlaylistRequest{}, fmt.Errorf("%w: %s is not a playlist link", shared.ErrInvalidURL, u.Path)
}
