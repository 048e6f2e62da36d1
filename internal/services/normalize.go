package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/soundgram/internal/models"
	"github.com/tidwall/gjson"
)

const (
	coverPlaceholder = "%%"
	coverSize        = "400x400"

	defaultTrackTitle    = "Unknown"
	defaultPlaylistTitle = "Untitled"
	defaultOwner         = "Unknown"
	defaultAlbumID       = "0"

	embedFormat = `<iframe frameborder="0" style="border:none;width:614px;height:244px;" src="https://music.yandex.ru/iframe/album/%s/track/%s"></iframe>`
)

type scope int

const (
	scopeTrack scope = iota
	scopeAlbum
)

// fieldSource is one candidate location for a value.
type fieldSource struct {
	scope scope
	path  string
}

var (
	// trackListPaths are probed under the playlist root.
	trackListPaths = []string{"tracks", "volumes.0.tracks"}

	// ownerPaths are probed under the playlist root.
	ownerPaths = []string{"owner.name", "owner.login"}

	coverSources = []fieldSource{
		{scope: scopeAlbum, path: "coverUri"},
		{scope: scopeTrack, path: "ogImage"},
		{scope: scopeTrack, path: "coverUri"},
	}
)

// Summarize builds the full response for a raw playlist document.
func Summarize(raw []byte) models.PlaylistSummary {
	root := playlistRoot(raw)
	return models.PlaylistSummary{
		Title:  PlaylistTitle(root),
		Owner:  PlaylistOwner(root),
		Tracks: normalizeRoot(root),
	}
}

// NormalizeTracks extracts the ordered tracks of a raw playlist document.
//
// Malformed entries are skipped; a malformed document yields an empty slice.
func NormalizeTracks(raw []byte) []models.Track {
	return normalizeRoot(playlistRoot(raw))
}

// PlaylistTitle reads the playlist title, falling back to a placeholder.
func PlaylistTitle(root gjson.Result) string {
	if title, ok := text(root.Get("title")); ok {
		return title
	}
	return defaultPlaylistTitle
}

// PlaylistOwner reads the owner's display name, then login, then falls back to a placeholder.
func PlaylistOwner(root gjson.Result) string {
	if !root.Get("owner").IsObject() {
		return defaultOwner
	}
	for _, path := range ownerPaths {
		if name, ok := text(root.Get(path)); ok {
			return name
		}
	}
	return defaultOwner
}

// FormatCoverURL substitutes the size placeholder of a cover template and makes it absolute.
func FormatCoverURL(template string) string {
	u := strings.ReplaceAll(template, coverPlaceholder, coverSize)
	switch {
	case strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "http://"):
		return u
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	}
	return "https://" + u
}

// EmbedMarkup returns the iframe snippet for a track.
func EmbedMarkup(albumID, trackID string) string {
	return fmt.Sprintf(embedFormat, url.PathEscape(albumID), url.PathEscape(trackID))
}

func playlistRoot(raw []byte) gjson.Result {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return gjson.Result{}
	}
	if nested := doc.Get("playlist"); nested.IsObject() {
		return nested
	}
	return doc
}

func normalizeRoot(root gjson.Result) []models.Track {
	tracks := []models.Track{}
	for _, entry := range trackEntries(root) {
		if track, ok := normalizeEntry(entry); ok {
			tracks = append(tracks, track)
		}
	}
	return tracks
}

func trackEntries(root gjson.Result) []gjson.Result {
	for _, path := range trackListPaths {
		if list := root.Get(path); list.IsArray() {
			if entries := list.Array(); len(entries) > 0 {
				return entries
			}
		}
	}
	return nil
}

func normalizeEntry(entry gjson.Result) (models.Track, bool) {
	t := entry
	if nested := entry.Get("track"); entry.IsObject() && nested.IsObject() {
		t = nested
	}

	if !t.IsObject() || truthy(t.Get("error")) {
		return models.Track{}, false
	}

	trackID, ok := text(t.Get("id"))
	if !ok || !truthy(t.Get("id")) {
		return models.Track{}, false
	}

	album := firstAlbum(t)
	albumID := defaultAlbumID
	if id, ok := text(album.Get("id")); ok {
		albumID = id
	}

	title := defaultTrackTitle
	if s, ok := text(t.Get("title")); ok {
		title = s
	}

	track := models.Track{
		Title:       title,
		Artists:     artistNames(t),
		EmbedMarkup: EmbedMarkup(albumID, trackID),
	}

	if template, ok := firstText(coverSources, t, album); ok {
		cover := FormatCoverURL(template)
		track.CoverURL = &cover
	}

	return track, true
}

func firstAlbum(t gjson.Result) gjson.Result {
	albums := t.Get("albums")
	if !albums.IsArray() {
		return gjson.Result{}
	}
	if first := albums.Get("0"); first.IsObject() {
		return first
	}
	return gjson.Result{}
}

func artistNames(t gjson.Result) []string {
	names := []string{}
	artists := t.Get("artists")
	if !artists.IsArray() {
		return names
	}
	artists.ForEach(func(_, a gjson.Result) bool {
		if !a.IsObject() {
			return true
		}
		if name, ok := text(a.Get("name")); ok {
			names = append(names, name)
		}
		return true
	})
	return names
}

func firstText(sources []fieldSource, track, album gjson.Result) (string, bool) {
	for _, src := range sources {
		base := track
		if src.scope == scopeAlbum {
			base = album
		}
		if !base.IsObject() {
			continue
		}
		if s, ok := text(base.Get(src.path)); ok {
			return s, true
		}
	}
	return "", false
}

// text returns non-empty strings and numbers as written in the document.
func text(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		return r.Str, r.Str != ""
	case gjson.Number:
		return r.Raw, true
	}
	return "", false
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return len(r.Map()) > 0
	}
	return false
}
