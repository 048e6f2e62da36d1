package services

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestNormalizeTracks(t *testing.T) {
	t.Run("Wrapped Playlist", func(t *testing.T) {
		raw := `{"playlist": {"title": "Hits", "owner": {"name": "Alex"}, "tracks": [{"track": {"id": "1", "title": "Song", "artists": [{"name": "A"}], "albums": [{"id": "9"}]}}]}}`

		tracks := NormalizeTracks([]byte(raw))
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}

		track := tracks[0]
		if track.Title != "Song" {
			t.Errorf("expected title Song, got %s", track.Title)
		}
		if len(track.Artists) != 1 || track.Artists[0] != "A" {
			t.Errorf("expected artists [A], got %v", track.Artists)
		}
		if !strings.Contains(track.EmbedMarkup, "album/9/track/1") {
			t.Errorf("expected embed markup to reference album/9/track/1, got %s", track.EmbedMarkup)
		}
		if track.CoverURL != nil {
			t.Errorf("expected no cover, got %s", *track.CoverURL)
		}
	})

	t.Run("Empty Payloads", func(t *testing.T) {
		tc := []struct {
			name string
			raw  string
		}{
			{name: "no tracks key", raw: `{"title": "x"}`},
			{name: "empty tracks", raw: `{"playlist": {"tracks": []}}`},
			{name: "empty volumes", raw: `{"volumes": []}`},
			{name: "null playlist", raw: `{"playlist": null}`},
			{name: "array document", raw: `[1, 2, 3]`},
			{name: "scalar document", raw: `"hello"`},
			{name: "invalid json", raw: `{"tracks": [`},
			{name: "empty body", raw: ``},
			{name: "tracks is object", raw: `{"tracks": {"id": "1"}}`},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				tracks := NormalizeTracks([]byte(tt.raw))
				if tracks == nil {
					t.Fatal("expected a non-nil slice")
				}
				if len(tracks) != 0 {
					t.Errorf("expected no tracks, got %d", len(tracks))
				}
			})
		}
	})

	t.Run("Volumes Fallback", func(t *testing.T) {
		raw := `{"tracks": [], "volumes": [{"tracks": [{"id": 10, "title": "From Volume"}]}]}`

		tracks := NormalizeTracks([]byte(raw))
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].Title != "From Volume" {
			t.Errorf("expected title From Volume, got %s", tracks[0].Title)
		}
		if !strings.Contains(tracks[0].EmbedMarkup, "album/0/track/10") {
			t.Errorf("expected default album id and numeric track id, got %s", tracks[0].EmbedMarkup)
		}
	})

	t.Run("Skips Malformed Entries And Keeps Order", func(t *testing.T) {
		raw := `{"tracks": [
			{"id": "1", "title": "first"},
			"not an object",
			42,
			null,
			{"title": "missing id"},
			{"id": "", "title": "empty id"},
			{"id": 0, "title": "zero id"},
			{"id": "2", "title": "errored", "error": "not-available"},
			{"track": {"id": "3", "title": "second"}},
			{"track": "broken", "id": "4", "title": "third"},
			{"id": "5", "title": "fourth", "error": false}
		]}`

		tracks := NormalizeTracks([]byte(raw))
		want := []string{"first", "second", "third", "fourth"}
		if len(tracks) != len(want) {
			t.Fatalf("expected %d tracks, got %d", len(want), len(tracks))
		}
		for i, title := range want {
			if tracks[i].Title != title {
				t.Errorf("track %d: expected %s, got %s", i, title, tracks[i].Title)
			}
		}
	})

	t.Run("Field Defaults", func(t *testing.T) {
		raw := `{"tracks": [{"id": "7", "title": null, "artists": [{"name": "A"}, {"id": 1}, "B", {"name": ""}, {"name": "C"}], "albums": ["oops"]}]}`

		tracks := NormalizeTracks([]byte(raw))
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}

		track := tracks[0]
		if track.Title != defaultTrackTitle {
			t.Errorf("expected default title, got %s", track.Title)
		}
		if strings.Join(track.Artists, ",") != "A,C" {
			t.Errorf("expected artists [A C], got %v", track.Artists)
		}
		if !strings.Contains(track.EmbedMarkup, "album/0/track/7") {
			t.Errorf("expected default album id, got %s", track.EmbedMarkup)
		}
	})

	t.Run("Missing Artists Is Empty", func(t *testing.T) {
		tracks := NormalizeTracks([]byte(`{"tracks": [{"id": "1"}]}`))
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].Artists == nil || len(tracks[0].Artists) != 0 {
			t.Errorf("expected empty non-nil artists, got %#v", tracks[0].Artists)
		}
	})

	t.Run("Cover Preference", func(t *testing.T) {
		tc := []struct {
			name string
			raw  string
			want string
		}{
			{
				name: "album cover first",
				raw:  `{"id": "1", "ogImage": "img/%%", "coverUri": "cov/%%", "albums": [{"id": "2", "coverUri": "alb/%%"}]}`,
				want: "https://alb/400x400",
			},
			{
				name: "track image before cover",
				raw:  `{"id": "1", "ogImage": "img/%%", "coverUri": "cov/%%", "albums": [{"id": "2"}]}`,
				want: "https://img/400x400",
			},
			{
				name: "track cover last",
				raw:  `{"id": "1", "ogImage": "", "coverUri": "cov/%%"}`,
				want: "https://cov/400x400",
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				tracks := NormalizeTracks([]byte(`{"tracks": [` + tt.raw + `]}`))
				if len(tracks) != 1 {
					t.Fatalf("expected 1 track, got %d", len(tracks))
				}
				if tracks[0].CoverURL == nil {
					t.Fatal("expected a cover url")
				}
				if *tracks[0].CoverURL != tt.want {
					t.Errorf("expected %s, got %s", tt.want, *tracks[0].CoverURL)
				}
			})
		}
	})
}

func TestFormatCoverURL(t *testing.T) {
	tc := []struct {
		template string
		want     string
	}{
		{"avatars.yandex.net/get-music-content/abc/%%", "https://avatars.yandex.net/get-music-content/abc/400x400"},
		{"https://avatars.yandex.net/x/%%", "https://avatars.yandex.net/x/400x400"},
		{"http://avatars.yandex.net/x/%%", "http://avatars.yandex.net/x/400x400"},
		{"//avatars.yandex.net/x/%%", "https://avatars.yandex.net/x/400x400"},
		{"avatars.yandex.net/static.png", "https://avatars.yandex.net/static.png"},
	}

	for _, tt := range tc {
		t.Run(tt.template, func(t *testing.T) {
			if got := FormatCoverURL(tt.template); got != tt.want {
				t.Errorf("FormatCoverURL() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEmbedMarkup(t *testing.T) {
	got := EmbedMarkup("9", "1")
	want := `<iframe frameborder="0" style="border:none;width:614px;height:244px;" src="https://music.yandex.ru/iframe/album/9/track/1"></iframe>`
	if got != want {
		t.Errorf("EmbedMarkup() = %s, want %s", got, want)
	}

	if escaped := EmbedMarkup(`9"><script>`, "1"); strings.Contains(escaped, `"><script>`) {
		t.Errorf("expected ids to be escaped, got %s", escaped)
	}
}

func TestPlaylistFields(t *testing.T) {
	tc := []struct {
		name  string
		raw   string
		title string
		owner string
	}{
		{name: "name wins", raw: `{"title": "Hits", "owner": {"name": "Alex", "login": "alex"}}`, title: "Hits", owner: "Alex"},
		{name: "login fallback", raw: `{"title": "Hits", "owner": {"login": "alex"}}`, title: "Hits", owner: "alex"},
		{name: "empty name falls to login", raw: `{"owner": {"name": "", "login": "alex"}}`, title: defaultPlaylistTitle, owner: "alex"},
		{name: "owner not object", raw: `{"title": "", "owner": "alex"}`, title: defaultPlaylistTitle, owner: defaultOwner},
		{name: "owner missing", raw: `{}`, title: defaultPlaylistTitle, owner: defaultOwner},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			root := gjson.Parse(tt.raw)
			if got := PlaylistTitle(root); got != tt.title {
				t.Errorf("PlaylistTitle() = %s, want %s", got, tt.title)
			}
			if got := PlaylistOwner(root); got != tt.owner {
				t.Errorf("PlaylistOwner() = %s, want %s", got, tt.owner)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	raw := `{"playlist": {"title": "Hits", "owner": {"name": "Alex"}, "tracks": [{"track": {"id": "1", "title": "Song"}}, {"track": {"id": "2", "title": "Other"}}]}}`

	summary := Summarize([]byte(raw))
	if summary.Title != "Hits" || summary.Owner != "Alex" {
		t.Errorf("expected Hits by Alex, got %s by %s", summary.Title, summary.Owner)
	}
	if len(summary.Tracks) != 2 {
		t.Errorf("expected 2 tracks, got %d", len(summary.Tracks))
	}

	empty := Summarize([]byte(`not json`))
	if empty.Title != defaultPlaylistTitle || empty.Owner != defaultOwner || len(empty.Tracks) != 0 {
		t.Errorf("expected defaults for invalid document, got %+v", empty)
	}
}
