// Package services resolves public playlist URLs into [models.PlaylistSummary] values.
//
// # URL Parser
//
// [ParseURL] recognizes the two historical playlist URL shapes and produces a [models.PlaylistRequest]:
//   - Legacy: https://music.yandex.ru/users/{owner}/playlists/{kind}
//   - Modern: https://music.yandex.ru/playlists/{kind}
//
// Any of the provider's country domains (ru, by, kz, ua, com, uz) is accepted.
// Owners may contain letters, digits, '.', '_' and '-'; kinds may contain letters, digits, '_' and '-'.
//
// # Upstream Client
//
// [YandexService] performs exactly one GET per call, with no retries, and classifies failures:
//   - [shared.ErrUpstreamTimeout] : the request exceeded [UpstreamConfig.Timeout]
//   - [shared.ErrUpstreamNotFound] : upstream answered 404
//   - [shared.ErrUpstream] : any other non-2xx status ([StatusError]) or a body that is not JSON
//   - [shared.ErrUpstreamUnreachable] : DNS, connection or TLS failures
//
// # Track Normalizer
//
// [NormalizeTracks] never fails. The upstream payload varies across endpoint versions, so every field is
// read through an ordered list of candidate paths and the first usable value wins:
//
//	playlist root   playlist, <document root>
//	track list      tracks, volumes.0.tracks
//	track entry     track, <entry itself>
//	album id        albums.0.id, "0"
//	cover template  albums.0.coverUri, ogImage, coverUri
//	owner           owner.name, owner.login, "Unknown"
//
// Entries that are not objects, carry an error marker, or have no id are dropped.
package services
