// package formatter provides functions to render playlist summaries in various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/soundgram/internal/models"
	"github.com/desertthunder/soundgram/internal/shared"
	"github.com/desertthunder/soundgram/internal/ui"
)

// Format names accepted by [Render].
const (
	FormatJSON     = "json"
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// Formats lists every supported format name.
var Formats = []string{FormatJSON, FormatText, FormatMarkdown, FormatCSV}

// Render converts a summary to the named format.
func Render(summary *models.PlaylistSummary, format string, pretty bool) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return ExportToJSON(summary, pretty)
	case FormatText:
		return ExportToText(summary)
	case FormatMarkdown, "md":
		return ExportToMarkdown(summary)
	case FormatCSV:
		return ExportToCSV(summary)
	}
	return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
}

// Extension returns the file extension used for a format.
func Extension(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return "json", nil
	case FormatText:
		return "txt", nil
	case FormatMarkdown, "md":
		return "md", nil
	case FormatCSV:
		return "csv", nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
}

// ExportToJSON encodes the summary exactly as the HTTP endpoint does.
func ExportToJSON(summary *models.PlaylistSummary, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(summary); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToCSV converts a summary to CSV format with columns: Position, Title, Artists, Cover, Embed
func ExportToCSV(summary *models.PlaylistSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Title", "Artists", "Cover", "Embed"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range summary.Tracks {
		record := []string{
			fmt.Sprint(i + 1),
			track.Title,
			strings.Join(track.Artists, ", "),
			coverOrEmpty(track),
			track.EmbedMarkup,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a summary to Markdown with a cover thumbnail per track when available
func ExportToMarkdown(summary *models.PlaylistSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", summary.Title))
	buf.WriteString(fmt.Sprintf("**Owner**: %s\n", summary.Owner))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(summary.Tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range summary.Tracks {
		cover := ""
		if c := coverOrEmpty(track); c != "" {
			cover = fmt.Sprintf("![cover](%s) ", c)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s - %s\n", i+1, cover, artistLine(track), track.Title))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a summary to styled plain text
func ExportToText(summary *models.PlaylistSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(ui.Styles.Heading(fmt.Sprintf("Playlist: %s", summary.Title)))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("Owner: %s\n", summary.Owner))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(summary.Tracks)))

	for i, track := range summary.Tracks {
		buf.WriteString(ui.Styles.TrackLine(i+1, artistLine(track), track.Title) + "\n")
		if c := coverOrEmpty(track); c != "" {
			buf.WriteString("     " + ui.Styles.Muted(c) + "\n")
		}
	}

	return buf.Bytes(), nil
}

// WriteExport renders the summary and writes it to path.
func WriteExport(summary *models.PlaylistSummary, format, path string, pretty bool) error {
	data, err := Render(summary, format, pretty)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

func artistLine(track models.Track) string {
	if len(track.Artists) == 0 {
		return "Unknown Artist"
	}
	return strings.Join(track.Artists, ", ")
}

func coverOrEmpty(track models.Track) string {
	if track.CoverURL == nil {
		return ""
	}
	return *track.CoverURL
}
