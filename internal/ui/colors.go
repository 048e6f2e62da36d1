package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors of the CLI palette.
type Colors struct {
	Heading string
	Index   string
	Artist  string
	Muted   string
	OK      string
	Fail    string
}

// DefaultColors is the palette used by [Styles].
var DefaultColors = Colors{
	Heading: "#FFCC00",
	Index:   "#626262",
	Artist:  "#7D56F4",
	Muted:   "#626262",
	OK:      "#04B575",
	Fail:    "#FF0000",
}

// Styles renders playlist listings and command status lines.
var Styles = NewPalette(DefaultColors)

// Palette holds one [lipgloss.Style] per kind of CLI text.
type Palette struct {
	heading lipgloss.Style
	index   lipgloss.Style
	artist  lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
}

// NewPalette builds a [Palette] from c.
func NewPalette(c Colors) *Palette {
	return &Palette{
		heading: bold(c.Heading).MarginBottom(1),
		index:   fg(c.Index).Width(4).Align(lipgloss.Right),
		artist:  bold(c.Artist),
		muted:   fg(c.Muted).Italic(true),
		ok:      bold(c.OK),
		fail:    bold(c.Fail),
	}
}

// Heading renders a title followed by a blank line.
func (p *Palette) Heading(s string) string { return p.heading.Render(s) }

// TrackLine renders "  n. Artist - Title".
func (p *Palette) TrackLine(n int, artists, title string) string {
	return fmt.Sprintf("%s %s - %s", p.index.Render(fmt.Sprintf("%d.", n)), p.artist.Render(artists), title)
}

// Muted renders secondary text such as cover links.
func (p *Palette) Muted(s string) string { return p.muted.Render(s) }

// Done prefixes a success mark.
func (p *Palette) Done(s string) string { return p.ok.Render("✓") + " " + s }

// Failed prefixes a failure mark.
func (p *Palette) Failed(s string) string { return p.fail.Render("✗") + " " + s }

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bold(color string) lipgloss.Style {
	return fg(color).Bold(true)
}
