// Package styles holds the TUI colour palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/highlight"
)

// Originality scores at or above GoodScore render green, at or above
// FairScore yellow, and red below that.
const (
	GoodScore = 70
	FairScore = 40
)

// Palette names the colours a theme is built from.
type Palette struct {
	Accent  lipgloss.Color
	Link    lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Surface lipgloss.Color
	Bar     lipgloss.Color
	Good    lipgloss.Color
	Fair    lipgloss.Color
	Poor    lipgloss.Color
}

// DefaultPalette is a dark palette.
func DefaultPalette() Palette {
	return Palette{
		Accent:  "#7C3AED",
		Link:    "#06B6D4",
		Text:    "#CDD6F4",
		Dim:     "#6C7086",
		Surface: "#1E1E2E",
		Bar:     "#181825",
		Good:    "#A6E3A1",
		Fair:    "#F9E2AF",
		Poor:    "#F38BA8",
	}
}

// Styles are the rendered styles shared by every view.
type Styles struct {
	Palette Palette

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Link      lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Mark renders matched spans in the source view.
	Mark lipgloss.Style
}

// NewStyles builds styles from p.
func NewStyles(p Palette) *Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		Palette:   p,
		Title:     fg(p.Accent).Bold(true),
		Subtitle:  fg(p.Link).Bold(true),
		Normal:    fg(p.Text),
		Muted:     fg(p.Dim),
		Selected:  fg(p.Text).Background(p.Accent).Bold(true),
		Error:     fg(p.Poor),
		Success:   fg(p.Good),
		Warning:   fg(p.Fair),
		Link:      fg(p.Link).Underline(true),
		StatusBar: fg(p.Dim).Background(p.Bar).Padding(0, 1),
		Help:      fg(p.Dim),
		Mark:      fg(p.Surface).Background(p.Fair).Bold(true),
	}
}

// DefaultStyles uses DefaultPalette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Score picks the style for an originality score.
func (s *Styles) Score(score int) lipgloss.Style {
	style := s.Error
	switch {
	case score >= GoodScore:
		style = s.Success
	case score >= FairScore:
		style = s.Warning
	}
	return style.Bold(true)
}

// Marker renders highlighted spans with the Mark style.
func (s *Styles) Marker() highlight.Marker {
	mark := s.Mark
	return func(span string, _ domain.Source) string {
		return mark.Render(span)
	}
}
