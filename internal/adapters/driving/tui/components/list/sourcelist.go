// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/verity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verity/internal/core/domain"
)

// SourceList displays matched sources in a navigable list.
type SourceList struct {
	sources  []domain.Source
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewSourceList creates a new source list component.
func NewSourceList(s *styles.Styles) *SourceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SourceList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the source list.
func (r *SourceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *SourceList) Update(msg tea.Msg) (*SourceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.sources) > 0 {
				r.selected = len(r.sources) - 1
			}
		}
	}
	return r, nil
}

// View renders the source list.
func (r *SourceList) View() string {
	if len(r.sources) == 0 {
		return r.styles.Muted.Render("No matching sources")
	}

	lines := make([]string, 0, len(r.sources)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Sources (%d)", len(r.sources))), "")

	// Each source takes two lines
	visibleCount := (r.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.sources) {
		end = len(r.sources)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderSource(i, &r.sources[i]))
	}

	return strings.Join(lines, "\n")
}

// renderSource formats a single source with its link.
func (r *SourceList) renderSource(index int, src *domain.Source) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := src.Title
	if title == "" {
		title = src.DisplayName
	}
	if title == "" {
		title = "(Untitled)"
	}

	maxTitleLen := r.width - 12
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title = truncate(title, maxTitleLen)

	percent := fmt.Sprintf("%3d%%", src.MatchPercent)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, percent))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			r.styles.Muted.Render(percent)
	}

	link := truncate(src.URL, r.width-6)
	return titleLine + "\n" + r.styles.Link.Render("    "+link)
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetSources updates the source list.
func (r *SourceList) SetSources(sources []domain.Source) {
	r.sources = sources
	r.selected = 0
}

// Sources returns the current sources.
func (r *SourceList) Sources() []domain.Source {
	return r.sources
}

// Selected returns the index of the selected source.
func (r *SourceList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *SourceList) SetSelected(index int) {
	if index >= 0 && index < len(r.sources) {
		r.selected = index
	}
}

// SelectedSource returns the currently selected source, or nil if none.
func (r *SourceList) SelectedSource() *domain.Source {
	if len(r.sources) == 0 || r.selected < 0 || r.selected >= len(r.sources) {
		return nil
	}
	return &r.sources[r.selected]
}

// MoveUp moves selection up.
func (r *SourceList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *SourceList) MoveDown() {
	if r.selected < len(r.sources)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *SourceList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of sources.
func (r *SourceList) Count() int {
	return len(r.sources)
}

// IsEmpty returns whether the list is empty.
func (r *SourceList) IsEmpty() bool {
	return len(r.sources) == 0
}
