// Package report provides the score and source list view for the TUI.
package report

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/verity/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verity/internal/core/domain"
)

// headerLines is the height of the score header including spacing.
const headerLines = 6

// View is the report view.
type View struct {
	styles  *styles.Styles
	sources *list.SourceList
	report  *domain.Report
	err     error
	width   int
	height  int
}

// NewView creates a new report view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		sources: list.NewSourceList(s),
		width:   80,
		height:  24,
	}
}

// SetReport replaces the displayed report.
func (v *View) SetReport(report *domain.Report) {
	v.report = report
	v.err = nil
	if report == nil {
		v.sources.SetSources(nil)
		return
	}
	v.sources.SetSources(report.Sources)
}

// SetError shows an error in place of the report.
func (v *View) SetError(err error) {
	v.err = err
}

// Report returns the displayed report.
func (v *View) Report() *domain.Report {
	return v.report
}

// Selected returns the index of the highlighted source.
func (v *View) Selected() int {
	return v.sources.Selected()
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if keyMsg.Type == tea.KeyEnter {
		if v.sources.IsEmpty() {
			return v, nil
		}
		index := v.sources.Selected()
		return v, func() tea.Msg {
			return messages.SourceSelected{Index: index}
		}
	}

	var cmd tea.Cmd
	v.sources, cmd = v.sources.Update(msg)
	return v, cmd
}

// View renders the report view.
func (v *View) View() string {
	var b strings.Builder

	if v.err != nil {
		b.WriteString(v.styles.Title.Render("Analysis failed"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] re-run  [q] quit"))
		return b.String()
	}

	if v.report == nil {
		return v.styles.Muted.Render("No report")
	}

	title := "Originality report"
	if v.report.Filename != "" {
		title += ": " + v.report.Filename
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	score := fmt.Sprintf("%d%%", v.report.OriginalityScore)
	b.WriteString(v.styles.Normal.Render("Originality "))
	b.WriteString(v.styles.Score(v.report.OriginalityScore).Render(score))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("   overlap %d%%", v.report.OverlapPercent)))
	b.WriteString("\n")
	stats := v.report.Stats
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d sentences in %d chunks, %d candidates",
		stats.Sentences, stats.Chunks, stats.Candidates)))
	b.WriteString("\n\n")

	b.WriteString(v.sources.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.sources.SetDimensions(width, height-headerLines-1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
