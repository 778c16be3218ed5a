// Package sourceview shows the analysed text with one source's matches marked.
package sourceview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/verity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/highlight"
)

// chromeLines is the number of lines used by the title and footer.
const chromeLines = 6

// View renders highlighted text in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	viewport viewport.Model
	text     string
	sources  []domain.Source
	index    int
	spans    int
	width    int
	height   int
}

// NewView creates a new source view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		viewport: viewport.New(80, 24-chromeLines),
		width:    80,
		height:   24,
	}
}

// SetContent sets the analysed text and the sources that can be shown.
func (v *View) SetContent(text string, sources []domain.Source) {
	v.text = text
	v.sources = sources
	v.index = 0
	v.render()
}

// Show switches to the source at index.
func (v *View) Show(index int) {
	if index < 0 || index >= len(v.sources) {
		return
	}
	v.index = index
	v.render()
	v.viewport.GotoTop()
}

// Next moves to the next source, wrapping around.
func (v *View) Next() {
	if len(v.sources) == 0 {
		return
	}
	v.Show((v.index + 1) % len(v.sources))
}

// Prev moves to the previous source, wrapping around.
func (v *View) Prev() {
	if len(v.sources) == 0 {
		return
	}
	v.Show((v.index - 1 + len(v.sources)) % len(v.sources))
}

// Index returns the index of the shown source.
func (v *View) Index() int {
	return v.index
}

// Current returns the shown source, or nil when there are none.
func (v *View) Current() *domain.Source {
	if v.index < 0 || v.index >= len(v.sources) {
		return nil
	}
	return &v.sources[v.index]
}

// MarkedSpans returns how many spans of the text are marked for the shown source.
func (v *View) MarkedSpans() int {
	return v.spans
}

// Label is a short description of the shown source for the status bar.
func (v *View) Label() string {
	src := v.Current()
	if src == nil {
		return ""
	}
	name := src.DisplayName
	if name == "" {
		name = src.URL
	}
	return fmt.Sprintf("%d/%d %s", v.index+1, len(v.sources), name)
}

// render rebuilds the viewport content for the shown source.
func (v *View) render() {
	src := v.Current()
	if src == nil {
		v.spans = 0
		v.viewport.SetContent(v.wrap(v.text))
		return
	}
	v.spans = len(highlight.Spans(v.text, *src))
	marked := highlight.Highlight(v.text, *src, v.styles.Marker())
	v.viewport.SetContent(v.wrap(marked))
}

func (v *View) wrap(s string) string {
	width := v.width - 4
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// Update handles messages for the source view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "n", "tab":
			v.Next()
			return v, nil
		case "p", "shift+tab":
			v.Prev()
			return v, nil
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the source view.
func (v *View) View() string {
	var b strings.Builder

	src := v.Current()
	if src == nil {
		b.WriteString(v.styles.Muted.Render("No source selected"))
		return b.String()
	}

	title := src.Title
	if title == "" {
		title = src.URL
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d%% match, %d marked", src.MatchPercent, v.spans)))
	b.WriteString("\n")
	b.WriteString(v.styles.Link.Render(src.URL))
	b.WriteString("\n\n")

	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%.0f%%]", v.viewport.ScrollPercent()*100)))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(1, height-chromeLines)
	v.render()
}
