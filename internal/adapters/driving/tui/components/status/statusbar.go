// Package status renders the one-line status bar at the bottom of the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/verity/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/styles"
)

// State selects what the bar shows.
type State int

const (
	StateIdle State = iota
	StateAnalysing
	StateReport
	StateSource
	StateError
)

// Bar shows the analysis state on the left and key hints on the right.
// It has no input handling; the app pushes state into it.
type Bar struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	state   State
	message string
	sources int
	failed  int
	width   int
}

// NewBar returns an idle bar. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keys: km, width: 80}
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// SetMessage sets the message shown next to the state.
func (b *Bar) SetMessage(msg string) {
	b.message = msg
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetCounts records how many sources matched and how many chunks were not searched.
func (b *Bar) SetCounts(sources, failedChunks int) {
	b.sources, b.failed = sources, failedChunks
}

// Clear returns the bar to idle.
func (b *Bar) Clear() {
	*b = Bar{styles: b.styles, keys: b.keys, width: b.width}
}

// View renders the bar across its full width.
func (b *Bar) View() string {
	left, right := b.summary(), b.hints()

	gap := b.width - b.styles.StatusBar.GetHorizontalFrameSize() -
		lipgloss.Width(left) - lipgloss.Width(right)
	gap = max(gap, 1)

	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) summary() string {
	st := b.styles
	switch b.state {
	case StateAnalysing:
		return st.Muted.Render("Analysing...")
	case StateError:
		if b.message == "" {
			return st.Error.Render("Error")
		}
		return st.Error.Render("Error: " + b.message)
	case StateSource:
		if b.message != "" {
			return st.Normal.Render(b.message)
		}
	case StateIdle, StateReport:
	}

	if b.sources == 0 {
		return st.Muted.Render("No matching sources")
	}
	out := st.Normal.Render(fmt.Sprintf("%d sources", b.sources))
	if b.failed > 0 {
		out += " " + st.Warning.Render(fmt.Sprintf("(%d chunks not searched)", b.failed))
	}
	return out
}

func (b *Bar) hints() string {
	var bindings []key.Binding
	switch b.state {
	case StateReport:
		bindings = b.keys.ReportHelp()
	case StateSource:
		bindings = b.keys.SourceHelp()
	default:
		bindings = b.keys.ShortHelp()
	}

	parts := make([]string, len(bindings))
	for i, binding := range bindings {
		h := binding.Help()
		parts[i] = h.Key + ": " + h.Desc
	}
	return b.styles.Muted.Render(strings.Join(parts, " | "))
}
