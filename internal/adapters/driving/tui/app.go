package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/verity/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/verity/internal/adapters/driving/tui/views/sourceview"
	"github.com/custodia-labs/verity/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports   *Ports
	ctx     context.Context
	request domain.AnalysisRequest

	styles  *styles.Styles
	keymap  *keymap.KeyMap
	help    help.Model
	spinner spinner.Model
	status  *status.Bar

	reportView *report.View
	sourceView *sourceview.View

	report *domain.Report

	// currentView tracks which view is active; previousView is restored
	// when help is dismissed.
	currentView  messages.ViewType
	previousView messages.ViewType

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a TUI that analyses req and lets the user browse the result.
func NewApp(ports *Ports, req domain.AnalysisRequest) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyDocument
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	bar := status.NewBar(s, km)
	bar.SetState(status.StateAnalysing)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		request:     req,
		styles:      s,
		keymap:      km,
		help:        help.New(),
		spinner:     sp,
		status:      bar,
		reportView:  report.NewView(s),
		sourceView:  sourceview.NewView(s),
		currentView: messages.ViewAnalysing,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := "verity"
	if a.request.Filename != "" {
		title += " - " + a.request.Filename
	}
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle(title),
		a.spinner.Tick,
		a.analyse(),
	)
}

// analyse returns a command that runs the pipeline.
func (a *App) analyse() tea.Cmd {
	ctx, analysis, req := a.ctx, a.ports.Analysis, a.request
	return func() tea.Msg {
		rep, err := analysis.Analyze(ctx, req)
		return messages.AnalysisCompleted{Report: rep, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if a.currentView != messages.ViewAnalysing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.AnalysisCompleted:
		a.handleAnalysisCompleted(msg)
		return a, nil

	case messages.AnalysisRequested:
		a.currentView = messages.ViewAnalysing
		a.status.Clear()
		a.status.SetState(status.StateAnalysing)
		return a, tea.Batch(a.spinner.Tick, a.analyse())

	case messages.SourceSelected:
		a.sourceView.Show(msg.Index)
		a.currentView = messages.ViewSource
		a.status.SetState(status.StateSource)
		a.status.SetMessage(a.sourceView.Label())
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleAnalysisCompleted(msg messages.AnalysisCompleted) {
	a.currentView = messages.ViewReport
	if msg.Err != nil {
		a.err = msg.Err
		a.reportView.SetError(msg.Err)
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
		return
	}

	a.err = nil
	a.report = msg.Report
	a.reportView.SetReport(msg.Report)
	a.status.SetState(status.StateReport)
	a.status.SetMessage("")
	if msg.Report != nil {
		a.sourceView.SetContent(a.request.Text, msg.Report.Sources)
		a.status.SetCounts(len(msg.Report.Sources), msg.Report.Stats.FailedChunks)
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		a.currentView = a.previousView
		return a, nil
	}
	if keymap.Matches(keyStr, a.keymap.Help) && a.currentView != messages.ViewAnalysing {
		a.previousView = a.currentView
		a.currentView = messages.ViewHelp
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewAnalysing:
		if keymap.Matches(keyStr, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, nil

	case messages.ViewReport:
		switch {
		case keymap.Matches(keyStr, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(keyStr, a.keymap.Rerun):
			return a, func() tea.Msg { return messages.AnalysisRequested{} }
		}
		a.reportView, cmd = a.reportView.Update(msg)
		return a, cmd

	case messages.ViewSource:
		switch {
		case keymap.Matches(keyStr, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(keyStr, a.keymap.Back):
			a.currentView = messages.ViewReport
			a.status.SetState(status.StateReport)
			a.status.SetMessage("")
			return a, nil
		}
		a.sourceView, cmd = a.sourceView.Update(msg)
		a.status.SetMessage(a.sourceView.Label())
		return a, cmd

	case messages.ViewHelp:
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewAnalysing:
		body = a.viewAnalysing()
	case messages.ViewReport:
		body = a.reportView.View()
	case messages.ViewSource:
		body = a.sourceView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	}

	return body + "\n\n" + a.status.View()
}

func (a *App) viewAnalysing() string {
	name := a.request.Filename
	if name == "" {
		name = "document"
	}
	return a.spinner.View() + " " + a.styles.Normal.Render("Searching the web for passages of "+name+"...")
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("press any key to go back")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Report returns the last completed report.
func (a *App) Report() *domain.Report {
	return a.report
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.status.SetWidth(width)
	a.reportView.SetDimensions(width, height-2)
	a.sourceView.SetDimensions(width, height-2)
}
