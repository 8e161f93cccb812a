package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotdash/internal/client"
	"github.com/desertthunder/spotdash/internal/controller"
	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
)

// Options configures a [Model].
type Options struct {
	// DashboardURL is the base URL of the dashboard, used to build overview links for the term selector.
	DashboardURL string
	// Open launches a URL; defaults to [shared.OpenBrowser].
	Open   func(url string) error
	Logger *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	ctrl         *controller.Controller
	events       chan tea.Msg
	dashboardURL string
	open         func(string) error

	kind    services.SearchType
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	alert   string
	status  string
	width   int
}

// NewModel creates a new TUI model driving a controller over api.
func NewModel(ctx context.Context, api client.API, opts Options) *Model {
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	input := textinput.New()
	input.Placeholder = "Search Spotify"
	input.Prompt = "🔍 "
	input.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:          ctx,
		events:       make(chan tea.Msg, 16),
		dashboardURL: strings.TrimRight(opts.DashboardURL, "/"),
		open:         opts.Open,
		kind:         services.SearchTrack,
		input:        input,
		spinner:      sp,
		help:         help.New(),
		keys:         newKeyMap(),
	}

	m.ctrl = controller.New(api,
		controller.WithLogger(opts.Logger),
		controller.WithAlerter(controller.AlertFunc(m.pushAlert)),
		controller.WithOnChange(m.notify),
	)
	return m
}

// Controller exposes the underlying controller.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// pushAlert blocks until the alert is queued.
func (m *Model) pushAlert(message string) {
	m.events <- alertMsg(message)
}

// notify drops the change notification if one is already pending.
func (m *Model) notify() {
	select {
	case m.events <- stateChangedMsg{}:
	default:
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Init starts listening for controller events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-20, 10)
		return m, nil

	case alertMsg:
		m.alert = string(msg)
		return m, m.waitForEvent()

	case stateChangedMsg:
		return m, m.waitForEvent()

	case playerDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case termOpenedMsg:
		m.ctrl.ResetTerms()
		if msg.err != nil {
			m.status = fmt.Sprintf("could not open browser, visit %s", msg.url)
		} else {
			m.status = "opened " + msg.url
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.alert != "" {
			return m.handleAlertKeys(msg)
		}
		if m.input.Focused() {
			return m.handleInputKeys(msg)
		}
		return m.handleControlKeys(msg)
	}

	return m, nil
}

func (m *Model) handleAlertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.dismiss):
		m.alert = ""
	}
	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.submit):
		return m, m.search()
	case msg.String() == "tab":
		m.toggleKind()
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleControlKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.play):
		return m, m.player(services.ActionPlay)
	case key.Matches(msg, m.keys.pause):
		return m, m.player(services.ActionPause)
	case key.Matches(msg, m.keys.next):
		return m, m.player(services.ActionNext)
	case key.Matches(msg, m.keys.previous):
		return m, m.player(services.ActionPrevious)
	case key.Matches(msg, m.keys.search):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.submit):
		return m, m.search()
	case key.Matches(msg, m.keys.kind):
		m.toggleKind()
	case key.Matches(msg, m.keys.more):
		if _, err := m.ctrl.ToggleShowMore(string(m.kind)); err != nil {
			m.status = "nothing more to show"
		}
	case key.Matches(msg, m.keys.terms):
		idx := int(msg.String()[0] - '1')
		return m, m.changeTerm(services.TimeRanges[idx])
	}
	return m, nil
}

func (m *Model) toggleKind() {
	if m.kind == services.SearchTrack {
		m.kind = services.SearchArtist
	} else {
		m.kind = services.SearchTrack
	}
}

func (m *Model) player(action services.PlayerAction) tea.Cmd {
	return func() tea.Msg {
		_, err := m.ctrl.DispatchPlayerAction(m.ctx, string(action))
		return playerDoneMsg{err: err}
	}
}

func (m *Model) search() tea.Cmd {
	query, kind := m.input.Value(), m.kind
	return func() tea.Msg {
		panel, err := m.ctrl.PerformSearch(m.ctx, query, string(kind))
		return searchDoneMsg{panel: panel, err: err}
	}
}

func (m *Model) changeTerm(term services.TimeRange) tea.Cmd {
	target, err := m.ctrl.ChangeTerm(m.dashboardURL+"/overview", string(term))
	if err != nil {
		m.status = err.Error()
		return nil
	}
	return func() tea.Msg {
		return termOpenedMsg{url: target, err: m.open(target)}
	}
}

// View renders the controls, search panel and help.
func (m *Model) View() string {
	if m.alert != "" {
		box := styles.modal.Render(fmt.Sprintf("%s\n\n%s", m.alert, styles.help.Render("enter to dismiss")))
		if m.width > 0 {
			return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
		}
		return box
	}

	sections := []string{
		styles.title.Render("♪ spotdash"),
		m.renderButtons(),
		m.renderSearch(),
		m.renderPanel(),
		m.renderTerms(),
	}
	if m.status != "" {
		sections = append(sections, styles.warn.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return strings.Join(sections, "\n\n")
}

func (m *Model) renderButtons() string {
	buttons := []struct {
		id    controller.ButtonID
		label string
	}{
		{controller.PreviousButton, "⏮ prev"},
		{controller.PlayButton, "▶ play"},
		{controller.PauseButton, "⏸ pause"},
		{controller.NextButton, "⏭ next"},
	}

	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		style := styles.button
		if m.ctrl.Pressed(b.id) {
			style = styles.pressed
		}
		rendered = append(rendered, style.Render(b.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderSearch() string {
	var kinds []string
	for _, k := range []services.SearchType{services.SearchTrack, services.SearchArtist} {
		if k == m.kind {
			kinds = append(kinds, styles.active.Render(string(k)))
		} else {
			kinds = append(kinds, styles.disabled.Render(string(k)))
		}
	}
	return fmt.Sprintf("%s  [%s]", m.input.View(), strings.Join(kinds, " | "))
}

func (m *Model) renderPanel() string {
	panel := m.ctrl.Panel()

	switch panel.State {
	case controller.PanelValidation, controller.PanelError:
		return styles.err.Render(panel.Message)
	case controller.PanelLoading:
		return m.spinner.View() + " " + panel.Message
	case controller.PanelEmpty:
		return panel.Message
	case controller.PanelResults:
		section, ok := m.ctrl.Section(string(panel.Type))
		return strings.TrimRight(renderRows(panel.Items, section, ok), "\n")
	default:
		return styles.help.Render("Press / to search")
	}
}

func (m *Model) renderTerms() string {
	var parts []string
	for i, t := range m.ctrl.Terms() {
		label := fmt.Sprintf("%d %s", i+1, t.Label)
		switch {
		case t.Loading:
			parts = append(parts, styles.active.Render(m.spinner.View()+" "+label))
		case t.Disabled:
			parts = append(parts, styles.disabled.Render(label))
		default:
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, "   ")
}
