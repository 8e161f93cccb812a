package controller

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotdash/internal/client"
	"github.com/desertthunder/spotdash/internal/envelope"
	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
)

// PressDuration is how long a player button stays pressed.
const PressDuration = 150 * time.Millisecond

// ResultsPreview is the number of result rows shown before a search section collapses the rest.
const ResultsPreview = 5

// ButtonID identifies a player control.
type ButtonID string

const (
	PlayButton     ButtonID = "play-btn"
	PauseButton    ButtonID = "pause-btn"
	NextButton     ButtonID = "next-btn"
	PreviousButton ButtonID = "prev-btn"
)

var buttons = map[services.PlayerAction]ButtonID{
	services.ActionPlay:     PlayButton,
	services.ActionPause:    PauseButton,
	services.ActionNext:     NextButton,
	services.ActionPrevious: PreviousButton,
}

// ButtonFor returns the control bound to action.
func ButtonFor(action services.PlayerAction) ButtonID {
	return buttons[action]
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a function to [Alerter].
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// Option configures a [Controller].
type Option func(*Controller)

// WithAlerter sets where player failures are reported.
func WithAlerter(a Alerter) Option {
	return func(c *Controller) { c.alerter = a }
}

// WithLogger sets the controller's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithAfterFunc replaces [time.AfterFunc] for scheduling button reverts.
func WithAfterFunc(after func(time.Duration, func())) Option {
	return func(c *Controller) { c.after = after }
}

// WithOnChange registers a callback run after every state change, possibly from another goroutine.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithRevealHook registers a callback run with the block id when a section is expanded.
func WithRevealHook(fn func(blockID string)) Option {
	return func(c *Controller) { c.onReveal = fn }
}

// Controller holds UI state and issues API calls for user interactions.
type Controller struct {
	api      client.API
	alerter  Alerter
	logger   *log.Logger
	after    func(time.Duration, func())
	onChange func()
	onReveal func(string)

	mu       sync.Mutex
	pressed  map[ButtonID]int
	panel    Panel
	seq      uint64
	sections map[string]*Section
	terms    []TermButton
}

// New creates a controller over api.
func New(api client.API, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		alerter:  AlertFunc(func(msg string) { fmt.Fprintln(os.Stderr, msg) }),
		logger:   shared.NewLogger(nil),
		after:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		pressed:  make(map[ButtonID]int),
		sections: make(map[string]*Section),
		terms:    newTermButtons(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// DispatchPlayerAction sends a playback command.
//
// Unknown actions return an error without any request. Otherwise the button is pressed, the request is sent,
// and a failure message is passed to the Alerter. The returned Result carries the API outcome.
func (c *Controller) DispatchPlayerAction(ctx context.Context, action string) (envelope.Result[client.Empty], error) {
	a, err := services.ParsePlayerAction(action)
	if err != nil {
		return envelope.Result[client.Empty]{}, err
	}

	c.press(ButtonFor(a))

	result := c.api.Player(ctx, a)
	if !result.OK() {
		c.logger.Warn("player action failed", "action", a, "error", result.Message())
		c.alerter.Alert(result.Message())
	}
	return result, nil
}

func (c *Controller) press(id ButtonID) {
	c.mu.Lock()
	c.pressed[id]++
	c.mu.Unlock()
	c.changed()

	c.after(PressDuration, func() {
		c.mu.Lock()
		if c.pressed[id] > 0 {
			c.pressed[id]--
		}
		c.mu.Unlock()
		c.changed()
	})
}

// Pressed reports whether the button is currently shown pressed.
func (c *Controller) Pressed(id ButtonID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pressed[id] > 0
}

// PerformSearch runs a search and returns the panel it produced.
//
// An unsupported kind is an error. A blank query shows the validation message without a request.
func (c *Controller) PerformSearch(ctx context.Context, query, kind string) (Panel, error) {
	st, err := services.ParseSearchType(kind)
	if err != nil {
		return c.Panel(), err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		p := Panel{State: PanelValidation, Message: MsgEnterTerm, Type: st}
		c.setPanel(p)
		return p, nil
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.panel = Panel{State: PanelLoading, Message: MsgSearching, Query: query, Type: st, Seq: seq}
	c.mu.Unlock()
	c.changed()

	result := c.api.Search(ctx, query, st)
	return c.complete(seq, query, st, result), nil
}

func (c *Controller) complete(seq uint64, query string, st services.SearchType, result envelope.Result[services.SpotifySearchResults]) Panel {
	p := Panel{Query: query, Type: st, Seq: seq}

	data, err := result.Unwrap()
	switch {
	case err != nil:
		p.State, p.Message = PanelError, err.Error()
	default:
		p.Items = ItemsFor(data, st)
		if len(p.Items) == 0 {
			p.State, p.Message = PanelEmpty, MsgNoResults
		} else {
			p.State = PanelResults
		}
	}

	c.mu.Lock()
	if latest := c.seq; seq != latest {
		c.logger.Warn("applying stale search result", "query", query, "seq", seq, "latest", latest)
	}
	c.panel = p
	if p.State == PanelResults {
		hidden := max(len(p.Items)-ResultsPreview, 0)
		c.sections[string(st)] = NewSection(string(st), hidden)
	}
	c.mu.Unlock()
	c.changed()

	return p
}

func (c *Controller) setPanel(p Panel) {
	c.mu.Lock()
	c.panel = p
	c.mu.Unlock()
	c.changed()
}

// Panel returns the current results panel.
func (c *Controller) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// AddSection registers a show-more section, replacing any section of the same type.
func (c *Controller) AddSection(kind string, hidden int) {
	c.mu.Lock()
	c.sections[kind] = NewSection(kind, hidden)
	c.mu.Unlock()
}

// Section returns a copy of the named section.
func (c *Controller) Section(kind string) (Section, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sections[kind]
	if !ok {
		return Section{}, false
	}
	return *s, true
}

// ToggleShowMore flips the section's visibility and returns its new state.
func (c *Controller) ToggleShowMore(kind string) (Section, error) {
	c.mu.Lock()
	s, ok := c.sections[kind]
	if !ok {
		c.mu.Unlock()
		return Section{}, fmt.Errorf("%w: unknown section %q", shared.ErrInvalidArgument, kind)
	}
	revealed := s.Toggle()
	snapshot := *s
	c.mu.Unlock()

	if revealed && c.onReveal != nil {
		c.onReveal(snapshot.BlockID())
	}
	c.changed()
	return snapshot, nil
}

// Terms returns the term selector state.
func (c *Controller) Terms() []TermButton {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]TermButton(nil), c.terms...)
}

// ChangeTerm disables the term selector, marks term as loading and returns current with term set.
// The caller performs a full navigation to the returned URL.
func (c *Controller) ChangeTerm(current, term string) (string, error) {
	var tr services.TimeRange
	for _, t := range services.TimeRanges {
		if string(t) == term {
			tr = t
		}
	}
	if tr == "" {
		return "", fmt.Errorf("%w: unknown term %q", shared.ErrInvalidArgument, term)
	}

	target, err := WithTerm(current, tr)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	for i := range c.terms {
		c.terms[i].Disabled = true
		c.terms[i].Loading = c.terms[i].Term == tr
	}
	c.mu.Unlock()
	c.changed()

	return target, nil
}

// ResetTerms re-enables the term selector after a navigation has finished.
func (c *Controller) ResetTerms() {
	c.mu.Lock()
	c.terms = newTermButtons()
	c.mu.Unlock()
	c.changed()
}
