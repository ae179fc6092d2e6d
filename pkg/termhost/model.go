package termhost

import (
	"log/slog"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vango-dev/modalhost/pkg/modal"
	"go.opentelemetry.io/otel/trace"
)

// Config configures a Model.
type Config struct {
	// Logger is used for the registry and host. Default: slog.Default().
	Logger *slog.Logger

	// Metrics records registry activity. nil disables metrics.
	Metrics *modal.Metrics

	// Tracer is used for controller spans.
	Tracer trace.Tracer

	// Width is the content width of a modal box. Default: 48.
	Width int

	// Styles overrides DefaultStyles.
	Styles *Styles
}

// Model is a tea.Model drawing modals over a background model.
type Model struct {
	background tea.Model
	registry   *modal.Registry
	controller *modal.Controller
	logger     *slog.Logger
	styles     Styles
	boxWidth   int

	width, height int

	mu          sync.Mutex
	order       []string
	opened      map[string]bool
	unsubscribe func()
}

// New wraps background and publishes the model's controller.
func New(background tea.Model, cfg Config) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	styles := DefaultStyles()
	if cfg.Styles != nil {
		styles = *cfg.Styles
	}
	if cfg.Width <= 0 {
		cfg.Width = 48
	}

	reg := modal.NewRegistry(
		modal.WithLogger(logger.With("component", "modal")),
		modal.WithMetrics(cfg.Metrics),
	)
	m := &Model{
		background: background,
		registry:   reg,
		controller: modal.NewController(reg, modal.WithTracer(cfg.Tracer)),
		logger:     logger.With("component", "modal-term"),
		styles:     styles,
		boxWidth:   cfg.Width,
		opened:     make(map[string]bool),
	}
	m.unsubscribe = reg.Subscribe(m.track)
	modal.Publish(m.controller)
	return m
}

// Controller returns the model's controller.
func (m *Model) Controller() *modal.Controller {
	return m.controller
}

// Close unpublishes the controller and stops tracking the registry.
func (m *Model) Close() {
	m.unsubscribe()
	modal.Unpublish(m.controller)
}

// Watch forwards a StateMsg to send after every registry change, so that
// modals opened from other goroutines are drawn. send runs synchronously
// inside the mutation, so it must not block on the program's Update loop.
// It returns a function that stops forwarding.
func (m *Model) Watch(send func(tea.Msg)) (stop func()) {
	return m.registry.Subscribe(func(s modal.State) {
		send(StateMsg{State: s})
	})
}

// track keeps ids in the order they first appeared. A terminal has no
// exit transition, so a record that has just closed completes its exit
// here, whichever path hid it.
func (m *Model) track(s modal.State) {
	m.mu.Lock()
	kept := m.order[:0]
	seen := make(map[string]bool, len(s))
	for _, id := range m.order {
		if _, ok := s[id]; ok {
			kept = append(kept, id)
			seen[id] = true
		}
	}
	for _, id := range s.IDs() {
		if !seen[id] {
			kept = append(kept, id)
		}
	}
	m.order = kept

	var exited []modal.Record
	for id := range m.opened {
		if rec, ok := s[id]; !ok || !rec.IsOpen() {
			delete(m.opened, id)
			if ok {
				exited = append(exited, rec)
			}
		}
	}
	for id, rec := range s {
		if rec.IsOpen() {
			m.opened[id] = true
		}
	}
	m.mu.Unlock()

	for _, rec := range exited {
		if onExited := rec.Props.Func(modal.PropOnExited); onExited != nil {
			onExited()
		}
		m.controller.ExitCompleted(rec.ID)
	}
}

// open returns the open records, bottom-most first.
func (m *Model) open() []modal.Record {
	state := m.registry.State()
	m.mu.Lock()
	order := append([]string(nil), m.order...)
	m.mu.Unlock()

	recs := make([]modal.Record, 0, len(order))
	for _, id := range order {
		if rec, ok := state[id]; ok && rec.IsOpen() {
			recs = append(recs, rec)
		}
	}
	return recs
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	modal.Publish(m.controller)
	if m.background == nil {
		return nil
	}
	return m.background.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		m.controller.ShowModal(msg.Component, msg.Props, msg.Options...)
		return m, nil

	case StateMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if open := m.open(); len(open) > 0 {
			return m, m.handleKey(open[len(open)-1], msg)
		}
	}

	if m.background == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.background, cmd = m.background.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(top modal.Record, msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.close(top)
		return nil
	}
	if h, ok := top.Component.(KeyHandler); ok {
		return h.HandleKey(m.inject(top), msg)
	}
	return nil
}

// close runs the caller's onClose and hides the record. track completes
// the exit.
func (m *Model) close(rec modal.Record) {
	if onClose := rec.Props.Func(modal.PropOnClose); onClose != nil {
		onClose()
	}
	m.controller.HideModal(rec.ID)
	m.logger.Debug("modal closed", "id", rec.ID)
}

// inject returns the props a component sees, with onClose bound to close.
func (m *Model) inject(rec modal.Record) modal.Props {
	props := rec.Props.Clone()
	props[modal.PropOnClose] = func() { m.close(rec) }
	return props
}

// View implements tea.Model.
func (m *Model) View() string {
	modal.Publish(m.controller)

	var bg string
	if m.background != nil {
		bg = m.background.View()
	}

	open := m.open()
	if len(open) == 0 {
		return bg
	}

	boxes := make([]string, 0, len(open))
	for i, rec := range open {
		boxes = append(boxes, m.renderBox(rec, i == len(open)-1))
	}
	overlay := lipgloss.JoinVertical(lipgloss.Center, boxes...)

	if m.width == 0 || m.height == 0 {
		return bg + "\n" + overlay
	}
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(dim),
	)
}

func (m *Model) renderBox(rec modal.Record, top bool) string {
	props := m.inject(rec)

	var body string
	switch c := rec.Component.(type) {
	case View:
		body = c.View(props)
	case func(modal.Props) string:
		body = c(props)
	default:
		body = props.String("text")
	}

	var lines []string
	if title := props.String("title"); title != "" {
		lines = append(lines, m.styles.Title.Render(title), "")
	}
	lines = append(lines, m.styles.Body.Width(m.boxWidth).Render(body))

	if !top {
		return m.styles.Inactive.Width(m.boxWidth + 4).Render(strings.Join(lines, "\n"))
	}
	lines = append(lines, "", m.styles.Hint.Render("esc close"))
	return m.styles.Box.Width(m.boxWidth + 4).Render(strings.Join(lines, "\n"))
}
