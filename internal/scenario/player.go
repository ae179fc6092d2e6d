package scenario

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vango-dev/modalhost/internal/errors"
	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/render"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

// maxPasses bounds re-renders while settling a step.
const maxPasses = 32

// Player runs scenarios against one provider.
type Player struct {
	provider   *host.Provider
	renderer   *render.Renderer
	out        io.Writer
	components map[string]modal.Component
	timeout    time.Duration

	aliases map[string]string
	html    string
}

// Option configures a Player.
type Option func(*Player)

// WithOutput sets where step reports are written. Default: io.Discard.
func WithOutput(w io.Writer) Option {
	return func(p *Player) {
		p.out = w
	}
}

// WithRenderer sets the HTML renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(p *Player) {
		p.renderer = r
	}
}

// WithComponents adds or replaces named components.
func WithComponents(components map[string]modal.Component) Option {
	return func(p *Player) {
		for name, c := range components {
			p.components[name] = c
		}
	}
}

// WithTimeout bounds how long a step waits for lazy components.
// Default: 2s.
func WithTimeout(d time.Duration) Option {
	return func(p *Player) {
		p.timeout = d
	}
}

// NewPlayer creates a player driving provider.
func NewPlayer(provider *host.Provider, opts ...Option) *Player {
	p := &Player{
		provider:   provider,
		renderer:   render.NewRenderer(render.RendererConfig{}),
		out:        io.Discard,
		components: Builtins(),
		timeout:    2 * time.Second,
		aliases:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HTML returns the last settled render.
func (p *Player) HTML() string {
	return p.html
}

// ID returns the modal id bound to alias.
func (p *Player) ID(alias string) (string, bool) {
	id, ok := p.aliases[alias]
	return id, ok
}

// Run plays every step of s. It stops at the first invalid step or failed
// expectation.
func (p *Player) Run(s *Scenario) error {
	if s.Name != "" {
		fmt.Fprintf(p.out, "scenario: %s\n", s.Name)
	}
	if err := p.settle(); err != nil {
		return err
	}

	for i, step := range s.Steps {
		if err := p.apply(s, step, i); err != nil {
			return err
		}
		if err := p.settle(); err != nil {
			return err
		}
		p.report(i, step)
		if step.Kind == KindExpect {
			if err := p.check(s, step); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Player) apply(s *Scenario, step Step, index int) error {
	c := p.provider.Controller()

	switch step.Kind {
	case KindShow:
		comp, ok := p.components[step.Show.Component]
		if !ok {
			return p.invalid(s, step, fmt.Sprintf("unknown component %q", step.Show.Component))
		}
		var opts []modal.Option
		if step.Show.Root != "" {
			opts = append(opts, modal.WithRootID(step.Show.Root))
		}
		if step.Show.HideOnClose != nil {
			opts = append(opts, modal.HideOnClose(*step.Show.HideOnClose))
		}
		if step.Show.DestroyOnClose {
			opts = append(opts, modal.DestroyOnClose(true))
		}
		h := c.ShowModal(comp, modal.Props(step.Show.Props), opts...)

		alias := step.Show.As
		if alias == "" {
			alias = fmt.Sprintf("m%d", index+1)
		}
		p.aliases[alias] = h.ID

	case KindUpdate:
		id, err := p.resolve(s, step)
		if err != nil {
			return err
		}
		c.UpdateModal(id, modal.Props(step.Props))

	case KindHide:
		id, err := p.resolve(s, step)
		if err != nil {
			return err
		}
		c.HideModal(id)

	case KindDestroy:
		id, err := p.resolve(s, step)
		if err != nil {
			return err
		}
		c.DestroyModal(id)

	case KindDestroyRoot:
		root := step.Target
		if root == "" {
			root = c.RootID()
		}
		c.DestroyModalsByRootID(root)

	case KindClose, KindExit:
		id, err := p.resolve(s, step)
		if err != nil {
			return err
		}
		props, ok := p.provider.Props(id)
		if !ok {
			return p.invalid(s, step, fmt.Sprintf("modal %q no longer exists", step.Target))
		}
		name := modal.PropOnClose
		if step.Kind == KindExit {
			name = modal.PropOnExited
		}
		if fn := props.Func(name); fn != nil {
			fn()
		}
	}
	return nil
}

// resolve maps a step's alias to a modal id. An empty alias resolves to
// the empty id so scenarios can exercise missing-id diagnostics.
func (p *Player) resolve(s *Scenario, step Step) (string, error) {
	if step.Target == "" {
		return "", nil
	}
	id, ok := p.aliases[step.Target]
	if !ok {
		return "", p.invalid(s, step, fmt.Sprintf("unknown modal alias %q", step.Target))
	}
	return id, nil
}

func (p *Player) invalid(s *Scenario, step Step, msg string) error {
	e := errors.New("M150").WithDetail(msg)
	if s.File != "" {
		e = e.WithLocation(s.File, step.Line, step.Column)
	}
	return e
}

// settle renders until the provider is clean and no lazy component is
// loading.
func (p *Player) settle() error {
	deadline := time.Now().Add(p.timeout)
	for pass := 0; ; pass++ {
		tree := vdom.Expand(p.provider.Render())
		html, err := p.renderer.RenderToString(tree)
		if err != nil {
			return err
		}
		p.html = html

		if p.provider.Dirty() {
			if pass >= maxPasses {
				return fmt.Errorf("scenario: provider still dirty after %d renders", maxPasses)
			}
			continue
		}
		if !p.provider.Loading() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("scenario: lazy components still loading after %s", p.timeout)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (p *Player) report(i int, step Step) {
	label := string(step.Kind)
	switch step.Kind {
	case KindShow:
		label += " " + step.Show.Component
	case KindExpect:
	default:
		if step.Target != "" {
			label += " " + step.Target
		}
	}
	fmt.Fprintf(p.out, "\n-- step %d (line %d): %s\n", i+1, step.Line, label)

	if p.html == "" {
		fmt.Fprintln(p.out, "(empty)")
	} else {
		fmt.Fprintln(p.out, strings.TrimRight(p.html, "\n"))
	}

	names := make(map[string]string, len(p.aliases))
	for alias, id := range p.aliases {
		names[id] = alias
	}
	state := p.provider.Controller().State()
	fmt.Fprintf(p.out, "state: %d modal(s)\n", len(state))
	for _, id := range state.IDs() {
		rec := state[id]
		status := "closed"
		if rec.IsOpen() {
			status = "open"
		}
		fmt.Fprintf(p.out, "  %-10s %s %s\n", names[id], id, status)
	}
}

func (p *Player) check(s *Scenario, step Step) error {
	state := p.provider.Controller().State()
	open := 0
	for _, rec := range state {
		if rec.IsOpen() {
			open++
		}
	}

	var failures []string
	exp := step.Expect
	if exp.Count != nil && *exp.Count != len(state) {
		failures = append(failures, fmt.Sprintf("count: got %d, want %d", len(state), *exp.Count))
	}
	if exp.Open != nil && *exp.Open != open {
		failures = append(failures, fmt.Sprintf("open: got %d, want %d", open, *exp.Open))
	}
	for _, text := range exp.Contains {
		if !strings.Contains(p.html, text) {
			failures = append(failures, fmt.Sprintf("render does not contain %q", text))
		}
	}
	for _, text := range exp.Absent {
		if strings.Contains(p.html, text) {
			failures = append(failures, fmt.Sprintf("render contains %q", text))
		}
	}
	if len(failures) == 0 {
		return nil
	}

	e := errors.New("M151").WithDetail(strings.Join(failures, "; "))
	if s.File != "" {
		e = e.WithLocation(s.File, step.Line, step.Column)
	}
	return e
}
