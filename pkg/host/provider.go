package host

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	moderrors "github.com/vango-dev/modalhost/internal/errors"
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/scope"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

// Provider mounts a modal registry into a vdom tree.
type Provider struct {
	owner      *scope.Owner
	registry   *modal.Registry
	controller *modal.Controller
	logger     *slog.Logger

	suspense     bool
	fallback     *vdom.VNode
	onInvalidate func()

	unsubscribe func()
	dirty       atomic.Bool

	mu       sync.Mutex
	children []any
	reported map[string]bool
}

// NewProvider mounts a provider under parent. parent may be nil for a
// root provider. The provider is unmounted when parent is disposed or
// Unmount is called.
func NewProvider(parent *scope.Owner, cfg Config) *Provider {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := modal.NewRegistry(
		modal.WithLogger(logger.With("component", "modal")),
		modal.WithMetrics(cfg.Metrics),
	)

	p := &Provider{
		owner:        scope.NewOwner(parent),
		registry:     reg,
		controller:   modal.NewController(reg, modal.WithTracer(cfg.Tracer), modal.WithDeferredExit()),
		logger:       logger.With("component", "modal-host"),
		suspense:     cfg.suspense(),
		fallback:     cfg.Fallback,
		onInvalidate: cfg.OnInvalidate,
		reported:     make(map[string]bool),
	}
	p.owner.SetValue(modal.ContextKey, p.controller)
	p.unsubscribe = reg.Subscribe(func(modal.State) { p.invalidate() })
	p.owner.OnCleanup(p.teardown)
	p.dirty.Store(true)

	modal.Publish(p.controller)
	p.logger.Debug("modal host mounted", "root", p.controller.RootID())
	return p
}

// Owner returns the provider's scope. Child scopes created under it find
// the provider through modal.UseModal.
func (p *Provider) Owner() *scope.Owner {
	return p.owner
}

// Controller returns the provider's controller.
func (p *Provider) Controller() *modal.Controller {
	return p.controller
}

// Registry returns the provider's registry.
func (p *Provider) Registry() *modal.Registry {
	return p.registry
}

// Mounted reports whether the provider has not been unmounted.
func (p *Provider) Mounted() bool {
	return !p.owner.IsDisposed()
}

// Unmount disposes the provider's scope. Scopes created under it are
// disposed first, then the provider unpublishes itself and destroys its
// remaining modals.
func (p *Provider) Unmount() {
	p.owner.Dispose()
}

func (p *Provider) teardown() {
	p.unsubscribe()
	modal.Unpublish(p.controller)
	for _, id := range p.registry.State().IDs() {
		p.registry.Remove(id)
	}
	p.logger.Debug("modal host unmounted", "root", p.controller.RootID())
}

// Dirty reports whether the registry changed, or a lazy component finished
// loading, since the last Render.
func (p *Provider) Dirty() bool {
	return p.dirty.Load()
}

func (p *Provider) invalidate() {
	p.dirty.Store(true)
	if p.onInvalidate != nil {
		p.onInvalidate()
	}
}

// Render renders children followed by the modal layer. Calling it
// republishes the provider's controller.
func (p *Provider) Render(children ...any) *vdom.VNode {
	p.mu.Lock()
	p.children = children
	p.mu.Unlock()

	if p.owner.IsDisposed() {
		return vdom.Fragment(children...)
	}

	modal.Publish(p.controller)
	p.dirty.Store(false)
	return vdom.Fragment(vdom.Fragment(children...), p.renderModals())
}

// Flush re-renders with the children of the last Render call. It returns
// nil when nothing changed since then.
func (p *Provider) Flush() *vdom.VNode {
	if !p.Dirty() {
		return nil
	}
	p.mu.Lock()
	children := p.children
	p.mu.Unlock()
	return p.Render(children...)
}

// Wrap returns a component rendering children through the provider.
func (p *Provider) Wrap(children ...any) vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		return p.Render(children...)
	})
}

// Loading reports whether any lazy component in the registry has not
// finished loading.
func (p *Provider) Loading() bool {
	for _, rec := range p.registry.State() {
		if lazy, ok := rec.Component.(*LazyComponent); ok && !lazy.Ready() {
			return true
		}
	}
	return false
}

// Props returns the props the component of id receives, including the
// injected isOpen, onClose and onExited.
func (p *Provider) Props(id string) (modal.Props, bool) {
	rec, ok := p.registry.Get(id)
	if !ok {
		return nil, false
	}
	return p.inject(rec), true
}

func (p *Provider) renderModals() *vdom.VNode {
	state := p.registry.State()
	if len(state) == 0 {
		return nil
	}
	if p.suspense && p.pending(state) {
		return p.fallback
	}

	nodes := make([]*vdom.VNode, 0, len(state))
	for _, id := range state.IDs() {
		rec := state[id]
		r := p.resolve(rec)
		if r == nil {
			continue
		}
		nodes = append(nodes, vdom.Comp(&recordView{
			renderer: r,
			props:    p.inject(rec),
		}, id))
	}
	return vdom.Fragment(nodes)
}

// pending starts loading every unresolved lazy component and reports
// whether any is still loading.
func (p *Provider) pending(state modal.State) bool {
	waiting := false
	for _, rec := range state {
		lazy, ok := rec.Component.(*LazyComponent)
		if !ok || lazy.Ready() {
			continue
		}
		lazy.Preload(p.invalidate)
		waiting = true
	}
	return waiting
}

func (p *Provider) resolve(rec modal.Record) Renderer {
	if lazy, ok := rec.Component.(*LazyComponent); ok {
		r, err := lazy.Wait()
		if err != nil || r == nil {
			p.reportOnce(rec.ID, "M003", err)
			return nil
		}
		return lazy
	}

	r, ok := asRenderer(rec.Component)
	if !ok {
		p.reportOnce(rec.ID, "M004", fmt.Errorf("component of type %T", rec.Component))
		return nil
	}
	return r
}

func (p *Provider) reportOnce(id, code string, cause error) {
	p.mu.Lock()
	key := code + ":" + id
	seen := p.reported[key]
	p.reported[key] = true
	p.mu.Unlock()
	if seen {
		return
	}

	err := moderrors.New(code)
	if cause != nil {
		err = err.Wrap(cause)
	}
	p.logger.Error("modal not rendered", "id", id, "code", code, "error", err)
}

// inject returns the props the component sees: the record's props with
// isOpen and wrapped onClose and onExited callbacks.
func (p *Provider) inject(rec modal.Record) modal.Props {
	props := rec.Props.Clone()
	id := rec.ID

	if _, custom := props[modal.PropOnClose]; !custom || props.Func(modal.PropOnClose) != nil {
		userClose := props.Func(modal.PropOnClose)
		props[modal.PropOnClose] = func() {
			if userClose != nil {
				userClose()
			}
			p.controller.HideModal(id)
		}
	}

	if _, custom := props[modal.PropOnExited]; !custom || props.Func(modal.PropOnExited) != nil {
		userExited := props.Func(modal.PropOnExited)
		props[modal.PropOnExited] = func() {
			if userExited != nil {
				userExited()
			}
			p.controller.ExitCompleted(id)
		}
	}

	return props
}

type recordView struct {
	renderer Renderer
	props    modal.Props
}

func (v *recordView) Render() *vdom.VNode {
	return v.renderer.Render(v.props)
}
