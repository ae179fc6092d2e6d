package modal

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/modalhost/pkg/modal"

// Surface is the caller-facing control surface of a mounted modal host.
type Surface interface {
	// ShowModal registers a new open modal and returns a handle bound to it.
	ShowModal(c Component, props Props, opts ...Option) Handle

	// HideModal marks the modal closed.
	HideModal(id string)

	// DestroyModal removes the modal.
	DestroyModal(id string)

	// UpdateModal merges partial into the modal's props.
	UpdateModal(id string, partial Props)

	// DestroyModalsByRootID removes every modal under rootID.
	DestroyModalsByRootID(rootID string)

	// RootID returns the root segment used when ShowModal gets no WithRootID.
	RootID() string

	// State returns a snapshot of all modals.
	State() State
}

// Handle is bound to one modal id. The zero Handle is inert.
type Handle struct {
	ID string

	hide    func()
	destroy func()
	update  func(Props)
}

// Hide marks the modal closed.
func (h Handle) Hide() {
	if h.hide != nil {
		h.hide()
	}
}

// Destroy removes the modal.
func (h Handle) Destroy() {
	if h.destroy != nil {
		h.destroy()
	}
}

// Update merges partial into the modal's props.
func (h Handle) Update(partial Props) {
	if h.update != nil {
		h.update(partial)
	}
}

// Controller implements the show/hide/destroy protocol on top of a Registry.
type Controller struct {
	registry  *Registry
	tracer    trace.Tracer
	deferExit bool

	rootOnce sync.Once
	rootID   string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTracer sets the tracer used for operation spans.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) ControllerOption {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithDeferredExit makes hide wait for ExitCompleted before removing
// DestroyOnClose records. Hosts that deliver an exit signal to their
// components enable it.
func WithDeferredExit() ControllerOption {
	return func(c *Controller) {
		c.deferExit = true
	}
}

// NewController creates a controller over reg.
func NewController(reg *Registry, opts ...ControllerOption) *Controller {
	c := &Controller{
		registry: reg,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scoped returns a controller sharing this controller's registry and
// tracer but with its own root id.
func (c *Controller) Scoped() *Controller {
	return &Controller{
		registry:  c.registry,
		tracer:    c.tracer,
		deferExit: c.deferExit,
	}
}

// Registry returns the underlying registry.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// RootID returns this controller's root id, generating it on first use.
func (c *Controller) RootID() string {
	c.rootOnce.Do(func() {
		c.rootID = GenerateID()
	})
	return c.rootID
}

// State returns a snapshot of all records in the registry.
func (c *Controller) State() State {
	return c.registry.State()
}

// ShowModal registers c with props and returns a handle bound to its id.
// Any caller-supplied isOpen prop is discarded; the registry owns it.
func (c *Controller) ShowModal(comp Component, props Props, opts ...Option) Handle {
	o := resolveOptions(opts)
	if o.RootID == "" {
		o.RootID = c.RootID()
	}
	id := ComposeID(o.RootID, GenerateID())

	span := c.span("show", id)
	defer span.End()
	span.SetAttributes(
		attribute.Bool("modal.hide_on_close", o.HideOnClose),
		attribute.Bool("modal.destroy_on_close", o.DestroyOnClose),
	)

	p := props.Clone()
	delete(p, PropIsOpen)
	c.registry.Add(id, comp, p, o)
	c.registry.logger.Debug("modal shown", "id", id)

	return Handle{
		ID:      id,
		hide:    func() { c.HideModal(id) },
		destroy: func() { c.DestroyModal(id) },
		update:  func(partial Props) { c.UpdateModal(id, partial) },
	}
}

// HideModal marks the modal closed.
//
// Without deferred exit, a record with both HideOnClose and DestroyOnClose
// is removed right away. Every other closed record stays until
// ExitCompleted or DestroyModal.
func (c *Controller) HideModal(id string) {
	span := c.span("hide", id)
	defer span.End()

	c.registry.SetClosed(id)
	if id == "" || c.deferExit {
		return
	}
	if rec, ok := c.registry.Get(id); ok && !rec.IsOpen() &&
		rec.Options.HideOnClose && rec.Options.DestroyOnClose {
		c.registry.Remove(id)
	}
}

// DestroyModal removes the modal unconditionally.
func (c *Controller) DestroyModal(id string) {
	span := c.span("destroy", id)
	defer span.End()

	c.registry.Remove(id)
}

// UpdateModal merges partial into the modal's props. isOpen cannot be
// changed through an update.
func (c *Controller) UpdateModal(id string, partial Props) {
	span := c.span("update", id)
	defer span.End()

	if _, ok := partial[PropIsOpen]; ok {
		partial = partial.Clone()
		delete(partial, PropIsOpen)
	}
	c.registry.UpdateProps(id, partial)
}

// DestroyModalsByRootID removes every modal under rootID.
func (c *Controller) DestroyModalsByRootID(rootID string) {
	_, span := c.tracer.Start(context.Background(), "modal.destroy_root",
		trace.WithAttributes(attribute.String("modal.root_id", rootID)))
	defer span.End()

	c.registry.RemoveByRoot(rootID)
}

// ExitCompleted is called by hosts when a component's exit transition has
// finished. A closed record whose policy is HideOnClose or DestroyOnClose
// is removed. Open records and records with neither policy are left alone.
func (c *Controller) ExitCompleted(id string) {
	if id == "" {
		c.registry.reportMissingID("exit")
		return
	}
	rec, ok := c.registry.Get(id)
	if !ok || rec.IsOpen() || !(rec.Options.HideOnClose || rec.Options.DestroyOnClose) {
		return
	}

	span := c.span("exit", id)
	defer span.End()
	c.registry.Remove(id)
}

func (c *Controller) span(op, id string) trace.Span {
	_, span := c.tracer.Start(context.Background(), "modal."+op,
		trace.WithAttributes(attribute.String("modal.id", id)))
	return span
}
