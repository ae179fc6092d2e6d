// Package modalhost provides the public API for hosting modals.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/modalhost"
//
// Usage:
//
//	p := modalhost.NewProvider(nil, modalhost.ProviderConfig{})
//	defer p.Unmount()
//
//	h := modalhost.GetModal().ShowModal(modalhost.Dialog, modalhost.Props{
//	    "title": "Delete file?",
//	})
//	defer h.Hide()
package modalhost

import (
	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/scope"
)

// =============================================================================
// Registry types
// =============================================================================

// Props is the property bag passed to a modal component.
type Props = modal.Props

// Component is an opaque modal component.
type Component = modal.Component

// Options is the resolved per-modal policy.
type Options = modal.Options

// Option configures ShowModal.
type Option = modal.Option

// Record is one registered modal.
type Record = modal.Record

// State is a snapshot of every registered modal.
type State = modal.State

// Surface is the imperative modal API.
type Surface = modal.Surface

// Handle is bound to one shown modal.
type Handle = modal.Handle

// Controller implements Surface over a Registry.
type Controller = modal.Controller

// Registry holds modal records.
type Registry = modal.Registry

// Metrics records registry activity.
type Metrics = modal.Metrics

// Prop names injected by hosts.
const (
	PropIsOpen   = modal.PropIsOpen
	PropOnClose  = modal.PropOnClose
	PropOnExited = modal.PropOnExited
)

// HideOnClose keeps a closed modal until its exit animation completes.
func HideOnClose(v bool) Option { return modal.HideOnClose(v) }

// DestroyOnClose removes a modal once it is hidden and its exit completes.
func DestroyOnClose(v bool) Option { return modal.DestroyOnClose(v) }

// WithRootID groups a modal under rootID.
func WithRootID(rootID string) Option { return modal.WithRootID(rootID) }

// GetModal returns the surface of the mounted host, or nil.
func GetModal() Surface { return modal.GetModal() }

// UseModal returns a surface scoped to owner. See modal.UseModal.
func UseModal(owner *scope.Owner, opts ...modal.UseOption) (Surface, error) {
	return modal.UseModal(owner, opts...)
}

// Show opens a modal with typed props.
func Show[P any](s Surface, c Component, props P, opts ...Option) (modal.Typed[P], error) {
	return modal.Show(s, c, props, opts...)
}

// =============================================================================
// vdom host
// =============================================================================

// Provider hosts modals in a vdom tree.
type Provider = host.Provider

// ProviderConfig configures a Provider.
type ProviderConfig = host.Config

// Renderer renders a modal from its props.
type Renderer = host.Renderer

// RenderFunc adapts a function to Renderer.
type RenderFunc = host.RenderFunc

// LazyComponent is a component loaded on first render.
type LazyComponent = host.LazyComponent

// Dialog is the built-in dialog component.
var Dialog = host.Dialog

// NewProvider mounts a Provider under parent (nil for a root scope).
func NewProvider(parent *scope.Owner, cfg ProviderConfig) *Provider {
	return host.NewProvider(parent, cfg)
}

// Lazy wraps load in a component resolved on first render.
func Lazy(load func() (Renderer, error)) *LazyComponent {
	return host.Lazy(load)
}

// Bool returns a pointer to v, for ProviderConfig.Suspense.
func Bool(v bool) *bool { return host.Bool(v) }
