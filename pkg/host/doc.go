// Package host mounts a modal registry into a vdom tree.
//
// A Provider owns one modal.Registry and modal.Controller for its lifetime.
// It publishes the controller through modal.GetModal, stores it on its
// scope owner for modal.UseModal, and renders every registered record
// after its children:
//
//	p := host.NewProvider(session.Owner(), host.Config{})
//	defer p.Unmount()
//
//	page := p.Render(
//	    Div(Text("app content")),
//	)
//
// # Injected props
//
// Each record's component receives the record's props plus:
//
//   - isOpen: the registry-owned open flag
//   - onClose: calls the caller's onClose, then hides the modal
//   - onExited: calls the caller's onExited, then reports exit completion so
//     closed HideOnClose or DestroyOnClose records are removed
//
// Components call onExited when their close transition has finished. A
// component that never calls it keeps its record until Destroy.
//
// # Suspense
//
// Components created with Lazy load on first render. With suspense enabled
// (the default) the modal layer renders Config.Fallback while any lazy
// component is still loading and the load runs in the background. With
// suspense disabled, loads happen synchronously during render.
package host
