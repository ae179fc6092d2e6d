package host

import (
	"log/slog"

	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

// Renderer is a modal component the vdom host can render.
type Renderer interface {
	Render(props modal.Props) *vdom.VNode
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(props modal.Props) *vdom.VNode

// Render implements Renderer.
func (f RenderFunc) Render(props modal.Props) *vdom.VNode {
	return f(props)
}

// Typed adapts a render function over a props struct. Props are decoded
// with modal.Decode; a decode failure is logged and renders nothing.
func Typed[P any](render func(P) *vdom.VNode) Renderer {
	return RenderFunc(func(props modal.Props) *vdom.VNode {
		v, err := modal.Decode[P](props)
		if err != nil {
			slog.Warn("modal: cannot decode props", "error", err)
			return nil
		}
		return render(v)
	})
}

// asRenderer resolves the shapes a record's component may take.
func asRenderer(c modal.Component) (Renderer, bool) {
	switch v := c.(type) {
	case Renderer:
		return v, true
	case func(modal.Props) *vdom.VNode:
		return RenderFunc(v), true
	default:
		return nil, false
	}
}
