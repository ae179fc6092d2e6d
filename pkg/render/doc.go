// Package render converts VNode trees into HTML.
//
// Modal hosts use it to produce the markup for their subtree, and the vtest
// harness uses it to assert on rendered output.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(provider.Render(page))
//
// All text content and attribute values are escaped. Event handlers are not
// rendered as attributes; elements that carry them get a data-on-<event>
// marker instead so client code can bind to them.
package render
