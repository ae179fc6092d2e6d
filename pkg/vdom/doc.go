// Package vdom provides the virtual node model rendered by modal hosts.
//
// Hosted modal components return *VNode trees. The host provider composes
// them with its children and the render package turns the result into HTML.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("modal"), Role("dialog"),
//	    H2(Text("Title")),
//	    P(Text("Content")),
//	    Button(OnClick(close), Text("Close")),
//	)
//
// Arguments may be attributes, event handlers, child nodes, components or
// plain strings (shorthand for text nodes). nil arguments are ignored so
// conditional attributes can be written inline.
//
// # Queries
//
// TextContent and FindByText walk a rendered tree. Component nodes are
// expanded on the fly, which is what test harnesses rely on.
package vdom
