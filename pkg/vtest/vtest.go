package vtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/modalhost/pkg/render"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

// maxShown bounds the HTML quoted in failure messages.
const maxShown = 500

// RenderToString renders node to HTML. Render errors yield "".
//
//	html := vtest.RenderToString(p.Render())
func RenderToString(node *vdom.VNode) string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains fails t unless the rendered node contains text.
//
//	vtest.ExpectContains(t, p.Render(), "Hello")
func ExpectContains(t testing.TB, node *vdom.VNode, text string) {
	t.Helper()
	expect(t, node, text, true, fmt.Sprintf("output to contain %q", text))
}

// ExpectNotContains fails t if the rendered node contains text.
func ExpectNotContains(t testing.TB, node *vdom.VNode, text string) {
	t.Helper()
	expect(t, node, text, false, fmt.Sprintf("output not to contain %q", text))
}

// ExpectElement fails t unless the rendered node has a tag element.
//
//	vtest.ExpectElement(t, p.Render(), "dialog")
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	expect(t, node, "<"+tag, true, fmt.Sprintf("a <%s> element", tag))
}

// ExpectAttribute fails t unless some element carries attr="value".
//
//	vtest.ExpectAttribute(t, p.Render(), "data-state", "closed")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	expect(t, node, attr+`="`+value+`"`, true, fmt.Sprintf("attribute %s=%q", attr, value))
}

func expect(t testing.TB, node *vdom.VNode, needle string, present bool, what string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, needle) != present {
		t.Errorf("expected %s, got:\n%s", what, truncate(html, maxShown))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
