package vtest

import (
	"testing"
	"time"

	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

// maxPasses bounds re-renders per flush. Exceeding it means a component
// mutates the registry on every render.
const maxPasses = 32

// Screen is a mounted provider with its last expanded render.
type Screen struct {
	t        testing.TB
	provider *host.Provider
	children []any
	tree     *vdom.VNode
}

// Mount renders children inside p and flushes. The provider is unmounted
// when the test ends.
func Mount(t testing.TB, p *host.Provider, children ...any) *Screen {
	t.Helper()
	s := &Screen{t: t, provider: p, children: children}
	t.Cleanup(p.Unmount)
	s.Flush()
	return s
}

// Provider returns the mounted provider.
func (s *Screen) Provider() *host.Provider {
	return s.provider
}

// Tree returns the last expanded render.
func (s *Screen) Tree() *vdom.VNode {
	return s.tree
}

// HTML returns the last render as HTML.
func (s *Screen) HTML() string {
	return RenderToString(s.tree)
}

// Flush re-renders until the provider reports no pending changes.
func (s *Screen) Flush() {
	s.t.Helper()
	for pass := 0; ; pass++ {
		if pass == maxPasses {
			s.t.Fatalf("vtest: provider still dirty after %d renders", maxPasses)
		}
		s.tree = vdom.Expand(s.provider.Render(s.children...))
		if !s.provider.Dirty() {
			return
		}
	}
}

// Act runs fn and flushes.
func (s *Screen) Act(fn func()) {
	s.t.Helper()
	fn()
	s.Flush()
}

// QueryByText returns the first element whose trimmed text equals text,
// or nil.
func (s *Screen) QueryByText(text string) *vdom.VNode {
	found := vdom.FindByText(s.tree, text)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// GetByText is QueryByText that fails the test when nothing matches.
func (s *Screen) GetByText(text string) *vdom.VNode {
	s.t.Helper()
	n := s.QueryByText(text)
	if n == nil {
		s.t.Fatalf("vtest: no element with text %q in:\n%s", text, truncate(s.HTML(), 500))
	}
	return n
}

// Fire calls node's handler for event and flushes.
func (s *Screen) Fire(node *vdom.VNode, event string) {
	s.t.Helper()
	switch h := node.Handler(event).(type) {
	case func():
		s.Act(h)
	case nil:
		s.t.Fatalf("vtest: <%s> has no %s handler", node.Tag, event)
	default:
		s.t.Fatalf("vtest: unsupported %s handler type %T", event, h)
	}
}

// Click fires the click handler of node.
func (s *Screen) Click(node *vdom.VNode) {
	s.t.Helper()
	s.Fire(node, "click")
}

// WaitFor flushes until cond holds, failing the test after timeout.
// A timeout of zero means one second.
func (s *Screen) WaitFor(cond func() bool, timeout time.Duration) {
	s.t.Helper()
	if timeout <= 0 {
		timeout = time.Second
	}
	deadline := time.Now().Add(timeout)
	for {
		s.Flush()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			s.t.Fatalf("vtest: condition not met within %s; last render:\n%s", timeout, truncate(s.HTML(), 500))
		}
		time.Sleep(5 * time.Millisecond)
	}
}
