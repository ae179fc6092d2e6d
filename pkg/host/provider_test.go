package host_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/scope"
	"github.com/vango-dev/modalhost/pkg/vdom"
	"github.com/vango-dev/modalhost/pkg/vtest"
)

// textModal renders its text while open. Once closed it reports exit
// completion during render, like a component without an exit animation.
var textModal = host.RenderFunc(func(props modal.Props) *vdom.VNode {
	if !props.IsOpen() {
		if onExited := props.Func(modal.PropOnExited); onExited != nil {
			onExited()
		}
		return nil
	}
	return vdom.Div(vdom.Class("modal"), vdom.Text(props.String("text")))
})

// stickyModal never reports exit completion.
var stickyModal = host.RenderFunc(func(props modal.Props) *vdom.VNode {
	state := "open"
	if !props.IsOpen() {
		state = "closed"
	}
	return vdom.Div(vdom.Data("state", state), vdom.Text(props.String("text")))
})

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestProvider_ShowRendersModal(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p, vdom.P(vdom.Text("page")))

	screen.Act(func() {
		modal.GetModal().ShowModal(textModal, modal.Props{"text": "Hello"})
	})

	screen.GetByText("Hello")
	screen.GetByText("page")
}

func TestProvider_HideRemovesAfterExit(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p)

	var h modal.Handle
	screen.Act(func() {
		h = modal.GetModal().ShowModal(textModal, modal.Props{"text": "Hello"})
	})
	screen.GetByText("Hello")

	screen.Act(h.Hide)

	if screen.QueryByText("Hello") != nil {
		t.Error("modal still rendered after hide")
	}
	if p.Registry().Len() != 0 {
		t.Errorf("registry len = %d, want 0 after exit completion", p.Registry().Len())
	}
}

func TestProvider_HideWithoutExitKeepsRecord(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p)

	var h modal.Handle
	screen.Act(func() {
		h = p.Controller().ShowModal(stickyModal, modal.Props{"text": "Hello"})
	})
	screen.Act(h.Hide)

	vtest.ExpectAttribute(t, screen.Tree(), "data-state", "closed")
	if p.Registry().Len() != 1 {
		t.Error("record should wait for exit completion")
	}

	screen.Act(h.Destroy)
	if screen.QueryByText("Hello") != nil {
		t.Error("modal rendered after destroy")
	}
}

func TestProvider_OnCloseDestroyOnClose(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p)

	closed := 0
	screen.Act(func() {
		modal.GetModal().ShowModal(host.Dialog, modal.Props{
			"text":    "Hello",
			"onClose": func() { closed++ },
		}, modal.DestroyOnClose(true))
	})

	screen.Click(screen.GetByText("Close"))

	if closed != 1 {
		t.Errorf("caller onClose called %d times, want 1", closed)
	}
	vtest.ExpectAttribute(t, screen.Tree(), "data-state", "closed")
	if p.Registry().Len() != 1 {
		t.Fatal("DestroyOnClose record should wait for the exit animation")
	}

	dialog := findTag(screen.Tree(), "dialog")
	if dialog == nil {
		t.Fatal("dialog not rendered")
	}
	screen.Fire(dialog, "animationend")

	if screen.QueryByText("Hello") != nil {
		t.Error("modal still rendered")
	}
	if p.Registry().Len() != 0 {
		t.Error("DestroyOnClose record should be gone after exit")
	}
}

// closingModal reports close and then exit completion as soon as it is
// rendered closed, and renders nothing while closed.
var closingModal = host.RenderFunc(func(props modal.Props) *vdom.VNode {
	if !props.IsOpen() {
		if onClose := props.Func(modal.PropOnClose); onClose != nil {
			onClose()
		}
		if onExited := props.Func(modal.PropOnExited); onExited != nil {
			onExited()
		}
		return nil
	}
	return vdom.Div(vdom.Text(props.String("text")))
})

func TestProvider_HideWithOnCloseDestroyOnClose(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p)

	closed := 0
	var h modal.Handle
	screen.Act(func() {
		h = modal.GetModal().ShowModal(closingModal, modal.Props{
			"text":    "Hello",
			"onClose": func() { closed++ },
		}, modal.DestroyOnClose(true))
	})
	screen.GetByText("Hello")

	screen.Act(h.Hide)

	if closed != 1 {
		t.Errorf("caller onClose called %d times, want 1", closed)
	}
	if screen.QueryByText("Hello") != nil {
		t.Error("modal still rendered")
	}
	if _, ok := p.Registry().Get(h.ID); ok {
		t.Error("record should be removed after exit completion")
	}
}

func findTag(root *vdom.VNode, tag string) *vdom.VNode {
	var found *vdom.VNode
	vdom.Walk(root, func(n *vdom.VNode) bool {
		if found == nil && n.Tag == tag {
			found = n
		}
		return found == nil
	})
	return found
}

func TestProvider_DialogExitAnimation(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p)

	exited := 0
	screen.Act(func() {
		p.Controller().ShowModal(host.Dialog, modal.Props{
			"title":    "Notice",
			"text":     "Hello",
			"onExited": func() { exited++ },
		})
	})

	screen.Click(screen.GetByText("Close"))
	vtest.ExpectAttribute(t, screen.Tree(), "data-state", "closed")

	dialog := screen.GetByText("Hello")
	var root *vdom.VNode
	vdom.Walk(screen.Tree(), func(n *vdom.VNode) bool {
		if n.Tag == "dialog" {
			root = n
			return false
		}
		return true
	})
	if root == nil || dialog == nil {
		t.Fatal("dialog not rendered")
	}

	screen.Fire(root, "animationend")

	if exited != 1 {
		t.Errorf("caller onExited called %d times, want 1", exited)
	}
	if screen.QueryByText("Hello") != nil {
		t.Error("dialog still rendered after exit")
	}
}

func TestProvider_RendersInIDOrder(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p)

	screen.Act(func() {
		p.Controller().ShowModal(textModal, modal.Props{"text": "second"}, modal.WithRootID("b"))
		p.Controller().ShowModal(textModal, modal.Props{"text": "first"}, modal.WithRootID("a"))
	})

	html := screen.HTML()
	if strings.Index(html, "first") > strings.Index(html, "second") {
		t.Errorf("modals not rendered in id order:\n%s", html)
	}
}

func TestProvider_SuspenseFallback(t *testing.T) {
	p := host.NewProvider(nil, host.Config{
		Fallback: vdom.Div(vdom.Text("Loading")),
	})
	screen := vtest.Mount(t, p)

	release := make(chan struct{})
	lazy := host.Lazy(func() (host.Renderer, error) {
		<-release
		return textModal, nil
	})

	screen.Act(func() {
		p.Controller().ShowModal(lazy, modal.Props{"text": "Hello"})
	})
	screen.GetByText("Loading")
	if screen.QueryByText("Hello") != nil {
		t.Fatal("lazy modal rendered before load")
	}

	close(release)
	screen.WaitFor(func() bool { return screen.QueryByText("Hello") != nil }, time.Second)

	if screen.QueryByText("Loading") != nil {
		t.Error("fallback still rendered")
	}
}

func TestProvider_NoSuspenseLoadsSynchronously(t *testing.T) {
	p := host.NewProvider(nil, host.Config{
		Suspense: host.Bool(false),
		Fallback: vdom.Div(vdom.Text("Loading")),
	})
	screen := vtest.Mount(t, p)

	loads := 0
	lazy := host.Lazy(func() (host.Renderer, error) {
		loads++
		return textModal, nil
	})

	screen.Act(func() {
		p.Controller().ShowModal(lazy, modal.Props{"text": "Hello"})
	})

	screen.GetByText("Hello")
	if screen.QueryByText("Loading") != nil {
		t.Error("fallback rendered with suspense disabled")
	}

	screen.Act(func() {
		p.Controller().ShowModal(lazy, modal.Props{"text": "Again"})
	})
	screen.GetByText("Again")
	if loads != 1 {
		t.Errorf("loader ran %d times, want 1", loads)
	}
}

func TestProvider_LazyLoadFailure(t *testing.T) {
	logger, buf := newLogger()
	p := host.NewProvider(nil, host.Config{Suspense: host.Bool(false), Logger: logger})
	screen := vtest.Mount(t, p)

	broken := host.Lazy(func() (host.Renderer, error) {
		return nil, errors.New("chunk missing")
	})

	screen.Act(func() {
		p.Controller().ShowModal(broken, nil)
		p.Controller().ShowModal(textModal, modal.Props{"text": "Still here"})
	})
	screen.Flush()

	screen.GetByText("Still here")
	out := buf.String()
	if strings.Count(out, "modal not rendered") != 1 || !strings.Contains(out, "code=M003") {
		t.Errorf("expected one M003 log entry, got:\n%s", out)
	}
	if !strings.Contains(out, "chunk missing") {
		t.Errorf("log should carry the load error:\n%s", out)
	}
}

func TestProvider_UnsupportedComponent(t *testing.T) {
	logger, buf := newLogger()
	p := host.NewProvider(nil, host.Config{Logger: logger})
	screen := vtest.Mount(t, p)

	screen.Act(func() {
		p.Controller().ShowModal(42, nil)
	})

	if !strings.Contains(buf.String(), "M004") {
		t.Errorf("expected M004 log entry, got:\n%s", buf.String())
	}
}

func TestProvider_TypedRenderer(t *testing.T) {
	type greeting struct {
		Name   string `prop:"name"`
		IsOpen bool   `prop:"isOpen"`
	}
	comp := host.Typed(func(g greeting) *vdom.VNode {
		if !g.IsOpen {
			return nil
		}
		return vdom.P(vdom.Textf("Hi %s", g.Name))
	})

	p := host.NewProvider(nil, host.Config{})
	screen := vtest.Mount(t, p)

	screen.Act(func() {
		if _, err := modal.Show(p.Controller(), comp, greeting{Name: "Ada"}); err != nil {
			t.Fatalf("Show: %v", err)
		}
	})
	screen.GetByText("Hi Ada")
}

func TestProvider_PublishAndUnmount(t *testing.T) {
	first := host.NewProvider(nil, host.Config{})
	second := host.NewProvider(nil, host.Config{})
	t.Cleanup(first.Unmount)
	t.Cleanup(second.Unmount)

	if modal.GetModal() != modal.Surface(second.Controller()) {
		t.Fatal("last mounted provider should be published")
	}

	first.Render()
	if modal.GetModal() != modal.Surface(first.Controller()) {
		t.Fatal("rendering should republish")
	}

	h := first.Controller().ShowModal(textModal, nil)
	second.Unmount()
	if modal.GetModal() != modal.Surface(first.Controller()) {
		t.Error("unmounting a stale provider must not clear the binding")
	}

	first.Unmount()
	if modal.GetModal() != nil {
		t.Error("binding should be cleared after unmount")
	}
	if _, ok := first.Registry().Get(h.ID); ok {
		t.Error("modals should be destroyed on unmount")
	}
	if first.Mounted() {
		t.Error("Mounted() after Unmount")
	}
}

func TestProvider_UseModalScope(t *testing.T) {
	parent := scope.NewOwner(nil)
	p := host.NewProvider(parent, host.Config{})
	screen := vtest.Mount(t, p)

	page := scope.NewOwner(p.Owner())
	s, err := modal.UseModal(page, modal.EnforceProvider())
	if err != nil {
		t.Fatalf("UseModal: %v", err)
	}

	screen.Act(func() {
		s.ShowModal(textModal, modal.Props{"text": "Scoped"})
	})
	screen.GetByText("Scoped")

	screen.Act(page.Dispose)
	if screen.QueryByText("Scoped") != nil {
		t.Error("scoped modal should be destroyed with its scope")
	}

	parent.Dispose()
	if p.Mounted() {
		t.Error("provider should unmount with its parent")
	}
}

func TestProvider_OnInvalidate(t *testing.T) {
	calls := 0
	p := host.NewProvider(nil, host.Config{OnInvalidate: func() { calls++ }})
	t.Cleanup(p.Unmount)

	p.Render()
	if p.Dirty() {
		t.Fatal("provider dirty after render")
	}

	p.Controller().ShowModal(textModal, nil)
	if calls != 1 {
		t.Errorf("OnInvalidate called %d times, want 1", calls)
	}
	if !p.Dirty() {
		t.Error("provider should be dirty after a registry change")
	}
	if p.Flush() == nil {
		t.Error("Flush should re-render a dirty provider")
	}
	if p.Flush() != nil {
		t.Error("Flush of a clean provider should return nil")
	}
}

func TestProvider_Props(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	t.Cleanup(p.Unmount)

	exited := false
	h := p.Controller().ShowModal(stickyModal, modal.Props{"onExited": func() { exited = true }})

	props, ok := p.Props(h.ID)
	if !ok || !props.IsOpen() {
		t.Fatalf("Props(%q) = %v, %v", h.ID, props, ok)
	}

	props.Func(modal.PropOnClose)()
	if rec, _ := p.Registry().Get(h.ID); rec.IsOpen() {
		t.Error("injected onClose should hide the modal")
	}

	props.Func(modal.PropOnExited)()
	if !exited {
		t.Error("caller onExited not called")
	}
	if _, ok := p.Registry().Get(h.ID); ok {
		t.Error("injected onExited should remove the closed modal")
	}

	if _, ok := p.Props("missing.id"); ok {
		t.Error("Props of unknown id should report false")
	}
}

func TestProvider_Loading(t *testing.T) {
	p := host.NewProvider(nil, host.Config{})
	t.Cleanup(p.Unmount)

	release := make(chan struct{})
	p.Controller().ShowModal(host.Lazy(func() (host.Renderer, error) {
		<-release
		return textModal, nil
	}), nil)

	p.Render()
	if !p.Loading() {
		t.Fatal("Loading() should report the pending lazy component")
	}
	close(release)

	deadline := time.Now().Add(time.Second)
	for p.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("lazy component never finished loading")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
