package termhost

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vango-dev/modalhost/pkg/modal"
)

type stubModel struct {
	keys []string
}

func (s *stubModel) Init() tea.Cmd { return nil }

func (s *stubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}

func (s *stubModel) View() string { return "background" }

type keyView struct {
	got []string
}

func (k *keyView) View(props modal.Props) string { return "key view" }

func (k *keyView) HandleKey(props modal.Props, msg tea.KeyMsg) tea.Cmd {
	k.got = append(k.got, msg.String())
	if msg.String() == "enter" {
		props.Func(modal.PropOnClose)()
	}
	return nil
}

func newModel(t *testing.T) (*Model, *stubModel) {
	t.Helper()
	bg := &stubModel{}
	m := New(bg, Config{})
	t.Cleanup(m.Close)
	return m, bg
}

func esc() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEsc} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestModel_ShowMsg(t *testing.T) {
	m, _ := newModel(t)

	m.Update(ShowMsg{Component: Text, Props: modal.Props{"title": "Saved", "text": "All changes written."}})

	view := m.View()
	for _, want := range []string{"background", "Saved", "All changes written.", "esc close"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_PublishesController(t *testing.T) {
	m, _ := newModel(t)
	if modal.GetModal() != modal.Surface(m.Controller()) {
		t.Fatal("controller not published")
	}

	modal.GetModal().ShowModal(Text, modal.Props{"text": "global"})
	if !strings.Contains(m.View(), "global") {
		t.Error("modal opened through GetModal not drawn")
	}

	m.Close()
	if modal.GetModal() != nil {
		t.Error("Close should unpublish")
	}
}

func TestModel_EscClosesTopModal(t *testing.T) {
	m, bg := newModel(t)

	closed := 0
	m.Controller().ShowModal(Text, modal.Props{"text": "first"})
	m.Controller().ShowModal(Text, modal.Props{"text": "second", "onClose": func() { closed++ }})

	m.Update(esc())

	if closed != 1 {
		t.Errorf("onClose called %d times, want 1", closed)
	}
	view := m.View()
	if strings.Contains(view, "second") {
		t.Error("top modal still drawn")
	}
	if !strings.Contains(view, "first") {
		t.Error("lower modal should remain")
	}
	if len(m.Controller().State()) != 1 {
		t.Errorf("records = %d, want 1", len(m.Controller().State()))
	}
	if len(bg.keys) != 0 {
		t.Errorf("background received keys %v while a modal was open", bg.keys)
	}

	m.Update(esc())
	m.Update(runes("x"))
	if len(bg.keys) != 1 || bg.keys[0] != "x" {
		t.Errorf("background keys = %v, want [x]", bg.keys)
	}
}

func TestModel_EscKeepsHideOnCloseFalse(t *testing.T) {
	m, _ := newModel(t)
	h := m.Controller().ShowModal(Text, modal.Props{"text": "sticky"}, modal.HideOnClose(false))

	m.Update(esc())

	rec, ok := m.Controller().State()[h.ID]
	if !ok {
		t.Fatal("record without HideOnClose must be kept")
	}
	if rec.IsOpen() {
		t.Error("record should be closed")
	}
	if strings.Contains(m.View(), "sticky") {
		t.Error("closed modal must not be drawn")
	}
}

func TestModel_KeyHandler(t *testing.T) {
	m, _ := newModel(t)
	kv := &keyView{}
	m.Update(ShowMsg{Component: kv})

	m.Update(runes("a"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(kv.got) != 2 || kv.got[0] != "a" || kv.got[1] != "enter" {
		t.Errorf("component keys = %v", kv.got)
	}
	if len(m.Controller().State()) != 0 {
		t.Error("onClose from a key handler should close the modal")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Controller().ShowModal(Text, modal.Props{"text": "centered"})

	view := m.View()
	if !strings.Contains(view, "centered") {
		t.Errorf("view missing modal:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines, want 24", lines)
	}
}

func TestModel_Watch(t *testing.T) {
	m, _ := newModel(t)

	var msgs []tea.Msg
	stop := m.Watch(func(msg tea.Msg) { msgs = append(msgs, msg) })
	m.Controller().ShowModal(Text, nil)
	stop()
	m.Controller().ShowModal(Text, nil)

	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if s, ok := msgs[0].(StateMsg); !ok || len(s.State) != 1 {
		t.Errorf("unexpected message %#v", msgs[0])
	}
}

func TestShowCmd(t *testing.T) {
	msg := Show(Text, modal.Props{"text": "x"}, modal.DestroyOnClose(true))()
	show, ok := msg.(ShowMsg)
	if !ok {
		t.Fatalf("Show() produced %T", msg)
	}
	if show.Props.String("text") != "x" || len(show.Options) != 1 {
		t.Errorf("unexpected msg %+v", show)
	}
}

func TestModel_ProgrammaticHideCompletesExit(t *testing.T) {
	m, _ := newModel(t)

	exited := 0
	h := m.Controller().ShowModal(Text, modal.Props{"text": "bye", "onExited": func() { exited++ }})
	sticky := m.Controller().ShowModal(Text, nil, modal.HideOnClose(false))

	h.Hide()
	sticky.Hide()
	m.View()

	if _, ok := m.Controller().State()[h.ID]; ok {
		t.Error("hidden HideOnClose record should be removed")
	}
	if exited != 1 {
		t.Errorf("onExited called %d times, want 1", exited)
	}
	if _, ok := m.Controller().State()[sticky.ID]; !ok {
		t.Error("record with neither policy must stay until destroyed")
	}
}

func TestModel_EscReportsExitOnce(t *testing.T) {
	m, _ := newModel(t)

	exited := 0
	m.Controller().ShowModal(Text, modal.Props{"onExited": func() { exited++ }}, modal.DestroyOnClose(true))
	m.Update(esc())

	if exited != 1 {
		t.Errorf("onExited called %d times, want 1", exited)
	}
	if len(m.Controller().State()) != 0 {
		t.Error("record should be gone")
	}
}

func TestModel_ViewRepublishes(t *testing.T) {
	m, _ := newModel(t)

	other := modal.NewController(modal.NewRegistry())
	modal.Publish(other)
	t.Cleanup(func() { modal.Unpublish(other) })

	m.View()
	if modal.GetModal() != modal.Surface(m.Controller()) {
		t.Error("View should publish the model's controller")
	}
}
