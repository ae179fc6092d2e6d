package termhost

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vango-dev/modalhost/pkg/modal"
)

// View is a modal component that renders the body of its box.
type View interface {
	View(props modal.Props) string
}

// ViewFunc adapts a function to View.
type ViewFunc func(props modal.Props) string

// View implements View.
func (f ViewFunc) View(props modal.Props) string {
	return f(props)
}

// KeyHandler is implemented by components that handle keys while they are
// the top-most open modal. Esc is handled by the host and never delivered.
type KeyHandler interface {
	HandleKey(props modal.Props, msg tea.KeyMsg) tea.Cmd
}

// Text renders the text prop.
var Text View = ViewFunc(func(props modal.Props) string {
	return props.String("text")
})

// ShowMsg opens a modal when delivered to a Model.
type ShowMsg struct {
	Component modal.Component
	Props     modal.Props
	Options   []modal.Option
}

// Show returns a command that opens a modal.
func Show(c modal.Component, props modal.Props, opts ...modal.Option) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Component: c, Props: props, Options: opts}
	}
}

// StateMsg is sent by Watch after every registry change.
type StateMsg struct {
	State modal.State
}
