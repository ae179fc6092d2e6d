package host

import (
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

// Dialog is a stock modal component. It reads the title, text and
// closeLabel props. When closed it renders a closing dialog whose
// animationend handler reports exit completion; set the instant prop to
// report it during render instead.
var Dialog Renderer = RenderFunc(renderDialog)

func renderDialog(props modal.Props) *vdom.VNode {
	open := props.IsOpen()
	onClose := props.Func(modal.PropOnClose)
	onExited := props.Func(modal.PropOnExited)

	label := props.String("closeLabel")
	if label == "" {
		label = "Close"
	}

	state := "open"
	if !open {
		state = "closed"
		if props.Bool("instant") && onExited != nil {
			onExited()
		}
	}

	var exitHandler, closeHandler any
	if onExited != nil {
		exitHandler = onExited
	}
	if onClose != nil {
		closeHandler = onClose
	}

	return vdom.Dialog(
		vdom.Class("modal", "modal-"+state),
		vdom.Data("state", state),
		vdom.AriaModal(true),
		vdom.Open(open),
		vdom.OnAnimationEnd(exitHandler),
		vdom.When(props.String("title") != "", func() *vdom.VNode {
			return vdom.H2(vdom.Class("modal-title"), vdom.Text(props.String("title")))
		}),
		vdom.When(props.String("text") != "", func() *vdom.VNode {
			return vdom.P(vdom.Class("modal-body"), vdom.Text(props.String("text")))
		}),
		vdom.Button(vdom.Type("button"), vdom.Class("modal-close"), vdom.OnClick(closeHandler), vdom.Text(label)),
	)
}
