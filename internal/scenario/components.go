package scenario

import (
	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

// Builtins returns the components scenarios can name:
//
//	dialog       host.Dialog
//	text         a div with the text prop that exits instantly when closed
//	lazy-dialog  host.Dialog behind host.Lazy
func Builtins() map[string]modal.Component {
	return map[string]modal.Component{
		"dialog": host.Dialog,
		"text":   textComponent,
		"lazy-dialog": host.Lazy(func() (host.Renderer, error) {
			return host.Dialog, nil
		}),
	}
}

var textComponent = host.RenderFunc(func(props modal.Props) *vdom.VNode {
	if !props.IsOpen() {
		if onExited := props.Func(modal.PropOnExited); onExited != nil {
			onExited()
		}
		return nil
	}
	return vdom.Div(vdom.Class("modal"), vdom.Text(props.String("text")))
})
