package modal

// Typed is a Handle for a modal shown with a typed props value P.
type Typed[P any] struct {
	Handle
}

// Show encodes props (a struct or string-keyed map, see Encode) and shows
// c on s. A nil surface yields an inert handle and no error, matching the
// "no host mounted" convention of GetModal.
//
//	type ConfirmProps struct {
//	    Text    string `prop:"text"`
//	    OnClose func() `prop:"onClose,omitempty"`
//	}
//
//	h, err := modal.Show(modal.GetModal(), Confirm, ConfirmProps{Text: "Delete?"})
func Show[P any](s Surface, c Component, props P, opts ...Option) (Typed[P], error) {
	if s == nil {
		return Typed[P]{}, nil
	}
	p, err := Encode(props)
	if err != nil {
		return Typed[P]{}, err
	}
	return Typed[P]{Handle: s.ShowModal(c, p, opts...)}, nil
}
