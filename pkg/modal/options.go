package modal

// Options is the lifecycle policy of a single modal instance.
type Options struct {
	// HideOnClose lets the host remove the record once the component reports
	// that its exit transition completed. Defaults to true.
	HideOnClose bool `json:"hideOnClose"`

	// DestroyOnClose removes the record once it is hidden: immediately on
	// controllers without deferred exit, else on exit completion.
	DestroyOnClose bool `json:"destroyOnClose,omitempty"`

	// RootID is the scope segment of the composed id.
	RootID string `json:"rootId,omitempty"`
}

// Option configures a ShowModal call.
type Option func(*Options)

// HideOnClose sets whether the record is removed once its exit transition
// completes.
func HideOnClose(v bool) Option {
	return func(o *Options) {
		o.HideOnClose = v
	}
}

// DestroyOnClose sets whether hiding the modal destroys it.
func DestroyOnClose(v bool) Option {
	return func(o *Options) {
		o.DestroyOnClose = v
	}
}

// WithRootID places the modal under an explicit root instead of the
// controller's own root.
func WithRootID(rootID string) Option {
	return func(o *Options) {
		o.RootID = rootID
	}
}

func resolveOptions(opts []Option) Options {
	o := Options{HideOnClose: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
