package modal

import (
	"errors"

	moderrors "github.com/vango-dev/modalhost/internal/errors"
	"github.com/vango-dev/modalhost/pkg/scope"
)

// ContextKey is the scope key under which hosts store their *Controller.
var ContextKey = &struct{ name string }{"ModalController"}

// ErrNoProvider is wrapped by the error UseModal returns when no host
// controller can be found.
var ErrNoProvider = errors.New("modal: no provider mounted")

// UseOption configures UseModal.
type UseOption func(*useConfig)

type useConfig struct {
	disableAutoDestroy bool
	enforceProvider    bool
}

// DisableAutoDestroy keeps the scope's modals alive after the owner is
// disposed.
func DisableAutoDestroy() UseOption {
	return func(c *useConfig) {
		c.disableAutoDestroy = true
	}
}

// EnforceProvider makes UseModal fail instead of falling back to the
// globally published surface when no host is found in the owner chain.
func EnforceProvider() UseOption {
	return func(c *useConfig) {
		c.enforceProvider = true
	}
}

// UseModal returns a control surface for the scope owned by owner.
//
// When a host controller is stored on owner or one of its ancestors, the
// result is a scoped controller with its own root id; unless
// DisableAutoDestroy is given, every modal under that root is destroyed
// when owner is disposed. Otherwise the surface published through GetModal
// is returned, unless EnforceProvider is given.
func UseModal(owner *scope.Owner, opts ...UseOption) (Surface, error) {
	var cfg useConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if owner != nil {
		if v, ok := owner.Lookup(ContextKey); ok {
			if base, ok := v.(*Controller); ok {
				scoped := base.Scoped()
				if !cfg.disableAutoDestroy {
					owner.OnCleanup(func() {
						scoped.DestroyModalsByRootID(scoped.RootID())
					})
				}
				return scoped, nil
			}
		}
	}

	if !cfg.enforceProvider {
		if s := GetModal(); s != nil {
			return s, nil
		}
	}

	return nil, moderrors.New("M002").
		WithSuggestion("Mount a host provider above this scope, or call UseModal without EnforceProvider").
		Wrap(ErrNoProvider)
}
