package host

import (
	"log/slog"

	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/vdom"
	"go.opentelemetry.io/otel/trace"
)

// Config configures a Provider.
type Config struct {
	// Suspense wraps the modal layer in a loading boundary.
	// Default: true.
	Suspense *bool

	// Fallback is rendered in place of the modal layer while a lazy
	// component loads. nil renders nothing.
	Fallback *vdom.VNode

	// Logger is the structured logger for the provider and its registry.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics records registry activity. nil disables metrics.
	Metrics *modal.Metrics

	// Tracer is used for controller operation spans.
	// If nil, the global OpenTelemetry tracer provider is used.
	Tracer trace.Tracer

	// OnInvalidate is called whenever the provider needs a re-render:
	// after every registry change and when a lazy component finishes
	// loading. It may be called from a background goroutine.
	OnInvalidate func()
}

// Bool returns a pointer to v, for Config.Suspense.
func Bool(v bool) *bool {
	return &v
}

func (c Config) suspense() bool {
	return c.Suspense == nil || *c.Suspense
}
