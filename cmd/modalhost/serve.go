package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vango-dev/modalhost/internal/config"
	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/inspect"
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/render"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live host with inspector and metrics",
		Long: `Serve a live modal host.

Routes:
  GET  /                  rendered host HTML
  POST /demo              open a demo dialog
  /api/...                inspector (see package inspect)
  GET  /metrics           Prometheus metrics

Examples:
  modalhost serve
  modalhost serve --addr=0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Address()
			}
			return runServe(cmd.Context(), cfg, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")

	return cmd
}

// newServeHandler wires a provider, inspector and metrics into one router.
func newServeHandler(cfg *config.Config, provider *host.Provider, reg *prometheus.Registry) (http.Handler, func()) {
	renderer := render.NewRenderer(render.RendererConfig{Pretty: cfg.Render.Pretty})

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		page := vdom.Expand(provider.Render(
			vdom.Main(vdom.H1(vdom.Text("modalhost"))),
		))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.RenderToWriter(w, page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	r.Post("/demo", func(w http.ResponseWriter, req *http.Request) {
		h := provider.Controller().ShowModal(host.Dialog, modal.Props{
			"title": "Hello",
			"text":  "Opened at " + time.Now().Format(time.Kitchen),
		})
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, h.ID)
	})

	closeInspector := func() {}
	if cfg.Server.Inspector {
		ins := inspect.NewHandler(provider.Controller(), inspect.WithLogger(cfg.Logger(os.Stderr)))
		r.Mount("/api", ins)
		closeInspector = ins.Close
	}
	if cfg.Server.Metrics && reg != nil {
		r.Handle(cfg.Server.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	return r, closeInspector
}

func runServe(ctx context.Context, cfg *config.Config, addr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger(os.Stderr)

	reg := prometheus.NewRegistry()
	metrics := modal.NewMetrics(
		modal.WithRegisterer(reg),
		modal.WithNamespace(cfg.Metrics.Namespace),
		modal.WithSubsystem(cfg.Metrics.Subsystem),
	)

	provider := host.NewProvider(nil, host.Config{
		Suspense: cfg.Host.Suspense,
		Logger:   logger,
		Metrics:  metrics,
	})
	defer provider.Unmount()

	handler, closeInspector := newServeHandler(cfg, provider, reg)
	defer closeInspector()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printBanner()
	success("Serving on http://%s", addr)
	if cfg.Server.Inspector {
		info("Inspector: http://%s/api/modals", addr)
	} else {
		warn("Inspector disabled")
	}
	if cfg.Server.Metrics {
		info("Metrics:   http://%s%s", addr, cfg.Server.MetricsPath)
	}

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
