package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/modalhost/internal/config"
	"github.com/vango-dev/modalhost/internal/scenario"
	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/render"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

func playCmd(load func() (*config.Config, error)) *cobra.Command {
	var noSuspense bool

	cmd := &cobra.Command{
		Use:   "play <scenario.yaml>",
		Short: "Play a modal scenario",
		Long: `Play a scripted modal scenario against a fresh host.

After every step the host is rendered until it settles, and the
HTML and the registry state are printed.

Examples:
  modalhost play confirm.yaml
  modalhost play --no-suspense lazy.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			s, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}

			suspense := cfg.SuspenseEnabled()
			if s.Suspense != nil {
				suspense = *s.Suspense
			}
			if noSuspense {
				suspense = false
			}

			hostCfg := host.Config{
				Suspense: host.Bool(suspense),
				Logger:   cfg.Logger(os.Stderr),
			}
			if cfg.Host.Fallback != "" {
				hostCfg.Fallback = vdom.Div(vdom.Class("modal-fallback"), vdom.Text(cfg.Host.Fallback))
			}
			provider := host.NewProvider(nil, hostCfg)
			defer provider.Unmount()

			player := scenario.NewPlayer(provider,
				scenario.WithOutput(cmd.OutOrStdout()),
				scenario.WithRenderer(render.NewRenderer(render.RendererConfig{Pretty: cfg.Render.Pretty})),
			)
			return player.Run(s)
		},
	}

	cmd.Flags().BoolVar(&noSuspense, "no-suspense", false, "Load lazy modals synchronously")

	return cmd
}
