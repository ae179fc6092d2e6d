package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vango-dev/modalhost/internal/config"
	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/termhost"
)

func tuiCmd(load func() (*config.Config, error)) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Try the terminal host",
		Long: `Run a small terminal app on the terminal host.

Keys:
  n      open a modal
  m      open a modal that destroys on close
  esc    close the top-most modal
  q      quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				w = f
			}

			m := termhost.New(&demo{}, termhost.Config{Logger: cfg.Logger(w)})
			defer m.Close()

			p := tea.NewProgram(m, tea.WithAltScreen())
			stop := m.Watch(func(msg tea.Msg) { go p.Send(msg) })
			defer stop()

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log", "", "Write logs to this file")

	return cmd
}

// demo is the background model of the tui command.
type demo struct {
	opened int
}

func (d *demo) Init() tea.Cmd { return nil }

func (d *demo) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return d, tea.Quit
	case "n":
		d.opened++
		return d, termhost.Show(termhost.Text, modal.Props{
			"title": fmt.Sprintf("Modal #%d", d.opened),
			"text":  "Press esc to close.",
		})
	case "m":
		d.opened++
		return d, termhost.Show(termhost.Text, modal.Props{
			"title": fmt.Sprintf("Modal #%d", d.opened),
			"text":  "This one is destroyed as soon as it closes.",
		}, modal.DestroyOnClose(true))
	}
	return d, nil
}

func (d *demo) View() string {
	var b strings.Builder
	b.WriteString("modalhost terminal demo\n\n")
	fmt.Fprintf(&b, "  opened: %d\n\n", d.opened)
	b.WriteString("  n: open modal   m: open destroy-on-close modal   q: quit\n")
	return b.String()
}
