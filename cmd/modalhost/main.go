package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/modalhost/internal/config"
	"github.com/vango-dev/modalhost/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┌┬┐┌─┐┬  ┬ ┬┌─┐┌─┐┌┬┐
  ││││ │ ││├─┤│  ├─┤│ │└─┐ │
  ┴ ┴└─┘─┴┘┴ ┴┴─┘┴ ┴└─┘└─┘ ┴
`

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errors.Write(os.Stderr, err, errorOutput(rootCmd))
		os.Exit(1)
	}
}

// errorOutput returns the --error-format chosen on cmd, or text.
func errorOutput(cmd *cobra.Command) errors.Output {
	name, _ := cmd.PersistentFlags().GetString("error-format")
	out, err := errors.ParseOutput(name)
	if err != nil {
		return errors.OutputText
	}
	return out
}

func newRootCmd() *cobra.Command {
	var configPath, errorFormat string

	rootCmd := &cobra.Command{
		Use:   "modalhost",
		Short: "Run and inspect modal hosts",
		Long: `modalhost drives the modal registry from the command line.

  • play scripted modal scenarios and print every render
  • serve a live host with an HTTP/WebSocket inspector and metrics
  • try the terminal host interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := errors.ParseOutput(errorFormat)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", string(errors.OutputText), "Error output: text, compact or json")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: modalhost.yaml in the working directory or a parent)")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}

	rootCmd.AddCommand(
		playCmd(load),
		serveCmd(load),
		tuiCmd(load),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads path, or searches the working directory when path is
// empty, and validates the result.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
