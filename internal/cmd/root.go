// Package cmd implements the envgate CLI commands.
package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/unrss/envgate/internal/allow"
	"github.com/unrss/envgate/internal/config"
	"github.com/unrss/envgate/internal/env"
	"github.com/unrss/envgate/internal/eval"
	"github.com/unrss/envgate/internal/loader"
)

// Assets holds embedded files passed from main.
type Assets struct {
	Version string
}

// cfg holds the loaded configuration, available to all commands.
var cfg *config.Config

// Execute runs the root command with the provided assets.
func Execute(assets Assets) error {
	root := newRootCmd(assets)
	return root.Execute()
}

func newRootCmd(assets Assets) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envgate",
		Short: "Load .envrc files behind the direnv allow-list",
		Long: `envgate loads shell-style .envrc files into the environment, but only
after verifying the file against direnv's content-addressed allow-list.
Untrusted files are never executed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	// Add subcommands
	cmd.AddCommand(
		newLoadCmd(),
		newValuesCmd(),
		newFindCmd(),
		newCheckCmd(),
		newVersionCmd(assets.Version),
	)

	return cmd
}

func initConfig() error {
	var err error
	cfg, err = config.Load()
	return err
}

// newLoader assembles the pipeline from configuration. Warnings and verbose
// notes go to stderr.
func newLoader(stderr io.Writer) (*loader.Loader, error) {
	store, err := allow.NewStore()
	if err != nil {
		return nil, err
	}

	mode, err := eval.ParseMode(cfg.CaptureMode)
	if err != nil {
		return nil, err
	}

	evaluator, err := eval.New(cfg.BashPath, mode, stderr)
	if err != nil {
		return nil, err
	}

	return loader.New(store, evaluator, env.OS{}, stderr), nil
}
