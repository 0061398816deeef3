package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/unrss/envgate/internal/envrc"
	"github.com/unrss/envgate/internal/loader"
)

func newLoadCmd() *cobra.Command {
	var override, verbose bool

	cmd := &cobra.Command{
		Use:   "load [path]",
		Short: "Load an .envrc file into the environment",
		Long: `Resolve an .envrc file by walking up from the current directory, verify it
against the allow-list, source it, and write the resulting variables into the
process environment.

The positional path is a file name to search for (default .envrc). If no file
is found, nothing is loaded and the command still succeeds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := envrc.DefaultName
			if len(args) > 0 {
				filename = args[0]
			}
			return runLoad(cmd.OutOrStdout(), cmd.ErrOrStderr(), filename, verbose, override)
		},
	}

	cmd.Flags().BoolVarP(&override, "override", "o", false, "Override existing environment variables")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log what is being loaded")

	return cmd
}

func runLoad(stdout, stderr io.Writer, filename string, verbose, override bool) error {
	path, err := envrc.Find(filename, "", true)
	if err != nil {
		if errors.Is(err, envrc.ErrNotFound) {
			fmt.Fprintf(stdout, "envgate: cannot find %s file\n", filename)
			return nil
		}
		return err
	}

	l, err := newLoader(stderr)
	if err != nil {
		return err
	}

	loaded, err := l.Load(loader.Options{
		Path:     path,
		Verbose:  verbose,
		Override: override,
	})
	if err != nil {
		return err
	}

	if verbose {
		if loaded {
			fmt.Fprintf(stderr, "envgate: loaded %s\n", path)
		} else {
			fmt.Fprintf(stderr, "envgate: %s produced no changes\n", path)
		}
	}
	return nil
}
