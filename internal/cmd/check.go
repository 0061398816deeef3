package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/unrss/envgate/internal/allow"
	"github.com/unrss/envgate/internal/envrc"
)

func newCheckCmd() *cobra.Command {
	var silent bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check whether an .envrc file is allowed",
		Long: `Check a specific .envrc file against the direnv allow-list.

Returns exit code 0 if allowed, 1 otherwise.
Use --silent for scripting (no output, exit code only).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], silent)
		},
	}

	cmd.Flags().BoolVarP(&silent, "silent", "s", false, "suppress output (exit code only)")

	return cmd
}

func runCheck(stdout, stderr io.Writer, path string, silent bool) error {
	rc, err := envrc.NewRC(path)
	if err != nil {
		if !silent {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return err
	}

	store, err := allow.NewStore()
	if err != nil {
		if !silent {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return err
	}

	allowed, err := store.IsAllowed(rc)
	if err != nil {
		if !silent {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return err
	}

	c := newColorizer(stdout)
	if !allowed {
		if !silent {
			fmt.Fprintf(stdout, "%s %s\n", c.red("✗"), rc.Path)
			if entry := store.EntryPath(rc); entry != "" {
				fmt.Fprintf(stdout, "  expected allow entry: %s\n", c.dim(entry))
			}
		}
		return &allow.NotAllowedError{Path: rc.Path}
	}

	if !silent {
		fmt.Fprintf(stdout, "%s %s\n", c.green("✓"), rc.Path)
	}
	return nil
}
