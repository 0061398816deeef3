package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/unrss/envgate/internal/envrc"
)

func newFindCmd() *cobra.Command {
	var strict bool
	var from string

	cmd := &cobra.Command{
		Use:   "find [filename]",
		Short: "Find the nearest .envrc file",
		Long: `Walk upward from the starting directory and print the path of the first
matching file. Prints nothing when no file is found; with --strict a missing
file is an error instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := envrc.DefaultName
			if len(args) > 0 {
				filename = args[0]
			}
			return runFind(cmd.OutOrStdout(), filename, from, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when no file is found")
	cmd.Flags().StringVar(&from, "from", "", "Starting directory (default: current directory)")

	return cmd
}

func runFind(stdout io.Writer, filename, from string, strict bool) error {
	path, err := envrc.Find(filename, from, strict)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintln(stdout, path)
	}
	return nil
}
