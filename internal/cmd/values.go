package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/unrss/envgate/internal/env"
	"github.com/unrss/envgate/internal/loader"
	"github.com/unrss/envgate/internal/shell"
)

func newValuesCmd() *cobra.Command {
	var jsonOutput, shellOutput bool

	cmd := &cobra.Command{
		Use:   "values [path]",
		Short: "Show the variables an .envrc file would set",
		Long: `Resolve, verify, and source an .envrc file, then print the variables that
differ from the current environment. The environment is not modified.

With --shell the output is eval-able bash export statements.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput && shellOutput {
				return fmt.Errorf("--json and --shell are mutually exclusive")
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runValues(cmd.OutOrStdout(), cmd.ErrOrStderr(), path, jsonOutput, shellOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&shellOutput, "shell", false, "Output as bash export statements")

	return cmd
}

func runValues(stdout, stderr io.Writer, path string, jsonOutput, shellOutput bool) error {
	l, err := newLoader(stderr)
	if err != nil {
		return err
	}

	result, err := l.Values(loader.Options{Path: path, Verbose: cfg.Verbose})
	if err != nil {
		return err
	}

	switch {
	case jsonOutput:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case shellOutput:
		fmt.Fprint(stdout, shell.Export(result))
		return nil
	default:
		printValuesHuman(stdout, result)
		return nil
	}
}

func printValuesHuman(w io.Writer, result env.Result) {
	keys := make([]string, 0, len(result))
	for k := range result {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if value := result[key]; value != nil {
			fmt.Fprintf(w, "%s=%s\n", key, *value)
		} else {
			fmt.Fprintln(w, key)
		}
	}
}
