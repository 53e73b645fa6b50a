package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/errors"
)

// newCheckCmd creates the check command for validating automaton files.
func newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate an automaton file",
		Long: `Check loads an automaton from a JSON or TOML file, normalizes it, and
runs the full set of structural validations. The exit code is non-zero
when the file is missing, malformed, or describes an invalid machine.

Examples:
  machina check machine.json
  machina check machine.toml --quiet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the summary, only set the exit code")

	return cmd
}

func runCheck(cmd *cobra.Command, path string, quiet bool) error {
	logger := loggerFromContext(cmd.Context())
	logger.Debug("checking automaton", "path", path)

	spec, err := automaton.ReadFile(path)
	if err != nil {
		if !quiet {
			printError("%s", errors.UserMessage(err))
		}
		return err
	}

	if quiet {
		return nil
	}

	printSuccess("%s is a valid %s", path, spec.Kind())
	printKeyValue("states", fmt.Sprintf("%d", len(spec.States)))
	printKeyValue("alphabet", strings.Join(spec.Alphabet, ", "))
	printKeyValue("initial", spec.Initial)
	printKeyValue("finals", strings.Join(spec.Finals, ", "))
	printKeyValue("transitions", fmt.Sprintf("%d", spec.Transitions.Count()))
	return nil
}
