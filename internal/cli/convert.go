package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfalab/machina/internal/config"
	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/grammar"
	"github.com/nfalab/machina/pkg/integrations/conversion"
)

// Conversion operations accepted by --op.
const (
	opDFA     = "dfa"
	opGrammar = "grammar"
	opBoth    = "both"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	op         string
	output     string        // output file (single op) or base path (both)
	baseURL    string        // overrides the configured service URL
	timeout    time.Duration // overrides the configured request timeout
	configFile string
}

// newConvertCmd creates the convert command. Conversions run on the remote
// service; each request is sent exactly once and failures are reported, not
// retried.
func newConvertCmd() *cobra.Command {
	opts := convertOpts{op: opBoth}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert an automaton via the remote conversion service",
		Long: `Convert submits an automaton to the conversion service and materializes
the equivalent DFA, the regular grammar, or both. The two conversions
run concurrently and fail independently: a grammar failure never
discards a successful DFA.

Examples:
  machina convert machine.json
  machina convert machine.json --op dfa -o dfa.json
  machina convert machine.json --base-url http://converter:5000 --timeout 30s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.op != opDFA && opts.op != opGrammar && opts.op != opBoth {
				return fmt.Errorf("invalid operation: %s (must be 'dfa', 'grammar', or 'both')", opts.op)
			}
			return runConvert(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.op, "op", opts.op, "conversion operation: dfa, grammar, or both")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single op) or base path (both)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "conversion service URL (overrides config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (overrides config)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default: "+configPath()+")")

	return cmd
}

// converterClient builds a conversion client from the config file with flag
// overrides applied. An empty configFile means the default location.
func converterClient(configFile, baseURL string, timeout time.Duration) (*conversion.Client, error) {
	if configFile == "" {
		configFile = configPath()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = cfg.Converter.BaseURL
	}
	if timeout <= 0 {
		timeout = cfg.Converter.Timeout()
	}

	return conversion.NewClient(baseURL, conversion.Options{
		DFAPath:     cfg.Converter.DFAPath,
		GrammarPath: cfg.Converter.GrammarPath,
		Timeout:     timeout,
	})
}

func runConvert(ctx context.Context, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	spec, err := automaton.ReadFile(input)
	if err != nil {
		return err
	}

	client, err := converterClient(opts.configFile, opts.baseURL, opts.timeout)
	if err != nil {
		return err
	}
	logger.Debug("using conversion service", "url", client.BaseURL())

	sp := newSpinner(fmt.Sprintf("converting %s", input))
	sp.Start()

	var res conversion.BothResult
	switch opts.op {
	case opDFA:
		res.DFA, res.DFAErr = client.ToDFA(ctx, spec)
		res.GrammarErr = errSkipped
	case opGrammar:
		res.Grammar, res.GrammarErr = client.ToGrammar(ctx, spec)
		res.DFAErr = errSkipped
	default:
		res = client.Both(ctx, spec)
	}

	requested, failed := 0, 0
	if res.DFAErr != errSkipped {
		requested++
		if res.DFAErr != nil {
			failed++
		}
	}
	if res.GrammarErr != errSkipped {
		requested++
		if res.GrammarErr != nil {
			failed++
		}
	}

	switch {
	case failed == 0:
		sp.StopWithSuccess(fmt.Sprintf("converted %s", input))
	case failed == requested:
		sp.StopWithError("conversion failed")
	default:
		sp.Stop()
	}

	if res.DFAErr != errSkipped {
		if res.DFAErr != nil {
			printError("DFA: %s", errors.UserMessage(res.DFAErr))
		} else if err := writeDFA(res.DFA, input, opts); err != nil {
			return err
		}
	}

	if res.GrammarErr != errSkipped {
		if res.GrammarErr != nil {
			printError("grammar: %s", errors.UserMessage(res.GrammarErr))
		} else if err := writeGrammar(res.Grammar, input, opts); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, requested)
	}
	return nil
}

// errSkipped marks an operation the user did not request.
var errSkipped = fmt.Errorf("operation not requested")

// convertOutputPath picks the destination for one conversion result. An
// empty path means stdout, which is only used for single-op runs.
func convertOutputPath(op, input string, opts *convertOpts) string {
	if opts.op != opBoth {
		return opts.output
	}
	return fmt.Sprintf("%s_%s.json", basePath(opts.output, input), op)
}

func writeDFA(dfa automaton.Spec, input string, opts *convertOpts) error {
	path := convertOutputPath(opDFA, input, opts)
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := automaton.EncodeJSON(dfa, out); err != nil {
		return err
	}
	// No summary lines when the result itself went to stdout.
	if path != "" {
		printSuccess("DFA: %d states", len(dfa.States))
		printFile(path)
	}
	return nil
}

func writeGrammar(res grammar.Result, input string, opts *convertOpts) error {
	path := convertOutputPath(opGrammar, input, opts)
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if path != "" {
		printSuccess("grammar: %d rules", res.RuleCount())
		printFile(path)
	}
	return nil
}
