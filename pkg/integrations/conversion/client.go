package conversion

import (
	"context"
	"sync"
	"time"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/grammar"
	"github.com/nfalab/machina/pkg/integrations"
)

// Default endpoint paths exposed by the converter service.
const (
	DefaultDFAPath     = "/convert/dfa"
	DefaultGrammarPath = "/convert/grammar"
)

// Options configures optional client behavior.
// Zero values select the default endpoint paths and timeout.
type Options struct {
	DFAPath     string            // endpoint for determinization
	GrammarPath string            // endpoint for grammar extraction
	Timeout     time.Duration     // per-request timeout, 0 keeps the shared default
	Headers     map[string]string // extra headers, e.g. auth tokens
}

// Client calls the remote conversion service.
//
// The wire schema for requests and DFA responses is the canonical automaton
// encoding: alphabet, states, initial, finals, transitionMap. Grammar
// responses arrive as {"result": {state: [productions]}} with the object's
// key order defining production order.
//
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	dfaPath     string
	grammarPath string
}

// NewClient creates a conversion client for the service at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := integrations.NewClient(baseURL, opts.Headers)
	if err != nil {
		return nil, err
	}
	base.SetTimeout(opts.Timeout)
	if opts.DFAPath == "" {
		opts.DFAPath = DefaultDFAPath
	}
	if opts.GrammarPath == "" {
		opts.GrammarPath = DefaultGrammarPath
	}
	return &Client{
		Client:      base,
		dfaPath:     opts.DFAPath,
		grammarPath: opts.GrammarPath,
	}, nil
}

// ToDFA submits the automaton for determinization and returns the
// equivalent DFA. The response is normalized and validated before being
// handed to callers, so a malformed service response surfaces here rather
// than downstream in rendering.
func (c *Client) ToDFA(ctx context.Context, spec automaton.Spec) (automaton.Spec, error) {
	var out automaton.Spec
	if err := c.PostJSON(ctx, c.dfaPath, spec, &out); err != nil {
		return automaton.Spec{}, errors.Wrap(errors.ErrCodeRemoteConversion, err, "DFA conversion failed")
	}

	out = out.Normalize()
	if err := automaton.Validate(out); err != nil {
		return automaton.Spec{}, errors.Wrap(errors.ErrCodeRemoteConversion, err, "converter returned an invalid automaton")
	}
	return out, nil
}

// grammarResponse is the wire form of a grammar extraction result.
type grammarResponse struct {
	Result grammar.Result `json:"result"`
}

// ToGrammar submits the automaton for regular grammar extraction.
// Production order follows the response object's key order.
func (c *Client) ToGrammar(ctx context.Context, spec automaton.Spec) (grammar.Result, error) {
	var out grammarResponse
	if err := c.PostJSON(ctx, c.grammarPath, spec, &out); err != nil {
		return grammar.Result{}, errors.Wrap(errors.ErrCodeRemoteConversion, err, "grammar conversion failed")
	}
	return out.Result, nil
}

// BothResult holds the independent outcomes of a combined conversion.
type BothResult struct {
	DFA        automaton.Spec
	DFAErr     error
	Grammar    grammar.Result
	GrammarErr error
}

// Both runs DFA and grammar conversion concurrently. The two operations
// fail independently: an error in one never discards the other's result.
func (c *Client) Both(ctx context.Context, spec automaton.Spec) BothResult {
	var res BothResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.DFA, res.DFAErr = c.ToDFA(ctx, spec)
	}()
	go func() {
		defer wg.Done()
		res.Grammar, res.GrammarErr = c.ToGrammar(ctx, spec)
	}()
	wg.Wait()
	return res
}
