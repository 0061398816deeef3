// Package loader runs the envgate pipeline: resolve an .envrc file, verify it
// against the allow-list, capture its environment, and reconcile the result
// with the current environment.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/unrss/envgate/internal/allow"
	"github.com/unrss/envgate/internal/env"
	"github.com/unrss/envgate/internal/envrc"
	"github.com/unrss/envgate/internal/eval"
)

// ErrStreamSource rejects in-memory sources. The trust model depends on a
// stable on-disk artifact: arbitrary text has no path to fingerprint against
// the allow-list, so executing it can never be gated.
var ErrStreamSource = errors.New("executing shell commands from a stream is not safe")

// Options configures a single Values or Load call.
type Options struct {
	// Path is the .envrc to use. Empty means search upward from the
	// current working directory.
	Path string

	// Source, if non-nil, is an in-memory script. It is always rejected
	// with ErrStreamSource; the field exists so callers get a deliberate
	// error instead of silently ignoring the stream.
	Source io.Reader

	// Verbose logs a note when no .envrc file is found.
	Verbose bool

	// Override replaces variables that are already set. Only Load uses it.
	Override bool
}

// Loader wires the pipeline stages together.
type Loader struct {
	store   *allow.Store
	eval    *eval.Evaluator
	current env.Provider
	log     io.Writer
}

// New creates a Loader. A nil log discards verbose output.
func New(store *allow.Store, evaluator *eval.Evaluator, current env.Provider, log io.Writer) *Loader {
	if log == nil {
		log = io.Discard
	}
	return &Loader{store: store, eval: evaluator, current: current, log: log}
}

// Values resolves, verifies, and captures an .envrc file, returning the
// reconciled mapping of effective changes. The current environment is not
// modified.
//
// An empty resolution (no file anywhere up the tree) yields an empty result,
// not an error. An explicit path that cannot be read, an untrusted file, and
// a failing subprocess are all errors.
func (l *Loader) Values(opts Options) (env.Result, error) {
	path, err := l.resolve(opts)
	if err != nil {
		return nil, err
	}
	if path == "" {
		if opts.Verbose {
			fmt.Fprintln(l.log, "envgate: .envrc file missing, nothing will be loaded")
		}
		return env.Result{}, nil
	}

	rc, err := envrc.NewRC(path)
	if err != nil {
		return nil, err
	}
	if !rc.Exists {
		return nil, fmt.Errorf("read file %s: %w", rc.Path, fs.ErrNotExist)
	}

	allowed, err := l.store.IsAllowed(rc)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &allow.NotAllowedError{Path: rc.Path}
	}

	captured, err := l.eval.Capture(rc)
	if err != nil {
		return nil, err
	}

	return env.Diff(captured, l.current), nil
}

// Load runs Values and applies the result to the current environment.
//
// Existing variables are kept unless opts.Override is set. The returned bool
// reports whether the reconciled diff was non-empty, not whether any write
// survived the override guard; an all-preexisting result with override off
// still reports true.
func (l *Loader) Load(opts Options) (bool, error) {
	result, err := l.Values(opts)
	if err != nil {
		return false, err
	}

	if err := env.Apply(result, l.current, opts.Override); err != nil {
		return false, fmt.Errorf("apply environment: %w", err)
	}

	return len(result) > 0, nil
}

// resolve turns Options into a concrete path, or "" when nothing was found.
func (l *Loader) resolve(opts Options) (string, error) {
	if opts.Source != nil {
		return "", ErrStreamSource
	}
	if opts.Path != "" {
		return opts.Path, nil
	}
	return envrc.Find(envrc.DefaultName, "", false)
}
