// Package eval captures the environment produced by sourcing an .envrc file
// in a bash subprocess.
package eval

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/unrss/envgate/internal/env"
	"github.com/unrss/envgate/internal/envrc"
)

// Mode selects how the subprocess reports its environment.
type Mode string

const (
	// ModeDeclare runs `declare -x` and parses its output line by line.
	// This is the canonical mode.
	ModeDeclare Mode = "declare"

	// ModeEnv runs `env` and parses the NAME=VALUE output with godotenv.
	ModeEnv Mode = "env"
)

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDeclare, ModeEnv:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown capture mode: %q (supported: declare, env)", s)
	}
}

// ExitError indicates the subprocess exited non-zero while sourcing a file.
type ExitError struct {
	Path   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("failed to source %s (exit status %d): %s", e.Path, e.Code, e.Stderr)
	}
	return fmt.Sprintf("failed to source %s (exit status %d)", e.Path, e.Code)
}

// Evaluator executes .envrc files and captures the resulting environment.
//
// Execution is deliberately unrestricted: the file runs as real shell code in
// its own directory, with the subprocess inheriting the caller's environment.
// Trust must be established before calling Capture.
type Evaluator struct {
	bashPath string    // Path to bash binary
	mode     Mode      // Output capture mode
	warn     io.Writer // Destination for non-fatal parse warnings
}

// New creates an Evaluator.
//
// bashPath: path to bash (if empty, uses exec.LookPath("bash")).
// mode: output capture mode (if empty, ModeDeclare).
// warn: destination for parse warnings (if nil, warnings are discarded).
func New(bashPath string, mode Mode, warn io.Writer) (*Evaluator, error) {
	if bashPath == "" {
		var err error
		bashPath, err = exec.LookPath("bash")
		if err != nil {
			return nil, fmt.Errorf("find bash: %w", err)
		}
	}

	if mode == "" {
		mode = ModeDeclare
	}

	if warn == nil {
		warn = io.Discard
	}

	return &Evaluator{bashPath: bashPath, mode: mode, warn: warn}, nil
}

// Capture sources the RC file in a subprocess and parses the environment it
// reports. The call blocks until the subprocess exits; a non-zero exit is
// returned as an ExitError carrying the captured stderr.
func (e *Evaluator) Capture(rc *envrc.RC) (env.Captured, error) {
	if !rc.Exists {
		return nil, fmt.Errorf("rc file does not exist: %s", rc.Path)
	}

	dump := "declare -x"
	if e.mode == ModeEnv {
		dump = "env"
	}
	script := fmt.Sprintf("cd %q && source %q && %s", rc.Dir, rc.Path, dump)

	cmd := exec.Command(e.bashPath, "-c", script) //nolint:gosec // intentional shell evaluation

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Path:   rc.Path,
				Code:   exitErr.ExitCode(),
				Stderr: stderr.String(),
			}
		}
		return nil, fmt.Errorf("run bash: %w", err)
	}

	if e.mode == ModeEnv {
		return parseEnvOutput(&stdout)
	}
	return ParseDeclare(&stdout, e.warn)
}
