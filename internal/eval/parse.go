package eval

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"github.com/unrss/envgate/internal/env"
)

// declarePattern matches one exported variable per line of `declare -x`
// output. The value group is optional: bash prints `declare -x NAME` for
// variables exported without an assignment.
var declarePattern = regexp.MustCompile(`^declare -x (\w+)(?:="(.*)")?$`)

// ParseDeclare parses `declare -x` output into a captured environment.
//
// Parsing is best-effort: lines that do not match the statement pattern
// (multi-line values, array declarations) are reported to warn and skipped
// rather than aborting the capture.
func ParseDeclare(r io.Reader, warn io.Writer) (env.Captured, error) {
	if warn == nil {
		warn = io.Discard
	}

	var captured env.Captured

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		m := declarePattern.FindStringSubmatch(line)
		if m == nil {
			fmt.Fprintf(warn, "envgate: cannot parse statement on line %d: %q\n", lineNum, line)
			continue
		}

		if hasValue := strings.Contains(m[0], "="); hasValue {
			captured.Set(m[1], m[2])
		} else {
			captured.Declare(m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan declare output: %w", err)
	}

	return captured, nil
}

// parseEnvOutput parses `env` output using godotenv, which understands the
// same NAME=VALUE line format. godotenv returns a map, so the sequence is
// ordered by name for determinism.
func parseEnvOutput(r io.Reader) (env.Captured, error) {
	vars, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse env output: %w", err)
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	var captured env.Captured
	for _, name := range names {
		captured.Set(name, vars[name])
	}
	return captured, nil
}
