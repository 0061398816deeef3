// Package shell formats reconciliation results as bash commands.
package shell

import (
	"fmt"
	"slices"
	"strings"

	"github.com/unrss/envgate/internal/env"
)

// Export formats a reconciliation result as bash export statements, suitable
// for eval'ing in a shell. Variables without a value are exported bare.
// Keys are sorted for deterministic output.
func Export(result env.Result) string {
	if len(result) == 0 {
		return ""
	}

	keys := make([]string, 0, len(result))
	for k := range result {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, key := range keys {
		value := result[key]
		if value == nil {
			fmt.Fprintf(&sb, "export %s;\n", key)
		} else {
			fmt.Fprintf(&sb, "export %s=\"%s\";\n", key, BashEscape(*value))
		}
	}

	return sb.String()
}
