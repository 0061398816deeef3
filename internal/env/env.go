// Package env provides environment variable types and reconciliation for envgate.
package env

import "strings"

// Env represents environment variables as a map.
type Env map[string]string

// FromGoEnv creates an Env from os.Environ() format ([]string{"KEY=value"}).
// Entries without an "=" are ignored. Empty values are preserved.
func FromGoEnv(environ []string) Env {
	env := make(Env, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		env[key] = value
	}
	return env
}

// Copy returns a deep copy of the environment.
func (e Env) Copy() Env {
	if e == nil {
		return nil
	}
	cp := make(Env, len(e))
	for k, v := range e {
		cp[k] = v
	}
	return cp
}
