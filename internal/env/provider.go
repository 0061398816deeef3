package env

import "os"

// Provider abstracts the process environment table so the pipeline can run
// against an in-memory fake instead of real process state.
type Provider interface {
	// Lookup returns the value for key and whether the key is set.
	Lookup(key string) (string, bool)

	// Set writes key=value into the environment.
	Set(key, value string) error

	// Snapshot returns a copy of the full environment.
	Snapshot() Env
}

// OS is a Provider backed by the real process environment.
type OS struct{}

func (OS) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (OS) Set(key, value string) error { return os.Setenv(key, value) }

func (OS) Snapshot() Env { return FromGoEnv(os.Environ()) }

// Fake is an in-memory Provider for tests.
type Fake struct {
	vars Env
}

// NewFake creates a Fake seeded with the given variables.
func NewFake(vars Env) *Fake {
	return &Fake{vars: vars.Copy()}
}

func (f *Fake) Lookup(key string) (string, bool) {
	v, ok := f.vars[key]
	return v, ok
}

func (f *Fake) Set(key, value string) error {
	if f.vars == nil {
		f.vars = make(Env)
	}
	f.vars[key] = value
	return nil
}

func (f *Fake) Snapshot() Env {
	return f.vars.Copy()
}
