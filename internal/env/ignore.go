package env

// ignoredKeys are shell bookkeeping variables excluded from reconciliation.
// Sourcing any file in a subshell perturbs them, so they carry no signal.
var ignoredKeys = map[string]bool{
	"OLDPWD": true, // Previous working directory
	"PWD":    true, // Current working directory
	"SHLVL":  true, // Shell nesting level
	"_":      true, // Last command executed
}

// Ignored returns true for env vars that are excluded from reconciliation.
func Ignored(key string) bool {
	return ignoredKeys[key]
}
