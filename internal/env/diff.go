package env

// Result maps variable names to the values that should be written into the
// current environment. A nil value means the variable was declared without an
// assignment; Apply never writes those.
type Result map[string]*string

// Diff reconciles a captured environment against the current one.
//
// Bookkeeping keys (OLDPWD, PWD, SHLVL, _) are dropped, then only pairs whose
// value differs from the current environment are kept; a key absent from the
// current environment counts as different. Later captured entries for the
// same name win, matching the order bash reports them.
func Diff(captured Captured, current Provider) Result {
	result := make(Result)
	for _, v := range captured {
		if Ignored(v.Name) {
			continue
		}

		cur, ok := current.Lookup(v.Name)
		if v.Value == nil {
			// Declared without assignment: differs only if the key is set.
			if ok {
				result[v.Name] = nil
			}
			continue
		}
		if !ok || cur != *v.Value {
			value := *v.Value
			result[v.Name] = &value
		}
	}
	return result
}

// Apply writes a reconciliation result into the environment.
//
// Keys already set are skipped unless override is true. Nil values are never
// written. Writes happen key by key with no rollback; entries applied before
// an error remain set.
func Apply(result Result, current Provider, override bool) error {
	for key, value := range result {
		if _, exists := current.Lookup(key); exists && !override {
			continue
		}
		if value == nil {
			continue
		}
		if err := current.Set(key, *value); err != nil {
			return err
		}
	}
	return nil
}
