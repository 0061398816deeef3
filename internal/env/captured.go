package env

// Var is a single captured variable. A nil Value represents a variable that
// was declared without an assignment.
type Var struct {
	Name  string
	Value *string
}

// Captured is the ordered sequence of variables reported by sourcing a file.
type Captured []Var

// Set appends a variable with a value.
func (c *Captured) Set(name, value string) {
	*c = append(*c, Var{Name: name, Value: &value})
}

// Declare appends a variable declared without a value.
func (c *Captured) Declare(name string) {
	*c = append(*c, Var{Name: name, Value: nil})
}
