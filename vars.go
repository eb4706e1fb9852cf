package powercalc

import "sort"

// Vars is the variable store of a session. Names are case-sensitive. Vars is
// not safe for concurrent use.
type Vars struct {
	names map[string]float64
}

// NewVars creates an empty variable store.
func NewVars() *Vars {
	return &Vars{names: make(map[string]float64)}
}

// Set assigns a variable, creating it if needed.
func (v *Vars) Set(name string, x float64) {
	v.names[name] = x
}

// Declare creates a variable with value 0 unless it already exists.
func (v *Vars) Declare(name string) {
	if _, ok := v.names[name]; !ok {
		v.names[name] = 0
	}
}

// Lookup returns the value of a variable and whether it is set.
func (v *Vars) Lookup(name string) (float64, bool) {
	x, ok := v.names[name]
	return x, ok
}

// Len returns the number of variables.
func (v *Vars) Len() int {
	return len(v.names)
}

// Names returns the variable names in sorted order.
func (v *Vars) Names() []string {
	r := make([]string, 0, len(v.names))
	for k := range v.names {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
