package coins

import "fmt"

var constructors = []struct {
	name  string
	build func(...Option) Solver
}{
	{NameGreedy, NewGreedy},
	{NameBruteForce, NewBruteForce},
	{NameMemoized, NewMemoized},
	{NameBottomUp, NewBottomUp},
}

// Names lists every strategy in order of increasing sophistication.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for _, c := range constructors {
		names = append(names, c.name)
	}
	return names
}

// Lookup builds the strategy registered under name.
func Lookup(name string, opts ...Option) (Solver, error) {
	for _, c := range constructors {
		if c.name == name {
			return c.build(opts...), nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}

// All builds every strategy with the same options.
func All(opts ...Option) []Solver {
	solvers := make([]Solver, 0, len(constructors))
	for _, c := range constructors {
		solvers = append(solvers, c.build(opts...))
	}
	return solvers
}
