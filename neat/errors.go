package neat

import (
	"errors"
	"fmt"
)

// ErrDegenerateGenomePair is returned by GeneticDistance when two genomes
// share no node ids, leaving the activation term without a divisor. The
// speciation pass that hits it is treated as failed rather than silently
// coercing the distance.
var ErrDegenerateGenomePair = errors.New("degenerate genome pair: no common node ids")

// ErrDegeneratePopulation is returned by reproduction when the shifted
// adjusted-fitness total is not positive (for example every fitness is NaN
// or no species survived speciation), which would make the per-species
// breed shares undefined. The generation is treated as failed.
var ErrDegeneratePopulation = errors.New("degenerate population: non-positive adjusted fitness total")

// InputLengthError reports a phenotype activation called with an input
// vector whose length does not match the network's declared input count.
type InputLengthError struct {
	Expected int
	Actual   int
}

func (e *InputLengthError) Error() string {
	return fmt.Sprintf("expected %d inputs, got %d", e.Expected, e.Actual)
}
