package neat

import (
	"math"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"
)

// FitnessFunc evaluates a single genome and returns its fitness. It must
// be safe to call concurrently with itself when parallel evaluation is
// enabled, and must not retain the genome.
type FitnessFunc func(*Genome) float64

// Selection ranks and filters a population. Select assigns Fitness on
// every input genome as a side effect and returns the survivors that seed
// reproduction, ordered best first.
type Selection interface {
	Select(population []*Genome, parallel bool) []*Genome
}

// EliteSelection evaluates every genome and keeps the top-performing
// fraction of the population.
type EliteSelection struct {
	FitnessFunc FitnessFunc
	EliteRatio  float64 // fraction of the population kept as parents
	MaxWorkers  int     // concurrent evaluations when parallel; defaults to NumCPU
}

// NewEliteSelection creates an elite selection strategy. A non-positive
// eliteRatio falls back to 0.05.
func NewEliteSelection(fitness FitnessFunc, eliteRatio float64) *EliteSelection {
	if eliteRatio <= 0 {
		eliteRatio = 0.05
	}
	return &EliteSelection{FitnessFunc: fitness, EliteRatio: eliteRatio}
}

// Select evaluates fitness for the whole population (optionally across a
// bounded worker pool, one genome per task, joined before returning) and
// returns the ceil(ratio*n)+1 fittest genomes in descending fitness order.
// Populations at or below that size are returned whole, still evaluated.
func (s *EliteSelection) Select(population []*Genome, parallel bool) []*Genome {
	if parallel {
		workers := s.MaxWorkers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		p := pool.New().WithMaxGoroutines(workers)
		for _, g := range population {
			g := g
			p.Go(func() {
				g.Fitness = s.FitnessFunc(g)
			})
		}
		p.Wait()
	} else {
		for _, g := range population {
			g.Fitness = s.FitnessFunc(g)
		}
	}

	nElites := int(math.Ceil(s.EliteRatio*float64(len(population)))) + 1
	if nElites >= len(population) {
		return population
	}

	ranked := append([]*Genome(nil), population...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})
	return ranked[:nElites]
}
