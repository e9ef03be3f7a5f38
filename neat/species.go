package neat

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Species is a cluster of genetically similar genomes. Members are shared
// references into the population; the species owns neither them nor its
// representative.
type Species struct {
	ID             int
	Members        []*Genome
	Representative *Genome
}

// NewSpecies creates an empty species with the given id.
func NewSpecies(id int) *Species {
	return &Species{ID: id}
}

// Len returns the number of members.
func (s *Species) Len() int {
	return len(s.Members)
}

// AverageFitness returns the mean raw fitness of the members, or -Inf for
// an empty species.
func (s *Species) AverageFitness() float64 {
	if len(s.Members) == 0 {
		return math.Inf(-1)
	}
	return stat.Mean(s.fitnesses(), nil)
}

// AverageAdjustedFitness returns the mean adjusted fitness of the members,
// or -Inf for an empty species.
func (s *Species) AverageAdjustedFitness() float64 {
	if len(s.Members) == 0 {
		return math.Inf(-1)
	}
	values := make([]float64, len(s.Members))
	for i, m := range s.Members {
		values[i] = m.AdjustedFitness
	}
	return stat.Mean(values, nil)
}

// TotalAdjustedFitness returns the sum of the members' adjusted fitness,
// 0 for an empty species.
func (s *Species) TotalAdjustedFitness() float64 {
	total := 0.0
	for _, m := range s.Members {
		total += m.AdjustedFitness
	}
	return total
}

// BestFitness returns the highest raw fitness among the members, or -Inf
// for an empty species.
func (s *Species) BestFitness() float64 {
	best := math.Inf(-1)
	for _, m := range s.Members {
		if m.Fitness > best {
			best = m.Fitness
		}
	}
	return best
}

func (s *Species) fitnesses() []float64 {
	values := make([]float64, len(s.Members))
	for i, m := range s.Members {
		values[i] = m.Fitness
	}
	return values
}

// Speciator partitions a population into species by genetic distance and
// applies fitness sharing. It carries the species list and the species id
// counter across generations; ids increase monotonically and are never
// reused.
type Speciator struct {
	DistanceThreshold float64
	Coefficients      DistanceCoefficients

	Species []*Species
	nextID  int
}

// NewSpeciator creates a speciator with the given compatibility threshold
// and distance coefficients.
func NewSpeciator(threshold float64, coeffs DistanceCoefficients) *Speciator {
	return &Speciator{
		DistanceThreshold: threshold,
		Coefficients:      coeffs,
	}
}

// Speciate reassigns the whole population to species.
//
// Every existing species first swaps its representative for a uniformly
// random current member and clears its member list. Each genome, in
// population order, then joins the first species (in species-list order)
// whose representative is closer than the threshold; if none matches, a
// new species is created with the genome as sole member and
// representative. Species left empty are dropped. Finally every genome's
// adjusted fitness is recomputed as fitness / species size.
func (sp *Speciator) Speciate(rng *rand.Rand, population []*Genome) error {
	for _, s := range sp.Species {
		s.Representative = s.Members[rng.Intn(len(s.Members))]
		s.Members = s.Members[:0]
	}

	for _, g := range population {
		placed := false
		for _, s := range sp.Species {
			d, err := GeneticDistance(g, s.Representative, sp.Coefficients)
			if err != nil {
				return fmt.Errorf("speciation against species %d: %w", s.ID, err)
			}
			if d < sp.DistanceThreshold {
				s.Members = append(s.Members, g)
				placed = true
				break
			}
		}
		if !placed {
			sp.nextID++
			s := NewSpecies(sp.nextID)
			s.Members = append(s.Members, g)
			s.Representative = g
			sp.Species = append(sp.Species, s)
		}
	}

	// Drop species that attracted no members this pass.
	surviving := sp.Species[:0]
	for _, s := range sp.Species {
		if s.Len() > 0 {
			surviving = append(surviving, s)
		}
	}
	sp.Species = surviving

	// Classic fitness sharing: raw fitness divided by species size.
	for _, s := range sp.Species {
		size := float64(s.Len())
		for _, g := range s.Members {
			g.AdjustedFitness = g.Fitness / size
		}
	}

	return nil
}
