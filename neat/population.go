package neat

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Observer is a read-only consumer of per-generation progress. It must not
// modify the genomes or species it is handed.
type Observer interface {
	Report(generation int, best *Genome, species []*Species)
}

// Population drives the NEAT evolutionary process: it owns the genomes,
// the operators, and the run's random generator, and runs the strictly
// synchronous per-generation pipeline evaluate -> speciate -> share
// fitness -> reproduce.
type Population struct {
	Config    *Config
	Selection Selection
	Crossover *Crossover
	Mutation  *Mutation
	Speciator *Speciator

	Genomes    []*Genome
	Winner     *Genome // best genome of the most recent generation
	Generation int

	observers []Observer
	rng       *rand.Rand
}

// NewPopulation creates a population driver from a validated config and a
// selection strategy. The generator is seeded from Config.Neat.Seed, or
// from the clock when the seed is zero.
func NewPopulation(config *Config, selection Selection) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Neat.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Population{
		Config:    config,
		Selection: selection,
		Crossover: NewCrossover(),
		Mutation:  config.Mutation.NewMutation(),
		Speciator: NewSpeciator(config.Speciation.DistanceThreshold, config.Speciation.Coefficients()),
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// AddObserver registers a progress observer. Observers are notified once
// per generation, after speciation and before reproduction.
func (p *Population) AddObserver(o Observer) {
	p.observers = append(p.observers, o)
}

// Run seeds a fresh population and evolves it for the configured number of
// generations, or until the fitness threshold is met. It returns the best
// genome seen in the final (or stopping) generation.
func (p *Population) Run() (*Genome, error) {
	cfg := &p.Config.Neat

	p.Genomes = make([]*Genome, cfg.PopSize)
	for i := range p.Genomes {
		p.Genomes[i] = NewGenome(p.rng, cfg.NumInputs, cfg.NumOutputs, cfg.InitialConnections)
	}
	// Initial fitness pass; the survivors are discarded, only the fitness
	// side effect matters here.
	p.Selection.Select(p.Genomes, cfg.Parallel)

	for gen := 1; gen <= cfg.Generations; gen++ {
		p.Generation = gen

		if err := p.Speciator.Speciate(p.rng, p.Genomes); err != nil {
			return p.Winner, fmt.Errorf("generation %d: %w", gen, err)
		}

		p.Winner = p.bestGenome()

		for _, o := range p.observers {
			o.Report(gen, p.Winner, p.Speciator.Species)
		}

		if !cfg.NoFitnessTermination && p.Winner.Fitness >= cfg.FitnessThreshold {
			return p.Winner, nil
		}

		if gen < cfg.Generations {
			if err := p.reproduce(); err != nil {
				return p.Winner, fmt.Errorf("generation %d: %w", gen, err)
			}
		}
	}

	return p.Winner, nil
}

// bestGenome returns the highest-fitness genome of the current population.
func (p *Population) bestGenome() *Genome {
	best := p.Genomes[0]
	for _, g := range p.Genomes[1:] {
		if g.Fitness > best.Fitness {
			best = g
		}
	}
	return best
}

// reproduce refills the population from the current species. Each species
// breeds a share of the population proportional to its shifted adjusted
// fitness; within a species the selected survivors carry over directly and
// the remainder are crossover+mutation children of random survivor pairs.
func (p *Population) reproduce() error {
	species := p.Speciator.Species
	if len(species) == 0 {
		return ErrDegeneratePopulation
	}

	// Shift adjusted fitness so every member contributes at least 1 to the
	// total; breed shares would be meaningless with negative values.
	shift := math.Inf(1)
	for _, s := range species {
		for _, m := range s.Members {
			if m.AdjustedFitness < shift {
				shift = m.AdjustedFitness
			}
		}
	}
	shift -= 1

	total := 0.0
	for _, s := range species {
		total += s.TotalAdjustedFitness() - shift*float64(s.Len())
	}
	if !(total > 0) {
		// Catches both a zero total and NaN fitness values.
		return ErrDegeneratePopulation
	}

	popSize := p.Config.Neat.PopSize
	next := make([]*Genome, 0, popSize)

	for _, s := range species {
		share := (s.TotalAdjustedFitness() - shift*float64(s.Len())) / total
		breed := int(math.Round(share * float64(popSize)))

		// Selection re-evaluates fitness on the species members and
		// returns the survivors, best first.
		selected := p.Selection.Select(s.Members, p.Config.Neat.Parallel)

		for i := 0; i < breed; i++ {
			if i < len(selected) {
				next = append(next, selected[i])
				continue
			}
			parent1 := selected[p.rng.Intn(len(selected))]
			parent2 := selected[p.rng.Intn(len(selected))]
			child := p.Crossover.Crossover(p.rng, parent1, parent2)
			p.Mutation.Mutate(p.rng, child)
			next = append(next, child)
		}
	}

	// Rounding the per-species breed sizes can leave the population a few
	// genomes off the configured size; the shares renormalize next pass.
	p.Genomes = next
	return nil
}
