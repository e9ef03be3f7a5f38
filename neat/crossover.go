package neat

import "math/rand"

// Crossover recombines two parent genomes into a child genome. Neither
// parent is modified; every inherited gene is a deep copy.
type Crossover struct{}

// NewCrossover returns a Crossover operator.
func NewCrossover() *Crossover {
	return &Crossover{}
}

// Crossover produces a child from two parents. The parent with the
// strictly greater fitness acts as primary; on an exact tie the first
// argument stays primary.
//
// The child is a full copy of the primary (nodes and all) with its
// connection map rebuilt:
//   - keys present in both parents are inherited from either with equal
//     probability,
//   - keys unique to the primary are always inherited,
//   - keys unique to the secondary are inherited only when their source id
//     is non-negative and both endpoints already exist in the primary's
//     node set.
//
// A final sweep deletes any connection whose destination is an input node,
// regardless of how the gene arrived.
func (c *Crossover) Crossover(rng *rand.Rand, parent1, parent2 *Genome) *Genome {
	if parent1.Fitness < parent2.Fitness {
		parent1, parent2 = parent2, parent1
	}
	// parent1 is now the fitter parent.
	child := parent1.Copy()
	child.Connections = make(map[ConnectionKey]*ConnectionGene, len(parent1.Connections))

	// Sorted key order keeps the rng draw sequence stable across runs.
	for _, key := range parent1.sortedConnectionKeys() {
		gene1 := parent1.Connections[key]
		if gene2, ok := parent2.Connections[key]; ok {
			// Homologous gene: inherit from either parent with p = 0.5.
			if rng.Float64() < 0.5 {
				child.Connections[key] = gene1.Copy()
			} else {
				child.Connections[key] = gene2.Copy()
			}
		} else {
			// Unique to the fitter parent: always inherit.
			child.Connections[key] = gene1.Copy()
		}
	}

	for key, gene2 := range parent2.Connections {
		if _, ok := parent1.Connections[key]; ok {
			continue
		}
		_, hasIn := parent1.Nodes[key.In]
		_, hasOut := parent1.Nodes[key.Out]
		if key.In >= 0 && hasIn && hasOut {
			child.Connections[key] = gene2.Copy()
		}
	}

	// Safety net: no connection may lead into an input node.
	for key := range child.Connections {
		if key.Out < 0 || containsInt(child.InputIDs, key.Out) {
			delete(child.Connections, key)
		}
	}

	return child
}
