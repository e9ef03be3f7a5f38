package neat

import (
	"math/rand"
	"sort"
)

// Genome represents an individual in the population: a set of node genes
// plus a set of connection genes keyed by their (source, destination) pair.
//
// Structural invariants maintained by the operators:
//   - no connection's destination is an input node,
//   - the enabled subgraph is acyclic (every insertion is preceded by a
//     CreatesCycle check),
//   - node ids and connection keys are unique.
type Genome struct {
	Nodes       map[int]*NodeGene
	Connections map[ConnectionKey]*ConnectionGene
	InputIDs    []int // input node ids in declared order (negative)
	OutputIDs   []int // output node ids in declared order (0..n-1)

	Fitness         float64
	AdjustedFitness float64
}

// NewGenome creates a genome with numInputs sensor nodes (ids -1..-n),
// numOutputs output nodes (ids 0..n-1) and initialConnections random
// input->output connections drawn without replacement. A negative
// initialConnections means fully connected. Biases are uniform in [-1, 1]
// and every node starts with the sigmoid activation.
func NewGenome(rng *rand.Rand, numInputs, numOutputs, initialConnections int) *Genome {
	g := &Genome{
		Nodes:       make(map[int]*NodeGene),
		Connections: make(map[ConnectionKey]*ConnectionGene),
		InputIDs:    make([]int, 0, numInputs),
		OutputIDs:   make([]int, 0, numOutputs),
	}

	for i := 0; i < numInputs; i++ {
		id := -(i + 1)
		g.Nodes[id] = &NodeGene{ID: id, Type: Sensor, Bias: uniform(rng, -1, 1), Activation: "sigmoid"}
		g.InputIDs = append(g.InputIDs, id)
	}
	for o := 0; o < numOutputs; o++ {
		g.Nodes[o] = &NodeGene{ID: o, Type: Output, Bias: uniform(rng, -1, 1), Activation: "sigmoid"}
		g.OutputIDs = append(g.OutputIDs, o)
	}

	if initialConnections < 0 {
		initialConnections = numInputs * numOutputs
	}

	possible := make([]ConnectionKey, 0, numInputs*numOutputs)
	for _, in := range g.InputIDs {
		for _, out := range g.OutputIDs {
			possible = append(possible, ConnectionKey{In: in, Out: out})
		}
	}

	n := min(initialConnections, numInputs*numOutputs)
	for i := 0; i < n; i++ {
		// Sample without replacement.
		idx := rng.Intn(len(possible))
		key := possible[idx]
		possible = append(possible[:idx], possible[idx+1:]...)
		g.Connections[key] = &ConnectionGene{Key: key, Weight: uniform(rng, -1, 1), Enabled: true}
	}

	return g
}

// NewNodeID returns max(existing node ids) + 1. Callers must not assume
// that gaps are ever reused; nodes are never deleted.
func (g *Genome) NewNodeID() int {
	maxID := 0
	first := true
	for id := range g.Nodes {
		if first || id > maxID {
			maxID = id
			first = false
		}
	}
	return maxID + 1
}

// Copy creates a fully independent deep clone of the genome. Crossover and
// child construction rely on there being no aliasing between parent and
// child node/connection maps.
func (g *Genome) Copy() *Genome {
	c := &Genome{
		Nodes:           make(map[int]*NodeGene, len(g.Nodes)),
		Connections:     make(map[ConnectionKey]*ConnectionGene, len(g.Connections)),
		InputIDs:        append([]int(nil), g.InputIDs...),
		OutputIDs:       append([]int(nil), g.OutputIDs...),
		Fitness:         g.Fitness,
		AdjustedFitness: g.AdjustedFitness,
	}
	for id, ng := range g.Nodes {
		c.Nodes[id] = ng.Copy()
	}
	for key, cg := range g.Connections {
		c.Connections[key] = cg.Copy()
	}
	return c
}

// ConnectionKeys returns the keys of all connections, enabled or not.
func (g *Genome) ConnectionKeys() []ConnectionKey {
	keys := make([]ConnectionKey, 0, len(g.Connections))
	for key := range g.Connections {
		keys = append(keys, key)
	}
	return keys
}

// EnabledConnections returns the keys of all enabled connections.
func (g *Genome) EnabledConnections() []ConnectionKey {
	keys := make([]ConnectionKey, 0, len(g.Connections))
	for key, cg := range g.Connections {
		if cg.Enabled {
			keys = append(keys, key)
		}
	}
	return keys
}

// CreatesCycle reports whether committing the test edge to the given edge
// list would close a directed cycle. It expands a visited set from the
// edge's destination one round at a time until either the source is
// reached or a round adds nothing. Adapted from neat-python's graphs
// module.
func CreatesCycle(connections []ConnectionKey, test ConnectionKey) bool {
	i, o := test.In, test.Out
	if i == o {
		return true
	}

	visited := map[int]bool{o: true}
	for {
		added := 0
		for _, c := range connections {
			if visited[c.In] && !visited[c.Out] {
				if c.Out == i {
					return true
				}
				visited[c.Out] = true
				added++
			}
		}
		if added == 0 {
			return false
		}
	}
}

// sortedNodeIDs returns the genome's node ids in ascending order. Map
// iteration order is randomized in Go; the mutation operator walks genes
// in sorted order so that a seeded generator replays identically.
func (g *Genome) sortedNodeIDs() []int {
	ids := make([]int, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// sortedConnectionKeys returns connection keys ordered by (in, out).
func (g *Genome) sortedConnectionKeys() []ConnectionKey {
	keys := g.ConnectionKeys()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].In != keys[j].In {
			return keys[i].In < keys[j].In
		}
		return keys[i].Out < keys[j].Out
	})
	return keys
}

// uniform draws from the half-open interval [low, high).
func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}
