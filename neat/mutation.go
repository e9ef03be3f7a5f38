package neat

import "math/rand"

// Mutation applies parametric and structural mutations to a genome. It is
// applied once per genome per generation; every probability below is its
// own independent coin flip.
type Mutation struct {
	AddNodeProb       float64 // probability of splitting a connection with a new hidden node
	AddConnectionProb float64 // probability of attempting to add a new connection
	MutateWeightProb  float64 // per-connection probability of perturbing the weight
	MutateBiasProb    float64 // per-node probability of perturbing the bias
	ChangeWeightProb  float64 // per-connection probability of redrawing the weight (only tested when perturb did not fire)
	ChangeBiasProb    float64 // per-node probability of redrawing the bias (only tested when perturb did not fire)
}

// NewMutation returns a Mutation with the standard rates.
func NewMutation() *Mutation {
	return &Mutation{
		AddNodeProb:       0.1,
		AddConnectionProb: 0.2,
		MutateWeightProb:  0.8,
		MutateBiasProb:    0.8,
		ChangeWeightProb:  0.05,
		ChangeBiasProb:    0.05,
	}
}

// Mutate applies the full mutation pass to the genome in place.
//
// The perturb/redraw pair is an exclusive two-branch test, not two
// independent checks: the redraw probability is only consulted when the
// perturb draw failed.
func (m *Mutation) Mutate(rng *rand.Rand, g *Genome) {
	for _, id := range g.sortedNodeIDs() {
		if rng.Float64() < m.MutateBiasProb {
			g.Nodes[id].Bias += uniform(rng, -0.5, 0.5)
		} else if rng.Float64() < m.ChangeBiasProb {
			g.Nodes[id].Bias = uniform(rng, -2, 2)
		}
	}

	for _, key := range g.sortedConnectionKeys() {
		if rng.Float64() < m.MutateWeightProb {
			g.Connections[key].Weight += uniform(rng, -0.5, 0.5)
		} else if rng.Float64() < m.ChangeWeightProb {
			g.Connections[key].Weight = uniform(rng, -2, 2)
		}
	}

	if rng.Float64() < m.AddNodeProb {
		m.addNode(rng, g)
	}
	if rng.Float64() < m.AddConnectionProb {
		m.addConnection(rng, g)
	}
}

// addNode splits a uniformly chosen connection with a new hidden node: the
// old gene is disabled and replaced by (source -> new) with weight 1.0 and
// (new -> destination) carrying the old weight. A genome with no
// connections is left untouched.
func (m *Mutation) addNode(rng *rand.Rand, g *Genome) {
	if len(g.Connections) == 0 {
		return
	}

	keys := g.sortedConnectionKeys()
	split := g.Connections[keys[rng.Intn(len(keys))]]
	split.Enabled = false

	newID := g.NewNodeID()
	g.Nodes[newID] = &NodeGene{ID: newID, Type: Hidden, Bias: uniform(rng, -1, 1), Activation: "sigmoid"}

	inKey := ConnectionKey{In: split.Key.In, Out: newID}
	g.Connections[inKey] = &ConnectionGene{Key: inKey, Weight: 1.0, Enabled: true}

	outKey := ConnectionKey{In: newID, Out: split.Key.Out}
	g.Connections[outKey] = &ConnectionGene{Key: outKey, Weight: split.Weight, Enabled: true}
}

// addConnection picks two nodes uniformly at random (with replacement) and
// tries to connect them. Invalid pairings, edges that would close a cycle
// and edges into an input node are silently rejected; the attempt is not
// retried within this call.
func (m *Mutation) addConnection(rng *rand.Rand, g *Genome) {
	ids := g.sortedNodeIDs()
	node1 := g.Nodes[ids[rng.Intn(len(ids))]]
	node2 := g.Nodes[ids[rng.Intn(len(ids))]]

	if node1.Type == Sensor && node2.Type == Sensor {
		return
	}
	if node1.Type == Output && node2.Type == Output {
		return
	}
	if node1.Type == Output && node2.Type == Sensor {
		// Orient the edge forward so the sensor leads.
		node1, node2 = node2, node1
	}
	if node1.Type != Sensor && node2.Type == Sensor {
		return
	}
	if CreatesCycle(g.ConnectionKeys(), ConnectionKey{In: node1.ID, Out: node2.ID}) {
		return
	}
	if node2.ID < 0 || node2.Type == Sensor || containsInt(g.InputIDs, node2.ID) {
		return
	}

	key := ConnectionKey{In: node1.ID, Out: node2.ID}
	if existing, ok := g.Connections[key]; ok {
		existing.Enabled = true
	}
	// The stored gene is replaced unconditionally, so hitting an existing
	// key re-enables the connection and redraws its weight.
	g.Connections[key] = &ConnectionGene{Key: key, Weight: uniform(rng, -2, 2), Enabled: true}
}

func containsInt(s []int, v int) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
