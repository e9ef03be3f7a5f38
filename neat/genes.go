package neat

import "fmt"

// NodeType classifies a node gene. It is a closed three-case enum; node
// behavior elsewhere (mutation candidate checks, crossover sweeps) switches
// on it rather than on id sign alone.
type NodeType int

const (
	Sensor NodeType = iota
	Output
	Hidden
)

// String returns the conventional NEAT name for the node type.
func (t NodeType) String() string {
	switch t {
	case Sensor:
		return "SENSOR"
	case Output:
		return "OUTPUT"
	case Hidden:
		return "HIDDEN"
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// NodeGene represents a node (neuron) in a genome.
//
// Input nodes carry strictly negative ids assigned at genome creation,
// output nodes the fixed ids 0..numOutputs-1, and hidden nodes ids
// allocated as max(existing)+1. Ids are never reused.
type NodeGene struct {
	ID         int
	Type       NodeType
	Bias       float64
	Activation string // name of an activation function in the registry
}

// Copy creates a deep copy of the NodeGene.
func (ng *NodeGene) Copy() *NodeGene {
	c := *ng
	return &c
}

// String returns a string representation of the NodeGene.
func (ng *NodeGene) String() string {
	return fmt.Sprintf("NodeGene(ID: %d, Type: %s, Bias: %.3f, Activation: %s)",
		ng.ID, ng.Type, ng.Bias, ng.Activation)
}

// ConnectionKey uniquely identifies a connection gene by its ordered
// (source, destination) node id pair. The pair doubles as the innovation
// identity: two connections with the same endpoints are the same gene,
// no global innovation counter is kept.
type ConnectionKey struct {
	In  int
	Out int
}

// ConnectionGene represents a directed, weighted edge between two nodes.
type ConnectionGene struct {
	Key     ConnectionKey
	Weight  float64
	Enabled bool
}

// Copy creates a deep copy of the ConnectionGene.
func (cg *ConnectionGene) Copy() *ConnectionGene {
	c := *cg
	return &c
}

// String returns a string representation of the ConnectionGene.
func (cg *ConnectionGene) String() string {
	return fmt.Sprintf("ConnGene(%d->%d, Weight: %.3f, Enabled: %t)",
		cg.Key.In, cg.Key.Out, cg.Weight, cg.Enabled)
}
