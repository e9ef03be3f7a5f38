// Package nn builds executable phenotypes from genomes. Only strictly
// feed-forward networks are supported; the genome's enabled subgraph must
// be acyclic, which the mutation operator guarantees.
package nn

import (
	"fmt"
	"sort"

	"github.com/baldhumanity/neatevo/neat"
)

// Link is one incoming connection of a node during evaluation: the source
// node id and the connection weight.
type Link struct {
	Source int
	Weight float64
}

// nodeEval is one step of the evaluation schedule. Nodes appear in layer
// order, so all of a node's link sources are resolved before it runs.
type nodeEval struct {
	Node     int
	Activate neat.ActivationType
	Bias     float64
	Links    []Link
}

// FeedForwardNetwork is the phenotype of a genome: a dependency-ordered
// evaluation schedule over the genome's enabled connections.
type FeedForwardNetwork struct {
	InputIDs  []int
	OutputIDs []int
	nodeEvals []nodeEval
}

// RequiredForOutput collects the ids of the nodes whose state is required
// to compute the final network outputs: a backward fixed-point closure
// from the output set over the given edges, excluding input nodes.
// Derived from neat-python's graphs module.
func RequiredForOutput(inputs, outputs []int, connections []neat.ConnectionKey) map[int]bool {
	inputSet := make(map[int]bool, len(inputs))
	for _, id := range inputs {
		inputSet[id] = true
	}

	required := make(map[int]bool, len(outputs))
	s := make(map[int]bool, len(outputs))
	for _, id := range outputs {
		required[id] = true
		s[id] = true
	}

	for {
		// Nodes not in s whose output is consumed by a node in s.
		t := make(map[int]bool)
		for _, c := range connections {
			if s[c.Out] && !s[c.In] {
				t[c.In] = true
			}
		}
		if len(t) == 0 {
			break
		}

		added := false
		for id := range t {
			if !inputSet[id] {
				required[id] = true
				added = true
			}
		}
		if !added {
			break
		}

		for id := range t {
			s[id] = true
		}
	}

	return required
}

// FeedForwardLayers partitions the required nodes into layers whose
// members can be evaluated in parallel: starting from the inputs, each
// round keeps the candidate nodes that are required and whose entire
// incoming edge set is already resolved. Nodes never reachable, or never
// fully ready, are excluded entirely; this silently drops nodes that
// participate only in disabled connections.
func FeedForwardLayers(inputs, outputs []int, connections []neat.ConnectionKey) [][]int {
	required := RequiredForOutput(inputs, outputs, connections)

	var layers [][]int
	s := make(map[int]bool, len(inputs))
	for _, id := range inputs {
		s[id] = true
	}

	for {
		// Candidates: destinations of an edge out of s, not yet in s.
		candidates := make(map[int]bool)
		for _, c := range connections {
			if s[c.In] && !s[c.Out] {
				candidates[c.Out] = true
			}
		}

		var layer []int
		for id := range candidates {
			if !required[id] {
				continue
			}
			ready := true
			for _, c := range connections {
				if c.Out == id && !s[c.In] {
					ready = false
					break
				}
			}
			if ready {
				layer = append(layer, id)
			}
		}
		if len(layer) == 0 {
			break
		}

		// Order within a layer is unspecified; sort for reproducibility.
		sort.Ints(layer)
		layers = append(layers, layer)
		for _, id := range layer {
			s[id] = true
		}
	}

	return layers
}

// Create builds a runnable feed-forward network from the genome's enabled
// connections.
func Create(g *neat.Genome) (*FeedForwardNetwork, error) {
	connections := g.EnabledConnections()
	// Fixed link order keeps float summation, and thus outputs, identical
	// across builds of the same genome.
	sort.Slice(connections, func(i, j int) bool {
		if connections[i].In != connections[j].In {
			return connections[i].In < connections[j].In
		}
		return connections[i].Out < connections[j].Out
	})
	layers := FeedForwardLayers(g.InputIDs, g.OutputIDs, connections)

	var evals []nodeEval
	for _, layer := range layers {
		for _, node := range layer {
			var links []Link
			for _, key := range connections {
				if key.Out == node {
					links = append(links, Link{Source: key.In, Weight: g.Connections[key].Weight})
				}
			}

			ng := g.Nodes[node]
			fn, err := neat.GetActivation(ng.Activation)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", node, err)
			}
			evals = append(evals, nodeEval{
				Node:     node,
				Activate: fn,
				Bias:     ng.Bias,
				Links:    links,
			})
		}
	}

	return &FeedForwardNetwork{
		InputIDs:  append([]int(nil), g.InputIDs...),
		OutputIDs: append([]int(nil), g.OutputIDs...),
		nodeEvals: evals,
	}, nil
}

// Activate computes the network outputs for the given input vector, which
// must match the declared input count exactly. Outputs are returned in
// declared output-node order; an output node that no scheduled node feeds
// keeps its seed value of 0.
func (n *FeedForwardNetwork) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != len(n.InputIDs) {
		return nil, &neat.InputLengthError{Expected: len(n.InputIDs), Actual: len(inputs)}
	}

	values := make(map[int]float64, len(n.InputIDs)+len(n.OutputIDs)+len(n.nodeEvals))
	for _, id := range n.InputIDs {
		values[id] = 0.0
	}
	for _, id := range n.OutputIDs {
		values[id] = 0.0
	}
	for i, id := range n.InputIDs {
		values[id] = inputs[i]
	}

	for _, ev := range n.nodeEvals {
		sum := ev.Bias
		for _, link := range ev.Links {
			sum += values[link.Source] * link.Weight
		}
		values[ev.Node] = ev.Activate(sum)
	}

	outputs := make([]float64, len(n.OutputIDs))
	for i, id := range n.OutputIDs {
		outputs[i] = values[id]
	}
	return outputs, nil
}
