package neat

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneticDistanceSelfIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := NewGenome(rng, 3, 2, -1)

	d, err := GeneticDistance(g, g, DefaultDistanceCoefficients())
	require.NoError(t, err)
	assert.Zero(t, d)

	// A deep copy is equally indistinguishable.
	d, err = GeneticDistance(g, g.Copy(), DefaultDistanceCoefficients())
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestGeneticDistanceFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	a := NewGenome(rng, 2, 1, 0)
	a.Connections[ConnectionKey{In: -1, Out: 0}] = &ConnectionGene{
		Key: ConnectionKey{In: -1, Out: 0}, Weight: 0.5, Enabled: true,
	}
	b := a.Copy()
	b.Connections[ConnectionKey{In: -1, Out: 0}].Weight = 1.5
	b.Connections[ConnectionKey{In: -2, Out: 0}] = &ConnectionGene{
		Key: ConnectionKey{In: -2, Out: 0}, Weight: 2.0, Enabled: true,
	}
	b.Nodes[0].Activation = "relu"

	// One disjoint gene over N = max(1, 2) = 2, one mismatched activation
	// over 3 shared nodes, and an average weight difference of 1.0 over the
	// single shared gene.
	d, err := GeneticDistance(a, b, DefaultDistanceCoefficients())
	require.NoError(t, err)
	assert.InDelta(t, 0.5+1.0/3.0+1.0, d, 1e-9)

	// Symmetric in its arguments.
	rev, err := GeneticDistance(b, a, DefaultDistanceCoefficients())
	require.NoError(t, err)
	assert.InDelta(t, d, rev, 1e-12)
}

func TestGeneticDistanceCoefficientsScaleTerms(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	a := NewGenome(rng, 2, 1, 0)
	b := a.Copy()
	b.Connections[ConnectionKey{In: -1, Out: 0}] = &ConnectionGene{
		Key: ConnectionKey{In: -1, Out: 0}, Weight: 1.0, Enabled: true,
	}

	d, err := GeneticDistance(a, b, DistanceCoefficients{Disjoint: 2.0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-12)
}

func TestGeneticDistanceNoConnections(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	a := NewGenome(rng, 2, 2, 0)
	b := NewGenome(rng, 2, 2, 0)

	d, err := GeneticDistance(a, b, DefaultDistanceCoefficients())
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestGeneticDistanceDegeneratePair(t *testing.T) {
	a := &Genome{Nodes: map[int]*NodeGene{
		1: {ID: 1, Type: Hidden, Activation: "sigmoid"},
	}, Connections: map[ConnectionKey]*ConnectionGene{}}
	b := &Genome{Nodes: map[int]*NodeGene{
		2: {ID: 2, Type: Hidden, Activation: "sigmoid"},
	}, Connections: map[ConnectionKey]*ConnectionGene{}}

	_, err := GeneticDistance(a, b, DefaultDistanceCoefficients())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateGenomePair))
}
