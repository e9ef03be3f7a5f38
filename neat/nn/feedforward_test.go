package nn

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neatevo/neat"
)

// buildGenome assembles a genome from explicit genes, bypassing the random
// constructor.
func buildGenome(inputs, outputs []int, nodes []*neat.NodeGene, conns []*neat.ConnectionGene) *neat.Genome {
	g := &neat.Genome{
		Nodes:       map[int]*neat.NodeGene{},
		Connections: map[neat.ConnectionKey]*neat.ConnectionGene{},
		InputIDs:    inputs,
		OutputIDs:   outputs,
	}
	for _, n := range nodes {
		g.Nodes[n.ID] = n
	}
	for _, c := range conns {
		g.Connections[c.Key] = c
	}
	return g
}

func TestActivateSingleConnection(t *testing.T) {
	g := buildGenome(
		[]int{-1}, []int{0},
		[]*neat.NodeGene{
			{ID: -1, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: 0, Type: neat.Output, Bias: 0.5, Activation: "sigmoid"},
		},
		[]*neat.ConnectionGene{
			{Key: neat.ConnectionKey{In: -1, Out: 0}, Weight: 1.5, Enabled: true},
		},
	)

	net, err := Create(g)
	require.NoError(t, err)

	// sum = 0.5 + 1.0*1.5 = 2.0, sigmoid(2.0) = 1/(1+e^-10).
	out, err := net.Activate([]float64{1.0})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.InDelta(t, 1.0/(1.0+math.Exp(-10)), out[0], 1e-9)
}

func TestActivateHiddenLayer(t *testing.T) {
	g := buildGenome(
		[]int{-1, -2}, []int{0},
		[]*neat.NodeGene{
			{ID: -1, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: -2, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: 0, Type: neat.Output, Bias: 0.0, Activation: "relu"},
			{ID: 1, Type: neat.Hidden, Bias: 1.0, Activation: "relu"},
		},
		[]*neat.ConnectionGene{
			{Key: neat.ConnectionKey{In: -1, Out: 1}, Weight: 2.0, Enabled: true},
			{Key: neat.ConnectionKey{In: -2, Out: 1}, Weight: 3.0, Enabled: true},
			{Key: neat.ConnectionKey{In: 1, Out: 0}, Weight: 0.5, Enabled: true},
		},
	)

	net, err := Create(g)
	require.NoError(t, err)

	// hidden = relu(1 + 2*1 + 3*2) = 9, output = relu(0.5*9) = 4.5.
	out, err := net.Activate([]float64{1.0, 2.0})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, out[0], 1e-12)
}

func TestActivateInputLengthError(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	net, err := Create(neat.NewGenome(rng, 3, 1, -1))
	require.NoError(t, err)

	_, err = net.Activate([]float64{1.0})
	require.Error(t, err)
	var lenErr *neat.InputLengthError
	require.True(t, errors.As(err, &lenErr))
	assert.Equal(t, 3, lenErr.Expected)
	assert.Equal(t, 1, lenErr.Actual)
}

func TestActivateUnfedOutputIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := neat.NewGenome(rng, 2, 2, 0) // no connections at all

	net, err := Create(g)
	require.NoError(t, err)

	out, err := net.Activate([]float64{1.0, 1.0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0, 0.0}, out)
}

func TestCreateUnknownActivation(t *testing.T) {
	g := buildGenome(
		[]int{-1}, []int{0},
		[]*neat.NodeGene{
			{ID: -1, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: 0, Type: neat.Output, Activation: "softplus"},
		},
		[]*neat.ConnectionGene{
			{Key: neat.ConnectionKey{In: -1, Out: 0}, Weight: 1.0, Enabled: true},
		},
	)
	_, err := Create(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node 0")
}

func TestCreateIgnoresDisabledConnections(t *testing.T) {
	g := buildGenome(
		[]int{-1}, []int{0},
		[]*neat.NodeGene{
			{ID: -1, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: 0, Type: neat.Output, Bias: 0.0, Activation: "relu"},
			{ID: 1, Type: neat.Hidden, Bias: 5.0, Activation: "relu"},
		},
		[]*neat.ConnectionGene{
			{Key: neat.ConnectionKey{In: -1, Out: 0}, Weight: 1.0, Enabled: true},
			// Node 1 participates only in disabled connections and must not
			// appear in the schedule.
			{Key: neat.ConnectionKey{In: -1, Out: 1}, Weight: 1.0, Enabled: false},
			{Key: neat.ConnectionKey{In: 1, Out: 0}, Weight: 1.0, Enabled: false},
		},
	)

	net, err := Create(g)
	require.NoError(t, err)
	require.Len(t, net.nodeEvals, 1)
	assert.Equal(t, 0, net.nodeEvals[0].Node)

	out, err := net.Activate([]float64{2.0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out[0], 1e-12)
}

func TestCreateStableLinkOrder(t *testing.T) {
	// Summing incoming links in a build-dependent order would let the same
	// genome evaluate differently across builds when weight magnitudes
	// spread: (1e16 + 1.0) - 1e16 != (1e16 - 1e16) + 1.0.
	g := buildGenome(
		[]int{-1, -2, -3}, []int{0},
		[]*neat.NodeGene{
			{ID: -1, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: -2, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: -3, Type: neat.Sensor, Activation: "sigmoid"},
			{ID: 0, Type: neat.Output, Bias: 0.0, Activation: "relu"},
		},
		[]*neat.ConnectionGene{
			{Key: neat.ConnectionKey{In: -1, Out: 0}, Weight: 1e16, Enabled: true},
			{Key: neat.ConnectionKey{In: -2, Out: 0}, Weight: 1.0, Enabled: true},
			{Key: neat.ConnectionKey{In: -3, Out: 0}, Weight: -1e16, Enabled: true},
		},
	)

	first := math.NaN()
	for i := 0; i < 200; i++ {
		net, err := Create(g)
		require.NoError(t, err)
		out, err := net.Activate([]float64{1.0, 1.0, 1.0})
		require.NoError(t, err)
		if i == 0 {
			first = out[0]
			continue
		}
		require.Equal(t, first, out[0], "build %d produced a different output", i)
	}
}

func TestRequiredForOutput(t *testing.T) {
	inputs := []int{-1, -2}
	outputs := []int{0}
	connections := []neat.ConnectionKey{
		{In: -1, Out: 1},
		{In: 1, Out: 0},
		{In: -2, Out: 2}, // node 2 feeds nothing
	}

	required := RequiredForOutput(inputs, outputs, connections)
	assert.True(t, required[0])
	assert.True(t, required[1])
	assert.False(t, required[2])
	assert.False(t, required[-1])
	assert.False(t, required[-2])
}

func TestFeedForwardLayers(t *testing.T) {
	inputs := []int{-1, -2}
	outputs := []int{0}
	connections := []neat.ConnectionKey{
		{In: -1, Out: 1},
		{In: -2, Out: 1},
		{In: -2, Out: 2},
		{In: 1, Out: 2},
		{In: 2, Out: 0},
	}

	layers := FeedForwardLayers(inputs, outputs, connections)
	require.Equal(t, [][]int{{1}, {2}, {0}}, layers)
}

func TestFeedForwardLayersParallelNodes(t *testing.T) {
	inputs := []int{-1}
	outputs := []int{0}
	connections := []neat.ConnectionKey{
		{In: -1, Out: 1},
		{In: -1, Out: 2},
		{In: 1, Out: 0},
		{In: 2, Out: 0},
	}

	layers := FeedForwardLayers(inputs, outputs, connections)
	require.Equal(t, [][]int{{1, 2}, {0}}, layers)
}

func TestFeedForwardLayersPredecessorsResolved(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	g := neat.NewGenome(rng, 3, 2, -1)
	m := neat.NewMutation()
	m.AddNodeProb = 1.0
	m.AddConnectionProb = 1.0
	for i := 0; i < 20; i++ {
		m.Mutate(rng, g)
	}

	connections := g.EnabledConnections()
	layers := FeedForwardLayers(g.InputIDs, g.OutputIDs, connections)

	resolved := map[int]bool{}
	for _, id := range g.InputIDs {
		resolved[id] = true
	}
	for _, layer := range layers {
		for _, node := range layer {
			for _, c := range connections {
				if c.Out == node {
					assert.True(t, resolved[c.In], "node %d scheduled before source %d", node, c.In)
				}
			}
		}
		for _, node := range layer {
			resolved[node] = true
		}
	}
}
