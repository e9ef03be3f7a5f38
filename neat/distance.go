package neat

import "math"

// DistanceCoefficients weigh the three terms of the genetic distance:
// disjoint connection genes, mismatched activations on shared nodes, and
// average weight difference over shared connections.
type DistanceCoefficients struct {
	Disjoint   float64 // c1
	Activation float64 // c2
	Weight     float64 // c3
}

// DefaultDistanceCoefficients returns the standard coefficients (1, 1, 1).
func DefaultDistanceCoefficients() DistanceCoefficients {
	return DistanceCoefficients{Disjoint: 1.0, Activation: 1.0, Weight: 1.0}
}

// GeneticDistance computes the scalar dissimilarity between two genomes:
//
//	c1*|disjoint|/N + c2*uncommonActivations/|commonNodes| + c3*avgWeightDiff
//
// where disjoint is the symmetric difference of the connection key sets,
// N = max(|genesA|, |genesB|) floored at 1, avgWeightDiff is the mean
// absolute weight difference over shared connection keys (0 when none),
// and uncommonActivations counts shared node ids whose activation tag
// differs.
//
// Two genomes that share no node ids leave the activation term undefined;
// that case returns ErrDegenerateGenomePair instead of dividing by zero.
// It cannot occur between genomes of one run, which all share the declared
// input and output ids.
func GeneticDistance(a, b *Genome, coeffs DistanceCoefficients) (float64, error) {
	disjoint := 0
	common := 0
	weightDiffSum := 0.0
	for key, ga := range a.Connections {
		if gb, ok := b.Connections[key]; ok {
			common++
			weightDiffSum += math.Abs(ga.Weight - gb.Weight)
		} else {
			disjoint++
		}
	}
	for key := range b.Connections {
		if _, ok := a.Connections[key]; !ok {
			disjoint++
		}
	}

	// The weight term's divisor is floored at 1 so an empty intersection
	// yields an average difference of 0.
	nCommon := common
	if nCommon == 0 {
		nCommon = 1
	}
	avgWeightDiff := weightDiffSum / float64(nCommon)

	commonNodes := 0
	uncommonActivations := 0
	for id, na := range a.Nodes {
		nb, ok := b.Nodes[id]
		if !ok {
			continue
		}
		commonNodes++
		if na.Activation != nb.Activation {
			uncommonActivations++
		}
	}
	if commonNodes == 0 {
		return 0, ErrDegenerateGenomePair
	}

	n := len(a.Connections)
	if len(b.Connections) > n {
		n = len(b.Connections)
	}
	if n == 0 {
		n = 1
	}

	distance := coeffs.Disjoint*float64(disjoint)/float64(n) +
		coeffs.Activation*float64(uncommonActivations)/float64(commonNodes) +
		coeffs.Weight*avgWeightDiff
	return distance, nil
}
