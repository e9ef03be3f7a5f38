package neat

import (
	"fmt"
	"math"
)

// ActivationType is the signature of a node activation function.
type ActivationType func(z float64) float64

// ActivationFunctions maps function names to the actual activation
// functions, so node genes can reference activations by tag.
var ActivationFunctions = map[string]ActivationType{
	"sigmoid": Sigmoid,
	"relu":    ReLU,
}

// GetActivation retrieves an activation function by name.
func GetActivation(name string) (ActivationType, error) {
	if fn, ok := ActivationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown activation function: %s", name)
}

// Sigmoid is the steepened logistic function 1/(1+exp(-5z)), with the
// scaled argument clamped to [-100, 100] before exponentiation.
func Sigmoid(z float64) float64 {
	z = clamp(5.0*z, -100.0, 100.0)
	return 1.0 / (1.0 + math.Exp(-z))
}

// ReLU is max(0, z) with the argument clamped to [-100, 100], mirroring
// the sigmoid clamp.
func ReLU(z float64) float64 {
	z = clamp(z, -100.0, 100.0)
	return math.Max(0.0, z)
}

// clamp restricts a value to the range [minVal, maxVal].
func clamp(value, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(value, maxVal))
}
