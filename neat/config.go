package neat

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Config stores the configuration parameters consumed by the core. It has
// no CLI of its own; callers either load an INI file or start from
// DefaultConfig and adjust fields.
type Config struct {
	Neat       NeatConfig
	Mutation   MutationConfig
	Speciation SpeciationConfig
}

// NeatConfig holds the population-level parameters.
type NeatConfig struct {
	PopSize    int `ini:"pop_size"`
	NumInputs  int `ini:"num_inputs"`
	NumOutputs int `ini:"num_outputs"`
	// Generations is the generation budget for a Run.
	Generations int `ini:"generations"`
	// FitnessThreshold stops a Run early once the best fitness reaches it,
	// unless NoFitnessTermination is set.
	FitnessThreshold     float64 `ini:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination"`
	// InitialConnections is the number of random input->output connections
	// per new genome; negative means fully connected.
	InitialConnections int `ini:"initial_connections"`
	// EliteRatio is the surviving fraction used by EliteSelection.
	EliteRatio float64 `ini:"elite_ratio"`
	// Parallel dispatches fitness evaluation across worker goroutines.
	Parallel bool `ini:"parallel"`
	// Seed initializes the run's random generator; 0 seeds from the clock.
	Seed int64 `ini:"seed"`
}

// MutationConfig holds the six mutation probabilities.
type MutationConfig struct {
	AddNodeProb       float64 `ini:"add_node_prob"`
	AddConnectionProb float64 `ini:"add_connection_prob"`
	MutateWeightProb  float64 `ini:"mutate_weight_prob"`
	MutateBiasProb    float64 `ini:"mutate_bias_prob"`
	ChangeWeightProb  float64 `ini:"change_weight_prob"`
	ChangeBiasProb    float64 `ini:"change_bias_prob"`
}

// SpeciationConfig holds the compatibility threshold and the distance
// coefficients.
type SpeciationConfig struct {
	DistanceThreshold     float64 `ini:"distance_threshold"`
	DisjointCoefficient   float64 `ini:"disjoint_coefficient"`
	ActivationCoefficient float64 `ini:"activation_coefficient"`
	WeightCoefficient     float64 `ini:"weight_coefficient"`
}

// DefaultConfig returns a configuration with the standard parameters for
// the given genome shape.
func DefaultConfig(numInputs, numOutputs int) *Config {
	return &Config{
		Neat: NeatConfig{
			PopSize:              150,
			NumInputs:            numInputs,
			NumOutputs:           numOutputs,
			Generations:          100,
			NoFitnessTermination: true,
			InitialConnections:   -1,
			EliteRatio:           0.05,
		},
		Mutation: MutationConfig{
			AddNodeProb:       0.1,
			AddConnectionProb: 0.2,
			MutateWeightProb:  0.8,
			MutateBiasProb:    0.8,
			ChangeWeightProb:  0.05,
			ChangeBiasProb:    0.05,
		},
		Speciation: SpeciationConfig{
			DistanceThreshold:     3.0,
			DisjointCoefficient:   1.0,
			ActivationCoefficient: 1.0,
			WeightCoefficient:     1.0,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file. Keys missing
// from the file keep the DefaultConfig values for the declared shape.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig(0, 0)

	if err := cfg.Section("NEAT").MapTo(&config.Neat); err != nil {
		return nil, fmt.Errorf("failed to map [NEAT] section: %w", err)
	}
	if err := cfg.Section("Mutation").MapTo(&config.Mutation); err != nil {
		return nil, fmt.Errorf("failed to map [Mutation] section: %w", err)
	}
	if err := cfg.Section("Speciation").MapTo(&config.Speciation); err != nil {
		return nil, fmt.Errorf("failed to map [Speciation] section: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the core cannot work with.
func (c *Config) Validate() error {
	if c.Neat.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if c.Neat.NumInputs <= 0 {
		return fmt.Errorf("config error: num_inputs must be positive")
	}
	if c.Neat.NumOutputs <= 0 {
		return fmt.Errorf("config error: num_outputs must be positive")
	}
	if c.Neat.Generations <= 0 {
		return fmt.Errorf("config error: generations must be positive")
	}
	if max := c.Neat.NumInputs * c.Neat.NumOutputs; c.Neat.InitialConnections > max {
		return fmt.Errorf("config error: initial_connections %d exceeds num_inputs*num_outputs (%d)",
			c.Neat.InitialConnections, max)
	}
	if c.Neat.EliteRatio < 0 || c.Neat.EliteRatio > 1 {
		return fmt.Errorf("config error: elite_ratio must be between 0 and 1")
	}

	probs := map[string]float64{
		"add_node_prob":       c.Mutation.AddNodeProb,
		"add_connection_prob": c.Mutation.AddConnectionProb,
		"mutate_weight_prob":  c.Mutation.MutateWeightProb,
		"mutate_bias_prob":    c.Mutation.MutateBiasProb,
		"change_weight_prob":  c.Mutation.ChangeWeightProb,
		"change_bias_prob":    c.Mutation.ChangeBiasProb,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("config error: %s must be between 0 and 1", name)
		}
	}

	if c.Speciation.DistanceThreshold <= 0 {
		return fmt.Errorf("config error: distance_threshold must be positive")
	}
	if c.Speciation.DisjointCoefficient < 0 {
		return fmt.Errorf("config error: disjoint_coefficient cannot be negative")
	}
	if c.Speciation.ActivationCoefficient < 0 {
		return fmt.Errorf("config error: activation_coefficient cannot be negative")
	}
	if c.Speciation.WeightCoefficient < 0 {
		return fmt.Errorf("config error: weight_coefficient cannot be negative")
	}

	return nil
}

// Coefficients returns the distance coefficients as used by
// GeneticDistance.
func (c *SpeciationConfig) Coefficients() DistanceCoefficients {
	return DistanceCoefficients{
		Disjoint:   c.DisjointCoefficient,
		Activation: c.ActivationCoefficient,
		Weight:     c.WeightCoefficient,
	}
}

// NewMutation builds the mutation operator configured by this section.
func (c *MutationConfig) NewMutation() *Mutation {
	return &Mutation{
		AddNodeProb:       c.AddNodeProb,
		AddConnectionProb: c.AddConnectionProb,
		MutateWeightProb:  c.MutateWeightProb,
		MutateBiasProb:    c.MutateBiasProb,
		ChangeWeightProb:  c.ChangeWeightProb,
		ChangeBiasProb:    c.ChangeBiasProb,
	}
}
