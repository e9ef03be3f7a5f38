// Package neat provides a Go implementation of the NeuroEvolution of Augmenting Topologies (NEAT) algorithm.
//
// NEAT evolves both the weights and the topology of small feed-forward
// networks. A Genome is a set of node genes and connection genes; mutation
// grows the structure, crossover recombines two parents, and the population
// is clustered into species by genetic distance so that novel structure is
// protected through fitness sharing.
//
// This implementation follows the original paper by Kenneth O. Stanley and
// Risto Miikkulainen; the cycle check and the feed-forward layering are
// derived from the neat-python project (https://github.com/CodeReclaimers/neat-python).
//
// Basic usage:
//
//	config, err := neat.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	selection := neat.NewEliteSelection(fitnessFunc, config.Neat.EliteRatio)
//	pop, err := neat.NewPopulation(config, selection)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//	pop.AddObserver(neat.NewConsoleLogger(os.Stdout))
//
//	winner, err := pop.Run()
//	if err != nil {
//		log.Fatalf("Evolution failed: %v", err)
//	}
//	net, _ := nn.Create(winner)
package neat
