package neat

import (
	"fmt"
	"io"
	"os"
)

// ConsoleLogger is an Observer that prints a per-generation summary table
// of the species to a writer.
type ConsoleLogger struct {
	W io.Writer
}

// NewConsoleLogger creates a console logger. A nil writer defaults to
// os.Stdout.
func NewConsoleLogger(w io.Writer) *ConsoleLogger {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleLogger{W: w}
}

// Report prints the generation header and one row per species: id, member
// count, average fitness, best fitness, and the node/enabled-connection
// shape of the species champion.
func (l *ConsoleLogger) Report(generation int, best *Genome, species []*Species) {
	fmt.Fprintf(l.W, "Generation %d  -  Fit: %.2f\n", generation, best.Fitness)
	fmt.Fprintln(l.W, "| spec | #mem | avg fit | best fit | best shape |")
	fmt.Fprintln(l.W, "|------|------|---------|----------|------------|")
	for _, s := range species {
		champion := s.Members[0]
		for _, m := range s.Members[1:] {
			if m.Fitness > champion.Fitness {
				champion = m
			}
		}
		shape := fmt.Sprintf("(%d, %d)", len(champion.Nodes), len(champion.EnabledConnections()))
		fmt.Fprintf(l.W, "| %-4d | %-4d | %-7.1f | %-8.1f | %-10s |\n",
			s.ID, s.Len(), s.AverageFitness(), s.BestFitness(), shape)
	}
	fmt.Fprintln(l.W, "'------'------'---------'----------'------------'")
	fmt.Fprintln(l.W)
}
