package evo

import (
	"math/rand"

	"strider/internal/scape"
)

// Individual pairs a genome with its fitness. A nil Fitness means the
// individual has not been evaluated yet.
type Individual[G any] struct {
	Genome  G
	Fitness *float64
}

func (i Individual[G]) Evaluated() bool { return i.Fitness != nil }

// Discard is returned by Replace to signal that the candidate should be
// dropped without touching the population.
const Discard = -1

// Strategy supplies everything problem-specific: the genome representation
// and the eight genetic operations the engine drives. Implementations must
// not mutate the population slices they receive; randomness must come only
// from the supplied rng so runs stay reproducible.
type Strategy[G any] interface {
	// Name scopes checkpoint files, seed caches, and result artifacts.
	Name() string

	// RandomGenome produces one independently random genome.
	RandomGenome(rng *rand.Rand) (G, error)

	// Phenotype translates a genome into the executable behavior a scape
	// evaluates. It must not modify the genome.
	Phenotype(genome G) (scape.Phenotype, error)

	// ComputeFitness derives a scalar fitness from a measurement pair. It
	// must be a deterministic function of its inputs.
	ComputeFitness(distance, runTime float64) float64

	// SelectParents draws exactly n parents from the population; duplicates
	// are allowed.
	SelectParents(rng *rand.Rand, population []Individual[G], n int) ([]Individual[G], error)

	// Crossover produces two children from two parents.
	Crossover(rng *rand.Rand, a, b G) (G, G, error)

	// Mutate perturbs a genome. The engine invokes it probabilistically.
	Mutate(rng *rand.Rand, genome G) (G, error)

	// Repair restores genome validity after crossover or mutation. It must
	// be idempotent on already-valid genomes.
	Repair(genome G) (G, error)

	// Replace picks the population slot the candidate overwrites, or
	// returns Discard to drop the candidate.
	Replace(rng *rand.Rand, population []Individual[G], candidate Individual[G]) (int, error)
}
