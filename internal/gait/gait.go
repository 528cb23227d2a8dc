// Package gait is the bundled demo strategy: a genome is a fixed-length
// sequence of stride impulses in [0, 1], executed on the treadmill scape.
package gait

import (
	"fmt"
	"math/rand"

	"strider/internal/evo"
	"strider/internal/scape"
)

const (
	defaultLength      = 24
	defaultTournamentK = 3
	defaultSigma       = 0.1
	timePenalty        = 0.05
)

// Routine is the phenotype the treadmill executes.
type Routine struct {
	strides []float64
}

func (r Routine) Strides() []float64 { return r.strides }

// Strategy implements the engine's operator set for stride genomes.
type Strategy struct {
	Length      int
	TournamentK int
	Sigma       float64
}

func NewStrategy() *Strategy {
	return &Strategy{Length: defaultLength, TournamentK: defaultTournamentK, Sigma: defaultSigma}
}

func (s *Strategy) Name() string { return "gait" }

func (s *Strategy) RandomGenome(rng *rand.Rand) ([]float64, error) {
	length := s.Length
	if length <= 0 {
		return nil, fmt.Errorf("gait genome length must be > 0")
	}
	genome := make([]float64, length)
	for i := range genome {
		genome[i] = rng.Float64()
	}
	return genome, nil
}

func (s *Strategy) Phenotype(genome []float64) (scape.Phenotype, error) {
	if len(genome) == 0 {
		return nil, fmt.Errorf("gait genome is empty")
	}
	return Routine{strides: append([]float64(nil), genome...)}, nil
}

// ComputeFitness rewards distance and charges a small penalty per second of
// run time, so shorter routines that cover the same ground score higher.
func (s *Strategy) ComputeFitness(distance, runTime float64) float64 {
	return distance - timePenalty*runTime
}

// SelectParents runs n independent tournaments of size TournamentK.
func (s *Strategy) SelectParents(rng *rand.Rand, population []evo.Individual[[]float64], n int) ([]evo.Individual[[]float64], error) {
	if len(population) == 0 {
		return nil, fmt.Errorf("population is empty")
	}
	k := s.TournamentK
	if k <= 0 {
		k = defaultTournamentK
	}
	if k > len(population) {
		k = len(population)
	}

	parents := make([]evo.Individual[[]float64], 0, n)
	for i := 0; i < n; i++ {
		best := population[rng.Intn(len(population))]
		for j := 1; j < k; j++ {
			candidate := population[rng.Intn(len(population))]
			if fitnessOf(candidate) > fitnessOf(best) {
				best = candidate
			}
		}
		parents = append(parents, best)
	}
	return parents, nil
}

// Crossover is single-point.
func (s *Strategy) Crossover(rng *rand.Rand, a, b []float64) ([]float64, []float64, error) {
	if len(a) != len(b) {
		return nil, nil, fmt.Errorf("genome length mismatch: %d vs %d", len(a), len(b))
	}
	point := rng.Intn(len(a))
	childA := make([]float64, len(a))
	childB := make([]float64, len(b))
	copy(childA[:point], a[:point])
	copy(childA[point:], b[point:])
	copy(childB[:point], b[:point])
	copy(childB[point:], a[point:])
	return childA, childB, nil
}

// Mutate perturbs one gene with Gaussian noise.
func (s *Strategy) Mutate(rng *rand.Rand, genome []float64) ([]float64, error) {
	if len(genome) == 0 {
		return nil, fmt.Errorf("gait genome is empty")
	}
	sigma := s.Sigma
	if sigma <= 0 {
		sigma = defaultSigma
	}
	mutated := append([]float64(nil), genome...)
	idx := rng.Intn(len(mutated))
	mutated[idx] += rng.NormFloat64() * sigma
	return mutated, nil
}

// Repair clamps every gene into [0, 1]. It is a no-op on valid genomes.
func (s *Strategy) Repair(genome []float64) ([]float64, error) {
	repaired := append([]float64(nil), genome...)
	for i, v := range repaired {
		if v < 0 {
			repaired[i] = 0
		} else if v > 1 {
			repaired[i] = 1
		}
	}
	return repaired, nil
}

// Replace overwrites the worst slot when the candidate beats it, otherwise
// discards the candidate.
func (s *Strategy) Replace(_ *rand.Rand, population []evo.Individual[[]float64], candidate evo.Individual[[]float64]) (int, error) {
	if len(population) == 0 {
		return 0, fmt.Errorf("population is empty")
	}
	worst := 0
	for i := range population {
		if fitnessOf(population[i]) < fitnessOf(population[worst]) {
			worst = i
		}
	}
	if fitnessOf(candidate) <= fitnessOf(population[worst]) {
		return evo.Discard, nil
	}
	return worst, nil
}

func fitnessOf(indv evo.Individual[[]float64]) float64 {
	if indv.Fitness == nil {
		return 0
	}
	return *indv.Fitness
}
