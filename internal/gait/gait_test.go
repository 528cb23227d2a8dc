package gait

import (
	"math/rand"
	"testing"

	"strider/internal/evo"
)

func fitness(v float64) *float64 { return &v }

func TestRandomGenomeStaysInUnitRange(t *testing.T) {
	strategy := NewStrategy()
	rng := rand.New(rand.NewSource(1))

	genome, err := strategy.RandomGenome(rng)
	if err != nil {
		t.Fatalf("random genome: %v", err)
	}
	if len(genome) != strategy.Length {
		t.Fatalf("genome length: got %d, want %d", len(genome), strategy.Length)
	}
	for i, v := range genome {
		if v < 0 || v >= 1 {
			t.Fatalf("gene %d out of range: %v", i, v)
		}
	}
}

func TestPhenotypeCopiesGenome(t *testing.T) {
	strategy := NewStrategy()
	genome := []float64{0.1, 0.2, 0.3}

	phenotype, err := strategy.Phenotype(genome)
	if err != nil {
		t.Fatalf("phenotype: %v", err)
	}
	routine, ok := phenotype.(Routine)
	if !ok {
		t.Fatalf("unexpected phenotype type %T", phenotype)
	}

	genome[0] = 0.9
	if routine.Strides()[0] != 0.1 {
		t.Fatal("phenotype aliases the genome")
	}

	if _, err := strategy.Phenotype(nil); err == nil {
		t.Fatal("expected empty genome to fail")
	}
}

func TestComputeFitnessChargesTimePenalty(t *testing.T) {
	strategy := NewStrategy()
	fast := strategy.ComputeFitness(10, 1)
	slow := strategy.ComputeFitness(10, 5)
	if fast <= slow {
		t.Fatalf("time penalty missing: fast %v <= slow %v", fast, slow)
	}
	if got, want := strategy.ComputeFitness(10, 2), 9.9; got != want {
		t.Fatalf("fitness: got %v, want %v", got, want)
	}
}

func TestSelectParentsFavorsFitterIndividuals(t *testing.T) {
	strategy := NewStrategy()
	rng := rand.New(rand.NewSource(7))
	population := []evo.Individual[[]float64]{
		{Genome: []float64{0.1}, Fitness: fitness(0.1)},
		{Genome: []float64{0.2}, Fitness: fitness(0.2)},
		{Genome: []float64{0.9}, Fitness: fitness(5.0)},
		{Genome: []float64{0.4}, Fitness: fitness(0.4)},
	}

	parents, err := strategy.SelectParents(rng, population, 40)
	if err != nil {
		t.Fatalf("select parents: %v", err)
	}
	if len(parents) != 40 {
		t.Fatalf("parent count: got %d, want 40", len(parents))
	}

	wins := 0
	for _, p := range parents {
		if *p.Fitness == 5.0 {
			wins++
		}
	}
	// The dominant individual should win a clear majority of size-3
	// tournaments over 40 draws.
	if wins < 20 {
		t.Fatalf("dominant individual won only %d of 40 tournaments", wins)
	}
}

func TestCrossoverPreservesLengthAndGenes(t *testing.T) {
	strategy := NewStrategy()
	rng := rand.New(rand.NewSource(3))
	a := []float64{1, 1, 1, 1}
	b := []float64{2, 2, 2, 2}

	childA, childB, err := strategy.Crossover(rng, a, b)
	if err != nil {
		t.Fatalf("crossover: %v", err)
	}
	if len(childA) != 4 || len(childB) != 4 {
		t.Fatalf("child lengths: %d, %d", len(childA), len(childB))
	}
	for i := range childA {
		if childA[i]+childB[i] != 3 {
			t.Fatalf("gene %d lost: %v + %v", i, childA[i], childB[i])
		}
	}

	if _, _, err := strategy.Crossover(rng, a, []float64{1}); err == nil {
		t.Fatal("expected length mismatch to fail")
	}
}

func TestMutateChangesOneGeneAndLeavesInputIntact(t *testing.T) {
	strategy := NewStrategy()
	rng := rand.New(rand.NewSource(9))
	genome := []float64{0.5, 0.5, 0.5, 0.5}
	original := append([]float64(nil), genome...)

	mutated, err := strategy.Mutate(rng, genome)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	changed := 0
	for i := range mutated {
		if mutated[i] != original[i] {
			changed++
		}
	}
	if changed != 1 {
		t.Fatalf("expected exactly one mutated gene, got %d", changed)
	}
	for i := range genome {
		if genome[i] != original[i] {
			t.Fatal("mutate modified its input")
		}
	}
}

func TestRepairClampsIntoUnitRange(t *testing.T) {
	strategy := NewStrategy()
	repaired, err := strategy.Repair([]float64{-0.5, 0.3, 1.7})
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	want := []float64{0, 0.3, 1}
	for i := range want {
		if repaired[i] != want[i] {
			t.Fatalf("gene %d: got %v, want %v", i, repaired[i], want[i])
		}
	}
}

func TestReplaceTargetsWorstOrDiscards(t *testing.T) {
	strategy := NewStrategy()
	population := []evo.Individual[[]float64]{
		{Genome: []float64{0.1}, Fitness: fitness(3)},
		{Genome: []float64{0.2}, Fitness: fitness(1)},
		{Genome: []float64{0.3}, Fitness: fitness(2)},
	}

	idx, err := strategy.Replace(nil, population, evo.Individual[[]float64]{Genome: []float64{0.5}, Fitness: fitness(4)})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected worst slot 1, got %d", idx)
	}

	idx, err = strategy.Replace(nil, population, evo.Individual[[]float64]{Genome: []float64{0.5}, Fitness: fitness(0.5)})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if idx != evo.Discard {
		t.Fatalf("expected weak candidate to be discarded, got %d", idx)
	}
}
