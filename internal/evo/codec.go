package evo

import (
	"encoding/json"
	"fmt"

	"strider/internal/model"
)

// encodeIndividual converts an in-memory individual to its persisted form.
// The genome is stored as the strategy's own JSON encoding, which also
// serves as the deep copy when individuals are duplicated through storage.
func encodeIndividual[G any](indv Individual[G]) (model.Individual, error) {
	raw, err := json.Marshal(indv.Genome)
	if err != nil {
		return model.Individual{}, fmt.Errorf("encode genome: %w", err)
	}
	rec := model.Individual{Genome: raw}
	if indv.Fitness != nil {
		fitness := *indv.Fitness
		rec.Fitness = &fitness
	}
	return rec, nil
}

func decodeIndividual[G any](rec model.Individual) (Individual[G], error) {
	var genome G
	if err := json.Unmarshal(rec.Genome, &genome); err != nil {
		return Individual[G]{}, fmt.Errorf("decode genome: %w", err)
	}
	indv := Individual[G]{Genome: genome}
	if rec.Fitness != nil {
		fitness := *rec.Fitness
		indv.Fitness = &fitness
	}
	return indv, nil
}

func encodePopulation[G any](population []Individual[G]) ([]model.Individual, error) {
	out := make([]model.Individual, len(population))
	for i, indv := range population {
		rec, err := encodeIndividual(indv)
		if err != nil {
			return nil, fmt.Errorf("individual %d: %w", i, err)
		}
		out[i] = rec
	}
	return out, nil
}

func decodePopulation[G any](records []model.Individual) ([]Individual[G], error) {
	out := make([]Individual[G], len(records))
	for i, rec := range records {
		indv, err := decodeIndividual[G](rec)
		if err != nil {
			return nil, fmt.Errorf("individual %d: %w", i, err)
		}
		out[i] = indv
	}
	return out, nil
}
