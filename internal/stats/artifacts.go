package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"strider/internal/model"
	"strider/internal/workspace"
)

const (
	resultsFile = "results.json"
	figureFile  = "fitness_vs_generation.svg"
)

// RunArtifacts is the structured result document written at the end of a
// run: the configuration, the best genome found, and summary fitness
// figures, alongside the per-generation history used for the plot.
type RunArtifacts struct {
	RunID          string                  `json:"run_id"`
	Name           string                  `json:"name"`
	Config         model.RunConfig         `json:"config"`
	BestGenome     json.RawMessage         `json:"best_individual"`
	BestFitness    float64                 `json:"best_fitness"`
	AverageFitness float64                 `json:"average_fitness"`
	History        []model.GenerationStats `json:"history,omitempty"`
}

// WriteRunArtifacts writes results.json to the strategy's results category
// and the fitness-vs-generation figure to its figures category, returning
// the two paths.
func WriteRunArtifacts(ws *workspace.Workspace, artifacts RunArtifacts) (resultsPath, figurePath string, err error) {
	if artifacts.Name == "" {
		return "", "", fmt.Errorf("artifacts name is required")
	}

	resultsDir, err := ws.Resolve(artifacts.Name, workspace.CategoryResults)
	if err != nil {
		return "", "", err
	}
	payload, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return "", "", err
	}
	resultsPath = filepath.Join(resultsDir, resultsFile)
	if err := os.WriteFile(resultsPath, payload, 0o644); err != nil {
		return "", "", err
	}

	figuresDir, err := ws.Resolve(artifacts.Name, workspace.CategoryFigures)
	if err != nil {
		return "", "", err
	}
	figurePath = filepath.Join(figuresDir, figureFile)
	if err := os.WriteFile(figurePath, RenderFitnessPlot(artifacts.History), 0o644); err != nil {
		return "", "", err
	}

	return resultsPath, figurePath, nil
}
