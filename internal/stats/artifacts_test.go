package stats

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"strider/internal/model"
	"strider/internal/workspace"
)

func testArtifacts() RunArtifacts {
	return RunArtifacts{
		RunID:       "run-123",
		Name:        "walker",
		BestGenome:  json.RawMessage(`[0.4,0.6]`),
		BestFitness: 3.5,
		Config: model.RunConfig{
			MaxEvaluations: 100,
			PopulationSize: 4,
			Seed:           1234,
		},
		AverageFitness: 2.1,
		History: []model.GenerationStats{
			{Generation: 1, BestFitness: 1.0, MeanFitness: 0.4},
			{Generation: 2, BestFitness: 2.5, MeanFitness: 1.1},
			{Generation: 3, BestFitness: 3.5, MeanFitness: 2.1},
		},
	}
}

func TestWriteRunArtifacts(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}

	resultsPath, figurePath, err := WriteRunArtifacts(ws, testArtifacts())
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	if !strings.HasSuffix(resultsPath, "results.json") {
		t.Fatalf("unexpected results path %s", resultsPath)
	}
	if !strings.HasSuffix(figurePath, "fitness_vs_generation.svg") {
		t.Fatalf("unexpected figure path %s", figurePath)
	}

	payload, err := os.ReadFile(resultsPath)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	var decoded RunArtifacts
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if decoded.RunID != "run-123" || decoded.BestFitness != 3.5 {
		t.Fatalf("results mismatch: %+v", decoded)
	}
	if len(decoded.History) != 3 {
		t.Fatalf("history length: got %d, want 3", len(decoded.History))
	}

	figure, err := os.ReadFile(figurePath)
	if err != nil {
		t.Fatalf("read figure: %v", err)
	}
	for _, want := range []string{"<svg", "polyline", "Best Fitness", "Average Fitness"} {
		if !bytes.Contains(figure, []byte(want)) {
			t.Fatalf("figure missing %q", want)
		}
	}
}

func TestWriteRunArtifactsRequiresName(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	artifacts := testArtifacts()
	artifacts.Name = ""
	if _, _, err := WriteRunArtifacts(ws, artifacts); err == nil {
		t.Fatal("expected missing name to fail")
	}
}

func TestRenderFitnessPlotIsDeterministic(t *testing.T) {
	history := testArtifacts().History
	first := RenderFitnessPlot(history)
	second := RenderFitnessPlot(history)
	if !bytes.Equal(first, second) {
		t.Fatal("plot output not deterministic")
	}
}

func TestRenderFitnessPlotHandlesEmptyAndFlatHistory(t *testing.T) {
	empty := RenderFitnessPlot(nil)
	if !bytes.Contains(empty, []byte("<svg")) {
		t.Fatal("empty history should still render a frame")
	}
	if bytes.Contains(empty, []byte("polyline")) {
		t.Fatal("empty history should not render series")
	}

	flat := RenderFitnessPlot([]model.GenerationStats{
		{Generation: 1, BestFitness: 2, MeanFitness: 2},
		{Generation: 2, BestFitness: 2, MeanFitness: 2},
	})
	if bytes.Contains(flat, []byte("NaN")) {
		t.Fatal("flat history produced NaN coordinates")
	}
}
