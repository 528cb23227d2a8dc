package scape

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Routine is the phenotype contract the treadmill accepts: a fixed sequence
// of stride impulses in [0, 1].
type Routine interface {
	Strides() []float64
}

// Treadmill is a deterministic in-process runner simulator. Each stride
// advances the runner by its impulse scaled by accumulated fatigue; abrupt
// changes between consecutive strides cause a stumble penalty. It exists so
// the engine and CLI can run end to end without an external simulator.
type Treadmill struct {
	StepPeriod time.Duration
	Fatigue    float64
}

const (
	defaultStepPeriod = 100 * time.Millisecond
	defaultFatigue    = 0.995
)

func NewTreadmill() *Treadmill {
	return &Treadmill{StepPeriod: defaultStepPeriod, Fatigue: defaultFatigue}
}

func (t *Treadmill) Name() string { return "treadmill" }

func (t *Treadmill) Evaluate(ctx context.Context, p Phenotype, limit time.Duration) ([]Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	routine, ok := p.(Routine)
	if !ok {
		return nil, fmt.Errorf("treadmill: unsupported phenotype %T", p)
	}

	period := t.StepPeriod
	if period <= 0 {
		period = defaultStepPeriod
	}
	fatigue := t.Fatigue
	if fatigue <= 0 || fatigue > 1 {
		fatigue = defaultFatigue
	}

	strides := routine.Strides()
	steps := len(strides)
	if limit > 0 {
		if capSteps := int(limit / period); capSteps < steps {
			steps = capSteps
		}
	}

	distance := 0.0
	stamina := 1.0
	prev := 0.0
	for i := 0; i < steps; i++ {
		stride := clamp01(strides[i])
		stumble := math.Abs(stride - prev)
		distance += stamina * (stride - 0.5*stumble*stumble)
		stamina *= fatigue
		prev = stride
	}
	if distance < 0 {
		distance = 0
	}

	runTime := (time.Duration(steps) * period).Seconds()
	return []Measurement{{Distance: distance, RunTime: runTime}}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
