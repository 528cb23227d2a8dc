package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"strider/internal/evo"
	"strider/internal/gait"
)

// Config is the root run configuration loaded from YAML.
type Config struct {
	Workspace  string        `yaml:"workspace"`
	Store      string        `yaml:"store"` // file|memory|sqlite
	SQLitePath string        `yaml:"sqlite_path"`
	Engine     EngineConfig  `yaml:"engine"`
	Gait       GaitConfig    `yaml:"gait"`
	Seeding    SeedingConfig `yaml:"seeding"`
}

type EngineConfig struct {
	MaxEvaluations  int     `yaml:"max_evaluations"`
	EvalTimeLimitMS int64   `yaml:"eval_time_limit_ms"`
	PopSize         int     `yaml:"pop_size"`
	CxProb          float64 `yaml:"cx_prob"`
	MtProb          float64 `yaml:"mt_prob"`
	SteadyState     *bool   `yaml:"steady_state"`
	Seed            int64   `yaml:"seed"`
}

type GaitConfig struct {
	Length      int     `yaml:"length"`
	TournamentK int     `yaml:"tournament_k"`
	Sigma       float64 `yaml:"sigma"`
}

type SeedingConfig struct {
	PoolSize    int   `yaml:"pool_size"`
	TimeLimitMS int64 `yaml:"time_limit_ms"`
}

// LoadConfig reads a YAML config file; an empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace == "" {
		cfg.Workspace = "strider_data"
	}
	if cfg.Store == "" {
		cfg.Store = "file"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "strider.db"
	}
	if cfg.Engine.MaxEvaluations == 0 {
		cfg.Engine.MaxEvaluations = 2000
	}
	if cfg.Engine.EvalTimeLimitMS == 0 {
		cfg.Engine.EvalTimeLimitMS = 600_000
	}
	if cfg.Engine.PopSize == 0 {
		cfg.Engine.PopSize = 20
	}
	if cfg.Engine.CxProb == 0 {
		cfg.Engine.CxProb = 0.9
	}
	if cfg.Engine.MtProb == 0 {
		cfg.Engine.MtProb = 0.05
	}
	if cfg.Engine.SteadyState == nil {
		steady := true
		cfg.Engine.SteadyState = &steady
	}
	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = 1234
	}
	if cfg.Gait.Length == 0 {
		cfg.Gait.Length = 24
	}
	if cfg.Gait.TournamentK == 0 {
		cfg.Gait.TournamentK = 3
	}
	if cfg.Gait.Sigma == 0 {
		cfg.Gait.Sigma = 0.1
	}
	if cfg.Seeding.TimeLimitMS == 0 {
		cfg.Seeding.TimeLimitMS = 60_000
	}
}

func (c *Config) engineConfig() evo.Config {
	return evo.Config{
		MaxEvaluations: c.Engine.MaxEvaluations,
		EvalTimeLimit:  time.Duration(c.Engine.EvalTimeLimitMS) * time.Millisecond,
		PopulationSize: c.Engine.PopSize,
		CrossoverProb:  c.Engine.CxProb,
		MutationProb:   c.Engine.MtProb,
		SteadyState:    *c.Engine.SteadyState,
		Seed:           c.Engine.Seed,
	}
}

func (c *Config) gaitStrategy() *gait.Strategy {
	return &gait.Strategy{
		Length:      c.Gait.Length,
		TournamentK: c.Gait.TournamentK,
		Sigma:       c.Gait.Sigma,
	}
}
