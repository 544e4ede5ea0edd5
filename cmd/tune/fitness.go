package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/ambient/config"
	"github.com/pthm-cable/ambient/game"
	"github.com/pthm-cable/ambient/telemetry"
)

// costWeight scales the particle-count penalty against the link error.
const costWeight = 0.05

// FitnessEvaluator runs headless sessions and scores how close a
// parameter vector gets to the link density target.
type FitnessEvaluator struct {
	params      *ParamVector
	class       config.DeviceClass
	frames      int
	seeds       []int64
	baseConfig  *config.Config
	targetLinks float64
	statsWindow float64

	mu        sync.Mutex
	lastLinks float64 // mean links from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, class config.DeviceClass, frames int, seeds []int64, baseCfg *config.Config, targetLinks float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		class:       class,
		frames:      frames,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targetLinks: targetLinks,
		statsWindow: 2.0,
	}
}

// LastLinks returns the mean link count of the most recent evaluation.
func (fe *FitnessEvaluator) LastLinks() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastLinks
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Every seed runs in its own goroutine; games share no state.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, fe.class, x)

	links := make([]float64, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			links[idx], errs[idx] = fe.runSession(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for i := range links {
		if errs[i] != nil {
			return math.Inf(1)
		}
		total += links[i]
	}
	meanLinks := total / float64(len(links))

	fe.mu.Lock()
	fe.lastLinks = meanLinks
	fe.mu.Unlock()

	count := float64(fe.profile(cfg).ParticleCount)
	return fe.score(meanLinks, count)
}

// score combines the relative link error with the particle cost.
func (fe *FitnessEvaluator) score(meanLinks, particles float64) float64 {
	rel := (meanLinks - fe.targetLinks) / fe.targetLinks
	maxCount := fe.params.Specs[0].Max
	return rel*rel + costWeight*particles/maxCount
}

// runSession runs one headless session and returns its mean link count
// over every completed stats window.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, seed int64) (float64, error) {
	g, err := game.NewGame(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		Profile:        fe.class.String(),
		PointerPath:    game.PointerOrbit,
		StatsWindowSec: fe.statsWindow,
	})
	if err != nil {
		return 0, fmt.Errorf("seed %d: %w", seed, err)
	}
	defer g.Unload()

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for g.Frames() < fe.frames {
		g.UpdateHeadless()
	}
	if len(windows) == 0 {
		return 0, fmt.Errorf("seed %d: no stats window completed in %d frames", seed, fe.frames)
	}

	var sum float64
	for _, w := range windows {
		sum += w.LinksMean
	}
	return sum / float64(len(windows)), nil
}

func (fe *FitnessEvaluator) profile(cfg *config.Config) config.Capabilities {
	return cfg.Capabilities(fe.class)
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
