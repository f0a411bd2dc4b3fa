// Package engine performs the full per-vehicle scenario calculation:
// fleet rosters, adoption projection, the six calculation categories,
// constraint evaluation, and multi-level aggregation. Years are
// computed concurrently on a bounded worker pool and joined before
// aggregation so the rollups stay exactly additive.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pathwise/pathwise/internal/engine/cache"
	"github.com/pathwise/pathwise/internal/scenario"
)

// Common engine errors.
var (
	ErrInvalidScenario    = errors.New("scenario parameters are invalid")
	ErrCalculationTimeout = errors.New("scenario calculation timed out")
	ErrResultNotFound     = errors.New("no cached result for scenario")
)

// DefaultWorkers bounds the calculation worker pool when the
// configuration does not.
const DefaultWorkers = 4

// Config assembles an Engine. Zero values fall back to defaults; a
// nil Fleet gets the demo provider and a nil Cache gets a store with
// package defaults.
type Config struct {
	Fleet   FleetProvider
	Cache   *cache.Store
	Metrics *Metrics
	Workers int
	Curve   AdoptionCurve
	Logger  zerolog.Logger
}

// Engine coordinates scenario calculations. Safe for concurrent use;
// all mutable state lives in the cache and per-call monitors.
type Engine struct {
	calc    calculator
	cache   *cache.Store
	metrics *Metrics
	workers int
	log     zerolog.Logger

	onProgress func(ProgressSnapshot)
}

// New builds an engine from the configuration.
func New(cfg Config) *Engine {
	if cfg.Fleet == nil {
		cfg.Fleet = NewDemoFleet()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.New(0, 0)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Curve == (AdoptionCurve{}) {
		cfg.Curve = DefaultAdoptionCurve()
	}
	log := cfg.Logger.With().Str("component", "engine").Logger()
	return &Engine{
		calc: calculator{
			fleet:       cfg.Fleet,
			curve:       cfg.Curve,
			constraints: NewConstraintManager(),
			log:         log,
		},
		cache:   cfg.Cache,
		metrics: cfg.Metrics,
		workers: cfg.Workers,
		log:     log,
	}
}

// OnProgress registers a callback invoked after each analysis year
// completes. Must be set before the first calculation.
func (e *Engine) OnProgress(fn func(ProgressSnapshot)) {
	e.onProgress = fn
}

// CalculateScenario runs the full calculation for one scenario:
// validate, compute every (year, vehicle type) cell, evaluate
// constraints, aggregate, and cache the result. Years run concurrently
// on the worker pool; the context bounds the whole calculation and a
// deadline expiry surfaces as ErrCalculationTimeout.
func (e *Engine) CalculateScenario(ctx context.Context, sc scenario.Scenario) (*ScenarioResult, error) {
	started := time.Now()

	validation := scenario.Validate(sc.Parameters)
	if !validation.Valid {
		e.metrics.observeCalculation("invalid", time.Since(started))
		return nil, fmt.Errorf("%w: %s", ErrInvalidScenario, strings.Join(validation.Errors, "; "))
	}

	// Declared constraints are always evaluated; the enable_constraints
	// flag toggles only the optimizer's rate-of-change limits.
	limits := sc.Parameters.Constraints
	for _, w := range e.calc.constraints.ValidateConstraints(limits) {
		e.log.Warn().Str("scenario_id", sc.ID).Msg(w)
	}

	years := sc.Parameters.Years
	types := sc.Parameters.VehicleTypes
	monitor := NewMonitor(len(years) * len(types))
	perYear := make([]YearResult, len(years))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			yr := YearResult{
				Year:                year,
				VehicleCalculations: make(map[string]VehicleTypeResult, len(types)),
			}
			for _, vt := range types {
				yr.VehicleCalculations[vt] = e.calc.calculateVehicleType(
					year, vt, sc.Parameters.AdoptionRates, limits)
			}
			yr.Aggregated = AggregateByYear(year, yr.VehicleCalculations)
			perYear[i] = yr

			monitor.YearCompleted(year, len(types))
			if e.onProgress != nil {
				e.onProgress(monitor.Snapshot())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.metrics.observeCalculation("error", time.Since(started))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrCalculationTimeout, err)
		}
		return nil, err
	}

	analysis := e.calc.constraints.AnalyzeConstraints(perYear)
	result := &ScenarioResult{
		ScenarioID:           sc.ID,
		CalculationTimestamp: started.UTC(),
		PerYearResults:       perYear,
		Aggregated:           Aggregate(perYear, types),
		ConstraintAnalysis:   analysis,
		Performance: PerformanceMetrics{
			CalculationTime:       time.Since(started),
			VehicleTypesProcessed: len(years) * len(types),
			YearsProcessed:        len(years),
			ConstraintViolations:  len(analysis.Violations),
			Workers:               e.workers,
		},
	}

	if err := e.cacheResult(result); err != nil {
		e.log.Warn().Err(err).Str("scenario_id", sc.ID).Msg("failed to cache calculation result")
	}

	e.metrics.observeCalculation("success", time.Since(started))
	e.log.Info().
		Str("scenario_id", sc.ID).
		Int("years", len(years)).
		Int("vehicle_types", len(types)).
		Dur("elapsed", time.Since(started)).
		Bool("compliant", analysis.OverallCompliance).
		Msg("scenario calculation complete")
	return result, nil
}

// CachedResult returns the most recent calculation for a scenario, or
// ErrResultNotFound when none is live in the cache.
func (e *Engine) CachedResult(scenarioID string) (*ScenarioResult, error) {
	entry, err := e.cache.Latest(scenarioID)
	if err != nil {
		e.metrics.ObserveCacheMiss()
		if errors.Is(err, cache.ErrCacheNotFound) || errors.Is(err, cache.ErrCacheExpired) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	e.metrics.ObserveCacheHit()

	var result ScenarioResult
	if err := json.Unmarshal(entry.Data, &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, nil
}

// ClearCache drops all cached calculation results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

func (e *Engine) cacheResult(result *ScenarioResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = e.cache.Put(result.ScenarioID, data)
	return err
}
