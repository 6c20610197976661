// Package pipeline implements the staged runner of spec §4.1: a static step
// registry, Kahn's-algorithm execution ordering, and sequential,
// fail-fast execution with per-step result tracking.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rkaplan/x987scout/internal/collector"
	"github.com/rkaplan/x987scout/internal/config"
	"github.com/rkaplan/x987scout/internal/options"
	"github.com/rkaplan/x987scout/internal/scraper"
	"github.com/rkaplan/x987scout/internal/seencache"
	"github.com/rkaplan/x987scout/internal/vehicles"
)

// Status is a pipeline step's terminal or in-flight state (spec §4.1).
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Result is the outcome of one step execution, the Go analogue of the
// original's StepResult dataclass.
type Result struct {
	StepName  string
	Status    Status
	StartTime time.Time
	EndTime   time.Time
	Data      any
	Error     error
	Metadata  map[string]any
}

// Duration is the wall-clock time the step ran, zero until EndTime is set.
func (r *Result) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// IsSuccess reports whether the step completed.
func (r *Result) IsSuccess() bool { return r.Status == StatusCompleted }

// IsFailure reports whether the step failed.
func (r *Result) IsFailure() bool { return r.Status == StatusFailed }

// RunContext is the shared, read-only set of collaborators every step draws
// on: the effective config plus the already-built registries/clients main.go
// wires up once at startup (spec §3 "process-wide singletons").
type RunContext struct {
	Ctx       context.Context
	Config    *config.Config
	Verbose   bool
	Headful   bool
	Timestamp string // shared YYYYMMDD_HHMMSS suffix for this run's artifacts

	Collector       *collector.Collector
	Scraper         *scraper.Scraper
	OptionsRegistry *options.Registry
	Catalog         *vehicles.Catalog
	Overrides       options.OverrideTable
	SeenCache       *seencache.Cache // nil when the cache is disabled or failed to open
}

// Step is one pipeline stage. Implementations hold no state beyond their
// static metadata; all per-run data flows through RunContext and the
// previous-results map passed to Run.
type Step interface {
	Name() string
	Description() string
	Dependencies() []string
	RequiredConfig() []string
	// Run performs the step's work and returns its result payload. previous
	// holds every earlier step's Result, keyed by step name.
	Run(rc *RunContext, previous map[string]*Result) (any, error)
}

// ValidateConfig checks that every key step.RequiredConfig() names resolves
// to a non-empty value in cfg - the config-presence half of
// BasePipelineStep.can_run.
func ValidateConfig(step Step, cfg *config.Config) error {
	for _, key := range step.RequiredConfig() {
		if !configKeyPresent(cfg, key) {
			return fmt.Errorf("missing required config section %q for step %q", key, step.Name())
		}
	}
	return nil
}

// configKeyPresent checks the handful of top-level config sections steps
// declare as required; unknown keys are treated as present (permissive,
// matching the original's dict-based required_config check against an
// always-populated config object).
func configKeyPresent(cfg *config.Config, key string) bool {
	switch key {
	case "pipeline":
		return cfg.Pipeline.OutputDirectory != ""
	case "fair_value":
		return cfg.FairValue.BaseValueUSD != 0
	case "scraping":
		return true
	case "search":
		return true
	default:
		return true
	}
}

// CanRun reports whether step's dependencies are all present and completed
// in previous - the dependency half of BasePipelineStep.can_run. An empty
// previous map (single-step execution) always passes, mirroring the
// original's "only check can_run when previous_results is non-empty".
func CanRun(step Step, previous map[string]*Result) bool {
	if len(previous) == 0 {
		return true
	}
	for _, dep := range step.Dependencies() {
		result, ok := previous[dep]
		if !ok || !result.IsSuccess() {
			return false
		}
	}
	return true
}

// Execute runs step with the full status-tracking, config-validation,
// dependency-check, and panic-recovery wrapper that
// BasePipelineStep.execute applies in the original (spec §4.1 steps 2-3,
// SPEC_FULL §A.2's "stage boundaries recover from panics").
func Execute(step Step, rc *RunContext, previous map[string]*Result) (result *Result) {
	result = &Result{
		StepName:  step.Name(),
		Status:    StatusRunning,
		StartTime: time.Now(),
		Metadata:  map[string]any{},
	}

	defer func() {
		if p := recover(); p != nil {
			result.Status = StatusFailed
			result.Error = fmt.Errorf("panic in step %q: %v", step.Name(), p)
			result.Metadata["panic"] = fmt.Sprintf("%v", p)
		}
		result.EndTime = time.Now()
	}()

	if err := ValidateConfig(step, rc.Config); err != nil {
		result.Status = StatusFailed
		result.Error = err
		return result
	}

	if !CanRun(step, previous) {
		result.Status = StatusSkipped
		result.Metadata["reason"] = "dependencies not satisfied"
		return result
	}

	data, err := step.Run(rc, previous)
	if err != nil {
		result.Status = StatusFailed
		result.Error = err
		return result
	}

	result.Status = StatusCompleted
	result.Data = data
	result.Metadata["output_type"] = fmt.Sprintf("%T", data)
	return result
}
