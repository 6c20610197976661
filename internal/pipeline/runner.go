package pipeline

import (
	"fmt"
	"time"

	"github.com/rkaplan/x987scout/internal/logging"
)

var runnerLog = logging.New("pipeline.runner")

// Summary is the aggregate outcome of a full pipeline run, matching the
// original runner's run_pipeline return shape.
type Summary struct {
	Results        map[string]*Result
	Order          []string
	TotalDuration  time.Duration
	Completed      int
	Failed         int
	Skipped        int
}

// RunPipeline executes every step in reg's dependency order, halting on the
// first failure (spec §4.1 step 4, "fail fast") but continuing past skipped
// steps, accumulating previous results for downstream dependency checks.
func RunPipeline(reg *Registry, rc *RunContext) (*Summary, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	summary := &Summary{Results: make(map[string]*Result, len(reg.order))}
	start := time.Now()

	for _, name := range reg.ExecutionOrder() {
		step, _ := reg.Get(name)
		runnerLog.Info("running step %q", name)

		result := Execute(step, rc, summary.Results)
		summary.Results[name] = result
		summary.Order = append(summary.Order, name)

		switch result.Status {
		case StatusCompleted:
			summary.Completed++
			runnerLog.Info("step %q completed in %s", name, result.Duration())
		case StatusSkipped:
			summary.Skipped++
			runnerLog.Warn("step %q skipped: %v", name, result.Metadata["reason"])
		case StatusFailed:
			summary.Failed++
			runnerLog.Error("step %q failed: %v", name, result.Error)
			summary.TotalDuration = time.Since(start)
			return summary, fmt.Errorf("pipeline halted: step %q failed: %w", name, result.Error)
		}
	}

	summary.TotalDuration = time.Since(start)
	return summary, nil
}

// RunSingleStep executes exactly one named step with an empty previous-
// results map, bypassing dependency checks while still enforcing required
// config - the mechanism behind the CLI's single-stage commands
// (`collect`, `scrape`, ...), matching the original's run_single_step.
func RunSingleStep(reg *Registry, name string, rc *RunContext) (*Result, error) {
	step, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown pipeline step %q", name)
	}
	return Execute(step, rc, map[string]*Result{}), nil
}
