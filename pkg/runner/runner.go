package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/pkg/pipeline"
)

// Runner applies a pipeline to many files. Each file gets its own tree and
// rewrite, so workers share nothing but the script.
type Runner struct {
	Pipeline *pipeline.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(p *pipeline.Pipeline) *Runner {
	return &Runner{Pipeline: p}
}

// Run discovers files under opts.Paths and processes them with a bounded
// worker pool. Outcomes keep discovery order regardless of completion
// order. Cancellation stops feeding work; the files already finished are
// returned with the error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	popts := pipeline.OptionsFromConfig(opts.Config)
	logging.FromContext(ctx).Debug("starting workers",
		logging.FieldJobs, jobs, logging.FieldFilesDiscovered, len(files))

	// Workers fill the slot of their file, so no ordering pass is needed.
	slots := make([]*FileOutcome, len(files))
	next := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				outcome := r.process(ctx, files[i], popts)
				slots[i] = &outcome
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case next <- i:
		}
	}
	close(next)
	wg.Wait()

	for _, outcome := range slots {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts pipeline.Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	res, err := r.Pipeline.ProcessFile(ctx, path, opts)
	if err != nil {
		outcome.Error = err
		logging.ForFile(ctx, path).Debug("file failed", logging.FieldError, err)
		return outcome
	}
	outcome.Result = res
	return outcome
}
