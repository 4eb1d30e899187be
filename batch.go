package buoy

import (
	"context"
	"fmt"
	"time"

	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DEFAULT_WORKERS = 1

// Job describes one independent simulation of a batch.
type Job struct {
	Vehicle *Vehicle
	Steps   int
	// Observe, if set, is registered on the job's world.
	Observe StepObserver
}

// Result is the final state of a job.
type Result struct {
	Vehicle *Vehicle
	Steps   uint64
	Elapsed time.Duration
}

// RunBatch simulates every job in its own World, at most workers at a time. Each world
// is stepped on a single goroutine; worlds never share a vehicle. The first failing job
// cancels the others.
func RunBatch(ctx context.Context, physics config.Physics, logger *zap.Logger, workers int, jobs []Job) ([]Result, error) {
	logger = logging.OrNop(logger)
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(DEFAULT_WORKERS, workers))

	for i, job := range jobs {
		g.Go(func() error {
			start := time.Now()

			world := NewWorld(physics, logger.With(zap.Int("job", i)))
			world.Observe(job.Observe)
			world.Load(job.Vehicle)

			for step := 0; step < job.Steps; step++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := world.Step(physics.Timestep); err != nil {
					return fmt.Errorf("job %d (%s): %w", i, job.Vehicle.Name, err)
				}
			}

			results[i] = Result{Vehicle: job.Vehicle, Steps: world.Steps(), Elapsed: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
