// Command buoysim runs headless floating simulations of one or more vehicle files and
// optionally records per-step telemetry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akmonengine/buoy"
	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/logging"
	"github.com/akmonengine/buoy/recorder"
	"github.com/akmonengine/buoy/vehiclefile"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	configPath = flag.StringP("config", "c", "", "configuration file (yaml, json or toml)")
	vehicles   = flag.StringArrayP("vehicle", "v", nil, "vehicle file to simulate, repeatable (default hull when none)")
	steps      = flag.IntP("steps", "n", 1000, "steps to simulate per vehicle")
	workers    = flag.IntP("workers", "w", 0, "concurrent simulations (0 keeps the configured value)")
	logLevel   = flag.String("log-level", "", "override the configured log level")
	record     = flag.Bool("record", false, "record telemetry even if the configuration disables it")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "buoysim:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *record {
		cfg.Recorder.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return err
	}
	defer logger.Sync()

	jobs, err := loadJobs(cfg.Physics)
	if err != nil {
		return err
	}

	var rec *recorder.Recorder
	runs := make([]*recorder.Run, len(jobs))
	if cfg.Recorder.Enabled {
		rec, err = recorder.Open(cfg.Recorder.Driver, cfg.Recorder.DSN, cfg.Recorder.BatchSize, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Error("failed to close recorder", zap.Error(err))
			}
		}()

		for i := range jobs {
			runs[i], err = rec.StartRun(jobs[i].Vehicle, cfg.Physics)
			if err != nil {
				return err
			}
			jobs[i].Observe = rec.Observer(runs[i])
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulation started",
		zap.Int("vehicles", len(jobs)),
		zap.Int("steps", *steps),
		zap.Int("workers", cfg.Workers),
		zap.Bool("recording", rec != nil),
	)

	results, err := buoy.RunBatch(ctx, cfg.Physics, logger, cfg.Workers, jobs)
	if err != nil {
		return err
	}

	for i, result := range results {
		v := result.Vehicle
		logger.Info("simulation finished",
			zap.String("name", v.Name),
			zap.Uint64("steps", result.Steps),
			zap.Duration("elapsed", result.Elapsed),
			zap.Float64("y", v.Body.Transform.Position.Y()),
			zap.Int("flooded", v.Flood.Len()),
			zap.Bool("settling", v.Settling()),
		)

		if rec != nil {
			if err := rec.FinishRun(runs[i], result.Steps); err != nil {
				return err
			}
		}
	}

	return nil
}

func loadJobs(physics config.Physics) ([]buoy.Job, error) {
	if len(*vehicles) == 0 {
		v, err := buoy.DefaultVehicle(physics)
		if err != nil {
			return nil, err
		}
		return []buoy.Job{{Vehicle: v, Steps: *steps}}, nil
	}

	jobs := make([]buoy.Job, 0, len(*vehicles))
	for _, path := range *vehicles {
		f, err := vehiclefile.Load(path)
		if err != nil {
			return nil, err
		}
		v, err := f.Vehicle(physics)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		jobs = append(jobs, buoy.Job{Vehicle: v, Steps: *steps})
	}

	return jobs, nil
}
