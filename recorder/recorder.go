// Package recorder stores per-step telemetry of simulation runs in a SQL database
// through gorm, on sqlite or postgres.
package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/akmonengine/buoy"
	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/logging"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("recorder: unknown driver")

// Run is one simulated vehicle.
type Run struct {
	ID           string `gorm:"primaryKey;size:36"`
	VehicleID    string `gorm:"size:36;index"`
	VehicleName  string
	Fingerprint  string `gorm:"size:16"`
	BlockSize    float64
	WaterDensity float64
	Timestep     float64
	Steps        int64
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// Sample is the state of a run after one step.
type Sample struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     string `gorm:"size:36;index:idx_run_step"`
	Step      int64  `gorm:"index:idx_run_step"`
	PositionX float64
	PositionY float64
	PositionZ float64
	RotationW float64
	RotationX float64
	RotationY float64
	RotationZ float64
	VelocityX float64
	VelocityY float64
	VelocityZ float64
	Flooded   int
	InContact bool
	Settling  bool
	StepNanos int64
}

// Recorder buffers samples and writes them in batches. It is safe for concurrent use, so
// one recorder can observe every world of a batch.
type Recorder struct {
	db        *gorm.DB
	logger    *zap.Logger
	batchSize int

	mu      sync.Mutex
	pending []Sample
}

// Open connects to driver ("sqlite" or "postgres") with dsn. For sqlite the dsn is a
// file path; an empty one opens a shared in-memory database.
func Open(driver, dsn string, batchSize int, log *zap.Logger) (*Recorder, error) {
	gormConfig := &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        max(batchSize, 1),
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	return New(db, batchSize, log)
}

// New wraps an open database, creating the tables if needed.
func New(db *gorm.DB, batchSize int, log *zap.Logger) (*Recorder, error) {
	if err := db.AutoMigrate(&Run{}, &Sample{}); err != nil {
		return nil, fmt.Errorf("migrate recorder tables: %w", err)
	}

	return &Recorder{
		db:        db,
		logger:    logging.OrNop(log),
		batchSize: max(batchSize, 1),
		pending:   make([]Sample, 0, max(batchSize, 1)),
	}, nil
}

// StartRun registers a run for v.
func (r *Recorder) StartRun(v *buoy.Vehicle, physics config.Physics) (*Run, error) {
	run := &Run{
		ID:           uuid.NewString(),
		VehicleID:    v.ID.String(),
		VehicleName:  v.Name,
		Fingerprint:  fmt.Sprintf("%016x", v.Fingerprint),
		BlockSize:    physics.BlockSize,
		WaterDensity: physics.WaterDensity,
		Timestep:     physics.Timestep,
		StartedAt:    time.Now(),
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	return run, nil
}

// Record buffers the state of v after step, writing the buffer once it holds a batch.
func (r *Recorder) Record(run *Run, step uint64, v *buoy.Vehicle, elapsed time.Duration) error {
	body := v.Body
	sample := Sample{
		RunID:     run.ID,
		Step:      int64(step),
		PositionX: body.Transform.Position.X(),
		PositionY: body.Transform.Position.Y(),
		PositionZ: body.Transform.Position.Z(),
		RotationW: body.Transform.Rotation.W,
		RotationX: body.Transform.Rotation.V.X(),
		RotationY: body.Transform.Rotation.V.Y(),
		RotationZ: body.Transform.Rotation.V.Z(),
		VelocityX: body.Velocity.X(),
		VelocityY: body.Velocity.Y(),
		VelocityZ: body.Velocity.Z(),
		Flooded:   v.Flood.Len(),
		InContact: v.Flood.InContact(),
		Settling:  v.Settling(),
		StepNanos: elapsed.Nanoseconds(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, sample)
	if len(r.pending) < r.batchSize {
		return nil
	}

	return r.flushLocked()
}

// Observer adapts Record to a world observer. Write errors are logged.
func (r *Recorder) Observer(run *Run) buoy.StepObserver {
	return func(step uint64, v *buoy.Vehicle, elapsed time.Duration) {
		if err := r.Record(run, step, v, elapsed); err != nil {
			r.logger.Error("failed to record samples", zap.String("run", run.ID), zap.Error(err))
		}
	}
}

// Flush writes every buffered sample.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.flushLocked()
}

func (r *Recorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}

	if err := r.db.CreateInBatches(r.pending, r.batchSize).Error; err != nil {
		return fmt.Errorf("insert %d samples: %w", len(r.pending), err)
	}
	r.logger.Debug("samples written", zap.Int("count", len(r.pending)))
	r.pending = r.pending[:0]

	return nil
}

// FinishRun flushes pending samples and stamps the run as finished after steps.
func (r *Recorder) FinishRun(run *Run, steps uint64) error {
	if err := r.Flush(); err != nil {
		return err
	}

	now := time.Now()
	run.Steps = int64(steps)
	run.FinishedAt = &now

	err := r.db.Model(run).Updates(map[string]any{
		"steps":       run.Steps,
		"finished_at": now,
	}).Error
	if err != nil {
		return fmt.Errorf("finish run %s: %w", run.ID, err)
	}

	return nil
}

// Runs lists the recorded runs, oldest first.
func (r *Recorder) Runs() ([]Run, error) {
	var runs []Run
	err := r.db.Order("started_at").Find(&runs).Error

	return runs, err
}

// Samples returns the samples of a run ordered by step.
func (r *Recorder) Samples(runID string) ([]Sample, error) {
	var samples []Sample
	err := r.db.Where("run_id = ?", runID).Order("step").Find(&samples).Error

	return samples, err
}

// Close flushes pending samples and closes the database.
func (r *Recorder) Close() error {
	flushErr := r.Flush()

	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Join(flushErr, err)
	}

	return errors.Join(flushErr, sqlDB.Close())
}
