// Package buoy simulates a voxel vehicle floating on a flat water plane at y = 0.
//
// A World owns one vehicle at a time. Each Step updates the flooded cells of the vehicle,
// queues gravity and displacement forces, integrates the rigid body and flushes events.
package buoy

import (
	"errors"
	"fmt"
	"time"

	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/flood"
	"github.com/akmonengine/buoy/logging"
	"github.com/akmonengine/buoy/voxel"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

var ErrNoVehicle = errors.New("buoy: no vehicle loaded")

// StepObserver is called after every successful step, before events are flushed.
type StepObserver func(step uint64, v *Vehicle, elapsed time.Duration)

type World struct {
	Physics config.Physics
	Events  Events

	logger   *zap.Logger
	vehicle  *Vehicle
	steps    uint64
	observer StepObserver
	stats    stepStats
}

// stepStats accumulates timings between two periodic log lines.
type stepStats struct {
	count   int
	elapsed time.Duration
	flooded int
}

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(physics config.Physics, logger *zap.Logger) *World {
	return &World{
		Physics: physics,
		Events:  NewEvents(),
		logger:  logging.OrNop(logger),
	}
}

// Observe registers fn to be called after every step. Passing nil removes it.
func (w *World) Observe(fn StepObserver) {
	w.observer = fn
}

// Load makes v the simulated vehicle, replacing the previous one in a single assignment.
// With settle enabled the vehicle is moved to its secure height first.
func (w *World) Load(v *Vehicle) {
	beginSettle(v, w.Physics.Settle)
	v.Flood.Reset()

	w.vehicle = v
	w.stats = stepStats{}

	w.logger.Info("vehicle loaded",
		zap.Stringer("id", v.ID),
		zap.String("name", v.Name),
		zap.Int("solids", len(v.Blocks.Solids())),
		zap.Int("blocks", v.Blocks.Len()),
		zap.Float64("mass", v.Body.Mass.Total),
		zap.String("fingerprint", fmt.Sprintf("%016x", v.Fingerprint)),
		zap.Float64("secureHeight", v.SecureHeight),
		zap.Bool("settling", v.Settling()),
	)
	w.Events.emit(VehicleLoadedEvent{Vehicle: v})
}

// LoadGrid builds a uniform-mass vehicle from occupancy and loads it. On error the
// current vehicle is kept.
func (w *World) LoadGrid(name string, occupancy voxel.Grid[int]) (*Vehicle, error) {
	v, err := NewUniformVehicle(name, occupancy, w.Physics)
	if err != nil {
		return nil, err
	}
	w.Load(v)

	return v, nil
}

// LoadDefault loads the default hull.
func (w *World) LoadDefault() (*Vehicle, error) {
	return w.LoadGrid(DefaultVehicleName, DefaultOccupancy())
}

// Vehicle returns the loaded vehicle, or nil.
func (w *World) Vehicle() *Vehicle {
	return w.vehicle
}

// Steps returns how many steps completed since the world was created.
func (w *World) Steps() uint64 {
	return w.steps
}

// ApplyForce queues a world-space force on the vehicle for the next step.
func (w *World) ApplyForce(position, force mgl64.Vec3) error {
	if w.vehicle == nil {
		return ErrNoVehicle
	}
	w.vehicle.Body.ApplyForce(position, force)

	return nil
}

// Step advances the simulation by dt seconds. The force queue is empty when Step
// returns, whether it succeeded or not.
func (w *World) Step(dt float64) error {
	v := w.vehicle
	if v == nil {
		return ErrNoVehicle
	}
	start := time.Now()

	// Phase 1: flooding
	report, err := v.Flood.Update(v.Body.Transform)
	if err != nil {
		v.Body.ClearForces()
		w.logger.Error("flood update failed", zap.Uint64("step", w.steps), zap.Error(err))
		return fmt.Errorf("step %d: %w", w.steps, err)
	}
	w.Events.processFloodReport(v, report, w.steps)
	w.logFloodReport(v, report)

	// Phase 2: gravity and displacement
	applyBuoyancy(v, w.Physics.GravityVector(), w.Physics.WaterDensity)

	// Phase 3: settle descent, or integration
	if v.settle.active && v.settle.step(v, w.Physics.Settle, dt) {
		w.logger.Info("vehicle settled",
			zap.String("name", v.Name),
			zap.Uint64("step", w.steps),
			zap.Float64("y", v.Body.Transform.Position.Y()),
		)
		w.Events.emit(SettledEvent{Vehicle: v, Position: v.Body.Transform.Position, Step: w.steps})
	}
	if v.settle.active {
		v.Body.ResetMotion()
	} else {
		v.Body.Integrate(dt)
	}

	// Phase 4: drag
	if w.Physics.Drag.Enabled {
		v.Body.ApplyDrag(w.Physics.Drag.Linear, w.Physics.Drag.Angular)
	}

	v.Body.ClearForces()

	elapsed := time.Since(start)
	if w.observer != nil {
		w.observer(w.steps, v, elapsed)
	}
	w.steps++
	w.recordStats(v, elapsed)

	w.Events.flush()

	return nil
}

func (w *World) logFloodReport(v *Vehicle, report flood.Report) {
	if report.Entered {
		w.logger.Debug("water contact", zap.String("name", v.Name), zap.Uint64("step", w.steps))
	}
	if report.SeedMissing {
		w.logger.Warn("water contact without a lower air block, retrying next step",
			zap.String("name", v.Name),
			zap.Uint64("step", w.steps),
		)
	}
	if report.Exited {
		w.logger.Debug("water contact lost",
			zap.String("name", v.Name),
			zap.Uint64("step", w.steps),
			zap.Int("drained", report.Removed),
		)
	}
}

// recordStats logs the average step duration and flooded cell count every
// Physics.StatsInterval steps.
func (w *World) recordStats(v *Vehicle, elapsed time.Duration) {
	if w.Physics.StatsInterval <= 0 {
		return
	}

	w.stats.count++
	w.stats.elapsed += elapsed
	w.stats.flooded += v.Flood.Len()
	if w.stats.count < w.Physics.StatsInterval {
		return
	}

	w.logger.Info("step statistics",
		zap.String("name", v.Name),
		zap.Uint64("step", w.steps),
		zap.Duration("avgStep", w.stats.elapsed/time.Duration(w.stats.count)),
		zap.Float64("avgFlooded", float64(w.stats.flooded)/float64(w.stats.count)),
		zap.Int("flooded", v.Flood.Len()),
	)
	w.stats = stepStats{}
}

// FloodedBlocks returns the world positions of the flooded cells.
func (w *World) FloodedBlocks() []mgl64.Vec3 {
	if w.vehicle == nil {
		return nil
	}

	tr := w.vehicle.Body.Transform
	frontier := w.vehicle.Flood.Frontier()
	positions := make([]mgl64.Vec3, 0, len(frontier))
	for _, entry := range frontier {
		positions = append(positions, tr.TransformPoint(entry.Block.Position))
	}

	return positions
}
