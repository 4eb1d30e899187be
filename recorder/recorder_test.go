package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/akmonengine/buoy"
	"github.com/akmonengine/buoy/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRecorder(t *testing.T, batchSize int) *Recorder {
	t.Helper()

	r, err := Open("sqlite", filepath.Join(t.TempDir(), "telemetry.db"), batchSize, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	return r
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "", 10, nil)
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestRecorder_RecordsWorldSteps(t *testing.T) {
	r := openTestRecorder(t, 4)
	physics := config.Default().Physics

	world := buoy.NewWorld(physics, nil)
	v, err := world.LoadDefault()
	require.NoError(t, err)

	run, err := r.StartRun(v, physics)
	require.NoError(t, err)
	world.Observe(r.Observer(run))

	for i := 0; i < 10; i++ {
		require.NoError(t, world.Step(physics.Timestep))
	}
	require.NoError(t, r.FinishRun(run, world.Steps()))

	samples, err := r.Samples(run.ID)
	require.NoError(t, err)
	require.Len(t, samples, 10)
	for i, s := range samples {
		assert.Equal(t, int64(i), s.Step)
		assert.Equal(t, run.ID, s.RunID)
		assert.True(t, s.Settling)
	}
	last := samples[len(samples)-1]
	assert.InDelta(t, v.Body.Transform.Position.Y(), last.PositionY, 1e-12)

	runs, err := r.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(10), runs[0].Steps)
	assert.Equal(t, buoy.DefaultVehicleName, runs[0].VehicleName)
	assert.NotNil(t, runs[0].FinishedAt)
}

func TestRecorder_BuffersUntilBatch(t *testing.T) {
	r := openTestRecorder(t, 3)
	physics := config.Default().Physics

	v, err := buoy.DefaultVehicle(physics)
	require.NoError(t, err)
	run, err := r.StartRun(v, physics)
	require.NoError(t, err)

	require.NoError(t, r.Record(run, 0, v, time.Millisecond))
	require.NoError(t, r.Record(run, 1, v, time.Millisecond))

	samples, err := r.Samples(run.ID)
	require.NoError(t, err)
	assert.Empty(t, samples)

	require.NoError(t, r.Record(run, 2, v, time.Millisecond))

	samples, err = r.Samples(run.ID)
	require.NoError(t, err)
	assert.Len(t, samples, 3)
	assert.Equal(t, time.Millisecond.Nanoseconds(), samples[0].StepNanos)
}

func TestRecorder_SeparatesRuns(t *testing.T) {
	r := openTestRecorder(t, 100)
	physics := config.Default().Physics

	first, err := buoy.DefaultVehicle(physics)
	require.NoError(t, err)
	second, err := buoy.DefaultVehicle(physics)
	require.NoError(t, err)

	runA, err := r.StartRun(first, physics)
	require.NoError(t, err)
	runB, err := r.StartRun(second, physics)
	require.NoError(t, err)

	require.NoError(t, r.Record(runA, 0, first, 0))
	require.NoError(t, r.Record(runB, 0, second, 0))
	require.NoError(t, r.Record(runB, 1, second, 0))
	require.NoError(t, r.Flush())

	a, err := r.Samples(runA.ID)
	require.NoError(t, err)
	b, err := r.Samples(runB.ID)
	require.NoError(t, err)

	assert.Len(t, a, 1)
	assert.Len(t, b, 2)
	assert.NotEqual(t, runA.VehicleID, runB.VehicleID)
	assert.Equal(t, runA.Fingerprint, runB.Fingerprint)
}
