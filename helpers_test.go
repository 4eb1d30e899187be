package buoy

import (
	"math"
	"testing"

	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

// testPhysics returns the default constants with settle and drag off, so that a step
// is a plain integration.
func testPhysics() config.Physics {
	physics := config.Default().Physics
	physics.Settle.Enabled = false
	physics.Drag.Enabled = false
	physics.StatsInterval = 0

	return physics
}

func singleBlockVehicle(t *testing.T, physics config.Physics) *Vehicle {
	t.Helper()

	occ := voxel.NewGrid[int](1, 1, 1)
	occ.Set(0, 0, 0, 1)

	v, err := NewUniformVehicle("single", occ, physics)
	if err != nil {
		t.Fatalf("NewUniformVehicle() error = %v", err)
	}

	return v
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) countType(eventType EventType) int {
	n := 0
	for _, e := range ec.events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}

func (ec *eventCapture) subscribeAll(events *Events) {
	for _, t := range []EventType{WATER_ENTER, WATER_EXIT, FLOOD_SEED, SETTLED, VEHICLE_LOADED} {
		events.Subscribe(t, ec.capture)
	}
}
