package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newRowBody(masses ...float64) *RigidBody {
	return NewRigidBody(NewTransform(), ComputeMassProperties(rowGrid(masses...), 1))
}

// =============================================================================
// Force queue Tests
// =============================================================================

func TestRigidBody_ForceQueue(t *testing.T) {
	rb := newRowBody(1, 1, 1)

	rb.ApplyForce(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 2, 0})
	rb.AddForce(Force{Position: mgl64.Vec3{-1, 0, 0}, Vector: mgl64.Vec3{0, 3, 0}})

	if len(rb.Forces()) != 2 {
		t.Fatalf("len(Forces()) = %d, want 2", len(rb.Forces()))
	}
	if got := rb.NetForce(); !vec3AlmostEqual(got, mgl64.Vec3{0, 5, 0}, 1e-12) {
		t.Errorf("NetForce() = %v, want {0 5 0}", got)
	}
	// (0,2,0)x(1,0,0) + (0,3,0)x(-1,0,0) = (0,0,-2) + (0,0,3)
	if got := rb.NetTorque(); !vec3AlmostEqual(got, mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("NetTorque() = %v, want {0 0 1}", got)
	}

	rb.ClearForces()
	if len(rb.Forces()) != 0 {
		t.Errorf("len(Forces()) = %d after ClearForces, want 0", len(rb.Forces()))
	}
	if rb.NetForce() != (mgl64.Vec3{}) {
		t.Errorf("NetForce() = %v after ClearForces, want zero", rb.NetForce())
	}
}

// =============================================================================
// Acceleration Tests
// =============================================================================

func TestLinearAcceleration_ZeroForce(t *testing.T) {
	rb := newRowBody(2)

	got := rb.LinearAcceleration(mgl64.Vec3{})
	if got != (mgl64.Vec3{}) {
		t.Errorf("LinearAcceleration(0) = %v, want zero", got)
	}
}

func TestAngularAcceleration_ZeroTorque(t *testing.T) {
	rb := newRowBody(1, 1, 1)

	got := rb.AngularAccelerationFor(mgl64.Vec3{})
	if got != (mgl64.Vec3{}) {
		t.Errorf("AngularAccelerationFor(0) = %v, want zero", got)
	}
}

func TestAngularAcceleration_ZeroInertia(t *testing.T) {
	// a single point mass has no inertia about an axis through itself
	rb := newRowBody(2)

	got := rb.AngularAccelerationFor(mgl64.Vec3{0, 0, 1})
	if got != (mgl64.Vec3{}) {
		t.Errorf("AngularAccelerationFor() = %v, want zero", got)
	}
}

func TestAngularAcceleration_UsesVehicleFrameAxis(t *testing.T) {
	rb := newRowBody(1, 1, 1)
	// turn the row so it lies along world Z; inertia about world X is then 2
	rb.Transform.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	got := rb.AngularAccelerationFor(mgl64.Vec3{4, 0, 0})
	if !vec3AlmostEqual(got, mgl64.Vec3{2, 0, 0}, 1e-9) {
		t.Errorf("AngularAccelerationFor() = %v, want {2 0 0}", got)
	}
}

// =============================================================================
// Integrate Tests
// =============================================================================

func TestIntegrate_NoForces(t *testing.T) {
	rb := newRowBody(1)
	rb.Velocity = mgl64.Vec3{1, 2, 3}

	rb.Integrate(0.1)

	if !vec3AlmostEqual(rb.Velocity, mgl64.Vec3{1, 2, 3}, 1e-12) {
		t.Errorf("Velocity = %v, want {1 2 3}", rb.Velocity)
	}
	if !vec3AlmostEqual(rb.Transform.Position, mgl64.Vec3{0.1, 0.2, 0.3}, 1e-12) {
		t.Errorf("Position = %v, want {0.1 0.2 0.3}", rb.Transform.Position)
	}
	for i := 0; i < 3; i++ {
		if math.IsNaN(rb.Acceleration[i]) || math.IsNaN(rb.AngularAcceleration[i]) {
			t.Fatalf("NaN acceleration: %v %v", rb.Acceleration, rb.AngularAcceleration)
		}
	}
}

func TestIntegrate_LinearForceAtCenterOfMass(t *testing.T) {
	rb := newRowBody(2)
	rb.ApplyForce(rb.WorldCenterOfMass(), mgl64.Vec3{0, 10, 0})

	rb.Integrate(0.1)

	if !vec3AlmostEqual(rb.Acceleration, mgl64.Vec3{0, 5, 0}, 1e-12) {
		t.Errorf("Acceleration = %v, want {0 5 0}", rb.Acceleration)
	}
	if !vec3AlmostEqual(rb.Velocity, mgl64.Vec3{0, 0.5, 0}, 1e-12) {
		t.Errorf("Velocity = %v, want {0 0.5 0}", rb.Velocity)
	}
	if !vec3AlmostEqual(rb.Transform.Position, mgl64.Vec3{0, 0.05, 0}, 1e-12) {
		t.Errorf("Position = %v, want {0 0.05 0}", rb.Transform.Position)
	}
	if rb.AngularVelocity != (mgl64.Vec3{}) {
		t.Errorf("AngularVelocity = %v, want zero", rb.AngularVelocity)
	}
	if len(rb.Forces()) != 1 {
		t.Errorf("Integrate must leave the queue to the caller")
	}
}

func TestIntegrate_OffCenterForceLiftsThatSide(t *testing.T) {
	rb := newRowBody(1, 1, 1)
	rb.ApplyForce(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})

	rb.Integrate(0.1)

	// force x lever = (0,0,-1), inertia about z = 2
	if !vec3AlmostEqual(rb.AngularAcceleration, mgl64.Vec3{0, 0, -0.5}, 1e-12) {
		t.Errorf("AngularAcceleration = %v, want {0 0 -0.5}", rb.AngularAcceleration)
	}

	right := rb.Transform.TransformPoint(mgl64.Vec3{1, 0, 0})
	left := rb.Transform.TransformPoint(mgl64.Vec3{-1, 0, 0})
	if right.Y() <= rb.Transform.Position.Y() {
		t.Errorf("pushed side y = %v, want above center %v", right.Y(), rb.Transform.Position.Y())
	}
	if left.Y() >= rb.Transform.Position.Y() {
		t.Errorf("opposite side y = %v, want below center %v", left.Y(), rb.Transform.Position.Y())
	}
}

func TestApplyDrag(t *testing.T) {
	rb := newRowBody(1)
	rb.Velocity = mgl64.Vec3{1, 0, -2}
	rb.AngularVelocity = mgl64.Vec3{0, 4, 0}

	rb.ApplyDrag(DefaultDrag, 0.5)

	if !vec3AlmostEqual(rb.Velocity, mgl64.Vec3{0.975, 0, -1.95}, 1e-12) {
		t.Errorf("Velocity = %v, want {0.975 0 -1.95}", rb.Velocity)
	}
	if !vec3AlmostEqual(rb.AngularVelocity, mgl64.Vec3{0, 2, 0}, 1e-12) {
		t.Errorf("AngularVelocity = %v, want {0 2 0}", rb.AngularVelocity)
	}
}

func TestResetMotion(t *testing.T) {
	rb := newRowBody(1)
	rb.Velocity = mgl64.Vec3{1, 1, 1}
	rb.AngularVelocity = mgl64.Vec3{1, 1, 1}
	rb.Acceleration = mgl64.Vec3{1, 1, 1}

	rb.ResetMotion()

	if rb.Velocity != (mgl64.Vec3{}) || rb.AngularVelocity != (mgl64.Vec3{}) || rb.Acceleration != (mgl64.Vec3{}) {
		t.Errorf("ResetMotion left motion: v=%v w=%v a=%v", rb.Velocity, rb.AngularVelocity, rb.Acceleration)
	}
}
