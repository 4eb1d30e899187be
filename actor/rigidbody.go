package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDrag is the multiplicative velocity retention applied per step.
const DefaultDrag = 0.975

// RigidBody integrates the motion of a vehicle frame from queued forces.
type RigidBody struct {
	Transform Transform
	Mass      MassProperties

	// Linear motion
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3

	// Angular motion. AngularVelocity follows the force x lever convention, so the frame
	// turns by -|AngularVelocity| about its direction.
	AngularVelocity     mgl64.Vec3
	AngularAcceleration mgl64.Vec3

	forces []Force
}

// NewRigidBody creates a body at rest
func NewRigidBody(transform Transform, mass MassProperties) *RigidBody {
	return &RigidBody{
		Transform: transform,
		Mass:      mass,
		forces:    make([]Force, 0, 64),
	}
}

// AddForce queues a force for the next integration. It has no effect until then.
func (rb *RigidBody) AddForce(force Force) {
	rb.forces = append(rb.forces, force)
}

// ApplyForce queues force at a world-space position.
func (rb *RigidBody) ApplyForce(position, force mgl64.Vec3) {
	rb.AddForce(Force{Position: position, Vector: force})
}

// Forces returns the queued forces. The slice is reused after ClearForces.
func (rb *RigidBody) Forces() []Force {
	return rb.forces
}

func (rb *RigidBody) ClearForces() {
	rb.forces = rb.forces[:0]
}

// WorldCenterOfMass returns the center of mass in world space.
func (rb *RigidBody) WorldCenterOfMass() mgl64.Vec3 {
	return rb.Transform.TransformPoint(rb.Mass.CenterOfMass)
}

// NetForce sums every queued force.
func (rb *RigidBody) NetForce() mgl64.Vec3 {
	var net mgl64.Vec3
	for _, f := range rb.forces {
		net = net.Add(f.Vector)
	}

	return net
}

// NetTorque sums cross(force, position - CoM) over every queued force.
func (rb *RigidBody) NetTorque() mgl64.Vec3 {
	com := rb.WorldCenterOfMass()

	var net mgl64.Vec3
	for _, f := range rb.forces {
		net = net.Add(f.Vector.Cross(f.Position.Sub(com)))
	}

	return net
}

// LinearAcceleration returns force / mass along the force direction, zero for zero force.
func (rb *RigidBody) LinearAcceleration(force mgl64.Vec3) mgl64.Vec3 {
	magnitude := force.Len()
	if magnitude == 0 || rb.Mass.Total <= 0 {
		return mgl64.Vec3{}
	}

	return force.Normalize().Mul(magnitude / rb.Mass.Total)
}

// AngularAccelerationFor returns torque / inertia about the torque axis. The axis is taken
// into the vehicle frame because the mass distribution is stored there.
func (rb *RigidBody) AngularAccelerationFor(torque mgl64.Vec3) mgl64.Vec3 {
	magnitude := torque.Len()
	if magnitude == 0 {
		return mgl64.Vec3{}
	}

	inertia := rb.Mass.InertiaAbout(rb.Transform.InverseTransformDirection(torque))
	if inertia <= 0 {
		return mgl64.Vec3{}
	}

	return torque.Normalize().Mul(magnitude / inertia)
}

// Integrate advances velocity and pose by dt from the queued forces. Forces stay queued;
// the caller clears them once the step is over.
func (rb *RigidBody) Integrate(dt float64) {
	rb.Acceleration = rb.LinearAcceleration(rb.NetForce())
	rb.AngularAcceleration = rb.AngularAccelerationFor(rb.NetTorque())

	rb.Velocity = rb.Velocity.Add(rb.Acceleration.Mul(dt))
	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	rb.AngularVelocity = rb.AngularVelocity.Add(rb.AngularAcceleration.Mul(dt))
	rb.Transform.RotateAround(rb.WorldCenterOfMass(), rb.AngularVelocity, -rb.AngularVelocity.Len()*dt)
}

// ApplyDrag scales both velocities by the retention factors.
func (rb *RigidBody) ApplyDrag(linear, angular float64) {
	rb.Velocity = rb.Velocity.Mul(linear)
	rb.AngularVelocity = rb.AngularVelocity.Mul(angular)
}

// ResetMotion zeroes velocities and accelerations.
func (rb *RigidBody) ResetMotion() {
	rb.Velocity = mgl64.Vec3{}
	rb.Acceleration = mgl64.Vec3{}
	rb.AngularVelocity = mgl64.Vec3{}
	rb.AngularAcceleration = mgl64.Vec3{}
}
