package buoy

import (
	"github.com/akmonengine/buoy/config"
	"github.com/go-gl/mathgl/mgl64"
)

// settleState lowers a freshly loaded vehicle at a fixed speed, without integrating
// forces, until the water pushes back.
type settleState struct {
	active    bool
	remaining int
}

// beginSettle places the vehicle at its secure height and starts the descent.
func beginSettle(v *Vehicle, cfg config.Settle) {
	if !cfg.Enabled {
		v.settle = settleState{}
		return
	}

	position := v.Body.Transform.Position
	v.Body.Transform.Position = mgl64.Vec3{position.X(), v.SecureHeight, position.Z()}
	v.Body.ResetMotion()
	v.settle = settleState{active: true, remaining: cfg.Steps}
}

// step moves the vehicle down while the queued forces do not lift it by more than the
// threshold. Otherwise it counts down and returns true once the countdown is over.
func (s *settleState) step(v *Vehicle, cfg config.Settle, dt float64) bool {
	position := v.Body.Transform.Position
	if v.Body.NetForce().Y() <= cfg.ForceThreshold && position.Y() > -v.SecureHeight {
		v.Body.Transform.Position = position.Sub(mgl64.Vec3{0, cfg.Speed * dt, 0})
		return false
	}

	s.remaining--
	if s.remaining <= 0 {
		s.active = false
		return true
	}

	return false
}
