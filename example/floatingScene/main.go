package main

import (
	"fmt"

	"github.com/akmonengine/buoy"
	"github.com/akmonengine/buoy/config"
	"github.com/go-gl/mathgl/mgl64"
)

// FloatDefaultHull drops the default hull and prints its state every few steps.
func FloatDefaultHull() {
	fmt.Println("Default hull, settle then free float")
	fmt.Println("====================================")

	physics := config.Default().Physics
	world := buoy.NewWorld(physics, nil)

	world.Events.Subscribe(buoy.WATER_ENTER, func(e buoy.Event) {
		enter := e.(buoy.WaterEnterEvent)
		fmt.Printf(">> water contact at cell %v (step %d)\n", enter.Contact, enter.Step)
	})
	world.Events.Subscribe(buoy.FLOOD_SEED, func(e buoy.Event) {
		seed := e.(buoy.FloodSeedEvent)
		fmt.Printf(">> flooding starts at cell %v\n", seed.Seed)
	})
	world.Events.Subscribe(buoy.SETTLED, func(e buoy.Event) {
		settled := e.(buoy.SettledEvent)
		fmt.Printf(">> settled at %v\n", settled.Position)
	})

	v, err := world.LoadDefault()
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s: %d blocks, mass %.0f kg, secure height %.3f\n",
		v.Name, len(v.Blocks.Solids()), v.Body.Mass.Total, v.SecureHeight)
	fmt.Println()

	const maxSteps = 1500
	for step := 0; step < maxSteps; step++ {
		// a gust on the bow once the hull floats
		if step == 1000 {
			bow := v.Body.Transform.TransformPoint(mgl64.Vec3{2, 2, 4})
			if err := world.ApplyForce(bow, mgl64.Vec3{20000, 0, 0}); err != nil {
				panic(err)
			}
		}

		if err := world.Step(physics.Timestep); err != nil {
			panic(err)
		}

		if step%50 == 0 {
			fmt.Printf("step %4d  y=%7.3f  vy=%7.3f  w=%v  flooded=%d\n",
				step,
				v.Body.Transform.Position.Y(),
				v.Body.Velocity.Y(),
				v.Body.AngularVelocity,
				len(world.FloodedBlocks()),
			)
		}
	}
}

func main() {
	FloatDefaultHull()
}
