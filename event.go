package buoy

import (
	"github.com/akmonengine/buoy/flood"
	"github.com/akmonengine/buoy/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	WATER_ENTER EventType = iota
	WATER_EXIT
	FLOOD_SEED
	SETTLED
	VEHICLE_LOADED
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case WATER_ENTER:
		return "water_enter"
	case WATER_EXIT:
		return "water_exit"
	case FLOOD_SEED:
		return "flood_seed"
	case SETTLED:
		return "settled"
	case VEHICLE_LOADED:
		return "vehicle_loaded"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Water events
type WaterEnterEvent struct {
	Vehicle *Vehicle
	// Contact is the solid block found touching the water.
	Contact voxel.Coord
	Step    uint64
}

func (e WaterEnterEvent) Type() EventType { return WATER_ENTER }

type WaterExitEvent struct {
	Vehicle *Vehicle
	Step    uint64
}

func (e WaterExitEvent) Type() EventType { return WATER_EXIT }

type FloodSeedEvent struct {
	Vehicle *Vehicle
	Seed    voxel.Coord
	Step    uint64
}

func (e FloodSeedEvent) Type() EventType { return FLOOD_SEED }

// Lifecycle events
type SettledEvent struct {
	Vehicle  *Vehicle
	Position mgl64.Vec3
	Step     uint64
}

func (e SettledEvent) Type() EventType { return SETTLED }

type VehicleLoadedEvent struct {
	Vehicle *Vehicle
}

func (e VehicleLoadedEvent) Type() EventType { return VEHICLE_LOADED }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers what happened during a step and hands it to listeners once the step
// is over.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// processFloodReport turns the transitions of a flood update into events.
func (e *Events) processFloodReport(vehicle *Vehicle, report flood.Report, step uint64) {
	if report.Entered {
		contact, _ := vehicle.Flood.Contact()
		e.emit(WaterEnterEvent{Vehicle: vehicle, Contact: contact, Step: step})
	}
	if report.Seeded {
		e.emit(FloodSeedEvent{Vehicle: vehicle, Seed: report.Seed, Step: step})
	}
	if report.Exited {
		e.emit(WaterExitEvent{Vehicle: vehicle, Step: step})
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
