package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventRotationCorrected = "rotation_corrected"

// RotationCorrection is emitted when a contained body is snapped to the
// rotation its container lays it out at.
type RotationCorrection struct {
	Entity Entity
	From   float64
	To     float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
