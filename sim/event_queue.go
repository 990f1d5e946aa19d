package sim

import "container/heap"

// EventQueue is a priority queue with deterministic ordering.
// Ordering: time, then scheduling order (earlier-scheduled first).
type EventQueue struct {
	events  []Event
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		events: make([]Event, 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Less implements heap.Interface
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}
	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// Push implements heap.Interface. Use Schedule instead.
func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(Event))
}

// Pop implements heap.Interface. Use PopNext instead.
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	q.events = old[0 : n-1]
	return item
}

// Schedule stamps the event with the next sequence number and inserts it.
func (q *EventQueue) Schedule(e Event) {
	q.nextSeq++
	e.seq = q.nextSeq
	heap.Push(q, e)
}

// PopNext removes and returns the earliest event; ok is false when empty.
func (q *EventQueue) PopNext() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(q).(Event), true
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// NextServiceEnd scans the pending events for the earliest ServiceEnd of
// the given stylist at or after now.
func (q *EventQueue) NextServiceEnd(kind StylistKind, now float64) (float64, bool) {
	found := false
	var next float64
	for _, e := range q.events {
		if e.Kind != EventServiceEnd || e.Stylist != kind || e.Time < now {
			continue
		}
		if !found || e.Time < next {
			next = e.Time
			found = true
		}
	}
	return next, found
}

// Clear drops every pending event and restarts the sequence.
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
	q.nextSeq = 0
}
