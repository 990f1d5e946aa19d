// Package sim provides the discrete-event simulation engine for a three-stylist shop.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - customer.go, stylist.go: entities and their lifecycles
//   - event.go, event_queue.go: event kinds and the time-ordered queue
//   - simulator.go: the day controller and its event loop
//
// The event handlers live next to each other:
//   - arrival.go: the self-re-arming arrival generator
//   - assignment.go: weighted stylist draw, immediate service or waiting pool
//   - service.go: service start (revenue recognized here) and service end
//   - snack.go: the one-time snack for customers who waited too long
//   - recorder.go: one trace.StateRow per dispatched event
//
// aggregate.go runs many independent days and reduces them to summary
// statistics; sim/trace holds the row types and the row query.
//
// # Determinism
//
// Every draw comes from an explicit RandomSource. A fixed source produces a
// bit-for-bit identical day; concurrent multi-day runs derive one stream per
// day from a PartitionedRNG.
package sim
