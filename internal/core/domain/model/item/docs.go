// Package item contains the domain model of the state-transition engine:
// the State value object, the immutable Catalog of allowed transitions,
// the StateTransition history record, and the Item aggregate that owns its
// transition history.
//
// The package enforces the core invariants of the engine:
//
//   - an item's current state always equals the to-state of the last entry
//     in its transition history, or the catalog's initial state when the
//     history is empty;
//   - transition history is append-only and each entry's from-state chains
//     to the previous entry's to-state;
//   - a terminal state (one with no outgoing edges in the catalog) never
//     appears as the from-state of a committed transition;
//   - the aggregate version increases by exactly one per committed
//     transition, which is what the repository's optimistic-concurrency
//     check keys on.
//
// The catalog is constructed once at process start (typically from a YAML
// document, see ParseCatalog) and shared read-only by all engine invocations.
package item
