package ports

import (
	"context"

	"stateflow/internal/core/domain/events"
)

// EventPublisher delivers lifecycle events to zero or more registered
// listeners. Delivery is best-effort and outside the transactional boundary:
// one listener's failure must neither block delivery to the others nor roll
// back the transition that produced the event, so Publish returns nothing.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
