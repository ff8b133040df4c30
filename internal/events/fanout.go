package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/lumka-2025/queue-hero/internal/clock"
	"github.com/lumka-2025/queue-hero/internal/domain"
	"github.com/lumka-2025/queue-hero/internal/obs"
)

// Publisher delivers an event to every subscriber of a topic. Delivery is
// best-effort; a missed delivery is recovered by the client re-fetching
// current state, never by the publisher retrying.
type Publisher interface {
	Publish(ctx context.Context, topic string, evt Event) error
}

// Fanout maps a lifecycle transition onto its topic set and publishes the
// event to each. Publish errors are logged and counted, not returned: the
// store write already committed by the time fan-out runs, so the caller's
// result must not depend on delivery.
type Fanout struct {
	pub     Publisher
	clock   clock.Clock
	logger  *obs.Logger
	metrics *obs.Metrics
}

func NewFanout(pub Publisher, clk clock.Clock, logger *obs.Logger, metrics *obs.Metrics) *Fanout {
	return &Fanout{pub: pub, clock: clk, logger: logger, metrics: metrics}
}

func (f *Fanout) Emit(ctx context.Context, kind Kind, req domain.Request) {
	// One id per transition, shared across every topic, so subscribers on
	// overlapping topics can deduplicate.
	evt := Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		Request:    req,
		OccurredAt: f.clock.Now(),
	}
	for _, topic := range Topics(kind, req) {
		if err := f.pub.Publish(ctx, topic, evt); err != nil {
			f.logger.Error("event publish failed", map[string]any{
				"kind":       string(kind),
				"topic":      topic,
				"request_id": req.ID,
				"err":        err.Error(),
			})
			continue
		}
		f.metrics.EventPublished(string(kind))
	}
}
