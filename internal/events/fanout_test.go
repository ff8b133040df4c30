package events

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lumka-2025/queue-hero/internal/clock"
	"github.com/lumka-2025/queue-hero/internal/domain"
	"github.com/lumka-2025/queue-hero/internal/obs"
)

type flakyPublisher struct {
	failTopic string
	delivered []string
	events    []Event
}

func (p *flakyPublisher) Publish(_ context.Context, topic string, evt Event) error {
	if topic == p.failTopic {
		return errors.New("subscriber gone")
	}
	p.delivered = append(p.delivered, topic)
	p.events = append(p.events, evt)
	return nil
}

func TestFanout_EmitIsBestEffort(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	agent := "a1"
	req := domain.Request{ID: "r1", CustomerID: "c1", Status: domain.StatusClaimed, AgentID: &agent}

	var logBuf bytes.Buffer
	pub := &flakyPublisher{failTopic: "customer:c1"}
	fanout := NewFanout(pub, clock.NewFixed(now), obs.NewLoggerTo(&logBuf), nil)

	// A failing topic must not stop delivery to the rest of the set.
	fanout.Emit(context.Background(), KindClaimed, req)

	assert.ElementsMatch(t, []string{"agent_pool", "request:r1", "agent:a1"}, pub.delivered)
	assert.Contains(t, logBuf.String(), "event publish failed")
	assert.Contains(t, logBuf.String(), "customer:c1")

	// Every copy of the transition carries the same envelope id.
	assert.NotEmpty(t, pub.events[0].ID)
	for _, evt := range pub.events {
		assert.Equal(t, pub.events[0].ID, evt.ID)
		assert.Equal(t, now, evt.OccurredAt)
	}
}
