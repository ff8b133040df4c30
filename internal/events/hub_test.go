package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumka-2025/queue-hero/internal/domain"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub(nil)

	subA := hub.Subscribe("agent_pool")
	subB := hub.Subscribe("agent_pool")
	other := hub.Subscribe("customer:c1")
	defer subA.Close()
	defer subB.Close()
	defer other.Close()

	evt := Event{Kind: KindCreated, Request: domain.Request{ID: "r1", CustomerID: "c1"}}
	require.NoError(t, hub.Publish(context.Background(), "agent_pool", evt))

	assert.Equal(t, "r1", (<-subA.Events()).Request.ID)
	assert.Equal(t, "r1", (<-subB.Events()).Request.ID)
	assert.Empty(t, other.Events())
}

func TestHub_CloseRemovesSubscription(t *testing.T) {
	hub := NewHub(nil)

	sub := hub.Subscribe("request:r1")
	assert.Equal(t, 1, hub.SubscriberCount("request:r1"))

	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount("request:r1"))

	// Closing twice is safe, and publish to an empty topic is a no-op.
	sub.Close()
	require.NoError(t, hub.Publish(context.Background(), "request:r1", Event{Kind: KindUpdated}))

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(nil)

	sub := hub.Subscribe("agent_pool")
	defer sub.Close()

	// Overfill the buffer; Publish must never block.
	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, hub.Publish(context.Background(), "agent_pool", Event{Kind: KindUpdated}))
	}

	assert.Len(t, sub.Events(), subscriberBuffer)
}
