package events

import (
	"time"

	"github.com/lumka-2025/queue-hero/internal/domain"
)

type Kind string

const (
	KindCreated   Kind = "request.created"
	KindClaimed   Kind = "request.claimed"
	KindUpdated   Kind = "request.updated"
	KindCompleted Kind = "request.completed"
	KindCancelled Kind = "request.cancelled"
)

// Event is the payload delivered to every topic interested in a transition.
// It carries the full request record so subscribers never need a follow-up
// fetch to render the change.
type Event struct {
	ID         string         `json:"id,omitempty"`
	Kind       Kind           `json:"kind"`
	Request    domain.Request `json:"request"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// TopicAgentPool receives every transition; it backs the agent dashboard view
// of open work.
const TopicAgentPool = "agent_pool"

func TopicRequest(requestID string) string {
	return "request:" + requestID
}

func TopicCustomer(customerID string) string {
	return "customer:" + customerID
}

func TopicAgent(agentID string) string {
	return "agent:" + agentID
}

// Topics derives the full topic set for a transition. Every kind reaches the
// agent pool and the per-request topic plus the owning customer; once an
// agent is assigned the per-agent topic joins the set.
func Topics(kind Kind, req domain.Request) []string {
	topics := []string{
		TopicAgentPool,
		TopicRequest(req.ID),
		TopicCustomer(req.CustomerID),
	}
	if kind != KindCreated && req.AgentID != nil {
		topics = append(topics, TopicAgent(*req.AgentID))
	}
	return topics
}
