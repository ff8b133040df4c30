package domain

import "time"

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusClaimed    RequestStatus = "claimed"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Request is a customer service request moving through the dispatch lifecycle.
// AgentID is set exactly once, at the pending→claimed transition, and ETA is
// only ever written alongside it.
type Request struct {
	ID          string        `json:"id"`
	CustomerID  string        `json:"customer_id"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Status      RequestStatus `json:"status"`
	AgentID     *string       `json:"agent_id"`
	ETA         *string       `json:"eta"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ClaimedBy reports whether the request is assigned to the given agent.
func (r Request) ClaimedBy(agentID string) bool {
	return r.AgentID != nil && *r.AgentID == agentID
}
