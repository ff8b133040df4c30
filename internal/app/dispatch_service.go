package app

import (
	"context"
	"strings"
	"time"

	"github.com/lumka-2025/queue-hero/internal/clock"
	"github.com/lumka-2025/queue-hero/internal/domain"
	"github.com/lumka-2025/queue-hero/internal/events"
	"github.com/lumka-2025/queue-hero/internal/obs"
)

// RequestStore is the persistence contract the dispatch core needs. The
// conditional write in UpdateStatusIf is the only mutation primitive: it
// applies the new status (and, on claim, agent/eta) only when the stored
// status still equals expected, atomically at the store, and reports the
// changed-row count. Exclusive claiming rests entirely on that guarantee.
type RequestStore interface {
	Create(ctx context.Context, customerID, description, location string, now time.Time) (domain.Request, error)
	GetByID(ctx context.Context, id string) (domain.Request, error)
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Request, error)
	ListOpen(ctx context.Context) ([]domain.Request, error)
	UpdateStatusIf(ctx context.Context, id string, expected, next domain.RequestStatus, agentID, eta *string, now time.Time) (int64, error)
}

// DispatchService owns the request lifecycle: submission, the exclusive
// claim, start/complete/cancel transitions, and the fan-out that follows
// every successful write.
type DispatchService struct {
	store   RequestStore
	fanout  *events.Fanout
	clock   clock.Clock
	metrics *obs.Metrics
}

func NewDispatchService(store RequestStore, fanout *events.Fanout, clk clock.Clock, metrics *obs.Metrics) *DispatchService {
	return &DispatchService{
		store:   store,
		fanout:  fanout,
		clock:   clk,
		metrics: metrics,
	}
}

type SubmitInput struct {
	CustomerID  string
	Description string
	Location    string
}

func (s *DispatchService) Submit(ctx context.Context, in SubmitInput) (domain.Request, error) {
	description := strings.TrimSpace(in.Description)
	location := strings.TrimSpace(in.Location)
	if description == "" || location == "" {
		return domain.Request{}, domain.ErrMissingFields
	}

	started := time.Now()
	req, err := s.store.Create(ctx, in.CustomerID, description, location, s.clock.Now())
	s.metrics.ObserveStoreMS("create", float64(time.Since(started).Microseconds())/1000)
	if err != nil {
		s.metrics.Transition("submit", "error")
		return domain.Request{}, err
	}

	s.metrics.Transition("submit", "ok")
	s.fanout.Emit(ctx, events.KindCreated, req)
	return req, nil
}

func (s *DispatchService) ListMine(ctx context.Context, customerID string) ([]domain.Request, error) {
	return s.store.ListForCustomer(ctx, customerID)
}

// ListOpenPool returns the agent dashboard view: everything not yet finished,
// oldest first.
func (s *DispatchService) ListOpenPool(ctx context.Context) ([]domain.Request, error) {
	return s.store.ListOpen(ctx)
}

func (s *DispatchService) Get(ctx context.Context, id string) (domain.Request, error) {
	return s.store.GetByID(ctx, id)
}

// Claim atomically assigns a pending request to the agent. Under concurrent
// claims the store serializes writes to the row, so exactly one caller sees a
// changed-row count of 1; every loser lands here with 0 and gets ErrConflict
// (or ErrRequestNotFound when the id never existed). The agent binding and
// eta ride in the same conditional write, so a lost race can never overwrite
// the winner's assignment.
func (s *DispatchService) Claim(ctx context.Context, agentID, requestID string, eta *string) (domain.Request, error) {
	started := time.Now()
	changed, err := s.store.UpdateStatusIf(ctx, requestID, domain.StatusPending, domain.StatusClaimed, &agentID, eta, s.clock.Now())
	s.metrics.ObserveStoreMS("conditional_update", float64(time.Since(started).Microseconds())/1000)
	if err != nil {
		s.metrics.Claim("error")
		return domain.Request{}, err
	}

	if changed == 0 {
		// Lost the race or bad id; a follow-up read tells those apart.
		if _, err := s.store.GetByID(ctx, requestID); err != nil {
			if err == domain.ErrRequestNotFound || err == domain.ErrInvalidID {
				s.metrics.Claim("not_found")
				return domain.Request{}, domain.ErrRequestNotFound
			}
			s.metrics.Claim("error")
			return domain.Request{}, err
		}
		s.metrics.Claim("conflict")
		return domain.Request{}, domain.ErrConflict
	}

	req, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		s.metrics.Claim("error")
		return domain.Request{}, err
	}

	s.metrics.Claim("won")
	s.fanout.Emit(ctx, events.KindClaimed, req)
	return req, nil
}

// Start moves a claimed request to in_progress. Only the agent bound at claim
// time may start it.
func (s *DispatchService) Start(ctx context.Context, agentID, requestID string) (domain.Request, error) {
	return s.transition(ctx, "start", requestID, domain.StatusClaimed, domain.StatusInProgress, events.KindUpdated,
		func(req domain.Request) error {
			if !req.ClaimedBy(agentID) {
				return domain.ErrNotAllowed
			}
			return nil
		})
}

// Complete finishes an in_progress request. Only the claiming agent may
// complete it; a repeat call conflicts because the status already moved.
func (s *DispatchService) Complete(ctx context.Context, agentID, requestID string) (domain.Request, error) {
	return s.transition(ctx, "complete", requestID, domain.StatusInProgress, domain.StatusCompleted, events.KindCompleted,
		func(req domain.Request) error {
			if !req.ClaimedBy(agentID) {
				return domain.ErrNotAllowed
			}
			return nil
		})
}

// Cancel applies the role-dependent cancellation rules: the owning customer
// may cancel while pending or claimed, the claiming agent while claimed.
// Terminal requests conflict (someone finished or cancelled it first), and
// states with no cancel edge for the caller are invalid transitions.
func (s *DispatchService) Cancel(ctx context.Context, caller domain.Identity, requestID string) (domain.Request, error) {
	req, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		s.metrics.Transition("cancel", transitionResult(err))
		return domain.Request{}, err
	}

	expected, err := cancelEdge(caller, req)
	if err != nil {
		s.metrics.Transition("cancel", transitionResult(err))
		return domain.Request{}, err
	}

	return s.conditional(ctx, "cancel", requestID, expected, domain.StatusCancelled, events.KindCancelled)
}

// AdminCancel cancels from any non-terminal state, bypassing ownership. It
// backs the operator surface, not a user role.
func (s *DispatchService) AdminCancel(ctx context.Context, requestID string) (domain.Request, error) {
	req, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		s.metrics.Transition("cancel", transitionResult(err))
		return domain.Request{}, err
	}
	if req.Status.Terminal() {
		s.metrics.Transition("cancel", "conflict")
		return domain.Request{}, domain.ErrConflict
	}
	return s.conditional(ctx, "cancel", requestID, req.Status, domain.StatusCancelled, events.KindCancelled)
}

func cancelEdge(caller domain.Identity, req domain.Request) (domain.RequestStatus, error) {
	if req.Status.Terminal() {
		return "", domain.ErrConflict
	}

	switch caller.Role {
	case domain.RoleCustomer:
		if req.CustomerID != caller.UserID {
			return "", domain.ErrNotAllowed
		}
		switch req.Status {
		case domain.StatusPending, domain.StatusClaimed:
			return req.Status, nil
		default:
			return "", domain.ErrInvalidTransition
		}
	case domain.RoleAgent:
		if !req.ClaimedBy(caller.UserID) {
			return "", domain.ErrNotAllowed
		}
		if req.Status != domain.StatusClaimed {
			return "", domain.ErrInvalidTransition
		}
		return domain.StatusClaimed, nil
	default:
		return "", domain.ErrNotAllowed
	}
}

// transition runs the shared fetch → authorize → conditional-write shape for
// the fixed-edge operations. The pre-read only feeds authorization; the
// status race is settled by the guarded write, never by the read.
func (s *DispatchService) transition(ctx context.Context, action, requestID string, expected, next domain.RequestStatus, kind events.Kind, authorize func(domain.Request) error) (domain.Request, error) {
	req, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		s.metrics.Transition(action, transitionResult(err))
		return domain.Request{}, err
	}
	if err := authorize(req); err != nil {
		s.metrics.Transition(action, transitionResult(err))
		return domain.Request{}, err
	}
	return s.conditional(ctx, action, requestID, expected, next, kind)
}

func (s *DispatchService) conditional(ctx context.Context, action, requestID string, expected, next domain.RequestStatus, kind events.Kind) (domain.Request, error) {
	started := time.Now()
	changed, err := s.store.UpdateStatusIf(ctx, requestID, expected, next, nil, nil, s.clock.Now())
	s.metrics.ObserveStoreMS("conditional_update", float64(time.Since(started).Microseconds())/1000)
	if err != nil {
		s.metrics.Transition(action, "error")
		return domain.Request{}, err
	}
	if changed == 0 {
		s.metrics.Transition(action, "conflict")
		return domain.Request{}, domain.ErrConflict
	}

	req, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		s.metrics.Transition(action, "error")
		return domain.Request{}, err
	}

	s.metrics.Transition(action, "ok")
	s.fanout.Emit(ctx, kind, req)
	return req, nil
}

func transitionResult(err error) string {
	switch err {
	case domain.ErrRequestNotFound, domain.ErrInvalidID:
		return "not_found"
	case domain.ErrNotAllowed:
		return "forbidden"
	case domain.ErrConflict, domain.ErrInvalidTransition:
		return "conflict"
	default:
		return "error"
	}
}
