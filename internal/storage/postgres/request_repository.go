package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumka-2025/queue-hero/internal/domain"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

const requestColumns = `id, customer_id, description, location, status, agent_id, eta, created_at, updated_at`

func (r *RequestRepository) Create(ctx context.Context, customerID, description, location string, now time.Time) (domain.Request, error) {
	const stmt = `
INSERT INTO requests (customer_id, description, location, status, created_at, updated_at)
VALUES ($1, $2, $3, 'pending', $4, $4)
RETURNING ` + requestColumns

	req, err := scanRequest(r.pool.QueryRow(ctx, stmt, customerID, description, location, now))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Request{}, domain.ErrInvalidID
		}
		return domain.Request{}, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Request{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Request{}, domain.ErrRequestNotFound
		}
		return domain.Request{}, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// ListForCustomer returns every request owned by the customer, newest first.
func (r *RequestRepository) ListForCustomer(ctx context.Context, customerID string) ([]domain.Request, error) {
	const query = `SELECT ` + requestColumns + `
FROM requests
WHERE customer_id = $1
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list customer requests: %w", err)
	}
	return collectRequests(rows, "list customer requests")
}

// ListOpen returns every request an agent can still act on, oldest first so
// the pool reads as a queue.
func (r *RequestRepository) ListOpen(ctx context.Context) ([]domain.Request, error) {
	const query = `SELECT ` + requestColumns + `
FROM requests
WHERE status NOT IN ('completed', 'cancelled')
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open requests: %w", err)
	}
	return collectRequests(rows, "list open requests")
}

// UpdateStatusIf moves the request to next only when its stored status still
// equals expected, and reports how many rows changed (0 or 1). The guard is
// evaluated by Postgres inside the UPDATE, so concurrent callers racing on
// the same row serialize there and at most one of them observes a change
// count of 1. agentID and eta are non-nil only for the pending→claimed
// transition; COALESCE leaves the stored values alone otherwise.
func (r *RequestRepository) UpdateStatusIf(ctx context.Context, id string, expected, next domain.RequestStatus, agentID, eta *string, now time.Time) (int64, error) {
	const stmt = `
UPDATE requests
SET status = $3,
    agent_id = COALESCE($4, agent_id),
    eta = COALESCE($5, eta),
    updated_at = $6
WHERE id = $1 AND status = $2`

	tag, err := r.pool.Exec(ctx, stmt, id, expected, next, agentID, eta, now)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("conditional status update: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRequest(row pgx.Row) (domain.Request, error) {
	var req domain.Request
	err := row.Scan(
		&req.ID,
		&req.CustomerID,
		&req.Description,
		&req.Location,
		&req.Status,
		&req.AgentID,
		&req.ETA,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

func collectRequests(rows pgx.Rows, op string) ([]domain.Request, error) {
	defer rows.Close()

	out := make([]domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
