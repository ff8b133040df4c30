package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumka-2025/queue-hero/internal/domain"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, marketerID, title, location, details string, now time.Time) (domain.Booking, error) {
	const stmt = `
INSERT INTO bookings (marketer_id, title, location, details, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, marketer_id, title, location, details, created_at`

	var b domain.Booking
	err := r.pool.QueryRow(ctx, stmt, marketerID, title, location, details, now).
		Scan(&b.ID, &b.MarketerID, &b.Title, &b.Location, &b.Details, &b.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrInvalidID
		}
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) ListForMarketer(ctx context.Context, marketerID string) ([]domain.Booking, error) {
	const query = `
SELECT id, marketer_id, title, location, details, created_at
FROM bookings
WHERE marketer_id = $1
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, marketerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.MarketerID, &b.Title, &b.Location, &b.Details, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("list bookings: scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}
