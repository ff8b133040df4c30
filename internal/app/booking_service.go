package app

import (
	"context"
	"strings"
	"time"

	"github.com/lumka-2025/queue-hero/internal/clock"
	"github.com/lumka-2025/queue-hero/internal/domain"
)

// BookingStore is the persistence contract for marketer bookings.
type BookingStore interface {
	Create(ctx context.Context, marketerID, title, location, details string, now time.Time) (domain.Booking, error)
	ListForMarketer(ctx context.Context, marketerID string) ([]domain.Booking, error)
}

// BookingService handles marketer venue bookings. No lifecycle, no fan-out.
type BookingService struct {
	bookings BookingStore
	clock    clock.Clock
}

func NewBookingService(bookings BookingStore, clk clock.Clock) *BookingService {
	return &BookingService{bookings: bookings, clock: clk}
}

type CreateBookingInput struct {
	MarketerID string
	Title      string
	Location   string
	Details    string
}

func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	if title == "" || location == "" {
		return domain.Booking{}, domain.ErrMissingFields
	}
	return s.bookings.Create(ctx, in.MarketerID, title, location, strings.TrimSpace(in.Details), s.clock.Now())
}

func (s *BookingService) ListMine(ctx context.Context, marketerID string) ([]domain.Booking, error) {
	return s.bookings.ListForMarketer(ctx, marketerID)
}
