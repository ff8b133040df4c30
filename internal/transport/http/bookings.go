package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lumka-2025/queue-hero/internal/app"
	"github.com/lumka-2025/queue-hero/internal/domain"
)

// Booker is the minimal interface needed for marketer booking endpoints.
type Booker interface {
	Create(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
	ListMine(ctx context.Context, marketerID string) ([]domain.Booking, error)
}

type createBookingRequest struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Details  string `json:"details,omitempty"`
}

type bookingResponse struct {
	ID         string    `json:"id"`
	MarketerID string    `json:"marketer_id"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// HandleBookings serves the marketer /api/bookings collection. Role checks
// happen in the RequireRole wrapper; this handler assumes a marketer caller.
func HandleBookings(svc Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing token")
			return
		}

		switch r.Method {
		case http.MethodPost:
			var req createBookingRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			booking, err := svc.Create(r.Context(), app.CreateBookingInput{
				MarketerID: identity.UserID,
				Title:      req.Title,
				Location:   req.Location,
				Details:    req.Details,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toBookingResponse(booking))

		case http.MethodGet:
			bookings, err := svc.ListMine(r.Context(), identity.UserID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			out := make([]bookingResponse, 0, len(bookings))
			for _, b := range bookings {
				out = append(out, toBookingResponse(b))
			}
			writeJSON(w, http.StatusOK, out)

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		MarketerID: b.MarketerID,
		Title:      b.Title,
		Location:   b.Location,
		Details:    b.Details,
		CreatedAt:  b.CreatedAt,
	}
}
