package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lumka-2025/queue-hero/internal/app"
	"github.com/lumka-2025/queue-hero/internal/domain"
)

// Authenticator is the minimal interface needed for register/login endpoints.
type Authenticator interface {
	Register(ctx context.Context, username, password string, role domain.Role) (app.Session, error)
	Login(ctx context.Context, username, password string) (app.Session, error)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleRegister returns an HTTP handler for account creation.
func HandleRegister(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		session, err := svc.Register(r.Context(), req.Username, req.Password, domain.Role(req.Role))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(session))
	}
}

// HandleLogin returns an HTTP handler for username/password login.
func HandleLogin(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		session, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(session))
	}
}

func toSessionResponse(s app.Session) sessionResponse {
	return sessionResponse{
		User: userResponse{
			ID:        s.User.ID,
			Username:  s.User.Username,
			Role:      string(s.User.Role),
			CreatedAt: s.User.CreatedAt,
		},
		Token: s.Token,
	}
}
