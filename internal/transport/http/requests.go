package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lumka-2025/queue-hero/internal/app"
	"github.com/lumka-2025/queue-hero/internal/domain"
)

// Dispatcher is the boundary surface the request handlers translate onto.
// The handlers hold no state logic; they map caller + role to an operation
// and the outcome back to a response.
type Dispatcher interface {
	Submit(ctx context.Context, in app.SubmitInput) (domain.Request, error)
	ListMine(ctx context.Context, customerID string) ([]domain.Request, error)
	ListOpenPool(ctx context.Context) ([]domain.Request, error)
	Get(ctx context.Context, id string) (domain.Request, error)
	Claim(ctx context.Context, agentID, requestID string, eta *string) (domain.Request, error)
	Start(ctx context.Context, agentID, requestID string) (domain.Request, error)
	Complete(ctx context.Context, agentID, requestID string) (domain.Request, error)
	Cancel(ctx context.Context, caller domain.Identity, requestID string) (domain.Request, error)
}

type requestResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	AgentID     *string   `json:"agent_id"`
	ETA         *string   `json:"eta"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toRequestResponse(req domain.Request) requestResponse {
	return requestResponse{
		ID:          req.ID,
		CustomerID:  req.CustomerID,
		Description: req.Description,
		Location:    req.Location,
		Status:      string(req.Status),
		AgentID:     req.AgentID,
		ETA:         req.ETA,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}

func toRequestResponses(reqs []domain.Request) []requestResponse {
	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRequestResponse(req))
	}
	return out
}

type submitRequest struct {
	Description string `json:"description"`
	Location    string `json:"location"`
}

// HandleRequests serves the /api/requests collection: customers POST new
// requests and GET their own; agents GET the open pool.
func HandleRequests(svc Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing token")
			return
		}

		switch r.Method {
		case http.MethodPost:
			if identity.Role != domain.RoleCustomer {
				writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
				return
			}

			var req submitRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			created, err := svc.Submit(r.Context(), app.SubmitInput{
				CustomerID:  identity.UserID,
				Description: req.Description,
				Location:    req.Location,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toRequestResponse(created))

		case http.MethodGet:
			var (
				reqs []domain.Request
				err  error
			)
			switch identity.Role {
			case domain.RoleAgent:
				reqs, err = svc.ListOpenPool(r.Context())
			case domain.RoleCustomer:
				reqs, err = svc.ListMine(r.Context(), identity.UserID)
			default:
				writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
				return
			}
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toRequestResponses(reqs))

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type claimRequest struct {
	ETA *string `json:"eta,omitempty"`
}

// HandleRequestActions serves /api/requests/{id} (GET) and the transition
// endpoints /api/requests/{id}/{claim|start|complete|cancel} (POST).
func HandleRequestActions(svc Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing token")
			return
		}

		id, action, ok := splitRequestPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if action == "" {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			req, err := svc.Get(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			if !mayView(identity, req) {
				writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
				return
			}
			writeJSON(w, http.StatusOK, toRequestResponse(req))
			return
		}

		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var (
			req domain.Request
			err error
		)
		switch action {
		case "claim":
			if identity.Role != domain.RoleAgent {
				writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
				return
			}
			var body claimRequest
			if r.Body != nil && r.ContentLength != 0 {
				if decErr := json.NewDecoder(r.Body).Decode(&body); decErr != nil {
					writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
					return
				}
			}
			req, err = svc.Claim(r.Context(), identity.UserID, id, body.ETA)
		case "start":
			if identity.Role != domain.RoleAgent {
				writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
				return
			}
			req, err = svc.Start(r.Context(), identity.UserID, id)
		case "complete":
			if identity.Role != domain.RoleAgent {
				writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
				return
			}
			req, err = svc.Complete(r.Context(), identity.UserID, id)
		case "cancel":
			req, err = svc.Cancel(r.Context(), identity, id)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

// splitRequestPath parses /api/requests/{id} and /api/requests/{id}/{action}.
func splitRequestPath(path string) (id, action string, ok bool) {
	rest := strings.TrimPrefix(path, "/api/requests/")
	if rest == path || rest == "" {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch len(parts) {
	case 1:
		return parts[0], "", parts[0] != ""
	case 2:
		return parts[0], parts[1], parts[0] != "" && parts[1] != ""
	default:
		return "", "", false
	}
}

func mayView(identity domain.Identity, req domain.Request) bool {
	switch identity.Role {
	case domain.RoleAgent:
		return true
	case domain.RoleCustomer:
		return req.CustomerID == identity.UserID
	default:
		return false
	}
}
