package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/lumka-2025/queue-hero/internal/domain"
)

// AdminDispatcher is the operator-side cancel surface.
type AdminDispatcher interface {
	AdminCancel(ctx context.Context, requestID string) (domain.Request, error)
}

// HandleAdminCancel serves POST /admin/requests/{id}/cancel, guarded by a
// static bearer token. It cancels from any non-terminal state; an empty
// configured token disables the endpoint.
func HandleAdminCancel(svc AdminDispatcher, adminToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if adminToken == "" || subtle.ConstantTimeCompare([]byte(bearerToken(r)), []byte(adminToken)) != 1 {
			writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		rest := strings.TrimPrefix(r.URL.Path, "/admin/requests/")
		id, ok := strings.CutSuffix(rest, "/cancel")
		if rest == r.URL.Path || !ok || id == "" || strings.Contains(id, "/") {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		req, err := svc.AdminCancel(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}
