package http

import (
	"encoding/json"
	"net/http"

	"github.com/lumka-2025/queue-hero/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeMissingFields      = "missing_fields"
	codeInvalidRole        = "invalid_role"
	codeUserExists         = "user_exists"
	codeInvalidLogin       = "invalid_login"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeConflict           = "conflict"
	codeInvalidTransition  = "invalid_transition"
	codeInvalidID          = "invalid_id"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the dispatch error taxonomy onto HTTP. Conflict is a
// normal outcome (someone else moved the request first), reported as 409 and
// never retried server-side.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrMissingFields:
		writeError(w, http.StatusBadRequest, codeMissingFields, err.Error())
	case domain.ErrInvalidRole:
		writeError(w, http.StatusBadRequest, codeInvalidRole, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrUserExists:
		writeError(w, http.StatusBadRequest, codeUserExists, err.Error())
	case domain.ErrInvalidCredentials:
		writeError(w, http.StatusBadRequest, codeInvalidLogin, err.Error())
	case domain.ErrNotAllowed:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case domain.ErrRequestNotFound:
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case domain.ErrConflict:
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case domain.ErrInvalidTransition:
		writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
