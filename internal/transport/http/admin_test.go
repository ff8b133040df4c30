package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumka-2025/queue-hero/internal/domain"
)

type fakeAdminDispatcher struct {
	cancelled []string
	err       error
}

func (f *fakeAdminDispatcher) AdminCancel(_ context.Context, requestID string) (domain.Request, error) {
	if f.err != nil {
		return domain.Request{}, f.err
	}
	f.cancelled = append(f.cancelled, requestID)
	return domain.Request{ID: requestID, Status: domain.StatusCancelled}, nil
}

func TestHandleAdminCancel(t *testing.T) {
	t.Parallel()

	const token = "ops-token"

	do := func(svc AdminDispatcher, auth, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if auth != "" {
			req.Header.Set("Authorization", "Bearer "+auth)
		}
		rec := httptest.NewRecorder()
		HandleAdminCancel(svc, token).ServeHTTP(rec, req)
		return rec
	}

	t.Run("cancels with the configured token", func(t *testing.T) {
		svc := &fakeAdminDispatcher{}
		rec := do(svc, token, "/admin/requests/r7/cancel")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(svc.cancelled) != 1 || svc.cancelled[0] != "r7" {
			t.Fatalf("unexpected cancels: %v", svc.cancelled)
		}
	})

	t.Run("wrong token is 403", func(t *testing.T) {
		svc := &fakeAdminDispatcher{}
		rec := do(svc, "guess", "/admin/requests/r7/cancel")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if len(svc.cancelled) != 0 {
			t.Fatalf("cancel ran despite bad token")
		}
	})

	t.Run("missing token is 403", func(t *testing.T) {
		rec := do(&fakeAdminDispatcher{}, "", "/admin/requests/r7/cancel")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("empty configured token disables the endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/requests/r7/cancel", nil)
		req.Header.Set("Authorization", "Bearer anything")
		rec := httptest.NewRecorder()
		HandleAdminCancel(&fakeAdminDispatcher{}, "").ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("terminal request maps to 409", func(t *testing.T) {
		rec := do(&fakeAdminDispatcher{err: domain.ErrConflict}, token, "/admin/requests/r7/cancel")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("malformed paths are 404", func(t *testing.T) {
		for _, path := range []string{
			"/admin/requests//cancel",
			"/admin/requests/r7",
			"/admin/requests/r7/extra/cancel",
		} {
			rec := do(&fakeAdminDispatcher{}, token, path)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404 for %s, got %d", path, rec.Code)
			}
		}
	})
}
