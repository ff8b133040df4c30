package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lumka-2025/queue-hero/internal/domain"
	"github.com/lumka-2025/queue-hero/internal/events"
)

const heartbeatInterval = 25 * time.Second

// HandleEventStream serves GET /api/events?topic=... as Server-Sent Events.
// A customer may watch their own topic and their own requests; an agent may
// watch the pool, their own agent topic, and any request. Subscribers that
// disconnect or fall behind re-fetch current state through the list/get
// endpoints; there is no replay.
func HandleEventStream(hub *events.Hub, svc Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing token")
			return
		}

		topic := r.URL.Query().Get("topic")
		if topic == "" {
			writeError(w, http.StatusBadRequest, codeMissingFields, "topic required")
			return
		}
		if !maySubscribe(r, identity, svc, topic) {
			writeError(w, http.StatusForbidden, codeForbidden, "not allowed")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, codeInternalError, "streaming unsupported")
			return
		}

		sub := hub.Subscribe(topic)
		defer sub.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-heartbeat.C:
				_, _ = fmt.Fprint(w, ": keepalive\n\n")
				flusher.Flush()
			case evt, open := <-sub.Events():
				if !open {
					return
				}
				payload, err := json.Marshal(evt)
				if err != nil {
					continue
				}
				_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Kind, payload)
				flusher.Flush()
			}
		}
	}
}

func maySubscribe(r *http.Request, identity domain.Identity, svc Dispatcher, topic string) bool {
	switch identity.Role {
	case domain.RoleAgent:
		if topic == events.TopicAgentPool || topic == events.TopicAgent(identity.UserID) {
			return true
		}
		return strings.HasPrefix(topic, "request:")
	case domain.RoleCustomer:
		if topic == events.TopicCustomer(identity.UserID) {
			return true
		}
		if id, ok := strings.CutPrefix(topic, "request:"); ok {
			req, err := svc.Get(r.Context(), id)
			return err == nil && req.CustomerID == identity.UserID
		}
		return false
	default:
		return false
	}
}
