package http

import "net/http"

// NotFound is the catch-all for unrouted paths, replying with the same JSON
// error shape the rest of the API uses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, "not found")
}
