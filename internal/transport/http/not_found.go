package http

import "net/http"

// NotFoundHandler answers unknown routes with the same JSON error shape
// the endpoint handlers use.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "resource not found")
	})
}
