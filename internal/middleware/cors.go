package middleware

import "net/http"

// EnableCORS sets the permissive headers Stremio clients require; the
// addon is consumed cross-origin from the app's own web UI.
func EnableCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
