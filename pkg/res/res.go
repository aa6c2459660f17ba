package res

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON shape of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`             // message for the client
	Kind    string `json:"kind,omitempty"`    // machine-readable error kind
	Details any    `json:"details,omitempty"` // e.g. validation errors
}

// JsonResponse sends a JSON response with the given status.
func JsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
