package helpers

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the JSON body for client-facing errors and confirmations.
// Every error response carries a message field; stack traces never leak.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON body for unexpected failures: a generic message
// plus the underlying error text.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteMessage writes a JSON body containing only a message.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteError writes a server-error body with a generic message and the
// underlying error text.
func WriteError(w http.ResponseWriter, statusCode int, message string, err error) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message, Error: err.Error()})
}
