package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope returned by every endpoint
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// DrinksResponse is the success envelope for endpoints returning drinks
type DrinksResponse struct {
	Success bool        `json:"success"`
	Drinks  interface{} `json:"drinks"`
}

// DeleteResponse is the success envelope for DELETE /drinks/{id}
type DeleteResponse struct {
	Success bool  `json:"success"`
	Delete  int64 `json:"delete"`
}

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondDrinks writes {"success": true, "drinks": drinks}
func RespondDrinks(w http.ResponseWriter, drinks interface{}) {
	RespondJSON(w, http.StatusOK, DrinksResponse{Success: true, Drinks: drinks})
}

// RespondDeleted writes {"success": true, "delete": id}
func RespondDeleted(w http.ResponseWriter, id int64) {
	RespondJSON(w, http.StatusOK, DeleteResponse{Success: true, Delete: id})
}

// RespondError writes {"success": false, "error": status, "message": message}
func RespondError(w http.ResponseWriter, status int, message string) {
	writeError(w, ErrorResponse{Error: status, Message: message})
}

// RespondErrorWithCode writes the error envelope with a machine-readable code
func RespondErrorWithCode(w http.ResponseWriter, status int, code, message string) {
	writeError(w, ErrorResponse{Error: status, Code: code, Message: message})
}

func writeError(w http.ResponseWriter, body ErrorResponse) {
	payload, err := json.Marshal(body)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Error)
	w.Write(payload)
}
